// Command tiercache-bench builds cache hierarchy from config and measures it under random load.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rcrowley/go-metrics"

	"github.com/skipor/tiercache/cache"
	"github.com/skipor/tiercache/config"
	"github.com/skipor/tiercache/internal/tag"
	"github.com/skipor/tiercache/log"
)

const usage = `
Config is read from json or yaml file. Missing values are taken from defaults.
Options:
`

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s", usage)
		flag.PrintDefaults()
	}
}

type Flags struct {
	ConfigPath string
	Load
}

func main() {
	flg := parseFlags()
	conf := loadConfig(flg.ConfigPath)
	l, err := config.NewLogger(conf)
	if err != nil {
		log.NewLogger(log.DebugLevel, os.Stderr).Fatal("Logger create error: ", err)
	}
	if tag.Debug {
		l.Warn("Using debug build. It has more runtime checks and large performance overhead.")
	}
	l.Debugf("Config: %s", config.Marshal(conf))

	c, err := config.Build[string, []byte](l, conf)
	if err != nil {
		l.Fatal("Cache build error: ", err)
	}
	if flg.Workers > 1 && !conf.Synchronized {
		l.Warn("Cache is not synchronized. Serializing it for concurrent workers.")
		c = cache.NewSynchronized(c)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	registry := metrics.NewRegistry()
	err = flg.Load.Run(ctx, l, c, registry)
	fmt.Fprintln(os.Stdout, "Stats. Time units are nanos.")
	metrics.WriteOnce(registry, os.Stdout)
	if err != nil {
		l.Fatal("Load error: ", err)
	}
	l.Infof("Done. Cache size: %v, capacity: %v.", c.Size(), c.Capacity())
}

func loadConfig(path string) *config.Config {
	l := log.NewLogger(log.DebugLevel, os.Stderr)
	conf := config.Default()
	if path != "" {
		var err error
		conf, err = config.Load(path)
		if err != nil {
			l.Fatal("Config load error: ", err)
		}
	}
	if err := config.Validate(conf); err != nil {
		l.Fatal("Invalid config: ", err)
	}
	return conf
}

func parseFlags() Flags {
	f := Flags{Load: DefaultLoad()}
	flag.StringVar(&f.ConfigPath, "config", "", "path to json or yaml config")
	flag.IntVar(&f.Workers, "workers", f.Workers, "concurrent workers")
	flag.IntVar(&f.Requests, "requests", f.Requests, "total requests")
	flag.IntVar(&f.Keys, "keys", f.Keys, "number of distinct keys")
	flag.IntVar(&f.ValueSize, "value-size", f.ValueSize, "value size in bytes")
	flag.Float64Var(&f.PutP, "put", f.PutP, "put request probability")
	flag.Float64Var(&f.RemoveP, "remove", f.RemoveP, "remove request probability")
	flag.Parse()
	return f
}
