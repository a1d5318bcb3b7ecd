// Package config describes cache hierarchy in JSON or YAML, and builds it.
package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/skipor/tiercache/internal/util"
	"github.com/skipor/tiercache/log"
)

// Policy names.
const (
	LRU             = "lru"
	MRU             = "mru"
	ConcurrentLRU   = "concurrent-lru"
	SynchronizedLRU = "synchronized-lru"
	SynchronizedMRU = "synchronized-mru"
)

// Storage names.
const (
	Memory           = "memory"
	ConcurrentMemory = "concurrent-memory"
	File             = "file"
)

type Config struct {
	LogDestination string `json:"log-destination,omitempty" yaml:"log-destination,omitempty"` // Stdout, stderr, or filepath.
	LogLevel       string `json:"log-level,omitempty" yaml:"log-level,omitempty"`
	// LogOperations enables debug logging of every cache operation.
	LogOperations bool `json:"log-operations,omitempty" yaml:"log-operations,omitempty"`
	// Synchronized serializes all cache calls with one lock.
	Synchronized bool `json:"synchronized,omitempty" yaml:"synchronized,omitempty"`
	// Levels from first to last. Single level config builds simple cache.
	Levels []LevelConfig `json:"levels,omitempty" yaml:"levels,omitempty"`
}

type LevelConfig struct {
	Capacity int    `json:"capacity" yaml:"capacity"`
	Policy   string `json:"policy" yaml:"policy"`
	Storage  string `json:"storage" yaml:"storage"`
	// Dir is file storage directory. Required for file storage.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

func Default() *Config {
	return &Config{
		LogDestination: "stderr",
		LogLevel:       "info",
		Levels: []LevelConfig{
			{Capacity: 1024, Policy: LRU, Storage: Memory},
		},
	}
}

// Merge overwrites def values with non zero override values.
// Levels are overwritten as a whole.
func Merge(def, override *Config) {
	defVal := reflect.ValueOf(def).Elem()
	overrideVal := reflect.ValueOf(override).Elem()
	for i, end := 0, defVal.NumField(); i < end; i++ {
		overrideVal := overrideVal.Field(i)
		if !util.IsZeroVal(overrideVal) {
			defVal.Field(i).Set(overrideVal)
		}
	}
}

// Load reads config file, and merges it over Default.
// Files with .yaml or .yml extension are parsed as YAML, others as JSON.
func Load(path string) (conf *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config read")
	}
	fileConf := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fileConf)
	default:
		err = json.Unmarshal(data, fileConf)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "config %q parse", path)
	}
	conf = Default()
	Merge(conf, fileConf)
	return conf, nil
}

func Validate(conf *Config) error {
	if _, err := log.LevelFromString(conf.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	if len(conf.Levels) == 0 {
		return errors.New("no levels")
	}
	for i, l := range conf.Levels {
		if err := validateLevel(l); err != nil {
			return errors.Wrapf(err, "level %v", i)
		}
	}
	return nil
}

func validateLevel(l LevelConfig) error {
	if l.Capacity <= 0 {
		return errors.Errorf("capacity should be positive, got %v", l.Capacity)
	}
	switch strings.ToLower(l.Policy) {
	case LRU, MRU, ConcurrentLRU, SynchronizedLRU, SynchronizedMRU:
	default:
		return errors.Errorf("unknown policy %q", l.Policy)
	}
	switch strings.ToLower(l.Storage) {
	case Memory, ConcurrentMemory:
	case File:
		if l.Dir == "" {
			return errors.New("file storage dir is required")
		}
	default:
		return errors.Errorf("unknown storage %q", l.Storage)
	}
	return nil
}

func Marshal(conf *Config) []byte {
	data, err := json.Marshal(conf)
	if err != nil {
		panic(err)
	}
	return data
}

// NewLogger opens log destination and creates logger.
func NewLogger(conf *Config) (log.Logger, error) {
	level, err := log.LevelFromString(conf.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	w, err := logDestination(conf.LogDestination)
	if err != nil {
		return nil, errors.Wrap(err, "log destination open")
	}
	return log.NewLogger(level, w), nil
}

func logDestination(dest string) (w io.Writer, err error) {
	switch strings.ToLower(dest) {
	case "stderr", "":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		w, err = os.OpenFile(dest, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	}
	return
}
