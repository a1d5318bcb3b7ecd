package main

import (
	"bytes"
	"context"
	"math"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
	"golang.org/x/sync/errgroup"

	"github.com/skipor/tiercache/cache"
	"github.com/skipor/tiercache/log"
)

// Load is random request stream. Keys are chosen with normal distribution,
// so low key indexes are hot.
type Load struct {
	Workers   int
	Requests  int
	Keys      int
	ValueSize int
	PutP      float64
	RemoveP   float64
}

func DefaultLoad() Load {
	return Load{
		Workers:   4,
		Requests:  1 << 16,
		Keys:      1 << 12,
		ValueSize: 128,
		PutP:      0.2,
		RemoveP:   0.02,
	}
}

func (ld Load) validate() error {
	switch {
	case ld.Workers <= 0, ld.Requests <= 0, ld.Keys <= 0:
		return errors.New("workers, requests and keys should be positive")
	case ld.PutP < 0, ld.RemoveP < 0, ld.PutP+ld.RemoveP > 1:
		return errors.New("invalid request probabilities")
	}
	return nil
}

func key(index int) string { return "key_" + strconv.Itoa(index) }

// value returns value of key. Value starts with key, so get result can be checked.
func (ld Load) value(key string) []byte {
	v := make([]byte, len(key), len(key)+ld.ValueSize)
	copy(v, key)
	return append(v, bytes.Repeat([]byte{'v'}, ld.ValueSize)...)
}

// keyIndex returns random normally distributed index.
func (ld Load) keyIndex(r *rand.Rand) int {
	stddev := float64(ld.Keys) / 2
	for {
		index := int(math.Abs(r.NormFloat64() * stddev))
		if index < ld.Keys {
			return index
		}
	}
}

// Run makes requests to cache from concurrent workers, and reports request timings to registry.
func (ld Load) Run(ctx context.Context, l log.Logger, c cache.Cache[string, []byte], registry metrics.Registry) error {
	if err := ld.validate(); err != nil {
		return err
	}
	getTimer := metrics.NewRegisteredTimer("get", registry)
	putTimer := metrics.NewRegisteredTimer("put", registry)
	removeTimer := metrics.NewRegisteredTimer("remove", registry)
	missCounter := metrics.NewRegisteredCounter("cache.miss", registry)
	evictCounter := metrics.NewRegisteredCounter("cache.evict", registry)

	var requests int64
	next := func() bool { return atomic.AddInt64(&requests, 1) <= int64(ld.Requests) }

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < ld.Workers; i++ {
		r := rand.New(rand.NewSource(rand.Int63()))
		g.Go(func() error {
			for next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				k := key(ld.keyIndex(r))
				var err error
				switch p := r.Float64(); {
				case p < ld.PutP:
					putTimer.Time(func() {
						var evicted *cache.Entry[string, []byte]
						evicted, err = c.Put(k, ld.value(k))
						if evicted != nil {
							evictCounter.Inc(1)
						}
					})
				case p < ld.PutP+ld.RemoveP:
					removeTimer.Time(func() { _, _, err = c.Remove(k) })
				default:
					var v []byte
					var ok bool
					getTimer.Time(func() { v, ok, err = c.Get(k) })
					if err == nil && !ok {
						missCounter.Inc(1)
					}
					if ok && !bytes.HasPrefix(v, []byte(k)) {
						err = errors.Errorf("got value of another key for %q", k)
					}
				}
				if err != nil {
					return errors.Wrapf(err, "key %q", k)
				}
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		tick := time.NewTicker(time.Second)
		defer tick.Stop()
		for {
			select {
			case <-done:
				return
			case <-tick.C:
				req := atomic.LoadInt64(&requests)
				if req > int64(ld.Requests) {
					req = int64(ld.Requests)
				}
				l.Infof("%v%% requests done.", req*100/int64(ld.Requests))
			}
		}
	}()
	err := g.Wait()
	close(done)
	return err
}
