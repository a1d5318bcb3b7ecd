package config

import (
	"os"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"

	"github.com/skipor/tiercache/cache"
	"github.com/skipor/tiercache/log"
	"github.com/skipor/tiercache/policy"
	"github.com/skipor/tiercache/storage"
	"github.com/skipor/tiercache/storage/file"
)

// Build validates config and builds cache described by it.
// Keys and values of file storage levels should be gob encodable.
func Build[K comparable, V any](l log.Logger, conf *Config) (c cache.Cache[K, V], err error) {
	if err = Validate(conf); err != nil {
		return
	}
	levels := make([]cache.Cache[K, V], len(conf.Levels))
	for i, lc := range conf.Levels {
		levelLog := l.WithFields(log.Fields{"level": i})
		var s storage.Storage[K, V]
		s, err = newStorage[K, V](levelLog, lc)
		if err != nil {
			return nil, errors.Wrapf(err, "level %v storage", i)
		}
		level := cache.NewSimple[K, V](s, newPolicy[K](lc.Policy), lc.Capacity)
		if err = shrink[K, V](levelLog, level); err != nil {
			return nil, errors.Wrapf(err, "level %v shrink", i)
		}
		levels[i] = level
		levelLog.Debugf("Level built: %+v.", lc)
	}
	if len(levels) == 1 {
		c = levels[0]
	} else {
		c = cache.NewMultiLevel(levels...)
	}
	if conf.LogOperations {
		c = cache.NewLogging(l.WithFields(log.Fields{"cache": "root"}), c)
	}
	if conf.Synchronized {
		c = cache.NewSynchronized(c)
	}
	l.Infof("Cache built. Levels: %v, capacity: %v, size: %v.", len(levels), c.Capacity(), c.Size())
	return
}

func newPolicy[K comparable](name string) policy.Policy[K] {
	switch strings.ToLower(name) {
	case LRU:
		return policy.NewLRU[K]()
	case MRU:
		return policy.NewMRU[K]()
	case ConcurrentLRU:
		return policy.NewConcurrentLRU[K]()
	case SynchronizedLRU:
		return policy.NewSynchronized[K](policy.NewLRU[K]())
	case SynchronizedMRU:
		return policy.NewSynchronized[K](policy.NewMRU[K]())
	}
	panic("unexpected policy: " + name)
}

func newStorage[K comparable, V any](l log.Logger, lc LevelConfig) (storage.Storage[K, V], error) {
	switch strings.ToLower(lc.Storage) {
	case Memory:
		return storage.NewMemory[K, V](), nil
	case ConcurrentMemory:
		return storage.NewConcurrentMemory[K, V](), nil
	case File:
		if err := os.MkdirAll(lc.Dir, 0755); err != nil {
			return nil, errors.Wrap(err, "dir create")
		}
		return file.Open[K, V](l, osfs.New(lc.Dir))
	}
	panic("unexpected storage: " + lc.Storage)
}

// shrink evicts entries of reopened storage, that don't fit capacity.
func shrink[K comparable, V any](l log.Logger, c *cache.Simple[K, V]) error {
	for c.Size() > c.Capacity() {
		evicted, err := c.Evict()
		if err != nil {
			return err
		}
		if evicted == nil {
			return errors.Errorf("nothing to evict, but size is %v", c.Size())
		}
		l.Warnf("Entry %v doesn't fit capacity and is dropped.", evicted.Key)
	}
	return nil
}
