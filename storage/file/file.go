package file

import (
	"encoding/gob"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/facebookgo/stackerr"
	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"

	"github.com/skipor/tiercache/internal/util"
	"github.com/skipor/tiercache/log"
	"github.com/skipor/tiercache/storage"
)

const fileNameFormat = "%d#%s.ser"

var fileNamePattern = regexp.MustCompile(`^(\d+)#(\S+)\.ser$`)

type record[K comparable, V any] struct {
	Key   K
	Value V
}

// Storage is goroutine safe file storage, if its filesystem is goroutine safe.
// Note that billy memfs is not.
//
// Invariants, that hold for every key when its lock is not held:
// * key is in contents only if key has lock in locks and contents file exists.
// * file of key in contents contains that key.
// Files that are not in contents are garbage left by failures.
type Storage[K comparable, V any] struct {
	log      log.Logger
	fs       billy.Filesystem
	contents *xsync.MapOf[K, string]
	locks    *xsync.MapOf[K, *sync.Mutex]
	keys     util.KeyCheck[K]
}

var _ storage.Storage[int, int] = (*Storage[int, int])(nil)
var _ storage.Keyer[int] = (*Storage[int, int])(nil)

// Open builds storage index from files in fs root.
// Files that can't be decoded are logged and skipped. If several files
// contain the same key, first one by name is used.
func Open[K comparable, V any](l log.Logger, fs billy.Filesystem) (s *Storage[K, V], err error) {
	if fs == nil {
		panic("nil filesystem")
	}
	s = &Storage[K, V]{
		log:      l.WithFields(log.Fields{"storage": "file", "root": fs.Root()}),
		fs:       fs,
		contents: xsync.NewMapOf[K, string](),
		locks:    xsync.NewMapOf[K, *sync.Mutex](),
		keys:     util.NewKeyCheck[K](),
	}
	infos, err := fs.ReadDir("")
	if err != nil {
		err = &storage.Error{Op: "open", Err: stackerr.Wrap(err)}
		return nil, err
	}
	var paths []string
	for _, info := range infos {
		if info.Mode().IsRegular() && fileNamePattern.MatchString(info.Name()) {
			paths = append(paths, info.Name())
		}
	}

	keys := make([]K, len(paths))
	decoded := make([]bool, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			rec, err := s.read(path)
			if err != nil {
				s.log.Errorf("Can't decode file %q, skipping it: %v", path, err)
				return nil
			}
			keys[i], decoded[i] = rec.Key, true
			return nil
		})
	}
	g.Wait()

	for i, path := range paths {
		if !decoded[i] {
			continue
		}
		if first, loaded := s.contents.LoadOrStore(keys[i], path); loaded {
			s.log.Warnf("Key %v is duplicated in files %q and %q. Second is ignored.", keys[i], first, path)
			continue
		}
		s.locks.Store(keys[i], &sync.Mutex{})
	}
	s.log.Infof("Opened with %v keys.", s.contents.Size())
	return
}

func (s *Storage[K, V]) Get(key K) (v V, ok bool, err error) {
	mu := s.acquireExisting(key)
	if mu == nil {
		return
	}
	defer mu.Unlock()
	path, ok := s.contents.Load(key)
	if !ok {
		// Lock is created by put in progress or failed.
		return
	}
	rec, err := s.read(path)
	if err != nil {
		err = &storage.Error{Op: "get", Err: err}
		return v, false, err
	}
	return rec.Value, true, nil
}

// Put writes new file, and only then removes previous one.
// If error is *storage.Error, storage state is not changed.
// *storage.InconsistentError is returned, if new file is saved but
// index or files are inconsistent.
func (s *Storage[K, V]) Put(key K, v V) (prev V, existed bool, err error) {
	s.keys.Assert(key)
	mu, created := s.acquire(key)
	defer mu.Unlock()
	prevPath, existed := s.contents.Load(key)

	var saved bool
	defer func() {
		if err == nil || saved {
			return
		}
		if existed {
			s.contents.Store(key, prevPath)
			return
		}
		s.contents.Delete(key)
		if created {
			s.locks.Delete(key)
		}
	}()

	if existed {
		var rec record[K, V]
		rec, err = s.read(prevPath)
		if err != nil {
			err = &storage.Error{Op: "put", Err: err}
			return
		}
		prev = rec.Value
	}
	path, err := s.write(key, v)
	if err != nil {
		return
	}
	s.contents.Store(key, path)
	if err = s.validate(key); err != nil {
		return
	}
	saved = true
	if existed {
		err = s.removeFile(prevPath)
	}
	return
}

// Remove erases key from index, and then removes its file.
// *storage.InconsistentError is returned, if file was not removed.
func (s *Storage[K, V]) Remove(key K) (prev V, existed bool, err error) {
	mu := s.acquireExisting(key)
	if mu == nil {
		return
	}
	defer mu.Unlock()
	path, ok := s.contents.Load(key)
	if !ok {
		return
	}
	rec, err := s.read(path)
	if err != nil {
		err = &storage.Error{Op: "remove", Err: err}
		return
	}
	prev, existed = rec.Value, true
	s.contents.Delete(key)
	defer s.locks.Delete(key)
	if err = s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		err = &storage.InconsistentError{Path: path, Err: stackerr.Wrap(err)}
		return
	}
	err = s.validate(key)
	return
}

func (s *Storage[K, V]) Contains(key K) bool {
	_, ok := s.contents.Load(key)
	return ok
}

func (s *Storage[K, V]) Size() int { return s.contents.Size() }

func (s *Storage[K, V]) Keys() []K {
	keys := make([]K, 0, s.contents.Size())
	s.contents.Range(func(k K, _ string) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// acquire locks key. Key lock is created, if there is no one.
func (s *Storage[K, V]) acquire(key K) (mu *sync.Mutex, created bool) {
	for {
		newMu := &sync.Mutex{}
		mu, loaded := s.locks.LoadOrStore(key, newMu)
		if s.lock(key, mu) {
			return mu, !loaded
		}
	}
}

// acquireExisting locks key, if it has lock. Returns nil otherwise.
func (s *Storage[K, V]) acquireExisting(key K) *sync.Mutex {
	for {
		mu, ok := s.locks.Load(key)
		if !ok {
			return nil
		}
		if s.lock(key, mu) {
			return mu
		}
	}
}

// lock locks mu and checks that it is still key lock.
// Lock could be deleted, while we waited for it.
func (s *Storage[K, V]) lock(key K, mu *sync.Mutex) bool {
	mu.Lock()
	if actual, ok := s.locks.Load(key); ok && actual == mu {
		return true
	}
	mu.Unlock()
	return false
}

func (s *Storage[K, V]) validate(key K) error {
	path, ok := s.contents.Load(key)
	if !ok {
		return nil
	}
	_, locked := s.locks.Load(key)
	_, statErr := s.fs.Stat(path)
	if locked && statErr == nil {
		return nil
	}
	return &storage.InconsistentError{
		Path: path,
		Err:  stackerr.Newf("index invariant violated: locked: %v, stat error: %v", locked, statErr),
	}
}

func (s *Storage[K, V]) read(path string) (rec record[K, V], err error) {
	f, err := s.fs.Open(path)
	if err != nil {
		err = stackerr.Wrap(err)
		return
	}
	defer f.Close()
	if err = f.Lock(); err != nil {
		err = stackerr.Wrap(err)
		return
	}
	defer f.Unlock()
	err = gob.NewDecoder(f).Decode(&rec)
	if err != nil {
		err = stackerr.Wrap(err)
	}
	return
}

func (s *Storage[K, V]) write(key K, v V) (path string, err error) {
	path = fmt.Sprintf(fileNameFormat, xxhash.Sum64String(fmt.Sprint(key)), uuid.NewString())
	f, err := s.fs.Create(path)
	if err != nil {
		err = &storage.Error{Op: "write", Err: stackerr.Wrap(err)}
		return
	}
	if err = f.Lock(); err == nil {
		err = gob.NewEncoder(f).Encode(record[K, V]{key, v})
	}
	if err != nil {
		err = &storage.Error{Op: "write", Err: stackerr.Wrap(err)}
		f.Close()
		if rmErr := s.fs.Remove(path); rmErr != nil {
			s.log.Errorf("Failed to remove partially written file %q: %v", path, rmErr)
		}
		return
	}
	err = f.Unlock()
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		err = &storage.InconsistentError{Path: path, Err: stackerr.Wrap(err)}
	}
	return
}

// removeFile removes stale file.
func (s *Storage[K, V]) removeFile(path string) error {
	err := s.fs.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return &storage.InconsistentError{Path: path, Redundant: true, Err: stackerr.Wrap(err)}
}
