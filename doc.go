// Package tiercache is root of embeddable multi level cache library.
//
// Eviction policies live in policy, storages in storage and storage/file,
// caches composing them in cache. Package config builds cache hierarchy from declarative config.
package tiercache
