// Package file implements storage that keeps every key value pair in its own file.
//
// File is named <key hash>#<uuid>.ser and contains gob encoded key and value.
// On Open directory is scanned and index of keys is rebuilt, so storage
// survives restarts. Keys are locked separately: operations on different keys
// don't block each other.
package file
