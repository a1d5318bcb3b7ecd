//go:build debug
// +build debug

package tag

// Debug is true in builds with "debug" tag. Such builds have more runtime checks.
const Debug = true
