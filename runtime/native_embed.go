// Package runtimeembed provides the embedded native runtime header the
// generated C++ compiles against.
package runtimeembed

import (
	"embed"
	"io/fs"
)

//go:embed native/*.h
var nativeRuntimeFS embed.FS

// NativeRuntimeFS exposes the embedded runtime sources.
func NativeRuntimeFS() fs.FS {
	return nativeRuntimeFS
}

// Header returns the contents of sling_rt.h.
func Header() ([]byte, error) {
	return nativeRuntimeFS.ReadFile("native/sling_rt.h")
}
