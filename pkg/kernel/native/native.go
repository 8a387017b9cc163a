// Package native binds the prebuilt Simd shared library at run time. No cgo
// is involved: symbols are resolved with purego when Open is called.
package native

import (
	"errors"
	"os"
	"runtime"

	"github.com/pion/logging"
)

// EnvLibraryPath names the environment variable consulted when Open is given
// an empty path.
const EnvLibraryPath = "SIMD_LIBRARY_PATH"

// ErrUnavailable is returned when the shared library or one of its required
// symbols can't be found.
var ErrUnavailable = errors.New("simd native library unavailable")

// Options configure a loaded library. Threads and FastMode are process wide
// settings of the native library and are applied once at Open.
type Options struct {
	Threads       int
	FastMode      bool
	LoggerFactory logging.LoggerFactory
}

// DefaultPath returns the library path used when none is given.
func DefaultPath() string {
	if p := os.Getenv(EnvLibraryPath); p != "" {
		return p
	}
	switch runtime.GOOS {
	case "windows":
		return "Simd.dll"
	case "darwin":
		return "libSimd.dylib"
	}
	return "libSimd.so"
}
