//go:build !(linux || darwin)

package native

import (
	"fmt"
	"runtime"

	"github.com/simdkit/simd/pkg/kernel"
)

// Library is not available on this platform.
type Library struct {
	kernel.Library
}

// Open always fails on platforms without dlopen support in purego.
func Open(path string, opts Options) (*Library, error) {
	if path == "" {
		path = DefaultPath()
	}
	return nil, fmt.Errorf("%s on %s: %w", path, runtime.GOOS, ErrUnavailable)
}

func (l *Library) Close() error { return nil }
