package simd

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pion/logging"

	simdlogging "github.com/simdkit/simd/internal/logging"
	"github.com/simdkit/simd/pkg/cpu"
	"github.com/simdkit/simd/pkg/kernel"
	"github.com/simdkit/simd/pkg/kernel/native"
)

// Version is the version of this package. The kernel library reports its own
// version through Context.LibraryVersion.
const Version = "1.0.0"

// Context binds images and frames to a kernel library. A Context is
// immutable once built and safe for concurrent use.
type Context struct {
	id     uuid.UUID
	lib    kernel.Library
	log    logging.LeveledLogger
	closer func() error
}

// ContextOptions stores parameters used by NewContext.
type ContextOptions struct {
	Threads       int
	FastMode      bool
	Library       kernel.Library
	NativePath    string
	Native        bool
	LoggerFactory logging.LoggerFactory
}

// ContextOption is a type of Context functional option.
type ContextOption func(*ContextOptions)

// WithThreads sets how many threads a single kernel call may use.
func WithThreads(n int) ContextOption {
	return func(o *ContextOptions) {
		o.Threads = n
	}
}

// WithFastMode flushes subnormal float results to zero.
func WithFastMode(fast bool) ContextOption {
	return func(o *ContextOptions) {
		o.FastMode = fast
	}
}

// WithLibrary uses lib for every kernel call. Threads and FastMode are
// ignored, lib is expected to be configured already.
func WithLibrary(lib kernel.Library) ContextOption {
	return func(o *ContextOptions) {
		o.Library = lib
	}
}

// WithNativeLibrary loads the Simd shared library from path. An empty path
// uses native.DefaultPath.
func WithNativeLibrary(path string) ContextOption {
	return func(o *ContextOptions) {
		o.Native = true
		o.NativePath = path
	}
}

// WithLoggerFactory sets the factory used for the context loggers.
func WithLoggerFactory(f logging.LoggerFactory) ContextOption {
	return func(o *ContextOptions) {
		o.LoggerFactory = f
	}
}

// NewContext creates a Context. Without WithLibrary or WithNativeLibrary the
// portable Go kernels are used.
func NewContext(opts ...ContextOption) (*Context, error) {
	o := ContextOptions{Threads: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Threads < 1 {
		return nil, fmt.Errorf("%d threads: %w", o.Threads, ErrInvalidArgument)
	}

	c := &Context{id: uuid.New(), closer: func() error { return nil }}
	c.log = simdlogging.NewLogger("simd", o.LoggerFactory)

	switch {
	case o.Library != nil:
		c.lib = o.Library
	case o.Native:
		lib, err := native.Open(o.NativePath, native.Options{
			Threads:       o.Threads,
			FastMode:      o.FastMode,
			LoggerFactory: o.LoggerFactory,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
		}
		c.lib = lib
		c.closer = lib.Close
	default:
		c.lib = kernel.NewBase(kernel.WithThreads(o.Threads), kernel.WithFastMode(o.FastMode))
	}

	c.log.Debugf("context %s: library %s %s, threads=%d fast=%v", c.id, c.lib.Name(), c.lib.Version(), c.lib.Threads(), c.lib.FastMode())
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultContext *Context
)

// Default returns the shared context used by zero-value images and frames.
// It runs the portable Go kernels on a single thread.
func Default() *Context {
	defaultOnce.Do(func() {
		c, err := NewContext()
		if err != nil {
			panic(err)
		}
		defaultContext = c
	})
	return defaultContext
}

// orDefault lets methods be called on a nil *Context.
func (c *Context) orDefault() *Context {
	if c == nil {
		return Default()
	}
	return c
}

// ID identifies the context in log lines.
func (c *Context) ID() uuid.UUID { return c.orDefault().id }

// Library returns the kernel library the context dispatches to.
func (c *Context) Library() kernel.Library { return c.orDefault().lib }

// Close unloads a native library. Images created by the context must not be
// used afterwards. Closing a context using the Go kernels is a no-op.
func (c *Context) Close() error {
	return c.orDefault().closer()
}

// LibraryVersion returns the version reported by the kernel library.
func (c *Context) LibraryVersion() string { return c.Library().Version() }

// Threads returns the thread count of the kernel library.
func (c *Context) Threads() int { return c.Library().Threads() }

// FastMode reports whether subnormal float results are flushed to zero.
func (c *Context) FastMode() bool { return c.Library().FastMode() }

// Alignment returns the preferred row alignment in bytes.
func (c *Context) Alignment() int { return c.Library().Alignment() }

// Align rounds size up to a multiple of align.
func (c *Context) Align(size, align int) int { return c.Library().Align(size, align) }

// CpuInfo returns a CPU property. Capability kinds return 0 or 1.
func (c *Context) CpuInfo(kind cpu.Info) int64 { return c.Library().CpuInfo(kind) }

// CpuDesc returns a CPU description string.
func (c *Context) CpuDesc(kind cpu.Desc) string { return c.Library().CpuDesc(kind) }

func (c *Context) Crc32(b []byte) uint32  { return c.Library().Crc32(b) }
func (c *Context) Crc32c(b []byte) uint32 { return c.Library().Crc32c(b) }
