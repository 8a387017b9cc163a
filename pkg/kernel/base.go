package kernel

import (
	"fmt"
	"hash/crc32"
	"unsafe"

	"golang.org/x/sync/errgroup"

	"github.com/simdkit/simd/pkg/cpu"
)

// BaseVersion is the version reported by Base.
const BaseVersion = "go-base-1"

// minRowsPerTask keeps small images on the calling goroutine.
const minRowsPerTask = 16

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Base is a portable scalar implementation of Library.
type Base struct {
	threads   int
	fastMode  bool
	alignment int
}

// BaseOption configures a Base library.
type BaseOption func(*Base)

// WithThreads sets the maximum number of goroutines a single kernel call may
// use. Values below 1 mean 1.
func WithThreads(n int) BaseOption {
	return func(b *Base) {
		b.threads = n
	}
}

// WithFastMode enables flushing of subnormal float results to zero.
func WithFastMode(fast bool) BaseOption {
	return func(b *Base) {
		b.fastMode = fast
	}
}

// WithAlignment overrides the preferred alignment. a must be a power of two.
func WithAlignment(a int) BaseOption {
	return func(b *Base) {
		b.alignment = a
	}
}

// NewBase creates a Base library.
func NewBase(opts ...BaseOption) *Base {
	b := &Base{threads: 1, alignment: cpu.Alignment()}
	for _, o := range opts {
		o(b)
	}
	if b.threads < 1 {
		b.threads = 1
	}
	if !isPowerOfTwo(b.alignment) {
		b.alignment = cpu.Alignment()
	}
	return b
}

func (b *Base) Name() string    { return "base" }
func (b *Base) Version() string { return BaseVersion }
func (b *Base) Threads() int    { return b.threads }
func (b *Base) FastMode() bool  { return b.fastMode }

func (b *Base) CpuInfo(kind cpu.Info) int64 { return cpu.Query(kind) }
func (b *Base) CpuDesc(kind cpu.Desc) string { return cpu.Describe(kind) }

func (b *Base) Crc32(src []byte) uint32  { return crc32.ChecksumIEEE(src) }
func (b *Base) Crc32c(src []byte) uint32 { return crc32.Checksum(src, castagnoli) }

// Alignment returns the preferred row alignment in bytes.
func (b *Base) Alignment() int {
	return b.alignment
}

// Align rounds size up to a multiple of align.
func (b *Base) Align(size, align int) int {
	return Align(size, align)
}

// Allocate returns size bytes whose first byte is aligned to align.
// The Go heap does not move objects, so the alignment holds for the life of
// the slice.
func (b *Base) Allocate(size, align int) ([]byte, error) {
	if size < 0 || !isPowerOfTwo(align) {
		return nil, fmt.Errorf("allocate %d bytes aligned to %d: %w", size, align, ErrInvalidArgument)
	}
	if size == 0 {
		return nil, nil
	}
	raw := make([]byte, size+align-1)
	offset := 0
	if rem := int(uintptr(unsafe.Pointer(&raw[0])) & uintptr(align-1)); rem != 0 {
		offset = align - rem
	}
	return raw[offset : offset+size : offset+size], nil
}

// Free is a no-op, the memory is reclaimed by the garbage collector.
func (b *Base) Free(buf []byte) {}

// Align rounds size up to a multiple of align, which must be a power of two.
func Align(size, align int) int {
	return (size + align - 1) &^ (align - 1)
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}

// rows calls fn over [0, n) split into contiguous bands, running at most
// b.threads bands at once.
func (b *Base) rows(n int, fn func(begin, end int)) {
	if b.threads <= 1 || n < 2*minRowsPerTask {
		fn(0, n)
		return
	}

	tasks := min(b.threads, n/minRowsPerTask)
	step := (n + tasks - 1) / tasks

	var g errgroup.Group
	g.SetLimit(b.threads)
	for begin := 0; begin < n; begin += step {
		begin := begin
		end := min(begin+step, n)
		g.Go(func() error {
			fn(begin, end)
			return nil
		})
	}
	_ = g.Wait()
}

// mapRows applies fn to every row pair of src and dst.
func (b *Base) mapRows(src []byte, srcStride, srcRow int, dst []byte, dstStride, dstRow, height int, fn func(s, d []byte)) {
	b.rows(height, func(begin, end int) {
		for y := begin; y < end; y++ {
			s := src[y*srcStride : y*srcStride+srcRow]
			d := dst[y*dstStride : y*dstStride+dstRow]
			fn(s, d)
		}
	})
}

var _ Library = (*Base)(nil)
