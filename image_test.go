package simd

import (
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mio "github.com/simdkit/simd/pkg/io"
	"github.com/simdkit/simd/pkg/kernel"
	"github.com/simdkit/simd/pkg/pixel"
)

type countingLibrary struct {
	*kernel.Base
	allocs int
	frees  int
}

func (l *countingLibrary) Allocate(size, align int) ([]byte, error) {
	l.allocs++
	return l.Base.Allocate(size, align)
}

func (l *countingLibrary) Free(buf []byte) {
	l.frees++
}

func newCountingContext(t *testing.T) (*Context, *countingLibrary) {
	lib := &countingLibrary{Base: kernel.NewBase(kernel.WithAlignment(16))}
	c, err := NewContext(WithLibrary(lib))
	require.NoError(t, err)
	return c, lib
}

func randomize(arr []byte) {
	for i := range arr {
		arr[i] = uint8(rand.Uint32())
	}
}

func TestNewImage(t *testing.T) {
	c, _ := newCountingContext(t)

	img, err := c.NewImage(pixel.FormatBgr24, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Stride())
	assert.Len(t, img.Data(), 32*3)
	assert.True(t, img.Owner())
	assert.Equal(t, StateAllocated, img.State())
	assert.Zero(t, uintptr(unsafe.Pointer(&img.Data()[0]))%16)

	img, err = c.NewImage(pixel.FormatGray8, 5, 2, WithAlignment(64))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Stride())
	assert.Zero(t, uintptr(unsafe.Pointer(&img.Data()[0]))%64)
}

func TestNewImageEmptyAndErrors(t *testing.T) {
	testCases := map[string]struct {
		format   pixel.Format
		width    int
		height   int
		opts     []ImageOption
		expected error
	}{
		"EmptyFormat":  {format: pixel.FormatEmpty, width: 4, height: 4},
		"ZeroWidth":    {format: pixel.FormatGray8, width: 0, height: 4},
		"NegativeSize": {format: pixel.FormatGray8, width: 4, height: -1},
		"BadAlignment": {format: pixel.FormatGray8, width: 4, height: 4, opts: []ImageOption{WithAlignment(24)}, expected: ErrInvalidArgument},
		"NegativeAlignment": {
			format: pixel.FormatGray8, width: 4, height: 4, opts: []ImageOption{WithAlignment(-8)}, expected: ErrInvalidArgument,
		},
		"UnknownFormat": {format: pixel.Format(99), width: 4, height: 4, expected: ErrUnsupportedFormat},
	}

	c, lib := newCountingContext(t)
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			img, err := c.NewImage(tc.format, tc.width, tc.height, tc.opts...)
			if tc.expected != nil {
				assert.ErrorIs(t, err, tc.expected)
				return
			}
			require.NoError(t, err)
			assert.True(t, img.Empty())
			assert.Equal(t, StateEmpty, img.State())
			assert.Zero(t, img.Width())
			assert.Zero(t, img.Height())
			assert.Zero(t, img.Stride())
			assert.Equal(t, pixel.FormatEmpty, img.Format())
		})
	}
	assert.Zero(t, lib.allocs)
}

func TestReleaseFreesExactlyOnce(t *testing.T) {
	c, lib := newCountingContext(t)

	img, err := c.NewImage(pixel.FormatBgra32, 10, 10)
	require.NoError(t, err)
	region := img.Region(1, 1, 5, 5)
	require.False(t, region.Empty())

	region.Release()
	assert.Zero(t, lib.frees)
	assert.Equal(t, pixel.FormatBgra32, img.Format())

	img.Release()
	assert.Equal(t, 1, lib.frees)
	assert.True(t, img.Empty())
	assert.Equal(t, StateEmpty, img.State())

	img.Release()
	assert.NoError(t, img.Close())
	assert.Equal(t, 1, lib.frees)
	assert.Equal(t, 1, lib.allocs)
}

func TestViewIsNeverFreed(t *testing.T) {
	c, lib := newCountingContext(t)
	buf := make([]byte, 12)
	img, err := c.View(pixel.FormatBgr24, 2, 2, 6, buf)
	require.NoError(t, err)
	assert.False(t, img.Owner())
	assert.Equal(t, StateViewing, img.State())

	img.Release()
	assert.Zero(t, lib.frees)
	assert.True(t, img.Empty())
}

func TestRecreate(t *testing.T) {
	c, lib := newCountingContext(t)
	img, err := c.NewImage(pixel.FormatGray8, 8, 8)
	require.NoError(t, err)
	data := img.Data()

	require.NoError(t, img.Recreate(pixel.FormatGray8, 8, 8))
	assert.Equal(t, 1, lib.allocs)
	assert.Same(t, &data[0], &img.Data()[0])

	require.NoError(t, img.Recreate(pixel.FormatBgr24, 4, 4))
	assert.Equal(t, 2, lib.allocs)
	assert.Equal(t, 1, lib.frees)
	assert.Equal(t, pixel.FormatBgr24, img.Format())

	// A failed precondition leaves the image untouched.
	err = img.Recreate(pixel.FormatGray8, 4, 4, WithAlignment(3))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, pixel.FormatBgr24, img.Format())
	assert.Equal(t, 1, lib.frees)

	view := img.Region(0, 0, 2, 2)
	require.NoError(t, view.Recreate(pixel.FormatGray8, 3, 3))
	assert.True(t, view.Owner())
	assert.Equal(t, 1, lib.frees)
}

func TestViewValidation(t *testing.T) {
	testCases := map[string]struct {
		width, height, stride int
		size                  int
		expected              error
	}{
		"Exact":          {width: 2, height: 2, stride: 6, size: 12},
		"ShortLastRow":   {width: 2, height: 2, stride: 8, size: 14},
		"StrideTooSmall": {width: 2, height: 2, stride: 5, size: 12, expected: ErrInvalidArgument},
		"DataTooShort":   {width: 2, height: 2, stride: 6, size: 11, expected: ErrInvalidArgument},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := View(pixel.FormatBgr24, tc.width, tc.height, tc.stride, make([]byte, tc.size))
			if tc.expected != nil {
				assert.ErrorIs(t, err, tc.expected)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegion(t *testing.T) {
	testCases := map[string]struct {
		left, top, right, bottom int
		width, height            int
		first                    byte
	}{
		"Inner":       {1, 2, 3, 4, 2, 2, 21},
		"ClampAll":    {-5, -5, 50, 50, 10, 6, 0},
		"ClampRight":  {8, 0, 12, 1, 2, 1, 8},
		"Inverted":    {3, 1, 1, 4, 0, 0, 0},
		"EmptyRow":    {1, 2, 5, 2, 0, 0, 0},
		"OutsideLeft": {-4, 0, -1, 3, 0, 0, 0},
		"OutsideDown": {0, 7, 5, 9, 0, 0, 0},
	}

	img, err := NewImage(pixel.FormatGray8, 10, 6)
	require.NoError(t, err)
	for y := 0; y < 6; y++ {
		for x, row := 0, img.Row(y); x < 10; x++ {
			row[x] = byte(10*y + x)
		}
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			r := img.Region(tc.left, tc.top, tc.right, tc.bottom)
			assert.Equal(t, tc.width, r.Width())
			assert.Equal(t, tc.height, r.Height())
			if tc.width == 0 {
				assert.True(t, r.Empty())
				assert.Equal(t, pixel.FormatEmpty, r.Format())
				assert.Zero(t, r.Stride())
				return
			}
			assert.Equal(t, StateViewing, r.State())
			assert.Equal(t, img.Stride(), r.Stride())
			assert.Equal(t, tc.first, r.Row(0)[0])
		})
	}

	assert.True(t, (&Image{}).Region(0, 0, 5, 5).Empty())
}

func TestRegionSharesMemory(t *testing.T) {
	img, err := NewImage(pixel.FormatBgr24, 4, 4)
	require.NoError(t, err)
	r := img.Region(1, 1, 3, 3)
	require.NoError(t, r.Fill([]byte{1, 2, 3}))

	assert.Equal(t, []byte{0, 0, 0, 1, 2, 3, 1, 2, 3, 0, 0, 0}, img.Row(1))
	assert.Equal(t, make([]byte, 12), img.Row(0))
	assert.Equal(t, make([]byte, 12), img.Row(3))
}

func TestRegionAt(t *testing.T) {
	testCases := map[Position]struct {
		x, y int
	}{
		PositionTopLeft:      {0, 0},
		PositionTopCenter:    {3, 0},
		PositionTopRight:     {6, 0},
		PositionMiddleLeft:   {0, 2},
		PositionMiddleCenter: {3, 2},
		PositionMiddleRight:  {6, 2},
		PositionBottomLeft:   {0, 4},
		PositionBottomCenter: {3, 4},
		PositionBottomRight:  {6, 4},
	}

	img, err := NewImage(pixel.FormatGray8, 10, 8)
	require.NoError(t, err)
	for y := 0; y < 8; y++ {
		for x, row := 0, img.Row(y); x < 10; x++ {
			row[x] = byte(10*y + x)
		}
	}

	for pos, tc := range testCases {
		r := img.RegionAt(4, 4, pos)
		require.Equal(t, 4, r.Width(), "position %d", pos)
		require.Equal(t, 4, r.Height(), "position %d", pos)
		assert.Equal(t, byte(10*tc.y+tc.x), r.Row(0)[0], "position %d", pos)
	}
	assert.True(t, img.RegionAt(4, 4, Position(42)).Empty())
}

func TestCopy(t *testing.T) {
	src, err := NewImage(pixel.FormatBgr24, 5, 3, WithAlignment(32))
	require.NoError(t, err)
	randomize(src.Data())

	dst, err := src.Copy(nil)
	require.NoError(t, err)
	assert.Equal(t, src.Pixels(), dst.Pixels())

	packed := make([]byte, 45)
	view, err := View(pixel.FormatBgr24, 5, 3, 15, packed)
	require.NoError(t, err)
	_, err = src.Copy(view)
	require.NoError(t, err)
	assert.Equal(t, src.Pixels(), packed)

	other, err := NewImage(pixel.FormatBgra32, 5, 3)
	require.NoError(t, err)
	_, err = src.Copy(other)
	assert.ErrorIs(t, err, ErrIncompatibleFormat)
}

func TestFill(t *testing.T) {
	img, err := NewImage(pixel.FormatUv16, 3, 2)
	require.NoError(t, err)
	require.NoError(t, img.Fill([]byte{128, 64}))
	assert.Equal(t, []byte{128, 64, 128, 64, 128, 64, 128, 64, 128, 64, 128, 64}, img.Pixels())

	assert.ErrorIs(t, img.Fill([]byte{1}), ErrInvalidArgument)

	f, err := NewImage(pixel.FormatFloat, 2, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Fill([]byte{1, 2, 3, 4}), ErrUnsupportedFormat)
}

func TestReadPixels(t *testing.T) {
	img, err := NewImage(pixel.FormatGray8, 3, 2, WithAlignment(16))
	require.NoError(t, err)
	copy(img.Row(0), []byte{1, 2, 3})
	copy(img.Row(1), []byte{4, 5, 6})

	buf := make([]byte, 6)
	n, err := img.ReadPixels(buf)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, buf)

	_, err = img.ReadPixels(make([]byte, 5))
	var e *mio.InsufficientBufferError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 6, e.RequiredSize)
}

func TestRowOutOfRange(t *testing.T) {
	img, err := NewImage(pixel.FormatBgr24, 2, 3)
	require.NoError(t, err)
	assert.Len(t, img.Row(2), 6)

	for _, y := range []int{-1, 3, 100} {
		assert.Nil(t, img.Row(y), "row %d", y)
	}

	var empty Image
	assert.Nil(t, empty.Row(0))
}

func TestZeroValueImage(t *testing.T) {
	var img Image
	require.NoError(t, img.Recreate(pixel.FormatGray8, 2, 2))
	assert.Equal(t, Default(), img.Context())
	assert.True(t, img.Owner())
	img.Release()
	assert.True(t, img.Empty())
}

func BenchmarkImageConvert(b *testing.B) {
	sizes := []struct {
		name          string
		width, height int
	}{
		{"VGA", 640, 480},
		{"HD", 1280, 720},
	}
	for _, sz := range sizes {
		src, _ := NewImage(pixel.FormatBgra32, sz.width, sz.height)
		dst, _ := NewImage(pixel.FormatRgb24, sz.width, sz.height)
		b.Run(sz.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = src.Convert(dst, DefaultAlpha)
			}
		})
	}
}
