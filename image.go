package simd

import (
	"fmt"

	mio "github.com/simdkit/simd/pkg/io"
	"github.com/simdkit/simd/pkg/pixel"
)

// DefaultAlpha is the alpha written by conversions that add an alpha channel
// when callers have no better value.
const DefaultAlpha uint8 = 0xff

// Position anchors a region inside an image.
type Position int

const (
	PositionTopLeft Position = iota
	PositionTopCenter
	PositionTopRight
	PositionMiddleLeft
	PositionMiddleCenter
	PositionMiddleRight
	PositionBottomLeft
	PositionBottomCenter
	PositionBottomRight
)

// Image is a 2D pixel buffer. It either owns its rows, which were obtained
// from the kernel library allocator and are freed exactly once by Release,
// or it views memory owned by someone else.
//
// The zero value is an empty image bound to Default(). Views share memory
// with their parent without synchronization; callers writing to one view
// while another is in use must lock externally.
type Image struct {
	ctx    *Context
	format pixel.Format
	width  int
	height int
	stride int
	data   []byte
	state  State
}

// ImageOption configures image allocation.
type ImageOption func(*imageOptions)

type imageOptions struct {
	alignment int
}

// WithAlignment sets the row alignment in bytes. a must be a power of two.
// Zero selects the library alignment.
func WithAlignment(a int) ImageOption {
	return func(o *imageOptions) {
		o.alignment = a
	}
}

// NewImage allocates an image on the default context.
func NewImage(format pixel.Format, width, height int, opts ...ImageOption) (*Image, error) {
	return Default().NewImage(format, width, height, opts...)
}

// NewImage allocates an owning image. An empty format or a non-positive size
// gives an empty image.
func (c *Context) NewImage(format pixel.Format, width, height int, opts ...ImageOption) (*Image, error) {
	img := &Image{ctx: c.orDefault()}
	if err := img.Recreate(format, width, height, opts...); err != nil {
		return nil, err
	}
	return img, nil
}

// View wraps external memory on the default context.
func View(format pixel.Format, width, height, stride int, data []byte) (*Image, error) {
	return Default().View(format, width, height, stride, data)
}

// View wraps data as a non-owning image. data must hold height rows of
// stride bytes, the last one may be cut after its pixels.
func (c *Context) View(format pixel.Format, width, height, stride int, data []byte) (*Image, error) {
	img := &Image{ctx: c.orDefault()}
	if err := img.view(format, width, height, stride, data); err != nil {
		return nil, err
	}
	return img, nil
}

func (img *Image) context() *Context {
	return img.ctx.orDefault()
}

func (img *Image) view(format pixel.Format, width, height, stride int, data []byte) error {
	if !format.Valid() {
		return fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
	}
	if format == pixel.FormatEmpty || width <= 0 || height <= 0 {
		return nil
	}
	row := format.RowSize(width)
	if stride < row {
		return fmt.Errorf("stride %d is smaller than a %s row of %d bytes: %w", stride, format, row, ErrInvalidArgument)
	}
	size := stride*(height-1) + row
	if len(data) < size {
		return fmt.Errorf("%dx%d %s view needs %d bytes, got %d: %w", width, height, format, size, len(data), ErrInvalidArgument)
	}

	return img.state.Update(StateViewing, func() error {
		img.format = format
		img.width = width
		img.height = height
		img.stride = stride
		img.data = data[:size:size]
		return nil
	})
}

// Recreate reallocates the image. It is a no-op when format and size already
// match, otherwise the current rows are released first.
func (img *Image) Recreate(format pixel.Format, width, height int, opts ...ImageOption) error {
	if format == img.format && width == img.width && height == img.height {
		return nil
	}

	var o imageOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.alignment < 0 || o.alignment&(o.alignment-1) != 0 {
		return fmt.Errorf("alignment %d is not a power of two: %w", o.alignment, ErrInvalidArgument)
	}
	if !format.Valid() {
		return fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
	}

	img.Release()
	if format == pixel.FormatEmpty || width <= 0 || height <= 0 {
		return nil
	}

	lib := img.context().lib
	align := o.alignment
	if align == 0 {
		align = lib.Alignment()
	}
	stride := lib.Align(format.RowSize(width), align)

	return img.state.Update(StateAllocated, func() error {
		data, err := lib.Allocate(stride*height, max(align, lib.Alignment()))
		if err != nil {
			return err
		}
		img.format = format
		img.width = width
		img.height = height
		img.stride = stride
		img.data = data
		img.context().log.Debugf("allocated %dx%d %s, stride %d", width, height, format, stride)
		return nil
	})
}

// Release frees owned rows and resets the image to empty. It may be called
// any number of times.
func (img *Image) Release() {
	_ = img.state.Update(StateEmpty, func() error {
		if img.state == StateAllocated && img.data != nil {
			img.context().lib.Free(img.data)
		}
		img.format = pixel.FormatEmpty
		img.width = 0
		img.height = 0
		img.stride = 0
		img.data = nil
		return nil
	})
}

// Close releases the image. It never fails.
func (img *Image) Close() error {
	img.Release()
	return nil
}

// Region returns a view of the rectangle [left, right) x [top, bottom),
// clamped to the image. An empty rectangle gives an empty image.
func (img *Image) Region(left, top, right, bottom int) *Image {
	r := &Image{ctx: img.ctx}
	if img.data == nil || right <= left || bottom <= top {
		return r
	}
	left = clamp(left, 0, img.width)
	top = clamp(top, 0, img.height)
	right = clamp(right, 0, img.width)
	bottom = clamp(bottom, 0, img.height)
	if right <= left || bottom <= top {
		return r
	}

	offset := top*img.stride + left*img.format.PixelSize()
	// The bounds were clamped, so the view always fits.
	_ = r.view(img.format, right-left, bottom-top, img.stride, img.data[offset:])
	return r
}

// RegionAt returns a width x height view anchored at pos.
func (img *Image) RegionAt(width, height int, pos Position) *Image {
	w, h := img.width, img.height
	switch pos {
	case PositionTopLeft:
		return img.Region(0, 0, width, height)
	case PositionTopCenter:
		return img.Region((w-width)/2, 0, (w+width)/2, height)
	case PositionTopRight:
		return img.Region(w-width, 0, w, height)
	case PositionMiddleLeft:
		return img.Region(0, (h-height)/2, width, (h+height)/2)
	case PositionMiddleCenter:
		return img.Region((w-width)/2, (h-height)/2, (w+width)/2, (h+height)/2)
	case PositionMiddleRight:
		return img.Region(w-width, (h-height)/2, w, (h+height)/2)
	case PositionBottomLeft:
		return img.Region(0, h-height, width, h)
	case PositionBottomCenter:
		return img.Region((w-width)/2, h-height, (w+width)/2, h)
	case PositionBottomRight:
		return img.Region(w-width, h-height, w, h)
	}
	return &Image{ctx: img.ctx}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func (img *Image) Format() pixel.Format { return img.format }
func (img *Image) Width() int           { return img.width }
func (img *Image) Height() int          { return img.height }
func (img *Image) Stride() int          { return img.stride }
func (img *Image) State() State         { return img.state }
func (img *Image) Context() *Context    { return img.context() }

// Data returns the backing rows. The slice is nil for an empty image.
func (img *Image) Data() []byte { return img.data }

// Owner reports whether the image frees its rows on Release.
func (img *Image) Owner() bool { return img.state == StateAllocated }

// Empty reports whether the image holds no pixels.
func (img *Image) Empty() bool { return img.data == nil }

// Row returns the pixels of row y without padding. It is nil when y is
// outside the image.
func (img *Image) Row(y int) []byte {
	if y < 0 || y >= img.height {
		return nil
	}
	begin := y * img.stride
	return img.data[begin : begin+img.format.RowSize(img.width)]
}

// EqualSize reports whether both images have the same width and height.
func (img *Image) EqualSize(o *Image) bool {
	return img.width == o.width && img.height == o.height
}

// Compatible reports whether both images have the same format and size.
func (img *Image) Compatible(o *Image) bool {
	return img.format == o.format && img.EqualSize(o)
}

// Copy copies the pixels into dst, which must be compatible. A nil dst is
// allocated and returned.
func (img *Image) Copy(dst *Image) (*Image, error) {
	if dst == nil {
		var err error
		if dst, err = img.context().NewImage(img.format, img.width, img.height); err != nil {
			return nil, err
		}
	}
	if !img.Compatible(dst) {
		return nil, fmt.Errorf("copy %dx%d %s to %dx%d %s: %w",
			img.width, img.height, img.format, dst.width, dst.height, dst.format, ErrIncompatibleFormat)
	}
	if img.Empty() {
		return dst, nil
	}
	img.context().lib.Copy(img.data, img.stride, img.width, img.height, img.format.PixelSize(), dst.data, dst.stride)
	return dst, nil
}

// Fill sets every pixel to the given channel values.
func (img *Image) Fill(value []byte) error {
	if img.format.ChannelSize() != 1 {
		return fmt.Errorf("fill %s: %w", img.format, ErrUnsupportedFormat)
	}
	if n := img.format.ChannelCount(); len(value) != n || n > 4 {
		return fmt.Errorf("fill %s with %d values: %w", img.format, len(value), ErrInvalidArgument)
	}
	img.context().lib.FillPixel(img.data, img.stride, img.width, img.height, value)
	return nil
}

// ReadPixels copies the pixels into dst without row padding and returns the
// number of bytes written.
func (img *Image) ReadPixels(dst []byte) (int, error) {
	return mio.CopyRows(dst, img.data, img.stride, img.format.RowSize(img.width), img.height)
}

// Pixels returns a copy of the pixels without row padding.
func (img *Image) Pixels() []byte {
	buf := make([]byte, img.format.RowSize(img.width)*img.height)
	_, _ = img.ReadPixels(buf)
	return buf
}
