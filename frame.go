package simd

import (
	"fmt"
	"time"

	"github.com/simdkit/simd/pkg/pixel"
)

// Frame is an image split into up to pixel.MaxPlanes planes, plus the YUV
// standard of its samples and a timestamp. The plane layout is fully
// determined by the format and size.
type Frame struct {
	ctx       *Context
	format    pixel.FrameFormat
	width     int
	height    int
	timestamp time.Duration
	yuv       pixel.YuvType
	planes    [pixel.MaxPlanes]Image
}

// NewFrame allocates a frame on the default context.
func NewFrame(format pixel.FrameFormat, width, height int, yuv pixel.YuvType) (*Frame, error) {
	return Default().NewFrame(format, width, height, yuv)
}

// NewFrame allocates a frame. YUV formats default to BT.601 when yuv is
// YuvUnknown.
func (c *Context) NewFrame(format pixel.FrameFormat, width, height int, yuv pixel.YuvType) (*Frame, error) {
	f := &Frame{ctx: c.orDefault()}
	if err := f.Recreate(format, width, height, yuv); err != nil {
		return nil, err
	}
	return f, nil
}

// FrameFromPlanes builds a frame viewing existing plane images. Nothing is
// copied and the frame owns none of the planes.
func (c *Context) FrameFromPlanes(format pixel.FrameFormat, width, height int, yuv pixel.YuvType, planes ...*Image) (*Frame, error) {
	layout, err := format.Planes(width, height)
	if err != nil {
		return nil, err
	}
	if len(planes) != len(layout) {
		return nil, fmt.Errorf("%s needs %d planes, got %d: %w", format, len(layout), len(planes), ErrInvalidArgument)
	}

	f := &Frame{ctx: c.orDefault()}
	for i, l := range layout {
		p := planes[i]
		if p == nil {
			f.Release()
			return nil, fmt.Errorf("%s plane %d is nil: %w", format, i, ErrInvalidArgument)
		}
		if p.format != l.Format || p.width != l.Width || p.height != l.Height {
			f.Release()
			return nil, fmt.Errorf("%s plane %d is %dx%d %s, want %dx%d %s: %w",
				format, i, p.width, p.height, p.format, l.Width, l.Height, l.Format, ErrIncompatibleFormat)
		}
		f.planes[i].ctx = f.ctx
		if err := f.planes[i].view(p.format, p.width, p.height, p.stride, p.data); err != nil {
			f.Release()
			return nil, err
		}
	}
	if len(layout) > 0 {
		f.format = format
		f.width = width
		f.height = height
	}
	f.yuv = normalizeYuv(format, yuv)
	return f, nil
}

func normalizeYuv(format pixel.FrameFormat, yuv pixel.YuvType) pixel.YuvType {
	if !format.IsYuv() {
		return pixel.YuvUnknown
	}
	if !yuv.Valid() {
		return pixel.YuvBt601
	}
	return yuv
}

func (f *Frame) context() *Context {
	return f.ctx.orDefault()
}

// Recreate reallocates the planes for a new format or size. It is a no-op
// when both are unchanged. Preconditions are checked before anything is
// released.
func (f *Frame) Recreate(format pixel.FrameFormat, width, height int, yuv pixel.YuvType) error {
	if format == f.format && width == f.width && height == f.height {
		return nil
	}
	layout, err := format.Planes(width, height)
	if err != nil {
		return err
	}

	ts := f.timestamp
	f.Release()
	f.timestamp = ts
	if format == pixel.FrameEmpty || width <= 0 || height <= 0 {
		return nil
	}
	for i, l := range layout {
		f.planes[i].ctx = f.ctx
		if err := f.planes[i].Recreate(l.Format, l.Width, l.Height); err != nil {
			f.Release()
			return err
		}
	}
	f.format = format
	f.width = width
	f.height = height
	f.yuv = normalizeYuv(format, yuv)
	return nil
}

// Release releases every plane and resets the frame to empty.
func (f *Frame) Release() {
	for i := range f.planes {
		f.planes[i].Release()
	}
	f.format = pixel.FrameEmpty
	f.width = 0
	f.height = 0
	f.timestamp = 0
	f.yuv = pixel.YuvUnknown
}

// Close releases the frame. It never fails.
func (f *Frame) Close() error {
	f.Release()
	return nil
}

func (f *Frame) Format() pixel.FrameFormat { return f.format }
func (f *Frame) Width() int                { return f.width }
func (f *Frame) Height() int               { return f.height }
func (f *Frame) Timestamp() time.Duration  { return f.timestamp }
func (f *Frame) Context() *Context         { return f.context() }

func (f *Frame) SetTimestamp(ts time.Duration) { f.timestamp = ts }

// YuvType returns the YUV standard. It is YuvUnknown for formats without YUV
// samples.
func (f *Frame) YuvType() pixel.YuvType {
	if !f.format.IsYuv() {
		return pixel.YuvUnknown
	}
	return f.yuv
}

// PlaneCount returns the number of planes used by the format.
func (f *Frame) PlaneCount() int { return f.format.PlaneCount() }

// Plane returns plane i. Planes past PlaneCount are empty.
func (f *Frame) Plane(i int) *Image { return &f.planes[i] }

// EqualSize reports whether both frames have the same width and height.
func (f *Frame) EqualSize(o *Frame) bool {
	return f.width == o.width && f.height == o.height
}

// Compatible reports whether both frames have the same format, size and YUV
// standard.
func (f *Frame) Compatible(o *Frame) bool {
	return f.format == o.format && f.EqualSize(o) && f.YuvType() == o.YuvType()
}

// Copy copies every plane and the timestamp into dst, which must be
// compatible. A nil dst is allocated and returned.
func (f *Frame) Copy(dst *Frame) (*Frame, error) {
	if dst == nil {
		var err error
		if dst, err = f.context().NewFrame(f.format, f.width, f.height, f.YuvType()); err != nil {
			return nil, err
		}
	}
	if !f.Compatible(dst) {
		return nil, fmt.Errorf("copy %dx%d %s (%s) to %dx%d %s (%s): %w",
			f.width, f.height, f.format, f.YuvType(), dst.width, dst.height, dst.format, dst.YuvType(), ErrIncompatibleFormat)
	}
	for i := 0; i < f.PlaneCount(); i++ {
		if _, err := f.planes[i].Copy(&dst.planes[i]); err != nil {
			return nil, err
		}
	}
	dst.timestamp = f.timestamp
	return dst, nil
}

// Converted returns a new frame holding the samples in format.
func (f *Frame) Converted(format pixel.FrameFormat, alpha uint8, yuv pixel.YuvType) (*Frame, error) {
	dst, err := f.context().NewFrame(format, f.width, f.height, yuv)
	if err != nil {
		return nil, err
	}
	if err := f.Convert(dst, alpha); err != nil {
		dst.Release()
		return nil, err
	}
	return dst, nil
}
