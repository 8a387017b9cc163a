package simd

import (
	"fmt"

	"github.com/simdkit/simd/pkg/kernel"
	"github.com/simdkit/simd/pkg/pixel"
)

// Resize scales src into dst. Both images must have the same format.
func (c *Context) Resize(src, dst *Image, method kernel.ResizeMethod) error {
	if src.format != dst.format {
		return fmt.Errorf("resize %s to %s: %w", src.format, dst.format, ErrIncompatibleFormat)
	}
	channel, err := src.format.ResizeChannel()
	if err != nil {
		return err
	}

	c = c.orDefault()
	r, err := c.lib.NewResizer(kernel.ResizeParams{
		SrcWidth:  src.width,
		SrcHeight: src.height,
		DstWidth:  dst.width,
		DstHeight: dst.height,
		Channels:  src.format.ChannelCount(),
		Type:      channel,
		Method:    method,
	})
	if err != nil {
		return fmt.Errorf("resize %dx%d %s to %dx%d: %w", src.width, src.height, src.format, dst.width, dst.height, err)
	}
	defer r.Release()

	r.Run(src.data, src.stride, dst.data, dst.stride)
	return nil
}

// Resized returns src scaled to width x height.
func (c *Context) Resized(src *Image, width, height int, method kernel.ResizeMethod) (*Image, error) {
	dst, err := c.NewImage(src.format, width, height)
	if err != nil {
		return nil, err
	}
	if err := c.Resize(src, dst, method); err != nil {
		dst.Release()
		return nil, err
	}
	return dst, nil
}

// WarpAffine maps src into dst through the 2x3 matrix mat. dst doubles as the
// background for transparent borders. border holds one value per channel or
// is empty for zero.
func (c *Context) WarpAffine(src *Image, mat [6]float32, dst *Image, flags kernel.WarpAffineFlags, border []byte) error {
	if src.format != dst.format || src.format.ChannelSize() != 1 {
		return fmt.Errorf("warp affine %s to %s: %w", src.format, dst.format, ErrIncompatibleFormat)
	}
	if flags&kernel.WarpAffineChannelMask != kernel.WarpAffineChannelByte {
		return fmt.Errorf("warp affine flags %#x: %w", int(flags), ErrInvalidArgument)
	}
	if len(border) != 0 && len(border) != src.format.ChannelCount() {
		return fmt.Errorf("warp affine border of %d values for %s: %w", len(border), src.format, ErrInvalidArgument)
	}

	c = c.orDefault()
	w, err := c.lib.NewWarpAffine(kernel.WarpAffineParams{
		SrcWidth:  src.width,
		SrcHeight: src.height,
		SrcStride: src.stride,
		DstWidth:  dst.width,
		DstHeight: dst.height,
		DstStride: dst.stride,
		Channels:  src.format.ChannelCount(),
		Mat:       mat,
		Flags:     flags,
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("warp affine %dx%d %s to %dx%d: %w", src.width, src.height, src.format, dst.width, dst.height, err)
	}
	defer w.Release()

	w.Run(src.data, dst.data)
	return nil
}

// AbsGradientSaturatedSum writes the saturated sum of absolute horizontal and
// vertical gradients of a Gray8 image. An empty dst is allocated.
func (c *Context) AbsGradientSaturatedSum(src, dst *Image) error {
	if src.format != pixel.FormatGray8 {
		return fmt.Errorf("gradient of %s: %w", src.format, ErrUnsupportedFormat)
	}
	if dst.format == pixel.FormatEmpty {
		if dst.ctx == nil {
			dst.ctx = c
		}
		if err := dst.Recreate(src.format, src.width, src.height); err != nil {
			return err
		}
	}
	if !src.Compatible(dst) {
		return fmt.Errorf("gradient into %dx%d %s: %w", dst.width, dst.height, dst.format, ErrIncompatibleFormat)
	}
	c.orDefault().lib.AbsGradientSaturatedSum(src.data, src.stride, src.width, src.height, dst.data, dst.stride)
	return nil
}

// SynetSetInput writes src into a float32 tensor, mapping [0, 255] onto
// [lower[c], upper[c]] per channel. Colour channels are B, G, R unless isRgb
// is set.
func (c *Context) SynetSetInput(src *Image, lower, upper []float32, dst []float32, channels int, format kernel.TensorFormat, isRgb bool) error {
	if !src.format.IsPacked() {
		return fmt.Errorf("tensor input from %s: %w", src.format, ErrUnsupportedFormat)
	}
	if channels != 1 && channels != 3 {
		return fmt.Errorf("tensor with %d channels: %w", channels, ErrInvalidArgument)
	}
	if len(lower) < channels || len(upper) < channels {
		return fmt.Errorf("%d channels with %d lower and %d upper bounds: %w", channels, len(lower), len(upper), ErrInvalidArgument)
	}
	if format != kernel.TensorFormatNchw && format != kernel.TensorFormatNhwc {
		return fmt.Errorf("tensor format %s: %w", format, ErrInvalidArgument)
	}
	if need := channels * src.width * src.height; len(dst) < need {
		return fmt.Errorf("tensor of %d values, need %d: %w", len(dst), need, ErrInvalidArgument)
	}

	sf := src.format
	if isRgb {
		switch sf {
		case pixel.FormatBgr24:
			sf = pixel.FormatRgb24
		case pixel.FormatRgb24:
			sf = pixel.FormatBgr24
		case pixel.FormatBgra32:
			sf = pixel.FormatRgba32
		case pixel.FormatRgba32:
			sf = pixel.FormatBgra32
		}
	}
	c.orDefault().lib.SynetSetInput(src.data, src.width, src.height, src.stride, sf, lower, upper, dst, channels, format)
	return nil
}
