package simd

import (
	"fmt"

	"github.com/simdkit/simd/pkg/kernel"
	"github.com/simdkit/simd/pkg/pixel"
)

type (
	packedKernel = func(kernel.Kernels, []byte, int, int, int, []byte, int)
	alphaKernel  = func(kernel.Kernels, []byte, int, int, int, []byte, int, uint8)
	convertFunc  func(k kernel.Kernels, src, dst *Image, alpha uint8)
)

func direct(f packedKernel) convertFunc {
	return func(k kernel.Kernels, src, dst *Image, _ uint8) {
		f(k, src.data, src.stride, src.width, src.height, dst.data, dst.stride)
	}
}

func withAlpha(f alphaKernel) convertFunc {
	return func(k kernel.Kernels, src, dst *Image, alpha uint8) {
		f(k, src.data, src.stride, src.width, src.height, dst.data, dst.stride, alpha)
	}
}

// packedConversions is indexed by pixel.PackedIndex of the source and the
// destination. The diagonal is nil, equal formats are copied. Swapping the
// red and blue roles of a kernel covers the Rgb and Rgba pairs.
var packedConversions = [len(pixel.PackedFormats)][len(pixel.PackedFormats)]convertFunc{
	// Gray8
	{
		nil,
		direct(kernel.Kernels.GrayToBgr),
		withAlpha(kernel.Kernels.GrayToBgra),
		direct(kernel.Kernels.GrayToBgr),
		withAlpha(kernel.Kernels.GrayToBgra),
	},
	// Bgr24
	{
		direct(kernel.Kernels.BgrToGray),
		nil,
		withAlpha(kernel.Kernels.BgrToBgra),
		direct(kernel.Kernels.BgrToRgb),
		withAlpha(kernel.Kernels.RgbToBgra),
	},
	// Bgra32
	{
		direct(kernel.Kernels.BgraToGray),
		direct(kernel.Kernels.BgraToBgr),
		nil,
		direct(kernel.Kernels.BgraToRgb),
		direct(kernel.Kernels.BgraToRgba),
	},
	// Rgb24
	{
		direct(kernel.Kernels.RgbToGray),
		direct(kernel.Kernels.BgrToRgb),
		withAlpha(kernel.Kernels.RgbToBgra),
		nil,
		withAlpha(kernel.Kernels.BgrToBgra),
	},
	// Rgba32
	{
		direct(kernel.Kernels.RgbaToGray),
		direct(kernel.Kernels.BgraToRgb),
		direct(kernel.Kernels.BgraToRgba),
		direct(kernel.Kernels.BgraToBgr),
		nil,
	},
}

// Convert converts the pixels into dst. Both images must be Gray8, Bgr24,
// Bgra32, Rgb24 or Rgba32 and have the same size. alpha is written when dst
// has an alpha channel the source lacks.
func (img *Image) Convert(dst *Image, alpha uint8) error {
	si, ok := pixel.PackedIndex(img.format)
	if !ok {
		return fmt.Errorf("convert from %s: %w", img.format, ErrUnsupportedFormat)
	}
	di, ok := pixel.PackedIndex(dst.format)
	if !ok {
		return fmt.Errorf("convert to %s: %w", dst.format, ErrUnsupportedFormat)
	}
	if !img.EqualSize(dst) {
		return fmt.Errorf("convert %dx%d to %dx%d: %w", img.width, img.height, dst.width, dst.height, ErrSizeMismatch)
	}

	if si == di {
		_, err := img.Copy(dst)
		return err
	}
	ctx := img.context()
	ctx.log.Tracef("convert %dx%d %s to %s", img.width, img.height, img.format, dst.format)
	packedConversions[si][di](ctx.lib, img, dst, alpha)
	return nil
}

// Converted returns a new image holding the pixels in format.
func (img *Image) Converted(format pixel.Format, alpha uint8) (*Image, error) {
	if !format.IsPacked() {
		return nil, fmt.Errorf("convert to %s: %w", format, ErrUnsupportedFormat)
	}
	dst, err := img.context().NewImage(format, img.width, img.height)
	if err != nil {
		return nil, err
	}
	if err := img.Convert(dst, alpha); err != nil {
		dst.Release()
		return nil, err
	}
	return dst, nil
}
