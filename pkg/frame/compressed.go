package frame

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/simdkit/simd"
	"github.com/simdkit/simd/pkg/pixel"
)

// decodeMJPEG decodes a JPEG image. Baseline 4:2:0 images keep their planes
// as a full range Yuv420p frame, everything else becomes Bgr24.
func decodeMJPEG(ctx *simd.Context) decoderFunc {
	return func(buf []byte, width, height int) (*simd.Frame, func(), error) {
		img, err := jpeg.Decode(bytes.NewReader(buf))
		if err != nil {
			return nil, noop, err
		}

		b := img.Bounds()
		if ycc, ok := img.(*image.YCbCr); ok && ycc.SubsampleRatio == image.YCbCrSubsampleRatio420 && b.Dx()%2 == 0 && b.Dy()%2 == 0 {
			fr, err := ctx.NewFrame(pixel.FrameYuv420p, b.Dx(), b.Dy(), pixel.YuvFullRange)
			if err != nil {
				return nil, noop, err
			}
			copyRows(fr.Plane(0), ycc.Y, ycc.YStride)
			copyRows(fr.Plane(1), ycc.Cb, ycc.CStride)
			copyRows(fr.Plane(2), ycc.Cr, ycc.CStride)
			return fr, fr.Release, nil
		}

		bgr, err := ctx.FromStdImage(img, pixel.FormatBgr24)
		if err != nil {
			return nil, noop, err
		}
		defer bgr.Release()
		fr, err := ctx.NewFrame(pixel.FrameBgr24, b.Dx(), b.Dy(), pixel.YuvUnknown)
		if err != nil {
			return nil, noop, err
		}
		if _, err := bgr.Copy(fr.Plane(0)); err != nil {
			fr.Release()
			return nil, noop, err
		}
		return fr, fr.Release, nil
	}
}

func copyRows(dst *simd.Image, src []byte, stride int) {
	for y := 0; y < dst.Height(); y++ {
		copy(dst.Row(y), src[y*stride:])
	}
}
