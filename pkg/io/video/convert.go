package video

import (
	"github.com/simdkit/simd"
	"github.com/simdkit/simd/pkg/pixel"
)

// Convert returns a transform that converts every frame to format. yuv is
// used when format carries YUV planes. Frames already in format pass
// through untouched. The returned frame is reused by the next Read.
func Convert(format pixel.FrameFormat, yuv pixel.YuvType, alpha uint8) TransformFunc {
	if !format.IsYuv() {
		yuv = pixel.YuvUnknown
	} else if !yuv.Valid() {
		yuv = pixel.YuvBt601
	}

	return func(r Reader) Reader {
		var dst *simd.Frame
		return ReaderFunc(func() (*simd.Frame, func(), error) {
			src, release, err := r.Read()
			if err != nil {
				return nil, noop, err
			}
			if src.Format() == format {
				return src, release, nil
			}
			defer release()

			dst, err = reuse(src.Context(), dst, format, src.Width(), src.Height(), yuv)
			if err != nil {
				return nil, noop, err
			}
			if err := src.Convert(dst, alpha); err != nil {
				return nil, noop, err
			}
			return dst, noop, nil
		})
	}
}

// ToI420 converts frames to planar BT.601 YUV 4:2:0.
func ToI420(r Reader) Reader {
	return Convert(pixel.FrameYuv420p, pixel.YuvBt601, simd.DefaultAlpha)(r)
}

// ToRGBA converts frames to Rgba32 with opaque alpha where the source has
// none.
func ToRGBA(r Reader) Reader {
	return Convert(pixel.FrameRgba32, pixel.YuvUnknown, simd.DefaultAlpha)(r)
}
