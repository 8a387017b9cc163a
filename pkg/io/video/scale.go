package video

import (
	"github.com/simdkit/simd"
	"github.com/simdkit/simd/pkg/kernel"
)

// Scale returns a transform that resizes every plane of a frame to
// width x height. A non-positive dimension is derived from the other one,
// keeping the aspect ratio. YUV frames are rounded to even dimensions.
func Scale(width, height int, method kernel.ResizeMethod) TransformFunc {
	if width <= 0 && height <= 0 {
		panic("video: scale needs a positive width or height")
	}

	return func(r Reader) Reader {
		var dst *simd.Frame
		return ReaderFunc(func() (*simd.Frame, func(), error) {
			src, release, err := r.Read()
			if err != nil {
				return nil, noop, err
			}
			if src.Width() == 0 || src.Height() == 0 {
				return src, release, nil
			}
			w, h := scaledSize(src, width, height)
			if w == src.Width() && h == src.Height() {
				return src, release, nil
			}
			defer release()

			ctx := src.Context()
			dst, err = reuse(ctx, dst, src.Format(), w, h, src.YuvType())
			if err != nil {
				return nil, noop, err
			}
			for i := 0; i < src.PlaneCount(); i++ {
				if err := ctx.Resize(src.Plane(i), dst.Plane(i), method); err != nil {
					return nil, noop, err
				}
			}
			dst.SetTimestamp(src.Timestamp())
			return dst, noop, nil
		})
	}
}

func scaledSize(src *simd.Frame, width, height int) (int, int) {
	switch {
	case width <= 0:
		width = src.Width() * height / src.Height()
	case height <= 0:
		height = src.Height() * width / src.Width()
	}
	if src.Format().IsYuv() {
		width = max(2, (width+1)&^1)
		height = max(2, (height+1)&^1)
	}
	return max(1, width), max(1, height)
}
