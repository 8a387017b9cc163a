package frame

import (
	"github.com/simdkit/simd"
	"github.com/simdkit/simd/pkg/pixel"
)

// viewPlanes wraps consecutive tightly packed planes of buf.
func viewPlanes(ctx *simd.Context, buf []byte, layout []pixel.PlaneLayout) ([]*simd.Image, error) {
	planes := make([]*simd.Image, len(layout))
	offset := 0
	for i, l := range layout {
		stride := l.Format.RowSize(l.Width)
		img, err := ctx.View(l.Format, l.Width, l.Height, stride, buf[offset:])
		if err != nil {
			return nil, err
		}
		planes[i] = img
		offset += stride * l.Height
	}
	return planes, nil
}

func decodePlanar(ctx *simd.Context, f Format, format pixel.FrameFormat) decoderFunc {
	return func(buf []byte, width, height int) (*simd.Frame, func(), error) {
		if err := checkSize(f, buf, width, height); err != nil {
			return nil, noop, err
		}
		layout, err := format.Planes(width, height)
		if err != nil {
			return nil, noop, err
		}
		planes, err := viewPlanes(ctx, buf, layout)
		if err != nil {
			return nil, noop, err
		}
		fr, err := ctx.FrameFromPlanes(format, width, height, pixel.YuvBt601, planes...)
		if err != nil {
			return nil, noop, err
		}
		return fr, noop, nil
	}
}

func decodeI420(ctx *simd.Context) decoderFunc {
	return decodePlanar(ctx, FormatI420, pixel.FrameYuv420p)
}

func decodeNV12(ctx *simd.Context) decoderFunc {
	return decodePlanar(ctx, FormatNV12, pixel.FrameNv12)
}

// decodeNV21 splits the VU plane into planar U and V.
func decodeNV21(ctx *simd.Context) decoderFunc {
	return func(buf []byte, width, height int) (*simd.Frame, func(), error) {
		if err := checkSize(FormatNV21, buf, width, height); err != nil {
			return nil, noop, err
		}
		layout, err := pixel.FrameNv12.Planes(width, height)
		if err != nil {
			return nil, noop, err
		}
		src, err := viewPlanes(ctx, buf, layout)
		if err != nil {
			return nil, noop, err
		}

		fr, err := ctx.NewFrame(pixel.FrameYuv420p, width, height, pixel.YuvBt601)
		if err != nil {
			return nil, noop, err
		}
		if _, err := src[0].Copy(fr.Plane(0)); err != nil {
			fr.Release()
			return nil, noop, err
		}
		vu, u, v := src[1], fr.Plane(1), fr.Plane(2)
		ctx.Library().DeinterleaveUv(vu.Data(), vu.Stride(), vu.Width(), vu.Height(), v.Data(), v.Stride(), u.Data(), u.Stride())
		return fr, fr.Release, nil
	}
}

// decodePacked422 converts a 4:2:2 buffer into a 4:2:0 frame. Chroma of every
// two rows is averaged.
func decodePacked422(ctx *simd.Context, f Format, yOff, uOff, vOff int) decoderFunc {
	return func(buf []byte, width, height int) (*simd.Frame, func(), error) {
		if err := checkSize(f, buf, width, height); err != nil {
			return nil, noop, err
		}
		fr, err := ctx.NewFrame(pixel.FrameYuv420p, width, height, pixel.YuvBt601)
		if err != nil {
			return nil, noop, err
		}

		y, u, v := fr.Plane(0), fr.Plane(1), fr.Plane(2)
		stride := 2 * width
		for row := 0; row < height; row += 2 {
			s0, s1 := buf[row*stride:], buf[(row+1)*stride:]
			y0, y1 := y.Row(row), y.Row(row+1)
			ur, vr := u.Row(row/2), v.Row(row/2)
			for x := 0; x < width/2; x++ {
				p0, p1 := s0[4*x:4*x+4], s1[4*x:4*x+4]
				y0[2*x], y0[2*x+1] = p0[yOff], p0[yOff+2]
				y1[2*x], y1[2*x+1] = p1[yOff], p1[yOff+2]
				ur[x] = byte((int(p0[uOff]) + int(p1[uOff]) + 1) >> 1)
				vr[x] = byte((int(p0[vOff]) + int(p1[vOff]) + 1) >> 1)
			}
		}
		return fr, fr.Release, nil
	}
}

func decodeYUY2(ctx *simd.Context) decoderFunc {
	// Y0 U Y1 V
	return decodePacked422(ctx, FormatYUY2, 0, 1, 3)
}

func decodeUYVY(ctx *simd.Context) decoderFunc {
	// U Y0 V Y1
	return decodePacked422(ctx, FormatUYVY, 1, 0, 2)
}
