// Package video chains frame transforms over a pull-based frame source.
package video

import (
	"github.com/simdkit/simd"
	"github.com/simdkit/simd/pkg/pixel"
)

// Reader produces frames. The caller must call release exactly once when it
// is done with the frame; release never frees a frame it does not own.
type Reader interface {
	Read() (frame *simd.Frame, release func(), err error)
}

type ReaderFunc func() (frame *simd.Frame, release func(), err error)

func (rf ReaderFunc) Read() (frame *simd.Frame, release func(), err error) {
	frame, release, err = rf()
	return
}

// TransformFunc produces a new Reader that will produces a transformed video
type TransformFunc func(r Reader) Reader

// Merge merges transforms and produces a new TransformFunc that will execute
// transforms in order
func Merge(transforms ...TransformFunc) TransformFunc {
	return func(r Reader) Reader {
		for _, transform := range transforms {
			if transform == nil {
				continue
			}

			r = transform(r)
		}

		return r
	}
}

func noop() {}

// reuse returns dst reshaped to the given layout, allocating it on ctx when
// dst is nil. Planes are kept when the layout is unchanged.
func reuse(ctx *simd.Context, dst *simd.Frame, format pixel.FrameFormat, width, height int, yuv pixel.YuvType) (*simd.Frame, error) {
	if dst == nil {
		return ctx.NewFrame(format, width, height, yuv)
	}
	if dst.YuvType() != yuv {
		dst.Release()
	}
	if err := dst.Recreate(format, width, height, yuv); err != nil {
		return nil, err
	}
	return dst, nil
}
