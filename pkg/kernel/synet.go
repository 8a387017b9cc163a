package kernel

import (
	"math"

	"github.com/simdkit/simd/pkg/pixel"
)

// SynetSetInput supports Gray8, Bgr24, Bgra32, Rgb24 and Rgba32 sources with
// 1 or 3 output channels. Colour channels are written in B, G, R order;
// callers wanting R, G, B swap the source format.
func (b *Base) SynetSetInput(src []byte, width, height, stride int, format pixel.Format, lower, upper []float32, dst []float32, channels int, tensor TensorFormat) {
	order, gray := synetOrder(format)
	ps := format.PixelSize()

	var scale, shift [3]float32
	for c := 0; c < channels; c++ {
		scale[c] = (upper[c] - lower[c]) / 255
		shift[c] = lower[c]
	}

	plane := width * height
	store := func(c, y, x int, v byte) {
		f := float32(v)*scale[c] + shift[c]
		if b.fastMode && f != 0 && math.Abs(float64(f)) < math.SmallestNonzeroFloat32*(1<<23) {
			f = 0
		}
		if tensor == TensorFormatNhwc {
			dst[(y*width+x)*channels+c] = f
		} else {
			dst[c*plane+y*width+x] = f
		}
	}

	b.rows(height, func(begin, end int) {
		for y := begin; y < end; y++ {
			row := src[y*stride:]
			for x := 0; x < width; x++ {
				p := row[x*ps:]
				if gray {
					for c := 0; c < channels; c++ {
						store(c, y, x, p[0])
					}
					continue
				}
				if channels == 1 {
					store(0, y, x, bgrToGray(p[order.b], p[order.g], p[order.r]))
					continue
				}
				store(0, y, x, p[order.b])
				store(1, y, x, p[order.g])
				store(2, y, x, p[order.r])
			}
		}
	})
}

func synetOrder(format pixel.Format) (packedOrder, bool) {
	switch format {
	case pixel.FormatBgr24:
		return orderBgr, false
	case pixel.FormatBgra32:
		return orderBgra, false
	case pixel.FormatRgb24:
		return orderRgb, false
	case pixel.FormatRgba32:
		return packedOrder{4, 2, 1, 0, 3}, false
	}
	return packedOrder{size: 1}, true
}
