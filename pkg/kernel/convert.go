package kernel

const (
	bgrToGrayShift = 14
	bgrToGrayRound = 1 << (bgrToGrayShift - 1)

	blueToGrayWeight  = 1868 // 0.114 * (1 << 14)
	greenToGrayWeight = 9617 // 0.587 * (1 << 14)
	redToGrayWeight   = 4899 // 0.299 * (1 << 14)
)

func bgrToGray(b, g, r byte) byte {
	return byte((int(b)*blueToGrayWeight + int(g)*greenToGrayWeight + int(r)*redToGrayWeight + bgrToGrayRound) >> bgrToGrayShift)
}

func (b *Base) Copy(src []byte, srcStride, width, height, pixelSize int, dst []byte, dstStride int) {
	row := width * pixelSize
	if srcStride == row && dstStride == row {
		copy(dst[:row*height], src[:row*height])
		return
	}
	b.mapRows(src, srcStride, row, dst, dstStride, row, height, func(s, d []byte) {
		copy(d, s)
	})
}

func (b *Base) FillPixel(dst []byte, stride, width, height int, pixel []byte) {
	ps := len(pixel)
	if ps == 0 {
		return
	}
	row := width * ps
	b.rows(height, func(begin, end int) {
		for y := begin; y < end; y++ {
			d := dst[y*stride : y*stride+row]
			if ps == 1 {
				for i := range d {
					d[i] = pixel[0]
				}
				continue
			}
			// Doubling copy: seed one pixel then copy the filled prefix.
			n := copy(d, pixel)
			for n < len(d) {
				n += copy(d[n:], d[:n])
			}
		}
	})
}

func (b *Base) GrayToBgr(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, width, dst, dstStride, 3*width, height, func(s, d []byte) {
		for i, v := range s {
			d[3*i], d[3*i+1], d[3*i+2] = v, v, v
		}
	})
}

func (b *Base) GrayToBgra(src []byte, srcStride, width, height int, dst []byte, dstStride int, alpha uint8) {
	b.mapRows(src, srcStride, width, dst, dstStride, 4*width, height, func(s, d []byte) {
		for i, v := range s {
			d[4*i], d[4*i+1], d[4*i+2], d[4*i+3] = v, v, v, alpha
		}
	})
}

func (b *Base) BgrToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, 3*width, dst, dstStride, width, height, func(s, d []byte) {
		for i := range d {
			d[i] = bgrToGray(s[3*i], s[3*i+1], s[3*i+2])
		}
	})
}

func (b *Base) BgrToBgra(src []byte, srcStride, width, height int, dst []byte, dstStride int, alpha uint8) {
	b.mapRows(src, srcStride, 3*width, dst, dstStride, 4*width, height, func(s, d []byte) {
		for i, j := 0, 0; i < len(s); i, j = i+3, j+4 {
			d[j], d[j+1], d[j+2], d[j+3] = s[i], s[i+1], s[i+2], alpha
		}
	})
}

func (b *Base) BgrToRgb(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, 3*width, dst, dstStride, 3*width, height, func(s, d []byte) {
		for i := 0; i < len(s); i += 3 {
			d[i], d[i+1], d[i+2] = s[i+2], s[i+1], s[i]
		}
	})
}

func (b *Base) BgraToBgr(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, 4*width, dst, dstStride, 3*width, height, func(s, d []byte) {
		for i, j := 0, 0; i < len(s); i, j = i+4, j+3 {
			d[j], d[j+1], d[j+2] = s[i], s[i+1], s[i+2]
		}
	})
}

func (b *Base) BgraToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, 4*width, dst, dstStride, width, height, func(s, d []byte) {
		for i := range d {
			d[i] = bgrToGray(s[4*i], s[4*i+1], s[4*i+2])
		}
	})
}

func (b *Base) BgraToRgb(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, 4*width, dst, dstStride, 3*width, height, func(s, d []byte) {
		for i, j := 0, 0; i < len(s); i, j = i+4, j+3 {
			d[j], d[j+1], d[j+2] = s[i+2], s[i+1], s[i]
		}
	})
}

func (b *Base) BgraToRgba(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, 4*width, dst, dstStride, 4*width, height, func(s, d []byte) {
		for i := 0; i < len(s); i += 4 {
			d[i], d[i+1], d[i+2], d[i+3] = s[i+2], s[i+1], s[i], s[i+3]
		}
	})
}

func (b *Base) RgbToBgra(src []byte, srcStride, width, height int, dst []byte, dstStride int, alpha uint8) {
	b.mapRows(src, srcStride, 3*width, dst, dstStride, 4*width, height, func(s, d []byte) {
		for i, j := 0, 0; i < len(s); i, j = i+3, j+4 {
			d[j], d[j+1], d[j+2], d[j+3] = s[i+2], s[i+1], s[i], alpha
		}
	})
}

func (b *Base) RgbToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, 3*width, dst, dstStride, width, height, func(s, d []byte) {
		for i := range d {
			d[i] = bgrToGray(s[3*i+2], s[3*i+1], s[3*i])
		}
	})
}

func (b *Base) RgbaToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, 4*width, dst, dstStride, width, height, func(s, d []byte) {
		for i := range d {
			d[i] = bgrToGray(s[4*i+2], s[4*i+1], s[4*i])
		}
	})
}

func (b *Base) AbsGradientSaturatedSum(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	if width == 0 || height == 0 {
		return
	}
	clear(dst[:width])
	clear(dst[(height-1)*dstStride : (height-1)*dstStride+width])
	if height < 3 {
		for y := 0; y < height; y++ {
			clear(dst[y*dstStride : y*dstStride+width])
		}
		return
	}

	b.rows(height-2, func(begin, end int) {
		for y := begin + 1; y < end+1; y++ {
			up := src[(y-1)*srcStride:]
			mid := src[y*srcStride:]
			down := src[(y+1)*srcStride:]
			d := dst[y*dstStride : y*dstStride+width]
			d[0] = 0
			for x := 1; x < width-1; x++ {
				dx := absDiff(mid[x+1], mid[x-1])
				dy := absDiff(down[x], up[x])
				d[x] = byte(min(dx+dy, 255))
			}
			d[width-1] = 0
		}
	})
}

func absDiff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
