package kernel

import (
	"math"

	"github.com/simdkit/simd/pkg/pixel"
)

const (
	yuvShift = 14
	yuvRound = 1 << (yuvShift - 1)
	yAdjust  = 16
	uvAdjust = 128
)

// yuvToBgrCoef are fixed point factors for one YUV standard.
type yuvToBgrCoef struct {
	yOffset, y             int
	uToB, uToG, vToG, vToR int
}

type bgrToYuvCoef struct {
	yOffset          int
	bToY, gToY, rToY int
	bToU, gToU, rToU int
	bToV, gToV, rToV int
}

var (
	yuvToBgrCoefs [4]yuvToBgrCoef
	bgrToYuvCoefs [4]bgrToYuvCoef

	// Limited range luma <-> full range gray.
	yToGrayScale = fix(255.0 / 219.0)
	grayToYScale = fix(219.0 / 255.0)
)

func init() {
	for t := pixel.YuvBt601; t <= pixel.YuvTrect871; t++ {
		kr, kb, full := t.Coefficients()
		kg := 1 - kr - kb

		yScale, uvScale, yOffset := 255.0/219.0, 255.0/224.0, yAdjust
		if full {
			yScale, uvScale, yOffset = 1, 1, 0
		}
		yuvToBgrCoefs[t] = yuvToBgrCoef{
			yOffset: yOffset,
			y:       fix(yScale),
			uToB:    fix(2 * (1 - kb) * uvScale),
			uToG:    fix(2 * kb * (1 - kb) / kg * uvScale),
			vToG:    fix(2 * kr * (1 - kr) / kg * uvScale),
			vToR:    fix(2 * (1 - kr) * uvScale),
		}

		yScale, uvScale = 1/yScale, 1/uvScale
		bgrToYuvCoefs[t] = bgrToYuvCoef{
			yOffset: yOffset,
			bToY:    fix(kb * yScale),
			gToY:    fix(kg * yScale),
			rToY:    fix(kr * yScale),
			bToU:    fix(0.5 * uvScale),
			gToU:    fix(-kg / (2 * (1 - kb)) * uvScale),
			rToU:    fix(-kr / (2 * (1 - kb)) * uvScale),
			bToV:    fix(-kb / (2 * (1 - kr)) * uvScale),
			gToV:    fix(-kg / (2 * (1 - kr)) * uvScale),
			rToV:    fix(0.5 * uvScale),
		}
	}
}

func fix(v float64) int {
	return int(math.Round(v * (1 << yuvShift)))
}

func clampByte(v int) byte {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return byte(v)
}

func yuvIndex(t pixel.YuvType) pixel.YuvType {
	if !t.Valid() {
		return pixel.YuvBt601
	}
	return t
}

func (c *yuvToBgrCoef) bgr(y, u, v byte) (b, g, r byte) {
	yy := (int(y) - c.yOffset) * c.y
	uu := int(u) - uvAdjust
	vv := int(v) - uvAdjust
	b = clampByte((yy + c.uToB*uu + yuvRound) >> yuvShift)
	g = clampByte((yy - c.uToG*uu - c.vToG*vv + yuvRound) >> yuvShift)
	r = clampByte((yy + c.vToR*vv + yuvRound) >> yuvShift)
	return
}

func (c *bgrToYuvCoef) y(b, g, r int) byte {
	return clampByte((c.bToY*b+c.gToY*g+c.rToY*r+yuvRound)>>yuvShift + c.yOffset)
}

func (c *bgrToYuvCoef) uv(b, g, r int) (u, v byte) {
	u = clampByte((c.bToU*b+c.gToU*g+c.rToU*r+yuvRound)>>yuvShift + uvAdjust)
	v = clampByte((c.bToV*b+c.gToV*g+c.rToV*r+yuvRound)>>yuvShift + uvAdjust)
	return
}

// packedOrder is the byte position of blue, green, red and alpha within a
// pixel. A negative alpha means the pixel has no alpha channel.
type packedOrder struct {
	size, b, g, r, a int
}

var (
	orderBgr  = packedOrder{3, 0, 1, 2, -1}
	orderBgra = packedOrder{4, 0, 1, 2, 3}
	orderRgb  = packedOrder{3, 2, 1, 0, -1}
)

func (b *Base) yuv420pToPacked(y []byte, yStride int, u []byte, uStride int, v []byte, vStride int,
	width, height int, dst []byte, dstStride int, alpha uint8, order packedOrder, yuv pixel.YuvType) {
	c := &yuvToBgrCoefs[yuvIndex(yuv)]
	b.rows(height/2, func(begin, end int) {
		for row := begin; row < end; row++ {
			uRow := u[row*uStride:]
			vRow := v[row*vStride:]
			for dy := 0; dy < 2; dy++ {
				yRow := y[(2*row+dy)*yStride:]
				d := dst[(2*row+dy)*dstStride:]
				for x := 0; x < width; x++ {
					bb, gg, rr := c.bgr(yRow[x], uRow[x/2], vRow[x/2])
					p := d[x*order.size : x*order.size+order.size]
					p[order.b], p[order.g], p[order.r] = bb, gg, rr
					if order.a >= 0 {
						p[order.a] = alpha
					}
				}
			}
		}
	})
}

func (b *Base) Yuv420pToBgr(y []byte, yStride int, u []byte, uStride int, v []byte, vStride int, width, height int, dst []byte, dstStride int, yuv pixel.YuvType) {
	b.yuv420pToPacked(y, yStride, u, uStride, v, vStride, width, height, dst, dstStride, 0, orderBgr, yuv)
}

func (b *Base) Yuv420pToBgra(y []byte, yStride int, u []byte, uStride int, v []byte, vStride int, width, height int, dst []byte, dstStride int, alpha uint8, yuv pixel.YuvType) {
	b.yuv420pToPacked(y, yStride, u, uStride, v, vStride, width, height, dst, dstStride, alpha, orderBgra, yuv)
}

func (b *Base) Yuv420pToRgb(y []byte, yStride int, u []byte, uStride int, v []byte, vStride int, width, height int, dst []byte, dstStride int, yuv pixel.YuvType) {
	b.yuv420pToPacked(y, yStride, u, uStride, v, vStride, width, height, dst, dstStride, 0, orderRgb, yuv)
}

// packedToYuv420p computes luma per pixel and chroma from the average colour
// of every 2x2 block.
func (b *Base) packedToYuv420p(src []byte, srcStride, width, height int, y []byte, yStride int,
	u []byte, uStride int, v []byte, vStride int, order packedOrder, yuv pixel.YuvType) {
	c := &bgrToYuvCoefs[yuvIndex(yuv)]
	b.rows(height/2, func(begin, end int) {
		for row := begin; row < end; row++ {
			s0 := src[2*row*srcStride:]
			s1 := src[(2*row+1)*srcStride:]
			y0 := y[2*row*yStride:]
			y1 := y[(2*row+1)*yStride:]
			uRow := u[row*uStride:]
			vRow := v[row*vStride:]
			for x := 0; x < width/2; x++ {
				var sb, sg, sr int
				for _, p := range [4][]byte{
					s0[2*x*order.size:], s0[(2*x+1)*order.size:],
					s1[2*x*order.size:], s1[(2*x+1)*order.size:],
				} {
					sb += int(p[order.b])
					sg += int(p[order.g])
					sr += int(p[order.r])
				}
				p := s0[2*x*order.size:]
				y0[2*x] = c.y(int(p[order.b]), int(p[order.g]), int(p[order.r]))
				p = s0[(2*x+1)*order.size:]
				y0[2*x+1] = c.y(int(p[order.b]), int(p[order.g]), int(p[order.r]))
				p = s1[2*x*order.size:]
				y1[2*x] = c.y(int(p[order.b]), int(p[order.g]), int(p[order.r]))
				p = s1[(2*x+1)*order.size:]
				y1[2*x+1] = c.y(int(p[order.b]), int(p[order.g]), int(p[order.r]))
				uRow[x], vRow[x] = c.uv((sb+2)>>2, (sg+2)>>2, (sr+2)>>2)
			}
		}
	})
}

func (b *Base) BgrToYuv420p(src []byte, srcStride, width, height int, y []byte, yStride int, u []byte, uStride int, v []byte, vStride int, yuv pixel.YuvType) {
	b.packedToYuv420p(src, srcStride, width, height, y, yStride, u, uStride, v, vStride, orderBgr, yuv)
}

func (b *Base) BgraToYuv420p(src []byte, srcStride, width, height int, y []byte, yStride int, u []byte, uStride int, v []byte, vStride int, yuv pixel.YuvType) {
	b.packedToYuv420p(src, srcStride, width, height, y, yStride, u, uStride, v, vStride, orderBgra, yuv)
}

// YToGray expands limited range luma (16..235) to full range gray.
func (b *Base) YToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, width, dst, dstStride, width, height, func(s, d []byte) {
		for i, v := range s {
			d[i] = clampByte(((int(v)-yAdjust)*yToGrayScale + yuvRound) >> yuvShift)
		}
	})
}

// GrayToY compresses full range gray into limited range luma.
func (b *Base) GrayToY(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	b.mapRows(src, srcStride, width, dst, dstStride, width, height, func(s, d []byte) {
		for i, v := range s {
			d[i] = clampByte((int(v)*grayToYScale+yuvRound)>>yuvShift + yAdjust)
		}
	})
}

func (b *Base) InterleaveUv(u []byte, uStride int, v []byte, vStride int, width, height int, uv []byte, uvStride int) {
	b.rows(height, func(begin, end int) {
		for row := begin; row < end; row++ {
			us := u[row*uStride : row*uStride+width]
			vs := v[row*vStride : row*vStride+width]
			d := uv[row*uvStride : row*uvStride+2*width]
			for x := range us {
				d[2*x], d[2*x+1] = us[x], vs[x]
			}
		}
	})
}

func (b *Base) DeinterleaveUv(uv []byte, uvStride, width, height int, u []byte, uStride int, v []byte, vStride int) {
	b.rows(height, func(begin, end int) {
		for row := begin; row < end; row++ {
			s := uv[row*uvStride : row*uvStride+2*width]
			us := u[row*uStride : row*uStride+width]
			vs := v[row*vStride : row*vStride+width]
			for x := range us {
				us[x], vs[x] = s[2*x], s[2*x+1]
			}
		}
	})
}
