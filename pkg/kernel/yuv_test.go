package kernel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simdkit/simd/pkg/pixel"
)

func TestInterleaveUvRoundTrip(t *testing.T) {
	b := NewBase(WithThreads(3))
	for _, w := range testWidths {
		h := 37
		t.Run(fmt.Sprint(w), func(t *testing.T) {
			u := make([]byte, w*h)
			v := make([]byte, w*h)
			randomize(u)
			randomize(v)

			uv := make([]byte, 2*w*h)
			b.InterleaveUv(u, w, v, w, w, h, uv, 2*w)
			assert.Equal(t, u[0], uv[0])
			assert.Equal(t, v[0], uv[1])

			u2 := make([]byte, w*h)
			v2 := make([]byte, w*h)
			b.DeinterleaveUv(uv, 2*w, w, h, u2, w, v2, w)
			assert.Equal(t, u, u2)
			assert.Equal(t, v, v2)
		})
	}
}

func TestFullRangeLumaIsIdentity(t *testing.T) {
	b := NewBase()
	const w, h = 16, 2
	y := make([]byte, w*h)
	for i := range y {
		y[i] = byte(i * 8)
	}
	u := []byte{128, 128, 128, 128, 128, 128, 128, 128}
	v := []byte{128, 128, 128, 128, 128, 128, 128, 128}

	bgr := make([]byte, 3*w*h)
	b.Yuv420pToBgr(y, w, u, w/2, v, w/2, w, h, bgr, 3*w, pixel.YuvFullRange)
	for i, yy := range y {
		require.Equal(t, []byte{yy, yy, yy}, bgr[3*i:3*i+3], "pixel %d", i)
	}

	y2 := make([]byte, w*h)
	u2 := make([]byte, w/2)
	v2 := make([]byte, w/2)
	b.BgrToYuv420p(bgr, 3*w, w, h, y2, w, u2, w/2, v2, w/2, pixel.YuvFullRange)
	assert.Equal(t, y, y2)
}

func TestYuvColorRoundTrip(t *testing.T) {
	colors := [][3]byte{
		{0, 0, 0}, {255, 255, 255}, {30, 200, 90}, {255, 0, 0},
		{0, 0, 255}, {128, 64, 32}, {17, 17, 240},
	}
	for _, yuv := range []pixel.YuvType{pixel.YuvBt601, pixel.YuvBt709, pixel.YuvBt2020, pixel.YuvTrect871} {
		for _, c := range colors {
			t.Run(fmt.Sprintf("%s/%v", yuv, c), func(t *testing.T) {
				b := NewBase()
				const w, h = 4, 2
				bgra := make([]byte, 4*w*h)
				for i := 0; i < w*h; i++ {
					copy(bgra[4*i:], []byte{c[0], c[1], c[2], 0xff})
				}
				y := make([]byte, w*h)
				u := make([]byte, w*h/4)
				v := make([]byte, w*h/4)
				b.BgraToYuv420p(bgra, 4*w, w, h, y, w, u, w/2, v, w/2, yuv)

				out := make([]byte, 4*w*h)
				b.Yuv420pToBgra(y, w, u, w/2, v, w/2, w, h, out, 4*w, 0x10, yuv)
				for i := 0; i < w*h; i++ {
					for ch := 0; ch < 3; ch++ {
						assert.InDelta(t, int(c[ch]), int(out[4*i+ch]), 3, "pixel %d channel %d", i, ch)
					}
					assert.Equal(t, byte(0x10), out[4*i+3])
				}
			})
		}
	}
}

func TestYuvRangeMapping(t *testing.T) {
	b := NewBase()
	gray := make([]byte, 4)
	b.YToGray([]byte{16, 235, 0, 255}, 4, 4, 1, gray, 4)
	assert.Equal(t, []byte{0, 255, 0, 255}, gray)

	y := make([]byte, 2)
	b.GrayToY([]byte{0, 255}, 2, 2, 1, y, 2)
	assert.Equal(t, []byte{16, 235}, y)
}

func TestUnknownYuvFallsBackToBt601(t *testing.T) {
	assert.Equal(t, yuvToBgrCoefs[pixel.YuvBt601], yuvToBgrCoefs[yuvIndex(pixel.YuvUnknown)])
	assert.NotEqual(t, yuvToBgrCoefs[pixel.YuvBt601], yuvToBgrCoefs[pixel.YuvBt709])
}

func TestBgrToLab(t *testing.T) {
	b := NewBase()
	src := []byte{
		0, 0, 0,
		255, 255, 255,
	}
	dst := make([]byte, 6)
	b.BgrToLab(src, 6, 2, 1, dst, 6)
	assert.Equal(t, []byte{0, 128, 128}, dst[:3])
	assert.Equal(t, byte(255), dst[3])
	assert.InDelta(t, 128, int(dst[4]), 1)
	assert.InDelta(t, 128, int(dst[5]), 1)

	// Pure red has a strongly positive a*.
	b.BgrToLab([]byte{0, 0, 255}, 3, 1, 1, dst, 3)
	assert.Greater(t, dst[1], byte(200))
}
