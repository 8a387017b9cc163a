package video

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simdkit/simd"
	"github.com/simdkit/simd/pkg/pixel"
)

func TestConvert(t *testing.T) {
	cases := map[string]struct {
		src      *simd.Frame
		format   pixel.FrameFormat
		yuv      pixel.YuvType
		expected []byte
	}{
		"GrayToI420FullRange": {
			src:      uniformFrame(t, pixel.FrameGray8, 4, 4, pixel.YuvUnknown, 100),
			format:   pixel.FrameYuv420p,
			yuv:      pixel.YuvFullRange,
			expected: []byte{100, 128, 128},
		},
		"GrayToNv12": {
			src:      uniformFrame(t, pixel.FrameGray8, 4, 2, pixel.YuvUnknown, 100),
			format:   pixel.FrameNv12,
			yuv:      pixel.YuvFullRange,
			expected: []byte{100, 128},
		},
		"Nv12ToI420": {
			src:      uniformFrame(t, pixel.FrameNv12, 6, 4, pixel.YuvBt601, 50, 128),
			format:   pixel.FrameYuv420p,
			yuv:      pixel.YuvBt601,
			expected: []byte{50, 128, 128},
		},
		"I420ToGray": {
			src:      uniformFrame(t, pixel.FrameYuv420p, 2, 2, pixel.YuvFullRange, 77, 10, 200),
			format:   pixel.FrameGray8,
			expected: []byte{77},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			c.src.SetTimestamp(3 * time.Second)
			src := &source{frame: c.src}
			r := Convert(c.format, c.yuv, simd.DefaultAlpha)(src)

			for i := 0; i < 2; i++ {
				out, release, err := r.Read()
				require.NoError(t, err)
				assert.Equal(t, c.format, out.Format())
				assert.True(t, out.EqualSize(c.src))
				assert.Equal(t, 3*time.Second, out.Timestamp())
				for p, v := range c.expected {
					requireUniform(t, out.Plane(p), v)
				}
				release()
			}
			assert.Equal(t, 2, src.released)
		})
	}
}

func TestConvertReusesFrame(t *testing.T) {
	src := &source{frame: uniformFrame(t, pixel.FrameBgr24, 4, 4, pixel.YuvUnknown, 9)}
	r := ToRGBA(src)

	first, release, err := r.Read()
	require.NoError(t, err)
	release()
	data := first.Plane(0).Data()

	second, release, err := r.Read()
	require.NoError(t, err)
	release()
	assert.Same(t, first, second)
	assert.Same(t, &data[0], &second.Plane(0).Data()[0])
	assert.Equal(t, []byte{9, 9, 9, 0xff}, second.Plane(0).Pixels()[:4])
}

func TestConvertPassThrough(t *testing.T) {
	frame := uniformFrame(t, pixel.FrameYuv420p, 4, 4, pixel.YuvBt709, 16, 128, 128)
	src := &source{frame: frame}

	out, release, err := ToI420(src).Read()
	require.NoError(t, err)
	assert.Same(t, frame, out)
	assert.Zero(t, src.released)
	release()
	assert.Equal(t, 1, src.released)
}

func TestConvertUnsupported(t *testing.T) {
	src := &source{frame: uniformFrame(t, pixel.FrameLab24, 2, 2, pixel.YuvUnknown, 0)}

	_, _, err := ToRGBA(src).Read()
	var convErr *simd.ConversionError
	assert.ErrorAs(t, err, &convErr)
	assert.Equal(t, 1, src.released)
}

func BenchmarkToI420(b *testing.B) {
	sizes := map[string][2]int{
		"480p":  {720, 480},
		"1080p": {1920, 1080},
	}
	for name, sz := range sizes {
		b.Run(name, func(b *testing.B) {
			src := &source{frame: uniformFrame(b, pixel.FrameBgra32, sz[0], sz[1], pixel.YuvUnknown, 40)}
			r := ToI420(src)
			for i := 0; i < b.N; i++ {
				_, release, err := r.Read()
				if err != nil {
					b.Fatal(err)
				}
				release()
			}
		})
	}
}
