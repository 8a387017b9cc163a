package video

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simdkit/simd"
	"github.com/simdkit/simd/pkg/kernel"
	"github.com/simdkit/simd/pkg/pixel"
)

// source serves the same frame on every Read and counts releases.
type source struct {
	frame    *simd.Frame
	reads    int
	released int
	err      error
}

func (s *source) Read() (*simd.Frame, func(), error) {
	if s.err != nil {
		return nil, noop, s.err
	}
	s.reads++
	return s.frame, func() { s.released++ }, nil
}

// uniformFrame fills every channel of plane i with values[i].
func uniformFrame(t testing.TB, format pixel.FrameFormat, width, height int, yuv pixel.YuvType, values ...byte) *simd.Frame {
	t.Helper()
	f, err := simd.NewFrame(format, width, height, yuv)
	require.NoError(t, err)
	for i := 0; i < f.PlaneCount(); i++ {
		p := f.Plane(i)
		require.NoError(t, p.Fill(bytes.Repeat(values[i:i+1], p.Format().ChannelCount())))
	}
	return f
}

func requireUniform(t *testing.T, img *simd.Image, value byte) {
	t.Helper()
	assert.Equal(t, bytes.Repeat([]byte{value}, img.Width()*img.Height()*img.Format().PixelSize()), img.Pixels())
}

func TestMerge(t *testing.T) {
	var order []string
	mark := func(name string) TransformFunc {
		return func(r Reader) Reader {
			return ReaderFunc(func() (*simd.Frame, func(), error) {
				order = append(order, name)
				return r.Read()
			})
		}
	}

	src := &source{frame: uniformFrame(t, pixel.FrameGray8, 2, 2, pixel.YuvUnknown, 1)}
	r := Merge(mark("first"), nil, mark("second"))(src)

	frame, release, err := r.Read()
	require.NoError(t, err)
	release()
	assert.Same(t, src.frame, frame)
	assert.Equal(t, []string{"second", "first"}, order)
	assert.Equal(t, 1, src.released)
}

func TestReaderError(t *testing.T) {
	errBoom := errors.New("boom")
	src := &source{err: errBoom}

	transforms := map[string]TransformFunc{
		"Convert":       Convert(pixel.FrameBgr24, pixel.YuvUnknown, simd.DefaultAlpha),
		"Scale":         Scale(4, 4, kernel.ResizeMethodNearest),
		"DetectChanges": DetectChanges(0, func(AdvancedProperty) {}),
		"Throttle":      Throttle(10),
	}
	for name, transform := range transforms {
		t.Run(name, func(t *testing.T) {
			frame, release, err := transform(src).Read()
			assert.ErrorIs(t, err, errBoom)
			assert.Nil(t, frame)
			assert.NotNil(t, release)
		})
	}
}
