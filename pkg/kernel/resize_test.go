package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simdkit/simd/pkg/pixel"
)

func TestResizerNearest(t *testing.T) {
	testCases := map[string]struct {
		channels int
		src      []byte
		expected []byte
	}{
		"Gray": {
			channels: 1,
			src:      []byte{1, 2, 3, 4},
			expected: []byte{
				1, 1, 2, 2,
				1, 1, 2, 2,
				3, 3, 4, 4,
				3, 3, 4, 4,
			},
		},
		"Uv": {
			channels: 2,
			src:      []byte{1, 10, 2, 20, 3, 30, 4, 40},
			expected: []byte{
				1, 10, 1, 10, 2, 20, 2, 20,
				1, 10, 1, 10, 2, 20, 2, 20,
				3, 30, 3, 30, 4, 40, 4, 40,
				3, 30, 3, 30, 4, 40, 4, 40,
			},
		},
	}

	b := NewBase()
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			r, err := b.NewResizer(ResizeParams{
				SrcWidth: 2, SrcHeight: 2, DstWidth: 4, DstHeight: 4,
				Channels: tc.channels, Type: ResizeChannelByte, Method: ResizeMethodNearest,
			})
			require.NoError(t, err)
			defer r.Release()

			dst := make([]byte, 4*4*tc.channels)
			r.Run(tc.src, 2*tc.channels, dst, 4*tc.channels)
			assert.Equal(t, tc.expected, dst)
		})
	}
}

func TestResizerBilinearUniform(t *testing.T) {
	b := NewBase()
	for _, m := range []ResizeMethod{ResizeMethodBilinear, ResizeMethodBicubic, ResizeMethodArea} {
		t.Run(m.String(), func(t *testing.T) {
			r, err := b.NewResizer(ResizeParams{
				SrcWidth: 8, SrcHeight: 6, DstWidth: 3, DstHeight: 5,
				Channels: 3, Type: ResizeChannelByte, Method: m,
			})
			require.NoError(t, err)
			defer r.Release()

			src := make([]byte, 8*6*3)
			for i := 0; i < len(src); i += 3 {
				src[i], src[i+1], src[i+2] = 10, 100, 200
			}
			dst := make([]byte, 3*5*3)
			r.Run(src, 8*3, dst, 3*3)
			for i := 0; i < len(dst); i += 3 {
				assert.Equal(t, []byte{10, 100, 200}, dst[i:i+3])
			}
		})
	}
}

func TestResizerErrors(t *testing.T) {
	b := NewBase()
	_, err := b.NewResizer(ResizeParams{SrcWidth: 0, SrcHeight: 1, DstWidth: 1, DstHeight: 1, Channels: 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = b.NewResizer(ResizeParams{SrcWidth: 1, SrcHeight: 1, DstWidth: 1, DstHeight: 1, Channels: 1, Type: pixel.ResizeChannelFloat})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = b.NewResizer(ResizeParams{SrcWidth: 1, SrcHeight: 1, DstWidth: 1, DstHeight: 1, Channels: 1, Method: ResizeMethod(77)})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestResizerReleaseIsIdempotent(t *testing.T) {
	b := NewBase()
	r, err := b.NewResizer(ResizeParams{SrcWidth: 1, SrcHeight: 1, DstWidth: 1, DstHeight: 1, Channels: 3})
	require.NoError(t, err)
	r.Release()
	r.Release()

	dst := []byte{7, 7, 7}
	r.Run([]byte{1, 2, 3}, 3, dst, 3)
	assert.Equal(t, []byte{7, 7, 7}, dst)
}

func TestWarpAffine(t *testing.T) {
	src := []byte{
		1, 2, 3,
		4, 5, 6,
	}
	testCases := map[string]struct {
		mat      [6]float32
		flags    WarpAffineFlags
		border   []byte
		expected []byte
	}{
		"Identity": {
			mat:      [6]float32{1, 0, 0, 0, 1, 0},
			flags:    WarpAffineInterpNearest | WarpAffineBorderConstant,
			expected: []byte{1, 2, 3, 4, 5, 6},
		},
		"ShiftConstant": {
			mat:      [6]float32{1, 0, 1, 0, 1, 0},
			flags:    WarpAffineInterpNearest | WarpAffineBorderConstant,
			border:   []byte{9},
			expected: []byte{9, 1, 2, 9, 4, 5},
		},
		"ShiftTransparent": {
			mat:      [6]float32{1, 0, 1, 0, 1, 0},
			flags:    WarpAffineInterpNearest | WarpAffineBorderTransparent,
			expected: []byte{0xee, 1, 2, 0xee, 4, 5},
		},
	}

	b := NewBase()
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			w, err := b.NewWarpAffine(WarpAffineParams{
				SrcWidth: 3, SrcHeight: 2, SrcStride: 3,
				DstWidth: 3, DstHeight: 2, DstStride: 3,
				Channels: 1, Mat: tc.mat, Flags: tc.flags, Border: tc.border,
			})
			require.NoError(t, err)
			defer w.Release()

			dst := []byte{0xee, 0xee, 0xee, 0xee, 0xee, 0xee}
			w.Run(src, dst)
			assert.Equal(t, tc.expected, dst)
		})
	}
}

func TestWarpAffineMultiChannel(t *testing.T) {
	b := NewBase()
	w, err := b.NewWarpAffine(WarpAffineParams{
		SrcWidth: 2, SrcHeight: 1, SrcStride: 6,
		DstWidth: 2, DstHeight: 1, DstStride: 6,
		Channels: 3, Mat: [6]float32{1, 0, 1, 0, 1, 0},
		Flags: WarpAffineInterpNearest, Border: []byte{7, 8, 9},
	})
	require.NoError(t, err)
	defer w.Release()

	dst := make([]byte, 6)
	w.Run([]byte{1, 2, 3, 4, 5, 6}, dst)
	assert.Equal(t, []byte{7, 8, 9, 1, 2, 3}, dst)

	_, err = b.NewWarpAffine(WarpAffineParams{
		SrcWidth: 2, SrcHeight: 1, SrcStride: 6, DstWidth: 2, DstHeight: 1, DstStride: 6,
		Channels: 3, Border: []byte{1},
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSynetSetInput(t *testing.T) {
	b := NewBase()
	lower := []float32{0, 0, 0}
	upper := []float32{1, 2, 255}

	bgr := []byte{
		0, 51, 255, 255, 0, 51,
	}
	nchw := make([]float32, 6)
	b.SynetSetInput(bgr, 2, 1, 6, pixel.FormatBgr24, lower, upper, nchw, 3, TensorFormatNchw)
	assert.InDeltaSlice(t, []float32{0, 1, 0.4, 0, 255, 51}, nchw, 1e-5)

	nhwc := make([]float32, 6)
	b.SynetSetInput(bgr, 2, 1, 6, pixel.FormatBgr24, lower, upper, nhwc, 3, TensorFormatNhwc)
	assert.InDeltaSlice(t, []float32{0, 0.4, 255, 1, 0, 51}, nhwc, 1e-5)

	gray := make([]float32, 2)
	b.SynetSetInput([]byte{0, 255}, 2, 1, 2, pixel.FormatGray8, []float32{-1}, []float32{1}, gray, 1, TensorFormatNchw)
	assert.InDeltaSlice(t, []float32{-1, 1}, gray, 1e-5)
}

func TestTensorData(t *testing.T) {
	testCases := map[string]struct {
		data TensorData
		abi  int
		size int
	}{
		"FP32":    {data: TensorDataFP32, abi: 0, size: 4},
		"INT32":   {data: TensorDataINT32, abi: 0, size: 4},
		"INT8":    {data: TensorDataINT8, abi: 1, size: 1},
		"UINT8":   {data: TensorDataUINT8, abi: 2, size: 1},
		"INT64":   {data: TensorDataINT64, abi: 3, size: 8},
		"UINT64":  {data: TensorDataUINT64, abi: 4, size: 8},
		"BOOL":    {data: TensorDataBOOL, abi: 5, size: 1},
		"BF16":    {data: TensorDataBF16, abi: 6, size: 2},
		"FP16":    {data: TensorDataFP16, abi: 7, size: 2},
		"Unknown": {data: TensorDataUnknown, abi: -1, size: 0},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.abi, int(tc.data))
			assert.Equal(t, tc.size, tc.data.Size())
		})
	}

	assert.Equal(t, TensorDataFP32, TensorDataINT32)
	assert.Equal(t, "FP32", TensorDataINT32.String())
	assert.Equal(t, "FP16", TensorDataFP16.String())
	assert.Equal(t, "Unknown", TensorData(42).String())
}
