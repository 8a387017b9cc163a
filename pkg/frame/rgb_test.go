package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simdkit/simd/pkg/pixel"
)

func TestDecodePacked(t *testing.T) {
	testCases := map[string]struct {
		format   Format
		input    []byte
		frame    pixel.FrameFormat
		expected []byte
	}{
		"ARGB": {
			format:   FormatARGB,
			input:    []byte{4, 3, 2, 1, 8, 7, 6, 5},
			frame:    pixel.FrameBgra32,
			expected: []byte{1, 2, 3, 4, 5, 6, 7, 8},
		},
		"BGRA": {
			format:   FormatBGRA,
			input:    []byte{1, 2, 3, 4, 5, 6, 7, 8},
			frame:    pixel.FrameBgra32,
			expected: []byte{1, 2, 3, 4, 5, 6, 7, 8},
		},
		"RGB24": {
			format:   FormatRGB24,
			input:    []byte{1, 2, 3, 4, 5, 6},
			frame:    pixel.FrameRgb24,
			expected: []byte{1, 2, 3, 4, 5, 6},
		},
		"GREY": {
			format:   FormatGREY,
			input:    []byte{9, 8},
			frame:    pixel.FrameGray8,
			expected: []byte{9, 8},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			planes, format, release := decode(t, tc.format, tc.input, 2, 1)
			defer release()
			assert.Equal(t, tc.frame, format)
			assert.Equal(t, [][]byte{tc.expected}, planes)
		})
	}
}
