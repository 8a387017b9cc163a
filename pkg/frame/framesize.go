package frame

import (
	"fmt"

	"github.com/simdkit/simd"
)

// FrameSizeMap returns the number of bytes a frame occupies in the given
// format. Compressed formats have no fixed size and are absent.
var FrameSizeMap = map[Format]frameSizeFunc{
	FormatI420:  frameSizeI420,
	FormatNV21:  frameSizeNV21,
	FormatNV12:  frameSizeNV21, // NV12 and NV21 have the same frame size
	FormatYUY2:  frameSizeYUY2,
	FormatUYVY:  frameSizeYUY2, // UYVY and YUY2 have the same frame size
	FormatRGB24: frameSizeRGB24,
	FormatBGRA:  frameSizeBGRA,
	FormatARGB:  frameSizeBGRA,
	FormatGREY:  frameSizeGREY,
}

type frameSizeFunc func(width, height int) int

func frameSizeYUY2(width, height int) int {
	return 2 * width * height
}

func frameSizeI420(width, height int) int {
	yi := width * height
	return yi + 2*(width/2)*(height/2)
}

func frameSizeNV21(width, height int) int {
	return frameSizeI420(width, height)
}

func frameSizeRGB24(width, height int) int {
	return 3 * width * height
}

func frameSizeBGRA(width, height int) int {
	return 4 * width * height
}

func frameSizeGREY(width, height int) int {
	return width * height
}

func checkSize(f Format, buf []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%s frame of %dx%d: %w", f, width, height, simd.ErrInvalidArgument)
	}
	if need := FrameSizeMap[f](width, height); len(buf) < need {
		return fmt.Errorf("%s %dx%d needs %d bytes, got %d: %w", f, width, height, need, len(buf), ErrShortFrame)
	}
	return nil
}
