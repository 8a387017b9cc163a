package frame

import (
	"fmt"

	"github.com/simdkit/simd"
	"github.com/simdkit/simd/pkg/pixel"
)

// NewDecoder returns a decoder for f. Frames are created on ctx, nil means
// simd.Default().
func NewDecoder(ctx *simd.Context, f Format) (Decoder, error) {
	if ctx == nil {
		ctx = simd.Default()
	}
	var buildDecoder func(*simd.Context) decoderFunc

	switch f {
	case FormatI420:
		buildDecoder = decodeI420
	case FormatNV12:
		buildDecoder = decodeNV12
	case FormatNV21:
		buildDecoder = decodeNV21
	case FormatYUY2:
		buildDecoder = decodeYUY2
	case FormatUYVY:
		buildDecoder = decodeUYVY
	case FormatRGB24:
		buildDecoder = decodePacked(pixel.FormatRgb24)
	case FormatBGRA:
		buildDecoder = decodePacked(pixel.FormatBgra32)
	case FormatGREY:
		buildDecoder = decodePacked(pixel.FormatGray8)
	case FormatARGB:
		buildDecoder = decodeARGB
	case FormatMJPEG:
		buildDecoder = decodeMJPEG
	default:
		return nil, fmt.Errorf("%s: %w", f, pixel.ErrUnsupportedFormat)
	}

	return buildDecoder(ctx), nil
}

func noop() {}
