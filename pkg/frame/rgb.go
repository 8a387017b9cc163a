package frame

import (
	"encoding/binary"

	"github.com/simdkit/simd"
	"github.com/simdkit/simd/pkg/pixel"
)

var packedSources = map[pixel.Format]Format{
	pixel.FormatRgb24:  FormatRGB24,
	pixel.FormatBgra32: FormatBGRA,
	pixel.FormatGray8:  FormatGREY,
}

// decodePacked views buf as a single plane frame without copying.
func decodePacked(format pixel.Format) func(*simd.Context) decoderFunc {
	return func(ctx *simd.Context) decoderFunc {
		f := packedSources[format]
		ff, _ := pixel.FrameFormatOf(format)
		return func(buf []byte, width, height int) (*simd.Frame, func(), error) {
			if err := checkSize(f, buf, width, height); err != nil {
				return nil, noop, err
			}
			img, err := ctx.View(format, width, height, format.RowSize(width), buf)
			if err != nil {
				return nil, noop, err
			}
			fr, err := ctx.FrameFromPlanes(ff, width, height, pixel.YuvUnknown, img)
			if err != nil {
				return nil, noop, err
			}
			return fr, noop, nil
		}
	}
}

// decodeARGB reorders buf in place into BGRA and views it.
func decodeARGB(ctx *simd.Context) decoderFunc {
	bgra := decodePacked(pixel.FormatBgra32)(ctx)
	return func(buf []byte, width, height int) (*simd.Frame, func(), error) {
		if err := checkSize(FormatARGB, buf, width, height); err != nil {
			return nil, noop, err
		}
		size := frameSizeBGRA(width, height)
		for i := 0; i < size; i += 4 {
			binary.LittleEndian.PutUint32(buf[i:], binary.BigEndian.Uint32(buf[i:]))
		}
		return bgra(buf, width, height)
	}
}
