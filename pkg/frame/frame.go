// Package frame turns raw capture buffers into simd frames.
package frame

import (
	"errors"

	"github.com/simdkit/simd"
)

// ErrShortFrame is returned when a buffer is smaller than its format and size
// require.
var ErrShortFrame = errors.New("frame buffer too short")

// Decoder decodes one raw buffer. The returned release func must be called
// once the frame is no longer needed. Decoders that can view buf directly do
// so, the frame is then only valid as long as buf is.
type Decoder interface {
	Decode(buf []byte, width, height int) (*simd.Frame, func(), error)
}

// DecoderFunc is a proxy type for Decoder
type decoderFunc func(buf []byte, width, height int) (*simd.Frame, func(), error)

func (f decoderFunc) Decode(buf []byte, width, height int) (*simd.Frame, func(), error) {
	return f(buf, width, height)
}
