package simd

import (
	"errors"
	"fmt"

	"github.com/simdkit/simd/pkg/kernel"
	"github.com/simdkit/simd/pkg/pixel"
)

var (
	// ErrInvalidArgument is returned for malformed sizes, strides, alignments
	// or parameter slices.
	ErrInvalidArgument = kernel.ErrInvalidArgument
	// ErrUnsupportedFormat is returned when a pixel or frame format is outside
	// the set an operation accepts.
	ErrUnsupportedFormat = pixel.ErrUnsupportedFormat
	// ErrInvalidDimensions is returned when a YUV 4:2:0 frame is given an odd
	// width or height.
	ErrInvalidDimensions = pixel.ErrInvalidDimensions
	// ErrUnsupportedConversion is wrapped by ConversionError.
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrSizeMismatch          = errors.New("size mismatch")
	ErrIncompatibleFormat    = errors.New("incompatible format")
	// ErrResourceUnavailable is returned when the native library or an image
	// file can't be found.
	ErrResourceUnavailable = errors.New("resource unavailable")
)

// ConversionError is returned by Frame.Convert for a pair of formats that has
// no conversion.
type ConversionError struct {
	From, To pixel.FrameFormat
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion from %s to %s is not supported", e.From, e.To)
}

func (e *ConversionError) Unwrap() error {
	return ErrUnsupportedConversion
}
