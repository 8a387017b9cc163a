package pixel

import (
	"errors"
	"fmt"
)

// FrameFormat is the layout of a multi-plane frame.
type FrameFormat int

const (
	FrameEmpty FrameFormat = iota
	// FrameNv12 is a semi-planar 4:2:0 frame: full resolution Y followed by
	// a half resolution interleaved UV plane.
	FrameNv12
	// FrameYuv420p is a planar 4:2:0 frame: Y, U and V planes, chroma at half
	// resolution.
	FrameYuv420p
	FrameBgra32
	FrameBgr24
	FrameGray8
	FrameRgb24
	FrameRgba32
	FrameLab24

	frameFormatCount
)

// FrameFormatCount is the number of known frame formats, including Empty.
const FrameFormatCount = int(frameFormatCount)

// MaxPlanes is the largest plane count of any frame format.
const MaxPlanes = 4

// ErrInvalidDimensions is returned when a subsampled frame is requested with an
// odd width or height.
var ErrInvalidDimensions = errors.New("invalid frame dimensions")

var frameNames = [frameFormatCount]string{
	FrameEmpty:   "Empty",
	FrameNv12:    "Nv12",
	FrameYuv420p: "Yuv420p",
	FrameBgra32:  "Bgra32",
	FrameBgr24:   "Bgr24",
	FrameGray8:   "Gray8",
	FrameRgb24:   "Rgb24",
	FrameRgba32:  "Rgba32",
	FrameLab24:   "Lab24",
}

// Valid reports whether f is one of the known frame formats.
func (f FrameFormat) Valid() bool {
	return f >= 0 && f < frameFormatCount
}

func (f FrameFormat) String() string {
	if !f.Valid() {
		return fmt.Sprintf("FrameFormat(%d)", int(f))
	}
	return frameNames[f]
}

// IsYuv reports whether the frame carries YUV 4:2:0 planes.
func (f FrameFormat) IsYuv() bool {
	return f == FrameNv12 || f == FrameYuv420p
}

// PlaneCount returns the number of planes of f.
func (f FrameFormat) PlaneCount() int {
	switch f {
	case FrameNv12:
		return 2
	case FrameYuv420p:
		return 3
	case FrameBgra32, FrameBgr24, FrameGray8, FrameRgb24, FrameRgba32, FrameLab24:
		return 1
	}
	return 0
}

// PixelFormat returns the pixel format of a single plane frame. YUV and empty
// frames report FormatEmpty.
func (f FrameFormat) PixelFormat() Format {
	switch f {
	case FrameBgra32:
		return FormatBgra32
	case FrameBgr24:
		return FormatBgr24
	case FrameGray8:
		return FormatGray8
	case FrameRgb24:
		return FormatRgb24
	case FrameRgba32:
		return FormatRgba32
	case FrameLab24:
		return FormatLab24
	}
	return FormatEmpty
}

// PlaneLayout is the format and size of a single frame plane.
type PlaneLayout struct {
	Format        Format
	Width, Height int
}

// Planes computes the plane layout of a width x height frame.
func (f FrameFormat) Planes(width, height int) ([]PlaneLayout, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%s: %w", f, ErrUnsupportedFormat)
	}
	if f.IsYuv() && (width&1 != 0 || height&1 != 0) {
		return nil, fmt.Errorf("%s requires even width and height, got %dx%d: %w", f, width, height, ErrInvalidDimensions)
	}

	switch f {
	case FrameEmpty:
		return nil, nil
	case FrameNv12:
		return []PlaneLayout{
			{FormatGray8, width, height},
			{FormatUv16, width / 2, height / 2},
		}, nil
	case FrameYuv420p:
		return []PlaneLayout{
			{FormatGray8, width, height},
			{FormatGray8, width / 2, height / 2},
			{FormatGray8, width / 2, height / 2},
		}, nil
	}
	return []PlaneLayout{{f.PixelFormat(), width, height}}, nil
}

// FrameFormatOf returns the single plane frame format matching a pixel format.
func FrameFormatOf(p Format) (FrameFormat, bool) {
	switch p {
	case FormatBgra32:
		return FrameBgra32, true
	case FormatBgr24:
		return FrameBgr24, true
	case FormatGray8:
		return FrameGray8, true
	case FormatRgb24:
		return FrameRgb24, true
	case FormatRgba32:
		return FrameRgba32, true
	case FormatLab24:
		return FrameLab24, true
	}
	return FrameEmpty, false
}
