// Package pixel describes pixel and frame memory layouts. Every value in this
// package is a fixed lookup and carries no state.
package pixel

import (
	"errors"
	"fmt"
)

// Format is the pixel format of a single plane. The numeric values are part of
// the native ABI and must not be reordered.
type Format int

const (
	// FormatEmpty is an undefined pixel format.
	FormatEmpty Format = iota
	// FormatGray8 is 8-bit gray.
	FormatGray8
	// FormatUv16 is two interleaved 8-bit channels (U and V).
	FormatUv16
	// FormatBgr24 is 24-bit BGR.
	FormatBgr24
	// FormatBgra32 is 32-bit BGRA.
	FormatBgra32
	// FormatInt16 is a single signed 16-bit channel.
	FormatInt16
	// FormatInt32 is a single signed 32-bit channel.
	FormatInt32
	// FormatInt64 is a single signed 64-bit channel.
	FormatInt64
	// FormatFloat is a single 32-bit float channel.
	FormatFloat
	// FormatDouble is a single 64-bit float channel.
	FormatDouble
	// FormatBayerGrbg is an 8-bit Bayer mosaic (GRBG).
	FormatBayerGrbg
	// FormatBayerGbrg is an 8-bit Bayer mosaic (GBRG).
	FormatBayerGbrg
	// FormatBayerRggb is an 8-bit Bayer mosaic (RGGB).
	FormatBayerRggb
	// FormatBayerBggr is an 8-bit Bayer mosaic (BGGR).
	FormatBayerBggr
	// FormatHsv24 is 24-bit HSV.
	FormatHsv24
	// FormatHsl24 is 24-bit HSL.
	FormatHsl24
	// FormatRgb24 is 24-bit RGB.
	FormatRgb24
	// FormatRgba32 is 32-bit RGBA.
	FormatRgba32
	// FormatUyvy16 is packed 4:2:2 UYVY, two bytes per pixel.
	FormatUyvy16
	// FormatArgb32 is 32-bit ARGB.
	FormatArgb32
	// FormatLab24 is 24-bit CIE Lab.
	FormatLab24

	formatCount
)

// ErrUnsupportedFormat is returned by lookups on formats outside of a
// supported set.
var ErrUnsupportedFormat = errors.New("unsupported pixel format")

type formatInfo struct {
	name        string
	pixelSize   int
	channelSize int
}

var formats = [formatCount]formatInfo{
	FormatEmpty:     {"Empty", 0, 0},
	FormatGray8:     {"Gray8", 1, 1},
	FormatUv16:      {"Uv16", 2, 1},
	FormatBgr24:     {"Bgr24", 3, 1},
	FormatBgra32:    {"Bgra32", 4, 1},
	FormatInt16:     {"Int16", 2, 2},
	FormatInt32:     {"Int32", 4, 4},
	FormatInt64:     {"Int64", 8, 8},
	FormatFloat:     {"Float", 4, 4},
	FormatDouble:    {"Double", 8, 8},
	FormatBayerGrbg: {"BayerGrbg", 1, 1},
	FormatBayerGbrg: {"BayerGbrg", 1, 1},
	FormatBayerRggb: {"BayerRggb", 1, 1},
	FormatBayerBggr: {"BayerBggr", 1, 1},
	FormatHsv24:     {"Hsv24", 3, 1},
	FormatHsl24:     {"Hsl24", 3, 1},
	FormatRgb24:     {"Rgb24", 3, 1},
	FormatRgba32:    {"Rgba32", 4, 1},
	FormatUyvy16:    {"Uyvy16", 2, 1},
	FormatArgb32:    {"Argb32", 4, 1},
	FormatLab24:     {"Lab24", 3, 1},
}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	return f >= 0 && f < formatCount
}

func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formats[f].name
}

// PixelSize returns the size of one pixel in bytes.
func (f Format) PixelSize() int {
	if !f.Valid() {
		return 0
	}
	return formats[f].pixelSize
}

// ChannelSize returns the size of one channel in bytes.
func (f Format) ChannelSize() int {
	if !f.Valid() {
		return 0
	}
	return formats[f].channelSize
}

// ChannelCount returns the number of channels in one pixel.
func (f Format) ChannelCount() int {
	cs := f.ChannelSize()
	if cs == 0 {
		return 0
	}
	return f.PixelSize() / cs
}

// RowSize returns the number of meaningful bytes in a row of the given width.
func (f Format) RowSize(width int) int {
	return f.PixelSize() * width
}

// ResizeChannel is the element type handed to a resizer.
type ResizeChannel int

const (
	ResizeChannelByte ResizeChannel = iota
	ResizeChannelShort
	ResizeChannelFloat
)

func (c ResizeChannel) String() string {
	switch c {
	case ResizeChannelByte:
		return "Byte"
	case ResizeChannelShort:
		return "Short"
	case ResizeChannelFloat:
		return "Float"
	}
	return fmt.Sprintf("ResizeChannel(%d)", int(c))
}

// ResizeChannel maps f to the element type used by resizers.
func (f Format) ResizeChannel() (ResizeChannel, error) {
	switch f {
	case FormatGray8, FormatUv16, FormatBgr24, FormatBgra32, FormatHsv24,
		FormatHsl24, FormatRgb24, FormatRgba32, FormatArgb32, FormatLab24:
		return ResizeChannelByte, nil
	case FormatInt16:
		return ResizeChannelShort, nil
	case FormatFloat:
		return ResizeChannelFloat, nil
	}
	return 0, fmt.Errorf("%s can't be resized: %w", f, ErrUnsupportedFormat)
}

// IsPacked reports whether f is one of the 8-bit packed colour formats that
// can be converted between each other.
func (f Format) IsPacked() bool {
	_, ok := PackedIndex(f)
	return ok
}

// PackedFormats lists the closed set of mutually convertible packed formats.
// The order defines PackedIndex.
var PackedFormats = [...]Format{FormatGray8, FormatBgr24, FormatBgra32, FormatRgb24, FormatRgba32}

// PackedIndex returns the position of f in PackedFormats.
func PackedIndex(f Format) (int, bool) {
	for i, p := range PackedFormats {
		if p == f {
			return i, true
		}
	}
	return -1, false
}
