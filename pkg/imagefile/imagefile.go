// Package imagefile reads and writes 8-bit rasters as PGM, PPM, PNG, JPEG and
// BMP files.
package imagefile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/simdkit/simd/pkg/pixel"
)

// File is an image file type.
type File int

const (
	Undefined File = iota
	PgmTxt
	PgmBin
	PpmTxt
	PpmBin
	Png
	Jpeg
	Bmp
)

var fileNames = [...]string{"Undefined", "PgmTxt", "PgmBin", "PpmTxt", "PpmBin", "Png", "Jpeg", "Bmp"}

func (f File) String() string {
	if f < 0 || int(f) >= len(fileNames) {
		return fmt.Sprintf("File(%d)", int(f))
	}
	return fileNames[f]
}

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 100

var (
	// ErrUnknownFile is returned when a file type can't be determined from a
	// path or from the file contents.
	ErrUnknownFile = errors.New("unknown image file type")
)

// FromPath guesses the file type from the extension of path. Netpbm files
// are written in binary form.
func FromPath(path string) File {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pgm":
		return PgmBin
	case ".ppm", ".pnm":
		return PpmBin
	case ".png":
		return Png
	case ".jpg", ".jpeg":
		return Jpeg
	case ".bmp":
		return Bmp
	}
	return Undefined
}

// Raster is a block of 8-bit pixels in one of Gray8, Rgb24 or Rgba32.
type Raster struct {
	Format        pixel.Format
	Width, Height int
	Stride        int
	Pix           []byte
}

func (r Raster) row(y int) []byte {
	return r.Pix[y*r.Stride : y*r.Stride+r.Format.RowSize(r.Width)]
}

func newRaster(format pixel.Format, width, height int) Raster {
	stride := format.RowSize(width)
	return Raster{Format: format, Width: width, Height: height, Stride: stride, Pix: make([]byte, stride*height)}
}

// EncodeFormat returns the raster format Encode expects for file f when the
// pixels are in src.
func (f File) EncodeFormat(src pixel.Format) pixel.Format {
	gray := src == pixel.FormatGray8
	alpha := src == pixel.FormatBgra32 || src == pixel.FormatRgba32
	switch {
	case f == PgmTxt || f == PgmBin || gray:
		return pixel.FormatGray8
	case alpha && (f == Png || f == Bmp):
		return pixel.FormatRgba32
	}
	return pixel.FormatRgb24
}

// Encode writes r to w. r must be in f.EncodeFormat of its own format.
// quality only matters for JPEG and is clamped to [1, 100].
func Encode(w io.Writer, r Raster, f File, quality int) error {
	if want := f.EncodeFormat(r.Format); r.Format != want {
		return fmt.Errorf("%s needs %s pixels, got %s: %w", f, want, r.Format, pixel.ErrUnsupportedFormat)
	}

	switch f {
	case PgmTxt, PgmBin, PpmTxt, PpmBin:
		return encodePnm(w, r, f)
	case Png:
		return png.Encode(w, r.stdImage())
	case Jpeg:
		return jpeg.Encode(w, r.stdImage(), &jpeg.Options{Quality: min(max(quality, 1), 100)})
	case Bmp:
		return bmp.Encode(w, r.stdImage())
	}
	return fmt.Errorf("encode %s: %w", f, ErrUnknownFile)
}

func (r Raster) stdImage() image.Image {
	rect := image.Rect(0, 0, r.Width, r.Height)
	switch r.Format {
	case pixel.FormatGray8:
		return &image.Gray{Pix: r.Pix, Stride: r.Stride, Rect: rect}
	case pixel.FormatRgba32:
		return &image.NRGBA{Pix: r.Pix, Stride: r.Stride, Rect: rect}
	}
	img := image.NewNRGBA(rect)
	for y := 0; y < r.Height; y++ {
		s, d := r.row(y), img.Pix[y*img.Stride:]
		for x := 0; x < r.Width; x++ {
			d[4*x], d[4*x+1], d[4*x+2], d[4*x+3] = s[3*x], s[3*x+1], s[3*x+2], 0xff
		}
	}
	return img
}

// Decode reads an image of any supported type. Gray images give Gray8,
// opaque colour images Rgb24 and everything else Rgba32.
func Decode(r io.Reader) (Raster, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return Raster{}, fmt.Errorf("read header: %w", err)
	}
	if magic[0] == 'P' && magic[1] >= '2' && magic[1] <= '6' {
		return decodePnm(br)
	}

	img, _, err := image.Decode(br)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Raster{}, fmt.Errorf("%v: %w", err, ErrUnknownFile)
		}
		return Raster{}, err
	}
	return FromImage(img), nil
}

// FromImage copies any image.Image into a raster following the Decode rules.
func FromImage(img image.Image) Raster {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok {
		r := newRaster(pixel.FormatGray8, b.Dx(), b.Dy())
		for y := 0; y < r.Height; y++ {
			copy(r.row(y), g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return r
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	if !opaque(img) {
		return Raster{Format: pixel.FormatRgba32, Width: b.Dx(), Height: b.Dy(), Stride: nrgba.Stride, Pix: nrgba.Pix}
	}

	r := newRaster(pixel.FormatRgb24, b.Dx(), b.Dy())
	for y := 0; y < r.Height; y++ {
		s, d := nrgba.Pix[y*nrgba.Stride:], r.row(y)
		for x := 0; x < r.Width; x++ {
			d[3*x], d[3*x+1], d[3*x+2] = s[4*x], s[4*x+1], s[4*x+2]
		}
	}
	return r
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

// Marshal encodes r into a byte slice.
func Marshal(r Raster, f File, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r, f, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
