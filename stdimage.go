package simd

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/simdkit/simd/pkg/pixel"
)

// StdImage exposes the image as an image.Image. Gray8 and Rgba32 images are
// shared without copying, other packed formats are converted to *image.NRGBA.
func (img *Image) StdImage() (image.Image, error) {
	rect := image.Rect(0, 0, img.width, img.height)
	switch img.format {
	case pixel.FormatGray8:
		return &image.Gray{Pix: img.data, Stride: img.stride, Rect: rect}, nil
	case pixel.FormatRgba32:
		return &image.NRGBA{Pix: img.data, Stride: img.stride, Rect: rect}, nil
	}

	rgba, err := img.Converted(pixel.FormatRgba32, DefaultAlpha)
	if err != nil {
		return nil, err
	}
	defer rgba.Release()

	out := image.NewNRGBA(rect)
	if _, err := rgba.ReadPixels(out.Pix); err != nil {
		return nil, err
	}
	return out, nil
}

// FromStdImage copies any image.Image into a new image of the given packed
// format.
func (c *Context) FromStdImage(src image.Image, format pixel.Format) (*Image, error) {
	if !format.IsPacked() {
		return nil, fmt.Errorf("from image.Image to %s: %w", format, ErrUnsupportedFormat)
	}
	b := src.Bounds()
	if b.Empty() {
		return &Image{ctx: c.orDefault()}, nil
	}

	var view *Image
	var err error
	switch s := src.(type) {
	case *image.Gray:
		view, err = c.View(pixel.FormatGray8, b.Dx(), b.Dy(), s.Stride, s.Pix[s.PixOffset(b.Min.X, b.Min.Y):])
	case *image.NRGBA:
		view, err = c.View(pixel.FormatRgba32, b.Dx(), b.Dy(), s.Stride, s.Pix[s.PixOffset(b.Min.X, b.Min.Y):])
	default:
		nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
		view, err = c.View(pixel.FormatRgba32, b.Dx(), b.Dy(), nrgba.Stride, nrgba.Pix)
	}
	if err != nil {
		return nil, err
	}
	if view.format == format {
		return view.Copy(nil)
	}
	return view.Converted(format, DefaultAlpha)
}
