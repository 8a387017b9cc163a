package simd

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/simdkit/simd/pkg/imagefile"
	"github.com/simdkit/simd/pkg/pixel"
)

// Load reads an image file on the default context.
func Load(path string, desired pixel.Format) (*Image, error) {
	return Default().Load(path, desired)
}

// Load reads an image file into a new owning image. desired may be Gray8,
// Bgr24, Bgra32, Rgb24, Rgba32 or Empty to keep the format of the file.
func (c *Context) Load(path string, desired pixel.Format) (*Image, error) {
	if desired != pixel.FormatEmpty && !desired.IsPacked() {
		return nil, fmt.Errorf("load as %s: %w", desired, ErrUnsupportedFormat)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
		}
		return nil, err
	}
	defer f.Close()

	r, err := imagefile.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	src, err := c.View(r.Format, r.Width, r.Height, r.Stride, r.Pix)
	if err != nil {
		return nil, err
	}
	if desired == pixel.FormatEmpty || desired == r.Format {
		return src.Copy(nil)
	}
	return src.Converted(desired, DefaultAlpha)
}

// Save writes the image to path. An Undefined file type is taken from the
// extension of path. quality only matters for JPEG.
func (img *Image) Save(path string, file imagefile.File, quality int) (err error) {
	if !img.format.IsPacked() {
		return fmt.Errorf("save %s: %w", img.format, ErrUnsupportedFormat)
	}
	if file == imagefile.Undefined {
		if file = imagefile.FromPath(path); file == imagefile.Undefined {
			return fmt.Errorf("%s: %w", path, imagefile.ErrUnknownFile)
		}
	}

	src := img
	if want := file.EncodeFormat(img.format); want != img.format {
		if src, err = img.Converted(want, DefaultAlpha); err != nil {
			return err
		}
		defer src.Release()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	r := imagefile.Raster{Format: src.format, Width: src.width, Height: src.height, Stride: src.stride, Pix: src.data}
	if err = imagefile.Encode(w, r, file, quality); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return w.Flush()
}
