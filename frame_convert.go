package simd

import (
	"fmt"

	"github.com/simdkit/simd/pkg/pixel"
)

type frameConvertFunc func(c *Context, src, dst *Frame, alpha uint8) error

// frameConversions is indexed by source and destination format. A nil entry
// has no conversion. Equal formats never reach the table.
var frameConversions = [pixel.FrameFormatCount][pixel.FrameFormatCount]frameConvertFunc{
	pixel.FrameNv12: {
		pixel.FrameYuv420p: nv12ToYuv420p,
		pixel.FrameBgra32:  yuvToPacked,
		pixel.FrameBgr24:   yuvToPacked,
		pixel.FrameGray8:   yuvToGray,
		pixel.FrameRgb24:   yuvToPacked,
		pixel.FrameRgba32:  yuvToPacked,
		pixel.FrameLab24:   yuvToPacked,
	},
	pixel.FrameYuv420p: {
		pixel.FrameNv12:   yuv420pToNv12,
		pixel.FrameBgra32: yuvToPacked,
		pixel.FrameBgr24:  yuvToPacked,
		pixel.FrameGray8:  yuvToGray,
		pixel.FrameRgb24:  yuvToPacked,
		pixel.FrameRgba32: yuvToPacked,
		pixel.FrameLab24:  yuvToPacked,
	},
	pixel.FrameBgra32: {
		pixel.FrameNv12:    packedToYuv,
		pixel.FrameYuv420p: packedToYuv,
		pixel.FrameBgr24:   packedToPacked,
		pixel.FrameGray8:   packedToPacked,
		pixel.FrameRgb24:   packedToPacked,
		pixel.FrameRgba32:  packedToPacked,
		pixel.FrameLab24:   packedToLab,
	},
	pixel.FrameBgr24: {
		pixel.FrameNv12:    packedToYuv,
		pixel.FrameYuv420p: packedToYuv,
		pixel.FrameBgra32:  packedToPacked,
		pixel.FrameGray8:   packedToPacked,
		pixel.FrameRgb24:   packedToPacked,
		pixel.FrameRgba32:  packedToPacked,
		pixel.FrameLab24:   packedToLab,
	},
	pixel.FrameGray8: {
		pixel.FrameNv12:    grayToYuv,
		pixel.FrameYuv420p: grayToYuv,
		pixel.FrameBgra32:  packedToPacked,
		pixel.FrameBgr24:   packedToPacked,
		pixel.FrameRgb24:   packedToPacked,
		pixel.FrameRgba32:  packedToPacked,
		pixel.FrameLab24:   packedToLab,
	},
	pixel.FrameRgb24: {
		pixel.FrameNv12:    packedToYuv,
		pixel.FrameYuv420p: packedToYuv,
		pixel.FrameBgra32:  packedToPacked,
		pixel.FrameBgr24:   packedToPacked,
		pixel.FrameGray8:   packedToPacked,
		pixel.FrameRgba32:  packedToPacked,
		pixel.FrameLab24:   packedToLab,
	},
	pixel.FrameRgba32: {
		pixel.FrameNv12:    packedToYuv,
		pixel.FrameYuv420p: packedToYuv,
		pixel.FrameBgra32:  packedToPacked,
		pixel.FrameBgr24:   packedToPacked,
		pixel.FrameGray8:   packedToPacked,
		pixel.FrameRgb24:   packedToPacked,
		pixel.FrameLab24:   packedToLab,
	},
}

// Convert converts the samples into dst, which must have the same size.
// YUV sources are decoded with their own standard, YUV destinations are
// encoded with the standard of dst. The timestamp is carried over.
func (f *Frame) Convert(dst *Frame, alpha uint8) error {
	if !f.EqualSize(dst) {
		return fmt.Errorf("convert %dx%d to %dx%d: %w", f.width, f.height, dst.width, dst.height, ErrSizeMismatch)
	}
	if f.format == dst.format {
		_, err := f.Copy(dst)
		return err
	}

	var fn frameConvertFunc
	if f.format.Valid() && dst.format.Valid() {
		fn = frameConversions[f.format][dst.format]
	}
	if fn == nil {
		return &ConversionError{From: f.format, To: dst.format}
	}

	c := f.context()
	c.log.Tracef("convert %dx%d frame %s (%s) to %s (%s)", f.width, f.height, f.format, f.YuvType(), dst.format, dst.YuvType())
	if err := fn(c, f, dst, alpha); err != nil {
		return err
	}
	dst.timestamp = f.timestamp
	return nil
}

// chroma returns planar U and V of a YUV frame. Nv12 chroma is split into
// temporary planes which release frees.
func chroma(c *Context, src *Frame) (u, v *Image, release func(), err error) {
	if src.format == pixel.FrameYuv420p {
		return &src.planes[1], &src.planes[2], func() {}, nil
	}

	uv := &src.planes[1]
	if u, err = c.NewImage(pixel.FormatGray8, uv.width, uv.height); err != nil {
		return nil, nil, nil, err
	}
	if v, err = c.NewImage(pixel.FormatGray8, uv.width, uv.height); err != nil {
		u.Release()
		return nil, nil, nil, err
	}
	c.lib.DeinterleaveUv(uv.data, uv.stride, uv.width, uv.height, u.data, u.stride, v.data, v.stride)
	return u, v, func() {
		u.Release()
		v.Release()
	}, nil
}

func nv12ToYuv420p(c *Context, src, dst *Frame, _ uint8) error {
	if _, err := src.planes[0].Copy(&dst.planes[0]); err != nil {
		return err
	}
	uv, u, v := &src.planes[1], &dst.planes[1], &dst.planes[2]
	c.lib.DeinterleaveUv(uv.data, uv.stride, uv.width, uv.height, u.data, u.stride, v.data, v.stride)
	return nil
}

func yuv420pToNv12(c *Context, src, dst *Frame, _ uint8) error {
	if _, err := src.planes[0].Copy(&dst.planes[0]); err != nil {
		return err
	}
	u, v, uv := &src.planes[1], &src.planes[2], &dst.planes[1]
	c.lib.InterleaveUv(u.data, u.stride, v.data, v.stride, u.width, u.height, uv.data, uv.stride)
	return nil
}

// yuvToPacked decodes a YUV frame into Bgra32, Bgr24 or Rgb24 directly. Rgba32
// goes through a temporary Bgra32 image and Lab24 through a Bgr24 one.
func yuvToPacked(c *Context, src, dst *Frame, alpha uint8) error {
	u, v, release, err := chroma(c, src)
	if err != nil {
		return err
	}
	defer release()

	y, out := &src.planes[0], &dst.planes[0]
	yuv := src.YuvType()
	decode := func(to *Image) {
		switch to.format {
		case pixel.FormatBgra32:
			c.lib.Yuv420pToBgra(y.data, y.stride, u.data, u.stride, v.data, v.stride, y.width, y.height, to.data, to.stride, alpha, yuv)
		case pixel.FormatBgr24:
			c.lib.Yuv420pToBgr(y.data, y.stride, u.data, u.stride, v.data, v.stride, y.width, y.height, to.data, to.stride, yuv)
		case pixel.FormatRgb24:
			c.lib.Yuv420pToRgb(y.data, y.stride, u.data, u.stride, v.data, v.stride, y.width, y.height, to.data, to.stride, yuv)
		}
	}

	switch dst.format {
	case pixel.FrameRgba32:
		bgra, err := c.NewImage(pixel.FormatBgra32, y.width, y.height)
		if err != nil {
			return err
		}
		defer bgra.Release()
		decode(bgra)
		return bgra.Convert(out, alpha)
	case pixel.FrameLab24:
		bgr, err := c.NewImage(pixel.FormatBgr24, y.width, y.height)
		if err != nil {
			return err
		}
		defer bgr.Release()
		decode(bgr)
		c.lib.BgrToLab(bgr.data, bgr.stride, bgr.width, bgr.height, out.data, out.stride)
		return nil
	}
	decode(out)
	return nil
}

// yuvToGray keeps full range luma as is and expands limited range luma.
func yuvToGray(c *Context, src, dst *Frame, _ uint8) error {
	y, out := &src.planes[0], &dst.planes[0]
	if src.YuvType().IsFullRange() {
		_, err := y.Copy(out)
		return err
	}
	c.lib.YToGray(y.data, y.stride, y.width, y.height, out.data, out.stride)
	return nil
}

// packedToYuv encodes Bgr24 or Bgra32 with the standard of dst. Rgb24 and
// Rgba32 are swapped into a temporary Bgr24 or Bgra32 image first.
func packedToYuv(c *Context, src, dst *Frame, alpha uint8) error {
	bgr := &src.planes[0]
	switch bgr.format {
	case pixel.FormatRgb24, pixel.FormatRgba32:
		to := pixel.FormatBgr24
		if bgr.format == pixel.FormatRgba32 {
			to = pixel.FormatBgra32
		}
		tmp, err := bgr.Converted(to, alpha)
		if err != nil {
			return err
		}
		defer tmp.Release()
		bgr = tmp
	}

	y := &dst.planes[0]
	u, v := &dst.planes[1], &dst.planes[2]
	if dst.format == pixel.FrameNv12 {
		var err error
		if u, err = c.NewImage(pixel.FormatGray8, dst.width/2, dst.height/2); err != nil {
			return err
		}
		defer u.Release()
		if v, err = c.NewImage(pixel.FormatGray8, dst.width/2, dst.height/2); err != nil {
			return err
		}
		defer v.Release()
	}

	yuv := dst.YuvType()
	if bgr.format == pixel.FormatBgra32 {
		c.lib.BgraToYuv420p(bgr.data, bgr.stride, bgr.width, bgr.height, y.data, y.stride, u.data, u.stride, v.data, v.stride, yuv)
	} else {
		c.lib.BgrToYuv420p(bgr.data, bgr.stride, bgr.width, bgr.height, y.data, y.stride, u.data, u.stride, v.data, v.stride, yuv)
	}

	if dst.format == pixel.FrameNv12 {
		uv := &dst.planes[1]
		c.lib.InterleaveUv(u.data, u.stride, v.data, v.stride, u.width, u.height, uv.data, uv.stride)
	}
	return nil
}

// neutralChroma is the U and V value of a colourless sample.
const neutralChroma = 128

// grayToYuv writes luma from gray and sets the chroma planes to neutral.
func grayToYuv(c *Context, src, dst *Frame, _ uint8) error {
	gray, y := &src.planes[0], &dst.planes[0]
	if dst.YuvType().IsFullRange() {
		if _, err := gray.Copy(y); err != nil {
			return err
		}
	} else {
		c.lib.GrayToY(gray.data, gray.stride, gray.width, gray.height, y.data, y.stride)
	}

	if dst.format == pixel.FrameNv12 {
		return dst.planes[1].Fill([]byte{neutralChroma, neutralChroma})
	}
	if err := dst.planes[1].Fill([]byte{neutralChroma}); err != nil {
		return err
	}
	return dst.planes[2].Fill([]byte{neutralChroma})
}

func packedToPacked(_ *Context, src, dst *Frame, alpha uint8) error {
	return src.planes[0].Convert(&dst.planes[0], alpha)
}

// packedToLab converts through a temporary Bgr24 image unless the source is
// Bgr24 already.
func packedToLab(c *Context, src, dst *Frame, alpha uint8) error {
	bgr := &src.planes[0]
	if bgr.format != pixel.FormatBgr24 {
		tmp, err := bgr.Converted(pixel.FormatBgr24, alpha)
		if err != nil {
			return err
		}
		defer tmp.Release()
		bgr = tmp
	}
	out := &dst.planes[0]
	c.lib.BgrToLab(bgr.data, bgr.stride, bgr.width, bgr.height, out.data, out.stride)
	return nil
}
