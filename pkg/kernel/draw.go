package kernel

import (
	"image"
)

// channelPlanes holds one *image.Gray per channel of an interleaved image so
// the x/image/draw scalers can process every channel independently.
type channelPlanes struct {
	planes []*image.Gray
}

func newChannelPlanes(width, height, channels int) *channelPlanes {
	cp := &channelPlanes{planes: make([]*image.Gray, channels)}
	for c := range cp.planes {
		cp.planes[c] = image.NewGray(image.Rect(0, 0, width, height))
	}
	return cp
}

// grayView wraps a single channel image without copying.
func grayView(pix []byte, stride, width, height int) *image.Gray {
	return &image.Gray{Pix: pix, Stride: stride, Rect: image.Rect(0, 0, width, height)}
}

func (cp *channelPlanes) split(src []byte, stride int) {
	channels := len(cp.planes)
	r := cp.planes[0].Rect
	for y := 0; y < r.Dy(); y++ {
		row := src[y*stride : y*stride+r.Dx()*channels]
		for c, p := range cp.planes {
			d := p.Pix[y*p.Stride : y*p.Stride+r.Dx()]
			for x := range d {
				d[x] = row[x*channels+c]
			}
		}
	}
}

func (cp *channelPlanes) merge(dst []byte, stride int) {
	channels := len(cp.planes)
	r := cp.planes[0].Rect
	for y := 0; y < r.Dy(); y++ {
		row := dst[y*stride : y*stride+r.Dx()*channels]
		for c, p := range cp.planes {
			s := p.Pix[y*p.Stride : y*p.Stride+r.Dx()]
			for x, v := range s {
				row[x*channels+c] = v
			}
		}
	}
}

func (cp *channelPlanes) fill(values []byte) {
	for c, p := range cp.planes {
		v := values[c]
		for i := range p.Pix {
			p.Pix[i] = v
		}
	}
}
