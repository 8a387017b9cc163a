package kernel

import (
	"image"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

type baseWarpAffine struct {
	p      WarpAffineParams
	s2d    f64.Aff3
	interp draw.Interpolator
	border []byte

	mu       sync.Mutex
	released bool
}

func (b *Base) NewWarpAffine(p WarpAffineParams) (WarpAffiner, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	w := &baseWarpAffine{p: p, interp: draw.ApproxBiLinear}
	if p.Flags&WarpAffineInterpMask == WarpAffineInterpNearest {
		w.interp = draw.NearestNeighbor
	}
	for i, v := range p.Mat {
		w.s2d[i] = float64(v)
	}
	w.border = make([]byte, p.Channels)
	copy(w.border, p.Border)
	return w, nil
}

// Run writes the warped source into dst. With a constant border every
// destination pixel not covered by the source gets the border colour; with a
// transparent border those pixels keep their previous value.
func (w *baseWarpAffine) Run(src, dst []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.released {
		return
	}

	p := w.p
	sr := image.Rect(0, 0, p.SrcWidth, p.SrcHeight)
	constant := p.Flags&WarpAffineBorderMask == WarpAffineBorderConstant

	if p.Channels == 1 {
		d := grayView(dst, p.DstStride, p.DstWidth, p.DstHeight)
		if constant {
			for y := 0; y < p.DstHeight; y++ {
				row := d.Pix[y*d.Stride : y*d.Stride+p.DstWidth]
				for x := range row {
					row[x] = w.border[0]
				}
			}
		}
		w.interp.Transform(d, w.s2d, grayView(src, p.SrcStride, p.SrcWidth, p.SrcHeight), sr, draw.Src, nil)
		return
	}

	srcPlanes := newChannelPlanes(p.SrcWidth, p.SrcHeight, p.Channels)
	dstPlanes := newChannelPlanes(p.DstWidth, p.DstHeight, p.Channels)
	srcPlanes.split(src, p.SrcStride)
	if constant {
		dstPlanes.fill(w.border)
	} else {
		dstPlanes.split(dst, p.DstStride)
	}
	for c := range srcPlanes.planes {
		w.interp.Transform(dstPlanes.planes[c], w.s2d, srcPlanes.planes[c], sr, draw.Src, nil)
	}
	dstPlanes.merge(dst, p.DstStride)
}

func (w *baseWarpAffine) Release() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.released = true
}
