package kernel

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"
)

type baseResizer struct {
	p        ResizeParams
	scaler   draw.Scaler
	src, dst *channelPlanes

	mu       sync.Mutex
	released bool
}

// scalerFor maps a resize method onto an x/image/draw scaler. The area
// methods use the kernel form of BiLinear, which widens its support when
// shrinking.
func scalerFor(m ResizeMethod) (draw.Scaler, error) {
	switch m {
	case ResizeMethodNearest, ResizeMethodNearestPytorch:
		return draw.NearestNeighbor, nil
	case ResizeMethodBilinear, ResizeMethodBilinearCaffe, ResizeMethodBilinearPytorch:
		return draw.ApproxBiLinear, nil
	case ResizeMethodBicubic:
		return draw.CatmullRom, nil
	case ResizeMethodArea, ResizeMethodAreaFast:
		return draw.BiLinear, nil
	}
	return nil, fmt.Errorf("resize method %s: %w", m, ErrUnsupported)
}

// NewResizer supports byte channels only.
func (b *Base) NewResizer(p ResizeParams) (Resizer, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.Type != ResizeChannelByte {
		return nil, fmt.Errorf("resize of %s channels: %w", p.Type, ErrUnsupported)
	}
	scaler, err := scalerFor(p.Method)
	if err != nil {
		return nil, err
	}

	r := &baseResizer{p: p, scaler: scaler}
	if p.Channels > 1 {
		r.src = newChannelPlanes(p.SrcWidth, p.SrcHeight, p.Channels)
		r.dst = newChannelPlanes(p.DstWidth, p.DstHeight, p.Channels)
	}
	return r, nil
}

func (r *baseResizer) Run(src []byte, srcStride int, dst []byte, dstStride int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}

	p := r.p
	sr := image.Rect(0, 0, p.SrcWidth, p.SrcHeight)
	dr := image.Rect(0, 0, p.DstWidth, p.DstHeight)
	if p.Channels == 1 {
		r.scaler.Scale(grayView(dst, dstStride, p.DstWidth, p.DstHeight), dr,
			grayView(src, srcStride, p.SrcWidth, p.SrcHeight), sr, draw.Src, nil)
		return
	}

	r.src.split(src, srcStride)
	for c := range r.src.planes {
		r.scaler.Scale(r.dst.planes[c], dr, r.src.planes[c], sr, draw.Src, nil)
	}
	r.dst.merge(dst, dstStride)
}

func (r *baseResizer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = true
	r.src, r.dst = nil, nil
}
