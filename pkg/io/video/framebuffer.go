package video

import (
	"github.com/simdkit/simd"
)

// FrameBuffer keeps a private copy of the last stored frame.
type FrameBuffer struct {
	ctx   *simd.Context
	frame *simd.Frame
}

// NewFrameBuffer creates a FrameBuffer allocating on ctx. A nil ctx uses the
// default context.
func NewFrameBuffer(ctx *simd.Context) *FrameBuffer {
	if ctx == nil {
		ctx = simd.Default()
	}
	return &FrameBuffer{ctx: ctx}
}

// Load returns the stored copy, or nil before the first StoreCopy.
func (buff *FrameBuffer) Load() *simd.Frame {
	return buff.frame
}

// StoreCopy makes a copy of src and store its copy. StoreCopy will reuse the
// previous planes when src has the same format, size and YUV standard as
// the previous call.
func (buff *FrameBuffer) StoreCopy(src *simd.Frame) error {
	frame, err := reuse(buff.ctx, buff.frame, src.Format(), src.Width(), src.Height(), src.YuvType())
	if err != nil {
		return err
	}
	buff.frame = frame
	_, err = src.Copy(frame)
	return err
}

// Release frees the stored copy.
func (buff *FrameBuffer) Release() {
	if buff.frame != nil {
		buff.frame.Release()
		buff.frame = nil
	}
}
