package video

import (
	"github.com/simdkit/simd/pkg/pixel"
)

// Property is the observable shape of a video stream.
type Property struct {
	Width, Height int
	FrameRate     float32
}

// AdvancedProperty adds the frame layout to Property.
type AdvancedProperty struct {
	Property
	FrameFormat pixel.FrameFormat
	YuvType     pixel.YuvType
}
