package video

import (
	"time"

	"github.com/simdkit/simd"
)

// DetectChanges will detect frame and video property changes. For video property detection,
// since it's time related, interval will be used to determine the sample rate.
func DetectChanges(interval time.Duration, onChange func(AdvancedProperty)) TransformFunc {
	return func(r Reader) Reader {
		var current AdvancedProperty
		var lastTaken time.Time
		var frames uint
		return ReaderFunc(func() (*simd.Frame, func(), error) {
			var dirty bool

			frame, release, err := r.Read()
			if err != nil {
				return nil, noop, err
			}

			if current.Width != frame.Width() {
				current.Width = frame.Width()
				dirty = true
			}

			if current.Height != frame.Height() {
				current.Height = frame.Height()
				dirty = true
			}

			if current.FrameFormat != frame.Format() || current.YuvType != frame.YuvType() {
				current.FrameFormat = frame.Format()
				current.YuvType = frame.YuvType()
				dirty = true
			}

			now := time.Now()
			elapsed := now.Sub(lastTaken)
			if elapsed >= interval {
				fps := float32(float64(frames) / elapsed.Seconds())
				current.FrameRate = fps
				frames = 0
				lastTaken = now
				dirty = true
			}

			if dirty {
				onChange(current)
			}

			frames++
			return frame, release, nil
		})
	}
}
