package video

import (
	"time"

	"github.com/simdkit/simd"
)

// Throttle returns video throttling transform.
// This transform drops some of the incoming frames to achieve given framerate in fps.
// Dropped frames are released immediately.
func Throttle(rate float32) TransformFunc {
	return func(r Reader) Reader {
		ticker := time.NewTicker(time.Duration(int64(float64(time.Second) / float64(rate))))
		return ReaderFunc(func() (*simd.Frame, func(), error) {
			for {
				frame, release, err := r.Read()
				if err != nil {
					ticker.Stop()
					return nil, noop, err
				}
				select {
				case <-ticker.C:
					return frame, release, nil
				default:
					release()
				}
			}
		})
	}
}
