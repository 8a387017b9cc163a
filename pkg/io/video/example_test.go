package video_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/simdkit/simd"
	"github.com/simdkit/simd/pkg/frame"
	"github.com/simdkit/simd/pkg/io/video"
	"github.com/simdkit/simd/pkg/kernel"
)

func Example() {
	const width, height = 4, 4

	decoder, err := frame.NewDecoder(nil, frame.FormatI420)
	if err != nil {
		panic(err)
	}

	// Three black I420 frames.
	raw := bytes.Repeat([]byte{16}, width*height)
	raw = append(raw, bytes.Repeat([]byte{128}, width*height/2)...)
	remaining := 3
	src := video.ReaderFunc(func() (*simd.Frame, func(), error) {
		if remaining == 0 {
			return nil, func() {}, io.EOF
		}
		remaining--
		return decoder.Decode(raw, width, height)
	})

	r := video.Merge(
		video.Scale(2, -1, kernel.ResizeMethodNearest),
		video.ToRGBA,
	)(src)

	buff := video.NewFrameBuffer(nil)
	defer buff.Release()
	for {
		f, release, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			panic(err)
		}
		err = buff.StoreCopy(f)
		release()
		if err != nil {
			panic(err)
		}
	}

	last := buff.Load()
	fmt.Printf("%dx%d %s %v\n", last.Width(), last.Height(), last.Format(), last.Plane(0).Pixels()[:4])
	// Output: 2x2 Rgba32 [0 0 0 255]
}
