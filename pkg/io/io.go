// Package io copies pixel rows between strided and packed buffers.
package io

// Copy copies data from src to dst. If dst is not big enough, return an
// InsufficientBufferError.
func Copy(dst, src []byte) (n int, err error) {
	if len(dst) < len(src) {
		return 0, &InsufficientBufferError{len(src)}
	}

	return copy(dst, src), nil
}

// CopyRows packs height rows of row bytes, stride bytes apart in src, into
// dst. Nothing is copied when dst is too small.
func CopyRows(dst, src []byte, stride, row, height int) (n int, err error) {
	if len(dst) < row*height {
		return 0, &InsufficientBufferError{row * height}
	}
	if stride == row {
		return copy(dst, src[:row*height]), nil
	}

	for y := 0; y < height; y++ {
		m, err := Copy(dst[n:], src[y*stride:y*stride+row])
		if err != nil {
			return n, err
		}
		n += m
	}
	return n, nil
}
