package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	var dst []byte
	src := []byte{1, 2, 3, 4}

	n, err := Copy(dst, src)
	var e *InsufficientBufferError
	require.ErrorAs(t, err, &e)
	assert.Zero(t, n)
	assert.Equal(t, len(src), e.RequiredSize)

	dst = make([]byte, 2*e.RequiredSize)
	n, err = Copy(dst, src)
	require.NoError(t, err)
	assert.Equal(t, len(src), n)
	assert.Equal(t, src, dst[:n])
}

func TestCopyRows(t *testing.T) {
	src := []byte{
		1, 2, 3, 0xee,
		4, 5, 6, 0xee,
		7, 8, 9,
	}
	testCases := map[string]struct {
		stride, row, height int
		dst                 int
		expected            []byte
		required            int
	}{
		"Strided": {stride: 4, row: 3, height: 3, dst: 9, expected: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		"Packed":  {stride: 4, row: 4, height: 2, dst: 8, expected: []byte{1, 2, 3, 0xee, 4, 5, 6, 0xee}},
		"Short":   {stride: 4, row: 3, height: 3, dst: 8, required: 9},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			dst := make([]byte, tc.dst)
			n, err := CopyRows(dst, src, tc.stride, tc.row, tc.height)
			if tc.required > 0 {
				var e *InsufficientBufferError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, tc.required, e.RequiredSize)
				assert.Zero(t, n)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, dst[:n])
		})
	}
}
