package simd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noop = func() error { return nil }

func TestStateUpdate(t *testing.T) {
	var s State
	assert.Equal(t, StateEmpty, s)

	require.NoError(t, s.Update(StateAllocated, noop))
	assert.Equal(t, StateAllocated, s)

	require.NoError(t, s.Update(StateAllocated, noop))
	assert.Equal(t, StateAllocated, s)

	require.NoError(t, s.Update(StateEmpty, noop))
	assert.Equal(t, StateEmpty, s)

	require.NoError(t, s.Update(StateViewing, noop))
	assert.Equal(t, StateViewing, s)
}

func TestStateUpdateRejected(t *testing.T) {
	errBoom := errors.New("boom")

	testCases := map[string]struct {
		from, to State
		f        func() error
		expected error
	}{
		"FuncFails":        {from: StateEmpty, to: StateAllocated, f: func() error { return errBoom }, expected: errBoom},
		"ViewAllocated":    {from: StateAllocated, to: StateViewing, f: noop},
		"ViewViewing":      {from: StateViewing, to: StateViewing, f: noop},
		"UnknownNextState": {from: StateEmpty, to: State(7), f: noop},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			s := tc.from
			var called bool
			err := s.Update(tc.to, func() error {
				called = true
				return tc.f()
			})
			if tc.expected != nil {
				assert.ErrorIs(t, err, tc.expected)
				assert.True(t, called)
			} else {
				assert.Error(t, err)
				assert.False(t, called)
			}
			assert.Equal(t, tc.from, s)
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "viewing", StateViewing.String())
	assert.Equal(t, "State(9)", State(9).String())
}
