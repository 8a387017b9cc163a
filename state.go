package simd

import "fmt"

// State represents the ownership state of an Image.
type State int

const (
	// StateEmpty means the image holds no pixels. It is the zero value.
	StateEmpty State = iota
	// StateAllocated means the image owns its rows and frees them on Release.
	StateAllocated
	// StateViewing means the image points into memory owned by someone else.
	StateViewing
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAllocated:
		return "allocated"
	case StateViewing:
		return "viewing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Update updates current state, s, to next. If f fails to execute,
// s will stay unchanged. Otherwise, s will be updated to next
func (s *State) Update(next State, f func() error) error {
	type checkFunc func() error
	m := map[State]checkFunc{
		StateEmpty:     s.toEmpty,
		StateAllocated: s.toAllocated,
		StateViewing:   s.toViewing,
	}

	check, ok := m[next]
	if !ok {
		return fmt.Errorf("invalid state: unknown state %s", next)
	}
	if err := check(); err != nil {
		return err
	}

	err := f()
	if err == nil {
		*s = next
	}
	return err
}

func (s *State) toEmpty() error {
	return nil
}

func (s *State) toAllocated() error {
	return nil
}

func (s *State) toViewing() error {
	if *s != StateEmpty {
		return fmt.Errorf("invalid state: image is already %s", *s)
	}
	return nil
}
