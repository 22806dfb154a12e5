package spectrogram

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks requests that cannot be satisfied by clamping.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateInput marks series a spectrogram cannot be computed from.
	ErrDegenerateInput = errors.New("degenerate input")
)

// ParameterError describes a rejected parameter. It unwraps to ErrInvalidParameter.
type ParameterError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%v: %s=%v %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

// InputError describes an unusable series. It unwraps to ErrDegenerateInput.
type InputError struct {
	Index  int
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDegenerateInput, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrDegenerateInput }
