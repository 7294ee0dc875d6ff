package argo

import (
	"errors"
	"fmt"
)

// ErrMissingIdentity reports a file that lacks a usable platform
// number. Fatal to that file only; other files of the float and other
// floats are unaffected.
var ErrMissingIdentity = errors.New("file has no usable platform number")

// FloatError wraps a failure with the float and stage it happened in.
// Field-level coercion failures never reach this type; they are
// absorbed into NULLs by the normalizer.
type FloatError struct {
	FloatID string
	Stage   Stage
	Err     error
}

func (e *FloatError) Error() string {
	return fmt.Sprintf("float %s: %s stage: %v", e.FloatID, e.Stage, e.Err)
}

func (e *FloatError) Unwrap() error {
	return e.Err
}
