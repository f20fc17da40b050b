package compile

import (
	"errors"
	"fmt"
)

var (
	// ErrLookupFailure is returned when a required method has no body.
	ErrLookupFailure = errors.New("required method not found")

	// ErrMissingConstructor is returned when a library block has no record constructor.
	ErrMissingConstructor = errors.New("library block has no constructor")

	// ErrUnbalancedNamespace is returned when the library block never closes.
	ErrUnbalancedNamespace = errors.New("library block is not closed")
)

// LookupError names the method that could not be resolved during assembly.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%v: %q", ErrLookupFailure, e.Name)
}

func (e *LookupError) Unwrap() error {
	return ErrLookupFailure
}
