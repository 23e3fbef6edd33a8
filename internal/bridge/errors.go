package bridge

import (
	"errors"
	"fmt"
)

// Boundary errors.
var (
	// ErrNoNativeReference indicates the native view handle could not be
	// resolved; no bridge call was issued.
	ErrNoNativeReference = errors.New("unable to find native reference")

	// ErrUnsupportedMethod indicates the bridge implementation does not serve the method.
	ErrUnsupportedMethod = errors.New("unsupported bridge method")

	// ErrClosed indicates the bridge transport has been shut down.
	ErrClosed = errors.New("bridge closed")

	// ErrInvalidArgument indicates a call carried arguments the native side cannot accept.
	ErrInvalidArgument = errors.New("invalid bridge argument")
)

// CallError carries a rejection reported by the native engine.
// The message is passed through unmodified.
type CallError struct {
	Method  string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Method, e.Message)
}

// Unsupported builds the error returned for a method a bridge does not serve.
func Unsupported(method string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
}
