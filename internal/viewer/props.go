package viewer

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when Props names no document.
var ErrEmptyDocument = errors.New("document is empty")

// Props are the inputs of the native reader view.
// Document is a file path, content URI or asset reference.
type Props struct {
	Document      string
	Password      string
	Configuration Configuration
}

// Validate checks that Props can be handed to the native view.
func (p Props) Validate() error {
	if p.Document == "" {
		return ErrEmptyDocument
	}
	if err := p.Configuration.Validate(); err != nil {
		return fmt.Errorf("props: %w", err)
	}
	return nil
}
