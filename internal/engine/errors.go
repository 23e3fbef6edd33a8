package engine

import "errors"

var (
	ErrDocumentNotOpen = errors.New("no document open in view")
	ErrInvalidPassword = errors.New("invalid document password")
)
