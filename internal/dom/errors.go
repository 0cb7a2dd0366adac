package dom

import "errors"

var (
	ErrParse           = errors.New("failed to parse document")
	ErrNotFound        = errors.New("element not found")
	ErrInvalidSelector = errors.New("invalid selector")
)
