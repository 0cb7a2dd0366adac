package transport

import "errors"

var (
	ErrRequestFailed    = errors.New("request failed")
	ErrTargetNotFound   = errors.New("swap target not found")
	ErrNoDocument       = errors.New("no document bound")
	ErrUnexpectedStatus = errors.New("unexpected status")
)
