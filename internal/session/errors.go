package session

import "errors"

var (
	ErrNoSuchRow      = errors.New("no such row")
	ErrNoSuchElement  = errors.New("element not found")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid arguments")
	ErrNotStarted     = errors.New("session not started")
	ErrDisabled       = errors.New("control is disabled")
)
