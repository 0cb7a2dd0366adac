package events

import "errors"

var ErrNilHandler = errors.New("nil event handler")
