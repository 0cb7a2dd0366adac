package domain

import "errors"

var ErrUnknownField = errors.New("unknown field")
