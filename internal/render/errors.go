package render

import "errors"

var ErrRender = errors.New("failed to render template")
