package server

import "errors"

var (
	ErrListTracks   = errors.New("failed to list staged tracks")
	ErrClearStaging = errors.New("failed to clear staging")
	ErrUpdateTrack  = errors.New("failed to update track")
)
