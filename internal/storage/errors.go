package storage

import "errors"

var (
	ErrUnsupportedType   = errors.New("unsupported storage type")
	ErrMissingStagingDir = errors.New("local storage requires a staging directory")
	ErrMissingBucket     = errors.New("gcs storage requires a bucket")
	ErrTrackNotFound     = errors.New("staged track not found")
	ErrNotStaged         = errors.New("path is not a staged track")
	ErrInvalidValue      = errors.New("invalid value")
	ErrTrackExists       = errors.New("a staged track already exists at the destination")
)
