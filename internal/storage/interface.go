package storage

import (
	"context"
	"fmt"

	"github.com/jaki95/songripper/config"
	"github.com/jaki95/songripper/internal/domain"
)

// Storage lists and clears the tracks waiting in the staging area.
type Storage interface {
	// ListTracks returns every staged track sorted by artist then album,
	// ignoring case.
	ListTracks(ctx context.Context) ([]domain.StagedTrack, error)

	// HasFiles reports whether the staging area holds anything at all.
	HasFiles(ctx context.Context) (bool, error)

	// Clear removes all staged content and reports whether there was any.
	Clear(ctx context.Context) (bool, error)

	// Track reads the staged track at filepath.
	Track(ctx context.Context, filepath string) (domain.StagedTrack, error)

	// UpdateTrack sets field of the track at filepath to value and moves it
	// to <artist>/<album>/<NN ><title>.m4a, keeping its track number. It
	// returns the track as stored afterwards.
	UpdateTrack(ctx context.Context, filepath, field, value string) (domain.StagedTrack, error)
}

// New creates the backend selected by cfg.Type.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		s, err := NewLocalStorage(cfg.StagingDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "gcs":
		s, err := NewGCSStorage(ctx, cfg.Bucket, cfg.Prefix, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, cfg.Type)
}
