package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/jaki95/songripper/internal/domain"
)

// trackEdit is the result of applying one field edit to a staged track.
type trackEdit struct {
	track domain.StagedTrack
	// rel is the new location relative to the staging root, slash separated.
	rel string
}

// editTrack applies field=value to track, whose file is named file, and
// computes where the file belongs afterwards.
func editTrack(track domain.StagedTrack, file, field, value string) (trackEdit, error) {
	value = domain.CleanValue(value)
	updated, err := track.WithValue(field, value)
	if err != nil {
		return trackEdit{}, err
	}
	// Values become path elements
	if value == "" || value == "." || value == ".." {
		return trackEdit{}, fmt.Errorf("%w: %s %q", ErrInvalidValue, field, value)
	}

	stem := strings.TrimSuffix(file, domain.AudioExt)
	name := domain.TrackNumber(stem) + updated.Title + domain.AudioExt
	return trackEdit{
		track: updated,
		rel:   path.Join(updated.Artist, updated.Album, name),
	}, nil
}
