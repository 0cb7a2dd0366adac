package storage

import (
	"sort"
	"strings"

	"github.com/jaki95/songripper/internal/domain"
)

// sortTracks orders tracks by artist then album, ignoring case. Tracks of
// the same album keep their listing order.
func sortTracks(tracks []domain.StagedTrack) {
	sort.SliceStable(tracks, func(i, j int) bool {
		ai, aj := strings.ToLower(tracks[i].Artist), strings.ToLower(tracks[j].Artist)
		if ai != aj {
			return ai < aj
		}
		return strings.ToLower(tracks[i].Album) < strings.ToLower(tracks[j].Album)
	})
}
