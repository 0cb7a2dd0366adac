package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Fields that can be edited from the staging table and the bulk-edit form.
const (
	FieldArtist = "artist"
	FieldAlbum  = "album"
	FieldTitle  = "title"
)

// EditableFields lists the bulk-editable fields in display order.
var EditableFields = []string{FieldArtist, FieldAlbum, FieldTitle}

// AudioExt is the extension of ripped audio files.
const AudioExt = ".m4a"

var (
	trackNumberPrefix = regexp.MustCompile(`^\d{2} `)
	unsafePathChars   = regexp.MustCompile(`[\\/*?:"<>|]`)
	emoji             = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{1F900}-\x{1F9FF}\x{1FA70}-\x{1FAFF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}]`)
	whitespace        = regexp.MustCompile(`\s+`)
)

// StagedTrack represents a track waiting for approval in the staging area.
type StagedTrack struct {
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Title    string `json:"title"`
	Filepath string `json:"filepath"`

	// Cover is a data URI or URL for the album art, empty when none was found.
	Cover string `json:"cover,omitempty"`
}

// Value returns the value of an editable field.
func (t StagedTrack) Value(field string) (string, error) {
	switch field {
	case FieldArtist:
		return t.Artist, nil
	case FieldAlbum:
		return t.Album, nil
	case FieldTitle:
		return t.Title, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// WithValue returns a copy of t with field set to value.
func (t StagedTrack) WithValue(field, value string) (StagedTrack, error) {
	switch field {
	case FieldArtist:
		t.Artist = value
	case FieldAlbum:
		t.Album = value
	case FieldTitle:
		t.Title = value
	default:
		return t, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return t, nil
}

// ValueInput is the name of the bulk-edit input carrying a field's value.
func ValueInput(field string) string { return field + "_value" }

// EnableInput is the name of the bulk-edit checkbox including a field in a submit.
func EnableInput(field string) string { return field + "_enable" }

// IsEditable reports whether field is one of EditableFields.
func IsEditable(field string) bool {
	for _, f := range EditableFields {
		if f == field {
			return true
		}
	}
	return false
}

// TitleFromStem strips a leading "NN " track number from a file stem.
func TitleFromStem(stem string) string {
	if trackNumberPrefix.MatchString(stem) {
		return stem[3:]
	}
	return stem
}

// TrackNumber returns the "NN " prefix of a file stem, or "".
func TrackNumber(stem string) string {
	if trackNumberPrefix.MatchString(stem) {
		return stem[:3]
	}
	return ""
}

// CleanValue makes an edited value safe to use as a path element: path
// separators, reserved characters and emoji become spaces and runs of
// whitespace collapse to one.
func CleanValue(text string) string {
	text = unsafePathChars.ReplaceAllString(text, " ")
	text = emoji.ReplaceAllString(text, " ")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// DisplayTitle is the heading shown in the artwork lookup panel.
func DisplayTitle(artist, album string) string {
	artist = strings.TrimSpace(artist)
	album = strings.TrimSpace(album)
	switch {
	case artist == "":
		return album
	case album == "":
		return artist
	}
	return artist + " - " + album
}

// Inputs of the bulk-edit form's artwork lookup section.
const (
	ArtworkArtistInput   = "artwork_artist"
	ArtworkAlbumInput    = "artwork_album"
	ArtworkFilepathInput = "artwork_filepath"
	ArtworkEnableInput   = "artwork_enable"
)
