package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseObjectName(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		object string
		artist string
		album  string
		title  string
		ok     bool
	}{
		{"numbered", "staging", "staging/Radiohead/OK Computer/01 Airbag.m4a", "Radiohead", "OK Computer", "Airbag", true},
		{"unnumbered", "staging", "staging/Radiohead/OK Computer/Airbag.m4a", "Radiohead", "OK Computer", "Airbag", true},
		{"no prefix", "", "Radiohead/OK Computer/01 Airbag.m4a", "Radiohead", "OK Computer", "Airbag", true},
		{"other prefix", "staging", "library/Radiohead/OK Computer/01 Airbag.m4a", "", "", "", false},
		{"too shallow", "staging", "staging/Radiohead/01 Airbag.m4a", "", "", "", false},
		{"too deep", "staging", "staging/Radiohead/OK Computer/disc1/01 Airbag.m4a", "", "", "", false},
		{"other extension", "staging", "staging/Radiohead/OK Computer/cover.jpg", "", "", "", false},
		{"directory marker", "staging", "staging/Radiohead/OK Computer/", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, ok := parseObjectName(tt.prefix, tt.object)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.artist, track.Artist)
			assert.Equal(t, tt.album, track.Album)
			assert.Equal(t, tt.title, track.Title)
		})
	}
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
		ok       bool
	}{
		{"gs://songs/staging/Air/Moon Safari/01 La femme.m4a", "staging/Air/Moon Safari/01 La femme.m4a", true},
		{"gs://other/staging/Air/Moon Safari/01 La femme.m4a", "", false},
		{"/data/staging/Air/Moon Safari/01 La femme.m4a", "", false},
		{"gs://songs/", "", false},
		{"gs://songs/staging/../library/Air/x.m4a", "", false},
	}

	for _, tt := range tests {
		name, ok := objectName("songs", tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.expected, name, tt.path)
	}
}
