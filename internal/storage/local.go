package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaki95/songripper/internal/domain"
)

// Cover images looked up next to the tracks of an album.
var coverFiles = []struct{ name, mime string }{
	{"cover.jpg", "image/jpeg"},
	{"cover.png", "image/png"},
}

// LocalStorage reads the staging area from <dir>/<artist>/<album>/*.m4a.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates a local staging store rooted at dir
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, ErrMissingStagingDir
	}
	return &LocalStorage{dir: dir}, nil
}

// ListTracks walks the artist and album directories of the staging root.
// A missing root lists as empty.
func (s *LocalStorage) ListTracks(ctx context.Context) ([]domain.StagedTrack, error) {
	artists, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []domain.StagedTrack{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read staging directory: %w", err)
	}

	tracks := make([]domain.StagedTrack, 0)
	for _, artist := range artists {
		if !artist.IsDir() {
			continue
		}
		artistDir := filepath.Join(s.dir, artist.Name())
		albums, err := os.ReadDir(artistDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read artist directory %s: %w", artistDir, err)
		}

		for _, album := range albums {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !album.IsDir() {
				continue
			}
			albumTracks, err := s.listAlbum(artist.Name(), album.Name())
			if err != nil {
				return nil, err
			}
			tracks = append(tracks, albumTracks...)
		}
	}

	sortTracks(tracks)
	return tracks, nil
}

func (s *LocalStorage) listAlbum(artist, album string) ([]domain.StagedTrack, error) {
	albumDir := filepath.Join(s.dir, artist, album)
	files, err := filepath.Glob(filepath.Join(albumDir, "*"+domain.AudioExt))
	if err != nil {
		return nil, fmt.Errorf("failed to list album directory %s: %w", albumDir, err)
	}

	cover := readCover(albumDir)
	tracks := make([]domain.StagedTrack, 0, len(files))
	for _, file := range files {
		stem := strings.TrimSuffix(filepath.Base(file), domain.AudioExt)
		tracks = append(tracks, domain.StagedTrack{
			Artist:   artist,
			Album:    album,
			Title:    domain.TitleFromStem(stem),
			Filepath: file,
			Cover:    cover,
		})
	}
	return tracks, nil
}

// readCover returns the album's cover image as a data URI, or "" if there is none.
func readCover(albumDir string) string {
	for _, cover := range coverFiles {
		data, err := os.ReadFile(filepath.Join(albumDir, cover.name))
		if err != nil {
			continue
		}
		return fmt.Sprintf("data:%s;base64,%s", cover.mime, base64.StdEncoding.EncodeToString(data))
	}
	return ""
}

// HasFiles reports whether the staging root exists and is not empty.
func (s *LocalStorage) HasFiles(ctx context.Context) (bool, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read staging directory: %w", err)
	}
	return len(entries) > 0, nil
}

// Clear removes the staging root with everything in it.
func (s *LocalStorage) Clear(ctx context.Context) (bool, error) {
	has, err := s.HasFiles(ctx)
	if err != nil || !has {
		return false, err
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return false, fmt.Errorf("failed to remove staging directory: %w", err)
	}
	slog.Info("Cleared staging", "dir", s.dir)
	return true, nil
}

// Track reads the staged track at path. Artist, album and title come from
// the path, as in ListTracks.
func (s *LocalStorage) Track(ctx context.Context, path string) (domain.StagedTrack, error) {
	track, _, err := s.locate(path)
	return track, err
}

// UpdateTrack renames or moves the track file to match the edited field.
// Directories left empty by a move are removed.
func (s *LocalStorage) UpdateTrack(ctx context.Context, path, field, value string) (domain.StagedTrack, error) {
	track, file, err := s.locate(path)
	if err != nil {
		return domain.StagedTrack{}, err
	}
	edit, err := editTrack(track, file, field, value)
	if err != nil {
		return domain.StagedTrack{}, err
	}

	src := filepath.Join(s.dir, track.Artist, track.Album, file)
	dst := filepath.Join(s.dir, filepath.FromSlash(edit.rel))
	updated := edit.track
	updated.Filepath = dst

	if src != dst {
		if err := s.move(src, dst); err != nil {
			return domain.StagedTrack{}, err
		}
		s.removeEmptyDirs(track.Artist, track.Album)
		slog.Info("Updated staged track", "field", field, "from", src, "to", dst)
	}

	updated.Cover = readCover(filepath.Dir(dst))
	return updated, nil
}

func (s *LocalStorage) move(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTrackNotFound, src)
	}
	// A case-only rename stats as the same file on case-insensitive filesystems
	if dstInfo, err := os.Stat(dst); err == nil && !os.SameFile(srcInfo, dstInfo) {
		return fmt.Errorf("%w: %s", ErrTrackExists, dst)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create album directory: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move track: %w", err)
	}
	return nil
}

// removeEmptyDirs removes the album directory and then the artist
// directory, stopping at the first one that is not empty.
func (s *LocalStorage) removeEmptyDirs(artist, album string) {
	for _, dir := range []string{
		filepath.Join(s.dir, artist, album),
		filepath.Join(s.dir, artist),
	} {
		if err := os.Remove(dir); err != nil {
			return
		}
	}
}

// locate checks that path names a file at <root>/<artist>/<album>/<file>.m4a
// and returns the track it holds together with its file name.
func (s *LocalStorage) locate(path string) (domain.StagedTrack, string, error) {
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return domain.StagedTrack{}, "", fmt.Errorf("failed to resolve staging directory: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.StagedTrack{}, "", fmt.Errorf("%w: %s", ErrNotStaged, path)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return domain.StagedTrack{}, "", fmt.Errorf("%w: %s", ErrNotStaged, path)
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 3 || parts[0] == ".." || filepath.Ext(parts[2]) != domain.AudioExt {
		return domain.StagedTrack{}, "", fmt.Errorf("%w: %s", ErrNotStaged, path)
	}

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return domain.StagedTrack{}, "", fmt.Errorf("%w: %s", ErrTrackNotFound, path)
	}

	artist, album, file := parts[0], parts[1], parts[2]
	return domain.StagedTrack{
		Artist:   artist,
		Album:    album,
		Title:    domain.TitleFromStem(strings.TrimSuffix(file, domain.AudioExt)),
		Filepath: filepath.Join(s.dir, artist, album, file),
		Cover:    readCover(filepath.Join(s.dir, artist, album)),
	}, file, nil
}
