package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/jaki95/songripper/internal/domain"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStorage reads the staging area from objects named
// <prefix>/<artist>/<album>/<file>.m4a in a bucket.
type GCSStorage struct {
	client       *storage.Client
	bucket       string
	objectPrefix string
}

var (
	_ Storage   = (*GCSStorage)(nil)
	_ io.Closer = (*GCSStorage)(nil)
)

// NewGCSStorage creates a new GCSStorage instance
func NewGCSStorage(ctx context.Context, bucketName, objectPrefix, credentialsFile string) (*GCSStorage, error) {
	if bucketName == "" {
		return nil, ErrMissingBucket
	}

	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		// Use application default credentials
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:       client,
		bucket:       bucketName,
		objectPrefix: strings.Trim(objectPrefix, "/"),
	}, nil
}

func (s *GCSStorage) listPrefix() string {
	if s.objectPrefix == "" {
		return ""
	}
	return s.objectPrefix + "/"
}

// ListTracks lists the audio objects under the staging prefix.
func (s *GCSStorage) ListTracks(ctx context.Context) ([]domain.StagedTrack, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.listPrefix()})

	tracks := make([]domain.StagedTrack, 0)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing objects: %w", err)
		}

		track, ok := parseObjectName(s.objectPrefix, attrs.Name)
		if !ok {
			continue
		}
		track.Filepath = s.objectPath(attrs.Name)
		tracks = append(tracks, track)
	}

	sortTracks(tracks)
	return tracks, nil
}

// HasFiles reports whether any object exists under the staging prefix.
func (s *GCSStorage) HasFiles(ctx context.Context) (bool, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.listPrefix()})
	_, err := it.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error listing objects: %w", err)
	}
	return true, nil
}

// Clear deletes every object under the staging prefix.
func (s *GCSStorage) Clear(ctx context.Context) (bool, error) {
	bucket := s.client.Bucket(s.bucket)
	it := bucket.Objects(ctx, &storage.Query{Prefix: s.listPrefix()})

	deleted := 0
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted > 0, fmt.Errorf("error listing objects: %w", err)
		}
		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
			return deleted > 0, fmt.Errorf("failed to delete %s: %w", attrs.Name, err)
		}
		deleted++
	}

	if deleted > 0 {
		slog.Info("Cleared staging", "bucket", s.bucket, "prefix", s.objectPrefix, "objects", deleted)
	}
	return deleted > 0, nil
}

// Close closes the GCS client
func (s *GCSStorage) Close() error {
	return s.client.Close()
}

// Track reads the staged track stored at a gs://bucket/object path.
func (s *GCSStorage) Track(ctx context.Context, filepath string) (domain.StagedTrack, error) {
	track, _, err := s.locate(ctx, filepath)
	return track, err
}

// UpdateTrack moves the track object to the name matching the edited field.
// GCS has no rename, so the object is copied and the original deleted.
func (s *GCSStorage) UpdateTrack(ctx context.Context, filepath, field, value string) (domain.StagedTrack, error) {
	track, name, err := s.locate(ctx, filepath)
	if err != nil {
		return domain.StagedTrack{}, err
	}
	edit, err := editTrack(track, path.Base(name), field, value)
	if err != nil {
		return domain.StagedTrack{}, err
	}

	newName := s.listPrefix() + edit.rel
	updated := edit.track
	updated.Filepath = s.objectPath(newName)
	if newName == name {
		return updated, nil
	}

	bucket := s.client.Bucket(s.bucket)
	dst := bucket.Object(newName)
	if _, err := dst.Attrs(ctx); err == nil {
		return domain.StagedTrack{}, fmt.Errorf("%w: %s", ErrTrackExists, updated.Filepath)
	} else if !errors.Is(err, storage.ErrObjectNotExist) {
		return domain.StagedTrack{}, fmt.Errorf("failed to check %s: %w", newName, err)
	}

	src := bucket.Object(name)
	if _, err := dst.CopierFrom(src).Run(ctx); err != nil {
		return domain.StagedTrack{}, fmt.Errorf("failed to copy %s to %s: %w", name, newName, err)
	}
	if err := src.Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return domain.StagedTrack{}, fmt.Errorf("failed to delete %s: %w", name, err)
	}

	slog.Info("Updated staged track", "field", field, "from", filepath, "to", updated.Filepath)
	return updated, nil
}

func (s *GCSStorage) objectPath(name string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, name)
}

// locate resolves a gs:// path in this bucket to its track and object name.
func (s *GCSStorage) locate(ctx context.Context, filepath string) (domain.StagedTrack, string, error) {
	name, ok := objectName(s.bucket, filepath)
	if !ok {
		return domain.StagedTrack{}, "", fmt.Errorf("%w: %s", ErrNotStaged, filepath)
	}
	track, ok := parseObjectName(s.objectPrefix, name)
	if !ok {
		return domain.StagedTrack{}, "", fmt.Errorf("%w: %s", ErrNotStaged, filepath)
	}

	if _, err := s.client.Bucket(s.bucket).Object(name).Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return domain.StagedTrack{}, "", fmt.Errorf("%w: %s", ErrTrackNotFound, filepath)
		}
		return domain.StagedTrack{}, "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	track.Filepath = s.objectPath(name)
	return track, name, nil
}

// objectName extracts the object name from gs://<bucket>/<name>.
func objectName(bucket, filepath string) (string, bool) {
	name, ok := strings.CutPrefix(filepath, "gs://"+bucket+"/")
	if !ok || name == "" || path.Clean(name) != name {
		return "", false
	}
	return name, true
}

// parseObjectName maps <prefix>/<artist>/<album>/<file>.m4a to a track.
// Objects at any other depth or with another extension are skipped.
func parseObjectName(prefix, name string) (domain.StagedTrack, bool) {
	rel := name
	if prefix != "" {
		var ok bool
		rel, ok = strings.CutPrefix(name, prefix+"/")
		if !ok {
			return domain.StagedTrack{}, false
		}
	}

	parts := strings.Split(rel, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return domain.StagedTrack{}, false
	}
	file := parts[2]
	if path.Ext(file) != domain.AudioExt {
		return domain.StagedTrack{}, false
	}

	return domain.StagedTrack{
		Artist: parts[0],
		Album:  parts[1],
		Title:  domain.TitleFromStem(strings.TrimSuffix(file, domain.AudioExt)),
	}, true
}
