// Package storage proxies record attachments to a Google Cloud Storage
// bucket. The browser never talks to GCS directly; the server uploads on its
// behalf and hands back time-limited signed URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	// MaxFileSize is the per-file upload cap.
	MaxFileSize = 10 << 20
	// MaxBatchFiles is the most files one batch upload request may carry.
	MaxBatchFiles = 5

	objectPrefix = "pq-records/"

	uploadURLTTL = 24 * time.Hour
	accessURLTTL = time.Hour
)

// ErrNotFound is returned when an object name resolves to nothing in the
// bucket.
var ErrNotFound = errors.New("file not found")

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel": true,
	"image/jpeg":               true,
	"image/png":                true,
	"image/jpg":                true,
}

// Config for the attachment store.
type Config struct {
	Bucket    string
	ProjectID string
	KeyFile   string
}

// Service wraps a GCS client scoped to a single bucket.
type Service struct {
	client *storage.Client
	bucket *storage.BucketHandle
	name   string
}

// FileInfo describes one stored attachment as reported to the client.
type FileInfo struct {
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName,omitempty"`
	Size         int64  `json:"size"`
	ContentType  string `json:"contentType,omitempty"`
	UploadedAt   string `json:"uploadedAt,omitempty"`
	SignedURL    string `json:"signedUrl,omitempty"`
}

// New creates the storage service using a service account key file.
func New(ctx context.Context, cfg Config) (*Service, error) {
	var opts []option.ClientOption
	if cfg.KeyFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.KeyFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	log.Printf("✅ File storage ready (bucket: %s)", cfg.Bucket)

	return &Service{
		client: client,
		bucket: client.Bucket(cfg.Bucket),
		name:   cfg.Bucket,
	}, nil
}

// Close releases the underlying client.
func (s *Service) Close() error {
	return s.client.Close()
}

// AllowedContentType reports whether uploads of this MIME type are accepted.
func AllowedContentType(contentType string) bool {
	return allowedContentTypes[contentType]
}

// ObjectName builds the bucket path for a new attachment. The millisecond
// timestamp keeps repeated uploads of the same file distinct.
func ObjectName(recordID, originalName string, now time.Time) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s%s/%d-%s%s", objectPrefix, recordID, now.UnixMilli(), base, ext)
}

// Upload streams one file into the bucket and returns its info with a signed
// URL valid for 24 hours. Size and content-type checks are the caller's
// responsibility; Upload only stores.
func (s *Service) Upload(ctx context.Context, recordID, originalName, contentType string, size int64, r io.Reader) (*FileInfo, error) {
	now := time.Now().UTC()
	objectName := ObjectName(recordID, originalName, now)

	w := s.bucket.Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"recordId":     recordID,
		"originalName": originalName,
		"uploadedAt":   now.Format(time.RFC3339),
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("write object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize object %s: %w", objectName, err)
	}

	url, err := s.signURL(objectName, uploadURLTTL)
	if err != nil {
		return nil, err
	}

	log.Printf("📎 Uploaded %s (%d bytes) for record %s", originalName, size, recordID)

	return &FileInfo{
		FileName:     objectName,
		OriginalName: originalName,
		Size:         size,
		ContentType:  contentType,
		UploadedAt:   now.Format(time.RFC3339),
		SignedURL:    url,
	}, nil
}

// SignedURL returns a fresh 1-hour read URL for an existing object.
func (s *Service) SignedURL(ctx context.Context, objectName string) (string, error) {
	_, err := s.bucket.Object(objectName).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("stat object %s: %w", objectName, err)
	}
	return s.signURL(objectName, accessURLTTL)
}

// Delete removes one object. Deleting an already-absent object is not an
// error so attachment cleanup stays idempotent.
func (s *Service) Delete(ctx context.Context, objectName string) error {
	err := s.bucket.Object(objectName).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete object %s: %w", objectName, err)
	}
	return nil
}

// List returns all attachments stored under one record, each with a 1-hour
// signed URL.
func (s *Service) List(ctx context.Context, recordID string) ([]FileInfo, error) {
	files := []FileInfo{}

	it := s.bucket.Objects(ctx, &storage.Query{Prefix: objectPrefix + recordID + "/"})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects for record %s: %w", recordID, err)
		}

		url, err := s.signURL(attrs.Name, accessURLTTL)
		if err != nil {
			return nil, err
		}

		files = append(files, FileInfo{
			FileName:     attrs.Name,
			OriginalName: attrs.Metadata["originalName"],
			Size:         attrs.Size,
			ContentType:  attrs.ContentType,
			UploadedAt:   attrs.Metadata["uploadedAt"],
			SignedURL:    url,
		})
	}

	return files, nil
}

func (s *Service) signURL(objectName string, ttl time.Duration) (string, error) {
	url, err := s.bucket.SignedURL(objectName, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(ttl),
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %s: %w", objectName, err)
	}
	return url, nil
}
