package storage

import (
	"bytes"
	"context"
	"errors"
	"path"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/worksafe-api/pkg/helpers"
)

var ErrNotConfigured = errors.New("report storage not configured")

// ReportStore uploads generated reports to a GCS bucket.
type ReportStore struct {
	client *gcs.Client
	bucket string
}

func NewReportStore(client *gcs.Client, bucket string) *ReportStore {
	return &ReportStore{client: client, bucket: bucket}
}

// ObjectPath lays reports out by day: reports/2025/05/02/<uuid>.<ext>.
func ObjectPath(at time.Time, ext string) string {
	return path.Join("reports", at.UTC().Format("2006/01/02"), uuid.NewString()+"."+ext)
}

// Save uploads content and returns its public URL.
func (s *ReportStore) Save(ctx context.Context, ext, contentType string, content []byte) (string, error) {
	if s == nil || s.client == nil || s.bucket == "" {
		return "", ErrNotConfigured
	}
	return helpers.UploadObject(ctx, s.client, s.bucket, ObjectPath(time.Now(), ext), contentType, bytes.NewReader(content))
}
