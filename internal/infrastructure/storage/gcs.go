package storage

import (
	"context"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

type GCSStore struct {
	client *gcs.Client
	bucket string
	log    *logrus.Logger
}

func NewGCSStore(client *gcs.Client, bucket string, log *logrus.Logger) *GCSStore {
	return &GCSStore{client: client, bucket: bucket, log: helpers.OrNop(log)}
}

func (s *GCSStore) Upload(ctx context.Context, prefix, owner, filename, contentType string, r io.Reader) (Object, error) {
	path := helpers.ObjectPath(prefix, owner, filename)
	url, err := helpers.UploadObject(ctx, s.client, s.bucket, path, contentType, r)
	if err != nil {
		s.log.WithError(err).WithField("object", path).Error("gcs upload failed")
		return Object{}, errs.StorageFailed("upload", err)
	}
	return Object{Path: path, URL: url, ContentType: contentType}, nil
}

func (s *GCSStore) Delete(ctx context.Context, path string) error {
	if err := helpers.DeleteObject(ctx, s.client, s.bucket, path); err != nil {
		s.log.WithError(err).WithField("object", path).Warn("gcs delete failed")
		return errs.StorageFailed("delete", err)
	}
	return nil
}

var _ Store = (*GCSStore)(nil)
