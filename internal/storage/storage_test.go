package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"listingapi/internal/config"
)

func TestSnapshotKey(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "listings/abc/submissions/1772366400.json", SnapshotKey("abc", at))
}

func TestNewMinIO_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{"missing endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}, "endpoint is required"},
		{"missing credentials", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"}, "credentials are required"},
		{"missing bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}, "bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(context.Background(), tt.cfg)
			assert.Nil(t, s)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestTranslate(t *testing.T) {
	err := translate("k", minio.ErrorResponse{Code: "NoSuchKey"})
	assert.ErrorIs(t, err, ErrObjectNotFound)

	err = translate("k", errors.New("boom"))
	assert.False(t, errors.Is(err, ErrObjectNotFound))
	assert.ErrorContains(t, err, "k: boom")
}
