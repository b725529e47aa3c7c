// Package storage keeps immutable listing snapshots in an S3-compatible
// object store. Objects are streamed; nothing touches local disk.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// PutObjectOptions describes an upload. Size is -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store used for submission snapshots.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL for key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// SnapshotKey is the object key for a listing submitted at t.
func SnapshotKey(listingID string, t time.Time) string {
	return fmt.Sprintf("listings/%s/submissions/%d.json", listingID, t.Unix())
}
