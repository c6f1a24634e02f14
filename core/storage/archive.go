package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
)

// Archive writes JSON documents under a date-partitioned prefix.
type Archive struct {
	client Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewArchive creates an archive writing to bucket/prefix.
func NewArchive(client Client, bucket, prefix string) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
	}
}

// ObjectName returns the key a document named name is stored under.
func (a *Archive) ObjectName(name string, at time.Time) string {
	return path.Join(a.prefix, at.UTC().Format("2006/01/02"), name+".json")
}

// PutJSON marshals v and uploads it. It returns the object key.
func (a *Archive) PutJSON(ctx context.Context, name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	objectName := a.ObjectName(name, a.now())
	_, err = a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return objectName, nil
}
