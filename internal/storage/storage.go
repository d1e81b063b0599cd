package storage

import (
	"context"
	"io"
)

// Uploader stores avatar images in remote object storage and returns the
// public URL of the stored object.
type Uploader interface {
	UploadAvatar(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
