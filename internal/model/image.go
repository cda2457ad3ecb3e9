package model

import (
	"context"
	"io"
)

// ImageUpload is the outcome of storing an image: a public URL and the
// object key needed to reference or delete it later.
type ImageUpload struct {
	URL      string `json:"url"`
	ObjectID string `json:"public_id"`
}

// ImageStorage abstracts the object store owned by the image actor.
type ImageStorage interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
}
