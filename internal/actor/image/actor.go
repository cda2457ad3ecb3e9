package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/logger"
	"github.com/craftfolio/portfolio-api/internal/metrics"
	"github.com/craftfolio/portfolio-api/internal/model"
)

// Actor owns the outbound object-storage client. Every upload is one
// storage call; the single-consumer mailbox serializes them.
type Actor struct {
	storage model.ImageStorage
	log     *logger.Logger
}

func New(storage model.ImageStorage, log *logger.Logger) *Actor {
	return &Actor{storage: storage, log: log.WithActor("image")}
}

func (a *Actor) Run(ctx context.Context, mailbox <-chan Message) {
	for msg := range mailbox {
		a.dispatch(ctx, msg)
		metrics.MessagesProcessed.WithLabelValues("image").Inc()
	}
}

func (a *Actor) dispatch(ctx context.Context, msg Message) {
	switch m := msg.(type) {
	case UploadBase64Msg:
		m.Reply.Resolve(a.uploadBase64(ctx, m.Data))
	case UploadBytesMsg:
		m.Reply.Resolve(a.uploadBytes(ctx, m.Bytes))
	case DeleteMsg:
		m.Reply.Resolve(a.remove(ctx, m.ObjectID))
	}
}

func (a *Actor) remove(ctx context.Context, objectID string) (struct{}, error) {
	if err := a.storage.Delete(ctx, objectID); err != nil {
		a.log.Error("image delete failed", "key", objectID, "error", err)
		return struct{}{}, model.Internal("image delete failed")
	}
	return struct{}{}, nil
}

func (a *Actor) uploadBase64(ctx context.Context, data string) (model.ImageUpload, error) {
	// Browsers send data URIs; only the payload after the comma is base64.
	if idx := strings.Index(data, ","); idx >= 0 && strings.HasPrefix(data, "data:") {
		data = data[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return model.ImageUpload{}, model.BadRequest("invalid base64 image payload")
	}
	return a.uploadBytes(ctx, raw)
}

func (a *Actor) uploadBytes(ctx context.Context, raw []byte) (model.ImageUpload, error) {
	if len(raw) == 0 {
		return model.ImageUpload{}, model.BadRequest("empty image payload")
	}

	contentType := http.DetectContentType(raw)
	key := uuid.NewString() + extensionFor(contentType)

	url, err := a.storage.Put(ctx, key, bytes.NewReader(raw), int64(len(raw)), contentType)
	if err != nil {
		a.log.Error("image upload failed", "key", key, "error", err)
		return model.ImageUpload{}, model.Internal("image upload failed")
	}

	return model.ImageUpload{URL: url, ObjectID: key}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
