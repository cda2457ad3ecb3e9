package image

import (
	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/model"
)

// Message is the closed set of requests the image actor accepts.
type Message interface {
	message()
}

// UploadBase64Msg stores a base64-encoded image (with or without a data
// URI prefix) and yields its public URL and object key.
type UploadBase64Msg struct {
	Data  string
	Reply actor.Reply[model.ImageUpload]
}

// UploadBytesMsg stores raw image bytes.
type UploadBytesMsg struct {
	Bytes []byte
	Reply actor.Reply[model.ImageUpload]
}

// DeleteMsg removes a stored object, e.g. a cover image that has been
// replaced.
type DeleteMsg struct {
	ObjectID string
	Reply    actor.Reply[struct{}]
}

func (UploadBase64Msg) message() {}
func (UploadBytesMsg) message()  {}
func (DeleteMsg) message()       {}
