package api

import (
	"io"
	"net/http"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/actor/image"
	"github.com/craftfolio/portfolio-api/internal/model"
)

// maxUploadBytes caps a single multipart upload.
const maxUploadBytes = 10 << 20

// UploadImage stores a base64-encoded image and returns its public URL
// and object id.
func (a *API) UploadImage(w http.ResponseWriter, r *http.Request) {
	var req uploadImageRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}
	if req.Image == "" {
		a.writeError(w, model.BadRequest("empty image payload"))
		return
	}

	upload, err := a.uploadImageIfPresent(r, req.Image)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, upload)
}

// UploadImageFile stores the first file of a multipart form.
func (a *API) UploadImageFile(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		a.writeError(w, model.BadRequest("invalid multipart form"))
		return
	}
	part, err := mr.NextPart()
	if err != nil {
		a.writeError(w, model.BadRequest("no file provided"))
		return
	}
	defer part.Close()

	raw, err := io.ReadAll(io.LimitReader(part, maxUploadBytes))
	if err != nil {
		a.writeError(w, model.Internal("failed to read file"))
		return
	}

	msg := image.UploadBytesMsg{Bytes: raw, Reply: actor.NewReply[model.ImageUpload]()}
	upload, err := actor.Call(r.Context(), a.actors.Image, image.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, upload)
}

// uploadImageIfPresent pushes a base64 payload through the image actor.
// An empty payload is not an error; content can be created without a
// cover image.
func (a *API) uploadImageIfPresent(r *http.Request, data string) (model.ImageUpload, error) {
	if data == "" {
		return model.ImageUpload{}, nil
	}

	msg := image.UploadBase64Msg{Data: data, Reply: actor.NewReply[model.ImageUpload]()}
	return actor.Call(r.Context(), a.actors.Image, image.Message(msg), msg.Reply)
}

// deleteImageIfPresent removes a replaced cover object. Best effort: a
// failed delete only orphans an object, the request still succeeds.
func (a *API) deleteImageIfPresent(r *http.Request, objectID string) {
	if objectID == "" {
		return
	}

	msg := image.DeleteMsg{ObjectID: objectID, Reply: actor.NewReply[struct{}]()}
	if _, err := actor.Call(r.Context(), a.actors.Image, image.Message(msg), msg.Reply); err != nil {
		a.log.Error("failed to delete replaced image", "object_id", objectID, "error", err)
	}
}
