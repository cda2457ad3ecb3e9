package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/actor/blog"
	"github.com/craftfolio/portfolio-api/internal/model"
)

func (a *API) CreateBlog(w http.ResponseWriter, r *http.Request) {
	caller, ok := AuthUserFromContext(r.Context())
	if !ok {
		a.writeError(w, model.Unauthorized("authentication required"))
		return
	}

	var req createBlogRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	title, err := model.NewName(req.Title)
	if err != nil {
		a.writeError(w, err)
		return
	}
	description, err := model.NewName(req.Description)
	if err != nil {
		a.writeError(w, err)
		return
	}

	upload, err := a.uploadImageIfPresent(r, req.Image)
	if err != nil {
		a.writeError(w, err)
		return
	}

	msg := blog.CreateMsg{
		Blog: model.NewBlog{
			Title:          title,
			Description:    description,
			Content:        req.Content,
			Image:          upload.URL,
			ImageID:        upload.ObjectID,
			CreatedBy:      caller.ID,
			CreatedByName:  caller.Name,
			CreatedByEmail: caller.Email,
		},
		Reply: actor.NewReply[uuid.UUID](),
	}
	id, err := actor.Call(r.Context(), a.actors.Blog, blog.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, idResponse{ID: id.String()})
}

func (a *API) GetBlog(w http.ResponseWriter, r *http.Request) {
	blogID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid blog id"))
		return
	}

	msg := blog.GetByIDMsg{BlogID: blogID, Reply: actor.NewReply[model.Blog]()}
	b, err := actor.Call(r.Context(), a.actors.Blog, blog.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, b)
}

func (a *API) GetAllBlogs(w http.ResponseWriter, r *http.Request) {
	msg := blog.GetAllMsg{Reply: actor.NewReply[[]model.Blog]()}
	blogs, err := actor.Call(r.Context(), a.actors.Blog, blog.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, blogs)
}

func (a *API) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	caller, ok := AuthUserFromContext(r.Context())
	if !ok {
		a.writeError(w, model.Unauthorized("authentication required"))
		return
	}

	blogID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid blog id"))
		return
	}

	var req updateBlogRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	update := model.BlogUpdate{
		BlogID:        blogID,
		Content:       req.Content,
		EditedBy:      caller.ID,
		EditedByName:  caller.Name,
		EditedByEmail: caller.Email,
	}
	if req.Description != nil {
		description, err := model.NewName(*req.Description)
		if err != nil {
			a.writeError(w, err)
			return
		}
		update.Description = &description
	}
	var previousImageID string
	if req.Image != nil {
		lookup := blog.GetByIDMsg{BlogID: blogID, Reply: actor.NewReply[model.Blog]()}
		current, err := actor.Call(r.Context(), a.actors.Blog, blog.Message(lookup), lookup.Reply)
		if err != nil {
			a.writeError(w, err)
			return
		}
		previousImageID = current.ImageID

		upload, err := a.uploadImageIfPresent(r, *req.Image)
		if err != nil {
			a.writeError(w, err)
			return
		}
		update.Image = &upload.URL
		update.ImageID = &upload.ObjectID
	}

	msg := blog.UpdateMsg{Update: update, Reply: actor.NewReply[bool]()}
	updated, err := actor.Call(r.Context(), a.actors.Blog, blog.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if updated && previousImageID != "" {
		a.deleteImageIfPresent(r, previousImageID)
	}

	a.writeJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

func (a *API) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	blogID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid blog id"))
		return
	}

	msg := blog.DeleteMsg{BlogID: blogID, Reply: actor.NewReply[bool]()}
	deleted, err := actor.Call(r.Context(), a.actors.Blog, blog.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
