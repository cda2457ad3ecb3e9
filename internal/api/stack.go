package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/actor/stack"
	"github.com/craftfolio/portfolio-api/internal/model"
)

func (a *API) CreateStack(w http.ResponseWriter, r *http.Request) {
	caller, ok := AuthUserFromContext(r.Context())
	if !ok {
		a.writeError(w, model.Unauthorized("authentication required"))
		return
	}

	var req createStackRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	title, err := model.NewName(req.Title)
	if err != nil {
		a.writeError(w, err)
		return
	}
	slug, err := model.NewName(req.Slug)
	if err != nil {
		a.writeError(w, err)
		return
	}

	msg := stack.CreateMsg{
		Stack: model.NewStack{
			Title:          title,
			Slug:           slug,
			CreatedBy:      caller.ID,
			CreatedByName:  caller.Name,
			CreatedByEmail: caller.Email,
		},
		Reply: actor.NewReply[uuid.UUID](),
	}
	id, err := actor.Call(r.Context(), a.actors.Stack, stack.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, idResponse{ID: id.String()})
}

func (a *API) GetStack(w http.ResponseWriter, r *http.Request) {
	stackID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid stack id"))
		return
	}

	msg := stack.GetByIDMsg{StackID: stackID, Reply: actor.NewReply[model.Stack]()}
	s, err := actor.Call(r.Context(), a.actors.Stack, stack.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, s)
}

func (a *API) GetStackByTitle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if title == "" {
		a.writeError(w, model.BadRequest("missing stack title"))
		return
	}

	msg := stack.GetByTitleMsg{Title: title, Reply: actor.NewReply[model.Stack]()}
	s, err := actor.Call(r.Context(), a.actors.Stack, stack.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, s)
}

func (a *API) GetAllStacks(w http.ResponseWriter, r *http.Request) {
	msg := stack.GetAllMsg{Reply: actor.NewReply[[]model.Stack]()}
	stacks, err := actor.Call(r.Context(), a.actors.Stack, stack.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, stacks)
}

func (a *API) UpdateStack(w http.ResponseWriter, r *http.Request) {
	caller, ok := AuthUserFromContext(r.Context())
	if !ok {
		a.writeError(w, model.Unauthorized("authentication required"))
		return
	}

	stackID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid stack id"))
		return
	}

	var req updateStackRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	update := model.StackUpdate{
		StackID:       stackID,
		EditedBy:      caller.ID,
		EditedByName:  caller.Name,
		EditedByEmail: caller.Email,
	}
	if req.Slug != nil {
		slug, err := model.NewName(*req.Slug)
		if err != nil {
			a.writeError(w, err)
			return
		}
		update.Slug = &slug
	}

	msg := stack.UpdateMsg{Update: update, Reply: actor.NewReply[bool]()}
	updated, err := actor.Call(r.Context(), a.actors.Stack, stack.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

func (a *API) DeleteStack(w http.ResponseWriter, r *http.Request) {
	stackID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid stack id"))
		return
	}

	msg := stack.DeleteMsg{StackID: stackID, Reply: actor.NewReply[bool]()}
	deleted, err := actor.Call(r.Context(), a.actors.Stack, stack.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
