package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/actor/project"
	"github.com/craftfolio/portfolio-api/internal/actor/stack"
	"github.com/craftfolio/portfolio-api/internal/model"
)

func (a *API) CreateProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := AuthUserFromContext(r.Context())
	if !ok {
		a.writeError(w, model.Unauthorized("authentication required"))
		return
	}

	var req createProjectRequest
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
	stackName, err := model.NewName(req.Stack)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if err := a.ensureStackExists(r.Context(), stackName.String()); err != nil {
		a.writeError(w, err)
		return
	}

	upload, err := a.uploadImageIfPresent(r, req.Image)
	if err != nil {
		a.writeError(w, err)
		return
	}

	msg := project.CreateMsg{
		Project: model.NewProject{
			Title:          title,
			Description:    description,
			Stack:          stackName,
			Content:        req.Content,
			Image:          upload.URL,
			ImageID:        upload.ObjectID,
			CreatedBy:      caller.ID,
			CreatedByName:  caller.Name,
			CreatedByEmail: caller.Email,
		},
		Reply: actor.NewReply[uuid.UUID](),
	}
	id, err := actor.Call(r.Context(), a.actors.Project, project.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, idResponse{ID: id.String()})
}

func (a *API) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid project id"))
		return
	}

	msg := project.GetByIDMsg{ProjectID: projectID, Reply: actor.NewReply[model.Project]()}
	p, err := actor.Call(r.Context(), a.actors.Project, project.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, p)
}

func (a *API) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	msg := project.GetAllMsg{Reply: actor.NewReply[[]model.Project]()}
	projects, err := actor.Call(r.Context(), a.actors.Project, project.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, projects)
}

func (a *API) UpdateProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := AuthUserFromContext(r.Context())
	if !ok {
		a.writeError(w, model.Unauthorized("authentication required"))
		return
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid project id"))
		return
	}

	var req updateProjectRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	update := model.ProjectUpdate{
		ProjectID:     projectID,
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
	if req.Stack != nil {
		stackName, err := model.NewName(*req.Stack)
		if err != nil {
			a.writeError(w, err)
			return
		}
		if err := a.ensureStackExists(r.Context(), stackName.String()); err != nil {
			a.writeError(w, err)
			return
		}
		update.Stack = &stackName
	}
	var previousImageID string
	if req.Image != nil {
		lookup := project.GetByIDMsg{ProjectID: projectID, Reply: actor.NewReply[model.Project]()}
		current, err := actor.Call(r.Context(), a.actors.Project, project.Message(lookup), lookup.Reply)
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

	msg := project.UpdateMsg{Update: update, Reply: actor.NewReply[bool]()}
	updated, err := actor.Call(r.Context(), a.actors.Project, project.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if updated && previousImageID != "" {
		a.deleteImageIfPresent(r, previousImageID)
	}

	a.writeJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

func (a *API) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid project id"))
		return
	}

	msg := project.DeleteMsg{ProjectID: projectID, Reply: actor.NewReply[bool]()}
	deleted, err := actor.Call(r.Context(), a.actors.Project, project.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// ensureStackExists rejects projects that reference a stack title not
// present in the taxonomy.
func (a *API) ensureStackExists(ctx context.Context, title string) error {
	msg := stack.GetByTitleMsg{Title: title, Reply: actor.NewReply[model.Stack]()}
	if _, err := actor.Call(ctx, a.actors.Stack, stack.Message(msg), msg.Reply); err != nil {
		if model.KindOf(err) == model.KindNotFound {
			return model.BadRequest("stack not found")
		}
		return err
	}
	return nil
}
