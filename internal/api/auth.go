package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/actor/auth"
	"github.com/craftfolio/portfolio-api/internal/actor/session"
	"github.com/craftfolio/portfolio-api/internal/model"
)

// Register creates a new admin user on behalf of the authenticated
// caller. Role gates run here, before any message is dispatched.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	caller, ok := AuthUserFromContext(r.Context())
	if !ok {
		a.writeError(w, model.Unauthorized("authentication required"))
		return
	}

	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	role, err := model.NewRole(req.Role)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if role == model.RoleRoot {
		a.writeError(w, model.BadRequest("cannot create a root user"))
		return
	}
	if caller.Role == model.RoleNormal {
		a.writeError(w, model.BadRequest("you are not authorized to create users"))
		return
	}

	email, err := model.NewEmail(req.Email)
	if err != nil {
		a.writeError(w, err)
		return
	}
	password, err := model.NewPassword(req.Password)
	if err != nil {
		a.writeError(w, err)
		return
	}
	name, err := model.NewName(req.Name)
	if err != nil {
		a.writeError(w, err)
		return
	}

	var phone *model.PhoneNumber
	if req.PhoneNumber != "" {
		p, err := model.NewPhoneNumber(req.PhoneNumber)
		if err != nil {
			a.writeError(w, err)
			return
		}
		phone = &p
	}

	msg := auth.RegisterMsg{
		User: model.NewUser{
			Email:          email,
			Password:       password,
			Name:           name,
			PhoneNumber:    phone,
			Role:           role,
			CreatedBy:      caller.ID,
			CreatedByName:  caller.Name,
			CreatedByEmail: caller.Email,
		},
		Reply: actor.NewReply[uuid.UUID](),
	}
	id, err := actor.Call(r.Context(), a.actors.Auth, auth.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, idResponse{ID: id.String()})
}

// Login verifies credentials and opens a session: access token in the
// body, refresh token in an HttpOnly cookie.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	// Malformed credentials collapse into the same response as wrong
	// ones, so the endpoint cannot be used to probe registered emails.
	email, err := model.NewEmail(req.Email)
	if err != nil || req.Password == "" {
		a.writeError(w, model.Unauthorized("invalid credentials"))
		return
	}

	loginMsg := auth.LoginMsg{
		Email:    email,
		Password: model.Password(req.Password),
		Reply:    actor.NewReply[uuid.UUID](),
	}
	userID, err := actor.Call(r.Context(), a.actors.Auth, auth.Message(loginMsg), loginMsg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	sessionMsg := session.LoginMsg{UserID: userID, Reply: actor.NewReply[model.TokenPair]()}
	pair, err := actor.Call(r.Context(), a.actors.Session, session.Message(sessionMsg), sessionMsg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	setRefreshCookie(w, pair.RefreshToken)
	a.writeJSON(w, http.StatusOK, pair)
}

func (a *API) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid user id"))
		return
	}

	msg := auth.GetUserMsg{UserID: userID, Reply: actor.NewReply[model.User]()}
	user, err := actor.Call(r.Context(), a.actors.Auth, auth.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, user)
}

func (a *API) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	msg := auth.GetAllUsersMsg{Reply: actor.NewReply[[]model.User]()}
	users, err := actor.Call(r.Context(), a.actors.Auth, auth.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, users)
}

// UpdateUser applies a partial update. Callers may only update their own
// account; promotion to root is rejected outright.
func (a *API) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := AuthUserFromContext(r.Context())
	if !ok {
		a.writeError(w, model.Unauthorized("authentication required"))
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid user id"))
		return
	}
	if userID != caller.ID {
		a.writeError(w, model.Unauthorized("you can only update your own account"))
		return
	}
	if caller.Role == model.RoleNormal {
		a.writeError(w, model.BadRequest("you are not authorized to update users"))
		return
	}

	var req updateUserRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	update := model.UserUpdate{
		UserID:        userID,
		EditedBy:      caller.ID,
		EditedByName:  caller.Name,
		EditedByEmail: caller.Email,
	}
	if req.Name != nil {
		name, err := model.NewName(*req.Name)
		if err != nil {
			a.writeError(w, err)
			return
		}
		update.Name = &name
	}
	if req.PhoneNumber != nil {
		phone, err := model.NewPhoneNumber(*req.PhoneNumber)
		if err != nil {
			a.writeError(w, err)
			return
		}
		update.PhoneNumber = &phone
	}
	if req.Role != nil {
		role, err := model.NewRole(*req.Role)
		if err != nil {
			a.writeError(w, err)
			return
		}
		if role == model.RoleRoot {
			a.writeError(w, model.BadRequest("cannot grant the root role"))
			return
		}
		update.Role = &role
	}

	msg := auth.UpdateUserMsg{Update: update, Reply: actor.NewReply[bool]()}
	updated, err := actor.Call(r.Context(), a.actors.Auth, auth.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

func (a *API) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, model.BadRequest("invalid user id"))
		return
	}

	msg := auth.DeleteUserMsg{UserID: userID, Reply: actor.NewReply[bool]()}
	deleted, err := actor.Call(r.Context(), a.actors.Auth, auth.Message(msg), msg.Reply)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
