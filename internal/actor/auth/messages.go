package auth

import (
	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/model"
)

// Message is the closed set of requests the auth actor accepts. The
// unexported marker keeps the variant set sealed to this package, so the
// dispatch switch stays exhaustive by construction.
type Message interface {
	message()
}

// RegisterMsg creates a user from already-validated registration input.
type RegisterMsg struct {
	User  model.NewUser
	Reply actor.Reply[uuid.UUID]
}

// LoginMsg verifies credentials and yields the matching user id.
type LoginMsg struct {
	Email    model.Email
	Password model.Password
	Reply    actor.Reply[uuid.UUID]
}

// GetUserMsg fetches a single user by id.
type GetUserMsg struct {
	UserID uuid.UUID
	Reply  actor.Reply[model.User]
}

// GetAllUsersMsg lists every user, newest first.
type GetAllUsersMsg struct {
	Reply actor.Reply[[]model.User]
}

// UpdateUserMsg applies a partial update to a user row.
type UpdateUserMsg struct {
	Update model.UserUpdate
	Reply  actor.Reply[bool]
}

// DeleteUserMsg removes a user row.
type DeleteUserMsg struct {
	UserID uuid.UUID
	Reply  actor.Reply[bool]
}

func (RegisterMsg) message()    {}
func (LoginMsg) message()       {}
func (GetUserMsg) message()     {}
func (GetAllUsersMsg) message() {}
func (UpdateUserMsg) message()  {}
func (DeleteUserMsg) message()  {}
