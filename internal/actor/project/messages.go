package project

import (
	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/model"
)

// Message is the closed set of requests the project actor accepts.
type Message interface {
	message()
}

type CreateMsg struct {
	Project model.NewProject
	Reply   actor.Reply[uuid.UUID]
}

type GetByIDMsg struct {
	ProjectID uuid.UUID
	Reply     actor.Reply[model.Project]
}

type GetAllMsg struct {
	Reply actor.Reply[[]model.Project]
}

type UpdateMsg struct {
	Update model.ProjectUpdate
	Reply  actor.Reply[bool]
}

type DeleteMsg struct {
	ProjectID uuid.UUID
	Reply     actor.Reply[bool]
}

func (CreateMsg) message()  {}
func (GetByIDMsg) message() {}
func (GetAllMsg) message()  {}
func (UpdateMsg) message()  {}
func (DeleteMsg) message()  {}
