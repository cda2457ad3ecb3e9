package stack

import (
	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/model"
)

// Message is the closed set of requests the stack actor accepts.
type Message interface {
	message()
}

type CreateMsg struct {
	Stack model.NewStack
	Reply actor.Reply[uuid.UUID]
}

type GetByIDMsg struct {
	StackID uuid.UUID
	Reply   actor.Reply[model.Stack]
}

// GetByTitleMsg is the lookup other callers use as an existence check
// before binding a project to a stack.
type GetByTitleMsg struct {
	Title string
	Reply actor.Reply[model.Stack]
}

type GetAllMsg struct {
	Reply actor.Reply[[]model.Stack]
}

type UpdateMsg struct {
	Update model.StackUpdate
	Reply  actor.Reply[bool]
}

type DeleteMsg struct {
	StackID uuid.UUID
	Reply   actor.Reply[bool]
}

func (CreateMsg) message()     {}
func (GetByIDMsg) message()    {}
func (GetByTitleMsg) message() {}
func (GetAllMsg) message()     {}
func (UpdateMsg) message()     {}
func (DeleteMsg) message()     {}
