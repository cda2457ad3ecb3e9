package blog

import (
	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/model"
)

// Message is the closed set of requests the blog actor accepts.
type Message interface {
	message()
}

type CreateMsg struct {
	Blog  model.NewBlog
	Reply actor.Reply[uuid.UUID]
}

type GetByIDMsg struct {
	BlogID uuid.UUID
	Reply  actor.Reply[model.Blog]
}

type GetAllMsg struct {
	Reply actor.Reply[[]model.Blog]
}

type UpdateMsg struct {
	Update model.BlogUpdate
	Reply  actor.Reply[bool]
}

type DeleteMsg struct {
	BlogID uuid.UUID
	Reply  actor.Reply[bool]
}

func (CreateMsg) message()  {}
func (GetByIDMsg) message() {}
func (GetAllMsg) message()  {}
func (UpdateMsg) message()  {}
func (DeleteMsg) message()  {}
