// Package api is the HTTP gateway. Handlers validate input, translate it
// into actor messages and await the reply; no business logic lives here.
package api

import (
	"github.com/craftfolio/portfolio-api/internal/actor/auth"
	"github.com/craftfolio/portfolio-api/internal/actor/blog"
	"github.com/craftfolio/portfolio-api/internal/actor/image"
	"github.com/craftfolio/portfolio-api/internal/actor/project"
	"github.com/craftfolio/portfolio-api/internal/actor/session"
	"github.com/craftfolio/portfolio-api/internal/actor/stack"
	"github.com/craftfolio/portfolio-api/internal/logger"
	"github.com/craftfolio/portfolio-api/internal/token"
)

// Actors bundles the send side of every domain mailbox.
type Actors struct {
	Auth    chan<- auth.Message
	Session chan<- session.Message
	Stack   chan<- stack.Message
	Blog    chan<- blog.Message
	Project chan<- project.Message
	Image   chan<- image.Message
}

// API holds everything the handlers need.
type API struct {
	actors Actors
	jwt    *token.JWT
	log    *logger.Logger
}

func New(actors Actors, jwt *token.JWT, log *logger.Logger) *API {
	return &API{actors: actors, jwt: jwt, log: log}
}
