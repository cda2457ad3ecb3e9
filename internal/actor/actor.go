// Package actor provides the request/reply primitives shared by every
// domain actor: a single-use reply slot and a bounded-mailbox send.
//
// Each domain defines a closed set of message structs, a mailbox channel
// of those messages, and a Run loop that dispatches strictly one message
// at a time. Because a single goroutine owns each resource, no locks are
// taken anywhere in the actors; the mailbox is the only synchronization
// point. The one deliberate exception is the pgx pool shared by the
// database-backed actors, whose connection checkout is internally
// synchronized by pgxpool itself.
package actor

import (
	"context"

	"github.com/craftfolio/portfolio-api/internal/model"
)

// MailboxSize is the default bounded capacity of every actor mailbox.
// Senders block once an actor falls this far behind, which is the
// backpressure mechanism under load.
const MailboxSize = 32

type result[T any] struct {
	value T
	err   error
}

// Reply is a single-use reply slot carried inside a message. The sender
// keeps the receive side and calls Await; the actor calls Resolve exactly
// once after handling the message.
type Reply[T any] struct {
	ch chan result[T]
}

// NewReply creates an unresolved reply slot.
func NewReply[T any]() Reply[T] {
	// Capacity one: Resolve never blocks, even when the caller has
	// already abandoned the request.
	return Reply[T]{ch: make(chan result[T], 1)}
}

// Resolve delivers the outcome. Delivery failure (a second resolve, or a
// caller long gone) is silently ignored; it must never crash the actor.
func (r Reply[T]) Resolve(value T, err error) {
	select {
	case r.ch <- result[T]{value: value, err: err}:
	default:
	}
}

// Await blocks until the actor resolves the reply or ctx is done. A
// cancelled wait surfaces as an internal "service failed" error instead
// of hanging forever.
func (r Reply[T]) Await(ctx context.Context) (T, error) {
	select {
	case res := <-r.ch:
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		return zero, model.Internal("service failed")
	}
}

// Send places msg into an actor's bounded mailbox. It blocks while the
// mailbox is full and fails with an internal "service unavailable" error
// when ctx is done first. Mailboxes are closed only after the HTTP server
// has stopped accepting requests, so a send never races a close.
func Send[M any](ctx context.Context, mailbox chan<- M, msg M) error {
	select {
	case mailbox <- msg:
		return nil
	case <-ctx.Done():
		return model.Internal("service unavailable")
	}
}

// Call is the full request/reply round trip used by the gateway layer:
// send the envelope, then await its reply.
func Call[M any, T any](ctx context.Context, mailbox chan<- M, msg M, reply Reply[T]) (T, error) {
	if err := Send(ctx, mailbox, msg); err != nil {
		var zero T
		return zero, err
	}
	return reply.Await(ctx)
}
