package stack

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/craftfolio/portfolio-api/internal/logger"
	"github.com/craftfolio/portfolio-api/internal/metrics"
	"github.com/craftfolio/portfolio-api/internal/model"
	"github.com/craftfolio/portfolio-api/internal/repository/postgres"
)

// Actor owns the stack taxonomy table.
type Actor struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func New(pool *pgxpool.Pool, log *logger.Logger) *Actor {
	return &Actor{pool: pool, log: log.WithActor("stack")}
}

func (a *Actor) Run(ctx context.Context, mailbox <-chan Message) {
	for msg := range mailbox {
		a.dispatch(ctx, msg)
		metrics.MessagesProcessed.WithLabelValues("stack").Inc()
	}
}

func (a *Actor) dispatch(ctx context.Context, msg Message) {
	switch m := msg.(type) {
	case CreateMsg:
		m.Reply.Resolve(a.create(ctx, m.Stack))
	case GetByIDMsg:
		m.Reply.Resolve(a.getByID(ctx, m.StackID))
	case GetByTitleMsg:
		m.Reply.Resolve(a.getByTitle(ctx, m.Title))
	case GetAllMsg:
		m.Reply.Resolve(a.getAll(ctx))
	case UpdateMsg:
		m.Reply.Resolve(a.update(ctx, m.Update))
	case DeleteMsg:
		m.Reply.Resolve(a.delete(ctx, m.StackID))
	}
}

func (a *Actor) create(ctx context.Context, stack model.NewStack) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now().UTC()

	_, err := a.pool.Exec(ctx, `
		INSERT INTO stack (id, title, slug, created_by, created_by_name,
			created_by_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, stack.Title.String(), stack.Slug.String(),
		stack.CreatedBy, stack.CreatedByName.String(), stack.CreatedByEmail.String(),
		now, now,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return uuid.Nil, model.Conflict("stack already exists")
		}
		a.log.Error("failed to create stack", "error", err)
		return uuid.Nil, model.Internal("failed to create stack")
	}
	return id, nil
}

func (a *Actor) getByID(ctx context.Context, stackID uuid.UUID) (model.Stack, error) {
	var stack model.Stack
	err := a.pool.QueryRow(ctx, `
		SELECT id, title, slug, created_at, updated_at
		FROM stack WHERE id = $1`, stackID,
	).Scan(&stack.ID, &stack.Title, &stack.Slug, &stack.CreatedAt, &stack.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Stack{}, model.NotFound("stack not found")
		}
		a.log.Error("failed to fetch stack", "id", stackID, "error", err)
		return model.Stack{}, model.Internal("failed to fetch stack")
	}
	return stack, nil
}

func (a *Actor) getByTitle(ctx context.Context, title string) (model.Stack, error) {
	var stack model.Stack
	err := a.pool.QueryRow(ctx, `
		SELECT id, title, slug, created_at, updated_at
		FROM stack WHERE title = $1`, title,
	).Scan(&stack.ID, &stack.Title, &stack.Slug, &stack.CreatedAt, &stack.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Stack{}, model.NotFound("stack not found")
		}
		a.log.Error("failed to fetch stack", "title", title, "error", err)
		return model.Stack{}, model.Internal("failed to fetch stack")
	}
	return stack, nil
}

func (a *Actor) getAll(ctx context.Context) ([]model.Stack, error) {
	rows, err := a.pool.Query(ctx, `
		SELECT id, title, slug, created_at, updated_at
		FROM stack ORDER BY created_at DESC`)
	if err != nil {
		a.log.Error("failed to fetch stacks", "error", err)
		return nil, model.Internal("failed to fetch stacks")
	}
	defer rows.Close()

	stacks := make([]model.Stack, 0)
	for rows.Next() {
		var stack model.Stack
		if err := rows.Scan(&stack.ID, &stack.Title, &stack.Slug, &stack.CreatedAt, &stack.UpdatedAt); err != nil {
			a.log.Error("failed to scan stack row", "error", err)
			return nil, model.Internal("failed to fetch stacks")
		}
		stacks = append(stacks, stack)
	}
	if err := rows.Err(); err != nil {
		a.log.Error("stack row iteration failed", "error", err)
		return nil, model.Internal("failed to fetch stacks")
	}
	return stacks, nil
}

func (a *Actor) update(ctx context.Context, update model.StackUpdate) (bool, error) {
	tag, err := a.pool.Exec(ctx, `
		UPDATE stack SET
			slug = COALESCE($1, slug),
			edited_by = $2, edited_by_name = $3, edited_by_email = $4,
			updated_at = NOW()
		WHERE id = $5`,
		model.StringPtr(update.Slug),
		update.EditedBy, update.EditedByName.String(), update.EditedByEmail.String(),
		update.StackID,
	)
	if err != nil {
		a.log.Error("stack update failed", "id", update.StackID, "error", err)
		return false, model.Internal("update failed")
	}
	if tag.RowsAffected() == 0 {
		return false, model.NotFound("stack not found")
	}
	return true, nil
}

func (a *Actor) delete(ctx context.Context, stackID uuid.UUID) (bool, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM stack WHERE id = $1`, stackID)
	if err != nil {
		a.log.Error("stack delete failed", "id", stackID, "error", err)
		return false, model.Internal("delete failed")
	}
	if tag.RowsAffected() == 0 {
		return false, model.NotFound("stack not found")
	}
	return true, nil
}
