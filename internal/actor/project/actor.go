package project

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

// Actor owns the project table. Stack existence is checked by the caller
// against the stack actor before a create or update reaches this mailbox.
type Actor struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func New(pool *pgxpool.Pool, log *logger.Logger) *Actor {
	return &Actor{pool: pool, log: log.WithActor("project")}
}

func (a *Actor) Run(ctx context.Context, mailbox <-chan Message) {
	for msg := range mailbox {
		a.dispatch(ctx, msg)
		metrics.MessagesProcessed.WithLabelValues("project").Inc()
	}
}

func (a *Actor) dispatch(ctx context.Context, msg Message) {
	switch m := msg.(type) {
	case CreateMsg:
		m.Reply.Resolve(a.create(ctx, m.Project))
	case GetByIDMsg:
		m.Reply.Resolve(a.getByID(ctx, m.ProjectID))
	case GetAllMsg:
		m.Reply.Resolve(a.getAll(ctx))
	case UpdateMsg:
		m.Reply.Resolve(a.update(ctx, m.Update))
	case DeleteMsg:
		m.Reply.Resolve(a.delete(ctx, m.ProjectID))
	}
}

func (a *Actor) create(ctx context.Context, project model.NewProject) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now().UTC()

	_, err := a.pool.Exec(ctx, `
		INSERT INTO project (id, title, description, stack, content, image, image_id,
			created_by, created_by_name, created_by_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		id, project.Title.String(), project.Description.String(), project.Stack.String(),
		project.Content, project.Image, project.ImageID,
		project.CreatedBy, project.CreatedByName.String(), project.CreatedByEmail.String(),
		now, now,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return uuid.Nil, model.Conflict("project already exists")
		}
		a.log.Error("failed to create project", "error", err)
		return uuid.Nil, model.Internal("failed to create project")
	}
	return id, nil
}

func (a *Actor) getByID(ctx context.Context, projectID uuid.UUID) (model.Project, error) {
	var project model.Project
	err := a.pool.QueryRow(ctx, `
		SELECT id, title, description, stack, content, image, image_id, created_at, updated_at
		FROM project WHERE id = $1`, projectID,
	).Scan(&project.ID, &project.Title, &project.Description, &project.Stack,
		&project.Content, &project.Image, &project.ImageID,
		&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Project{}, model.NotFound("project not found")
		}
		a.log.Error("failed to fetch project", "id", projectID, "error", err)
		return model.Project{}, model.Internal("failed to fetch project")
	}
	return project, nil
}

func (a *Actor) getAll(ctx context.Context) ([]model.Project, error) {
	rows, err := a.pool.Query(ctx, `
		SELECT id, title, description, stack, content, image, image_id, created_at, updated_at
		FROM project ORDER BY created_at DESC`)
	if err != nil {
		a.log.Error("failed to fetch projects", "error", err)
		return nil, model.Internal("failed to fetch projects")
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		var project model.Project
		if err := rows.Scan(&project.ID, &project.Title, &project.Description, &project.Stack,
			&project.Content, &project.Image, &project.ImageID,
			&project.CreatedAt, &project.UpdatedAt); err != nil {
			a.log.Error("failed to scan project row", "error", err)
			return nil, model.Internal("failed to fetch projects")
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		a.log.Error("project row iteration failed", "error", err)
		return nil, model.Internal("failed to fetch projects")
	}
	return projects, nil
}

func (a *Actor) update(ctx context.Context, update model.ProjectUpdate) (bool, error) {
	tag, err := a.pool.Exec(ctx, `
		UPDATE project SET
			description = COALESCE($1, description),
			stack = COALESCE($2, stack),
			content = COALESCE($3, content),
			image = COALESCE($4, image),
			image_id = COALESCE($5, image_id),
			edited_by = $6, edited_by_name = $7, edited_by_email = $8,
			updated_at = NOW()
		WHERE id = $9`,
		model.StringPtr(update.Description), model.StringPtr(update.Stack),
		update.Content, update.Image, update.ImageID,
		update.EditedBy, update.EditedByName.String(), update.EditedByEmail.String(),
		update.ProjectID,
	)
	if err != nil {
		a.log.Error("project update failed", "id", update.ProjectID, "error", err)
		return false, model.Internal("update failed")
	}
	if tag.RowsAffected() == 0 {
		return false, model.NotFound("project not found")
	}
	return true, nil
}

func (a *Actor) delete(ctx context.Context, projectID uuid.UUID) (bool, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM project WHERE id = $1`, projectID)
	if err != nil {
		a.log.Error("project delete failed", "id", projectID, "error", err)
		return false, model.Internal("delete failed")
	}
	if tag.RowsAffected() == 0 {
		return false, model.NotFound("project not found")
	}
	return true, nil
}
