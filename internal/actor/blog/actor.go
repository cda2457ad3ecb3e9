package blog

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

// Actor owns the blog table.
type Actor struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func New(pool *pgxpool.Pool, log *logger.Logger) *Actor {
	return &Actor{pool: pool, log: log.WithActor("blog")}
}

func (a *Actor) Run(ctx context.Context, mailbox <-chan Message) {
	for msg := range mailbox {
		a.dispatch(ctx, msg)
		metrics.MessagesProcessed.WithLabelValues("blog").Inc()
	}
}

func (a *Actor) dispatch(ctx context.Context, msg Message) {
	switch m := msg.(type) {
	case CreateMsg:
		m.Reply.Resolve(a.create(ctx, m.Blog))
	case GetByIDMsg:
		m.Reply.Resolve(a.getByID(ctx, m.BlogID))
	case GetAllMsg:
		m.Reply.Resolve(a.getAll(ctx))
	case UpdateMsg:
		m.Reply.Resolve(a.update(ctx, m.Update))
	case DeleteMsg:
		m.Reply.Resolve(a.delete(ctx, m.BlogID))
	}
}

func (a *Actor) create(ctx context.Context, blog model.NewBlog) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now().UTC()

	_, err := a.pool.Exec(ctx, `
		INSERT INTO blog (id, title, description, content, image, image_id,
			created_by, created_by_name, created_by_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, blog.Title.String(), blog.Description.String(), blog.Content,
		blog.Image, blog.ImageID,
		blog.CreatedBy, blog.CreatedByName.String(), blog.CreatedByEmail.String(),
		now, now,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return uuid.Nil, model.Conflict("blog already exists")
		}
		a.log.Error("failed to create blog", "error", err)
		return uuid.Nil, model.Internal("failed to create blog")
	}
	return id, nil
}

func (a *Actor) getByID(ctx context.Context, blogID uuid.UUID) (model.Blog, error) {
	var blog model.Blog
	err := a.pool.QueryRow(ctx, `
		SELECT id, title, description, content, image, image_id, created_at, updated_at
		FROM blog WHERE id = $1`, blogID,
	).Scan(&blog.ID, &blog.Title, &blog.Description, &blog.Content,
		&blog.Image, &blog.ImageID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Blog{}, model.NotFound("blog not found")
		}
		a.log.Error("failed to fetch blog", "id", blogID, "error", err)
		return model.Blog{}, model.Internal("failed to fetch blog")
	}
	return blog, nil
}

func (a *Actor) getAll(ctx context.Context) ([]model.Blog, error) {
	rows, err := a.pool.Query(ctx, `
		SELECT id, title, description, content, image, image_id, created_at, updated_at
		FROM blog ORDER BY created_at DESC`)
	if err != nil {
		a.log.Error("failed to fetch blogs", "error", err)
		return nil, model.Internal("failed to fetch blogs")
	}
	defer rows.Close()

	blogs := make([]model.Blog, 0)
	for rows.Next() {
		var blog model.Blog
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Description, &blog.Content,
			&blog.Image, &blog.ImageID, &blog.CreatedAt, &blog.UpdatedAt); err != nil {
			a.log.Error("failed to scan blog row", "error", err)
			return nil, model.Internal("failed to fetch blogs")
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		a.log.Error("blog row iteration failed", "error", err)
		return nil, model.Internal("failed to fetch blogs")
	}
	return blogs, nil
}

func (a *Actor) update(ctx context.Context, update model.BlogUpdate) (bool, error) {
	tag, err := a.pool.Exec(ctx, `
		UPDATE blog SET
			description = COALESCE($1, description),
			content = COALESCE($2, content),
			image = COALESCE($3, image),
			image_id = COALESCE($4, image_id),
			edited_by = $5, edited_by_name = $6, edited_by_email = $7,
			updated_at = NOW()
		WHERE id = $8`,
		model.StringPtr(update.Description), update.Content,
		update.Image, update.ImageID,
		update.EditedBy, update.EditedByName.String(), update.EditedByEmail.String(),
		update.BlogID,
	)
	if err != nil {
		a.log.Error("blog update failed", "id", update.BlogID, "error", err)
		return false, model.Internal("update failed")
	}
	if tag.RowsAffected() == 0 {
		return false, model.NotFound("blog not found")
	}
	return true, nil
}

func (a *Actor) delete(ctx context.Context, blogID uuid.UUID) (bool, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM blog WHERE id = $1`, blogID)
	if err != nil {
		a.log.Error("blog delete failed", "id", blogID, "error", err)
		return false, model.Internal("delete failed")
	}
	if tag.RowsAffected() == 0 {
		return false, model.NotFound("blog not found")
	}
	return true, nil
}
