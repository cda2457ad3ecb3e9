package auth

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
	"github.com/craftfolio/portfolio-api/internal/security"
)

// Actor owns the users table. No other component reads or writes it; all
// access is serialized through the mailbox.
type Actor struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func New(pool *pgxpool.Pool, log *logger.Logger) *Actor {
	return &Actor{pool: pool, log: log.WithActor("auth")}
}

// Run drains the mailbox until it is closed, strictly one message at a
// time in arrival order.
func (a *Actor) Run(ctx context.Context, mailbox <-chan Message) {
	for msg := range mailbox {
		a.dispatch(ctx, msg)
		metrics.MessagesProcessed.WithLabelValues("auth").Inc()
	}
}

func (a *Actor) dispatch(ctx context.Context, msg Message) {
	switch m := msg.(type) {
	case RegisterMsg:
		m.Reply.Resolve(a.register(ctx, m.User))
	case LoginMsg:
		m.Reply.Resolve(a.login(ctx, m.Email, m.Password))
	case GetUserMsg:
		m.Reply.Resolve(a.getUser(ctx, m.UserID))
	case GetAllUsersMsg:
		m.Reply.Resolve(a.getAllUsers(ctx))
	case UpdateUserMsg:
		m.Reply.Resolve(a.updateUser(ctx, m.Update))
	case DeleteUserMsg:
		m.Reply.Resolve(a.deleteUser(ctx, m.UserID))
	}
}

func (a *Actor) register(ctx context.Context, user model.NewUser) (uuid.UUID, error) {
	hash, err := security.HashPassword(user.Password.String())
	if err != nil {
		a.log.Error("password hashing failed", "error", err)
		return uuid.Nil, model.Internal("password hashing failed")
	}

	id := uuid.New()
	now := time.Now().UTC()

	_, err = a.pool.Exec(ctx, `
		INSERT INTO users (id, email, password, name, phone_number, roles,
			created_by, created_by_name, created_by_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, user.Email.String(), hash, user.Name.String(),
		model.StringPtr(user.PhoneNumber), user.Role.String(),
		user.CreatedBy, user.CreatedByName.String(), user.CreatedByEmail.String(),
		now, now,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return uuid.Nil, model.Conflict("email already exists")
		}
		a.log.Error("failed to create user", "error", err)
		return uuid.Nil, model.Internal("failed to create user")
	}

	return id, nil
}

func (a *Actor) login(ctx context.Context, email model.Email, password model.Password) (uuid.UUID, error) {
	var (
		id   uuid.UUID
		hash string
	)
	err := a.pool.QueryRow(ctx,
		`SELECT id, password FROM users WHERE email = $1`, email.String(),
	).Scan(&id, &hash)
	if err != nil {
		// Unknown email and wrong password are deliberately the same
		// answer, so the endpoint cannot be used for enumeration.
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, model.Unauthorized("invalid credentials")
		}
		a.log.Error("login query failed", "error", err)
		return uuid.Nil, model.Internal("login failed")
	}

	if err := security.VerifyPassword(password.String(), hash); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (a *Actor) getUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	row := a.pool.QueryRow(ctx, `
		SELECT id, email, name, phone_number, roles, created_at, updated_at
		FROM users WHERE id = $1`, userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.NotFound("user not found")
		}
		a.log.Error("failed to fetch user", "id", userID, "error", err)
		return model.User{}, model.Internal("failed to fetch user")
	}
	return user, nil
}

func (a *Actor) getAllUsers(ctx context.Context) ([]model.User, error) {
	rows, err := a.pool.Query(ctx, `
		SELECT id, email, name, phone_number, roles, created_at, updated_at
		FROM users ORDER BY created_at DESC`)
	if err != nil {
		a.log.Error("failed to fetch users", "error", err)
		return nil, model.Internal("failed to fetch users")
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			a.log.Error("failed to scan user row", "error", err)
			return nil, model.Internal("failed to fetch users")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		a.log.Error("user row iteration failed", "error", err)
		return nil, model.Internal("failed to fetch users")
	}
	return users, nil
}

func (a *Actor) updateUser(ctx context.Context, update model.UserUpdate) (bool, error) {
	tag, err := a.pool.Exec(ctx, `
		UPDATE users SET
			name = COALESCE($1, name),
			phone_number = COALESCE($2, phone_number),
			roles = COALESCE($3, roles),
			edited_by = $4, edited_by_name = $5, edited_by_email = $6,
			updated_at = NOW()
		WHERE id = $7`,
		model.StringPtr(update.Name), model.StringPtr(update.PhoneNumber),
		model.StringPtr(update.Role),
		update.EditedBy, update.EditedByName.String(), update.EditedByEmail.String(),
		update.UserID,
	)
	if err != nil {
		a.log.Error("user update failed", "id", update.UserID, "error", err)
		return false, model.Internal("update failed")
	}
	return tag.RowsAffected() > 0, nil
}

func (a *Actor) deleteUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		a.log.Error("user delete failed", "id", userID, "error", err)
		return false, model.Internal("delete failed")
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		user  model.User
		phone *string
		role  string
	)
	err := row.Scan(&user.ID, &user.Email, &user.Name, &phone, &role,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if phone != nil {
		p := model.PhoneNumber(*phone)
		user.PhoneNumber = &p
	}
	user.Role = model.Role(role)
	return user, nil
}
