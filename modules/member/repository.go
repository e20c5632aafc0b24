package member

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authgate/pkg/auth"
	"github.com/dmitrymomot/authgate/pkg/pg"
)

// Repository stores accounts in PostgreSQL. It implements
// auth.UserStorage; pgx errors are translated into auth domain errors
// at this boundary so callers never see driver details.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetUserByUsername loads the account and its granted authorities.
// Returns auth.ErrUserNotFound when no such account exists.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	const query = `
		SELECT id, username, nickname, password_hash, activated, created_at
		FROM member
		WHERE username = $1`

	var u auth.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Nickname, &u.PasswordHash, &u.Activated, &u.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("query member %q: %w", username, err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT authority FROM member_authority WHERE member_id = $1 ORDER BY authority`, u.ID)
	if err != nil {
		return nil, fmt.Errorf("query authorities for %q: %w", username, err)
	}
	u.Authorities, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect authorities for %q: %w", username, err)
	}

	return &u, nil
}

// CreateUser inserts the account and its authorities in one
// transaction. Returns auth.ErrUsernameAlreadyExists when the username
// is taken.
func (r *Repository) CreateUser(ctx context.Context, user *auth.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create member: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO member (id, username, nickname, password_hash, activated, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.Nickname, user.PasswordHash, user.Activated, user.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return auth.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("insert member %q: %w", user.Username, err)
	}

	for _, authority := range user.Authorities {
		if _, err := tx.Exec(ctx,
			`INSERT INTO member_authority (member_id, authority) VALUES ($1, $2)`,
			user.ID, authority,
		); err != nil {
			return fmt.Errorf("insert authority %q for %q: %w", authority, user.Username, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create member: %w", err)
	}
	return nil
}

var _ auth.UserStorage = (*Repository)(nil)
