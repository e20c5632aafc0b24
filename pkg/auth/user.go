package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Default authorities granted to accounts.
const (
	AuthorityUser  = "ROLE_USER"
	AuthorityAdmin = "ROLE_ADMIN"
)

// User is a stored account record. PasswordHash is a bcrypt hash and must
// never leave the service layer in responses.
type User struct {
	ID           uuid.UUID
	Username     string
	Nickname     string
	PasswordHash string
	Activated    bool
	Authorities  []string
	CreatedAt    time.Time
}

// UserStorage is the lookup-by-username boundary to the user store. It is
// consumed by login, signup, and user-info resolution only; the request
// authentication filter never touches it.
type UserStorage interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
}
