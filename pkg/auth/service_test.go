package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authgate/pkg/auth"
	"github.com/dmitrymomot/authgate/pkg/jwt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func activeUser(t *testing.T, username, password string, authorities ...string) *auth.User {
	t.Helper()
	return &auth.User{
		Username:     username,
		Nickname:     username,
		PasswordHash: hashPassword(t, password),
		Activated:    true,
		Authorities:  authorities,
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials issue a token with the stored authorities", func(t *testing.T) {
		storage := new(MockUserStorage)
		issuer := new(MockTokenIssuer)
		storage.On("GetUserByUsername", mock.Anything, "alice").
			Return(activeUser(t, "alice", "secret123", auth.AuthorityUser), nil)
		issuer.On("Issue", "alice", []string{auth.AuthorityUser}, time.Hour).
			Return("signed-token", nil)

		svc := auth.NewService(storage, issuer, auth.WithTokenTTL(time.Hour))
		token, err := svc.Login(context.Background(), "alice", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		issuer.AssertExpectations(t)
	})

	t.Run("unknown username fails uniformly", func(t *testing.T) {
		storage := new(MockUserStorage)
		storage.On("GetUserByUsername", mock.Anything, "ghost").
			Return(nil, auth.ErrUserNotFound)

		svc := auth.NewService(storage, new(MockTokenIssuer))
		token, err := svc.Login(context.Background(), "ghost", "whatever")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("non-activated account fails identically to unknown username", func(t *testing.T) {
		storage := new(MockUserStorage)
		inactive := activeUser(t, "dormant", "secret123", auth.AuthorityUser)
		inactive.Activated = false
		storage.On("GetUserByUsername", mock.Anything, "dormant").Return(inactive, nil)
		storage.On("GetUserByUsername", mock.Anything, "ghost").
			Return(nil, auth.ErrUserNotFound)

		svc := auth.NewService(storage, new(MockTokenIssuer))

		_, errInactive := svc.Login(context.Background(), "dormant", "secret123")
		_, errUnknown := svc.Login(context.Background(), "ghost", "secret123")
		require.ErrorIs(t, errInactive, auth.ErrInvalidCredentials)
		assert.Equal(t, errUnknown, errInactive)
	})

	t.Run("wrong password fails uniformly", func(t *testing.T) {
		storage := new(MockUserStorage)
		storage.On("GetUserByUsername", mock.Anything, "alice").
			Return(activeUser(t, "alice", "secret123", auth.AuthorityUser), nil)

		svc := auth.NewService(storage, new(MockTokenIssuer))
		_, err := svc.Login(context.Background(), "alice", "wrong")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("store failure surfaces as login failure", func(t *testing.T) {
		storage := new(MockUserStorage)
		storage.On("GetUserByUsername", mock.Anything, "alice").
			Return(nil, errors.New("connection refused"))

		svc := auth.NewService(storage, new(MockTokenIssuer))
		_, err := svc.Login(context.Background(), "alice", "secret123")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("before-login hook blocks the attempt", func(t *testing.T) {
		storage := new(MockUserStorage)
		blocked := errors.New("too many attempts")

		svc := auth.NewService(storage, new(MockTokenIssuer),
			auth.WithBeforeLogin(func(ctx context.Context, username string) error {
				return blocked
			}),
		)
		_, err := svc.Login(context.Background(), "alice", "secret123")
		require.ErrorIs(t, err, blocked)
		storage.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything)
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates an activated user with the default authority", func(t *testing.T) {
		storage := new(MockUserStorage)
		storage.On("GetUserByUsername", mock.Anything, "alice").
			Return(nil, auth.ErrUserNotFound)
		storage.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *auth.User) bool {
			return u.Username == "alice" &&
				u.Activated &&
				len(u.Authorities) == 1 &&
				u.Authorities[0] == auth.AuthorityUser
		})).Return(nil)

		svc := auth.NewService(storage, new(MockTokenIssuer), auth.WithBcryptCost(bcrypt.MinCost))
		user, err := svc.Register(context.Background(), "alice", "secret123", "Alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Alice", user.Nickname)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
		storage.AssertExpectations(t)
	})

	t.Run("existing username is rejected", func(t *testing.T) {
		storage := new(MockUserStorage)
		storage.On("GetUserByUsername", mock.Anything, "alice").
			Return(activeUser(t, "alice", "secret123", auth.AuthorityUser), nil)

		svc := auth.NewService(storage, new(MockTokenIssuer))
		_, err := svc.Register(context.Background(), "alice", "secret123", "Alice")
		require.ErrorIs(t, err, auth.ErrUsernameAlreadyExists)
	})

	t.Run("concurrent duplicate insert is reported as existing username", func(t *testing.T) {
		storage := new(MockUserStorage)
		storage.On("GetUserByUsername", mock.Anything, "alice").
			Return(nil, auth.ErrUserNotFound)
		storage.On("CreateUser", mock.Anything, mock.Anything).
			Return(auth.ErrUsernameAlreadyExists)

		svc := auth.NewService(storage, new(MockTokenIssuer), auth.WithBcryptCost(bcrypt.MinCost))
		_, err := svc.Register(context.Background(), "alice", "secret123", "Alice")
		require.ErrorIs(t, err, auth.ErrUsernameAlreadyExists)
	})
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	t.Run("resolves the identity attached to the context", func(t *testing.T) {
		storage := new(MockUserStorage)
		storage.On("GetUserByUsername", mock.Anything, "alice").
			Return(activeUser(t, "alice", "secret123", auth.AuthorityUser), nil)

		svc := auth.NewService(storage, new(MockTokenIssuer))
		ctx := jwt.SetIdentity(context.Background(), jwt.Identity{
			Subject:     "alice",
			Authorities: []string{auth.AuthorityUser},
		})

		user, err := svc.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("unauthenticated context", func(t *testing.T) {
		svc := auth.NewService(new(MockUserStorage), new(MockTokenIssuer))
		_, err := svc.CurrentUser(context.Background())
		require.ErrorIs(t, err, auth.ErrUnauthorized)
	})

	t.Run("deactivated account resolves like a missing one", func(t *testing.T) {
		storage := new(MockUserStorage)
		inactive := activeUser(t, "alice", "secret123", auth.AuthorityUser)
		inactive.Activated = false
		storage.On("GetUserByUsername", mock.Anything, "alice").Return(inactive, nil)

		svc := auth.NewService(storage, new(MockTokenIssuer))
		ctx := jwt.SetIdentity(context.Background(), jwt.Identity{Subject: "alice"})

		_, err := svc.CurrentUser(ctx)
		require.ErrorIs(t, err, auth.ErrUserNotFound)
	})
}

func TestUserByUsername(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		storage := new(MockUserStorage)
		storage.On("GetUserByUsername", mock.Anything, "bob").
			Return(activeUser(t, "bob", "secret123", auth.AuthorityUser), nil)

		svc := auth.NewService(storage, new(MockTokenIssuer))
		user, err := svc.UserByUsername(context.Background(), "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		storage := new(MockUserStorage)
		storage.On("GetUserByUsername", mock.Anything, "ghost").
			Return(nil, auth.ErrUserNotFound)

		svc := auth.NewService(storage, new(MockTokenIssuer))
		_, err := svc.UserByUsername(context.Background(), "ghost")
		require.ErrorIs(t, err, auth.ErrUserNotFound)
	})
}
