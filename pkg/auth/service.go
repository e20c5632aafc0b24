package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authgate/pkg/jwt"
	"github.com/dmitrymomot/authgate/pkg/logger"
)

// dummyPasswordHash is compared against when the username does not
// resolve, so the unknown-user path costs one bcrypt comparison like
// every other failure path.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// TokenIssuer is the signing boundary consumed at login time. Satisfied
// by *jwt.Service.
type TokenIssuer interface {
	Issue(subject string, authorities []string, ttl time.Duration) (string, error)
}

// Service implements credential verification, account signup, and
// user-info resolution over a UserStorage and a TokenIssuer.
type Service struct {
	storage       UserStorage
	tokens        TokenIssuer
	tokenTTL      time.Duration
	bcryptCost    int
	lookupTimeout time.Duration
	logger        *slog.Logger

	// beforeLogin runs before any storage access; a non-nil error aborts
	// the attempt. Used to plug in a login rate limiter.
	beforeLogin func(ctx context.Context, username string) error
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithBcryptCost sets the bcrypt cost used when hashing new passwords.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithLookupTimeout bounds every storage call made by the service.
func WithLookupTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.lookupTimeout = timeout
		}
	}
}

// WithBeforeLogin sets a hook that runs before a login attempt touches
// the store.
func WithBeforeLogin(fn func(ctx context.Context, username string) error) Option {
	return func(s *Service) {
		s.beforeLogin = fn
	}
}

// NewService creates an authentication service.
func NewService(storage UserStorage, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		storage:       storage,
		tokens:        tokens,
		tokenTTL:      24 * time.Hour,
		bcryptCost:    bcrypt.DefaultCost,
		lookupTimeout: 5 * time.Second,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the submitted credentials and issues a token carrying
// the stored authority set. Every verification failure returns
// ErrInvalidCredentials; the actual cause is logged for operators but
// never surfaced to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if s.beforeLogin != nil {
		if err := s.beforeLogin(ctx, username); err != nil {
			return "", fmt.Errorf("login blocked: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	user, err := s.resolveActivated(ctx, username)
	if err != nil {
		// Spend one bcrypt comparison anyway so an unresolvable
		// username is not observably faster than a wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.InfoContext(ctx, "login failed: password mismatch",
			logger.Username(username),
			logger.Component("auth"),
		)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, user.Authorities, s.tokenTTL)
	if err != nil {
		s.logger.ErrorContext(ctx, "login failed: token issuance",
			logger.Username(username),
			logger.Error(err),
			logger.Component("auth"),
		)
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "login succeeded",
		logger.Username(username),
		logger.Component("auth"),
	)
	return token, nil
}

// Register creates a new activated account with the default ROLE_USER
// authority.
func (s *Service) Register(ctx context.Context, username, password, nickname string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Nickname:     nickname,
		PasswordHash: string(hash),
		Activated:    true,
		Authorities:  []string{AuthorityUser},
		CreatedAt:    time.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameAlreadyExists) {
			return nil, ErrUsernameAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "account created",
		logger.Username(username),
		logger.Component("auth"),
	)
	return user, nil
}

// CurrentUser resolves the account behind the authenticated identity of
// the current request. An identity whose account has meanwhile been
// deactivated resolves exactly like a missing one.
func (s *Service) CurrentUser(ctx context.Context) (*User, error) {
	subject, ok := jwt.CurrentSubject(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	user, err := s.resolveActivated(ctx, subject)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UserByUsername looks up an account by name for administrative views.
func (s *Service) UserByUsername(ctx context.Context, username string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	user, err := s.resolveActivated(ctx, username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// resolveActivated looks up a username and applies the activation gate:
// a record with Activated false fails at the same point, and the same
// way, as a record that does not exist. This is the single place account
// existence is decided so a non-activated identity can never leak
// further into the request.
func (s *Service) resolveActivated(ctx context.Context, username string) (*User, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		s.logger.InfoContext(ctx, "identity resolution failed: unknown username",
			logger.Username(username),
			logger.Component("auth"),
		)
		return nil, ErrUserNotFound
	case err != nil:
		s.logger.ErrorContext(ctx, "identity resolution failed: store error",
			logger.Username(username),
			logger.Error(err),
			logger.Component("auth"),
		)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	case !user.Activated:
		s.logger.InfoContext(ctx, "identity resolution failed: account not activated",
			logger.Username(username),
			logger.Component("auth"),
		)
		return nil, ErrUserNotFound
	}

	return user, nil
}
