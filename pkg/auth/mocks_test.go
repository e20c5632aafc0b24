package auth_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/authgate/pkg/auth"
)

// MockUserStorage is a mock implementation of UserStorage.
type MockUserStorage struct {
	mock.Mock
}

func (m *MockUserStorage) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUserStorage) CreateUser(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockTokenIssuer is a mock implementation of TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(subject string, authorities []string, ttl time.Duration) (string, error) {
	args := m.Called(subject, authorities, ttl)
	return args.String(0), args.Error(1)
}
