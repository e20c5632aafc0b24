package jwt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/jwt"
)

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	t.Run("set and get identity", func(t *testing.T) {
		identity := jwt.Identity{Subject: "alice", Authorities: []string{"ROLE_USER"}}
		ctx := jwt.SetIdentity(context.Background(), identity)

		got, ok := jwt.CurrentIdentity(ctx)
		require.True(t, ok)
		assert.Equal(t, identity, got)
	})

	t.Run("empty context is unauthenticated", func(t *testing.T) {
		got, ok := jwt.CurrentIdentity(context.Background())
		require.False(t, ok)
		assert.Empty(t, got.Subject)
	})

	t.Run("current subject", func(t *testing.T) {
		ctx := jwt.SetIdentity(context.Background(), jwt.Identity{Subject: "alice"})

		subject, ok := jwt.CurrentSubject(ctx)
		require.True(t, ok)
		assert.Equal(t, "alice", subject)
	})

	t.Run("current subject on empty context", func(t *testing.T) {
		subject, ok := jwt.CurrentSubject(context.Background())
		require.False(t, ok)
		assert.Empty(t, subject)
	})
}
