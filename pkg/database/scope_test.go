package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScope_WithoutPool(t *testing.T) {
	req := require.New(t)
	scope := NewScope(nil)
	ctx := WithScope(context.Background(), scope)

	_, err := From(ctx, nil)
	req.ErrorIs(err, ErrNotInitialized)
	req.False(scope.Acquired())

	// releasing an unused scope is a no-op
	scope.Release()
	req.False(scope.Acquired())
}

func TestFrom_NoScopeNoPool(t *testing.T) {
	req := require.New(t)
	_, err := From(context.Background(), nil)
	req.ErrorIs(err, ErrNotInitialized)
}

func TestScopeFromContext(t *testing.T) {
	req := require.New(t)

	_, ok := ScopeFromContext(context.Background())
	req.False(ok)

	scope := NewScope(nil)
	got, ok := ScopeFromContext(WithScope(context.Background(), scope))
	req.True(ok)
	req.Same(scope, got)
}

func TestHealthCheck_NilPool(t *testing.T) {
	require.ErrorIs(t, HealthCheck(context.Background(), nil), ErrNotInitialized)
}
