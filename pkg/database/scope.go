package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Scope checks out at most one pooled connection for the lifetime of a request.
// The connection is acquired on first use and handed back by Release.
// A Scope is not safe for concurrent use.
type Scope struct {
	pool *pgxpool.Pool
	conn *pgxpool.Conn
}

func NewScope(pool *pgxpool.Pool) *Scope {
	return &Scope{pool: pool}
}

func (s *Scope) Conn(ctx context.Context) (*pgxpool.Conn, error) {
	if s.conn != nil {
		return s.conn, nil
	}
	if s.pool == nil {
		return nil, ErrNotInitialized
	}
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	s.conn = conn
	return conn, nil
}

// Acquired reports whether the scope currently holds a connection.
func (s *Scope) Acquired() bool {
	return s.conn != nil
}

func (s *Scope) Release() {
	if s.conn == nil {
		return
	}
	s.conn.Release()
	s.conn = nil
}

type scopeKey struct{}

func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok && s != nil
}
