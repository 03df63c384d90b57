package auth

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolSession treats a successful ping of the database pool as an
// established session.
type PoolSession struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	up      atomic.Bool
}

// NewPoolSession creates a session gate over pool. A nil pool never has a
// session.
func NewPoolSession(pool *pgxpool.Pool, timeout time.Duration) *PoolSession {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &PoolSession{pool: pool, timeout: timeout}
}

func (s *PoolSession) HasSession(ctx context.Context) bool {
	if s.pool == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ok := s.pool.Ping(pingCtx) == nil
	s.up.Store(ok)
	return ok
}

// LastKnown returns the result of the most recent check without pinging.
func (s *PoolSession) LastKnown() bool {
	return s.up.Load()
}

// StaticSession always answers with its own value.
type StaticSession bool

func (s StaticSession) HasSession(context.Context) bool {
	return bool(s)
}
