package domain

import (
	"context"
	"errors"
)

// ErrSessionMissing is returned by a SessionRepository when no session is stored under an id.
var ErrSessionMissing = errors.New("session not found")

// SessionRepository stores session snapshots between requests.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Ping(ctx context.Context) error
}

// TransactionManager runs fn inside a database transaction carried by the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
