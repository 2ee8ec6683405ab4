package domain

import "context"

// Session identifies the currently authenticated user. There is at most one.
type Session struct {
	Username    string
	DisplayName string
}

type SessionRepository interface {
	// Get returns ErrNotFound when nobody is logged in.
	Get(ctx context.Context) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Delete(ctx context.Context) error
}
