package kv

import (
	"context"
	"fmt"

	"github.com/msomdec/mini-bank/internal/domain"
)

// SessionRepository implements domain.SessionRepository on a single key.
type SessionRepository struct {
	store domain.KeyValueStore
	key   string
}

type sessionRecord struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (r *SessionRepository) Get(ctx context.Context) (*domain.Session, error) {
	var rec *sessionRecord
	found, err := load(ctx, r.store, r.key, &rec)
	if err != nil {
		return nil, err
	}
	// A stored JSON null also means logged out.
	if !found || rec == nil {
		return nil, domain.ErrNotFound
	}
	return &domain.Session{Username: rec.Username, DisplayName: rec.Name}, nil
}

func (r *SessionRepository) Put(ctx context.Context, session *domain.Session) error {
	return save(ctx, r.store, r.key, sessionRecord{Username: session.Username, Name: session.DisplayName})
}

func (r *SessionRepository) Delete(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("delete %s: %w", r.key, err)
	}
	return nil
}
