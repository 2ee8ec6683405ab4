package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/msomdec/mini-bank/internal/domain"
)

// UserRepository implements domain.UserRepository.
type UserRepository struct {
	store domain.KeyValueStore
	key   string
}

type userRecord struct {
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Balance  json.Number `json:"balance"`
}

func (r *UserRepository) Exists(ctx context.Context) (bool, error) {
	_, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", r.key, err)
	}
	return true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var records []userRecord
	if _, err := load(ctx, r.store, r.key, &records); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		balance, err := decodeAmount(rec.Balance)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", rec.Username, err)
		}
		users = append(users, domain.User{
			Username:    rec.Username,
			DisplayName: rec.Name,
			Password:    rec.Password,
			Balance:     balance,
		})
	}
	return users, nil
}

// GetByUsername returns the first user with an exactly matching username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) Save(ctx context.Context, users []domain.User) error {
	records := make([]userRecord, 0, len(users))
	for _, u := range users {
		records = append(records, userRecord{
			Username: u.Username,
			Name:     u.DisplayName,
			Password: u.Password,
			Balance:  encodeAmount(u.Balance),
		})
	}
	return save(ctx, r.store, r.key, records)
}
