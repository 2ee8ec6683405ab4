package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/msomdec/mini-bank/internal/domain"
)

// DirectoryService owns the user collection.
type DirectoryService struct {
	users     domain.UserRepository
	txs       domain.TransactionRepository
	passwords domain.PasswordScheme
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(users domain.UserRepository, txs domain.TransactionRepository, passwords domain.PasswordScheme) *DirectoryService {
	return &DirectoryService{users: users, txs: txs, passwords: passwords}
}

// EnsureSeed writes the demo accounts and an empty ledger when no user
// collection exists yet. It is idempotent.
func (s *DirectoryService) EnsureSeed(ctx context.Context) error {
	exists, err := s.users.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check user collection: %w", err)
	}
	if exists {
		slog.Debug("user collection present, skipping seed")
		return nil
	}

	users := make([]domain.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		password, err := s.passwords.Hash(su.Password)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.Username, err)
		}
		u := su
		u.Password = password
		users = append(users, u)
	}

	if err := s.users.Save(ctx, users); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.txs.Reset(ctx); err != nil {
		return fmt.Errorf("seed ledger: %w", err)
	}
	slog.Info("demo accounts seeded", "users", len(users))
	return nil
}

// ListUsers returns every user in insertion order.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// FindByUsername returns domain.ErrNotFound when no user matches.
func (s *DirectoryService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// Save replaces the stored collection.
func (s *DirectoryService) Save(ctx context.Context, users []domain.User) error {
	return s.users.Save(ctx, users)
}

var seedUsers = []domain.User{
	{Username: "alice", DisplayName: "Alice Khan", Password: "alice123", Balance: decimal.NewFromInt(500)},
	{Username: "bob", DisplayName: "Bob Ahmed", Password: "bob123", Balance: decimal.NewFromInt(300)},
}
