package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/msomdec/mini-bank/internal/domain"
)

// AuthService handles login and the single current-user session slot.
type AuthService struct {
	users     domain.UserRepository
	sessions  domain.SessionRepository
	passwords domain.PasswordScheme
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, passwords domain.PasswordScheme) *AuthService {
	return &AuthService{users: users, sessions: sessions, passwords: passwords}
}

// Login verifies credentials and replaces the current session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "Enter username and password")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.passwords.Verify(user.Password, password) {
		return nil, domain.NewError(domain.ErrUnauthorized, "Incorrect password")
	}

	session := &domain.Session{Username: user.Username, DisplayName: user.DisplayName}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	slog.Info("user logged in", "username", user.Username)
	return session, nil
}

// CurrentUser returns domain.ErrNotFound when nobody is logged in.
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.Session, error) {
	return s.sessions.Get(ctx)
}

// Logout clears the session slot. Logging out twice is fine.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Delete(ctx)
}
