package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/msomdec/mini-bank/internal/domain"
)

const (
	NoteInitialBalance = "Initial balance"
	NoteAdminTopUp     = "Admin top-up"
	NoteAdminDeduction = "Admin deduction"
)

// NewUserInput carries the fields of an account created by an admin.
type NewUserInput struct {
	DisplayName string
	Username    string
	Password    string
	Balance     decimal.Decimal
}

// AdminService performs privileged mutations. Every balance change it makes
// is mirrored by a ledger record against the bank.
type AdminService struct {
	users     domain.UserRepository
	ledger    *LedgerService
	passwords domain.PasswordScheme
}

// NewAdminService creates a new AdminService.
func NewAdminService(users domain.UserRepository, ledger *LedgerService, passwords domain.PasswordScheme) *AdminService {
	return &AdminService{users: users, ledger: ledger, passwords: passwords}
}

// AddUser appends a new user. A positive opening balance is recorded as a
// credit from the bank. A taken username is reported before any problem with
// the other fields.
func (s *AdminService) AddUser(ctx context.Context, in NewUserInput) (*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if in.Username != "" && indexOf(users, in.Username) >= 0 {
		return nil, domain.NewError(domain.ErrConflict, "Username exists")
	}

	user, err := domain.NewUser(in.Username, in.DisplayName, in.Password, in.Balance)
	if err != nil {
		return nil, err
	}

	var record *domain.TransactionRecord
	if user.Balance.IsPositive() {
		record, err = s.ledger.NewRecord(domain.BankUsername, user.Username, user.Balance, NoteInitialBalance)
		if err != nil {
			return nil, err
		}
	}

	user.Password, err = s.passwords.Hash(user.Password)
	if err != nil {
		return nil, err
	}

	if err := commit(ctx, s.users, s.ledger, users, append(slices.Clone(users), *user), record); err != nil {
		return nil, err
	}

	slog.Info("user added", "username", user.Username, "balance", user.Balance.StringFixed(2))
	return user, nil
}

// SetBalance overwrites a user's balance and records the difference as a
// top-up or deduction. Setting the current balance records nothing.
func (s *AdminService) SetBalance(ctx context.Context, username string, balance decimal.Decimal) error {
	balance, ok := domain.NormalizeAmount(balance)
	if !ok || balance.IsNegative() {
		return domain.NewError(domain.ErrInvalidInput, "Enter valid amount")
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	i := indexOf(users, username)
	if i < 0 {
		return domain.NewError(domain.ErrNotFound, "User not found")
	}

	old := users[i].Balance
	var record *domain.TransactionRecord
	switch old.Cmp(balance) {
	case -1:
		record, err = s.ledger.NewRecord(domain.BankUsername, username, balance.Sub(old), NoteAdminTopUp)
	case 1:
		record, err = s.ledger.NewRecord(username, domain.BankUsername, old.Sub(balance), NoteAdminDeduction)
	}
	if err != nil {
		return err
	}

	updated := slices.Clone(users)
	updated[i].Balance = balance
	if err := commit(ctx, s.users, s.ledger, users, updated, record); err != nil {
		return err
	}
	if record == nil {
		slog.Debug("balance unchanged", "username", username)
		return nil
	}

	slog.Info("balance set", "username", username, "old", old.StringFixed(2), "new", balance.StringFixed(2))
	return nil
}

// DeleteUser removes the user if present. Their ledger history is kept, so
// old records may name a username that no longer resolves.
func (s *AdminService) DeleteUser(ctx context.Context, username string) error {
	users, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	kept := slices.DeleteFunc(users, func(u domain.User) bool { return u.Username == username })
	if err := s.users.Save(ctx, kept); err != nil {
		return fmt.Errorf("save users: %w", err)
	}

	slog.Info("user deleted", "username", username)
	return nil
}
