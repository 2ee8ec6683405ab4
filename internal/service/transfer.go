package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/msomdec/mini-bank/internal/domain"
)

// TransferService moves money between two users and records the movement.
type TransferService struct {
	users  domain.UserRepository
	ledger *LedgerService
}

// NewTransferService creates a new TransferService.
func NewTransferService(users domain.UserRepository, ledger *LedgerService) *TransferService {
	return &TransferService{users: users, ledger: ledger}
}

// Transfer debits from and credits to by amount. Checks run in a fixed
// order and the first failure is returned before anything is written.
// Amounts are rounded to cents before validation.
func (s *TransferService) Transfer(ctx context.Context, from, to string, amount decimal.Decimal, note string) (*domain.TransactionRecord, error) {
	if from == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "Not logged in")
	}
	if to == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "Enter recipient username")
	}
	amount, ok := domain.NormalizeAmount(amount)
	if !ok || !amount.IsPositive() {
		return nil, domain.NewError(domain.ErrInvalidInput, "Enter valid amount")
	}
	if from == to {
		return nil, domain.NewError(domain.ErrInvalidInput, "Cannot transfer to yourself")
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	sender, recipient := indexOf(users, from), indexOf(users, to)
	if recipient < 0 {
		return nil, domain.NewError(domain.ErrNotFound, "Recipient not found")
	}
	// The session may still point at a deleted user.
	if sender < 0 {
		return nil, domain.NewError(domain.ErrNotFound, "Sender not found")
	}
	if users[sender].Balance.LessThan(amount) {
		return nil, domain.NewError(domain.ErrInsufficientFunds, "Insufficient balance")
	}

	record, err := s.ledger.NewRecord(from, to, amount, note)
	if err != nil {
		return nil, err
	}

	updated := slices.Clone(users)
	updated[sender].Balance = updated[sender].Balance.Sub(amount)
	updated[recipient].Balance = updated[recipient].Balance.Add(amount)
	if err := commit(ctx, s.users, s.ledger, users, updated, record); err != nil {
		return nil, err
	}

	slog.Info("transfer completed", "from", from, "to", to, "amount", amount.StringFixed(2))
	return record, nil
}

// commit saves after and then appends record, if any. When the append fails
// the collection is written back as before, so the failed operation leaves
// the store as it found it.
func commit(ctx context.Context, users domain.UserRepository, ledger *LedgerService, before, after []domain.User, record *domain.TransactionRecord) error {
	if err := users.Save(ctx, after); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	if record == nil {
		return nil
	}
	if err := ledger.Append(ctx, record); err != nil {
		if rerr := users.Save(ctx, before); rerr != nil {
			slog.Error("restore users after failed append", "error", rerr)
			return errors.Join(err, fmt.Errorf("restore users: %w", rerr))
		}
		return err
	}
	return nil
}

func indexOf(users []domain.User, username string) int {
	for i := range users {
		if users[i].Username == username {
			return i
		}
	}
	return -1
}
