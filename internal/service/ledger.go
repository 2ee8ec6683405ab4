package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/msomdec/mini-bank/internal/domain"
)

// LedgerService reads and appends to the transaction history.
type LedgerService struct {
	txs domain.TransactionRepository
	now func() time.Time
}

// NewLedgerService creates a new LedgerService. A nil clock means time.Now.
func NewLedgerService(txs domain.TransactionRepository, now func() time.Time) *LedgerService {
	if now == nil {
		now = time.Now
	}
	return &LedgerService{txs: txs, now: now}
}

// AllTransactions returns the ledger, newest first.
func (s *LedgerService) AllTransactions(ctx context.Context) ([]domain.TransactionRecord, error) {
	return s.txs.List(ctx)
}

// Append puts a record at the front of the ledger. The record is stored as
// given.
func (s *LedgerService) Append(ctx context.Context, record *domain.TransactionRecord) error {
	if err := s.txs.Prepend(ctx, record); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

// NewRecord builds a validated record stamped with the service clock.
func (s *LedgerService) NewRecord(from, to string, amount decimal.Decimal, note string) (*domain.TransactionRecord, error) {
	return domain.NewTransactionRecord(from, to, amount, note, s.now())
}

// TransactionsFor returns the records username took part in, in ledger
// order, classified from their side.
func (s *LedgerService) TransactionsFor(ctx context.Context, username string) ([]domain.TransactionView, error) {
	txs, err := s.txs.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]domain.TransactionView, 0)
	for _, tx := range txs {
		if v, ok := tx.ViewFor(username); ok {
			views = append(views, v)
		}
	}
	return views, nil
}
