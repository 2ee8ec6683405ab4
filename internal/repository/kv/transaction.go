package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/msomdec/mini-bank/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository.
type TransactionRepository struct {
	store domain.KeyValueStore
	key   string
}

type transactionRecord struct {
	From   string      `json:"from"`
	To     string      `json:"to"`
	Amount json.Number `json:"amount"`
	Note   string      `json:"note"`
	Date   string      `json:"date"`
}

func (r *TransactionRepository) List(ctx context.Context) ([]domain.TransactionRecord, error) {
	var records []transactionRecord
	if _, err := load(ctx, r.store, r.key, &records); err != nil {
		return nil, err
	}

	txs := make([]domain.TransactionRecord, 0, len(records))
	for i, rec := range records {
		amount, err := decodeAmount(rec.Amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, domain.TransactionRecord{
			From:   rec.From,
			To:     rec.To,
			Amount: amount,
			Note:   rec.Note,
			Date:   rec.Date,
		})
	}
	return txs, nil
}

func (r *TransactionRepository) Prepend(ctx context.Context, record *domain.TransactionRecord) error {
	txs, err := r.List(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append([]domain.TransactionRecord{*record}, txs...))
}

func (r *TransactionRepository) Reset(ctx context.Context) error {
	return r.save(ctx, nil)
}

func (r *TransactionRepository) save(ctx context.Context, txs []domain.TransactionRecord) error {
	records := make([]transactionRecord, 0, len(txs))
	for _, tx := range txs {
		records = append(records, transactionRecord{
			From:   tx.From,
			To:     tx.To,
			Amount: encodeAmount(tx.Amount),
			Note:   tx.Note,
			Date:   tx.Date,
		})
	}
	return save(ctx, r.store, r.key, records)
}
