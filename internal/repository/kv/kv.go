// Package kv stores the bank's collections as JSON documents inside a
// domain.KeyValueStore, one key per collection. Every write replaces the
// whole document.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/msomdec/mini-bank/internal/domain"
)

// Keys names the store keys of each collection.
type Keys struct {
	Users        string
	Transactions string
	Session      string
}

// DefaultKeys are the key names used by the browser demo this data layout
// comes from.
var DefaultKeys = Keys{
	Users:        "mb_users",
	Transactions: "mb_tx",
	Session:      "mb_current",
}

// Repository groups the collection repositories over one store.
type Repository struct {
	store domain.KeyValueStore
	keys  Keys
}

// New creates a Repository using DefaultKeys.
func New(store domain.KeyValueStore) *Repository {
	return NewWithKeys(store, DefaultKeys)
}

// NewWithKeys creates a Repository with custom key names.
func NewWithKeys(store domain.KeyValueStore, keys Keys) *Repository {
	return &Repository{store: store, keys: keys}
}

func (r *Repository) Users() *UserRepository {
	return &UserRepository{store: r.store, key: r.keys.Users}
}

func (r *Repository) Transactions() *TransactionRepository {
	return &TransactionRepository{store: r.store, key: r.keys.Transactions}
}

func (r *Repository) Sessions() *SessionRepository {
	return &SessionRepository{store: r.store, key: r.keys.Session}
}

// load decodes the JSON document at key into dst. It reports false, leaving
// dst untouched, when the key is absent.
func load(ctx context.Context, store domain.KeyValueStore, key string, dst any) (bool, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func save(ctx context.Context, store domain.KeyValueStore, key string, src any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Amounts are stored as bare JSON numbers.
func encodeAmount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func decodeAmount(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", n, err)
	}
	d, ok := domain.NormalizeAmount(d)
	if !ok {
		return decimal.Zero, fmt.Errorf("amount %q out of range", n)
	}
	return d, nil
}
