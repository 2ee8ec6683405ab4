package kv_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/msomdec/mini-bank/internal/domain"
	"github.com/msomdec/mini-bank/internal/repository/kv"
	"github.com/msomdec/mini-bank/internal/repository/sqlite"
)

var (
	_ domain.UserRepository        = (*kv.UserRepository)(nil)
	_ domain.TransactionRepository = (*kv.TransactionRepository)(nil)
	_ domain.SessionRepository     = (*kv.SessionRepository)(nil)
)

func newTestStore(t *testing.T) domain.KeyValueStore {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db.Store()
}

func mustGet(t *testing.T, store domain.KeyValueStore, key string) string {
	t.Helper()
	raw, err := store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get %s: %v", key, err)
	}
	return raw
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
