package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/msomdec/mini-bank/internal/domain"
	"github.com/msomdec/mini-bank/internal/repository/kv"
	"github.com/msomdec/mini-bank/internal/repository/sqlite"
	"github.com/msomdec/mini-bank/internal/service"
)

var testNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

type testEnv struct {
	store     domain.KeyValueStore
	repo      *kv.Repository
	directory *service.DirectoryService
	auth      *service.AuthService
	ledger    *service.LedgerService
	transfers *service.TransferService
	admin     *service.AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithPasswords(t, service.PlainTextPasswords{})
}

func newTestEnvWithPasswords(t *testing.T, passwords domain.PasswordScheme) *testEnv {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return newTestEnvOver(db.Store(), passwords)
}

func newTestEnvOver(store domain.KeyValueStore, passwords domain.PasswordScheme) *testEnv {
	repo := kv.New(store)
	ledger := service.NewLedgerService(repo.Transactions(), func() time.Time { return testNow })
	return &testEnv{
		store:     store,
		repo:      repo,
		directory: service.NewDirectoryService(repo.Users(), repo.Transactions(), passwords),
		auth:      service.NewAuthService(repo.Users(), repo.Sessions(), passwords),
		ledger:    ledger,
		transfers: service.NewTransferService(repo.Users(), ledger),
		admin:     service.NewAdminService(repo.Users(), ledger, passwords),
	}
}

// newSeededEnv returns an environment holding alice (500) and bob (300).
func newSeededEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	if err := env.directory.EnsureSeed(context.Background()); err != nil {
		t.Fatalf("EnsureSeed: %v", err)
	}
	return env
}

func (e *testEnv) balance(t *testing.T, username string) decimal.Decimal {
	t.Helper()
	u, err := e.directory.FindByUsername(context.Background(), username)
	if err != nil {
		t.Fatalf("FindByUsername %s: %v", username, err)
	}
	return u.Balance
}

func (e *testEnv) totalBalance(t *testing.T) decimal.Decimal {
	t.Helper()
	users, err := e.directory.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	total := decimal.Zero
	for _, u := range users {
		total = total.Add(u.Balance)
	}
	return total
}

func (e *testEnv) transactions(t *testing.T) []domain.TransactionRecord {
	t.Helper()
	txs, err := e.ledger.AllTransactions(context.Background())
	if err != nil {
		t.Fatalf("AllTransactions: %v", err)
	}
	return txs
}

// snapshot captures the raw stored documents for byte-for-byte comparison.
func (e *testEnv) snapshot(t *testing.T) [2]string {
	t.Helper()
	ctx := context.Background()
	users, err := e.store.Get(ctx, kv.DefaultKeys.Users)
	if err != nil {
		t.Fatalf("Get users: %v", err)
	}
	txs, err := e.store.Get(ctx, kv.DefaultKeys.Transactions)
	if err != nil {
		t.Fatalf("Get transactions: %v", err)
	}
	return [2]string{users, txs}
}

// failingStore passes calls through to a store but fails every Set of one key.
type failingStore struct {
	domain.KeyValueStore
	key string
}

func (s failingStore) Set(ctx context.Context, key, value string) error {
	if key == s.key {
		return errDiskFull
	}
	return s.KeyValueStore.Set(ctx, key, value)
}

var errDiskFull = errors.New("disk full")

// withFailingLedger rebuilds the services of a seeded env over a store that
// rejects every ledger write.
func (e *testEnv) withFailingLedger() *testEnv {
	failing := newTestEnvOver(failingStore{KeyValueStore: e.store, key: kv.DefaultKeys.Transactions}, service.PlainTextPasswords{})
	failing.store = e.store
	return failing
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertBalance(t *testing.T, env *testEnv, username, want string) {
	t.Helper()
	if got := env.balance(t, username); !got.Equal(dec(want)) {
		t.Fatalf("expected %s balance %s, got %s", username, want, got)
	}
}
