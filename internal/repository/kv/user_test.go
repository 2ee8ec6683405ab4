package kv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/mini-bank/internal/domain"
	"github.com/msomdec/mini-bank/internal/repository/kv"
)

func TestUserRepository_List_Uninitialized(t *testing.T) {
	repo := kv.New(newTestStore(t)).Users()
	ctx := context.Background()

	exists, err := repo.Exists(ctx)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("expected no user collection")
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty list, got %d users", len(users))
	}
}

func TestUserRepository_SaveAndList(t *testing.T) {
	store := newTestStore(t)
	repo := kv.New(store).Users()
	ctx := context.Background()

	users := []domain.User{
		{Username: "alice", DisplayName: "Alice Khan", Password: "alice123", Balance: dec("500")},
		{Username: "bob", DisplayName: "Bob Ahmed", Password: "bob123", Balance: dec("300.5")},
	}
	if err := repo.Save(ctx, users); err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := `[{"username":"alice","name":"Alice Khan","password":"alice123","balance":500},` +
		`{"username":"bob","name":"Bob Ahmed","password":"bob123","balance":300.5}]`
	if got := mustGet(t, store, kv.DefaultKeys.Users); got != want {
		t.Fatalf("unexpected stored document:\n got %s\nwant %s", got, want)
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 users, got %d", len(listed))
	}
	if listed[0].Username != "alice" || listed[1].Username != "bob" {
		t.Fatalf("expected insertion order alice, bob; got %s, %s", listed[0].Username, listed[1].Username)
	}
	if !listed[1].Balance.Equal(dec("300.50")) {
		t.Fatalf("expected bob balance 300.50, got %s", listed[1].Balance)
	}
}

func TestUserRepository_Save_OverwritesCollection(t *testing.T) {
	repo := kv.New(newTestStore(t)).Users()
	ctx := context.Background()

	if err := repo.Save(ctx, []domain.User{{Username: "alice"}, {Username: "bob"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, []domain.User{{Username: "carol"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 1 || users[0].Username != "carol" {
		t.Fatalf("expected only carol, got %+v", users)
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	repo := kv.New(newTestStore(t)).Users()
	ctx := context.Background()

	if err := repo.Save(ctx, []domain.User{
		{Username: "alice", DisplayName: "Alice Khan", Balance: dec("500")},
		{Username: "bob", DisplayName: "Bob Ahmed", Balance: dec("300")},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	u, err := repo.GetByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if u.DisplayName != "Bob Ahmed" {
		t.Fatalf("expected Bob Ahmed, got %q", u.DisplayName)
	}

	// Matching is exact.
	if _, err := repo.GetByUsername(ctx, "Bob"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_List_AcceptsQuotedBalance(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.Set(ctx, "mb_users", `[{"username":"dave","name":"Dave","password":"x","balance":"12.345"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	users, err := kv.New(store).Users().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !users[0].Balance.Equal(dec("12.35")) {
		t.Fatalf("expected balance rounded to 12.35, got %s", users[0].Balance)
	}
}

func TestUserRepository_List_BalanceOutOfRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.Set(ctx, "mb_users", `[{"username":"dave","name":"Dave","password":"x","balance":1e100000}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, err := kv.New(store).Users().List(ctx); err == nil {
		t.Fatal("expected out of range balance to fail decoding")
	}
}

func TestUserRepository_List_CorruptDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.Set(ctx, "mb_users", "{not json"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, err := kv.New(store).Users().List(ctx); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRepository_CustomKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	repo := kv.NewWithKeys(store, kv.Keys{Users: "u", Transactions: "t", Session: "s"})

	if err := repo.Users().Save(ctx, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := mustGet(t, store, "u"); got != "[]" {
		t.Fatalf("expected [] under custom key, got %q", got)
	}
	if _, err := store.Get(ctx, kv.DefaultKeys.Users); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected default key untouched, got %v", err)
	}
}
