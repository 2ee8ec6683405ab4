package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/msomdec/mini-bank/internal/bank"
	"github.com/msomdec/mini-bank/internal/domain"
	"github.com/msomdec/mini-bank/internal/repository/redis"
	"github.com/msomdec/mini-bank/internal/repository/sqlite"
	"github.com/msomdec/mini-bank/internal/service"
)

func main() {
	level, err := parseLevel(envOrDefault("LOG_LEVEL", "info"))
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)
	if err != nil {
		slog.Error("invalid LOG_LEVEL", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, store, err := openStore(ctx)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to prepare store", "error", err)
		os.Exit(1)
	}

	var passwords domain.PasswordScheme
	switch scheme := envOrDefault("CREDENTIALS", "plain"); scheme {
	case "plain":
		passwords = service.PlainTextPasswords{}
	case "bcrypt":
		cost := 12
		if v := os.Getenv("BCRYPT_COST"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 4 || parsed > 14 {
				slog.Error("BCRYPT_COST must be between 4 and 14", "value", v)
				os.Exit(1)
			}
			cost = parsed
		}
		passwords = service.BcryptPasswords{Cost: cost}
	default:
		slog.Error("CREDENTIALS must be plain or bcrypt", "value", scheme)
		os.Exit(1)
	}

	b := bank.New(store, bank.Options{Passwords: passwords})

	// Seed demo accounts (idempotent).
	if err := b.EnsureSeed(ctx); err != nil {
		slog.Error("failed to seed demo accounts", "error", err)
		os.Exit(1)
	}

	users, err := b.ListUsers(ctx)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		os.Exit(1)
	}
	for _, u := range users {
		slog.Info("account", "username", u.Username, "name", u.DisplayName, "balance", u.Balance.StringFixed(2))
	}

	txs, err := b.AllTransactions(ctx)
	if err != nil {
		slog.Error("failed to read ledger", "error", err)
		os.Exit(1)
	}
	slog.Info("store ready", "users", len(users), "transactions", len(txs))
}

func openStore(ctx context.Context) (domain.Database, domain.KeyValueStore, error) {
	switch backend := envOrDefault("STORE_BACKEND", "sqlite"); backend {
	case "redis":
		client, err := redis.New(ctx, redis.Config{
			Address:  envOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			Prefix:   envOrDefault("REDIS_PREFIX", "minibank:"),
		})
		if err != nil {
			return nil, nil, err
		}
		return client, client.Store(), nil
	case "sqlite":
		db, err := sqlite.New(envOrDefault("DATABASE_PATH", "minibank.db"))
		if err != nil {
			return nil, nil, err
		}
		return db, db.Store(), nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q (want sqlite or redis)", backend)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
