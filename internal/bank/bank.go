// Package bank is the in-process API a front end calls. Every operation
// reports its outcome as a Result or a bool instead of an error, with the
// message meant to be shown to the user.
package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/msomdec/mini-bank/internal/domain"
	"github.com/msomdec/mini-bank/internal/repository/kv"
	"github.com/msomdec/mini-bank/internal/service"
)

const (
	MessageLoggedIn  = "Logged in"
	MessageUserAdded = "User added"
	// MessageInternal replaces errors that are not meant for end users.
	MessageInternal = "Something went wrong"
)

// Result is the outcome of a user-facing operation.
type Result struct {
	Success bool
	Message string
}

// NewUserInput is an admin's account form. Balance is the raw form text;
// empty means zero.
type NewUserInput struct {
	DisplayName string
	Username    string
	Password    string
	Balance     string
}

// Options configures a Bank.
type Options struct {
	// Passwords defaults to plain-text comparison.
	Passwords domain.PasswordScheme
	// Keys defaults to kv.DefaultKeys.
	Keys *kv.Keys
	// Now defaults to time.Now.
	Now func() time.Time
}

// Bank wires the services over one key-value store.
type Bank struct {
	directory *service.DirectoryService
	auth      *service.AuthService
	ledger    *service.LedgerService
	transfers *service.TransferService
	admin     *service.AdminService
}

// New creates a Bank over store.
func New(store domain.KeyValueStore, opts Options) *Bank {
	if opts.Passwords == nil {
		opts.Passwords = service.PlainTextPasswords{}
	}
	keys := kv.DefaultKeys
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	repo := kv.NewWithKeys(store, keys)
	ledger := service.NewLedgerService(repo.Transactions(), opts.Now)
	return &Bank{
		directory: service.NewDirectoryService(repo.Users(), repo.Transactions(), opts.Passwords),
		auth:      service.NewAuthService(repo.Users(), repo.Sessions(), opts.Passwords),
		ledger:    ledger,
		transfers: service.NewTransferService(repo.Users(), ledger),
		admin:     service.NewAdminService(repo.Users(), ledger, opts.Passwords),
	}
}

// EnsureSeed creates the demo accounts on first use.
func (b *Bank) EnsureSeed(ctx context.Context) error {
	return b.directory.EnsureSeed(ctx)
}

func (b *Bank) ListUsers(ctx context.Context) ([]domain.User, error) {
	return b.directory.ListUsers(ctx)
}

// FindUser returns domain.ErrNotFound when no user matches.
func (b *Bank) FindUser(ctx context.Context, username string) (*domain.User, error) {
	return b.directory.FindByUsername(ctx, username)
}

func (b *Bank) Login(ctx context.Context, username, password string) Result {
	if _, err := b.auth.Login(ctx, username, password); err != nil {
		return failure("login", err)
	}
	return Result{Success: true, Message: MessageLoggedIn}
}

// CurrentUser returns domain.ErrNotFound when nobody is logged in.
func (b *Bank) CurrentUser(ctx context.Context) (*domain.Session, error) {
	return b.auth.CurrentUser(ctx)
}

func (b *Bank) Logout(ctx context.Context) error {
	return b.auth.Logout(ctx)
}

func (b *Bank) AllTransactions(ctx context.Context) ([]domain.TransactionRecord, error) {
	return b.ledger.AllTransactions(ctx)
}

func (b *Bank) TransactionsFor(ctx context.Context, username string) ([]domain.TransactionView, error) {
	return b.ledger.TransactionsFor(ctx, username)
}

// Transfer sends amount, given as form text, from one user to another.
func (b *Bank) Transfer(ctx context.Context, from, to, amount, note string) Result {
	d, ok := parseAmount(amount)
	if !ok {
		d = decimal.Zero
	}
	record, err := b.transfers.Transfer(ctx, from, to, d, note)
	if err != nil {
		return failure("transfer", err)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("$%s sent to %s", record.Amount.StringFixed(2), record.To),
	}
}

func (b *Bank) AddUser(ctx context.Context, in NewUserInput) Result {
	balance := decimal.Zero
	if strings.TrimSpace(in.Balance) != "" {
		var ok bool
		if balance, ok = parseAmount(in.Balance); !ok {
			// Negative so the account checks reject it after the username.
			balance = decimal.NewFromInt(-1)
		}
	}

	_, err := b.admin.AddUser(ctx, service.NewUserInput{
		DisplayName: in.DisplayName,
		Username:    in.Username,
		Password:    in.Password,
		Balance:     balance,
	})
	if err != nil {
		return failure("add user", err)
	}
	return Result{Success: true, Message: MessageUserAdded}
}

// SetBalance reports false when the user is missing or the balance is not a
// non-negative number.
func (b *Bank) SetBalance(ctx context.Context, username, balance string) bool {
	d, ok := parseAmount(balance)
	if !ok {
		return false
	}
	if err := b.admin.SetBalance(ctx, username, d); err != nil {
		failure("set balance", err)
		return false
	}
	return true
}

// DeleteUser removes the user and keeps their history. It only reports
// false when the store fails.
func (b *Bank) DeleteUser(ctx context.Context, username string) bool {
	if err := b.admin.DeleteUser(ctx, username); err != nil {
		failure("delete user", err)
		return false
	}
	return true
}

// maxAmountText bounds form input before it reaches the decimal parser.
const maxAmountText = 64

// parseAmount reports false for text that is not a number or is too long to
// be one. Callers map that to a value their checks reject in the usual order.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if len(s) > maxAmountText {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func failure(op string, err error) Result {
	var de *domain.Error
	if errors.As(err, &de) {
		slog.Debug("operation rejected", "op", op, "reason", de.Message)
		return Result{Message: de.Message}
	}
	slog.Error("operation failed", "op", op, "error", err)
	return Result{Message: MessageInternal}
}
