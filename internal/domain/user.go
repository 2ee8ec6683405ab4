package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// BankUsername is the sentinel party used for money entering or leaving the
// system through admin actions. It can never be registered as a user.
const BankUsername = "bank"

// User is an account holder.
type User struct {
	Username    string
	DisplayName string
	Password    string
	Balance     decimal.Decimal
}

// NewUser validates and builds a user record. The balance is held at cent
// precision.
func NewUser(username, displayName, password string, balance decimal.Decimal) (*User, error) {
	if username == "" {
		return nil, NewError(ErrInvalidInput, "Enter username")
	}
	if username == BankUsername {
		return nil, NewError(ErrConflict, "Username is reserved")
	}
	balance, ok := NormalizeAmount(balance)
	if !ok || balance.IsNegative() {
		return nil, NewError(ErrInvalidInput, "Enter valid amount")
	}
	return &User{
		Username:    username,
		DisplayName: displayName,
		Password:    password,
		Balance:     balance,
	}, nil
}

// UserRepository persists the user collection as a whole.
type UserRepository interface {
	// Exists reports whether a user collection has ever been written.
	Exists(ctx context.Context) (bool, error)
	List(ctx context.Context) ([]User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// Save replaces the entire stored collection.
	Save(ctx context.Context, users []User) error
}
