package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PlainTextPasswords stores passwords as given and compares them exactly.
type PlainTextPasswords struct{}

func (PlainTextPasswords) Hash(password string) (string, error) {
	return password, nil
}

func (PlainTextPasswords) Verify(stored, attempt string) bool {
	return stored == attempt
}

// BcryptPasswords stores bcrypt hashes.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptPasswords) Verify(stored, attempt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(attempt)) == nil
}
