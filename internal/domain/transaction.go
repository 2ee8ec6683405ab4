package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the display format of TransactionRecord.Date.
const DateLayout = "1/2/2006, 3:04:05 PM"

const (
	TransactionTypeDebit  = "debit"
	TransactionTypeCredit = "credit"
)

// TransactionRecord is one immutable ledger entry.
type TransactionRecord struct {
	From   string
	To     string
	Amount decimal.Decimal
	Note   string
	Date   string
}

// NewTransactionRecord validates and builds a ledger entry dated at the given time.
func NewTransactionRecord(from, to string, amount decimal.Decimal, note string, at time.Time) (*TransactionRecord, error) {
	if from == "" || to == "" {
		return nil, NewError(ErrInvalidInput, "Both parties are required")
	}
	if from == to {
		return nil, NewError(ErrInvalidInput, "Cannot transfer to yourself")
	}
	amount, ok := NormalizeAmount(amount)
	if !ok || !amount.IsPositive() {
		return nil, NewError(ErrInvalidInput, "Enter valid amount")
	}
	return &TransactionRecord{
		From:   from,
		To:     to,
		Amount: amount,
		Note:   note,
		Date:   FormatDate(at),
	}, nil
}

// TransactionView is a ledger entry as seen by one of its parties.
type TransactionView struct {
	Date         string
	Type         string // "debit" or "credit"
	Amount       decimal.Decimal
	Counterparty string
	Note         string
}

// ViewFor classifies the record from username's side. The second result is
// false when username is not a party to the record.
func (r TransactionRecord) ViewFor(username string) (TransactionView, bool) {
	v := TransactionView{Date: r.Date, Amount: r.Amount, Note: r.Note}
	switch username {
	case r.From:
		v.Type = TransactionTypeDebit
		v.Counterparty = r.To
	case r.To:
		v.Type = TransactionTypeCredit
		v.Counterparty = r.From
	default:
		return TransactionView{}, false
	}
	return v, true
}

// TransactionRepository persists the ledger, newest entry first.
type TransactionRepository interface {
	List(ctx context.Context) ([]TransactionRecord, error)
	// Prepend inserts the record at the front and rewrites the whole ledger.
	Prepend(ctx context.Context, record *TransactionRecord) error
	// Reset replaces the ledger with an empty one.
	Reset(ctx context.Context) error
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
