package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the on-the-wire and on-disk format of a transaction date.
const DateLayout = "2006-01-02"

// MonthLayout is the format of a month bucket key.
const MonthLayout = "2006-01"

var ErrInvalidTransaction = errors.New("invalid transaction")

// TransactionType tells whether an amount adds to or subtracts from the balance.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// ParseTransactionType rejects anything outside the closed income/expense set.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, s)
	}
	return t, nil
}

type Transaction struct {
	ID          int64
	Date        time.Time
	Category    string
	Amount      decimal.Decimal
	Type        TransactionType
	Description string
}

// Validate checks the invariants a row must hold before it is written.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidTransaction)
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidTransaction)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidTransaction)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, t.Type)
	}
	return nil
}

// View converts the record into its JSON projection.
func (t Transaction) View() TransactionView {
	return TransactionView{
		ID:          t.ID,
		Date:        t.Date.Format(DateLayout),
		Category:    t.Category,
		Amount:      t.Amount.Round(2).InexactFloat64(),
		Type:        string(t.Type),
		Description: t.Description,
	}
}

// TransactionView is the shape served to the front end.
type TransactionView struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

func Views(list []Transaction) []TransactionView {
	out := make([]TransactionView, 0, len(list))
	for _, t := range list {
		out = append(out, t.View())
	}
	return out
}

// Filter narrows a listing. Zero-valued fields place no restriction.
type Filter struct {
	Month    string
	FromDate string
	ToDate   string
	Type     TransactionType
	Category string
}
