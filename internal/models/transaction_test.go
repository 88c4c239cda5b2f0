package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	for _, s := range []string{"income", "expense"} {
		got, err := ParseTransactionType(s)
		require.NoError(t, err)
		assert.Equal(t, TransactionType(s), got)
	}

	for _, s := range []string{"", "Income", "transfer"} {
		_, err := ParseTransactionType(s)
		assert.ErrorIs(t, err, ErrInvalidTransaction, s)
	}
}

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{
		Date:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Category: "Salary",
		Amount:   decimal.NewFromInt(1000),
		Type:     Income,
	}
	require.NoError(t, valid.Validate())

	zero := valid
	zero.Amount = decimal.Zero
	assert.NoError(t, zero.Validate())

	negative := valid
	negative.Amount = decimal.NewFromInt(-1)
	assert.ErrorIs(t, negative.Validate(), ErrInvalidTransaction)

	untyped := valid
	untyped.Type = "gift"
	assert.ErrorIs(t, untyped.Validate(), ErrInvalidTransaction)
}

func TestTransactionView_JSON(t *testing.T) {
	tx := Transaction{
		ID:       7,
		Date:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Category: "Rent",
		Amount:   decimal.RequireFromString("400.499"),
		Type:     Expense,
	}

	b, err := json.Marshal(tx.View())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 7, "date": "2024-01-10", "category": "Rent", "amount": 400.5, "type": "expense", "description": ""}`, string(b))
}

func TestTotals(t *testing.T) {
	list := []Transaction{
		{Type: Income, Amount: decimal.RequireFromString("1000")},
		{Type: Expense, Amount: decimal.RequireFromString("0.1")},
		{Type: Expense, Amount: decimal.RequireFromString("0.2")},
	}

	totals := TotalsOf(list)
	assert.Equal(t, "0.3", totals.Expense.String())
	assert.Equal(t, "999.7", totals.Balance().String())

	b, err := json.Marshal(totals.BalanceView())
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_income": 1000, "total_expense": 0.3, "balance": 999.7}`, string(b))

	assert.Equal(t, SummaryView{}, TotalsOf(nil).View())
}

func TestSummaryViews_JSON(t *testing.T) {
	periods := []PeriodTotals{
		{Period: "2024-01", Totals: Totals{Income: decimal.NewFromInt(1000), Expense: decimal.NewFromInt(400)}},
	}

	b, err := json.Marshal(MonthlyViews(periods))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"month": "2024-01", "income": 1000, "expense": 400, "balance": 600}]`, string(b))

	periods[0].Period = "2024"
	b, err = json.Marshal(YearlyViews(periods))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"year": "2024", "income": 1000, "expense": 400, "balance": 600}]`, string(b))

	b, err = json.Marshal(MonthlyViews(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
