package models

import "github.com/shopspring/decimal"

// Totals holds income and expense sums over some set of transactions.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// Add folds one transaction into the running totals.
func (t Totals) Add(tx Transaction) Totals {
	switch tx.Type {
	case Income:
		t.Income = t.Income.Add(tx.Amount)
	case Expense:
		t.Expense = t.Expense.Add(tx.Amount)
	}
	return t
}

func TotalsOf(list []Transaction) Totals {
	var t Totals
	for _, tx := range list {
		t = t.Add(tx)
	}
	return t
}

func (t Totals) View() SummaryView {
	return SummaryView{
		Income:  money(t.Income),
		Expense: money(t.Expense),
		Balance: money(t.Balance()),
	}
}

func (t Totals) BalanceView() BalanceView {
	return BalanceView{
		TotalIncome:  money(t.Income),
		TotalExpense: money(t.Expense),
		Balance:      money(t.Balance()),
	}
}

// PeriodTotals is one time bucket of a grouped summary. Period is
// YYYY-MM for monthly and YYYY for yearly summaries.
type PeriodTotals struct {
	Period string
	Totals
}

type SummaryView struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

type MonthlySummaryView struct {
	Month string `json:"month"`
	SummaryView
}

type YearlySummaryView struct {
	Year string `json:"year"`
	SummaryView
}

type BalanceView struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

// FilterResult is the payload of a filtered listing.
type FilterResult struct {
	Transactions []TransactionView `json:"transactions"`
	Summary      SummaryView       `json:"summary"`
}

func MonthlyViews(list []PeriodTotals) []MonthlySummaryView {
	out := make([]MonthlySummaryView, 0, len(list))
	for _, p := range list {
		out = append(out, MonthlySummaryView{Month: p.Period, SummaryView: p.Totals.View()})
	}
	return out
}

func YearlyViews(list []PeriodTotals) []YearlySummaryView {
	out := make([]YearlySummaryView, 0, len(list))
	for _, p := range list {
		out = append(out, YearlySummaryView{Year: p.Period, SummaryView: p.Totals.View()})
	}
	return out
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
