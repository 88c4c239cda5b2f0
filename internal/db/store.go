package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"financetracker/internal/models"
)

var ErrNotFound = errors.New("transaction not found")

const transactionColumns = `id, "date", category, amount, type, description`

// Store runs every query against the transactions table. It holds no state
// beyond the connection pool, so one instance is shared by all requests.
type Store struct {
	db     *sql.DB
	driver string
}

func NewStore(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Create inserts a transaction and returns it with its generated id.
func (s *Store) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, err
	}
	tx.Amount = tx.Amount.Round(2)

	query := s.q(`
		INSERT INTO transactions ("date", category, amount, type, description)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	err := s.db.QueryRowContext(ctx, query,
		tx.Date.Format(models.DateLayout), tx.Category, tx.Amount, string(tx.Type), tx.Description,
	).Scan(&tx.ID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}

// List returns every transaction, newest date first.
func (s *Store) List(ctx context.Context) ([]models.Transaction, error) {
	return s.Filter(ctx, models.Filter{})
}

// Filter returns the transactions matching every set field of f, newest
// date first.
func (s *Store) Filter(ctx context.Context, f models.Filter) ([]models.Transaction, error) {
	var (
		where []string
		args  []any
	)
	if f.Month != "" {
		where = append(where, `substr("date", 1, 7) = ?`)
		args = append(args, f.Month)
	}
	if f.FromDate != "" {
		where = append(where, `"date" >= ?`)
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		where = append(where, `"date" <= ?`)
		args = append(args, f.ToDate)
	}
	if f.Type != "" {
		where = append(where, `type = ?`)
		args = append(args, string(f.Type))
	}
	if f.Category != "" {
		where = append(where, `category = ?`)
		args = append(args, f.Category)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY "date" DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	list := make([]models.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return list, nil
}

// Delete removes a transaction by id, returning ErrNotFound when no row
// had that id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM transactions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// MonthlySummary groups totals by YYYY-MM, ascending.
func (s *Store) MonthlySummary(ctx context.Context) ([]models.PeriodTotals, error) {
	return s.summaryBy(ctx, 7)
}

// YearlySummary groups totals by YYYY, ascending.
func (s *Store) YearlySummary(ctx context.Context) ([]models.PeriodTotals, error) {
	return s.summaryBy(ctx, 4)
}

// summaryBy buckets rows on the first keyLen characters of the ISO date.
func (s *Store) summaryBy(ctx context.Context, keyLen int) ([]models.PeriodTotals, error) {
	query := fmt.Sprintf(`
		SELECT substr("date", 1, %d) AS period,
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense
		FROM transactions
		GROUP BY period
		ORDER BY period`, keyLen)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	defer rows.Close()

	out := make([]models.PeriodTotals, 0)
	for rows.Next() {
		var p models.PeriodTotals
		if err := rows.Scan(&p.Period, &p.Income, &p.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		p.Totals = rounded(p.Totals)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	return out, nil
}

// Balance sums income and expense over the whole table. An empty table
// yields zero totals.
func (s *Store) Balance(ctx context.Context) (models.Totals, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions`

	var t models.Totals
	if err := s.db.QueryRowContext(ctx, query).Scan(&t.Income, &t.Expense); err != nil {
		return models.Totals{}, fmt.Errorf("failed to compute balance: %w", err)
	}
	return rounded(t), nil
}

// Months lists every YYYY-MM that has at least one transaction, ascending.
func (s *Store) Months(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT substr("date", 1, 7) AS month FROM transactions ORDER BY month`)
}

// Categories lists every category in use, ascending.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT category FROM transactions ORDER BY category`)
}

func (s *Store) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct values: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) q(query string) string {
	return rebind(s.driver, query)
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var (
		tx          models.Transaction
		date        string
		txType      string
		description sql.NullString
	)
	if err := rows.Scan(&tx.ID, &date, &tx.Category, &tx.Amount, &txType, &description); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	parsed, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %d has malformed date %q: %w", tx.ID, date, err)
	}
	tx.Date = parsed
	tx.Type = models.TransactionType(txType)
	tx.Amount = tx.Amount.Round(2)
	if description.Valid {
		tx.Description = description.String
	}
	return tx, nil
}

func rounded(t models.Totals) models.Totals {
	return models.Totals{Income: t.Income.Round(2), Expense: t.Expense.Round(2)}
}
