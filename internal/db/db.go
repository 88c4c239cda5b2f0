package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"financetracker/internal/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// InitDB opens the configured database, checks the connection and makes
// sure the schema exists.
func InitDB(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// sqlite allows a single writer; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if err = createTables(db, cfg.Driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB, driver string) error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == config.DriverPostgres {
		idColumn = "id SERIAL PRIMARY KEY"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			` + idColumn + `,
			"date" TEXT NOT NULL,
			category VARCHAR(100) NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			type VARCHAR(20) NOT NULL,
			description VARCHAR(200),
			CONSTRAINT valid_transaction_type CHECK (type IN ('income', 'expense')),
			CONSTRAINT non_negative_amount CHECK (amount >= 0)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions("date")`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// rebind rewrites ? placeholders into the $n form postgres expects.
func rebind(driver, query string) string {
	if driver != config.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
