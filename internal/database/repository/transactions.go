package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/evalind/kortkoll/internal/database"
)

// TransactionFilters defines optional list constraints. Empty = unconstrained.
type TransactionFilters struct {
	Category   string
	CardHolder string
	SourceFile string
}

// TransactionRepo handles transactions.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// IsUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure. Callers treat those as dedup skips or create conflicts, never
// as storage failures.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE")
}

func (r *TransactionRepo) Insert(ctx context.Context, t Transaction) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(
	 id, date, booked_date, description, city, currency, amount,
	 card_holder, category, source_file, manual_category, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		t.ID, t.Date, t.BookedDate, t.Description, t.City, t.Currency,
		t.Amount.String(), t.CardHolder, t.Category, t.SourceFile, t.ManualCategory,
		database.Now())
	return err
}

const transactionColumns = `id, date, booked_date, description, city, currency, amount,
 card_holder, category, source_file, manual_category, created_at`

func (r *TransactionRepo) List(ctx context.Context, f TransactionFilters) ([]Transaction, error) {
	var where []string
	var args []interface{}

	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.CardHolder != "" {
		where = append(where, "card_holder = ?")
		args = append(args, f.CardHolder)
	}
	if f.SourceFile != "" {
		where = append(where, "source_file = ?")
		args = append(args, f.SourceFile)
	}

	query := "SELECT " + transactionColumns + " FROM transactions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	// rowid breaks date ties by insertion order
	query += " ORDER BY date DESC, rowid ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) Get(ctx context.Context, id string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// SourceFiles lists the distinct statement files already imported.
func (r *TransactionRepo) SourceFiles(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT source_file FROM transactions ORDER BY source_file`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// scanTransaction handles amount decoding for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (Transaction, error) {
	var t Transaction
	var amount string
	if err := row.Scan(&t.ID, &t.Date, &t.BookedDate, &t.Description, &t.City, &t.Currency,
		&amount, &t.CardHolder, &t.Category, &t.SourceFile, &t.ManualCategory, &t.CreatedAt); err != nil {
		return Transaction{}, err
	}
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return Transaction{}, err
	}
	t.Amount = dec
	return t, nil
}
