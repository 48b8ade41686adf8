package repository

import (
	"context"
	"database/sql"
)

// CategoryRepo handles category names.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Create inserts a new category. A UNIQUE violation means the name is taken.
func (r *CategoryRepo) Create(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO categories(name) VALUES (?)`, name)
	return err
}

// execer is the write subset shared by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// EnsureCategory makes the category exist, creating it when absent. Every
// write path that can introduce a new name (rule edits, manual transaction
// edits) goes through this, inside whatever transaction the caller holds,
// so creation-as-a-side-effect stays an explicit operation rather than
// storage-layer magic.
func EnsureCategory(ctx context.Context, e execer, name string) error {
	_, err := e.ExecContext(ctx, `INSERT OR IGNORE INTO categories(name) VALUES (?)`, name)
	return err
}

// Ensure is EnsureCategory on the repo's own connection.
func (r *CategoryRepo) Ensure(ctx context.Context, name string) error {
	return EnsureCategory(ctx, r.db, name)
}

func (r *CategoryRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) Exists(ctx context.Context, name string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM categories WHERE name = ?`, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
