package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/evalind/kortkoll/internal/categorize"
	"github.com/evalind/kortkoll/internal/database"
	"github.com/evalind/kortkoll/internal/database/repository"
)

// CategoryService mutates the category set and per-transaction category
// assignments.
type CategoryService struct {
	DB         *sql.DB
	Categories *repository.CategoryRepo
}

// Create adds an explicit category. Duplicates are a conflict.
func (s *CategoryService) Create(ctx context.Context, name string) error {
	if err := s.Categories.Create(ctx, name); err != nil {
		if repository.IsUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", name, ErrConflict)
		}
		return err
	}
	return nil
}

// Delete removes a category and cascades in one transaction: its
// transactions fall back to Other, its rules are removed, then the category
// itself. The fallback intentionally ignores the manual-override flag —
// the category the user chose no longer exists. Reserved categories are
// rejected with storage untouched.
func (s *CategoryService) Delete(ctx context.Context, name string) error {
	if name == categorize.Other || name == categorize.Excluded {
		return fmt.Errorf("category %q: %w", name, ErrReserved)
	}
	return database.WithTx(s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE transactions SET category = ? WHERE category = ?`, categorize.Other, name); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM category_rules WHERE category = ?`, name); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM categories WHERE name = ?`, name); err != nil {
			return err
		}
		return nil
	})
}

// AssignTransaction sets a transaction's category by direct user edit and
// marks it manually categorized. This is the only path that sets the
// manual flag; imports and rule propagation never do.
func (s *CategoryService) AssignTransaction(ctx context.Context, id, category string) error {
	return database.WithTx(s.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE transactions SET category = ?, manual_category = 1 WHERE id = ?`, category, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
		}
		return repository.EnsureCategory(ctx, tx, category)
	})
}
