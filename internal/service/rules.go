package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/evalind/kortkoll/internal/database"
	"github.com/evalind/kortkoll/internal/database/repository"
)

// RuleService mutates the keyword rule set and retroactively
// re-categorizes stored transactions. Each entry point runs in one
// transaction: the rule edit and its propagation pass commit together or
// not at all.
type RuleService struct {
	DB *sql.DB
}

// CreateRule adds a new rule and propagates it. A keyword that already
// governs a category is a conflict; use UpdateRule instead.
func (s *RuleService) CreateRule(ctx context.Context, keyword, category string) (int, error) {
	return s.upsert(ctx, keyword, category, false)
}

// UpdateRule replaces the target category of an existing rule, creating the
// rule when absent, then propagates.
func (s *RuleService) UpdateRule(ctx context.Context, keyword, category string) (int, error) {
	return s.upsert(ctx, keyword, category, true)
}

func (s *RuleService) upsert(ctx context.Context, keyword, category string, allowExisting bool) (int, error) {
	updated := 0
	err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id FROM category_rules WHERE keyword = ?`, keyword).Scan(&id)
		switch {
		case err == sql.ErrNoRows:
			_, err := tx.ExecContext(ctx,
				`INSERT INTO category_rules(id, keyword, category) VALUES (?, ?, ?)`,
				uuid.NewString(), keyword, category)
			if err != nil {
				if repository.IsUniqueViolation(err) {
					return fmt.Errorf("rule %q: %w", keyword, ErrConflict)
				}
				return err
			}
		case err != nil:
			return err
		default:
			if !allowExisting {
				return fmt.Errorf("rule %q: %w", keyword, ErrConflict)
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE category_rules SET category = ? WHERE id = ?`, category, id); err != nil {
				return err
			}
		}

		if err := repository.EnsureCategory(ctx, tx, category); err != nil {
			return err
		}

		n, err := propagate(ctx, tx, keyword, category)
		if err != nil {
			return err
		}
		updated = n
		return nil
	})
	return updated, err
}

// propagate re-categorizes stored transactions whose description contains
// keyword, skipping manually categorized rows. Matching happens in Go with
// the categorizer's exact semantics: sqlite's UPPER() only folds ASCII,
// which would diverge for keywords like "TVÅ KANTEN".
func propagate(ctx context.Context, tx *sql.Tx, keyword, category string) (int, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, description FROM transactions WHERE manual_category = 0`)
	if err != nil {
		return 0, err
	}
	needle := strings.ToUpper(keyword)
	var ids []string
	for rows.Next() {
		var id, desc string
		if err := rows.Scan(&id, &desc); err != nil {
			rows.Close()
			return 0, err
		}
		if strings.Contains(strings.ToUpper(desc), needle) {
			ids = append(ids, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE transactions SET category = ? WHERE id = ?`, category, id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}
