package repository

import (
	"context"
	"database/sql"
)

// RuleRepo stores categorization rules.
type RuleRepo struct{ db *sql.DB }

func NewRuleRepo(db *sql.DB) *RuleRepo { return &RuleRepo{db: db} }

// ListOrdered returns all rules in insertion order. The order is the
// first-match-wins evaluation order and must not be normalized away.
func (r *RuleRepo) ListOrdered(ctx context.Context) ([]CategoryRule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, keyword, category FROM category_rules ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryRule
	for rows.Next() {
		var cr CategoryRule
		if err := rows.Scan(&cr.ID, &cr.Keyword, &cr.Category); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

func (r *RuleRepo) ByKeyword(ctx context.Context, keyword string) (*CategoryRule, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, keyword, category FROM category_rules WHERE keyword = ?`, keyword)
	var cr CategoryRule
	if err := row.Scan(&cr.ID, &cr.Keyword, &cr.Category); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &cr, nil
}
