package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/evalind/kortkoll/internal/categorize"
)

// seedRules is the starter rule set for a fresh database, in evaluation
// order. Order matters: the categorizer is first-match-wins.
var seedRules = []struct {
	Category string
	Keywords []string
}{
	{"Groceries", []string{"ICA", "COOP", "HEMKOP", "MAXI ICA", "STORA COOP", "NYTTIG SNABBMAT"}},
	{"Transport", []string{"VASTTRAFIK", "BOLT", "EASYPARK", "PARKERING", "INGO ", "CIRCLE K"}},
	{"Restaurants & Cafés", []string{
		"SUSHI YAMA", "WAYNES COFFEE", "LUCAS KAFEET", "PRESSBYRAN",
		"7-ELEVEN", "SELECTA", "SNABBMATSGRUPPEN", "KVILLEKIOSKEN",
		"GABY'S", "MANDORLA", "LOOMISP*DAHLS BAGERI", "LOOMISP*SEVEN",
	}},
	{"Shopping", []string{
		"AMAZON", "ZARA", "KAPPAHL", "LINDEX", "STRONGER AB",
		"JOTEX", "LEKIA", "BESTSELLER", "SP LAMPLJUSET",
	}},
	{"Health & Beauty", []string{
		"APOTEK", "APOTEA", "APOHEM", "GYNEKOLOG", "SPECSAVERS",
		"BOKADIREKT", "FLEXMASSAGE",
	}},
	{"Subscriptions", []string{"APPLE.COM/BILL", "CRUNCHYROLL", "COMVIQ", "RED CROSS"}},
	{"Travel & Hotels", []string{"HOTEL AT BOOKING", "BOOKING.COM"}},
	{"Car", []string{"MJUK BILTVETT"}},
	{"Home", []string{"MATHEM", "KRONANS APOTEK"}},
	{"Furniture & Home Decor", []string{"TVÅ KANTEN"}},
}

// SeedDefaults ensures baseline categories and rules exist for new
// databases. It is idempotent and safe to run on every startup: the starter
// set is only written when the category table is empty, while the reserved
// categories are ensured unconditionally.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	return WithTx(db, func(tx *sql.Tx) error {
		var existing int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&existing); err != nil {
			return err
		}
		if existing == 0 {
			for _, seed := range seedRules {
				if _, err := tx.ExecContext(ctx,
					`INSERT OR IGNORE INTO categories(name) VALUES (?)`, seed.Category); err != nil {
					return err
				}
				for _, kw := range seed.Keywords {
					if _, err := tx.ExecContext(ctx,
						`INSERT OR IGNORE INTO category_rules(id, keyword, category) VALUES (?, ?, ?)`,
						uuid.NewString(), kw, seed.Category); err != nil {
						return err
					}
				}
			}
		}
		for _, name := range []string{categorize.Other, categorize.Excluded} {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO categories(name) VALUES (?)`, name); err != nil {
				return err
			}
		}
		return nil
	})
}
