package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one statement row.
//
// Date and BookedDate hold ISO calendar dates when the source cell carried
// date semantics, otherwise the cell's literal text. ISO text sorts
// correctly, which is what the date-descending list order relies on.
type Transaction struct {
	ID             string
	Date           string
	BookedDate     string
	Description    string
	City           string
	Currency       string
	Amount         decimal.Decimal
	CardHolder     string
	Category       string
	SourceFile     string
	ManualCategory bool
	CreatedAt      time.Time
}

// CategoryRule represents a keyword -> category mapping. Evaluation order
// is insertion order (rowid), which is user-visible first-match-wins policy.
type CategoryRule struct {
	ID       string
	Keyword  string
	Category string
}
