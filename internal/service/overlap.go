package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/evalind/kortkoll/internal/database/repository"
)

const (
	overlapMaxDaysApart     = 7
	overlapMaxDistanceRatio = 0.4
)

// OverlapService flags likely duplicate pairs that the exact dedup key
// cannot catch, e.g. the same purchase appearing in two statement exports
// with slightly different descriptions. Read-only; the report never
// mutates storage.
type OverlapService struct {
	Transactions *repository.TransactionRepo
}

// OverlapPair is a suspected duplicate across two source files.
type OverlapPair struct {
	A          repository.Transaction
	B          repository.Transaction
	Similarity float64
}

// Detect compares transactions pairwise across source files: equal amount,
// dates within a week, and near-identical descriptions.
func (s *OverlapService) Detect(ctx context.Context) ([]OverlapPair, error) {
	txs, err := s.Transactions.List(ctx, repository.TransactionFilters{})
	if err != nil {
		return nil, err
	}
	var out []OverlapPair
	for i := 0; i < len(txs); i++ {
		for j := i + 1; j < len(txs); j++ {
			a, b := txs[i], txs[j]
			if a.SourceFile == b.SourceFile {
				continue
			}
			if !a.Amount.Equal(b.Amount) {
				continue
			}
			if !datesClose(a.Date, b.Date) {
				continue
			}
			sim := descriptionSimilarity(a.Description, b.Description)
			if 1-sim >= overlapMaxDistanceRatio {
				continue
			}
			out = append(out, OverlapPair{A: a, B: b, Similarity: sim})
		}
	}
	return out, nil
}

func datesClose(a, b string) bool {
	ta, err := time.Parse(time.DateOnly, a)
	if err != nil {
		return false
	}
	tb, err := time.Parse(time.DateOnly, b)
	if err != nil {
		return false
	}
	d := ta.Sub(tb)
	if d < 0 {
		d = -d
	}
	return int(d.Hours()/24) <= overlapMaxDaysApart
}

func descriptionSimilarity(a, b string) float64 {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	if a == b {
		return 1
	}
	// ComputeDistance counts runes, so the denominator must too
	maxlen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxlen {
		maxlen = n
	}
	if maxlen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxlen)
}
