package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/evalind/kortkoll/internal/categorize"
	"github.com/evalind/kortkoll/internal/database/repository"
	"github.com/evalind/kortkoll/internal/statement"
)

// IngestService imports statement workbooks. Repeated uploads of
// overlapping statements are safe: the dedup index turns collisions into
// skips, reflected only in the counts.
type IngestService struct {
	Transactions *repository.TransactionRepo
	Rules        *repository.RuleRepo
}

// ImportResult reports how much of an upload was new. Inserted == 0 with a
// non-zero Total means the file was already fully imported.
type ImportResult struct {
	Inserted int
	Total    int
}

// ImportStatement parses one workbook, stamps a category on each candidate
// using the current rule set, and inserts with dedup. An unreadable
// workbook aborts before any insert; a dedup collision never does.
func (s *IngestService) ImportStatement(ctx context.Context, r io.Reader, filename string) (ImportResult, error) {
	grid, err := statement.ReadWorkbook(r)
	if err != nil {
		return ImportResult{}, err
	}

	ruleRows, err := s.Rules.ListOrdered(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	rules := make([]categorize.Rule, 0, len(ruleRows))
	for _, cr := range ruleRows {
		rules = append(rules, categorize.Rule{Keyword: cr.Keyword, Category: cr.Category})
	}

	var res ImportResult
	for cand := range statement.Candidates(grid, filename) {
		res.Total++
		t := repository.Transaction{
			ID:          uuid.NewString(),
			Date:        cand.Date,
			BookedDate:  cand.BookedDate,
			Description: cand.Description,
			City:        cand.City,
			Currency:    cand.Currency,
			Amount:      cand.Amount,
			CardHolder:  cand.CardHolder,
			Category:    categorize.Categorize(cand.Description, rules),
			SourceFile:  cand.SourceFile,
		}
		if err := s.Transactions.Insert(ctx, t); err != nil {
			if repository.IsUniqueViolation(err) {
				continue
			}
			return res, err
		}
		res.Inserted++
	}
	return res, nil
}
