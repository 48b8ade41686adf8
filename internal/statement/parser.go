package statement

import (
	"iter"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Candidate is a raw statement row with the card-holder context it belongs
// to. Category is assigned later by the caller.
type Candidate struct {
	Date        string
	BookedDate  string
	Description string
	City        string
	Currency    string
	Amount      decimal.Decimal
	CardHolder  string
	SourceFile  string
}

// Statement layout markers. A card-holder block opens with a masked card
// number row, its transaction section opens with the column header row and
// closes with the totals row.
var cardMarker = regexp.MustCompile(`^\d{6}\*{6}\d{4}$`)

const (
	headerDate       = "Datum"
	headerBooked     = "Bokfört"
	totalsLabel      = "Totalt belopp"
	fallbackCardName = "Unknown"
)

// Candidates walks the cell grid of one statement and yields transaction
// candidates tagged with the current card holder and sourceFile. The
// sequence is lazy and single-use. Malformed cells degrade per row (amount
// to zero, dates to their literal text); no row aborts the walk.
func Candidates(grid [][]string, sourceFile string) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		cardHolder := ""
		inTransactions := false

		for _, row := range grid {
			col0 := strings.TrimSpace(cell(row, 0))
			col1 := strings.TrimSpace(cell(row, 1))

			if cardMarker.MatchString(col0) && col1 != "" {
				cardHolder = col1
				inTransactions = false
				continue
			}
			if col0 == headerDate && col1 == headerBooked {
				inTransactions = true
				continue
			}
			if col0 == totalsLabel {
				inTransactions = false
				continue
			}
			if cell(row, 0) == "" && cell(row, 2) == "" {
				continue // blank separator row
			}
			if !inTransactions || cell(row, 0) == "" || cell(row, 2) == "" {
				continue
			}

			holder := cardHolder
			if holder == "" {
				holder = fallbackCardName
			}
			c := Candidate{
				Date:        normalizeDate(cell(row, 0)),
				BookedDate:  normalizeDate(cell(row, 1)),
				Description: strings.TrimSpace(cell(row, 2)),
				City:        strings.TrimSpace(cell(row, 3)),
				Currency:    strings.TrimSpace(cell(row, 4)),
				Amount:      parseAmount(cell(row, 6)),
				CardHolder:  holder,
				SourceFile:  sourceFile,
			}
			if !yield(c) {
				return
			}
		}
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// dateLayouts covers ISO dates plus the renderings excelize produces for
// date-styled cells under common number formats.
var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02 15:04:05",
	"1/2/06",
	"1/2/2006",
	"1/2/06 15:04",
	"01-02-06",
	"2006/01/02",
}

// normalizeDate returns the ISO form when the cell carries date semantics,
// otherwise the cell's literal text.
func normalizeDate(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return trimmed
}

// parseAmount reads a decimal amount from a formatted cell. Swedish
// statements use comma decimal separators and space thousand groups.
// Anything unparseable becomes zero rather than failing the row.
func parseAmount(s string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero
	}
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
