package statement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func collect(grid [][]string, sourceFile string) []Candidate {
	var out []Candidate
	for c := range Candidates(grid, sourceFile) {
		out = append(out, c)
	}
	return out
}

func TestCandidatesSingleBlock(t *testing.T) {
	t.Parallel()

	grid := [][]string{
		{"123456******7890", "Anna Svensson"},
		{"Datum", "Bokfört"},
		{"2025-01-10", "2025-01-11", "ICA SUPERMARKET AVENYN", "GÖTEBORG", "SEK", "", "-123.45"},
		{"2025-01-12", "2025-01-12", "VASTTRAFIK APP", "GÖTEBORG", "SEK", "", "-36.00"},
		{"2025-01-14", "", "SPOTIFY AB", "STOCKHOLM", "SEK", "", "-109.00"},
		{"Totalt belopp", "", "", "", "", "", "-268.45"},
	}

	got := collect(grid, "january.xlsx")
	require.Len(t, got, 3)
	for _, c := range got {
		require.Equal(t, "Anna Svensson", c.CardHolder)
		require.Equal(t, "january.xlsx", c.SourceFile)
	}
	require.Equal(t, "2025-01-10", got[0].Date)
	require.Equal(t, "2025-01-11", got[0].BookedDate)
	require.Equal(t, "ICA SUPERMARKET AVENYN", got[0].Description)
	require.Equal(t, "GÖTEBORG", got[0].City)
	require.Equal(t, "SEK", got[0].Currency)
	require.True(t, got[0].Amount.Equal(decimal.RequireFromString("-123.45")))
	require.Equal(t, "", got[2].BookedDate)
}

func TestCandidatesTwoCardBlocks(t *testing.T) {
	t.Parallel()

	grid := [][]string{
		{"123456******1111", "Anna Svensson"},
		{"Datum", "Bokfört"},
		{"2025-01-10", "2025-01-11", "ICA NARA", "", "SEK", "", "-50"},
		{"Totalt belopp"},
		{},
		{"654321******2222", "Per Svensson"},
		{"Datum", "Bokfört"},
		{"2025-01-20", "2025-01-21", "CIRCLE K", "", "SEK", "", "-700"},
		{"2025-01-22", "2025-01-22", "EASYPARK", "", "SEK", "", "-24"},
		{"Totalt belopp"},
	}

	got := collect(grid, "family.xlsx")
	require.Len(t, got, 3)
	require.Equal(t, "Anna Svensson", got[0].CardHolder)
	require.Equal(t, "Per Svensson", got[1].CardHolder)
	require.Equal(t, "Per Svensson", got[2].CardHolder)
}

func TestCandidatesRowsOutsideSectionIgnored(t *testing.T) {
	t.Parallel()

	grid := [][]string{
		{"Kontoutdrag", ""},
		{"2025-01-02", "", "NOT YET IN SECTION", "", "", "", "-1"},
		{"123456******1111", "Anna Svensson"},
		{"2025-01-03", "", "STILL NOT IN SECTION", "", "", "", "-2"},
		{"Datum", "Bokfört"},
		{"2025-01-04", "", "IN SECTION", "", "SEK", "", "-3"},
		{"Totalt belopp"},
		{"2025-01-05", "", "AFTER TOTALS", "", "", "", "-4"},
	}

	got := collect(grid, "s.xlsx")
	require.Len(t, got, 1)
	require.Equal(t, "IN SECTION", got[0].Description)
}

func TestCandidatesUnknownCardHolder(t *testing.T) {
	t.Parallel()

	grid := [][]string{
		{"Datum", "Bokfört"},
		{"2025-02-01", "", "LONE ROW", "", "SEK", "", "-10"},
	}

	got := collect(grid, "s.xlsx")
	require.Len(t, got, 1)
	require.Equal(t, "Unknown", got[0].CardHolder)
}

func TestCandidatesMalformedCellsDegrade(t *testing.T) {
	t.Parallel()

	grid := [][]string{
		{"Datum", "Bokfört"},
		{"inte ett datum", "ej heller", "BAD CELLS", "", "SEK", "", "abc"},
		{"2025-03-01", "", "MISSING AMOUNT", "", "SEK"},
	}

	got := collect(grid, "s.xlsx")
	require.Len(t, got, 2)
	// unparseable date survives as literal text, unparseable amount is zero
	require.Equal(t, "inte ett datum", got[0].Date)
	require.Equal(t, "ej heller", got[0].BookedDate)
	require.True(t, got[0].Amount.IsZero())
	require.True(t, got[1].Amount.IsZero())
}

func TestCandidatesBlankSeparatorRowsSkipped(t *testing.T) {
	t.Parallel()

	grid := [][]string{
		{"Datum", "Bokfört"},
		{"", "", ""},
		{},
		{"2025-03-02", "", "REAL ROW", "", "SEK", "", "-1"},
		{"", "x", ""}, // col0 and col2 empty: still a separator
	}

	got := collect(grid, "s.xlsx")
	require.Len(t, got, 1)
	require.Equal(t, "REAL ROW", got[0].Description)
}

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "2025-01-31", normalizeDate("2025-01-31"))
	require.Equal(t, "2025-01-31", normalizeDate("2025-01-31 00:00:00"))
	require.Equal(t, "2025-01-31", normalizeDate("1/31/25"))
	require.Equal(t, "garbage", normalizeDate("garbage"))
	require.Equal(t, "", normalizeDate("  "))
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	require.True(t, parseAmount("-123.45").Equal(decimal.RequireFromString("-123.45")))
	require.True(t, parseAmount("-123,45").Equal(decimal.RequireFromString("-123.45")))
	require.True(t, parseAmount("1 234,56").Equal(decimal.RequireFromString("1234.56")))
	require.True(t, parseAmount("1,234.56").Equal(decimal.RequireFromString("1234.56")))
	require.True(t, parseAmount("").IsZero())
	require.True(t, parseAmount("n/a").IsZero())
}
