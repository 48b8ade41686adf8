package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreateAndEnsure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewCategoryRepo(newTestDB(t))

	require.NoError(t, repo.Create(ctx, "Groceries"))

	err := repo.Create(ctx, "Groceries")
	require.Error(t, err)
	require.True(t, IsUniqueViolation(err))

	// Ensure is idempotent
	require.NoError(t, repo.Ensure(ctx, "Groceries"))
	require.NoError(t, repo.Ensure(ctx, "Transport"))
	require.NoError(t, repo.Ensure(ctx, "Transport"))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Groceries", "Transport"}, names)

	ok, err := repo.Exists(ctx, "Transport")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.Exists(ctx, "groceries") // identity is case-sensitive
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRuleListOrderedPreservesInsertionOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRuleRepo(db)

	keywords := []string{"ZARA", "ICA", "MAXI ICA", "BOLT"}
	for _, kw := range keywords {
		_, err := db.ExecContext(ctx,
			`INSERT INTO category_rules(id, keyword, category) VALUES (?, ?, ?)`,
			uuid.NewString(), kw, "X")
		require.NoError(t, err)
	}

	rules, err := repo.ListOrdered(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 4)
	for i, kw := range keywords {
		require.Equal(t, kw, rules[i].Keyword)
	}

	got, err := repo.ByKeyword(ctx, "MAXI ICA")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "X", got.Category)

	missing, err := repo.ByKeyword(ctx, "NOPE")
	require.NoError(t, err)
	require.Nil(t, missing)
}
