package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SnapshotRepository {
	t.Helper()
	repo, err := NewSnapshotRepository(filepath.Join(t.TempDir(), "moneta.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSnapshotRepository_LoadMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Load(context.Background())
	assert.True(t, errors.Is(err, domain.ErrSnapshotNotFound))
}

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	state := domain.NewAppState()
	state.BankAccounts = append(state.BankAccounts, domain.Account{
		ID:             1,
		Name:           "Checking",
		InitialBalance: decimal.NewFromFloat(1000.00),
	})
	state.MonthlyData["2026-08"] = &domain.MonthlyBudget{
		MonthlySalary: decimal.NewFromFloat(3000.00),
		Categories:    []domain.Category{{ID: 2, Name: "Food", Amount: decimal.NewFromFloat(500.00), Icon: "Food"}},
		Expenses:      []domain.Expense{{ID: 3, Description: "Coffee", Amount: decimal.NewFromFloat(4.50), Date: "2026-08-10", BankAccountID: 1, CategoryID: 2}},
	}

	require.NoError(t, repo.Save(context.Background(), state))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.BankAccounts, 1)
	assert.Equal(t, "Checking", loaded.BankAccounts[0].Name)
	require.NotNil(t, loaded.MonthlyData["2026-08"])
	assert.True(t, loaded.MonthlyData["2026-08"].MonthlySalary.Equal(decimal.NewFromFloat(3000.00)))
}

func TestSnapshotRepository_UpsertReplaces(t *testing.T) {
	repo := newTestRepo(t)

	first := domain.NewAppState()
	first.BankAccounts = append(first.BankAccounts, domain.Account{ID: 1, Name: "Old"})
	require.NoError(t, repo.Save(context.Background(), first))

	second := domain.NewAppState()
	second.BankAccounts = append(second.BankAccounts, domain.Account{ID: 2, Name: "New"})
	require.NoError(t, repo.Save(context.Background(), second))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.BankAccounts, 1)
	assert.Equal(t, "New", loaded.BankAccounts[0].Name)
}
