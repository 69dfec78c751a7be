package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
)

func newTestRepo(t *testing.T) *BillRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "bills.bolt"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestBillRepository_CreateGetUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Bill{ID: "k1", Email: "a@a", Status: entity.BillStatusPending}))

	got, err := repo.GetByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "a@a", got.Email)

	updated, err := repo.Update(ctx, "k1", func(b *entity.Bill) error {
		b.Name = "encore"
		b.Amount = 400
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "encore", updated.Name)

	got, err = repo.GetByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, 400, got.Amount)
}

func TestBillRepository_DuplicateID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Bill{ID: "k1"}))
	assert.Error(t, repo.Create(ctx, &entity.Bill{ID: "k1"}))
}

func TestBillRepository_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, port.ErrBillNotFound)

	_, err = repo.Update(ctx, "missing", func(*entity.Bill) error { return nil })
	assert.ErrorIs(t, err, port.ErrBillNotFound)
}

func TestBillRepository_ListKeepsInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, id := range []string{"z", "a", "m"} {
		email := "a@a"
		if id == "a" {
			email = "b@b"
		}
		require.NoError(t, repo.Create(ctx, &entity.Bill{ID: id, Email: email}))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"z", "a", "m"}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := repo.ListByEmail(ctx, "a@a")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "m", mine[1].ID)
}
