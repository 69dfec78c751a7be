package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/pkg/database"
)

func newTestRepo(t *testing.T) *BillRepository {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.New(database.Config{
		Path:         filepath.Join(t.TempDir(), "bills.db"),
		MaxOpenConns: 1,
	}, logger)
	require.NoError(t, err)
	require.NoError(t, database.NewMigrator(db, logger).RunMigrations(database.EmbeddedMigrations()))

	repo := NewBillRepository(NewDB(db.DB, logger), logger)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestBillRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bill := &entity.Bill{
		ID:       "k1",
		Email:    "a@a",
		FileURL:  "http://localhost/receipts/k1.png",
		FileName: "file.png",
		Status:   entity.BillStatusPending,
	}
	require.NoError(t, repo.Create(ctx, bill))

	got, err := repo.GetByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, bill, got)
}

func TestBillRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, port.ErrBillNotFound)
}

func TestBillRepository_ListKeepsInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, b := range []entity.Bill{
		{ID: "z", Email: "a@a", Date: "2001-01-01"},
		{ID: "a", Email: "b@b", Date: "2004-04-04"},
		{ID: "m", Email: "a@a", Date: "2003-03-03"},
	} {
		b := b
		require.NoError(t, repo.Create(ctx, &b))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "z", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "m", all[2].ID)

	mine, err := repo.ListByEmail(ctx, "a@a")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "z", mine[0].ID)
	assert.Equal(t, "m", mine[1].ID)

	none, err := repo.ListByEmail(ctx, "nobody@test")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBillRepository_Update(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Bill{ID: "k1", Email: "a@a", Status: entity.BillStatusPending}))

	updated, err := repo.Update(ctx, "k1", func(b *entity.Bill) error {
		b.Type = "Transports"
		b.Amount = 120
		b.Date = "2004-04-04"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Transports", updated.Type)

	got, err := repo.GetByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, 120, got.Amount)
	assert.Equal(t, "2004-04-04", got.Date)
}

func TestBillRepository_Update_AbortKeepsRow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Bill{ID: "k1", Email: "a@a", Amount: 10}))

	abort := errors.New("abort")
	_, err := repo.Update(ctx, "k1", func(b *entity.Bill) error {
		b.Amount = 999
		return abort
	})
	assert.ErrorIs(t, err, abort)

	got, err := repo.GetByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Amount)
}

func TestBillRepository_Update_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Update(context.Background(), "missing", func(b *entity.Bill) error { return nil })
	assert.ErrorIs(t, err, port.ErrBillNotFound)
}
