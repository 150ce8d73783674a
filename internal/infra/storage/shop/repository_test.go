package shop

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/pkg/dbmetrics"
	"github.com/khan47650/central-kitchen/pkg/types"
)

const shopID = "7f0b8a3e-1c2d-4e5f-8a9b-0c1d2e3f4a5b"

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Plain(db)), mock
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM shops WHERE id = $1")).
		WithArgs(shopID).
		WillReturnRows(sqlmock.NewRows(shopColumns).
			AddRow(shopID, "owner-1", "Taco Stand", "12 Main St", "tacos", now, now))

	mock.ExpectQuery(regexp.QuoteMeta("FROM shop_timings WHERE shop_id IN ($1)")).
		WithArgs(shopID).
		WillReturnRows(sqlmock.NewRows(timingColumns).
			AddRow(shopID, "Mon", true, "09:00:00", "17:00:00", true, "12:00:00", "13:00:00").
			AddRow(shopID, "Tue", false, nil, nil, false, nil, nil))

	shop, err := repo.GetByID(context.Background(), shopID)
	require.NoError(t, err)

	assert.Equal(t, "owner-1", shop.OwnerID)
	require.Len(t, shop.Timings, 7, "missing rows are filled as closed")
	assert.Equal(t, types.TimeString("09:00"), shop.Timings[domain.Mon].OpenTime)
	assert.Equal(t, types.TimeString("13:00"), shop.Timings[domain.Mon].BreakEnd)
	assert.False(t, shop.Timings[domain.Tue].Open)
	assert.True(t, shop.Timings[domain.Tue].OpenTime.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM shops WHERE id = $1")).
		WithArgs(shopID).
		WillReturnRows(sqlmock.NewRows(shopColumns))

	_, err := repo.GetByID(context.Background(), shopID)
	assert.ErrorIs(t, err, ErrShopNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE shops SET name = $1, address = $2, description = $3, updated_at = NOW() WHERE id = $4")).
		WithArgs("Taco Stand", "12 Main St", "tacos", shopID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shop_timings")).
		WillReturnResult(sqlmock.NewResult(0, 7))

	err := repo.Update(context.Background(), &domain.Shop{
		ID: shopID, Name: "Taco Stand", Address: "12 Main St", Description: "tacos",
		Timings: domain.NewTimetable(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shops WHERE id = $1")).
		WithArgs(shopID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), shopID), ErrShopNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "bogus"), ErrShopNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
