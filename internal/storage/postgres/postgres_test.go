package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceGo/storefront/internal/storage"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
)

var _ storage.Store = (*Store)(nil)

func setupMock(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return New(mock), mock
}

func TestStore_EnsureSchema(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectExec(schemaSQL).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, s.EnsureSchema(context.Background()))
}

func TestStore_Get(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectQuery(selectSQL).
		WithArgs(storage.CartKey).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`[{"id":1}]`))

	v, ok, err := s.Get(context.Background(), storage.CartKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)
}

func TestStore_GetMissing(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectQuery(selectSQL).
		WithArgs(storage.WishlistKey).
		WillReturnError(pgx.ErrNoRows)

	v, ok, err := s.Get(context.Background(), storage.WishlistKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestStore_GetError(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectQuery(selectSQL).
		WithArgs("k").
		WillReturnError(errors.New("connection reset"))

	_, ok, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "select k")
}

func TestStore_Set(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectExec(upsertSQL).
		WithArgs(storage.CartKey, "[]").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.Set(context.Background(), storage.CartKey, "[]"))
}

func TestStore_SetError(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectExec(upsertSQL).
		WithArgs("k", "v").
		WillReturnError(errors.New("read-only transaction"))

	err := s.Set(context.Background(), "k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert k")
}

func TestStore_Ping(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectPing()

	assert.NoError(t, s.Ping(context.Background()))
}
