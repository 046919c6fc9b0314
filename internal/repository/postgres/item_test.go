package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository/postgres"
)

func TestItemRepository_Reserve(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewItemRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE komoditas SET jumlah_tersedia = jumlah_tersedia -").
			WithArgs(int32(2), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Reserve(ctx, 7, 2)
		assert.NoError(t, err)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		mock.ExpectExec("UPDATE komoditas SET jumlah_tersedia = jumlah_tersedia -").
			WithArgs(int32(5), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Reserve(ctx, 7, 5)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})
}

func TestItemRepository_Release(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewItemRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE komoditas SET jumlah_tersedia = LEAST").
		WithArgs(int32(2), int32(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Release(ctx, 7, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
