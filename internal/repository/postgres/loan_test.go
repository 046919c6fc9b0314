package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository/postgres"
)

var loanListColumns = []string{
	"id", "komoditas_id", "user_id", "jumlah_pinjam", "tanggal_pinjam", "status",
	"deadline", "validated_by", "return_status", "tanggal_kembali", "jam_kembali",
	"catatan_kembali", "kondisi_barang", "return_validated_by",
	"komoditas_nama", "user_nama", "created_at", "updated_at",
}

func TestLoanRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("FreshLoanWithNullReturnColumns", func(t *testing.T) {
		mock.ExpectQuery("FROM peminjaman p").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows(loanListColumns).
				AddRow(10, 7, 2, 2, "2026-09-01", "menunggu",
					nil, nil, "", nil, nil, nil, nil, nil,
					"Proyektor", "Budi", "2026-09-01 10:00:00", "2026-09-01 10:00:00"))

		loan, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), loan.ID)
		assert.Equal(t, domain.LoanStatusRequested, loan.Status)
		assert.Empty(t, loan.ReturnNote)
		assert.Empty(t, loan.Condition)
		assert.Nil(t, loan.Deadline)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery("FROM peminjaman p").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(loanListColumns))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLoanRepository_Approve(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT komoditas_id, jumlah_pinjam FROM peminjaman").
			WithArgs(int32(10), "menunggu").
			WillReturnRows(sqlmock.NewRows([]string{"komoditas_id", "jumlah_pinjam"}).AddRow(7, 2))
		mock.ExpectExec("UPDATE komoditas SET jumlah_tersedia = jumlah_tersedia -").
			WithArgs(int32(2), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE peminjaman SET status=").
			WithArgs("dipinjam", "2026-09-10", int32(5), int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Approve(ctx, 10, 5, "2026-09-10")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientStockRollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT komoditas_id, jumlah_pinjam FROM peminjaman").
			WithArgs(int32(10), "menunggu").
			WillReturnRows(sqlmock.NewRows([]string{"komoditas_id", "jumlah_pinjam"}).AddRow(7, 2))
		mock.ExpectExec("UPDATE komoditas SET jumlah_tersedia = jumlah_tersedia -").
			WithArgs(int32(2), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Approve(ctx, 10, 5, "2026-09-10")
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyApproved", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT komoditas_id, jumlah_pinjam FROM peminjaman").
			WithArgs(int32(10), "menunggu").
			WillReturnRows(sqlmock.NewRows([]string{"komoditas_id", "jumlah_pinjam"}))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.Approve(ctx, 10, 5, "2026-09-10")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("MissingLoan", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT komoditas_id, jumlah_pinjam FROM peminjaman").
			WithArgs(int32(99), "menunggu").
			WillReturnRows(sqlmock.NewRows([]string{"komoditas_id", "jumlah_pinjam"}))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		err := repo.Approve(ctx, 99, 5, "2026-09-10")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLoanRepository_ValidateReturn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		fine := &domain.Fine{
			LoanID:        10,
			BorrowerID:    2,
			DaysLate:      3,
			LateFee:       15000,
			DamageFee:     25000,
			Total:         40000,
			PaymentStatus: domain.PaymentStatusUnpaid,
		}
		jam := "14:00"

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT komoditas_id, jumlah_pinjam FROM peminjaman").
			WithArgs(int32(10), "dipinjam").
			WillReturnRows(sqlmock.NewRows([]string{"komoditas_id", "jumlah_pinjam"}).AddRow(7, 2))
		mock.ExpectExec("UPDATE peminjaman").
			WithArgs("dikembalikan", "validated", "2026-09-13", &jam, "rusak", int32(5), int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE komoditas SET jumlah_tersedia = LEAST").
			WithArgs(int32(2), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO denda").
			WithArgs(int32(10), int32(2), int32(3), int64(15000), int64(25000), int64(0), int64(40000), "belum_dibayar").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
		mock.ExpectCommit()

		err := repo.ValidateReturn(ctx, 10, 5, "2026-09-13", &jam, domain.ItemConditionDamaged, fine)
		assert.NoError(t, err)
		assert.Equal(t, int32(4), fine.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	// A provisional fine that a borrower already submitted for payment is not
	// overwritten; the return completes against the existing row.
	t.Run("FineAlreadyInPaymentFlow", func(t *testing.T) {
		fine := &domain.Fine{
			LoanID:        10,
			BorrowerID:    2,
			DaysLate:      5,
			LateFee:       25000,
			Total:         25000,
			PaymentStatus: domain.PaymentStatusUnpaid,
		}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT komoditas_id, jumlah_pinjam FROM peminjaman").
			WithArgs(int32(10), "dipinjam").
			WillReturnRows(sqlmock.NewRows([]string{"komoditas_id", "jumlah_pinjam"}).AddRow(7, 2))
		mock.ExpectExec("UPDATE peminjaman").
			WithArgs("dikembalikan", "validated", "2026-09-15", nil, "baik", int32(5), int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE komoditas SET jumlah_tersedia = LEAST").
			WithArgs(int32(2), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO denda").
			WithArgs(int32(10), int32(2), int32(5), int64(25000), int64(0), int64(0), int64(25000), "belum_dibayar").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery("SELECT id, jumlah_hari_telat").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "jumlah_hari_telat", "denda_keterlambatan", "denda_kerusakan", "denda_hilang", "total_denda", "status_pembayaran"}).
				AddRow(4, 3, 15000, 0, 0, 15000, "menunggu_validasi"))
		mock.ExpectCommit()

		err := repo.ValidateReturn(ctx, 10, 5, "2026-09-15", nil, domain.ItemConditionGood, fine)
		assert.NoError(t, err)
		assert.Equal(t, int32(4), fine.ID)
		assert.Equal(t, domain.PaymentStatusPending, fine.PaymentStatus)
		assert.Equal(t, int64(15000), fine.Total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotBorrowed", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT komoditas_id, jumlah_pinjam FROM peminjaman").
			WithArgs(int32(10), "dipinjam").
			WillReturnRows(sqlmock.NewRows([]string{"komoditas_id", "jumlah_pinjam"}))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.ValidateReturn(ctx, 10, 5, "2026-09-13", nil, domain.ItemConditionGood, &domain.Fine{})
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestLoanRepository_RequestReturn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE peminjaman").
			WithArgs("pending", "2026-09-05", "10:30", "lensa kotor", int32(10), "dipinjam", "").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RequestReturn(ctx, 10, "2026-09-05", "10:30", "lensa kotor")
		assert.NoError(t, err)
	})

	t.Run("SecondRequestRejected", func(t *testing.T) {
		mock.ExpectExec("UPDATE peminjaman").
			WithArgs("pending", "2026-09-05", "10:30", "", int32(10), "dipinjam", "").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.RequestReturn(ctx, 10, "2026-09-05", "10:30", "")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}
