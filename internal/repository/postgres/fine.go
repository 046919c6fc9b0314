package postgres

import (
	"context"
	"database/sql"
	"errors"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository"
)

type fineRepository struct {
	db *sql.DB
}

func NewFineRepository(db *sql.DB) repository.FineRepository {
	return &fineRepository{db: db}
}

const fineColumns = `d.id, d.peminjaman_id, d.user_id, d.jumlah_hari_telat,
	d.denda_keterlambatan, d.denda_kerusakan, d.denda_hilang, d.total_denda,
	d.status_pembayaran, d.tanggal_pembayaran::text, d.validated_by,
	u.nama, k.nama, d.created_at`

const fineFrom = ` FROM denda d
	JOIN users u ON u.id = d.user_id
	JOIN peminjaman p ON p.id = d.peminjaman_id
	JOIN komoditas k ON k.id = p.komoditas_id`

func scanFine(s interface{ Scan(...any) error }, f *domain.Fine) error {
	return s.Scan(&f.ID, &f.LoanID, &f.BorrowerID, &f.DaysLate,
		&f.LateFee, &f.DamageFee, &f.LossFee, &f.Total,
		&f.PaymentStatus, &f.PaymentDate, &f.ValidatedBy,
		&f.BorrowerName, &f.ItemName, &f.CreatedOn)
}

func (r *fineRepository) GetByID(ctx context.Context, id int32) (*domain.Fine, error) {
	f := &domain.Fine{}
	query := `SELECT ` + fineColumns + fineFrom + ` WHERE d.id = $1`
	err := scanFine(r.db.QueryRowContext(ctx, query, id), f)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fineRepository) queryFines(ctx context.Context, query string, args ...any) ([]domain.Fine, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fines []domain.Fine
	for rows.Next() {
		var f domain.Fine
		if err := scanFine(rows, &f); err != nil {
			return nil, err
		}
		fines = append(fines, f)
	}
	return fines, rows.Err()
}

func (r *fineRepository) ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Fine, error) {
	query := `SELECT ` + fineColumns + fineFrom + ` WHERE d.user_id = $1 ORDER BY d.created_at DESC`
	return r.queryFines(ctx, query, borrowerID)
}

func (r *fineRepository) ListByPaymentStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Fine, error) {
	query := `SELECT ` + fineColumns + fineFrom + ` WHERE d.status_pembayaran = $1 ORDER BY d.created_at DESC`
	return r.queryFines(ctx, query, status)
}

func (r *fineRepository) SummaryByBorrower(ctx context.Context, borrowerID int32) (*domain.FineSummary, error) {
	s := &domain.FineSummary{}
	query := `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN status_pembayaran <> $2 THEN total_denda ELSE 0 END), 0),
		COUNT(*) FILTER (WHERE status_pembayaran = $3),
		COUNT(*) FILTER (WHERE status_pembayaran = $2),
		COUNT(*) FILTER (WHERE status_pembayaran = $4)
	FROM denda WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, borrowerID,
		domain.PaymentStatusPaid, domain.PaymentStatusUnpaid, domain.PaymentStatusPending).
		Scan(&s.TotalRecords, &s.TotalOutstanding, &s.UnpaidCount, &s.PaidCount, &s.PendingCount)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// SubmitPayment flips an unpaid fine to menunggu_validasi. The status guard in
// the WHERE clause rejects retries of an already submitted payment.
func (r *fineRepository) SubmitPayment(ctx context.Context, fineID int32, paymentDate string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE denda SET status_pembayaran=$1, tanggal_pembayaran=$2 WHERE id=$3 AND status_pembayaran=$4`,
		domain.PaymentStatusPending, paymentDate, fineID, domain.PaymentStatusUnpaid)
	if err != nil {
		return err
	}
	return r.mapZeroRows(ctx, res, fineID)
}

func (r *fineRepository) ValidatePayment(ctx context.Context, fineID, staffID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE denda SET status_pembayaran=$1, validated_by=$2 WHERE id=$3 AND status_pembayaran=$4`,
		domain.PaymentStatusPaid, staffID, fineID, domain.PaymentStatusPending)
	if err != nil {
		return err
	}
	return r.mapZeroRows(ctx, res, fineID)
}

// UpsertProvisional writes the nightly sweep's late-only estimate. The WHERE
// guard keeps it away from fines that already entered the payment flow, which
// makes repeated sweeps harmless.
func (r *fineRepository) UpsertProvisional(ctx context.Context, f *domain.Fine) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO denda (peminjaman_id, user_id, jumlah_hari_telat, denda_keterlambatan, denda_kerusakan, denda_hilang, total_denda, status_pembayaran, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		 ON CONFLICT (peminjaman_id) DO UPDATE
		 SET jumlah_hari_telat=EXCLUDED.jumlah_hari_telat,
		     denda_keterlambatan=EXCLUDED.denda_keterlambatan,
		     total_denda=EXCLUDED.denda_keterlambatan + denda.denda_kerusakan + denda.denda_hilang
		 WHERE denda.status_pembayaran=$8`,
		f.LoanID, f.BorrowerID, f.DaysLate, f.LateFee, f.DamageFee, f.LossFee, f.Total, domain.PaymentStatusUnpaid)
	return err
}

func (r *fineRepository) mapZeroRows(ctx context.Context, res sql.Result, fineID int32) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM denda WHERE id=$1)`, fineID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidState
	}
	return nil
}
