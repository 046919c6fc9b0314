package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `p.id, p.komoditas_id, p.user_id, p.jumlah_pinjam, p.tanggal_pinjam::text, p.status,
	p.deadline::text, p.validated_by, p.return_status, p.tanggal_kembali::text, p.jam_kembali::text,
	p.catatan_kembali, p.kondisi_barang, p.return_validated_by,
	k.nama, u.nama, p.created_at::text, p.updated_at::text`

const loanFrom = ` FROM peminjaman p
	JOIN komoditas k ON k.id = p.komoditas_id
	JOIN users u ON u.id = p.user_id`

func scanLoan(s interface{ Scan(...any) error }, l *domain.Loan) error {
	// catatan_kembali and kondisi_barang stay NULL until the return flow runs.
	var note, condition sql.NullString
	err := s.Scan(&l.ID, &l.ItemID, &l.BorrowerID, &l.Quantity, &l.LoanDate, &l.Status,
		&l.Deadline, &l.ValidatedBy, &l.ReturnStatus, &l.ReturnDate, &l.ReturnTime,
		&note, &condition, &l.ReturnValidatedBy,
		&l.ItemName, &l.BorrowerName, &l.CreatedOn, &l.UpdatedOn)
	if err != nil {
		return err
	}
	l.ReturnNote = note.String
	l.Condition = domain.ItemCondition(condition.String)
	return nil
}

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO peminjaman (komoditas_id, user_id, jumlah_pinjam, tanggal_pinjam, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, l.ItemID, l.BorrowerID, l.Quantity, l.LoanDate, l.Status, now, now).Scan(&l.ID)
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	l := &domain.Loan{}
	query := `SELECT ` + loanColumns + loanFrom + ` WHERE p.id = $1`
	err := scanLoan(r.db.QueryRowContext(ctx, query, id), l)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *loanRepository) queryLoans(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := scanLoan(rows, &l); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) List(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + loanFrom + ` ORDER BY p.created_at DESC`
	return r.queryLoans(ctx, query)
}

func (r *loanRepository) ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + loanFrom + ` WHERE p.user_id = $1 ORDER BY p.created_at DESC`
	return r.queryLoans(ctx, query, borrowerID)
}

// ListActive backs the hari-ini view: everything still in flight plus loans
// closed out today.
func (r *loanRepository) ListActive(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + loanFrom + `
		WHERE p.status IN ($1, $2)
		   OR (p.status = $3 AND p.updated_at::date = CURRENT_DATE)
		ORDER BY p.created_at DESC`
	return r.queryLoans(ctx, query, domain.LoanStatusRequested, domain.LoanStatusBorrowed, domain.LoanStatusReturned)
}

func (r *loanRepository) ListHistory(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + loanFrom + ` WHERE p.status = $1 ORDER BY p.updated_at DESC`
	return r.queryLoans(ctx, query, domain.LoanStatusReturned)
}

func (r *loanRepository) ListOverdue(ctx context.Context, asOf string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + loanFrom + `
		WHERE p.status = $1 AND p.deadline IS NOT NULL AND p.deadline < $2
		ORDER BY p.deadline`
	return r.queryLoans(ctx, query, domain.LoanStatusBorrowed, asOf)
}

func (r *loanRepository) Report(ctx context.Context, from, to string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + loanFrom + `
		WHERE p.tanggal_pinjam BETWEEN $1 AND $2
		ORDER BY p.tanggal_pinjam DESC`
	return r.queryLoans(ctx, query, from, to)
}

func (r *loanRepository) RequestReturn(ctx context.Context, loanID int32, returnDate, returnTime, note string) error {
	query := `UPDATE peminjaman
	          SET return_status=$1, tanggal_kembali=$2, jam_kembali=NULLIF($3,'')::time, catatan_kembali=$4, updated_at=NOW()
	          WHERE id=$5 AND status=$6 AND return_status=$7`
	res, err := r.db.ExecContext(ctx, query, domain.ReturnStatusPending, returnDate, returnTime, note, loanID, domain.LoanStatusBorrowed, domain.ReturnStatusNone)
	if err != nil {
		return err
	}
	return r.mapZeroRows(ctx, res, loanID)
}

// Approve moves a requested loan to dipinjam and reserves stock. Both writes
// commit together; a failed reservation rolls the status change back.
func (r *loanRepository) Approve(ctx context.Context, loanID, staffID int32, deadline string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var itemID, qty int32
	err = tx.QueryRowContext(ctx,
		`SELECT komoditas_id, jumlah_pinjam FROM peminjaman WHERE id=$1 AND status=$2 FOR UPDATE`,
		loanID, domain.LoanStatusRequested).Scan(&itemID, &qty)
	if errors.Is(err, sql.ErrNoRows) {
		return r.notFoundOrInvalidState(ctx, loanID)
	}
	if err != nil {
		return err
	}

	if err := reserveStock(ctx, tx, itemID, qty); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE peminjaman SET status=$1, deadline=$2, validated_by=$3, updated_at=NOW() WHERE id=$4`,
		domain.LoanStatusBorrowed, deadline, staffID, loanID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ValidateReturn closes out a dipinjam loan: marks it returned, releases the
// reserved units and records the fine, all in one transaction. The fine row is
// upserted because the overdue sweep may already have written a provisional
// one for this loan.
func (r *loanRepository) ValidateReturn(ctx context.Context, loanID, staffID int32, returnDate string, returnTime *string, condition domain.ItemCondition, fine *domain.Fine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var itemID, qty int32
	err = tx.QueryRowContext(ctx,
		`SELECT komoditas_id, jumlah_pinjam FROM peminjaman WHERE id=$1 AND status=$2 FOR UPDATE`,
		loanID, domain.LoanStatusBorrowed).Scan(&itemID, &qty)
	if errors.Is(err, sql.ErrNoRows) {
		return r.notFoundOrInvalidState(ctx, loanID)
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE peminjaman
		 SET status=$1, return_status=$2, tanggal_kembali=$3, jam_kembali=$4,
		     kondisi_barang=$5, return_validated_by=$6, updated_at=NOW()
		 WHERE id=$7`,
		domain.LoanStatusReturned, domain.ReturnStatusValidated, returnDate, returnTime, condition, staffID, loanID)
	if err != nil {
		return err
	}

	if err := releaseStock(ctx, tx, itemID, qty); err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO denda (peminjaman_id, user_id, jumlah_hari_telat, denda_keterlambatan, denda_kerusakan, denda_hilang, total_denda, status_pembayaran, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		 ON CONFLICT (peminjaman_id) DO UPDATE
		 SET jumlah_hari_telat=EXCLUDED.jumlah_hari_telat,
		     denda_keterlambatan=EXCLUDED.denda_keterlambatan,
		     denda_kerusakan=EXCLUDED.denda_kerusakan,
		     denda_hilang=EXCLUDED.denda_hilang,
		     total_denda=EXCLUDED.total_denda
		 WHERE denda.status_pembayaran=$8
		 RETURNING id`,
		loanID, fine.BorrowerID, fine.DaysLate, fine.LateFee, fine.DamageFee, fine.LossFee, fine.Total, domain.PaymentStatusUnpaid).Scan(&fine.ID)
	if errors.Is(err, sql.ErrNoRows) {
		// A provisional fine already entered the payment flow; that row stays
		// authoritative, the return still completes.
		err = tx.QueryRowContext(ctx,
			`SELECT id, jumlah_hari_telat, denda_keterlambatan, denda_kerusakan, denda_hilang, total_denda, status_pembayaran
			 FROM denda WHERE peminjaman_id=$1`,
			loanID).Scan(&fine.ID, &fine.DaysLate, &fine.LateFee, &fine.DamageFee, &fine.LossFee, &fine.Total, &fine.PaymentStatus)
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *loanRepository) mapZeroRows(ctx context.Context, res sql.Result, loanID int32) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.notFoundOrInvalidState(ctx, loanID)
	}
	return nil
}

// notFoundOrInvalidState tells a missing loan apart from one in the wrong state.
func (r *loanRepository) notFoundOrInvalidState(ctx context.Context, loanID int32) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM peminjaman WHERE id=$1)`, loanID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidState
}
