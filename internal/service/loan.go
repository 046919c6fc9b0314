package service

import (
	"context"
	"fmt"
	"time"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository"
	"school-lending-backend/internal/utils"
)

type loanService struct {
	loanRepo repository.LoanRepository
	itemRepo repository.ItemRepository
	actRepo  repository.ActivityLogRepository
	schedule utils.FineSchedule
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	itemRepo repository.ItemRepository,
	actRepo repository.ActivityLogRepository,
	schedule utils.FineSchedule,
) LoanService {
	return &loanService{
		loanRepo: loanRepo,
		itemRepo: itemRepo,
		actRepo:  actRepo,
		schedule: schedule,
	}
}

// RequestLoan creates a menunggu loan. Stock is only checked here, not
// reserved; the hold becomes binding at approval.
func (s *loanService) RequestLoan(ctx context.Context, borrowerID, itemID, qty int32, loanDate string) (*domain.Loan, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: jumlah_pinjam must be positive", domain.ErrValidation)
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if qty > item.AvailableUnits {
		return nil, fmt.Errorf("%w: requested %d of %q, only %d available", domain.ErrInsufficientStock, qty, item.Name, item.AvailableUnits)
	}

	if loanDate == "" {
		loanDate = time.Now().Format("2006-01-02")
	} else if _, err := utils.ParseDate(loanDate); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	loan := &domain.Loan{
		ItemID:     itemID,
		BorrowerID: borrowerID,
		Quantity:   qty,
		LoanDate:   loanDate,
		Status:     domain.LoanStatusRequested,
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: borrowerID,
		Action: "pengajuan peminjaman",
		Detail: fmt.Sprintf("mengajukan peminjaman %s (%d unit)", item.Name, qty),
	})

	return s.loanRepo.GetByID(ctx, loan.ID)
}

// ApproveLoan moves a requested loan to dipinjam, stamps the staff-chosen
// deadline and reserves stock atomically.
func (s *loanService) ApproveLoan(ctx context.Context, staffID, loanID int32, deadline string) (*domain.Loan, error) {
	if deadline == "" {
		return nil, fmt.Errorf("%w: deadline is required", domain.ErrValidation)
	}
	if _, err := utils.ParseDate(deadline); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.loanRepo.Approve(ctx, loanID, staffID, deadline); err != nil {
		return nil, err
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: staffID,
		Action: "validasi peminjaman",
		Detail: fmt.Sprintf("menyetujui peminjaman #%d (%s), deadline %s", loan.ID, loan.ItemName, deadline),
	})

	return loan, nil
}

func (s *loanService) RequestReturn(ctx context.Context, borrowerID, loanID int32, returnDate, returnTime, note string) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.BorrowerID != borrowerID {
		return nil, fmt.Errorf("%w: loan belongs to another borrower", domain.ErrForbidden)
	}

	if returnDate == "" {
		returnDate = time.Now().Format("2006-01-02")
	} else if _, err := utils.ParseDate(returnDate); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.loanRepo.RequestReturn(ctx, loanID, returnDate, returnTime, note); err != nil {
		return nil, err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: borrowerID,
		Action: "pengajuan pengembalian",
		Detail: fmt.Sprintf("mengajukan pengembalian peminjaman #%d (%s)", loan.ID, loan.ItemName),
	})

	return s.loanRepo.GetByID(ctx, loanID)
}

// ValidateReturn closes a loan out. It accepts both entry paths: a borrower
// request (return_status pending) or a direct staff validation straight from
// dipinjam. The fine is computed exactly once here and persisted in the same
// transaction that releases the stock.
func (s *loanService) ValidateReturn(ctx context.Context, staffID, loanID int32, returnDate, returnTime string, condition domain.ItemCondition) (*domain.Loan, *domain.Fine, error) {
	switch condition {
	case domain.ItemConditionGood, domain.ItemConditionDamaged, domain.ItemConditionLost:
	default:
		return nil, nil, fmt.Errorf("%w: kondisi_barang must be baik, rusak or hilang", domain.ErrValidation)
	}
	if returnDate == "" {
		return nil, nil, fmt.Errorf("%w: tanggal_kembali is required", domain.ErrValidation)
	}
	actual, err := utils.ParseDate(returnDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	if loan.Status != domain.LoanStatusBorrowed {
		return nil, nil, fmt.Errorf("%w: loan is %s", domain.ErrInvalidState, loan.Status)
	}
	if loan.Deadline == nil {
		return nil, nil, fmt.Errorf("%w: loan has no deadline", domain.ErrInvalidState)
	}
	deadline, err := utils.ParseDate(*loan.Deadline)
	if err != nil {
		return nil, nil, err
	}

	breakdown := utils.ComputeFine(deadline, actual, condition, s.schedule)
	fine := &domain.Fine{
		LoanID:        loanID,
		BorrowerID:    loan.BorrowerID,
		DaysLate:      breakdown.DaysLate,
		LateFee:       breakdown.LateFee,
		DamageFee:     breakdown.DamageFee,
		LossFee:       breakdown.LossFee,
		Total:         breakdown.Total,
		PaymentStatus: domain.PaymentStatusUnpaid,
	}

	var timePtr *string
	if returnTime != "" {
		timePtr = &returnTime
	}
	if err := s.loanRepo.ValidateReturn(ctx, loanID, staffID, returnDate, timePtr, condition, fine); err != nil {
		return nil, nil, err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: staffID,
		Action: "validasi pengembalian",
		Detail: fmt.Sprintf("memvalidasi pengembalian #%d (%s), kondisi %s, denda Rp %d", loan.ID, loan.ItemName, condition, fine.Total),
	})

	updated, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	return updated, fine, nil
}

func (s *loanService) GetLoan(ctx context.Context, id int32) (*domain.Loan, error) {
	return s.loanRepo.GetByID(ctx, id)
}

func (s *loanService) ListAll(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.List(ctx)
}

func (s *loanService) ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Loan, error) {
	return s.loanRepo.ListByBorrower(ctx, borrowerID)
}

func (s *loanService) ListActive(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.ListActive(ctx)
}

func (s *loanService) ListHistory(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.ListHistory(ctx)
}

func (s *loanService) Report(ctx context.Context, from, to string) ([]domain.Loan, error) {
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: report range requires from and to dates", domain.ErrValidation)
	}
	if _, err := utils.ParseDate(from); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if _, err := utils.ParseDate(to); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.loanRepo.Report(ctx, from, to)
}
