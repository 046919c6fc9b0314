package service

import (
	"context"
	"fmt"
	"time"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/logger"
	"school-lending-backend/internal/repository"
	"school-lending-backend/internal/utils"
)

type fineService struct {
	fineRepo repository.FineRepository
	loanRepo repository.LoanRepository
	actRepo  repository.ActivityLogRepository
	schedule utils.FineSchedule
}

func NewFineService(
	fineRepo repository.FineRepository,
	loanRepo repository.LoanRepository,
	actRepo repository.ActivityLogRepository,
	schedule utils.FineSchedule,
) FineService {
	return &fineService{
		fineRepo: fineRepo,
		loanRepo: loanRepo,
		actRepo:  actRepo,
		schedule: schedule,
	}
}

func (s *fineService) GetFine(ctx context.Context, id int32) (*domain.Fine, error) {
	return s.fineRepo.GetByID(ctx, id)
}

func (s *fineService) ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Fine, error) {
	return s.fineRepo.ListByBorrower(ctx, borrowerID)
}

func (s *fineService) SummaryByBorrower(ctx context.Context, borrowerID int32) (*domain.FineSummary, error) {
	return s.fineRepo.SummaryByBorrower(ctx, borrowerID)
}

func (s *fineService) ListByPaymentStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Fine, error) {
	switch status {
	case domain.PaymentStatusUnpaid, domain.PaymentStatusPending, domain.PaymentStatusPaid:
	default:
		return nil, fmt.Errorf("%w: unknown status_pembayaran %q", domain.ErrValidation, status)
	}
	return s.fineRepo.ListByPaymentStatus(ctx, status)
}

// SubmitPayment marks the borrower's own fine as awaiting validation. A zero
// total is still payable; it closes the record the same way.
func (s *fineService) SubmitPayment(ctx context.Context, borrowerID, fineID int32) (*domain.Fine, error) {
	fine, err := s.fineRepo.GetByID(ctx, fineID)
	if err != nil {
		return nil, err
	}
	if fine.BorrowerID != borrowerID {
		return nil, fmt.Errorf("%w: fine belongs to another borrower", domain.ErrForbidden)
	}

	today := time.Now().Format("2006-01-02")
	if err := s.fineRepo.SubmitPayment(ctx, fineID, today); err != nil {
		return nil, err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: borrowerID,
		Action: "pembayaran denda",
		Detail: fmt.Sprintf("mengajukan pembayaran denda #%d sebesar Rp %d", fine.ID, fine.Total),
	})

	return s.fineRepo.GetByID(ctx, fineID)
}

func (s *fineService) ValidatePayment(ctx context.Context, staffID, fineID int32) (*domain.Fine, error) {
	if err := s.fineRepo.ValidatePayment(ctx, fineID, staffID); err != nil {
		return nil, err
	}

	fine, err := s.fineRepo.GetByID(ctx, fineID)
	if err != nil {
		return nil, err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: staffID,
		Action: "validasi pembayaran",
		Detail: fmt.Sprintf("memvalidasi pembayaran denda #%d sebesar Rp %d", fine.ID, fine.Total),
	})

	return fine, nil
}

// ApplyOverdueFines sweeps borrowed loans past deadline and upserts a
// provisional late-only fine per loan. Condition fees are only known at
// return validation, which overwrites these rows while they stay unpaid.
func (s *fineService) ApplyOverdueFines(ctx context.Context, asOf time.Time) (int, error) {
	asOfDate := asOf.Format("2006-01-02")
	loans, err := s.loanRepo.ListOverdue(ctx, asOfDate)
	if err != nil {
		return 0, err
	}

	today, err := utils.ParseDate(asOfDate)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, loan := range loans {
		if loan.Deadline == nil {
			continue
		}
		deadline, err := utils.ParseDate(*loan.Deadline)
		if err != nil {
			logger.Error("skipping loan with malformed deadline", "loan_id", loan.ID, "error", err)
			continue
		}

		b := utils.ComputeFine(deadline, today, domain.ItemConditionGood, s.schedule)
		if b.DaysLate == 0 {
			continue
		}

		fine := &domain.Fine{
			LoanID:        loan.ID,
			BorrowerID:    loan.BorrowerID,
			DaysLate:      b.DaysLate,
			LateFee:       b.LateFee,
			Total:         b.Total,
			PaymentStatus: domain.PaymentStatusUnpaid,
		}
		if err := s.fineRepo.UpsertProvisional(ctx, fine); err != nil {
			logger.Error("failed to upsert overdue fine", "loan_id", loan.ID, "error", err)
			continue
		}
		applied++
	}

	return applied, nil
}
