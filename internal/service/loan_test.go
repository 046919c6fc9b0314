package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/service"
	"school-lending-backend/internal/utils"
)

var testSchedule = utils.FineSchedule{
	PerDayRupiah:     5000,
	FlatDamageRupiah: 25000,
	FlatLossRupiah:   100000,
}

func newLoanService(loanRepo *MockLoanRepo, itemRepo *MockItemRepo, actRepo *MockActivityRepo) service.LoanService {
	return service.NewLoanService(loanRepo, itemRepo, actRepo, testSchedule)
}

func TestLoanService_RequestLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		itemRepo := new(MockItemRepo)
		actRepo := new(MockActivityRepo)
		svc := newLoanService(loanRepo, itemRepo, actRepo)

		itemRepo.On("GetByID", ctx, int32(7)).Return(&domain.Item{ID: 7, Name: "Proyektor", TotalUnits: 5, AvailableUnits: 3}, nil).Once()
		loanRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.Loan) bool {
			return l.ItemID == 7 && l.BorrowerID == 2 && l.Quantity == 2 &&
				l.Status == domain.LoanStatusRequested && l.LoanDate == "2026-09-01"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Loan).ID = 10
		}).Return(nil).Once()
		actRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		loanRepo.On("GetByID", ctx, int32(10)).Return(&domain.Loan{ID: 10, Status: domain.LoanStatusRequested}, nil).Once()

		loan, err := svc.RequestLoan(ctx, 2, 7, 2, "2026-09-01")
		assert.NoError(t, err)
		assert.Equal(t, int32(10), loan.ID)
		loanRepo.AssertExpectations(t)
		itemRepo.AssertExpectations(t)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		itemRepo := new(MockItemRepo)
		svc := newLoanService(loanRepo, itemRepo, new(MockActivityRepo))

		itemRepo.On("GetByID", ctx, int32(7)).Return(&domain.Item{ID: 7, Name: "Proyektor", TotalUnits: 5, AvailableUnits: 1}, nil).Once()

		_, err := svc.RequestLoan(ctx, 2, 7, 2, "2026-09-01")
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("NonPositiveQuantity", func(t *testing.T) {
		svc := newLoanService(new(MockLoanRepo), new(MockItemRepo), new(MockActivityRepo))

		_, err := svc.RequestLoan(ctx, 2, 7, 0, "2026-09-01")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		svc := newLoanService(new(MockLoanRepo), itemRepo, new(MockActivityRepo))

		itemRepo.On("GetByID", ctx, int32(99)).Return(nil, domain.ErrNotFound).Once()

		_, err := svc.RequestLoan(ctx, 2, 99, 1, "2026-09-01")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLoanService_ApproveLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		actRepo := new(MockActivityRepo)
		svc := newLoanService(loanRepo, new(MockItemRepo), actRepo)

		deadline := "2026-09-10"
		loanRepo.On("Approve", ctx, int32(10), int32(5), deadline).Return(nil).Once()
		loanRepo.On("GetByID", ctx, int32(10)).Return(&domain.Loan{
			ID: 10, Status: domain.LoanStatusBorrowed, Deadline: &deadline, ItemName: "Proyektor",
		}, nil).Once()
		actRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		loan, err := svc.ApproveLoan(ctx, 5, 10, deadline)
		assert.NoError(t, err)
		assert.Equal(t, domain.LoanStatusBorrowed, loan.Status)
		loanRepo.AssertExpectations(t)
	})

	t.Run("SecondApprovalRejected", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		svc := newLoanService(loanRepo, new(MockItemRepo), new(MockActivityRepo))

		loanRepo.On("Approve", ctx, int32(10), int32(5), "2026-09-10").Return(domain.ErrInvalidState).Once()

		_, err := svc.ApproveLoan(ctx, 5, 10, "2026-09-10")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("MissingDeadline", func(t *testing.T) {
		svc := newLoanService(new(MockLoanRepo), new(MockItemRepo), new(MockActivityRepo))

		_, err := svc.ApproveLoan(ctx, 5, 10, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("MalformedDeadline", func(t *testing.T) {
		svc := newLoanService(new(MockLoanRepo), new(MockItemRepo), new(MockActivityRepo))

		_, err := svc.ApproveLoan(ctx, 5, 10, "10-09-2026")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLoanService_RequestReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		actRepo := new(MockActivityRepo)
		svc := newLoanService(loanRepo, new(MockItemRepo), actRepo)

		loanRepo.On("GetByID", ctx, int32(10)).Return(&domain.Loan{ID: 10, BorrowerID: 2, Status: domain.LoanStatusBorrowed}, nil).Twice()
		loanRepo.On("RequestReturn", ctx, int32(10), "2026-09-05", "10:30", "lensa kotor").Return(nil).Once()
		actRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.RequestReturn(ctx, 2, 10, "2026-09-05", "10:30", "lensa kotor")
		assert.NoError(t, err)
		loanRepo.AssertExpectations(t)
	})

	t.Run("OtherBorrowersLoan", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		svc := newLoanService(loanRepo, new(MockItemRepo), new(MockActivityRepo))

		loanRepo.On("GetByID", ctx, int32(10)).Return(&domain.Loan{ID: 10, BorrowerID: 3, Status: domain.LoanStatusBorrowed}, nil).Once()

		_, err := svc.RequestReturn(ctx, 2, 10, "2026-09-05", "", "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		loanRepo.AssertNotCalled(t, "RequestReturn", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLoanService_ValidateReturn(t *testing.T) {
	ctx := context.Background()
	deadline := "2026-09-10"

	borrowed := func() *domain.Loan {
		return &domain.Loan{ID: 10, BorrowerID: 2, Status: domain.LoanStatusBorrowed, Deadline: &deadline, ItemName: "Proyektor"}
	}

	t.Run("OnTimeGoodCondition", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		actRepo := new(MockActivityRepo)
		svc := newLoanService(loanRepo, new(MockItemRepo), actRepo)

		loanRepo.On("GetByID", ctx, int32(10)).Return(borrowed(), nil).Once()
		loanRepo.On("ValidateReturn", ctx, int32(10), int32(5), "2026-09-10", (*string)(nil), domain.ItemConditionGood,
			mock.MatchedBy(func(f *domain.Fine) bool {
				return f.DaysLate == 0 && f.Total == 0 && f.PaymentStatus == domain.PaymentStatusUnpaid
			})).Return(nil).Once()
		actRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		loanRepo.On("GetByID", ctx, int32(10)).Return(&domain.Loan{ID: 10, Status: domain.LoanStatusReturned}, nil).Once()

		loan, fine, err := svc.ValidateReturn(ctx, 5, 10, "2026-09-10", "", domain.ItemConditionGood)
		assert.NoError(t, err)
		assert.Equal(t, domain.LoanStatusReturned, loan.Status)
		assert.Equal(t, int64(0), fine.Total)
		loanRepo.AssertExpectations(t)
	})

	t.Run("LateAndDamaged", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		actRepo := new(MockActivityRepo)
		svc := newLoanService(loanRepo, new(MockItemRepo), actRepo)

		jam := "14:00"
		loanRepo.On("GetByID", ctx, int32(10)).Return(borrowed(), nil).Once()
		loanRepo.On("ValidateReturn", ctx, int32(10), int32(5), "2026-09-13", &jam, domain.ItemConditionDamaged,
			mock.MatchedBy(func(f *domain.Fine) bool {
				return f.DaysLate == 3 && f.LateFee == 15000 && f.DamageFee == 25000 && f.Total == 40000
			})).Return(nil).Once()
		actRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		loanRepo.On("GetByID", ctx, int32(10)).Return(&domain.Loan{ID: 10, Status: domain.LoanStatusReturned}, nil).Once()

		_, fine, err := svc.ValidateReturn(ctx, 5, 10, "2026-09-13", jam, domain.ItemConditionDamaged)
		assert.NoError(t, err)
		assert.Equal(t, int64(40000), fine.Total)
	})

	t.Run("AlreadyReturned", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		svc := newLoanService(loanRepo, new(MockItemRepo), new(MockActivityRepo))

		returned := borrowed()
		returned.Status = domain.LoanStatusReturned
		loanRepo.On("GetByID", ctx, int32(10)).Return(returned, nil).Once()

		_, _, err := svc.ValidateReturn(ctx, 5, 10, "2026-09-10", "", domain.ItemConditionGood)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("UnknownCondition", func(t *testing.T) {
		svc := newLoanService(new(MockLoanRepo), new(MockItemRepo), new(MockActivityRepo))

		_, _, err := svc.ValidateReturn(ctx, 5, 10, "2026-09-10", "", domain.ItemCondition("meledak"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
