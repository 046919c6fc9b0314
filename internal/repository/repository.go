package repository

import (
	"context"

	"school-lending-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int32, passwordHash string) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.User, error)
}

// ItemRepository also carries the inventory ledger contract: Reserve and
// Release are the only stock mutators. Item edits never touch jumlah_tersedia.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Item, error)

	// Reserve decrements available units, failing with domain.ErrInsufficientStock
	// when qty exceeds availability. Release increments, clamped at total units.
	Reserve(ctx context.Context, itemID, qty int32) error
	Release(ctx context.Context, itemID, qty int32) error
}

type CategoryRepository interface {
	Create(ctx context.Context, cat *domain.Category) error
	GetByID(ctx context.Context, id int32) (*domain.Category, error)
	Update(ctx context.Context, cat *domain.Category) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Category, error)
}

type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int32) (*domain.Department, error)
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Department, error)
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	List(ctx context.Context) ([]domain.Loan, error)
	ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Loan, error)
	ListActive(ctx context.Context) ([]domain.Loan, error)
	ListHistory(ctx context.Context) ([]domain.Loan, error)
	ListOverdue(ctx context.Context, asOf string) ([]domain.Loan, error)
	Report(ctx context.Context, from, to string) ([]domain.Loan, error)
	RequestReturn(ctx context.Context, loanID int32, returnDate, returnTime, note string) error

	// Approve and ValidateReturn combine the loan status write with the
	// inventory mutation (and fine insert) in a single transaction.
	Approve(ctx context.Context, loanID, staffID int32, deadline string) error
	ValidateReturn(ctx context.Context, loanID, staffID int32, returnDate string, returnTime *string, condition domain.ItemCondition, fine *domain.Fine) error
}

type FineRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Fine, error)
	ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Fine, error)
	SummaryByBorrower(ctx context.Context, borrowerID int32) (*domain.FineSummary, error)
	ListByPaymentStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Fine, error)
	SubmitPayment(ctx context.Context, fineID int32, paymentDate string) error
	ValidatePayment(ctx context.Context, fineID, staffID int32) error

	// UpsertProvisional creates or refreshes the per-loan fine row for the
	// overdue sweep. Rows already in the payment flow are left untouched.
	UpsertProvisional(ctx context.Context, fine *domain.Fine) error
}

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context) ([]domain.ActivityLog, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.ActivityLog, error)
	DeleteByRole(ctx context.Context, role domain.UserRole) (int64, error)
}
