package service

import (
	"context"
	"time"

	"school-lending-backend/internal/domain"
)

type AuthService interface {
	// Login returns the authenticated user and a signed access token.
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
	CreateUser(ctx context.Context, actorID int32, user *domain.User, password string) error
	UpdateUser(ctx context.Context, actorID int32, user *domain.User) error
	DeleteUser(ctx context.Context, actorID, id int32) error
	UpdateName(ctx context.Context, userID int32, name string) error
	UpdatePassword(ctx context.Context, userID int32, oldPassword, newPassword string) error
}

type ItemService interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id int32) (*domain.Item, error)
	CreateItem(ctx context.Context, actorID int32, item *domain.Item) error
	UpdateItem(ctx context.Context, actorID int32, item *domain.Item) error
	DeleteItem(ctx context.Context, actorID, id int32) error
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, actorID int32, cat *domain.Category) error
	UpdateCategory(ctx context.Context, actorID int32, cat *domain.Category) error
	DeleteCategory(ctx context.Context, actorID, id int32) error
}

type DepartmentService interface {
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	CreateDepartment(ctx context.Context, actorID int32, dept *domain.Department) error
	UpdateDepartment(ctx context.Context, actorID int32, dept *domain.Department) error
	DeleteDepartment(ctx context.Context, actorID, id int32) error
}

type LoanService interface {
	RequestLoan(ctx context.Context, borrowerID, itemID, qty int32, loanDate string) (*domain.Loan, error)
	ApproveLoan(ctx context.Context, staffID, loanID int32, deadline string) (*domain.Loan, error)
	RequestReturn(ctx context.Context, borrowerID, loanID int32, returnDate, returnTime, note string) (*domain.Loan, error)
	ValidateReturn(ctx context.Context, staffID, loanID int32, returnDate, returnTime string, condition domain.ItemCondition) (*domain.Loan, *domain.Fine, error)
	GetLoan(ctx context.Context, id int32) (*domain.Loan, error)
	ListAll(ctx context.Context) ([]domain.Loan, error)
	ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Loan, error)
	ListActive(ctx context.Context) ([]domain.Loan, error)
	ListHistory(ctx context.Context) ([]domain.Loan, error)
	Report(ctx context.Context, from, to string) ([]domain.Loan, error)
}

type FineService interface {
	GetFine(ctx context.Context, id int32) (*domain.Fine, error)
	ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Fine, error)
	SummaryByBorrower(ctx context.Context, borrowerID int32) (*domain.FineSummary, error)
	ListByPaymentStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Fine, error)
	SubmitPayment(ctx context.Context, borrowerID, fineID int32) (*domain.Fine, error)
	ValidatePayment(ctx context.Context, staffID, fineID int32) (*domain.Fine, error)

	// ApplyOverdueFines upserts provisional late-only fines for every borrowed
	// loan past its deadline as of now. Safe to run repeatedly.
	ApplyOverdueFines(ctx context.Context, asOf time.Time) (int, error)
}

type ActivityService interface {
	List(ctx context.Context) ([]domain.ActivityLog, error)
	ListStaff(ctx context.Context) ([]domain.ActivityLog, error)
	PurgeStaff(ctx context.Context, actorID int32) (int64, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, email, name, itemName, deadline string, daysLate int32, estimatedFine int64) error
}
