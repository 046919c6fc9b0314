package postgres

import (
	"database/sql"

	"school-lending-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ItemRepository
	repository.CategoryRepository
	repository.DepartmentRepository
	repository.LoanRepository
	repository.FineRepository
	repository.ActivityLogRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		ItemRepository:        NewItemRepository(db),
		CategoryRepository:    NewCategoryRepository(db),
		DepartmentRepository:  NewDepartmentRepository(db),
		LoanRepository:        NewLoanRepository(db),
		FineRepository:        NewFineRepository(db),
		ActivityLogRepository: NewActivityLogRepository(db),
	}
}
