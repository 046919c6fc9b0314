package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository"
)

type departmentRepository struct {
	db *sql.DB
}

func NewDepartmentRepository(db *sql.DB) repository.DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, d *domain.Department) error {
	query := `INSERT INTO jurusan (nama, deskripsi, created_at) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, d.Name, d.Description, time.Now()).Scan(&d.ID)
}

func (r *departmentRepository) GetByID(ctx context.Context, id int32) (*domain.Department, error) {
	d := &domain.Department{}
	query := `SELECT id, nama, deskripsi, created_at::text FROM jurusan WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *departmentRepository) Update(ctx context.Context, d *domain.Department) error {
	res, err := r.db.ExecContext(ctx, `UPDATE jurusan SET nama=$1, deskripsi=$2 WHERE id=$3`, d.Name, d.Description, d.ID)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *departmentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jurusan WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nama, deskripsi, created_at::text FROM jurusan ORDER BY nama`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var depts []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedOn); err != nil {
			return nil, err
		}
		depts = append(depts, d)
	}
	return depts, rows.Err()
}
