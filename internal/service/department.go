package service

import (
	"context"
	"fmt"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository"
)

type departmentService struct {
	deptRepo repository.DepartmentRepository
	actRepo  repository.ActivityLogRepository
}

func NewDepartmentService(deptRepo repository.DepartmentRepository, actRepo repository.ActivityLogRepository) DepartmentService {
	return &departmentService{deptRepo: deptRepo, actRepo: actRepo}
}

func (s *departmentService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.deptRepo.List(ctx)
}

func (s *departmentService) CreateDepartment(ctx context.Context, actorID int32, dept *domain.Department) error {
	if dept.Name == "" {
		return fmt.Errorf("%w: nama is required", domain.ErrValidation)
	}
	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return err
	}
	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "tambah jurusan",
		Detail: fmt.Sprintf("menambahkan jurusan %s", dept.Name),
	})
	return nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, actorID int32, dept *domain.Department) error {
	if dept.Name == "" {
		return fmt.Errorf("%w: nama is required", domain.ErrValidation)
	}
	if err := s.deptRepo.Update(ctx, dept); err != nil {
		return err
	}
	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "edit jurusan",
		Detail: fmt.Sprintf("mengubah jurusan %s", dept.Name),
	})
	return nil
}

func (s *departmentService) DeleteDepartment(ctx context.Context, actorID, id int32) error {
	if err := s.deptRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "hapus jurusan",
		Detail: fmt.Sprintf("menghapus jurusan #%d", id),
	})
	return nil
}
