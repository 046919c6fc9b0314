package service

import (
	"context"
	"fmt"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository"
)

type categoryService struct {
	catRepo repository.CategoryRepository
	actRepo repository.ActivityLogRepository
}

func NewCategoryService(catRepo repository.CategoryRepository, actRepo repository.ActivityLogRepository) CategoryService {
	return &categoryService{catRepo: catRepo, actRepo: actRepo}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.catRepo.List(ctx)
}

func (s *categoryService) CreateCategory(ctx context.Context, actorID int32, cat *domain.Category) error {
	if cat.Name == "" {
		return fmt.Errorf("%w: nama is required", domain.ErrValidation)
	}
	if err := s.catRepo.Create(ctx, cat); err != nil {
		return err
	}
	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "tambah kategori",
		Detail: fmt.Sprintf("menambahkan kategori %s", cat.Name),
	})
	return nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, actorID int32, cat *domain.Category) error {
	if cat.Name == "" {
		return fmt.Errorf("%w: nama is required", domain.ErrValidation)
	}
	if err := s.catRepo.Update(ctx, cat); err != nil {
		return err
	}
	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "edit kategori",
		Detail: fmt.Sprintf("mengubah kategori %s", cat.Name),
	})
	return nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, actorID, id int32) error {
	if err := s.catRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "hapus kategori",
		Detail: fmt.Sprintf("menghapus kategori #%d", id),
	})
	return nil
}
