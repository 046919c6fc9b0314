package service

import (
	"context"
	"fmt"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository"
)

type itemService struct {
	itemRepo repository.ItemRepository
	actRepo  repository.ActivityLogRepository
}

func NewItemService(itemRepo repository.ItemRepository, actRepo repository.ActivityLogRepository) ItemService {
	return &itemService{itemRepo: itemRepo, actRepo: actRepo}
}

func (s *itemService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.itemRepo.List(ctx)
}

func (s *itemService) GetItem(ctx context.Context, id int32) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *itemService) CreateItem(ctx context.Context, actorID int32, item *domain.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: nama is required", domain.ErrValidation)
	}
	if item.TotalUnits < 0 {
		return fmt.Errorf("%w: jumlah_total must not be negative", domain.ErrValidation)
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "tambah komoditas",
		Detail: fmt.Sprintf("menambahkan %s (%d unit)", item.Name, item.TotalUnits),
	})
	return nil
}

func (s *itemService) UpdateItem(ctx context.Context, actorID int32, item *domain.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: nama is required", domain.ErrValidation)
	}
	if item.TotalUnits < 0 {
		return fmt.Errorf("%w: jumlah_total must not be negative", domain.ErrValidation)
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "edit komoditas",
		Detail: fmt.Sprintf("mengubah %s", item.Name),
	})
	return nil
}

func (s *itemService) DeleteItem(ctx context.Context, actorID, id int32) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "hapus komoditas",
		Detail: fmt.Sprintf("menghapus %s", item.Name),
	})
	return nil
}
