package service

import (
	"context"
	"fmt"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository"
)

type activityService struct {
	actRepo repository.ActivityLogRepository
}

func NewActivityService(actRepo repository.ActivityLogRepository) ActivityService {
	return &activityService{actRepo: actRepo}
}

func (s *activityService) List(ctx context.Context) ([]domain.ActivityLog, error) {
	return s.actRepo.List(ctx)
}

func (s *activityService) ListStaff(ctx context.Context) ([]domain.ActivityLog, error) {
	return s.actRepo.ListByRole(ctx, domain.UserRoleStaff)
}

// PurgeStaff wipes the petugas-scoped log. The purge itself is recorded so
// the admin trail survives.
func (s *activityService) PurgeStaff(ctx context.Context, actorID int32) (int64, error) {
	deleted, err := s.actRepo.DeleteByRole(ctx, domain.UserRoleStaff)
	if err != nil {
		return 0, err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "hapus log petugas",
		Detail: fmt.Sprintf("menghapus %d entri log aktivitas petugas", deleted),
	})

	return deleted, nil
}
