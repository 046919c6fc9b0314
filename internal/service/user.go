package service

import (
	"context"
	"fmt"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	userRepo repository.UserRepository
	actRepo  repository.ActivityLogRepository
}

func NewUserService(userRepo repository.UserRepository, actRepo repository.ActivityLogRepository) UserService {
	return &userService{userRepo: userRepo, actRepo: actRepo}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func validRole(role domain.UserRole) bool {
	switch role {
	case domain.UserRoleStudent, domain.UserRoleStaff, domain.UserRoleAdmin:
		return true
	}
	return false
}

func (s *userService) CreateUser(ctx context.Context, actorID int32, user *domain.User, password string) error {
	if user.Username == "" || user.Name == "" || password == "" {
		return fmt.Errorf("%w: username, nama and password are required", domain.ErrValidation)
	}
	if !validRole(user.Role) {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, user.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "tambah akun",
		Detail: fmt.Sprintf("membuat akun %s (%s)", user.Username, user.Role),
	})
	return nil
}

func (s *userService) UpdateUser(ctx context.Context, actorID int32, user *domain.User) error {
	if user.Name == "" {
		return fmt.Errorf("%w: nama is required", domain.ErrValidation)
	}
	if !validRole(user.Role) {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, user.Role)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "edit akun",
		Detail: fmt.Sprintf("mengubah akun #%d", user.ID),
	})
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, id int32) error {
	if id == actorID {
		return fmt.Errorf("%w: cannot delete own account", domain.ErrValidation)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: actorID,
		Action: "hapus akun",
		Detail: fmt.Sprintf("menghapus akun #%d", id),
	})
	return nil
}

func (s *userService) UpdateName(ctx context.Context, userID int32, name string) error {
	if name == "" {
		return fmt.Errorf("%w: nama is required", domain.ErrValidation)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Name = name
	return s.userRepo.Update(ctx, user)
}

func (s *userService) UpdatePassword(ctx context.Context, userID int32, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrValidation)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}
