package service

import (
	"context"
	"fmt"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/repository"
	"school-lending-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repository.UserRepository
	actRepo  repository.ActivityLogRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, actRepo repository.ActivityLogRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		actRepo:  actRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Do not leak whether the username exists.
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, "", err
	}

	_ = s.actRepo.Create(ctx, &domain.ActivityLog{
		UserID: user.ID,
		Action: "login",
		Detail: fmt.Sprintf("%s masuk ke sistem", user.Name),
	})

	return user, token, nil
}
