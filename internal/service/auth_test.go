package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/service"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.DefaultCost)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		actRepo := new(MockActivityRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(userRepo, actRepo, tokens)

		userRepo.On("GetByUsername", ctx, "budi").Return(&domain.User{
			ID: 2, Username: "budi", Name: "Budi", Role: domain.UserRoleStudent, PasswordHash: string(hash),
		}, nil).Once()
		tokens.On("GenerateAccessToken", int32(2), "budi", "siswa").Return("signed-token", nil).Once()
		actRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, token, err := svc.Login(ctx, "budi", "rahasia123")
		assert.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, int32(2), user.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, new(MockActivityRepo), new(MockTokenManager))

		userRepo.On("GetByUsername", ctx, "budi").Return(&domain.User{
			ID: 2, Username: "budi", PasswordHash: string(hash),
		}, nil).Once()

		_, _, err := svc.Login(ctx, "budi", "salah")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, new(MockActivityRepo), new(MockTokenManager))

		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound).Once()

		_, _, err := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepo), new(MockActivityRepo), new(MockTokenManager))

		_, _, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
