package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldbank/corebank/internal/domain"
	"github.com/veldbank/corebank/internal/usecase"
	"github.com/veldbank/corebank/internal/usecase/mocks"
)

func TestUserUseCase_CreateAndAuthenticate(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator())

	user, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "anna@example.com",
		Name:     "Anna",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Empty(t, user.HashedPassword, "hashed password must not leak")
	assert.True(t, user.Active)

	authed, err := uc.Authenticate(context.Background(), "anna@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = uc.Authenticate(context.Background(), "anna@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Authenticate(context.Background(), "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserUseCase_CreateUserDuplicateEmail(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.Seed(&domain.User{ID: "user-1", Email: "taken@example.com", Active: true})

	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator())

	_, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "taken@example.com",
		Password: "whatever1",
	})
	assert.Error(t, err)
}

func TestUserUseCase_AuthenticateInactiveUser(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator())

	user, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "gone@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	stored, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	stored.Active = false

	_, err = uc.Authenticate(context.Background(), "gone@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserUseCase_GetUser(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.Seed(&domain.User{ID: "user-1", Email: "anna@example.com", HashedPassword: "hash", Active: true})

	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator())

	user, err := uc.GetUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, user.HashedPassword)

	_, err = uc.GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
