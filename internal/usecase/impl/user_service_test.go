package impl

import (
	"context"
	"testing"

	"habitat/internal/domain/entity"
	domainerrors "habitat/internal/domain/errors"
	"habitat/internal/domain/repository"
	mockRepo "habitat/internal/mocks/repository"
	mockSvc "habitat/internal/mocks/service"
	"habitat/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceFixtures struct {
	service  usecase.UserUsecase
	userRepo *mockRepo.MockUserRepository
	hasher   *mockSvc.MockPasswordHasher
}

func createTestUserService(t *testing.T) *userServiceFixtures {
	t.Helper()

	fixtures := &userServiceFixtures{
		userRepo: new(mockRepo.MockUserRepository),
		hasher:   new(mockSvc.MockPasswordHasher),
	}

	fixtures.service = NewUserService(UserServiceParams{
		UserRepo: fixtures.userRepo,
		Hasher:   fixtures.hasher,
		Logger:   newDiscardLogger(),
	})

	return fixtures
}

func TestUserService_GetByUsername(t *testing.T) {
	fixtures := createTestUserService(t)

	fixtures.userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&entity.User{ID: 1, Username: "alice", Role: entity.RoleUser}, nil)

	user, err := fixtures.service.GetByUsername(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestUserService_GetByUsername_NotFound(t *testing.T) {
	fixtures := createTestUserService(t)

	fixtures.userRepo.On("FindByUsername", mock.Anything, "ghost").
		Return(nil, repository.ErrUserNotFound)

	_, err := fixtures.service.GetByUsername(context.Background(), "ghost")

	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_UpdateMe_ChangesEmailAndPassword(t *testing.T) {
	fixtures := createTestUserService(t)

	fixtures.userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&entity.User{ID: 1, Username: "alice", Email: "old@example.com", Password: "$2a$04$old"}, nil)
	fixtures.hasher.On("Hash", "NewPassword1!").Return("$2a$04$new", nil)
	fixtures.userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.ID == 1 && u.Email == "new@example.com" && u.Password == "$2a$04$new"
	})).Return(nil)

	user, err := fixtures.service.UpdateMe(context.Background(), "alice", &usecase.UpdateMeInput{
		Email:    "new@example.com",
		Password: "NewPassword1!",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	fixtures.userRepo.AssertExpectations(t)
}

func TestUserService_UpdateMe_EmptyFieldsLeftUntouched(t *testing.T) {
	fixtures := createTestUserService(t)

	fixtures.userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&entity.User{ID: 1, Username: "alice", Email: "old@example.com", Password: "$2a$04$old"}, nil)
	fixtures.userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "old@example.com" && u.Password == "$2a$04$old"
	})).Return(nil)

	_, err := fixtures.service.UpdateMe(context.Background(), "alice", &usecase.UpdateMeInput{})

	require.NoError(t, err)
	fixtures.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestUserService_UpdateMe_EmailCollision(t *testing.T) {
	fixtures := createTestUserService(t)

	fixtures.userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&entity.User{ID: 1, Username: "alice", Email: "old@example.com"}, nil)
	fixtures.userRepo.On("Update", mock.Anything, mock.Anything).
		Return(repository.ErrDuplicateKey)

	_, err := fixtures.service.UpdateMe(context.Background(), "alice", &usecase.UpdateMeInput{
		Email: "taken@example.com",
	})

	require.ErrorIs(t, err, domainerrors.ErrDuplicateIdentifier)
}
