package impl

import (
	"context"
	"log/slog"

	deliverycontext "habitat/internal/delivery/context"
	"habitat/internal/domain/entity"
	domainerrors "habitat/internal/domain/errors"
	"habitat/internal/domain/repository"
	"habitat/internal/domain/service"
	"habitat/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetByUsername retrieves the account identified by username.
func (srv *userService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("User lookup missed", slog.String("username", username))

			return nil, domainerrors.ErrUserNotFound.WrapMessage("failed to load user profile")
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return user, nil
}

// UpdateMe applies profile changes to the caller's own account.
func (srv *userService) UpdateMe(ctx context.Context, username string, input *usecase.UpdateMeInput) (*entity.User, error) {
	user, err := srv.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Password != "" {
		hashed, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash new password")
		}
		user.Password = hashed
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		// The unique index on email is the authority for collisions.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrDuplicateIdentifier.WrapMessage("email already registered")
		}

		return nil, errors.Wrap(err, "failed to update user profile")
	}

	srv.log(ctx).Info("Profile updated", slog.Int64("userID", user.ID))

	return user, nil
}
