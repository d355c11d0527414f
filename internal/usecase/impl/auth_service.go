// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "habitat/internal/delivery/context"
	"habitat/internal/domain/entity"
	domainerrors "habitat/internal/domain/errors"
	"habitat/internal/domain/repository"
	"habitat/internal/domain/service"
	"habitat/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// publishTimeout bounds the fire-and-forget event dispatch so a slow broker
// can never hold a goroutine for long.
const publishTimeout = 5 * time.Second

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	oauthService service.OAuthService
	publisher    service.AuthEventPublisher
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	OAuthService service.OAuthService
	Publisher    service.AuthEventPublisher
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		oauthService: params.OAuthService,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the creation of a new local account.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     entity.RoleUser,
		Provider: entity.ProviderLocal,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := srv.checkIdentifierAvailable(ctx, userRepo, input.Username, input.Email); err != nil {
			return err
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			// The unique index is the authority; a concurrent registration
			// between the check and the insert lands here.
			if errors.Is(err, repository.ErrDuplicateKey) {
				return domainerrors.ErrDuplicateIdentifier.WrapMessage("identifier taken during registration")
			}

			return errors.Wrap(err, "failed to create user during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", newUser.ID))
	srv.publishRegistered(ctx, newUser)

	return &usecase.RegisterOutput{User: newUser}, nil
}

func (srv *authService) checkIdentifierAvailable(ctx context.Context, userRepo repository.UserRepository, username, email string) error {
	if _, err := userRepo.FindByUsername(ctx, username); err == nil {
		return domainerrors.ErrDuplicateIdentifier.WrapMessage("username already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check username availability")
	}

	if email == "" {
		return nil
	}

	if _, err := userRepo.FindByEmail(ctx, email); err == nil {
		return domainerrors.ErrDuplicateIdentifier.WrapMessage("email already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check email availability")
	}

	return nil
}

// Login verifies credentials against the stored account and issues a token.
// Every failure surfaces as ErrInvalidCredentials, and the log carries only
// the identifier, so neither callers nor log readers can probe which accounts
// exist or which step failed.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	identifier := input.Email
	if identifier == "" {
		identifier = input.Username
	}

	srv.log(ctx).Debug("Starting login", slog.String("identifier", identifier))

	if identifier == "" || input.Password == "" {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", identifier))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	user, err := srv.resolveAccount(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("identifier", identifier))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to resolve account for login")
	}

	// Accounts without a stored credential cannot pass password login.
	if user.Password == "" {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", identifier))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	if err := srv.verifyPassword(ctx, user, input.Password); err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", identifier))

		return nil, err
	}

	token, err := srv.tokenService.Generate(user.Username)
	if err != nil {
		srv.log(ctx).Error("Failed to generate token during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Int64("userID", user.ID))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// resolveAccount picks the lookup key per the login contract: email when
// supplied and non-empty, username otherwise.
func (srv *authService) resolveAccount(ctx context.Context, input *usecase.LoginInput) (*entity.User, error) {
	if input.Email != "" {
		return srv.userRepo.FindByEmail(ctx, input.Email)
	}

	return srv.userRepo.FindByUsername(ctx, input.Username)
}

// verifyPassword checks the supplied password against the stored credential.
// Rows predating hashed storage still hold the plaintext password; a match
// against one migrates the row to a bcrypt hash before the login proceeds.
func (srv *authService) verifyPassword(ctx context.Context, user *entity.User, password string) error {
	if isBcryptHash(user.Password) {
		if !srv.hasher.Check(password, user.Password) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil
	}

	if user.Password != password {
		return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	if err := srv.migrateLegacyPassword(ctx, user, password); err != nil {
		// The credential matched; a failed migration must not block the
		// login. The next successful login retries it.
		srv.log(ctx).Error("Failed to migrate legacy password", slog.Int64("userID", user.ID), slog.Any("error", err))
	}

	return nil
}

func (srv *authService) migrateLegacyPassword(ctx context.Context, user *entity.User, password string) error {
	hashed, err := srv.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash legacy password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		current, err := userRepo.FindByID(ctx, user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to reload user for migration")
		}

		// A concurrent login may have migrated the row already.
		if isBcryptHash(current.Password) {
			return nil
		}

		current.Password = hashed

		return userRepo.Update(ctx, current)
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute legacy password migration transaction")
	}

	user.Password = hashed
	srv.log(ctx).Info("Migrated legacy password to hashed storage", slog.Int64("userID", user.ID))

	return nil
}

// GoogleAuthURL builds the provider authorization URL for a fresh login attempt.
func (srv *authService) GoogleAuthURL(_ context.Context) string {
	return srv.oauthService.BuildAuthorizationURL()
}

// GoogleCallback reconciles the provider callback into a local account and
// issues a token.
func (srv *authService) GoogleCallback(ctx context.Context, input *usecase.GoogleCallbackInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Handling federated login callback")

	if !srv.oauthService.ValidateState(input.State) {
		srv.log(ctx).Warn("Federated login rejected", slog.String("reason", "state mismatch"))

		return nil, domainerrors.ErrOAuthFailed.WrapMessage("state validation failed")
	}

	oauthUser, err := srv.oauthService.ExchangeCode(ctx, input.Code)
	if err != nil {
		srv.log(ctx).Warn("Federated login rejected", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthFailed.WrapMessage("code exchange failed")
	}

	user, created, err := srv.reconcileFederatedUser(ctx, oauthUser)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reconcile federated user")
	}

	token, err := srv.tokenService.Generate(user.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token for federated login")
	}

	if created {
		srv.publishRegistered(ctx, user)
	}

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// reconcileFederatedUser maps the provider identity onto a local account.
// The provider's email doubles as the username, so an existing local account
// with that identifier is upgraded in place rather than duplicated.
func (srv *authService) reconcileFederatedUser(ctx context.Context, oauthUser *service.OAuthUser) (*entity.User, bool, error) {
	var reconciled *entity.User
	var created bool

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		existing, err := userRepo.FindByUsername(ctx, oauthUser.Email)
		if err == nil {
			return srv.upgradeExistingAccount(ctx, userRepo, existing, oauthUser, &reconciled)
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find account for federated identity")
		}

		newUser := &entity.User{
			Username: oauthUser.Email,
			Email:    oauthUser.Email,
			// Federated accounts never authenticate by password; the random
			// placeholder only satisfies the schema.
			Password:   uuid.New().String(),
			Role:       entity.RoleUser,
			Provider:   oauthUser.Provider,
			ProviderID: oauthUser.ID,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			// A concurrent callback for the same identity created the row
			// first; treat the loser's insert as a lookup.
			if errors.Is(err, repository.ErrDuplicateKey) {
				winner, findErr := userRepo.FindByUsername(ctx, oauthUser.Email)
				if findErr != nil {
					return errors.Wrap(findErr, "failed to load concurrently created account")
				}
				reconciled = winner

				return nil
			}

			return errors.Wrap(err, "failed to create account for federated identity")
		}

		srv.log(ctx).Info("Created account for federated identity", slog.Int64("userID", newUser.ID))
		reconciled = newUser
		created = true

		return nil
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to execute federated reconciliation transaction")
	}

	return reconciled, created, nil
}

// upgradeExistingAccount links a federated identity onto an account that was
// registered locally with the same identifier. Role and password are kept:
// the account may later still log in locally.
func (srv *authService) upgradeExistingAccount(
	ctx context.Context,
	userRepo repository.UserRepository,
	existing *entity.User,
	oauthUser *service.OAuthUser,
	reconciled **entity.User,
) error {
	if existing.Provider == oauthUser.Provider && existing.ProviderID == oauthUser.ID {
		*reconciled = existing

		return nil
	}

	existing.Provider = oauthUser.Provider
	existing.ProviderID = oauthUser.ID
	if existing.Email == "" {
		existing.Email = oauthUser.Email
	}

	if err := userRepo.Update(ctx, existing); err != nil {
		return errors.Wrap(err, "failed to link federated identity to account")
	}

	srv.log(ctx).Info("Linked federated identity to existing account", slog.Int64("userID", existing.ID))
	*reconciled = existing

	return nil
}

// publishRegistered dispatches a USER_REGISTERED event without blocking the
// caller. Publish failures are logged and dropped; account creation has
// already been acknowledged.
func (srv *authService) publishRegistered(ctx context.Context, user *entity.User) {
	event := &entity.AuthEvent{
		EventID:    uuid.New().String(),
		EventType:  entity.AuthEventUserRegistered,
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role.String(),
		OccurredAt: time.Now().UTC(),
	}

	logger := srv.log(ctx)

	go func() {
		publishCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := srv.publisher.Publish(publishCtx, event); err != nil {
			logger.Warn("Failed to publish auth event",
				slog.String("eventID", event.EventID),
				slog.String("eventType", string(event.EventType)),
				slog.Any("error", err))
		}
	}()
}

// isBcryptHash reports whether the stored credential is already a bcrypt
// hash. Rows written before hashing was introduced hold raw passwords.
func isBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}
