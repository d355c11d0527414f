package impl

import (
	"context"
	"testing"
	"time"

	"habitat/internal/domain/entity"
	domainerrors "habitat/internal/domain/errors"
	"habitat/internal/domain/repository"
	"habitat/internal/domain/service"
	mockRepo "habitat/internal/mocks/repository"
	mockSvc "habitat/internal/mocks/service"
	"habitat/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockRepo.MockUserRepository
	txUserRepo   *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	oauthService *mockSvc.MockOAuthService
	publisher    *mockSvc.MockAuthEventPublisher
	published    chan *entity.AuthEvent
}

func createTestAuthService(t *testing.T) *authServiceFixtures {
	t.Helper()

	fixtures := &authServiceFixtures{
		userRepo:     new(mockRepo.MockUserRepository),
		txUserRepo:   new(mockRepo.MockUserRepository),
		hasher:       new(mockSvc.MockPasswordHasher),
		tokenService: new(mockSvc.MockTokenService),
		oauthService: new(mockSvc.MockOAuthService),
		publisher:    new(mockSvc.MockAuthEventPublisher),
		published:    make(chan *entity.AuthEvent, 1),
	}

	txManager := &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{UserRepository: fixtures.txUserRepo},
	}

	fixtures.service = NewAuthService(AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     fixtures.userRepo,
		Hasher:       fixtures.hasher,
		TokenService: fixtures.tokenService,
		OAuthService: fixtures.oauthService,
		Publisher:    fixtures.publisher,
		Logger:       newDiscardLogger(),
	})

	return fixtures
}

// expectPublish arms the publisher mock and forwards the event to the
// published channel so tests can wait for the async dispatch.
func (f *authServiceFixtures) expectPublish() {
	f.publisher.On("Publish", mock.Anything, mock.AnythingOfType("*entity.AuthEvent")).
		Run(func(args mock.Arguments) {
			f.published <- args.Get(1).(*entity.AuthEvent)
		}).
		Return(nil)
}

func (f *authServiceFixtures) waitForEvent(t *testing.T) *entity.AuthEvent {
	t.Helper()

	select {
	case event := <-f.published:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for auth event")

		return nil
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	}

	fixtures.hasher.On("Hash", input.Password).Return("$2a$04$hashed", nil)
	fixtures.txUserRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, repository.ErrUserNotFound)
	fixtures.txUserRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, repository.ErrUserNotFound)
	fixtures.txUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = 7
		}).
		Return(nil)
	fixtures.expectPublish()

	output, err := fixtures.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, int64(7), output.User.ID)
	assert.Equal(t, "$2a$04$hashed", output.User.Password)
	assert.Equal(t, entity.RoleUser, output.User.Role)
	assert.Equal(t, entity.ProviderLocal, output.User.Provider)

	event := fixtures.waitForEvent(t)
	assert.Equal(t, entity.AuthEventUserRegistered, event.EventType)
	assert.Equal(t, int64(7), event.UserID)
	assert.Equal(t, "alice", event.Username)
	assert.NotEmpty(t, event.EventID)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	fixtures := createTestAuthService(t)

	fixtures.hasher.On("Hash", mock.Anything).Return("$2a$04$hashed", nil)
	fixtures.txUserRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&entity.User{ID: 1, Username: "alice"}, nil)

	_, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "Password123!",
	})

	require.ErrorIs(t, err, domainerrors.ErrDuplicateIdentifier)
	fixtures.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAuthService_Register_RaceLosesToUniqueIndex(t *testing.T) {
	fixtures := createTestAuthService(t)

	fixtures.hasher.On("Hash", mock.Anything).Return("$2a$04$hashed", nil)
	fixtures.txUserRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, repository.ErrUserNotFound)
	fixtures.txUserRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, repository.ErrUserNotFound)
	fixtures.txUserRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey)

	_, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	})

	require.ErrorIs(t, err, domainerrors.ErrDuplicateIdentifier)
}

func TestAuthService_Login_Success(t *testing.T) {
	fixtures := createTestAuthService(t)

	storedUser := &entity.User{
		ID:       3,
		Username: "alice",
		Password: "$2a$04$storedhash",
		Role:     entity.RoleUser,
	}

	fixtures.userRepo.On("FindByUsername", mock.Anything, "alice").Return(storedUser, nil)
	fixtures.hasher.On("Check", "Password123!", "$2a$04$storedhash").Return(true)
	fixtures.tokenService.On("Generate", "alice").Return("signed-token", nil)

	output, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, int64(3), output.User.ID)
}

func TestAuthService_Login_EmailIdentifierPreferred(t *testing.T) {
	fixtures := createTestAuthService(t)

	storedUser := &entity.User{
		ID:       4,
		Username: "alice",
		Email:    "alice@example.com",
		Password: "$2a$04$storedhash",
	}

	fixtures.userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(storedUser, nil)
	fixtures.hasher.On("Check", "Password123!", "$2a$04$storedhash").Return(true)
	fixtures.tokenService.On("Generate", "alice").Return("signed-token", nil)

	// Email wins when both identifiers are supplied.
	output, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), output.User.ID)
	fixtures.userRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestAuthService_Login_UsernameWithAtSign(t *testing.T) {
	fixtures := createTestAuthService(t)

	// A username containing '@' is still looked up as a username when the
	// email field is empty.
	storedUser := &entity.User{
		ID:       5,
		Username: "bob@corp",
		Password: "$2a$04$storedhash",
	}

	fixtures.userRepo.On("FindByUsername", mock.Anything, "bob@corp").Return(storedUser, nil)
	fixtures.hasher.On("Check", "pw-bob-123", "$2a$04$storedhash").Return(true)
	fixtures.tokenService.On("Generate", "bob@corp").Return("signed-token", nil)

	output, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Username: "bob@corp",
		Password: "pw-bob-123",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), output.User.ID)
	fixtures.userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Login_UniformInvalidCredentials(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.LoginInput
		setup func(fixtures *authServiceFixtures)
	}{
		{
			name:  "unknown identifier",
			input: usecase.LoginInput{Username: "ghost", Password: "whatever1"},
			setup: func(fixtures *authServiceFixtures) {
				fixtures.userRepo.On("FindByUsername", mock.Anything, "ghost").
					Return(nil, repository.ErrUserNotFound)
			},
		},
		{
			name:  "wrong password",
			input: usecase.LoginInput{Username: "ghost", Password: "whatever1"},
			setup: func(fixtures *authServiceFixtures) {
				fixtures.userRepo.On("FindByUsername", mock.Anything, "ghost").
					Return(&entity.User{ID: 1, Username: "ghost", Password: "$2a$04$storedhash"}, nil)
				fixtures.hasher.On("Check", mock.Anything, mock.Anything).Return(false)
			},
		},
		{
			name:  "account without stored password",
			input: usecase.LoginInput{Username: "ghost", Password: "whatever1"},
			setup: func(fixtures *authServiceFixtures) {
				fixtures.userRepo.On("FindByUsername", mock.Anything, "ghost").
					Return(&entity.User{ID: 1, Username: "ghost", Provider: entity.ProviderGoogle}, nil)
			},
		},
		{
			name:  "missing identifier",
			input: usecase.LoginInput{Password: "whatever1"},
			setup: func(_ *authServiceFixtures) {},
		},
		{
			name:  "missing password",
			input: usecase.LoginInput{Username: "ghost"},
			setup: func(_ *authServiceFixtures) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixtures := createTestAuthService(t)
			tt.setup(fixtures)

			_, err := fixtures.service.Login(context.Background(), &tt.input)

			require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
			fixtures.tokenService.AssertNotCalled(t, "Generate", mock.Anything)
		})
	}
}

func TestAuthService_Login_MigratesLegacyPassword(t *testing.T) {
	fixtures := createTestAuthService(t)

	storedUser := &entity.User{
		ID:       9,
		Username: "legacy",
		Password: "plaintext-password",
	}

	fixtures.userRepo.On("FindByUsername", mock.Anything, "legacy").Return(storedUser, nil)
	fixtures.hasher.On("Hash", "plaintext-password").Return("$2a$04$migrated", nil)
	fixtures.txUserRepo.On("FindByID", mock.Anything, int64(9)).
		Return(&entity.User{ID: 9, Username: "legacy", Password: "plaintext-password"}, nil)
	fixtures.txUserRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.ID == 9 && u.Password == "$2a$04$migrated"
	})).Return(nil)
	fixtures.tokenService.On("Generate", "legacy").Return("signed-token", nil)

	output, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Username: "legacy",
		Password: "plaintext-password",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, "$2a$04$migrated", output.User.Password)
	fixtures.txUserRepo.AssertExpectations(t)
	// The stored hash matched via plaintext comparison, not bcrypt.
	fixtures.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestAuthService_Login_LegacyMigrationAlreadyDone(t *testing.T) {
	fixtures := createTestAuthService(t)

	storedUser := &entity.User{
		ID:       9,
		Username: "legacy",
		Password: "plaintext-password",
	}

	fixtures.userRepo.On("FindByUsername", mock.Anything, "legacy").Return(storedUser, nil)
	fixtures.hasher.On("Hash", "plaintext-password").Return("$2a$04$migrated", nil)
	// A concurrent login already rewrote the row.
	fixtures.txUserRepo.On("FindByID", mock.Anything, int64(9)).
		Return(&entity.User{ID: 9, Username: "legacy", Password: "$2a$04$other"}, nil)
	fixtures.tokenService.On("Generate", "legacy").Return("signed-token", nil)

	_, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Username: "legacy",
		Password: "plaintext-password",
	})

	require.NoError(t, err)
	fixtures.txUserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthService_Login_LegacyWrongPassword(t *testing.T) {
	fixtures := createTestAuthService(t)

	fixtures.userRepo.On("FindByUsername", mock.Anything, "legacy").
		Return(&entity.User{ID: 9, Username: "legacy", Password: "plaintext-password"}, nil)

	_, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Username: "legacy",
		Password: "wrong-guess",
	})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	fixtures.hasher.AssertNotCalled(t, "Hash", mock.Anything)
	fixtures.txUserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthService_GoogleCallback_InvalidState(t *testing.T) {
	fixtures := createTestAuthService(t)

	fixtures.oauthService.On("ValidateState", "bad-state").Return(false)

	_, err := fixtures.service.GoogleCallback(context.Background(), &usecase.GoogleCallbackInput{
		Code:  "code",
		State: "bad-state",
	})

	require.ErrorIs(t, err, domainerrors.ErrOAuthFailed)
	fixtures.oauthService.AssertNotCalled(t, "ExchangeCode", mock.Anything, mock.Anything)
}

func TestAuthService_GoogleCallback_ExchangeFails(t *testing.T) {
	fixtures := createTestAuthService(t)

	fixtures.oauthService.On("ValidateState", "state").Return(true)
	fixtures.oauthService.On("ExchangeCode", mock.Anything, "code").
		Return(nil, errors.New("provider unreachable"))

	_, err := fixtures.service.GoogleCallback(context.Background(), &usecase.GoogleCallbackInput{
		Code:  "code",
		State: "state",
	})

	require.ErrorIs(t, err, domainerrors.ErrOAuthFailed)
}

func TestAuthService_GoogleCallback_CreatesAccount(t *testing.T) {
	fixtures := createTestAuthService(t)

	oauthUser := &service.OAuthUser{
		ID:       "google-sub-1",
		Email:    "carol@example.com",
		Name:     "Carol",
		Provider: entity.ProviderGoogle,
	}

	fixtures.oauthService.On("ValidateState", "state").Return(true)
	fixtures.oauthService.On("ExchangeCode", mock.Anything, "code").Return(oauthUser, nil)
	fixtures.txUserRepo.On("FindByUsername", mock.Anything, "carol@example.com").
		Return(nil, repository.ErrUserNotFound)
	fixtures.txUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = 11
		}).
		Return(nil)
	fixtures.tokenService.On("Generate", "carol@example.com").Return("signed-token", nil)
	fixtures.expectPublish()

	output, err := fixtures.service.GoogleCallback(context.Background(), &usecase.GoogleCallbackInput{
		Code:  "code",
		State: "state",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, "carol@example.com", output.User.Username)
	assert.Equal(t, entity.ProviderGoogle, output.User.Provider)
	assert.Equal(t, "google-sub-1", output.User.ProviderID)
	// The schema requires a credential; a random placeholder fills it.
	assert.NotEmpty(t, output.User.Password)

	event := fixtures.waitForEvent(t)
	assert.Equal(t, int64(11), event.UserID)
}

func TestAuthService_GoogleCallback_UpgradesLocalAccount(t *testing.T) {
	fixtures := createTestAuthService(t)

	oauthUser := &service.OAuthUser{
		ID:       "google-sub-2",
		Email:    "dave@example.com",
		Provider: entity.ProviderGoogle,
	}
	localUser := &entity.User{
		ID:       12,
		Username: "dave@example.com",
		Email:    "dave@example.com",
		Password: "$2a$04$hash",
		Role:     entity.RoleAdmin,
		Provider: entity.ProviderLocal,
	}

	fixtures.oauthService.On("ValidateState", "state").Return(true)
	fixtures.oauthService.On("ExchangeCode", mock.Anything, "code").Return(oauthUser, nil)
	fixtures.txUserRepo.On("FindByUsername", mock.Anything, "dave@example.com").Return(localUser, nil)
	fixtures.txUserRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.ID == 12 && u.Provider == entity.ProviderGoogle && u.ProviderID == "google-sub-2"
	})).Return(nil)
	fixtures.tokenService.On("Generate", "dave@example.com").Return("signed-token", nil)

	output, err := fixtures.service.GoogleCallback(context.Background(), &usecase.GoogleCallbackInput{
		Code:  "code",
		State: "state",
	})

	require.NoError(t, err)
	// Role and password survive the provider upgrade.
	assert.Equal(t, entity.RoleAdmin, output.User.Role)
	assert.Equal(t, "$2a$04$hash", output.User.Password)
	// An upgraded account is not a new registration.
	fixtures.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAuthService_GoogleCallback_AlreadyLinkedSkipsUpdate(t *testing.T) {
	fixtures := createTestAuthService(t)

	oauthUser := &service.OAuthUser{
		ID:       "google-sub-3",
		Email:    "erin@example.com",
		Provider: entity.ProviderGoogle,
	}
	linkedUser := &entity.User{
		ID:         13,
		Username:   "erin@example.com",
		Provider:   entity.ProviderGoogle,
		ProviderID: "google-sub-3",
	}

	fixtures.oauthService.On("ValidateState", "state").Return(true)
	fixtures.oauthService.On("ExchangeCode", mock.Anything, "code").Return(oauthUser, nil)
	fixtures.txUserRepo.On("FindByUsername", mock.Anything, "erin@example.com").Return(linkedUser, nil)
	fixtures.tokenService.On("Generate", "erin@example.com").Return("signed-token", nil)

	_, err := fixtures.service.GoogleCallback(context.Background(), &usecase.GoogleCallbackInput{
		Code:  "code",
		State: "state",
	})

	require.NoError(t, err)
	fixtures.txUserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthService_GoogleCallback_ConcurrentCreateResolvesToWinner(t *testing.T) {
	fixtures := createTestAuthService(t)

	oauthUser := &service.OAuthUser{
		ID:       "google-sub-4",
		Email:    "frank@example.com",
		Provider: entity.ProviderGoogle,
	}
	winner := &entity.User{
		ID:         14,
		Username:   "frank@example.com",
		Provider:   entity.ProviderGoogle,
		ProviderID: "google-sub-4",
	}

	fixtures.oauthService.On("ValidateState", "state").Return(true)
	fixtures.oauthService.On("ExchangeCode", mock.Anything, "code").Return(oauthUser, nil)
	// First lookup misses, the insert loses the race, the second lookup
	// finds the row the concurrent callback created.
	fixtures.txUserRepo.On("FindByUsername", mock.Anything, "frank@example.com").
		Return(nil, repository.ErrUserNotFound).Once()
	fixtures.txUserRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey)
	fixtures.txUserRepo.On("FindByUsername", mock.Anything, "frank@example.com").
		Return(winner, nil).Once()
	fixtures.tokenService.On("Generate", "frank@example.com").Return("signed-token", nil)

	output, err := fixtures.service.GoogleCallback(context.Background(), &usecase.GoogleCallbackInput{
		Code:  "code",
		State: "state",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(14), output.User.ID)
	// The loser of the race did not create the account, so no event.
	fixtures.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
