// Package service contains testify mocks for the domain service interfaces.
package service

import (
	"context"
	"time"

	"habitat/internal/domain/entity"
	domainservice "habitat/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a testify mock for service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenService is a testify mock for service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Generate(subject string) (string, error) {
	args := m.Called(subject)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(tokenString string) (string, error) {
	args := m.Called(tokenString)

	return args.String(0), args.Error(1)
}

// MockOAuthService is a testify mock for service.OAuthService.
type MockOAuthService struct {
	mock.Mock
}

func (m *MockOAuthService) BuildAuthorizationURL() string {
	args := m.Called()

	return args.String(0)
}

func (m *MockOAuthService) ValidateState(state string) bool {
	args := m.Called(state)

	return args.Bool(0)
}

func (m *MockOAuthService) ExchangeCode(ctx context.Context, code string) (*domainservice.OAuthUser, error) {
	args := m.Called(ctx, code)
	if user, ok := args.Get(0).(*domainservice.OAuthUser); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockAuthEventPublisher is a testify mock for service.AuthEventPublisher.
type MockAuthEventPublisher struct {
	mock.Mock
}

func (m *MockAuthEventPublisher) Publish(ctx context.Context, event *entity.AuthEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockAuthEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockCache is a testify mock for service.Cache.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if value, ok := args.Get(0).([]byte); ok {
		return value, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)

	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]any, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, key := range keys {
		callArgs = append(callArgs, key)
	}
	args := m.Called(callArgs...)

	return args.Error(0)
}
