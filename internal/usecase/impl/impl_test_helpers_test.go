package impl

import (
	"io"
	"log/slog"
	"time"

	"habitat/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth:  &config.AuthConfig{BcryptCost: 4, TokenTTL: time.Hour},
		Cache: &config.CacheConfig{TTL: time.Minute},
	}
	cfg.SecretKey.Token = "test-secret"

	return cfg
}
