package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alikamatu/artisan-app-sub000/internal/auth"
	"github.com/alikamatu/artisan-app-sub000/internal/config"
	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/services/dto"
	"github.com/alikamatu/artisan-app-sub000/pkg/apperrors"
)

func setTestJWTConfig(t *testing.T) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func TestAuthRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	setTestJWTConfig(t)

	t.Run("registers a client ready to act", func(t *testing.T) {
		resp, err := env.authService.Register(ctx, &dto.RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "strongpass",
			Role:     "client",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.True(t, resp.User.IsVerified)

		claims, err := auth.ParseToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
		assert.Equal(t, "client", claims.Role)
	})

	t.Run("registers workers unverified", func(t *testing.T) {
		resp, err := env.authService.Register(ctx, &dto.RegisterRequest{
			Name:     "Bob",
			Email:    "bob@example.com",
			Password: "strongpass",
			Role:     "worker",
		})
		require.NoError(t, err)
		assert.Equal(t, models.UserRoleWorker, resp.User.Role)
		assert.False(t, resp.User.IsVerified)
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		_, err := env.authService.Register(ctx, &dto.RegisterRequest{
			Name:     "Ada again",
			Email:    "ada@example.com",
			Password: "strongpass",
			Role:     "client",
		})
		requireAppCode(t, err, apperrors.CodeAlreadyExists)
	})
}

func TestAuthLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	setTestJWTConfig(t)

	_, err := env.authService.Register(ctx, &dto.RegisterRequest{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "strongpass",
		Role:     "client",
	})
	require.NoError(t, err)

	t.Run("logs in with the right password", func(t *testing.T) {
		resp, err := env.authService.Login(ctx, &dto.LoginRequest{
			Email:    "carol@example.com",
			Password: "strongpass",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, err := env.authService.Login(ctx, &dto.LoginRequest{
			Email:    "carol@example.com",
			Password: "wrongpass",
		})
		requireAppCode(t, err, apperrors.CodeInvalidCredentials)
	})

	t.Run("rejects unknown emails", func(t *testing.T) {
		_, err := env.authService.Login(ctx, &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		requireAppCode(t, err, apperrors.CodeInvalidCredentials)
	})
}
