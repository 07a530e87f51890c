package service

import (
	"context"
	"testing"
	"time"

	"qbank/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RoundTrip(t *testing.T) {
	svc, err := NewAuthService(config.JWTConfig{SecretKey: "testsecretkeydontuseinproduction32bytes!"})
	require.NoError(t, err)

	token, err := svc.CreateJWT(context.Background(), "user-1", RoleAdmin, time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestAuthService_DefaultRoleIsUser(t *testing.T) {
	svc, err := NewAuthService(config.JWTConfig{SecretKey: "secret"})
	require.NoError(t, err)

	token, err := svc.CreateJWT(context.Background(), "user-2", "", time.Minute)
	require.NoError(t, err)
	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestAuthService_RejectsExpiredAndForeignTokens(t *testing.T) {
	svc, err := NewAuthService(config.JWTConfig{SecretKey: "secret-a"})
	require.NoError(t, err)
	other, err := NewAuthService(config.JWTConfig{SecretKey: "secret-b"})
	require.NoError(t, err)

	expired, err := svc.CreateJWT(context.Background(), "user-1", RoleUser, -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateJWT(context.Background(), expired)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	foreign, err := other.CreateJWT(context.Background(), "user-1", RoleUser, time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateJWT(context.Background(), foreign)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService(config.JWTConfig{})
	assert.Error(t, err)
}
