package service

import (
	"context"
	"testing"
	"time"

	"travel-ticket-api/core/cache"
	"travel-ticket-api/core/config"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/utils"
	"travel-ticket-api/modules/auth/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, secret string) *AuthService {
	t.Helper()
	hash, err := utils.HashPassword("hunter2")
	require.NoError(t, err)
	return NewAuthService(config.AuthConfig{
		SessionSecret: secret,
		Users: []config.User{
			{Email: "Ann@Example.com", Name: "Ann", PasswordHash: hash},
		},
	}, cache.NewMemoryCache())
}

func TestLogin(t *testing.T) {
	svc := newService(t, "test-secret")

	session, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ann@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", session.Name)
	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), session.ExpiresAt, time.Minute)

	claims, err := svc.CurrentUser(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, "Ann@Example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestLogin_Failures(t *testing.T) {
	svc := newService(t, "test-secret")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "bob@example.com", Password: "hunter2"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "Email not found")

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "ann@example.com", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "Incorrect password")
}

func TestLogout_RevokesToken(t *testing.T) {
	svc := newService(t, "test-secret")
	session, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ann@example.com", Password: "hunter2"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.Token))

	_, err = svc.CurrentUser(context.Background(), session.Token)
	assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))

	assert.NoError(t, svc.Logout(context.Background(), ""))
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
}

func TestCurrentUser_RejectsForeignTokens(t *testing.T) {
	svc := newService(t, "test-secret")
	other := newService(t, "other-secret")

	session, err := other.Login(context.Background(), &dto.LoginRequest{Email: "ann@example.com", Password: "hunter2"})
	require.NoError(t, err)

	_, err = svc.CurrentUser(context.Background(), session.Token)
	assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))

	_, err = svc.CurrentUser(context.Background(), "")
	assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
}

func TestNewAuthService_GeneratesSecret(t *testing.T) {
	a := newService(t, "")
	b := newService(t, "")
	assert.NotEmpty(t, a.secret)
	assert.NotEqual(t, a.secret, b.secret)
}
