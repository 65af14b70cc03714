package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutcommunity/backend/internal/app/models"
)

type stubAuthService struct {
	registered *models.User
}

func (s *stubAuthService) Register(_ context.Context, user *models.User, _ string) (*models.User, error) {
	s.registered = user
	user.ID = 1
	return user, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (*models.User, string, string, int, error) {
	return &models.User{}, "", "", 0, nil
}

func (s *stubAuthService) RefreshToken(context.Context, string) (*models.User, string, string, int, error) {
	return &models.User{}, "", "", 0, nil
}

func (s *stubAuthService) SendOTP(context.Context, string) (time.Time, error) {
	return time.Time{}, nil
}

func (s *stubAuthService) VerifyOTP(context.Context, string, string) (string, error) {
	return "", nil
}

func (s *stubAuthService) ResetPassword(context.Context, string, string, string) error { return nil }
func (s *stubAuthService) CancelReset(context.Context, string) error                   { return nil }

func TestRegisterAlwaysUserRole(t *testing.T) {
	service := &stubAuthService{}
	router := newTestRouter(0, models.RoleUser)
	controller := NewAuthController(service, noopFileStorage{}, zerolog.Nop())
	router.POST("/auth/register", controller.Register)

	// A role form field must not let an account register itself as admin.
	w := doRequest(t, router, http.MethodPost, "/auth/register", formURLEncoded,
		"username=somchai&email=somchai%40sut.ac.th&password=secret1&role=admin")

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, service.registered)
	assert.Equal(t, models.RoleUser, service.registered.Role)
}
