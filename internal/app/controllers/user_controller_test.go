package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/models/dto"
	"github.com/sutcommunity/backend/internal/app/repositories"
)

type stubUserService struct {
	updatedID     int64
	updatedParams repositories.UpdateUserParams
	deletedID     int64
	pushTokenUser int64
	pushToken     string
	disabledUser  int64
}

func (s *stubUserService) GetUser(context.Context, int64) (*models.User, error) {
	return &models.User{}, nil
}

func (s *stubUserService) ListUsers(context.Context) ([]models.User, error) { return nil, nil }

func (s *stubUserService) UpdateUser(_ context.Context, userID int64, params repositories.UpdateUserParams) (*models.User, error) {
	s.updatedID = userID
	s.updatedParams = params
	return &models.User{ID: userID}, nil
}

func (s *stubUserService) SavePushToken(_ context.Context, userID int64, token string) error {
	s.pushTokenUser = userID
	s.pushToken = token
	return nil
}

func (s *stubUserService) DisablePush(_ context.Context, userID int64) error {
	s.disabledUser = userID
	return nil
}

func (s *stubUserService) DeleteUser(_ context.Context, userID int64) error {
	s.deletedID = userID
	return nil
}

type noopFileStorage struct{}

func (noopFileStorage) SaveFile(*multipart.FileHeader) (string, error)                 { return "", nil }
func (noopFileStorage) SaveFileWithPath(*multipart.FileHeader, string) (string, error) { return "", nil }
func (noopFileStorage) DeleteFile(string) error                                        { return nil }
func (noopFileStorage) GetFullPath(string) string                                      { return "" }

func newUserRouter(service *stubUserService, userID int64, role models.RoleType) *gin.Engine {
	router := newTestRouter(userID, role)
	controller := NewUserController(service, noopFileStorage{}, zerolog.Nop())
	router.PUT("/users/:id", controller.UpdateUser)
	router.DELETE("/users/:id", controller.DeleteUser)
	router.POST("/users/push-token", controller.SavePushToken)
	router.DELETE("/users/push-token", controller.DisablePush)
	return router
}

func TestUpdateUserSelfOnly(t *testing.T) {
	service := &stubUserService{}
	router := newUserRouter(service, 7, models.RoleUser)

	w := doRequest(t, router, http.MethodPut, "/users/3", formURLEncoded, "bio=hacked")

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeForbidden, resp.Error.Code)
	assert.Zero(t, service.updatedID)
}

func TestUpdateUserOwnProfile(t *testing.T) {
	service := &stubUserService{}
	router := newUserRouter(service, 7, models.RoleUser)

	w := doRequest(t, router, http.MethodPut, "/users/7", formURLEncoded, "bio=about+me")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), service.updatedID)
	require.NotNil(t, service.updatedParams.Bio)
	assert.Equal(t, "about me", *service.updatedParams.Bio)
}

func TestUpdateUserRoleChangeRequiresAdmin(t *testing.T) {
	service := &stubUserService{}
	router := newUserRouter(service, 7, models.RoleUser)

	// Even on their own account a regular user cannot grant themselves admin.
	w := doRequest(t, router, http.MethodPut, "/users/7", formURLEncoded, "role=admin")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, service.updatedID)
}

func TestUpdateUserAsAdmin(t *testing.T) {
	service := &stubUserService{}
	router := newUserRouter(service, 99, models.RoleAdmin)

	w := doRequest(t, router, http.MethodPut, "/users/7", formURLEncoded, "role=admin")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), service.updatedID)
	require.NotNil(t, service.updatedParams.Role)
	assert.Equal(t, "admin", *service.updatedParams.Role)
}

func TestDeleteUserSelfOnly(t *testing.T) {
	service := &stubUserService{}
	router := newUserRouter(service, 7, models.RoleUser)

	w := doRequest(t, router, http.MethodDelete, "/users/3", "", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, service.deletedID)

	w = doRequest(t, router, http.MethodDelete, "/users/7", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), service.deletedID)
}

func TestDeleteUserAsAdmin(t *testing.T) {
	service := &stubUserService{}
	router := newUserRouter(service, 99, models.RoleAdmin)

	w := doRequest(t, router, http.MethodDelete, "/users/7", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), service.deletedID)
}

func TestPushTokenBoundToToken(t *testing.T) {
	service := &stubUserService{}
	router := newUserRouter(service, 7, models.RoleUser)

	w := doRequest(t, router, http.MethodPost, "/users/push-token", "application/json",
		`{"pushToken":"ExponentPushToken[abc]","userId":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), service.pushTokenUser)
	assert.Equal(t, "ExponentPushToken[abc]", service.pushToken)

	w = doRequest(t, router, http.MethodDelete, "/users/push-token", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), service.disabledUser)
}
