package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/models/dto"
)

type stubNotificationService struct {
	listedUser  int64
	readID      int64
	readUser    int64
	readAllUser int64
}

func (s *stubNotificationService) GetNotifications(_ context.Context, userID int64, _ uint64, _ int) ([]models.Notification, bool, int64, error) {
	s.listedUser = userID
	return nil, false, 0, nil
}

func (s *stubNotificationService) MarkAsRead(_ context.Context, id, userID int64) error {
	s.readID = id
	s.readUser = userID
	return nil
}

func (s *stubNotificationService) MarkAllAsRead(_ context.Context, userID int64) (int64, error) {
	s.readAllUser = userID
	return 0, nil
}

func newNotificationRouter(service *stubNotificationService, userID int64) *gin.Engine {
	router := newTestRouter(userID, models.RoleUser)
	controller := NewNotificationController(service)
	router.GET("/notifications/:userId", controller.GetNotifications)
	router.PUT("/notifications/:id/read", controller.MarkAsRead)
	router.PUT("/notifications/read-all/:userId", controller.MarkAllAsRead)
	return router
}

func TestGetNotificationsOwnInboxOnly(t *testing.T) {
	service := &stubNotificationService{}
	router := newNotificationRouter(service, 7)

	w := doRequest(t, router, http.MethodGet, "/notifications/3", "", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeForbidden, resp.Error.Code)
	assert.Zero(t, service.listedUser)

	w = doRequest(t, router, http.MethodGet, "/notifications/7", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), service.listedUser)
}

func TestMarkAsReadScopedToOwner(t *testing.T) {
	service := &stubNotificationService{}
	router := newNotificationRouter(service, 7)

	w := doRequest(t, router, http.MethodPut, "/notifications/11/read", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(11), service.readID)
	assert.Equal(t, int64(7), service.readUser)
}

func TestMarkAllAsReadOwnInboxOnly(t *testing.T) {
	service := &stubNotificationService{}
	router := newNotificationRouter(service, 7)

	w := doRequest(t, router, http.MethodPut, "/notifications/read-all/3", "", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, service.readAllUser)

	w = doRequest(t, router, http.MethodPut, "/notifications/read-all/7", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), service.readAllUser)
}
