package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/models/dto"
	"github.com/sutcommunity/backend/internal/middleware"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
	"github.com/sutcommunity/backend/internal/pkg/helpers"
)

// NotificationService defines the inbox operations the controller depends on
type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, offset uint64, limit int) ([]models.Notification, bool, int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
}

// NotificationController handles the notification inbox
type NotificationController struct {
	notificationService NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// GetNotifications retrieves a user's notifications, newest first
// @Summary Get notifications
// @Description Retrieves a page of the user's notifications with unread count and a hasMore flag
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 15)"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse} "Notifications retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 403 {object} dto.ErrorResponse "Not the inbox owner"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/{userId} [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if userID != ctx.GetInt64("userID") {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("inbox belongs to another user"))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	notifications, hasMore, unreadCount, err := c.notificationService.GetNotifications(ctx, userID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewNotificationListResponse(notifications, hasMore, unreadCount)))
}

// MarkAsRead marks a single notification as read
// @Summary Mark notification read
// @Description Marks one unread notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Notification marked read"
// @Failure 400 {object} dto.ErrorResponse "Invalid notification ID"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid notification ID")
		errorDetail = errorDetail.WithDetails("Notification ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.notificationService.MarkAsRead(ctx, id, ctx.GetInt64("userID")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Notification marked as read"}))
}

// MarkAllAsRead marks all of a user's notifications as read
// @Summary Mark all notifications read
// @Description Marks every unread notification for the user as read and returns how many changed
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse "Number of notifications updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 403 {object} dto.ErrorResponse "Not the inbox owner"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/read-all/{userId} [put]
func (c *NotificationController) MarkAllAsRead(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if userID != ctx.GetInt64("userID") {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("inbox belongs to another user"))
		return
	}

	updated, err := c.notificationService.MarkAllAsRead(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"updatedCount": updated}))
}
