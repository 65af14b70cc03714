package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/models/dto"
	"github.com/sutcommunity/backend/internal/app/repositories"
	"github.com/sutcommunity/backend/internal/middleware"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
	"github.com/sutcommunity/backend/internal/pkg/filestorage"
)

// UserService defines the user profile operations the controller depends on
type UserService interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, userID int64, params repositories.UpdateUserParams) (*models.User, error)
	SavePushToken(ctx context.Context, userID int64, token string) error
	DisablePush(ctx context.Context, userID int64) error
	DeleteUser(ctx context.Context, userID int64) error
}

// UserController handles user profile operations
type UserController struct {
	userService UserService
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService UserService, fileStorage filestorage.FileStorage, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// GetUser retrieves a user by ID
// @Summary Get user profile
// @Description Retrieves a user's public profile by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.GetUser(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}

// ListUsers retrieves all users, newest first
// @Summary List users
// @Description Retrieves all registered users, most recent first
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Users retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.NewUserResponse(&users[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// isAdmin reports whether the authenticated requester has the admin role
func isAdmin(ctx *gin.Context) bool {
	return ctx.GetString("role") == string(models.RoleAdmin)
}

// UpdateUser updates a user profile
// @Summary Update user profile
// @Description Partially updates a user's profile; only the account owner or an admin may update, and only an admin may change roles
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param username formData string false "New username"
// @Param email formData string false "New email"
// @Param password formData string false "New password (min 6 characters)"
// @Param role formData string false "New role (user or admin)"
// @Param bio formData string false "Profile bio"
// @Param avatar formData file false "New avatar image"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Not the account owner"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Email or username already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if id != ctx.GetInt64("userID") && !isAdmin(ctx) {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("account belongs to another user"))
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid update data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if req.Role != nil && !isAdmin(ctx) {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("only an admin can change roles"))
		return
	}

	params := repositories.UpdateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Bio:      req.Bio,
	}

	if avatar, fileErr := ctx.FormFile("avatar"); fileErr == nil && avatar != nil {
		path, saveErr := c.fileStorage.SaveFileWithPath(avatar, "avatars")
		if saveErr != nil {
			c.logger.Error().Err(saveErr).Msg("Failed to save avatar")
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to save avatar image")
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
			return
		}
		params.Avatar = &path
	}

	user, err := c.userService.UpdateUser(ctx, id, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}

// DeleteUser removes a user and everything they produced
// @Summary Delete user
// @Description Deletes a user and all their posts, comments, likes, follows, reports and notifications; only the account owner or an admin may delete
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "User deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 403 {object} dto.ErrorResponse "Not the account owner"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if id != ctx.GetInt64("userID") && !isAdmin(ctx) {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("account belongs to another user"))
		return
	}

	if err := c.userService.DeleteUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "User deleted successfully"}))
}

// SavePushToken registers a device push token
// @Summary Save push token
// @Description Stores an Expo push token so the user can receive notifications
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SavePushTokenRequest true "Expo push token"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Push token saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/push-token [post]
func (c *UserController) SavePushToken(ctx *gin.Context) {
	var req dto.SavePushTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid push token data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.userService.SavePushToken(ctx, ctx.GetInt64("userID"), req.PushToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Push token saved"}))
}

// DisablePush clears the stored push token
// @Summary Disable push notifications
// @Description Removes the stored Expo push token for the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Push notifications disabled"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/push-token [delete]
func (c *UserController) DisablePush(ctx *gin.Context) {
	if err := c.userService.DisablePush(ctx, ctx.GetInt64("userID")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Push notifications disabled"}))
}
