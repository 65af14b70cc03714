package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/models/dto"
	"github.com/sutcommunity/backend/internal/middleware"
	"github.com/sutcommunity/backend/internal/pkg/filestorage"
)

// AuthService defines the authentication operations the controller depends on
type AuthService interface {
	Register(ctx context.Context, user *models.User, plainPassword string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, string, int, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.User, string, string, int, error)
	SendOTP(ctx context.Context, emailAddr string) (time.Time, error)
	VerifyOTP(ctx context.Context, emailAddr, code string) (string, error)
	ResetPassword(ctx context.Context, emailAddr, token, newPassword string) error
	CancelReset(ctx context.Context, emailAddr string) error
}

// AuthController handles registration, login and the password reset flow
type AuthController struct {
	authService AuthService
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AuthService, fileStorage filestorage.FileStorage, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// Register handles new user registration
// @Summary Register a new user
// @Description Creates a new account with an optional avatar image
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email address"
// @Param password formData string true "Password (min 6 characters)"
// @Param avatar formData file false "Avatar image"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email or username already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleUser,
	}

	if avatar, err := ctx.FormFile("avatar"); err == nil && avatar != nil {
		path, saveErr := c.fileStorage.SaveFileWithPath(avatar, "avatars")
		if saveErr != nil {
			c.logger.Error().Err(saveErr).Msg("Failed to save avatar")
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to save avatar image")
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
			return
		}
		user.Avatar = path
	}

	registered, err := c.authService.Register(ctx, user, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewUserResponse(registered)))
}

// Login handles user authentication
// @Summary Log in
// @Description Authenticates by username and password and returns a JWT token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, accessToken, refreshToken, expiresIn, err := c.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         dto.NewUserResponse(user),
	}))
}

// RefreshToken rotates a refresh token
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "New token pair"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Token expired, revoked or unknown"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/refresh-token [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid refresh token data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, accessToken, refreshToken, expiresIn, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         dto.NewUserResponse(user),
	}))
}

// SendOTP starts the password reset flow
// @Summary Send password reset OTP
// @Description Emails a 6-digit one-time code to an existing account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SendOTPRequest true "Account email"
// @Success 200 {object} dto.APIResponse{data=dto.SendOTPResponse} "OTP sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "No account with that email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/send-otp [post]
func (c *AuthController) SendOTP(ctx *gin.Context) {
	var req dto.SendOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid email")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	expiresAt, err := c.authService.SendOTP(ctx, req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SendOTPResponse{
		Message:   "OTP sent to your email",
		ExpiresAt: expiresAt.Unix(),
	}))
}

// VerifyOTP exchanges a valid OTP for a reset token
// @Summary Verify password reset OTP
// @Description Consumes a valid one-time code and issues a single-use reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and OTP"
// @Success 200 {object} dto.APIResponse{data=dto.VerifyOTPResponse} "Reset token issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired OTP"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/verify-otp [post]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid OTP data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resetToken, err := c.authService.VerifyOTP(ctx, req.Email, req.OTP)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.VerifyOTPResponse{
		Message:    "OTP verified",
		ResetToken: resetToken,
	}))
}

// ResetPassword completes the password reset flow
// @Summary Reset password
// @Description Consumes the reset token and replaces the account password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Email, reset token and new password"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Password updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid token or weak password"
// @Failure 404 {object} dto.ErrorResponse "No account with that email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid reset data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.ResetPassword(ctx, req.Email, req.ResetToken, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Password reset successfully"}))
}

// CancelReset invalidates an outstanding reset token
// @Summary Cancel password reset
// @Description Invalidates any outstanding OTP and reset token for the email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.CancelResetRequest true "Email and reset token"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Reset cancelled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/cancel-reset [post]
func (c *AuthController) CancelReset(ctx *gin.Context) {
	var req dto.CancelResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.CancelReset(ctx, req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Password reset cancelled"}))
}
