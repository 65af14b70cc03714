package dto

// RegisterRequest is the multipart form payload for user registration.
// The avatar file is handled separately by the controller. New accounts
// always get the user role; only an admin can promote one later.
type RegisterRequest struct {
	Username string `form:"username" binding:"required" validate:"required,min=3,max=50"`
	Email    string `form:"email" binding:"required" validate:"required,email"`
	Password string `form:"password" binding:"required" validate:"required,min=6"`
}

// LoginRequest is the JSON payload for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the JSON payload for refreshing an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries a token pair plus the authenticated user
type TokenResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    int           `json:"expiresIn"`
	User         *UserResponse `json:"user"`
}

// SendOTPRequest starts the password reset flow
type SendOTPRequest struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
}

// SendOTPResponse reports when the emailed OTP expires
type SendOTPResponse struct {
	Message   string `json:"message"`
	ExpiresAt int64  `json:"expiresAt"`
}

// VerifyOTPRequest exchanges a valid OTP for a reset token
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
	OTP   string `json:"otp" binding:"required" validate:"required,len=6,numeric"`
}

// VerifyOTPResponse carries the single-use reset token
type VerifyOTPResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
}

// ResetPasswordRequest completes the password reset flow
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required" validate:"required,email"`
	ResetToken  string `json:"resetToken" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required" validate:"required,min=6"`
}

// CancelResetRequest invalidates an outstanding reset token
type CancelResetRequest struct {
	Email      string `json:"email" binding:"required" validate:"required,email"`
	ResetToken string `json:"resetToken" binding:"required"`
}
