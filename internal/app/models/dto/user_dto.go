package dto

import (
	"time"

	"github.com/sutcommunity/backend/internal/app/models"
)

// UserResponse is the public projection of a user
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse maps a user model to its public projection
func NewUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}
}

// UpdateUserRequest is the multipart form payload for profile updates.
// Every field is optional; absent fields are left untouched.
type UpdateUserRequest struct {
	Username *string `form:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `form:"email" validate:"omitempty,email"`
	Password *string `form:"password" validate:"omitempty,min=6"`
	Role     *string `form:"role" validate:"omitempty,oneof=user admin"`
	Bio      *string `form:"bio"`
}

// SavePushTokenRequest registers a device push token for the
// authenticated user
type SavePushTokenRequest struct {
	PushToken string `json:"pushToken" binding:"required"`
}
