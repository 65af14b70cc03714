package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            int64     `json:"id" db:"id" example:"1"`                            // Unique identifier for the user
	Username      string    `json:"username" db:"username" example:"somchai"`          // Unique display name
	Email         string    `json:"email" db:"email" example:"somchai@sut.ac.th"`      // User's email address
	Password      string    `json:"-" db:"password"`                                   // Bcrypt hash (excluded from JSON)
	Role          RoleType  `json:"role" db:"role" example:"user"`                     // User's role (user or admin)
	Avatar        string    `json:"avatar" db:"avatar" example:"uploads/avatar.png"`   // Avatar path served from /uploads
	Bio           *string   `json:"bio,omitempty" db:"bio"`                            // Profile bio (nullable)
	ExpoPushToken *string   `json:"-" db:"expo_push_token"`                            // Push token for the Expo gateway (nullable)
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`                         // Timestamp when the user registered
}
