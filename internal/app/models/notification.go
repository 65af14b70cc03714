package models

import (
	"time"
)

// Notification defines the notification model based on the 'notifications'
// table. ReferenceID points at the post (like/comment/report) or at the
// sender's user id (follow).
type Notification struct {
	ID          int64              `json:"id" db:"id"`
	UserID      int64              `json:"userId" db:"user_id"`     // Recipient
	SenderID    int64              `json:"senderId" db:"sender_id"` // Actor who triggered it
	Type        NotificationType   `json:"type" db:"notification_type"`
	ReferenceID int64              `json:"referenceId" db:"reference_id"`
	Message     string             `json:"message" db:"message"`
	Status      NotificationStatus `json:"status" db:"status"`
	CreatedAt   time.Time          `json:"createdAt" db:"created_at"`

	// Joined sender fields
	SenderUsername *string `json:"senderUsername,omitempty"`
	SenderAvatar   *string `json:"senderAvatar,omitempty"`
}
