package dto

import (
	"time"

	"github.com/sutcommunity/backend/internal/app/models"
)

// NotificationResponse is a notification with its sender details
type NotificationResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	SenderID     int64     `json:"senderId"`
	Type         string    `json:"type"`
	ReferenceID  int64     `json:"referenceId"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	SenderName   string    `json:"senderName"`
	SenderAvatar string    `json:"senderAvatar"`
}

// NewNotificationResponse maps a notification model to its API shape
func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}
	senderName := ""
	if n.SenderUsername != nil {
		senderName = *n.SenderUsername
	}
	senderAvatar := ""
	if n.SenderAvatar != nil {
		senderAvatar = *n.SenderAvatar
	}
	return &NotificationResponse{
		ID:           n.ID,
		UserID:       n.UserID,
		SenderID:     n.SenderID,
		Type:         string(n.Type),
		ReferenceID:  n.ReferenceID,
		Message:      n.Message,
		Status:       string(n.Status),
		CreatedAt:    n.CreatedAt,
		SenderName:   senderName,
		SenderAvatar: senderAvatar,
	}
}

// NotificationListResponse is a page of notifications with a cursor hint
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	HasMore       bool                   `json:"hasMore"`
	UnreadCount   int64                  `json:"unreadCount"`
}

// NewNotificationListResponse builds a notification page response
func NewNotificationListResponse(notifications []models.Notification, hasMore bool, unreadCount int64) *NotificationListResponse {
	items := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, *NewNotificationResponse(&notifications[i]))
	}
	return &NotificationListResponse{
		Notifications: items,
		HasMore:       hasMore,
		UnreadCount:   unreadCount,
	}
}
