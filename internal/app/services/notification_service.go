package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/repositories"
	"github.com/sutcommunity/backend/internal/pkg/push"
	"github.com/sutcommunity/backend/internal/pkg/websocket"
)

// NotificationMessage builds the stored text for a notification type.
// reason is only used for report notifications.
func NotificationMessage(notificationType models.NotificationType, senderUsername, reason string) string {
	switch notificationType {
	case models.NotificationTypeLike:
		return fmt.Sprintf("%s liked your post", senderUsername)
	case models.NotificationTypeComment:
		return fmt.Sprintf("%s commented on your post", senderUsername)
	case models.NotificationTypeFollow:
		return fmt.Sprintf("%s started following you", senderUsername)
	case models.NotificationTypeReport:
		return fmt.Sprintf("Your post has been reported for: %s", reason)
	default:
		return ""
	}
}

// NotificationService inserts notification rows and fans them out over
// Expo push and the websocket feed
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
	pushClient       *push.Client
	hub              *websocket.Hub
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	userRepo *repositories.UserRepository,
	pushClient *push.Client,
	hub *websocket.Hub,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		pushClient:       pushClient,
		hub:              hub,
		logger:           logger,
	}
}

// Dispatch records a notification for recipientID and fans it out.
// Self-actions are skipped. The row insert is the only step that can fail;
// push and websocket delivery are best-effort and never surface errors.
func (s *NotificationService) Dispatch(ctx context.Context, recipientID, senderID int64, notificationType models.NotificationType, referenceID int64, reason string) error {
	if recipientID == senderID {
		return nil
	}

	sender, err := s.userRepo.GetUserByID(ctx, senderID)
	if err != nil {
		s.logger.Error().Err(err).Int64("senderID", senderID).Msg("Failed to load notification sender")
		return err
	}

	message := NotificationMessage(notificationType, sender.Username, reason)

	notification := &models.Notification{
		UserID:      recipientID,
		SenderID:    senderID,
		Type:        notificationType,
		ReferenceID: referenceID,
		Message:     message,
	}
	if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
		return err
	}

	s.sendPush(recipientID, message)

	s.hub.NotifyUser(&websocket.Event{
		Type:             "notification",
		UserID:           recipientID,
		SenderID:         senderID,
		NotificationType: string(notificationType),
		ReferenceID:      referenceID,
		Message:          message,
		Timestamp:        notification.CreatedAt,
		ID:               notification.ID,
	})

	return nil
}

// sendPush delivers the message to the recipient's device in the background.
// Failures are logged and swallowed.
func (s *NotificationService) sendPush(recipientID int64, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		token, err := s.userRepo.GetPushToken(ctx, recipientID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("recipientID", recipientID).Msg("Failed to load push token")
			return
		}
		if token == nil || *token == "" {
			return
		}

		msg := push.Message{
			To:    *token,
			Sound: "default",
			Title: "SUT Community",
			Body:  message,
		}
		if err := s.pushClient.Send(ctx, msg); err != nil {
			s.logger.Warn().Err(err).Int64("recipientID", recipientID).Msg("Push notification delivery failed")
		}
	}()
}

// GetNotifications returns one page of a user's notifications with the
// hasMore flag and the unread total
func (s *NotificationService) GetNotifications(ctx context.Context, userID int64, offset uint64, limit int) ([]models.Notification, bool, int64, error) {
	notifications, hasMore, err := s.notificationRepo.GetNotificationsByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, false, 0, err
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, false, 0, err
	}

	return notifications, hasMore, unread, nil
}

// MarkAsRead flips one of the user's notifications to read
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.MarkAsRead(ctx, id, userID)
}

// MarkAllAsRead flips all of a user's unread notifications and returns the count
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}
