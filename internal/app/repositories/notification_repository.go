package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
	"github.com/sutcommunity/backend/internal/pkg/dberrors"
	"github.com/sutcommunity/backend/internal/pkg/logger"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateNotification inserts a notification row with status unread
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	sql, args, err := r.sb.Insert("notifications").
		Columns("user_id", "sender_id", "notification_type", "reference_id", "message", "status").
		Values(n.UserID, n.SenderID, n.Type, n.ReferenceID, n.Message, models.NotificationStatusUnread).
		Suffix("RETURNING id, status, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create notification SQL")
		return fmt.Errorf("failed to build create notification query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.Status, &n.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", n.UserID).Msg("Error executing create notification query")
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// GetNotificationsByUser returns one page of a user's notifications newest
// first with sender info. limit+1 rows are requested so the caller learns
// whether another page exists.
func (r *NotificationRepository) GetNotificationsByUser(ctx context.Context, userID int64, offset uint64, limit int) ([]models.Notification, bool, error) {
	sql, args, err := r.sb.Select(
		"n.id", "n.user_id", "n.sender_id", "n.notification_type", "n.reference_id",
		"n.message", "n.status", "n.created_at",
		"u.username", "u.avatar",
	).
		From("notifications n").
		LeftJoin("users u ON u.id = n.sender_id").
		Where(squirrel.Eq{"n.user_id": userID}).
		OrderBy("n.created_at DESC").
		Offset(offset).
		Limit(uint64(limit) + 1).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build get notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing get notifications query")
		return nil, false, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		n := models.Notification{}
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.SenderID,
			&n.Type,
			&n.ReferenceID,
			&n.Message,
			&n.Status,
			&n.CreatedAt,
			&n.SenderUsername,
			&n.SenderAvatar,
		)
		if err != nil {
			return nil, false, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("error iterating notification rows: %w", err)
	}

	hasMore := len(notifications) > limit
	if hasMore {
		notifications = notifications[:limit]
	}

	return notifications, hasMore, nil
}

// CountUnread counts a user's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "status": models.NotificationStatusUnread}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count unread query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead flips a single notification unread→read, scoped to its owner.
// Returns apperrors.ErrNotificationNotFound when no matching row exists.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	sql, args, err := r.sb.Update("notifications").
		Set("status", models.NotificationStatusRead).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark as read query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error marking notification as read")
		return fmt.Errorf("error marking notification as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead flips all of a user's unread notifications to read and
// returns the number of rows updated
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := r.sb.Update("notifications").
		Set("status", models.NotificationStatusRead).
		Where(squirrel.Eq{"user_id": userID, "status": models.NotificationStatusUnread}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build mark all as read query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error marking all notifications as read")
		return 0, fmt.Errorf("error marking all notifications as read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteNotificationsByUserTx removes notifications addressed to or sent by
// the user inside a transaction
func (r *NotificationRepository) DeleteNotificationsByUserTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	sql, args, err := r.sb.Delete("notifications").
		Where(squirrel.Or{
			squirrel.Eq{"user_id": userID},
			squirrel.Eq{"sender_id": userID},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user notifications query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user notifications: %w", err)
	}
	return nil
}
