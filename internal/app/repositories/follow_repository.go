package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
	"github.com/sutcommunity/backend/internal/pkg/dberrors"
	"github.com/sutcommunity/backend/internal/pkg/logger"
)

// FollowRepository handles follow edge database operations
type FollowRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Exists reports whether the follow edge already exists
func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("followers").
		Where(squirrel.Eq{"follower_id": followerID, "followed_id": followedID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build follow exists query: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking follow existence: %w", err)
	}
	return true, nil
}

// CreateFollow inserts a follow edge
func (r *FollowRepository) CreateFollow(ctx context.Context, followerID, followedID int64) error {
	sql, args, err := r.sb.Insert("followers").
		Columns("follower_id", "followed_id").
		Values(followerID, followedID).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create follow SQL")
		return fmt.Errorf("failed to build create follow query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyFollowing
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("followerID", followerID).Int64("followedID", followedID).Msg("Error executing create follow query")
		return fmt.Errorf("error creating follow: %w", err)
	}

	return nil
}

// DeleteFollow removes a follow edge.
// Returns apperrors.ErrFollowNotFound when the edge was absent.
func (r *FollowRepository) DeleteFollow(ctx context.Context, followerID, followedID int64) error {
	sql, args, err := r.sb.Delete("followers").
		Where(squirrel.Eq{"follower_id": followerID, "followed_id": followedID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete follow query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("followerID", followerID).Int64("followedID", followedID).Msg("Error deleting follow")
		return fmt.Errorf("error deleting follow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFollowNotFound
	}
	return nil
}

// GetFollowers lists the users following userID
func (r *FollowRepository) GetFollowers(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	sql, args, err := r.sb.Select("u.id", "u.username", "u.avatar").
		From("followers f").
		Join("users u ON u.id = f.follower_id").
		Where(squirrel.Eq{"f.followed_id": userID}).
		OrderBy("u.username ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get followers query: %w", err)
	}

	return r.querySummaries(ctx, sql, args)
}

// GetFollowing lists the users that userID follows
func (r *FollowRepository) GetFollowing(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	sql, args, err := r.sb.Select("u.id", "u.username", "u.avatar").
		From("followers f").
		Join("users u ON u.id = f.followed_id").
		Where(squirrel.Eq{"f.follower_id": userID}).
		OrderBy("u.username ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get following query: %w", err)
	}

	return r.querySummaries(ctx, sql, args)
}

func (r *FollowRepository) querySummaries(ctx context.Context, sql string, args []interface{}) ([]models.UserSummary, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing follow list query")
		return nil, fmt.Errorf("error querying follow list: %w", err)
	}
	defer rows.Close()

	users := []models.UserSummary{}
	for rows.Next() {
		user := models.UserSummary{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Avatar); err != nil {
			return nil, fmt.Errorf("error scanning follow row: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CountFollowers counts the users following userID
func (r *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, squirrel.Eq{"followed_id": userID})
}

// CountFollowing counts the users userID follows
func (r *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, squirrel.Eq{"follower_id": userID})
}

func (r *FollowRepository) count(ctx context.Context, where squirrel.Eq) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("followers").
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count follows query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting follows: %w", err)
	}
	return count, nil
}

// DeleteFollowsByUserTx removes follow edges on either side of a user
// inside a transaction
func (r *FollowRepository) DeleteFollowsByUserTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	sql, args, err := r.sb.Delete("followers").
		Where(squirrel.Or{
			squirrel.Eq{"follower_id": userID},
			squirrel.Eq{"followed_id": userID},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user follows query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user follows: %w", err)
	}
	return nil
}
