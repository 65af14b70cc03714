package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sutcommunity/backend/internal/pkg/apperrors"
	"github.com/sutcommunity/backend/internal/pkg/dberrors"
	"github.com/sutcommunity/backend/internal/pkg/logger"
)

// LikeRepository handles like database operations
type LikeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Exists reports whether the user already liked the post
func (r *LikeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("likes").
		Where(squirrel.Eq{"post_id": postID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build like exists query: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking like existence: %w", err)
	}
	return true, nil
}

// CreateLike inserts a like row. The unique constraint on (post_id, user_id)
// maps a concurrent duplicate insert to the same conflict error as the
// existence check.
func (r *LikeRepository) CreateLike(ctx context.Context, postID, userID int64) error {
	sql, args, err := r.sb.Insert("likes").
		Columns("post_id", "user_id").
		Values(postID, userID).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create like SQL")
		return fmt.Errorf("failed to build create like query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyLiked
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", postID).Int64("userID", userID).Msg("Error executing create like query")
		return fmt.Errorf("error creating like: %w", err)
	}

	return nil
}

// DeleteLike removes a like row.
// Returns apperrors.ErrLikeNotFound when the row was absent.
func (r *LikeRepository) DeleteLike(ctx context.Context, postID, userID int64) error {
	sql, args, err := r.sb.Delete("likes").
		Where(squirrel.Eq{"post_id": postID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete like query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Int64("userID", userID).Msg("Error deleting like")
		return fmt.Errorf("error deleting like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrLikeNotFound
	}
	return nil
}

// CountByPost recounts the likes on a post
func (r *LikeRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("likes").
		Where(squirrel.Eq{"post_id": postID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count likes query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting likes: %w", err)
	}
	return count, nil
}

// DeleteLikesByUserTx removes a user's likes inside a transaction
func (r *LikeRepository) DeleteLikesByUserTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	sql, args, err := r.sb.Delete("likes").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user likes query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user likes: %w", err)
	}
	return nil
}

// DeleteLikesByPostIDsTx removes likes on the given posts inside a transaction
func (r *LikeRepository) DeleteLikesByPostIDsTx(ctx context.Context, tx pgx.Tx, postIDs []int64) error {
	if len(postIDs) == 0 {
		return nil
	}

	sql, args, err := r.sb.Delete("likes").
		Where(squirrel.Eq{"post_id": postIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete post likes query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting post likes: %w", err)
	}
	return nil
}
