package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
	"github.com/sutcommunity/backend/internal/pkg/logger"
)

// CommentRepository handles comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateComment inserts a comment and fills its ID and timestamps
func (r *CommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	sql, args, err := r.sb.Insert("comments").
		Columns("post_id", "user_id", "comment_text").
		Values(comment.PostID, comment.UserID, comment.Text).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create comment SQL")
		return fmt.Errorf("failed to build create comment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("postID", comment.PostID).Msg("Error executing create comment query")
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

// GetCommentByID retrieves a single comment
func (r *CommentRepository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	sql, args, err := r.sb.Select("id", "post_id", "user_id", "comment_text", "created_at", "updated_at").
		From("comments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get comment query: %w", err)
	}

	comment := &models.Comment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.Text,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		logger.Error().Err(err).Int64("commentID", id).Msg("Error scanning comment row")
		return nil, fmt.Errorf("error getting comment by ID: %w", err)
	}

	return comment, nil
}

// GetCommentsByPost returns a post's comments oldest first with author info
func (r *CommentRepository) GetCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.post_id", "c.user_id", "c.comment_text", "c.created_at", "c.updated_at",
		"u.username", "COALESCE(u.avatar, '')",
	).
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c.post_id": postID}).
		OrderBy("c.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error executing get comments query")
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		comment := models.Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.UserID,
			&comment.Text,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&comment.Username,
			&comment.UserAvatar,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// UpdateComment replaces a comment's text and stamps updated_at
func (r *CommentRepository) UpdateComment(ctx context.Context, id int64, text string) error {
	sql, args, err := r.sb.Update("comments").
		Set("comment_text", text).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update comment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error updating comment")
		return fmt.Errorf("error updating comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// DeleteComment removes a comment
func (r *CommentRepository) DeleteComment(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("comments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete comment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error deleting comment")
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// DeleteCommentsByUserTx removes a user's comments inside a transaction
func (r *CommentRepository) DeleteCommentsByUserTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	sql, args, err := r.sb.Delete("comments").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user comments query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user comments: %w", err)
	}
	return nil
}

// DeleteCommentsByPostIDsTx removes comments on the given posts inside a transaction
func (r *CommentRepository) DeleteCommentsByPostIDsTx(ctx context.Context, tx pgx.Tx, postIDs []int64) error {
	if len(postIDs) == 0 {
		return nil
	}

	sql, args, err := r.sb.Delete("comments").
		Where(squirrel.Eq{"post_id": postIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete post comments query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting post comments: %w", err)
	}
	return nil
}
