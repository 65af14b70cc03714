package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/repositories"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
)

// CommentService handles comment operations
type CommentService struct {
	commentRepo         *repositories.CommentRepository
	postRepo            *repositories.PostRepository
	notificationService *NotificationService
	logger              zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo *repositories.CommentRepository,
	postRepo *repositories.PostRepository,
	notificationService *NotificationService,
	logger zerolog.Logger,
) *CommentService {
	return &CommentService{
		commentRepo:         commentRepo,
		postRepo:            postRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// GetComments returns a post's comments oldest first
func (s *CommentService) GetComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	return s.commentRepo.GetCommentsByPost(ctx, postID)
}

// CreateComment inserts a comment and notifies the post owner
func (s *CommentService) CreateComment(ctx context.Context, comment *models.Comment) error {
	ownerID, err := s.postRepo.GetPostOwner(ctx, comment.PostID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return err
	}

	if err := s.notificationService.Dispatch(ctx, ownerID, comment.UserID, models.NotificationTypeComment, comment.PostID, ""); err != nil {
		s.logger.Warn().Err(err).Int64("postID", comment.PostID).Msg("Comment notification dispatch failed")
	}

	return nil
}

// UpdateComment edits a comment, owner only
func (s *CommentService) UpdateComment(ctx context.Context, commentID, requesterID int64, text string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != requesterID {
		return nil, apperrors.ErrNotCommentOwner
	}

	if err := s.commentRepo.UpdateComment(ctx, commentID, text); err != nil {
		return nil, err
	}

	return s.commentRepo.GetCommentByID(ctx, commentID)
}

// DeleteComment removes a comment, owner only
func (s *CommentService) DeleteComment(ctx context.Context, commentID, requesterID int64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != requesterID {
		return apperrors.ErrNotCommentOwner
	}

	return s.commentRepo.DeleteComment(ctx, commentID)
}
