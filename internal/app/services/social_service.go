package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/repositories"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
)

// SocialService handles likes and follow relationships
type SocialService struct {
	likeRepo            *repositories.LikeRepository
	followRepo          *repositories.FollowRepository
	postRepo            *repositories.PostRepository
	userRepo            *repositories.UserRepository
	notificationService *NotificationService
	logger              zerolog.Logger
}

// NewSocialService creates a new SocialService
func NewSocialService(
	likeRepo *repositories.LikeRepository,
	followRepo *repositories.FollowRepository,
	postRepo *repositories.PostRepository,
	userRepo *repositories.UserRepository,
	notificationService *NotificationService,
	logger zerolog.Logger,
) *SocialService {
	return &SocialService{
		likeRepo:            likeRepo,
		followRepo:          followRepo,
		postRepo:            postRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// LikePost records a like, recounts and notifies the post owner.
// Returns the authoritative like count after the insert.
func (s *SocialService) LikePost(ctx context.Context, postID, userID int64) (int64, error) {
	ownerID, err := s.postRepo.GetPostOwner(ctx, postID)
	if err != nil {
		return 0, err
	}

	liked, err := s.likeRepo.Exists(ctx, postID, userID)
	if err != nil {
		return 0, err
	}
	if liked {
		return 0, apperrors.ErrAlreadyLiked
	}

	if err := s.likeRepo.CreateLike(ctx, postID, userID); err != nil {
		return 0, err
	}

	count, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return 0, err
	}

	if err := s.notificationService.Dispatch(ctx, ownerID, userID, models.NotificationTypeLike, postID, ""); err != nil {
		s.logger.Warn().Err(err).Int64("postID", postID).Msg("Like notification dispatch failed")
	}

	return count, nil
}

// UnlikePost removes a like and recounts
func (s *SocialService) UnlikePost(ctx context.Context, postID, userID int64) (int64, error) {
	if err := s.likeRepo.DeleteLike(ctx, postID, userID); err != nil {
		return 0, err
	}
	return s.likeRepo.CountByPost(ctx, postID)
}

// Follow records a follow edge and notifies the followed user
func (s *SocialService) Follow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return apperrors.ErrSelfFollow
	}

	if _, err := s.userRepo.GetUserByID(ctx, followedID); err != nil {
		return err
	}

	following, err := s.followRepo.Exists(ctx, followerID, followedID)
	if err != nil {
		return err
	}
	if following {
		return apperrors.ErrAlreadyFollowing
	}

	if err := s.followRepo.CreateFollow(ctx, followerID, followedID); err != nil {
		return err
	}

	if err := s.notificationService.Dispatch(ctx, followedID, followerID, models.NotificationTypeFollow, followerID, ""); err != nil {
		s.logger.Warn().Err(err).Int64("followedID", followedID).Msg("Follow notification dispatch failed")
	}

	return nil
}

// Unfollow removes a follow edge
func (s *SocialService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	return s.followRepo.DeleteFollow(ctx, followerID, followedID)
}

// GetFollowers lists the users following userID
func (s *SocialService) GetFollowers(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	return s.followRepo.GetFollowers(ctx, userID)
}

// GetFollowing lists the users that userID follows
func (s *SocialService) GetFollowing(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	return s.followRepo.GetFollowing(ctx, userID)
}

// GetFollowCounts returns follower and following totals
func (s *SocialService) GetFollowCounts(ctx context.Context, userID int64) (followers, following int64, err error) {
	followers, err = s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	following, err = s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
