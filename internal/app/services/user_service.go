package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/repositories"
	"github.com/sutcommunity/backend/internal/db"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
	"github.com/sutcommunity/backend/internal/pkg/auth"
	"github.com/sutcommunity/backend/internal/pkg/filestorage"
)

// UserService handles profile operations, push tokens and account deletion
type UserService struct {
	database         *db.PostgresDB
	userRepo         *repositories.UserRepository
	tokenRepo        *repositories.TokenRepository
	postRepo         *repositories.PostRepository
	commentRepo      *repositories.CommentRepository
	likeRepo         *repositories.LikeRepository
	followRepo       *repositories.FollowRepository
	reportRepo       *repositories.ReportRepository
	notificationRepo *repositories.NotificationRepository
	storage          filestorage.FileStorage
	logger           zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		database:         database,
		userRepo:         repos.UserRepository,
		tokenRepo:        repos.TokenRepository,
		postRepo:         repos.PostRepository,
		commentRepo:      repos.CommentRepository,
		likeRepo:         repos.LikeRepository,
		followRepo:       repos.FollowRepository,
		reportRepo:       repos.ReportRepository,
		notificationRepo: repos.NotificationRepository,
		storage:          storage,
		logger:           logger,
	}
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

// ListUsers returns all users newest first
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListUsers(ctx)
}

// UpdateUser applies a partial profile update. The password, when present,
// is bcrypt-hashed before storage.
func (s *UserService) UpdateUser(ctx context.Context, userID int64, params repositories.UpdateUserParams) (*models.User, error) {
	if params.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*params.Email))
		if !emailRegex.MatchString(normalized) {
			return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
		}
		params.Email = &normalized
	}
	if params.Role != nil {
		role := models.RoleType(*params.Role)
		if role != models.RoleUser && role != models.RoleAdmin {
			return nil, fmt.Errorf("%w: invalid role", apperrors.ErrValidationFailed)
		}
	}
	if params.Password != nil {
		if len(*params.Password) < 6 {
			return nil, fmt.Errorf("%w: password must be at least 6 characters long", apperrors.ErrValidationFailed)
		}
		hash, err := auth.HashPassword(*params.Password)
		if err != nil {
			return nil, err
		}
		params.Password = &hash
	}

	if err := s.userRepo.UpdateUser(ctx, userID, params); err != nil {
		return nil, err
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

// SavePushToken stores the user's Expo push token
func (s *UserService) SavePushToken(ctx context.Context, userID int64, token string) error {
	return s.userRepo.SavePushToken(ctx, userID, token)
}

// DisablePush removes the user's push token
func (s *UserService) DisablePush(ctx context.Context, userID int64) error {
	return s.userRepo.ClearPushToken(ctx, userID)
}

// DeleteUser removes an account and everything hanging off it in one
// transaction, in dependency order: the user's comments, follow edges on
// either side, then per-post children (comments, reports, likes, media) of
// the user's posts, the user's reports, likes and posts, notifications the
// user received or triggered, and finally the user row. A missing user
// surfaces only at the final delete.
func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	var mediaURLs []string

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.commentRepo.DeleteCommentsByUserTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.followRepo.DeleteFollowsByUserTx(ctx, tx, userID); err != nil {
			return err
		}

		postIDs, err := s.postRepo.GetPostIDsByUserTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		// Collect upload paths before the rows disappear
		mediaURLs, err = s.postRepo.GetMediaURLsByPostIDs(ctx, postIDs)
		if err != nil {
			return err
		}

		if err := s.commentRepo.DeleteCommentsByPostIDsTx(ctx, tx, postIDs); err != nil {
			return err
		}
		if err := s.reportRepo.DeleteReportsByPostIDsTx(ctx, tx, postIDs); err != nil {
			return err
		}
		if err := s.likeRepo.DeleteLikesByPostIDsTx(ctx, tx, postIDs); err != nil {
			return err
		}
		if err := s.postRepo.DeleteMediaByPostIDsTx(ctx, tx, postIDs); err != nil {
			return err
		}

		if err := s.reportRepo.DeleteReportsByUserTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.likeRepo.DeleteLikesByUserTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.postRepo.DeletePostsByUserTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.notificationRepo.DeleteNotificationsByUserTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.tokenRepo.DeleteUserTokensTx(ctx, tx, userID); err != nil {
			return err
		}

		return s.userRepo.DeleteUserTx(ctx, tx, userID)
	})
	if err != nil {
		return err
	}

	// Upload files are removed only after the transaction committed
	for _, url := range mediaURLs {
		if err := s.storage.DeleteFile(url); err != nil {
			s.logger.Warn().Err(err).Str("path", url).Msg("Failed to remove upload file")
		}
	}

	s.logger.Info().Int64("userID", userID).Msg("User account deleted")
	return nil
}
