package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/repositories"
	"github.com/sutcommunity/backend/internal/db"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
	"github.com/sutcommunity/backend/internal/pkg/filestorage"
)

// MaxMediaFilesPerPost caps the attachments accepted on create and update
const MaxMediaFilesPerPost = 10

// PostService handles post CRUD with media attachments
type PostService struct {
	database     *db.PostgresDB
	postRepo     *repositories.PostRepository
	categoryRepo *repositories.CategoryRepository
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	database *db.PostgresDB,
	postRepo *repositories.PostRepository,
	categoryRepo *repositories.CategoryRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *PostService {
	return &PostService{
		database:     database,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
		logger:       logger,
	}
}

// saveMediaFiles stores the uploads and returns media rows ready for insert.
// Saved paths are returned separately so callers can clean up on rollback.
func (s *PostService) saveMediaFiles(files []*multipart.FileHeader) ([]models.MediaFile, []string, error) {
	media := make([]models.MediaFile, 0, len(files))
	saved := make([]string, 0, len(files))

	for _, fh := range files {
		path, err := s.storage.SaveFile(fh)
		if err != nil {
			return nil, saved, err
		}
		saved = append(saved, path)
		media = append(media, models.MediaFile{
			Type: models.MediaType(filestorage.DetectMediaType(fh.Filename)),
			URL:  path,
		})
	}

	return media, saved, nil
}

// removeFiles deletes stored uploads best-effort
func (s *PostService) removeFiles(paths []string) {
	for _, path := range paths {
		if err := s.storage.DeleteFile(path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove upload file")
		}
	}
}

// validateCategory checks an optional category reference
func (s *PostService) validateCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	exists, err := s.categoryRepo.CategoryExists(ctx, *categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// CreatePost inserts the post and its media rows in one transaction.
// A media failure rolls back the post and removes any stored files.
func (s *PostService) CreatePost(ctx context.Context, post *models.Post, files []*multipart.FileHeader) (int, error) {
	if len(files) > MaxMediaFilesPerPost {
		return 0, fmt.Errorf("%w: at most %d media files per post", apperrors.ErrValidationFailed, MaxMediaFilesPerPost)
	}
	if err := s.validateCategory(ctx, post.CategoryID); err != nil {
		return 0, err
	}

	media, saved, err := s.saveMediaFiles(files)
	if err != nil {
		s.removeFiles(saved)
		return 0, err
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.postRepo.CreatePostTx(ctx, tx, post); err != nil {
			return err
		}
		for i := range media {
			media[i].PostID = post.ID
			if err := s.postRepo.AddMediaFileTx(ctx, tx, &media[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.removeFiles(saved)
		return 0, err
	}

	s.logger.Info().Int64("postID", post.ID).Int("mediaCount", len(media)).Msg("Post created")
	return len(media), nil
}

// UpdatePost edits a post and appends new media in one transaction
func (s *PostService) UpdatePost(ctx context.Context, post *models.Post, requesterID int64, files []*multipart.FileHeader) error {
	if len(files) > MaxMediaFilesPerPost {
		return fmt.Errorf("%w: at most %d media files per post", apperrors.ErrValidationFailed, MaxMediaFilesPerPost)
	}

	ownerID, err := s.postRepo.GetPostOwner(ctx, post.ID)
	if err != nil {
		return err
	}
	if ownerID != requesterID {
		return apperrors.NewForbiddenError("post belongs to another user")
	}

	if err := s.validateCategory(ctx, post.CategoryID); err != nil {
		return err
	}

	media, saved, err := s.saveMediaFiles(files)
	if err != nil {
		s.removeFiles(saved)
		return err
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.postRepo.UpdatePostTx(ctx, tx, post); err != nil {
			return err
		}
		for i := range media {
			media[i].PostID = post.ID
			if err := s.postRepo.AddMediaFileTx(ctx, tx, &media[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.removeFiles(saved)
		return err
	}

	return nil
}

// GetPost returns a single enriched post
func (s *PostService) GetPost(ctx context.Context, postID, viewerID int64) (*models.Post, error) {
	return s.postRepo.GetPostByID(ctx, postID, viewerID)
}

// GetFeed returns the full feed newest first, enriched for the viewer
func (s *PostService) GetFeed(ctx context.Context, viewerID int64) ([]models.Post, error) {
	return s.postRepo.ListPosts(ctx, viewerID)
}

// GetUserPosts returns one author's posts
func (s *PostService) GetUserPosts(ctx context.Context, authorID, viewerID int64) ([]models.Post, error) {
	return s.postRepo.ListPostsByUser(ctx, authorID, viewerID)
}

// SearchPosts matches topic or description
func (s *PostService) SearchPosts(ctx context.Context, query string, viewerID int64) ([]models.Post, error) {
	return s.postRepo.SearchPosts(ctx, query, viewerID)
}

// GetActivityPosts returns posts the user liked or commented on
func (s *PostService) GetActivityPosts(ctx context.Context, userID int64) ([]models.Post, error) {
	return s.postRepo.ListActivityPosts(ctx, userID)
}

// DeletePost removes a post's children and the post row in one transaction,
// then removes stored upload files best-effort
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID int64) error {
	ownerID, err := s.postRepo.GetPostOwner(ctx, postID)
	if err != nil {
		return err
	}
	if ownerID != requesterID {
		return apperrors.NewForbiddenError("post belongs to another user")
	}

	mediaURLs, err := s.postRepo.GetMediaURLsByPostIDs(ctx, []int64{postID})
	if err != nil {
		return err
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.postRepo.DeleteMediaByPostIDsTx(ctx, tx, []int64{postID}); err != nil {
			return err
		}
		return s.postRepo.DeletePostTx(ctx, tx, postID)
	})
	if err != nil {
		return err
	}

	s.removeFiles(mediaURLs)
	s.logger.Info().Int64("postID", postID).Msg("Post deleted")
	return nil
}

// GetCategories returns the selectable post categories
func (s *PostService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAllCategories(ctx)
}
