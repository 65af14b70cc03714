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
	"github.com/sutcommunity/backend/internal/pkg/logger"
)

// PostRepository handles post and media database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// enrichedSelect builds the post select with author info, like count and the
// viewer's liked flag computed per row.
func (r *PostRepository) enrichedSelect(viewerID int64) squirrel.SelectBuilder {
	return r.sb.Select(
		"p.id", "p.user_id", "p.topic", "p.description", "p.category_id",
		"p.location", "p.latitude", "p.longitude", "p.created_at",
		"u.username", "COALESCE(u.avatar, '')",
		"(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count",
	).
		Column(squirrel.Expr("EXISTS(SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = ?) AS liked", viewerID)).
		From("posts p").
		Join("users u ON u.id = p.user_id")
}

func scanEnrichedPost(row pgx.Row) (*models.Post, error) {
	post := &models.Post{}
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Topic,
		&post.Description,
		&post.CategoryID,
		&post.Location,
		&post.Latitude,
		&post.Longitude,
		&post.CreatedAt,
		&post.Username,
		&post.UserAvatar,
		&post.LikeCount,
		&post.Liked,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostTx inserts a post inside a transaction and returns its ID
func (r *PostRepository) CreatePostTx(ctx context.Context, tx pgx.Tx, post *models.Post) (int64, error) {
	sql, args, err := r.sb.Insert("posts").
		Columns("user_id", "topic", "description", "category_id", "location", "latitude", "longitude").
		Values(post.UserID, post.Topic, post.Description, post.CategoryID, post.Location, post.Latitude, post.Longitude).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create post SQL")
		return 0, fmt.Errorf("failed to build create post query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("userID", post.UserID).Msg("Error executing create post query")
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return post.ID, nil
}

// UpdatePostTx updates a post's editable fields inside a transaction
func (r *PostRepository) UpdatePostTx(ctx context.Context, tx pgx.Tx, post *models.Post) error {
	sql, args, err := r.sb.Update("posts").
		Set("topic", post.Topic).
		Set("description", post.Description).
		Set("category_id", post.CategoryID).
		Set("location", post.Location).
		Set("latitude", post.Latitude).
		Set("longitude", post.Longitude).
		Where(squirrel.Eq{"id": post.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update post query: %w", err)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", post.ID).Msg("Error executing update post query")
		return fmt.Errorf("error updating post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// AddMediaFileTx inserts a media row inside a transaction
func (r *PostRepository) AddMediaFileTx(ctx context.Context, tx pgx.Tx, media *models.MediaFile) error {
	sql, args, err := r.sb.Insert("media_files").
		Columns("post_id", "media_type", "media_url").
		Values(media.PostID, media.Type, media.URL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add media query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&media.ID)
	if err != nil {
		logger.Error().Err(err).Int64("postID", media.PostID).Msg("Error executing add media query")
		return fmt.Errorf("error adding media file: %w", err)
	}

	return nil
}

// GetPostByID retrieves a single enriched post with its media
func (r *PostRepository) GetPostByID(ctx context.Context, postID, viewerID int64) (*models.Post, error) {
	sql, args, err := r.enrichedSelect(viewerID).
		Where(squirrel.Eq{"p.id": postID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	post, err := scanEnrichedPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", postID).Msg("Error scanning post row")
		return nil, fmt.Errorf("error getting post by ID: %w", err)
	}

	if err := r.loadMedia(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}

	return post, nil
}

// GetPostOwner returns the author ID of a post
func (r *PostRepository) GetPostOwner(ctx context.Context, postID int64) (int64, error) {
	sql, args, err := r.sb.Select("user_id").
		From("posts").
		Where(squirrel.Eq{"id": postID}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build get post owner query: %w", err)
	}

	var ownerID int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("error getting post owner: %w", err)
	}

	return ownerID, nil
}

// ListPosts returns the feed newest first, enriched for the viewer
func (r *PostRepository) ListPosts(ctx context.Context, viewerID int64) ([]models.Post, error) {
	builder := r.enrichedSelect(viewerID).OrderBy("p.created_at DESC")
	return r.queryEnriched(ctx, builder)
}

// ListPostsByUser returns one author's posts newest first
func (r *PostRepository) ListPostsByUser(ctx context.Context, authorID, viewerID int64) ([]models.Post, error) {
	builder := r.enrichedSelect(viewerID).
		Where(squirrel.Eq{"p.user_id": authorID}).
		OrderBy("p.created_at DESC")
	return r.queryEnriched(ctx, builder)
}

// SearchPosts matches topic or description case-insensitively
func (r *PostRepository) SearchPosts(ctx context.Context, query string, viewerID int64) ([]models.Post, error) {
	pattern := "%" + query + "%"
	builder := r.enrichedSelect(viewerID).
		Where(squirrel.Or{
			squirrel.ILike{"p.topic": pattern},
			squirrel.ILike{"p.description": pattern},
		}).
		OrderBy("p.created_at DESC")
	return r.queryEnriched(ctx, builder)
}

// ListActivityPosts returns posts the user liked or commented on, newest first
func (r *PostRepository) ListActivityPosts(ctx context.Context, userID int64) ([]models.Post, error) {
	builder := r.enrichedSelect(userID).
		Where(squirrel.Expr(
			"(EXISTS(SELECT 1 FROM likes al WHERE al.post_id = p.id AND al.user_id = ?) OR EXISTS(SELECT 1 FROM comments ac WHERE ac.post_id = p.id AND ac.user_id = ?))",
			userID, userID,
		)).
		OrderBy("p.created_at DESC")
	return r.queryEnriched(ctx, builder)
}

func (r *PostRepository) queryEnriched(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Post, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing posts query")
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanEnrichedPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	refs := make([]*models.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	if err := r.loadMedia(ctx, refs); err != nil {
		return nil, err
	}

	return posts, nil
}

// loadMedia attaches media rows to the given posts in one query
func (r *PostRepository) loadMedia(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(posts))
	byID := make(map[int64]*models.Post, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.MediaFiles = []models.MediaFile{}
	}

	sql, args, err := r.sb.Select("id", "post_id", "media_type", "media_url").
		From("media_files").
		Where(squirrel.Eq{"post_id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build load media query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing load media query")
		return fmt.Errorf("error querying media files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		media := models.MediaFile{}
		if err := rows.Scan(&media.ID, &media.PostID, &media.Type, &media.URL); err != nil {
			return fmt.Errorf("error scanning media row: %w", err)
		}
		if post, ok := byID[media.PostID]; ok {
			post.MediaFiles = append(post.MediaFiles, media)
		}
	}
	return rows.Err()
}

// GetMediaURLsByPostIDs returns stored media paths for the given posts.
// Used to remove upload files after a delete commits.
func (r *PostRepository) GetMediaURLsByPostIDs(ctx context.Context, postIDs []int64) ([]string, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	sql, args, err := r.sb.Select("media_url").
		From("media_files").
		Where(squirrel.Eq{"post_id": postIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get media urls query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying media urls: %w", err)
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("error scanning media url: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// GetPostIDsByUserTx enumerates a user's post IDs inside a transaction
func (r *PostRepository) GetPostIDsByUserTx(ctx context.Context, tx pgx.Tx, userID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("id").
		From("posts").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get post IDs query: %w", err)
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying post IDs: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning post ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteMediaByPostIDsTx removes media rows for the given posts inside a transaction
func (r *PostRepository) DeleteMediaByPostIDsTx(ctx context.Context, tx pgx.Tx, postIDs []int64) error {
	if len(postIDs) == 0 {
		return nil
	}

	sql, args, err := r.sb.Delete("media_files").
		Where(squirrel.Eq{"post_id": postIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete media query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting media files: %w", err)
	}
	return nil
}

// DeletePostTx removes a post row inside a transaction.
// Returns apperrors.ErrPostNotFound when no row was deleted.
func (r *PostRepository) DeletePostTx(ctx context.Context, tx pgx.Tx, postID int64) error {
	sql, args, err := r.sb.Delete("posts").
		Where(squirrel.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete post query: %w", err)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error deleting post")
		return fmt.Errorf("error deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// DeletePostsByUserTx removes all posts of a user inside a transaction
func (r *PostRepository) DeletePostsByUserTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	sql, args, err := r.sb.Delete("posts").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user posts query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user posts: %w", err)
	}
	return nil
}
