package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/models/dto"
	"github.com/sutcommunity/backend/internal/middleware"
)

// PostService defines the post operations the controller depends on
type PostService interface {
	CreatePost(ctx context.Context, post *models.Post, files []*multipart.FileHeader) (int, error)
	UpdatePost(ctx context.Context, post *models.Post, requesterID int64, files []*multipart.FileHeader) error
	GetPost(ctx context.Context, postID, viewerID int64) (*models.Post, error)
	GetFeed(ctx context.Context, viewerID int64) ([]models.Post, error)
	GetUserPosts(ctx context.Context, authorID, viewerID int64) ([]models.Post, error)
	SearchPosts(ctx context.Context, query string, viewerID int64) ([]models.Post, error)
	GetActivityPosts(ctx context.Context, userID int64) ([]models.Post, error)
	DeletePost(ctx context.Context, postID, requesterID int64) error
	GetCategories(ctx context.Context) ([]models.Category, error)
}

// PostController handles post and media operations
type PostController struct {
	postService PostService
}

// NewPostController creates a new PostController
func NewPostController(postService PostService) *PostController {
	return &PostController{
		postService: postService,
	}
}

// mediaFiles extracts the uploaded media attachments from a multipart request
func mediaFiles(ctx *gin.Context) []*multipart.FileHeader {
	form, err := ctx.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["media"]
}

// CreatePost handles post creation with media attachments
// @Summary Create a post
// @Description Creates a post with optional category, location and up to 10 media files
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param topic formData string true "Post topic"
// @Param description formData string true "Post description"
// @Param categoryId formData int false "Category ID"
// @Param location formData string false "Location name"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param media formData file false "Media files (repeatable, max 10)"
// @Success 201 {object} dto.APIResponse{data=dto.CreatePostResponse} "Post created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post := &models.Post{
		UserID:      ctx.GetInt64("userID"),
		Topic:       req.Topic,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	mediaCount, err := c.postService.CreatePost(ctx, post, mediaFiles(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.CreatePostResponse{
		Message:    "Post created successfully",
		PostID:     post.ID,
		MediaCount: mediaCount,
	}))
}

// UpdatePost handles post updates, appending any new media
// @Summary Update a post
// @Description Updates a post's fields and appends uploaded media files
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param topic formData string true "Post topic"
// @Param description formData string true "Post description"
// @Param categoryId formData int false "Category ID"
// @Param location formData string false "Location name"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param media formData file false "Additional media files"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Post updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Not the post owner"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")
		errorDetail = errorDetail.WithDetails("Post ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	requesterID := ctx.GetInt64("userID")
	post := &models.Post{
		ID:          id,
		Topic:       req.Topic,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	if err := c.postService.UpdatePost(ctx, post, requesterID, mediaFiles(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Post updated successfully"}))
}

// GetFeed retrieves all posts, newest first
// @Summary Get the post feed
// @Description Retrieves all posts newest first, enriched with author, like count and the viewer's liked flag
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param userId query int false "Viewer user ID for the liked flag"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse} "Posts retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts [get]
func (c *PostController) GetFeed(ctx *gin.Context) {
	viewerID, _ := strconv.ParseInt(ctx.Query("userId"), 10, 64)

	posts, err := c.postService.GetFeed(ctx, viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPostListResponse(posts)))
}

// GetPost retrieves a single post by ID
// @Summary Get a post
// @Description Retrieves one post with author, like count, liked flag and media
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param userId query int false "Viewer user ID for the liked flag"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")
		errorDetail = errorDetail.WithDetails("Post ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	viewerID, _ := strconv.ParseInt(ctx.Query("userId"), 10, 64)

	post, err := c.postService.GetPost(ctx, id, viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPostResponse(post)))
}

// GetUserPosts retrieves all posts by one author
// @Summary Get a user's posts
// @Description Retrieves all posts written by one user, newest first
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Author user ID"
// @Param viewerId query int false "Viewer user ID for the liked flag"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse} "Posts retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/user/{userId} [get]
func (c *PostController) GetUserPosts(ctx *gin.Context) {
	authorID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	viewerID, _ := strconv.ParseInt(ctx.Query("viewerId"), 10, 64)

	posts, err := c.postService.GetUserPosts(ctx, authorID, viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPostListResponse(posts)))
}

// SearchPosts searches posts by topic or description
// @Summary Search posts
// @Description Case-insensitive search across post topics and descriptions
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param query query string true "Search text"
// @Param userId query int false "Viewer user ID for the liked flag"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse} "Matching posts"
// @Failure 400 {object} dto.ErrorResponse "Missing search text"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/search [get]
func (c *PostController) SearchPosts(ctx *gin.Context) {
	query := ctx.Query("query")
	if query == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Search text is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	viewerID, _ := strconv.ParseInt(ctx.Query("userId"), 10, 64)

	posts, err := c.postService.SearchPosts(ctx, query, viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPostListResponse(posts)))
}

// GetActivityPosts retrieves posts the user liked or commented on
// @Summary Get activity posts
// @Description Retrieves posts the user has liked or commented on
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse} "Posts retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/activity/{userId} [get]
func (c *PostController) GetActivityPosts(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	posts, err := c.postService.GetActivityPosts(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPostListResponse(posts)))
}

// DeletePost removes a post, its media rows and the stored files
// @Summary Delete a post
// @Description Deletes a post with its media; only the owner may delete
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Post deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 403 {object} dto.ErrorResponse "Not the post owner"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")
		errorDetail = errorDetail.WithDetails("Post ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	requesterID := ctx.GetInt64("userID")

	if err := c.postService.DeletePost(ctx, id, requesterID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Post deleted successfully"}))
}

// GetCategories retrieves all post categories
// @Summary List categories
// @Description Retrieves all post categories
// @Tags posts
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryResponse} "Categories retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [get]
func (c *PostController) GetCategories(ctx *gin.Context) {
	categories, err := c.postService.GetCategories(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.CategoryResponse{
			ID:   category.ID,
			Name: category.Name,
		})
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}
