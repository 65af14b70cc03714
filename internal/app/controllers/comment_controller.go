package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/models/dto"
	"github.com/sutcommunity/backend/internal/middleware"
)

// CommentService defines the comment operations the controller depends on
type CommentService interface {
	GetComments(ctx context.Context, postID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	UpdateComment(ctx context.Context, commentID, requesterID int64, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID, requesterID int64) error
}

// CommentController handles comment operations
type CommentController struct {
	commentService CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService CommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
	}
}

// GetComments retrieves all comments on a post, oldest first
// @Summary Get post comments
// @Description Retrieves all comments on a post with author info, oldest first
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Comments retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{postId} [get]
func (c *CommentController) GetComments(ctx *gin.Context) {
	postID, err := strconv.ParseInt(ctx.Param("postId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")
		errorDetail = errorDetail.WithDetails("Post ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	comments, err := c.commentService.GetComments(ctx, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCommentListResponse(comments)))
}

// CreateComment adds a comment to a post
// @Summary Create a comment
// @Description Adds a comment to a post and notifies the post owner
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment text"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{postId} [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	postID, err := strconv.ParseInt(ctx.Param("postId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")
		errorDetail = errorDetail.WithDetails("Post ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid comment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: ctx.GetInt64("userID"),
		Text:   req.Text,
	}

	if err := c.commentService.CreateComment(ctx, comment); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewCommentResponse(comment)))
}

// UpdateComment edits an existing comment
// @Summary Update a comment
// @Description Edits a comment's text; only the author may edit
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body dto.UpdateCommentRequest true "New comment text"
// @Success 200 {object} dto.APIResponse{data=dto.CommentResponse} "Comment updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Not the comment author"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{id} [put]
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid comment ID")
		errorDetail = errorDetail.WithDetails("Comment ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid comment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	comment, err := c.commentService.UpdateComment(ctx, id, ctx.GetInt64("userID"), req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCommentResponse(comment)))
}

// DeleteComment removes a comment
// @Summary Delete a comment
// @Description Deletes a comment; only the author may delete
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Comment deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid comment ID"
// @Failure 403 {object} dto.ErrorResponse "Not the comment author"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{id} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid comment ID")
		errorDetail = errorDetail.WithDetails("Comment ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	requesterID := ctx.GetInt64("userID")

	if err := c.commentService.DeleteComment(ctx, id, requesterID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Comment deleted successfully"}))
}
