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

// SocialService defines the like and follow operations the controller depends on
type SocialService interface {
	LikePost(ctx context.Context, postID, userID int64) (int64, error)
	UnlikePost(ctx context.Context, postID, userID int64) (int64, error)
	Follow(ctx context.Context, followerID, followedID int64) error
	Unfollow(ctx context.Context, followerID, followedID int64) error
	GetFollowers(ctx context.Context, userID int64) ([]models.UserSummary, error)
	GetFollowing(ctx context.Context, userID int64) ([]models.UserSummary, error)
	GetFollowCounts(ctx context.Context, userID int64) (followers, following int64, err error)
}

// SocialController handles likes and follow relationships
type SocialController struct {
	socialService SocialService
}

// NewSocialController creates a new SocialController
func NewSocialController(socialService SocialService) *SocialController {
	return &SocialController{
		socialService: socialService,
	}
}

// LikePost records a like on a post
// @Summary Like a post
// @Description Records a like, notifies the post owner and returns the new like count
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 201 {object} dto.APIResponse{data=dto.LikeResponse} "Post liked"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 409 {object} dto.ErrorResponse "Already liked"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /likes/{postId} [post]
func (c *SocialController) LikePost(ctx *gin.Context) {
	postID, err := strconv.ParseInt(ctx.Param("postId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")
		errorDetail = errorDetail.WithDetails("Post ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	likeCount, err := c.socialService.LikePost(ctx, postID, ctx.GetInt64("userID"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.LikeResponse{
		Message:   "Post liked",
		LikeCount: likeCount,
	}))
}

// UnlikePost removes a like from a post
// @Summary Unlike a post
// @Description Removes a like and returns the new like count
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeResponse} "Post unliked"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Like not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /likes/{postId} [delete]
func (c *SocialController) UnlikePost(ctx *gin.Context) {
	postID, err := strconv.ParseInt(ctx.Param("postId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")
		errorDetail = errorDetail.WithDetails("Post ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	likeCount, err := c.socialService.UnlikePost(ctx, postID, ctx.GetInt64("userID"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LikeResponse{
		Message:   "Post unliked",
		LikeCount: likeCount,
	}))
}

// Follow creates a follow edge
// @Summary Follow a user
// @Description Follows a user and notifies them
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User to follow"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse} "Now following"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or self-follow"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Already following"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /follows/{userId} [post]
func (c *SocialController) Follow(ctx *gin.Context) {
	followedID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.socialService.Follow(ctx, ctx.GetInt64("userID"), followedID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Now following user"}))
}

// Unfollow removes a follow edge
// @Summary Unfollow a user
// @Description Removes an existing follow relationship
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User to unfollow"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Unfollowed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Follow relationship not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /follows/{userId} [delete]
func (c *SocialController) Unfollow(ctx *gin.Context) {
	followedID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.socialService.Unfollow(ctx, ctx.GetInt64("userID"), followedID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Unfollowed user"}))
}

// GetFollowers lists the users following someone
// @Summary Get followers
// @Description Lists the users following the given user, alphabetically
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserSummaryResponse} "Followers retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /follows/followers/{userId} [get]
func (c *SocialController) GetFollowers(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	followers, err := c.socialService.GetFollowers(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserSummaryListResponse(followers)))
}

// GetFollowing lists the users someone follows
// @Summary Get following
// @Description Lists the users the given user follows, alphabetically
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserSummaryResponse} "Following retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /follows/following/{userId} [get]
func (c *SocialController) GetFollowing(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	following, err := c.socialService.GetFollowing(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserSummaryListResponse(following)))
}

// GetFollowCounts returns follower and following totals
// @Summary Get follow counts
// @Description Returns how many followers a user has and how many users they follow
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.FollowCountsResponse} "Counts retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /follows/counts/{userId} [get]
func (c *SocialController) GetFollowCounts(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	followers, following, err := c.socialService.GetFollowCounts(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FollowCountsResponse{
		Followers: followers,
		Following: following,
	}))
}
