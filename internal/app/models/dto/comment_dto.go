package dto

import (
	"time"

	"github.com/sutcommunity/backend/internal/app/models"
)

// CreateCommentRequest is the payload for adding a comment to a post.
// The author is the authenticated user.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}

// UpdateCommentRequest is the payload for editing an existing comment
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}

// CommentResponse is a comment with its author
type CommentResponse struct {
	ID         int64      `json:"id"`
	PostID     int64      `json:"postId"`
	UserID     int64      `json:"userId"`
	Text       string     `json:"text"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	Username   string     `json:"username"`
	UserAvatar string     `json:"userAvatar"`
}

// NewCommentResponse maps a comment model to its API shape
func NewCommentResponse(comment *models.Comment) *CommentResponse {
	if comment == nil {
		return nil
	}
	return &CommentResponse{
		ID:         comment.ID,
		PostID:     comment.PostID,
		UserID:     comment.UserID,
		Text:       comment.Text,
		CreatedAt:  comment.CreatedAt,
		UpdatedAt:  comment.UpdatedAt,
		Username:   comment.Username,
		UserAvatar: comment.UserAvatar,
	}
}

// NewCommentListResponse maps a slice of comments to API shapes
func NewCommentListResponse(comments []models.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *NewCommentResponse(&comments[i]))
	}
	return responses
}
