package dto

import (
	"time"

	"github.com/sutcommunity/backend/internal/app/models"
)

// CreatePostRequest is the multipart form payload for creating a post.
// Media files are handled separately by the controller.
type CreatePostRequest struct {
	Topic       string   `form:"topic" binding:"required"`
	Description string   `form:"description" binding:"required"`
	CategoryID  *int64   `form:"categoryId"`
	Location    *string  `form:"location"`
	Latitude    *float64 `form:"latitude"`
	Longitude   *float64 `form:"longitude"`
}

// UpdatePostRequest is the multipart form payload for updating a post
type UpdatePostRequest struct {
	Topic       string   `form:"topic" binding:"required"`
	Description string   `form:"description" binding:"required"`
	CategoryID  *int64   `form:"categoryId"`
	Location    *string  `form:"location"`
	Latitude    *float64 `form:"latitude"`
	Longitude   *float64 `form:"longitude"`
}

// MediaFileResponse is a media attachment in API responses
type MediaFileResponse struct {
	ID     int64  `json:"id"`
	PostID int64  `json:"postId"`
	Type   string `json:"type"`
	URL    string `json:"url"`
}

// PostResponse is a post with its author, like state and media
type PostResponse struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"userId"`
	Topic       string              `json:"topic"`
	Description string              `json:"description"`
	CategoryID  *int64              `json:"categoryId,omitempty"`
	Location    *string             `json:"location,omitempty"`
	Latitude    *float64            `json:"latitude,omitempty"`
	Longitude   *float64            `json:"longitude,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	Username    string              `json:"username"`
	UserAvatar  string              `json:"userAvatar"`
	LikeCount   int64               `json:"likeCount"`
	Liked       bool                `json:"liked"`
	MediaFiles  []MediaFileResponse `json:"mediaFiles"`
}

// NewPostResponse maps a post model (with joined fields) to its API shape
func NewPostResponse(post *models.Post) *PostResponse {
	if post == nil {
		return nil
	}

	media := make([]MediaFileResponse, 0, len(post.MediaFiles))
	for _, m := range post.MediaFiles {
		media = append(media, MediaFileResponse{
			ID:     m.ID,
			PostID: m.PostID,
			Type:   string(m.Type),
			URL:    m.URL,
		})
	}

	return &PostResponse{
		ID:          post.ID,
		UserID:      post.UserID,
		Topic:       post.Topic,
		Description: post.Description,
		CategoryID:  post.CategoryID,
		Location:    post.Location,
		Latitude:    post.Latitude,
		Longitude:   post.Longitude,
		CreatedAt:   post.CreatedAt,
		Username:    post.Username,
		UserAvatar:  post.UserAvatar,
		LikeCount:   post.LikeCount,
		Liked:       post.Liked,
		MediaFiles:  media,
	}
}

// NewPostListResponse maps a slice of posts to API shapes
func NewPostListResponse(posts []models.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, *NewPostResponse(&posts[i]))
	}
	return responses
}

// CreatePostResponse confirms a post+media write
type CreatePostResponse struct {
	Message    string `json:"message"`
	PostID     int64  `json:"postId"`
	MediaCount int    `json:"mediaCount"`
}

// CategoryResponse is a selectable post category
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
