package models

import (
	"time"
)

// Post defines the post model based on the 'posts' table
type Post struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	Topic       string    `json:"topic" db:"topic"`
	Description string    `json:"description" db:"description"`
	CategoryID  *int64    `json:"categoryId,omitempty" db:"category_id"` // Nullable
	Location    *string   `json:"location,omitempty" db:"location"`      // Nullable
	Latitude    *float64  `json:"latitude,omitempty" db:"latitude"`      // Nullable
	Longitude   *float64  `json:"longitude,omitempty" db:"longitude"`    // Nullable
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Joined fields, no db columns of their own
	Username   string      `json:"username,omitempty"`
	UserAvatar string      `json:"userAvatar,omitempty"`
	LikeCount  int64       `json:"likeCount"`
	Liked      bool        `json:"liked"`
	MediaFiles []MediaFile `json:"mediaFiles"`
}

// MediaFile defines a media attachment based on the 'media_files' table
type MediaFile struct {
	ID     int64     `json:"id" db:"id"`
	PostID int64     `json:"postId" db:"post_id"`
	Type   MediaType `json:"type" db:"media_type"`
	URL    string    `json:"url" db:"media_url"`
}

// Category defines a post category based on the 'categories' table
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
