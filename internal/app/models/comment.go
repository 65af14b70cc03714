package models

import (
	"time"
)

// Comment defines the comment model based on the 'comments' table.
// UpdatedAt is set only when a comment has been edited.
type Comment struct {
	ID        int64      `json:"id" db:"id"`
	PostID    int64      `json:"postId" db:"post_id"`
	UserID    int64      `json:"userId" db:"user_id"`
	Text      string     `json:"text" db:"comment_text"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" db:"updated_at"`

	// Joined author fields
	Username   string `json:"username,omitempty"`
	UserAvatar string `json:"userAvatar,omitempty"`
}
