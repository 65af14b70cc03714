package models

// Like defines a like edge based on the 'likes' table.
// Existence of the row means "liked"; (post_id, user_id) is unique.
type Like struct {
	PostID int64 `json:"postId" db:"post_id"`
	UserID int64 `json:"userId" db:"user_id"`
}

// Follow defines a follow edge based on the 'followers' table.
// Existence of the row means "is following".
type Follow struct {
	FollowerID int64 `json:"followerId" db:"follower_id"`
	FollowedID int64 `json:"followedId" db:"followed_id"`
}

// UserSummary is the compact user projection returned in follower and
// following lists.
type UserSummary struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Avatar   string `json:"avatar" db:"avatar"`
}
