package dto

import "github.com/sutcommunity/backend/internal/app/models"

// LikeResponse carries the updated like count after a like or unlike
type LikeResponse struct {
	Message   string `json:"message"`
	LikeCount int64  `json:"likeCount"`
}

// FollowCountsResponse holds a user's follower and following totals
type FollowCountsResponse struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// UserSummaryResponse is a compact user reference for follower lists
type UserSummaryResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// NewUserSummaryListResponse maps user summaries to API shapes
func NewUserSummaryListResponse(users []models.UserSummary) []UserSummaryResponse {
	responses := make([]UserSummaryResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, UserSummaryResponse{
			ID:       u.ID,
			Username: u.Username,
			Avatar:   u.Avatar,
		})
	}
	return responses
}
