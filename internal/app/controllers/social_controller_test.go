package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutcommunity/backend/internal/app/models"
)

type stubSocialService struct {
	likeUser     int64
	likePost     int64
	unlikeUser   int64
	followerID   int64
	followedID   int64
	unfollowerID int64
}

func (s *stubSocialService) LikePost(_ context.Context, postID, userID int64) (int64, error) {
	s.likePost = postID
	s.likeUser = userID
	return 1, nil
}

func (s *stubSocialService) UnlikePost(_ context.Context, postID, userID int64) (int64, error) {
	s.unlikeUser = userID
	return 0, nil
}

func (s *stubSocialService) Follow(_ context.Context, followerID, followedID int64) error {
	s.followerID = followerID
	s.followedID = followedID
	return nil
}

func (s *stubSocialService) Unfollow(_ context.Context, followerID, followedID int64) error {
	s.unfollowerID = followerID
	return nil
}

func (s *stubSocialService) GetFollowers(context.Context, int64) ([]models.UserSummary, error) {
	return nil, nil
}

func (s *stubSocialService) GetFollowing(context.Context, int64) ([]models.UserSummary, error) {
	return nil, nil
}

func (s *stubSocialService) GetFollowCounts(context.Context, int64) (int64, int64, error) {
	return 0, 0, nil
}

func TestLikePostActorFromToken(t *testing.T) {
	service := &stubSocialService{}
	router := newTestRouter(7, models.RoleUser)
	controller := NewSocialController(service)
	router.POST("/likes/:postId", controller.LikePost)
	router.DELETE("/likes/:postId", controller.UnlikePost)

	// A body naming another user has no effect on who the like is recorded for.
	w := doRequest(t, router, http.MethodPost, "/likes/4", "application/json", `{"userId":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(4), service.likePost)
	assert.Equal(t, int64(7), service.likeUser)

	w = doRequest(t, router, http.MethodDelete, "/likes/4", "application/json", `{"userId":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), service.unlikeUser)
}

func TestFollowActorFromToken(t *testing.T) {
	service := &stubSocialService{}
	router := newTestRouter(7, models.RoleUser)
	controller := NewSocialController(service)
	router.POST("/follows/:userId", controller.Follow)
	router.DELETE("/follows/:userId", controller.Unfollow)

	w := doRequest(t, router, http.MethodPost, "/follows/12", "application/json", `{"followerId":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(7), service.followerID)
	assert.Equal(t, int64(12), service.followedID)

	w = doRequest(t, router, http.MethodDelete, "/follows/12", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), service.unfollowerID)
}
