package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/models/dto"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
)

type stubPostService struct {
	created         *models.Post
	updated         *models.Post
	updateRequester int64
	updateErr       error
}

func (s *stubPostService) CreatePost(_ context.Context, post *models.Post, _ []*multipart.FileHeader) (int, error) {
	s.created = post
	post.ID = 42
	return 0, nil
}

func (s *stubPostService) UpdatePost(_ context.Context, post *models.Post, requesterID int64, _ []*multipart.FileHeader) error {
	s.updated = post
	s.updateRequester = requesterID
	return s.updateErr
}

func (s *stubPostService) GetPost(context.Context, int64, int64) (*models.Post, error) {
	return &models.Post{}, nil
}

func (s *stubPostService) GetFeed(context.Context, int64) ([]models.Post, error)     { return nil, nil }
func (s *stubPostService) GetUserPosts(context.Context, int64, int64) ([]models.Post, error) {
	return nil, nil
}
func (s *stubPostService) SearchPosts(context.Context, string, int64) ([]models.Post, error) {
	return nil, nil
}
func (s *stubPostService) GetActivityPosts(context.Context, int64) ([]models.Post, error) {
	return nil, nil
}
func (s *stubPostService) DeletePost(context.Context, int64, int64) error { return nil }
func (s *stubPostService) GetCategories(context.Context) ([]models.Category, error) {
	return nil, nil
}

func TestCreatePostAuthorFromToken(t *testing.T) {
	service := &stubPostService{}
	router := newTestRouter(7, models.RoleUser)
	router.POST("/posts", NewPostController(service).CreatePost)

	// A forged userId form field must not override the authenticated identity.
	w := doRequest(t, router, http.MethodPost, "/posts", formURLEncoded,
		"topic=Lost+cat&description=Near+dorm+4&userId=1")

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, service.created)
	assert.Equal(t, int64(7), service.created.UserID)
}

func TestUpdatePostRequesterFromToken(t *testing.T) {
	service := &stubPostService{}
	router := newTestRouter(7, models.RoleUser)
	router.PUT("/posts/:id", NewPostController(service).UpdatePost)

	w := doRequest(t, router, http.MethodPut, "/posts/5", formURLEncoded,
		"topic=Edited&description=Edited+text&userId=1")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, service.updated)
	assert.Equal(t, int64(5), service.updated.ID)
	assert.Equal(t, int64(7), service.updateRequester)
}

func TestUpdatePostNotOwner(t *testing.T) {
	service := &stubPostService{updateErr: apperrors.NewForbiddenError("post belongs to another user")}
	router := newTestRouter(7, models.RoleUser)
	router.PUT("/posts/:id", NewPostController(service).UpdatePost)

	w := doRequest(t, router, http.MethodPut, "/posts/5", formURLEncoded,
		"topic=Edited&description=Edited+text")

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeForbidden, resp.Error.Code)
}
