package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/models/dto"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
)

type stubCommentService struct {
	created         *models.Comment
	updateRequester int64
	updateErr       error
}

func (s *stubCommentService) GetComments(context.Context, int64) ([]models.Comment, error) {
	return nil, nil
}

func (s *stubCommentService) CreateComment(_ context.Context, comment *models.Comment) error {
	s.created = comment
	return nil
}

func (s *stubCommentService) UpdateComment(_ context.Context, commentID, requesterID int64, text string) (*models.Comment, error) {
	s.updateRequester = requesterID
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.Comment{ID: commentID, UserID: requesterID, Text: text}, nil
}

func (s *stubCommentService) DeleteComment(context.Context, int64, int64) error { return nil }

func TestCreateCommentAuthorFromToken(t *testing.T) {
	service := &stubCommentService{}
	router := newTestRouter(7, models.RoleUser)
	router.POST("/comments/:postId", NewCommentController(service).CreateComment)

	// Extra identity fields in the body are ignored.
	w := doRequest(t, router, http.MethodPost, "/comments/3", "application/json",
		`{"text":"nice post","userId":1}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, service.created)
	assert.Equal(t, int64(7), service.created.UserID)
	assert.Equal(t, int64(3), service.created.PostID)
}

func TestUpdateCommentRequesterFromToken(t *testing.T) {
	service := &stubCommentService{}
	router := newTestRouter(7, models.RoleUser)
	router.PUT("/comments/:id", NewCommentController(service).UpdateComment)

	w := doRequest(t, router, http.MethodPut, "/comments/9", "application/json",
		`{"text":"edited","userId":1}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), service.updateRequester)
}

func TestUpdateCommentNotAuthor(t *testing.T) {
	service := &stubCommentService{updateErr: apperrors.ErrNotCommentOwner}
	router := newTestRouter(7, models.RoleUser)
	router.PUT("/comments/:id", NewCommentController(service).UpdateComment)

	w := doRequest(t, router, http.MethodPut, "/comments/9", "application/json",
		`{"text":"edited"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeForbidden, resp.Error.Code)
}
