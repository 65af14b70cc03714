package middleware

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutcommunity/backend/internal/app/models/dto"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, dto.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	HandleAPIError(ctx, err)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandleAPIErrorMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{apperrors.ErrUserNotFound, 404, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrPostNotFound, 404, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrCategoryNotFound, 400, dto.ErrorCodeInvalidRequest},
		{apperrors.ErrAlreadyLiked, 409, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrAlreadyFollowing, 409, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrEmailAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrSelfFollow, 400, dto.ErrorCodeInvalidRequest},
		{apperrors.ErrInvalidViolationType, 400, dto.ErrorCodeInvalidRequest},
		{apperrors.ErrOTPInvalidOrExpired, 400, dto.ErrorCodeInvalidRequest},
		{apperrors.ErrNotCommentOwner, 403, dto.ErrorCodeForbidden},
		{apperrors.ErrPermissionDenied, 403, dto.ErrorCodeForbidden},
		{apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken},
		{apperrors.ErrTokenRevoked, 401, dto.ErrorCodeInvalidToken},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			status, resp := handleError(t, tc.err)

			assert.Equal(t, tc.wantStatus, status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestHandleAPIErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("deleting comment: %w", apperrors.ErrCommentNotFound)

	status, resp := handleError(t, wrapped)

	assert.Equal(t, 404, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, resp.Error.Code)
}

func TestHandleAPIErrorUnknown(t *testing.T) {
	status, resp := handleError(t, fmt.Errorf("connection refused"))

	assert.Equal(t, 500, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeInternalServer, resp.Error.Code)
	assert.Equal(t, "Internal server error", resp.Error.Message)
}
