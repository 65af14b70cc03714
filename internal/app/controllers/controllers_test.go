package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/models/dto"
)

// newTestRouter builds a router whose auth layer is replaced by a handler
// that injects a fixed authenticated identity, the way the JWT middleware
// does after verifying a token.
func newTestRouter(userID int64, role models.RoleType) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set("userID", userID)
		ctx.Set("username", "tester")
		ctx.Set("role", string(role))
		ctx.Next()
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

const formURLEncoded = "application/x-www-form-urlencoded"
