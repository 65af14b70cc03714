package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutcommunity/backend/internal/app/models"
)

type stubReportService struct {
	created *models.Report
}

func (s *stubReportService) CreateReport(_ context.Context, report *models.Report) error {
	s.created = report
	return nil
}

func (s *stubReportService) GetAllReports(context.Context) ([]models.Report, error) {
	return nil, nil
}

func (s *stubReportService) SearchReports(context.Context, string) ([]models.Report, error) {
	return nil, nil
}

func (s *stubReportService) UpdateStatus(context.Context, int64, string) error { return nil }
func (s *stubReportService) DeleteReport(context.Context, int64) error         { return nil }
func (s *stubReportService) GetViolationTypes(context.Context) ([]models.ViolationType, error) {
	return nil, nil
}

func TestCreateReportReporterFromToken(t *testing.T) {
	service := &stubReportService{}
	router := newTestRouter(7, models.RoleUser)
	router.POST("/reports", NewReportController(service).CreateReport)

	w := doRequest(t, router, http.MethodPost, "/reports", "application/json",
		`{"postId":4,"reason":"Spam","reporterId":1}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, service.created)
	assert.Equal(t, int64(4), service.created.PostID)
	assert.Equal(t, int64(7), service.created.ReporterID)
}
