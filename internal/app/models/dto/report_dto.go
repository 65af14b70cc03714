package dto

import (
	"time"

	"github.com/sutcommunity/backend/internal/app/models"
)

// CreateReportRequest is the payload for reporting a post.
// The reporter is the authenticated user.
type CreateReportRequest struct {
	PostID int64  `json:"postId" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// UpdateReportStatusRequest changes a report's moderation status
type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReportResponse is a report with its post topic and reporter
type ReportResponse struct {
	ID               int64     `json:"id"`
	PostID           int64     `json:"postId"`
	ReporterID       int64     `json:"reporterId"`
	Reason           string    `json:"reason"`
	Status           string    `json:"status"`
	Date             time.Time `json:"date"`
	PostTopic        *string   `json:"postTopic,omitempty"`
	ReporterUsername *string   `json:"reporterUsername,omitempty"`
}

// NewReportResponse maps a report model to its API shape
func NewReportResponse(report *models.Report) *ReportResponse {
	if report == nil {
		return nil
	}
	return &ReportResponse{
		ID:               report.ID,
		PostID:           report.PostID,
		ReporterID:       report.ReporterID,
		Reason:           report.Reason,
		Status:           string(report.Status),
		Date:             report.Date,
		PostTopic:        report.PostTopic,
		ReporterUsername: report.ReporterUsername,
	}
}

// NewReportListResponse maps a slice of reports to API shapes
func NewReportListResponse(reports []models.Report) []ReportResponse {
	responses := make([]ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, *NewReportResponse(&reports[i]))
	}
	return responses
}

// ViolationTypeResponse is a predefined report reason
type ViolationTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
