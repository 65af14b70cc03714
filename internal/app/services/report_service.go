package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/repositories"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
)

// ReportService handles post reporting and moderation
type ReportService struct {
	reportRepo          *repositories.ReportRepository
	postRepo            *repositories.PostRepository
	notificationService *NotificationService
	logger              zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo *repositories.ReportRepository,
	postRepo *repositories.PostRepository,
	notificationService *NotificationService,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		reportRepo:          reportRepo,
		postRepo:            postRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// CreateReport validates the reason against the violation types table,
// inserts the report and notifies the post owner
func (s *ReportService) CreateReport(ctx context.Context, report *models.Report) error {
	valid, err := s.reportRepo.ViolationTypeExists(ctx, report.Reason)
	if err != nil {
		return err
	}
	if !valid {
		return apperrors.ErrInvalidViolationType
	}

	ownerID, err := s.postRepo.GetPostOwner(ctx, report.PostID)
	if err != nil {
		return err
	}

	if err := s.reportRepo.CreateReport(ctx, report); err != nil {
		return err
	}

	if err := s.notificationService.Dispatch(ctx, ownerID, report.ReporterID, models.NotificationTypeReport, report.PostID, report.Reason); err != nil {
		s.logger.Warn().Err(err).Int64("postID", report.PostID).Msg("Report notification dispatch failed")
	}

	return nil
}

// GetAllReports lists reports newest first
func (s *ReportService) GetAllReports(ctx context.Context) ([]models.Report, error) {
	return s.reportRepo.GetAllReports(ctx)
}

// SearchReports matches id, post, reason, topic or reporter
func (s *ReportService) SearchReports(ctx context.Context, query string) ([]models.Report, error) {
	return s.reportRepo.SearchReports(ctx, query)
}

// UpdateStatus changes a report's moderation status
func (s *ReportService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !models.ValidReportStatus(status) {
		return apperrors.ErrInvalidReportStatus
	}
	return s.reportRepo.UpdateReportStatus(ctx, id, models.ReportStatus(status))
}

// DeleteReport removes a report
func (s *ReportService) DeleteReport(ctx context.Context, id int64) error {
	return s.reportRepo.DeleteReport(ctx, id)
}

// GetViolationTypes lists the predefined report reasons
func (s *ReportService) GetViolationTypes(ctx context.Context) ([]models.ViolationType, error) {
	return s.reportRepo.GetViolationTypes(ctx)
}
