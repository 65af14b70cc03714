package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/models/dto"
	"github.com/sutcommunity/backend/internal/middleware"
)

// ReportService defines the report and moderation operations the controller depends on
type ReportService interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetAllReports(ctx context.Context) ([]models.Report, error)
	SearchReports(ctx context.Context, query string) ([]models.Report, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	DeleteReport(ctx context.Context, id int64) error
	GetViolationTypes(ctx context.Context) ([]models.ViolationType, error)
}

// ReportController handles post reports and moderation
type ReportController struct {
	reportService ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// CreateReport files a report against a post
// @Summary Report a post
// @Description Files a report against a post; the reason must match a known violation type
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReportRequest true "Post and reason"
// @Success 201 {object} dto.APIResponse{data=dto.ReportResponse} "Report created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or unknown violation type"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [post]
func (c *ReportController) CreateReport(ctx *gin.Context) {
	var req dto.CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid report data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	report := &models.Report{
		PostID:     req.PostID,
		ReporterID: ctx.GetInt64("userID"),
		Reason:     req.Reason,
	}

	if err := c.reportService.CreateReport(ctx, report); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewReportResponse(report)))
}

// GetAllReports lists all reports for moderation
// @Summary List reports
// @Description Lists all reports with post topic and reporter username, newest first
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ReportResponse} "Reports retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [get]
func (c *ReportController) GetAllReports(ctx *gin.Context) {
	reports, err := c.reportService.GetAllReports(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewReportListResponse(reports)))
}

// SearchReports searches reports for moderation
// @Summary Search reports
// @Description Searches reports by ID, post ID, reason, post topic or reporter username
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param query query string true "Search text"
// @Success 200 {object} dto.APIResponse{data=[]dto.ReportResponse} "Matching reports"
// @Failure 400 {object} dto.ErrorResponse "Missing search text"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/search [get]
func (c *ReportController) SearchReports(ctx *gin.Context) {
	query := ctx.Query("query")
	if query == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Search text is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	reports, err := c.reportService.SearchReports(ctx, query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewReportListResponse(reports)))
}

// UpdateReportStatus changes a report's moderation status
// @Summary Update report status
// @Description Moves a report to pending, in_progress, resolved or rejected
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body dto.UpdateReportStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id}/status [put]
func (c *ReportController) UpdateReportStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid report ID")
		errorDetail = errorDetail.WithDetails("Report ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateReportStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.reportService.UpdateStatus(ctx, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Report status updated"}))
}

// DeleteReport removes a report
// @Summary Delete a report
// @Description Deletes a report after moderation
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Report deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid report ID"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id} [delete]
func (c *ReportController) DeleteReport(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid report ID")
		errorDetail = errorDetail.WithDetails("Report ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.reportService.DeleteReport(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Report deleted successfully"}))
}

// GetViolationTypes lists the predefined report reasons
// @Summary List violation types
// @Description Lists the predefined reasons a post can be reported for
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ViolationTypeResponse} "Violation types retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /violation-types [get]
func (c *ReportController) GetViolationTypes(ctx *gin.Context) {
	types, err := c.reportService.GetViolationTypes(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ViolationTypeResponse, 0, len(types))
	for _, vt := range types {
		responses = append(responses, dto.ViolationTypeResponse{
			ID:   vt.ID,
			Name: vt.Name,
		})
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}
