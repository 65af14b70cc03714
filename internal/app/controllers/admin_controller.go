package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sutcommunity/backend/internal/app/models/dto"
	"github.com/sutcommunity/backend/internal/app/repositories"
	"github.com/sutcommunity/backend/internal/middleware"
)

// AdminService defines the dashboard statistics the controller depends on
type AdminService interface {
	GetCounts(ctx context.Context) (users, posts, reports int64, err error)
	GetMonthlySignups(ctx context.Context) ([]repositories.SignupBucket, error)
	GetDailySignups(ctx context.Context) ([]repositories.SignupBucket, error)
}

// AdminController serves dashboard statistics
type AdminController struct {
	adminService AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// GetCounts returns total users, posts and reports
// @Summary Get dashboard counts
// @Description Returns total user, post and report counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CountsResponse} "Counts retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/counts [get]
func (c *AdminController) GetCounts(ctx *gin.Context) {
	users, posts, reports, err := c.adminService.GetCounts(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CountsResponse{
		Users:   users,
		Posts:   posts,
		Reports: reports,
	}))
}

// GetMonthlySignups returns signups grouped by year and month
// @Summary Get monthly signups
// @Description Returns how many users registered in each month
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MonthlySignupsResponse} "Signups retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/monthly [get]
func (c *AdminController) GetMonthlySignups(ctx *gin.Context) {
	buckets, err := c.adminService.GetMonthlySignups(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.MonthlySignupsResponse, 0, len(buckets))
	for _, b := range buckets {
		responses = append(responses, dto.MonthlySignupsResponse{
			Month: b.Label,
			Count: b.Count,
		})
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// GetDailySignups returns signups for the last seven days
// @Summary Get daily signups
// @Description Returns how many users registered on each of the last seven days
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.DailySignupsResponse} "Signups retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/daily [get]
func (c *AdminController) GetDailySignups(ctx *gin.Context) {
	buckets, err := c.adminService.GetDailySignups(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.DailySignupsResponse, 0, len(buckets))
	for _, b := range buckets {
		responses = append(responses, dto.DailySignupsResponse{
			Day:   b.Label,
			Count: b.Count,
		})
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}
