package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sutcommunity/backend/internal/app/repositories"
)

// AdminService provides the dashboard aggregates
type AdminService struct {
	statsRepo *repositories.StatsRepository
	logger    zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(statsRepo *repositories.StatsRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

// GetCounts returns user, post and report totals
func (s *AdminService) GetCounts(ctx context.Context) (users, posts, reports int64, err error) {
	users, err = s.statsRepo.CountRows(ctx, "users")
	if err != nil {
		return 0, 0, 0, err
	}
	posts, err = s.statsRepo.CountRows(ctx, "posts")
	if err != nil {
		return 0, 0, 0, err
	}
	reports, err = s.statsRepo.CountRows(ctx, "reports")
	if err != nil {
		return 0, 0, 0, err
	}
	return users, posts, reports, nil
}

// GetMonthlySignups groups registrations by year and month
func (s *AdminService) GetMonthlySignups(ctx context.Context) ([]repositories.SignupBucket, error) {
	return s.statsRepo.MonthlySignups(ctx)
}

// GetDailySignups returns registrations for the last 7 days
func (s *AdminService) GetDailySignups(ctx context.Context) ([]repositories.SignupBucket, error) {
	return s.statsRepo.DailySignups(ctx)
}
