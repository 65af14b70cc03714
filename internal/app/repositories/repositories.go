package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	TokenRepository         *TokenRepository
	PasswordResetRepository *PasswordResetRepository
	PostRepository          *PostRepository
	CategoryRepository      *CategoryRepository
	CommentRepository       *CommentRepository
	LikeRepository          *LikeRepository
	FollowRepository        *FollowRepository
	ReportRepository        *ReportRepository
	NotificationRepository  *NotificationRepository
	StatsRepository         *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		TokenRepository:         NewTokenRepository(db),
		PasswordResetRepository: NewPasswordResetRepository(db),
		PostRepository:          NewPostRepository(db),
		CategoryRepository:      NewCategoryRepository(db),
		CommentRepository:       NewCommentRepository(db),
		LikeRepository:          NewLikeRepository(db),
		FollowRepository:        NewFollowRepository(db),
		ReportRepository:        NewReportRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
		StatsRepository:         NewStatsRepository(db),
	}
}
