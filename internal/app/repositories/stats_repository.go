package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sutcommunity/backend/internal/pkg/logger"
)

// SignupBucket is a time bucket of user registrations
type SignupBucket struct {
	Label string
	Count int64
}

// StatsRepository handles the admin dashboard aggregate queries
type StatsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CountRows counts all rows of a table
func (r *StatsRepository) CountRows(ctx context.Context, table string) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query for %s: %w", table, err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error counting rows")
		return 0, fmt.Errorf("error counting rows of %s: %w", table, err)
	}
	return count, nil
}

// MonthlySignups groups user registrations by year and month
func (r *StatsRepository) MonthlySignups(ctx context.Context) ([]SignupBucket, error) {
	const query = `
		SELECT to_char(created_at, 'YYYY-MM') AS month, COUNT(*)
		FROM users
		GROUP BY month
		ORDER BY month ASC`
	return r.queryBuckets(ctx, query)
}

// DailySignups returns registrations per day for the last 7 days
func (r *StatsRepository) DailySignups(ctx context.Context) ([]SignupBucket, error) {
	const query = `
		SELECT to_char(created_at, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM users
		WHERE created_at >= NOW() - INTERVAL '7 days'
		GROUP BY day
		ORDER BY day ASC`
	return r.queryBuckets(ctx, query)
}

func (r *StatsRepository) queryBuckets(ctx context.Context, query string) ([]SignupBucket, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing signup stats query")
		return nil, fmt.Errorf("error querying signup stats: %w", err)
	}
	defer rows.Close()

	buckets := []SignupBucket{}
	for rows.Next() {
		bucket := SignupBucket{}
		if err := rows.Scan(&bucket.Label, &bucket.Count); err != nil {
			return nil, fmt.Errorf("error scanning signup stats row: %w", err)
		}
		buckets = append(buckets, bucket)
	}
	return buckets, rows.Err()
}
