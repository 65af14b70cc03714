package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
	"github.com/sutcommunity/backend/internal/pkg/dberrors"
	"github.com/sutcommunity/backend/internal/pkg/logger"
)

// ReportRepository handles report and violation type database operations
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ReportRepository) enrichedSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"r.id", "r.post_id", "r.reporter_id", "r.reason", "r.status", "r.date",
		"p.topic", "u.username",
	).
		From("reports r").
		LeftJoin("posts p ON p.id = r.post_id").
		LeftJoin("users u ON u.id = r.reporter_id")
}

func scanEnrichedReport(row pgx.Row) (*models.Report, error) {
	report := &models.Report{}
	err := row.Scan(
		&report.ID,
		&report.PostID,
		&report.ReporterID,
		&report.Reason,
		&report.Status,
		&report.Date,
		&report.PostTopic,
		&report.ReporterUsername,
	)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// CreateReport inserts a report with status pending
func (r *ReportRepository) CreateReport(ctx context.Context, report *models.Report) error {
	sql, args, err := r.sb.Insert("reports").
		Columns("post_id", "reporter_id", "reason", "status").
		Values(report.PostID, report.ReporterID, report.Reason, models.ReportStatusPending).
		Suffix("RETURNING id, status, date").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create report SQL")
		return fmt.Errorf("failed to build create report query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&report.ID, &report.Status, &report.Date)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", report.PostID).Msg("Error executing create report query")
		return fmt.Errorf("error creating report: %w", err)
	}

	return nil
}

// GetAllReports lists reports newest first with post topic and reporter username
func (r *ReportRepository) GetAllReports(ctx context.Context) ([]models.Report, error) {
	builder := r.enrichedSelect().OrderBy("r.date DESC")
	return r.queryEnriched(ctx, builder)
}

// SearchReports matches id, post id, reason, post topic or reporter username
func (r *ReportRepository) SearchReports(ctx context.Context, query string) ([]models.Report, error) {
	pattern := "%" + query + "%"
	or := squirrel.Or{
		squirrel.ILike{"r.reason": pattern},
		squirrel.ILike{"p.topic": pattern},
		squirrel.ILike{"u.username": pattern},
	}
	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		or = append(or, squirrel.Eq{"r.id": id}, squirrel.Eq{"r.post_id": id})
	}

	builder := r.enrichedSelect().Where(or).OrderBy("r.date DESC")
	return r.queryEnriched(ctx, builder)
}

func (r *ReportRepository) queryEnriched(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Report, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build reports query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing reports query")
		return nil, fmt.Errorf("error querying reports: %w", err)
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		report, err := scanEnrichedReport(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning report row: %w", err)
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

// UpdateReportStatus changes a report's moderation status
func (r *ReportRepository) UpdateReportStatus(ctx context.Context, id int64, status models.ReportStatus) error {
	sql, args, err := r.sb.Update("reports").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update report status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("reportID", id).Msg("Error updating report status")
		return fmt.Errorf("error updating report status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}
	return nil
}

// DeleteReport removes a report
func (r *ReportRepository) DeleteReport(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("reports").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete report query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("reportID", id).Msg("Error deleting report")
		return fmt.Errorf("error deleting report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}
	return nil
}

// GetViolationTypes lists the predefined report reasons
func (r *ReportRepository) GetViolationTypes(ctx context.Context) ([]models.ViolationType, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("violation_types").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get violation types query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get violation types query")
		return nil, fmt.Errorf("error querying violation types: %w", err)
	}
	defer rows.Close()

	types := []models.ViolationType{}
	for rows.Next() {
		vt := models.ViolationType{}
		if err := rows.Scan(&vt.ID, &vt.Name); err != nil {
			return nil, fmt.Errorf("error scanning violation type row: %w", err)
		}
		types = append(types, vt)
	}
	return types, rows.Err()
}

// ViolationTypeExists checks that a reason matches a predefined violation type
func (r *ReportRepository) ViolationTypeExists(ctx context.Context, name string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("violation_types").
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build violation type exists query: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking violation type existence: %w", err)
	}
	return true, nil
}

// DeleteReportsByUserTx removes a user's reports inside a transaction
func (r *ReportRepository) DeleteReportsByUserTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	sql, args, err := r.sb.Delete("reports").
		Where(squirrel.Eq{"reporter_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user reports query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user reports: %w", err)
	}
	return nil
}

// DeleteReportsByPostIDsTx removes reports on the given posts inside a transaction
func (r *ReportRepository) DeleteReportsByPostIDsTx(ctx context.Context, tx pgx.Tx, postIDs []int64) error {
	if len(postIDs) == 0 {
		return nil
	}

	sql, args, err := r.sb.Delete("reports").
		Where(squirrel.Eq{"post_id": postIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete post reports query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting post reports: %w", err)
	}
	return nil
}
