package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sutcommunity/backend/internal/pkg/apperrors"
	"github.com/sutcommunity/backend/internal/pkg/logger"
)

// PasswordResetRepository handles OTP codes and reset tokens for the
// password reset flow. Both are stored in the database so the flow
// survives restarts and works across multiple instances.
type PasswordResetRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPasswordResetRepository creates a new PasswordResetRepository
func NewPasswordResetRepository(db *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// SaveOTP stores a one-time code for an email, replacing any previous code
func (r *PasswordResetRepository) SaveOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("password_otps").
		Columns("email", "code", "expires_at", "created_at").
		Values(email, code, expiresAt, time.Now()).
		Suffix("ON CONFLICT (email) DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building save OTP SQL")
		return fmt.Errorf("failed to build save OTP query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error saving OTP")
		return fmt.Errorf("error saving OTP: %w", err)
	}

	return nil
}

// ConsumeOTP validates a code for an email and deletes it on success.
// Returns apperrors.ErrOTPInvalidOrExpired on mismatch or expiry.
func (r *PasswordResetRepository) ConsumeOTP(ctx context.Context, email, code string) error {
	var storedCode string
	var expiresAt time.Time

	sql, args, err := r.sb.Select("code", "expires_at").
		From("password_otps").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build get OTP query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&storedCode, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrOTPInvalidOrExpired
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning OTP row")
		return fmt.Errorf("error retrieving OTP: %w", err)
	}

	if storedCode != code || time.Now().After(expiresAt) {
		return apperrors.ErrOTPInvalidOrExpired
	}

	delSQL, delArgs, err := r.sb.Delete("password_otps").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete OTP query: %w", err)
	}

	if _, err = r.db.Exec(ctx, delSQL, delArgs...); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error deleting consumed OTP")
		return fmt.Errorf("error deleting consumed OTP: %w", err)
	}

	return nil
}

// SaveResetToken stores a reset token for an email, replacing any previous token
func (r *PasswordResetRepository) SaveResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("password_reset_tokens").
		Columns("email", "token", "expires_at", "created_at").
		Values(email, token, expiresAt, time.Now()).
		Suffix("ON CONFLICT (email) DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building save reset token SQL")
		return fmt.Errorf("failed to build save reset token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error saving reset token")
		return fmt.Errorf("error saving reset token: %w", err)
	}

	return nil
}

// ConsumeResetToken validates a reset token for an email and deletes it on success.
// Returns apperrors.ErrInvalidPasswordResetToken when no live token exists and
// apperrors.ErrPasswordResetTokenMismatch when the token does not match.
func (r *PasswordResetRepository) ConsumeResetToken(ctx context.Context, email, token string) error {
	var storedToken string
	var expiresAt time.Time

	sql, args, err := r.sb.Select("token", "expires_at").
		From("password_reset_tokens").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build get reset token query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&storedToken, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrInvalidPasswordResetToken
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning reset token row")
		return fmt.Errorf("error retrieving reset token: %w", err)
	}

	if time.Now().After(expiresAt) {
		return apperrors.ErrInvalidPasswordResetToken
	}
	if storedToken != token {
		return apperrors.ErrPasswordResetTokenMismatch
	}

	delSQL, delArgs, err := r.sb.Delete("password_reset_tokens").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete reset token query: %w", err)
	}

	if _, err = r.db.Exec(ctx, delSQL, delArgs...); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error deleting consumed reset token")
		return fmt.Errorf("error deleting consumed reset token: %w", err)
	}

	return nil
}

// CancelReset removes any pending OTP and reset token for an email
func (r *PasswordResetRepository) CancelReset(ctx context.Context, email string) error {
	otpSQL, otpArgs, err := r.sb.Delete("password_otps").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cancel OTP query: %w", err)
	}
	if _, err = r.db.Exec(ctx, otpSQL, otpArgs...); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error cancelling OTP")
		return fmt.Errorf("error cancelling OTP: %w", err)
	}

	tokSQL, tokArgs, err := r.sb.Delete("password_reset_tokens").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cancel reset token query: %w", err)
	}
	if _, err = r.db.Exec(ctx, tokSQL, tokArgs...); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error cancelling reset token")
		return fmt.Errorf("error cancelling reset token: %w", err)
	}

	return nil
}

// DeleteExpired removes expired OTP codes and reset tokens.
// Called periodically by the auth service cleanup loop.
func (r *PasswordResetRepository) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now()
	var total int64

	otpSQL, otpArgs, err := r.sb.Delete("password_otps").
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired OTPs query: %w", err)
	}
	tag, err := r.db.Exec(ctx, otpSQL, otpArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting expired OTPs")
		return 0, fmt.Errorf("error deleting expired OTPs: %w", err)
	}
	total += tag.RowsAffected()

	tokSQL, tokArgs, err := r.sb.Delete("password_reset_tokens").
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired reset tokens query: %w", err)
	}
	tag, err = r.db.Exec(ctx, tokSQL, tokArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting expired reset tokens")
		return 0, fmt.Errorf("error deleting expired reset tokens: %w", err)
	}
	total += tag.RowsAffected()

	return total, nil
}
