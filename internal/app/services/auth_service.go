package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/app/repositories"
	"github.com/sutcommunity/backend/internal/pkg/apperrors"
	"github.com/sutcommunity/backend/internal/pkg/auth"
	"github.com/sutcommunity/backend/internal/pkg/email"
)

const (
	// OTPExpiry is how long an emailed one-time code stays valid
	OTPExpiry = 5 * time.Minute
	// ResetTokenExpiry is how long a verified reset token stays valid
	ResetTokenExpiry = 15 * time.Minute
	// cleanupInterval is how often expired OTPs and tokens are purged
	cleanupInterval = 5 * time.Minute
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	passwordRegex = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+\-=.?]+$`)
)

// AuthService handles registration, login and the password reset flow
type AuthService struct {
	userRepo     *repositories.UserRepository
	tokenRepo    *repositories.TokenRepository
	resetRepo    *repositories.PasswordResetRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	resetRepo *repositories.PasswordResetRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		resetRepo:    resetRepo,
		jwtService:   jwtService,
		emailService: emailService,
		logger:       logger,
	}
}

// validatePassword checks the minimum length and allowed character set
func (s *AuthService) validatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters long", apperrors.ErrValidationFailed)
	}
	if !passwordRegex.MatchString(password) {
		return fmt.Errorf("%w: password contains invalid characters", apperrors.ErrValidationFailed)
	}
	return nil
}

// Register creates a new user with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, user *models.User, plainPassword string) (*models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)

	if !emailRegex.MatchString(user.Email) {
		return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	if err := s.validatePassword(plainPassword); err != nil {
		return nil, err
	}

	if exists, err := s.userRepo.EmailExists(ctx, user.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if exists, err := s.userRepo.UsernameExists(ctx, user.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	hash, err := auth.HashPassword(plainPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}
	user.Password = hash

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}

// Login authenticates by username and password and issues a token pair
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, string, int, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		// Same error for unknown user and wrong password
		return nil, "", "", 0, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", "", 0, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, "", "", 0, err
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, "", "", 0, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return user, accessToken, refreshToken, expiresIn, nil
}

// RefreshToken rotates a refresh token and issues a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.User, string, string, int, error) {
	userID, _, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, "", "", 0, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", "", 0, err
	}

	accessToken, newRefreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, "", "", 0, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to revoke rotated refresh token")
	}
	if err := s.tokenRepo.CreateToken(ctx, newRefreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, "", "", 0, err
	}

	return user, accessToken, newRefreshToken, expiresIn, nil
}

// SendOTP generates a one-time code for an existing account and emails it.
// Returns the expiry time of the code.
func (s *AuthService) SendOTP(ctx context.Context, emailAddr string) (time.Time, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := s.userRepo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return time.Time{}, err
	}

	code, err := email.GenerateOTPCode()
	if err != nil {
		return time.Time{}, err
	}

	expiresAt := time.Now().Add(OTPExpiry)
	if err := s.resetRepo.SaveOTP(ctx, emailAddr, code, expiresAt); err != nil {
		return time.Time{}, err
	}

	if err := s.emailService.SendPasswordResetOTP(emailAddr, user.Username, code); err != nil {
		s.logger.Error().Err(err).Str("email", emailAddr).Msg("Failed to send OTP email")
		return time.Time{}, err
	}

	s.logger.Info().Str("email", emailAddr).Msg("Password reset OTP sent")
	return expiresAt, nil
}

// VerifyOTP consumes a valid code and issues a single-use reset token
func (s *AuthService) VerifyOTP(ctx context.Context, emailAddr, code string) (string, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	if err := s.resetRepo.ConsumeOTP(ctx, emailAddr, code); err != nil {
		return "", err
	}

	token, err := email.GenerateResetToken()
	if err != nil {
		return "", err
	}

	if err := s.resetRepo.SaveResetToken(ctx, emailAddr, token, time.Now().Add(ResetTokenExpiry)); err != nil {
		return "", err
	}

	s.logger.Info().Str("email", emailAddr).Msg("OTP verified, reset token issued")
	return token, nil
}

// ResetPassword consumes the reset token and replaces the password
func (s *AuthService) ResetPassword(ctx context.Context, emailAddr, token, newPassword string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	if err := s.validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	if err := s.resetRepo.ConsumeResetToken(ctx, emailAddr, token); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	// Existing sessions should not survive a password reset
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to revoke sessions after password reset")
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Password reset completed")
	return nil
}

// CancelReset invalidates an outstanding OTP and reset token for an email
func (s *AuthService) CancelReset(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	return s.resetRepo.CancelReset(ctx, emailAddr)
}

// StartCleanupLoop purges expired OTPs, reset tokens and refresh tokens
// until the context is cancelled
func (s *AuthService) StartCleanupLoop(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed, err := s.resetRepo.DeleteExpired(ctx); err != nil {
					s.logger.Warn().Err(err).Msg("Password reset cleanup failed")
				} else if removed > 0 {
					s.logger.Debug().Int64("removed", removed).Msg("Purged expired password reset rows")
				}

				if removed, err := s.tokenRepo.DeleteExpiredTokens(ctx); err != nil {
					s.logger.Warn().Err(err).Msg("Refresh token cleanup failed")
				} else if removed > 0 {
					s.logger.Debug().Int64("removed", removed).Msg("Purged expired refresh tokens")
				}
			}
		}
	}()
}
