package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/sutcommunity/backend/internal/app/models"
	appRepos "github.com/sutcommunity/backend/internal/app/repositories"
)

var defaultViolationTypes = []string{
	"Spam",
	"Harassment",
	"Hate speech",
	"Violence",
	"Nudity",
	"False information",
	"Other",
}

var defaultCategories = []string{
	"General",
	"Events",
	"Academics",
	"Food",
	"Travel",
	"Marketplace",
	"Sports",
}

// CreateDefaultData seeds the violation types, the post categories and a
// default admin account. Existing rows are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (violation types, categories, admin)...")
	var finalErr error

	for _, name := range defaultViolationTypes {
		_, err := dbPool.Exec(ctx,
			`INSERT INTO violation_types (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
		if err != nil {
			lgr.Error().Err(err).Str("name", name).Msg("Error seeding violation type")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, name := range defaultCategories {
		_, err := dbPool.Exec(ctx,
			`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
		if err != nil {
			lgr.Error().Err(err).Str("name", name).Msg("Error seeding category")
			finalErr = errors.Join(finalErr, err)
		}
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, "admin@sut.ac.th")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		return finalErr
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Username: "admin",
		Email:    "admin@sut.ac.th",
		Password: string(hashedPassword),
		Role:     appModels.RoleAdmin,
	}

	if _, err := userRepo.CreateUser(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		finalErr = errors.Join(finalErr, err)
	} else {
		lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
	}

	return finalErr
}
