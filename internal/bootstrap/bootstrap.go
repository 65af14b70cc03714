package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sutcommunity/backend/docs" // Import generated swagger docs
	appControllers "github.com/sutcommunity/backend/internal/app/controllers"
	appMigrations "github.com/sutcommunity/backend/internal/app/migrations"
	appRepos "github.com/sutcommunity/backend/internal/app/repositories"
	appRoutes "github.com/sutcommunity/backend/internal/app/routes"
	appServices "github.com/sutcommunity/backend/internal/app/services"
	"github.com/sutcommunity/backend/internal/config"
	"github.com/sutcommunity/backend/internal/db"
	appMiddleware "github.com/sutcommunity/backend/internal/middleware"
	pkgAuth "github.com/sutcommunity/backend/internal/pkg/auth"
	"github.com/sutcommunity/backend/internal/pkg/email"
	"github.com/sutcommunity/backend/internal/pkg/filestorage"
	"github.com/sutcommunity/backend/internal/pkg/helpers"
	"github.com/sutcommunity/backend/internal/pkg/logger"
	"github.com/sutcommunity/backend/internal/pkg/push"
	"github.com/sutcommunity/backend/internal/pkg/websocket"
	"github.com/sutcommunity/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Database    *db.PostgresDB
	FileStorage *filestorage.LocalStorage
	JWTService  *pkgAuth.JWTService
	EmailSvc    email.EmailService
	PushClient  *push.Client
	Hub         *websocket.Hub

	AuthService         *appServices.AuthService
	UserService         *appServices.UserService
	PostService         *appServices.PostService
	CommentService      *appServices.CommentService
	SocialService       *appServices.SocialService
	ReportService       *appServices.ReportService
	NotificationService *appServices.NotificationService
	AdminService        *appServices.AdminService

	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	PostController         *appControllers.PostController
	CommentController      *appControllers.CommentController
	SocialController       *appControllers.SocialController
	ReportController       *appControllers.ReportController
	NotificationController *appControllers.NotificationController
	AdminController        *appControllers.AdminController
	WSHandler              *websocket.Handler

	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds defaults.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Database: database, Logger: lgr}
	dbPool := database.Pool

	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := cfg.Storage.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port + "/uploads"
	}
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.BasePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailSvc = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	deps.PushClient = push.NewClient(cfg.Push.Endpoint, lgr)
	deps.Hub = websocket.NewHub(lgr)

	deps.NotificationService = appServices.NewNotificationService(
		deps.Repos.NotificationRepository,
		deps.Repos.UserRepository,
		deps.PushClient,
		deps.Hub,
		lgr,
	)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.PasswordResetRepository,
		deps.JWTService,
		deps.EmailSvc,
		lgr,
	)
	deps.UserService = appServices.NewUserService(database, deps.Repos, deps.FileStorage, lgr)
	deps.PostService = appServices.NewPostService(
		database,
		deps.Repos.PostRepository,
		deps.Repos.CategoryRepository,
		deps.FileStorage,
		lgr,
	)
	deps.CommentService = appServices.NewCommentService(
		deps.Repos.CommentRepository,
		deps.Repos.PostRepository,
		deps.NotificationService,
		lgr,
	)
	deps.SocialService = appServices.NewSocialService(
		deps.Repos.LikeRepository,
		deps.Repos.FollowRepository,
		deps.Repos.PostRepository,
		deps.Repos.UserRepository,
		deps.NotificationService,
		lgr,
	)
	deps.ReportService = appServices.NewReportService(
		deps.Repos.ReportRepository,
		deps.Repos.PostRepository,
		deps.NotificationService,
		lgr,
	)
	deps.AdminService = appServices.NewAdminService(deps.Repos.StatsRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.FileStorage, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, deps.FileStorage, lgr)
	deps.PostController = appControllers.NewPostController(deps.PostService)
	deps.CommentController = appControllers.NewCommentController(deps.CommentService)
	deps.SocialController = appControllers.NewSocialController(deps.SocialService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService)
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)

	return deps, nil
}

// StartBackground launches the websocket hub and the expired-row cleanup
// loop. Both stop when ctx is cancelled.
func (d *Dependencies) StartBackground(ctx context.Context) {
	go d.Hub.Run(ctx)
	d.AuthService.StartCleanupLoop(ctx)
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.PostController,
		deps.CommentController,
		deps.SocialController,
		deps.ReportController,
		deps.NotificationController,
		deps.AdminController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
