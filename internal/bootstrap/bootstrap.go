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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emre/learnhub/internal/app/controllers"
	appMigrations "github.com/emre/learnhub/internal/app/migrations"
	appRepos "github.com/emre/learnhub/internal/app/repositories"
	appRoutes "github.com/emre/learnhub/internal/app/routes"
	appServices "github.com/emre/learnhub/internal/app/services"
	"github.com/emre/learnhub/internal/config"
	"github.com/emre/learnhub/internal/db"
	appMiddleware "github.com/emre/learnhub/internal/middleware"
	pkgAuth "github.com/emre/learnhub/internal/pkg/auth"
	"github.com/emre/learnhub/internal/pkg/helpers"
	"github.com/emre/learnhub/internal/pkg/logger"
	"github.com/emre/learnhub/internal/pkg/payment"
	"github.com/emre/learnhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	CourseService          *appServices.CourseService
	CartService            *appServices.CartService
	PointsService          *appServices.PointsService
	TutoringService        *appServices.TutoringService
	SubscriptionService    *appServices.SubscriptionService
	AchievementService     *appServices.AchievementService
	AdminService           *appServices.AdminService
	AuthController         *appControllers.AuthController
	CourseController       *appControllers.CourseController
	CartController         *appControllers.CartController
	PointsController       *appControllers.PointsController
	TutoringController     *appControllers.TutoringController
	SubscriptionController *appControllers.SubscriptionController
	UserController         *appControllers.UserController
	AdminController        *appControllers.AdminController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	PaymentClient          *payment.Client
	Logger                 zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
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

	// Seed failures are logged but do not block startup
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	lgr.Info().Msg("Building application dependencies...")

	repos := appRepos.NewRepositories(dbPool)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	paymentClient := payment.NewClient(cfg.Payment.GatewayURL, cfg.Payment.APIKey)

	authService := appServices.NewAuthService(
		repos.UserRepository,
		repos.TokenRepository,
		jwtService,
		lgr,
	)
	courseService := appServices.NewCourseService(
		repos.CourseRepository,
		repos.ReviewRepository,
		repos.EnrollmentRepository,
		lgr,
	)
	cartService := appServices.NewCartService(
		repos.CartRepository,
		repos.PurchaseRepository,
		repos.CourseRepository,
		repos.SubscriptionRepository,
		repos.EnrollmentRepository,
		paymentClient,
		lgr,
	)
	pointsService := appServices.NewPointsService(
		repos.PointsRepository,
		repos.PurchaseRepository,
		repos.UserRepository,
		paymentClient,
		lgr,
	)
	tutoringService := appServices.NewTutoringService(repos.TutoringRepository, lgr)
	subscriptionService := appServices.NewSubscriptionService(
		repos.SubscriptionRepository,
		paymentClient,
		lgr,
	)
	achievementService := appServices.NewAchievementService(
		repos.AchievementRepository,
		repos.EnrollmentRepository,
		repos.PurchaseRepository,
		lgr,
	)
	adminService := appServices.NewAdminService(
		repos.StatsRepository,
		repos.UserRepository,
		lgr,
	)

	authMiddleware := appMiddleware.NewAuthMiddleware(jwtService, repos.UserRepository)

	deps := &Dependencies{
		AuthService:            authService,
		CourseService:          courseService,
		CartService:            cartService,
		PointsService:          pointsService,
		TutoringService:        tutoringService,
		SubscriptionService:    subscriptionService,
		AchievementService:     achievementService,
		AdminService:           adminService,
		AuthController:         appControllers.NewAuthController(authService),
		CourseController:       appControllers.NewCourseController(courseService, achievementService),
		CartController:         appControllers.NewCartController(cartService, achievementService),
		PointsController:       appControllers.NewPointsController(pointsService),
		TutoringController:     appControllers.NewTutoringController(tutoringService),
		SubscriptionController: appControllers.NewSubscriptionController(subscriptionService),
		UserController:         appControllers.NewUserController(achievementService),
		AdminController:        appControllers.NewAdminController(adminService, tutoringService),
		AuthMiddleware:         authMiddleware,
		Repos:                  repos,
		JWTService:             jwtService,
		PaymentClient:          paymentClient,
		Logger:                 lgr,
	}

	lgr.Info().Msg("Application dependencies built.")
	return deps, nil
}

// SetupRouter configures the Gin engine and registers all API routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	mode := strings.ToLower(cfg.Server.Mode)
	if mode == "production" || mode == "release" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.CartController,
		deps.PointsController,
		deps.TutoringController,
		deps.SubscriptionController,
		deps.UserController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
