// Package bootstrap wires configuration, database, dependencies and routing
// into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SaSee1722/leavex/internal/app/controllers"
	appMigrations "github.com/SaSee1722/leavex/internal/app/migrations"
	"github.com/SaSee1722/leavex/internal/app/repositories"
	appRoutes "github.com/SaSee1722/leavex/internal/app/routes"
	"github.com/SaSee1722/leavex/internal/app/services"
	"github.com/SaSee1722/leavex/internal/config"
	"github.com/SaSee1722/leavex/internal/db"
	"github.com/SaSee1722/leavex/internal/middleware"
	"github.com/SaSee1722/leavex/internal/pkg/auth"
	"github.com/SaSee1722/leavex/internal/pkg/filestorage"
	"github.com/SaSee1722/leavex/internal/pkg/logger"
	"github.com/SaSee1722/leavex/internal/pkg/push"
	"github.com/SaSee1722/leavex/internal/pkg/realtime"
	"github.com/SaSee1722/leavex/internal/seed"
)

// Dependencies holds the request-serving object graph
type Dependencies struct {
	Repositories           *repositories.Repositories
	JWTService             *auth.JWTService
	FileStorage            filestorage.FileStorage
	RealtimeHub            *realtime.Hub
	RealtimeHandler        *realtime.Handler
	PushRelay              *push.Relay
	AuthService            *services.AuthService
	LeaveService           *services.LeaveService
	NotificationService    *services.NotificationService
	AuthMiddleware         *middleware.AuthMiddleware
	AuthController         *controllers.AuthController
	LeaveController        *controllers.LeaveController
	NotificationController *controllers.NotificationController
}

// LoadConfigAndSetupLogger loads configuration and configures the global
// logger. A missing .env file is not an error; real deployments pass
// environment variables directly.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "console",
	})

	lgr := zlog.Logger
	lgr.Info().Str("mode", cfg.Server.Mode).Msg("Configuration loaded")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, runs migrations and seeds the
// default reviewer accounts.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seeding failures are logged but not fatal; the schema is usable
		lgr.Error().Err(err).Msg("Error seeding default data")
	}

	return database, nil
}

// BuildDependencies constructs repositories, services, middleware and
// controllers on top of the database pool.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	repos := repositories.NewRepositories(database.Pool)

	accessExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	refreshExp, err := time.ParseDuration(cfg.JWT.RefreshTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token expiration: %w", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  accessExp,
		RefreshTokenExp: refreshExp,
		TokenIssuer:     cfg.JWT.Issuer,
	})

	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.PublicURL+"/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	hub := realtime.NewHub(lgr)
	go hub.Run()
	realtimeHandler := realtime.NewHandler(hub, lgr)

	relay := push.NewRelay(cfg.Push.RelayURL, lgr)
	if relay.Enabled() {
		lgr.Info().Msg("Push relay enabled")
	}

	notificationService := services.NewNotificationService(
		repos.NotificationRepository,
		repos.UserRepository,
		hub,
		relay,
		lgr,
	)
	leaveService := services.NewLeaveService(
		repos.LeaveRepository,
		storage,
		notificationService,
		lgr,
	)
	authService := services.NewAuthService(
		repos.UserRepository,
		repos.TokenRepository,
		jwtService,
		lgr,
	)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	return &Dependencies{
		Repositories:           repos,
		JWTService:             jwtService,
		FileStorage:            storage,
		RealtimeHub:            hub,
		RealtimeHandler:        realtimeHandler,
		PushRelay:              relay,
		AuthService:            authService,
		LeaveService:           leaveService,
		NotificationService:    notificationService,
		AuthMiddleware:         authMiddleware,
		AuthController:         controllers.NewAuthController(authService, lgr),
		LeaveController:        controllers.NewLeaveController(leaveService, lgr),
		NotificationController: controllers.NewNotificationController(notificationService, lgr),
	}, nil
}

// SetupRouter builds the gin engine with all application routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	appRoutes.SetupSwagger(router, ginSwagger.URL("/swagger/doc.json"))
	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.LeaveController,
		deps.NotificationController,
		deps.RealtimeHandler,
		deps.AuthMiddleware,
	)

	return router
}
