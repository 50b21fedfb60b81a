package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medical-appointments-api/config"
	deliveryHttp "medical-appointments-api/internal/delivery/http"
	"medical-appointments-api/internal/delivery/http/handler"
	"medical-appointments-api/internal/delivery/http/middleware"
	"medical-appointments-api/internal/infrastructure/cache"
	"medical-appointments-api/internal/infrastructure/database"
	"medical-appointments-api/internal/repository"
	"medical-appointments-api/internal/service"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/jwt"
	"medical-appointments-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	startupCheckTimeout = 5 * time.Second
	shutdownTimeout     = 10 * time.Second
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized.
// It fails if the store or cache is unreachable.
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		setupLogger("info")
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	if cfg.DB.AutoMigrate {
		if err := database.MigrateUp(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, database.LogLevelFor(cfg.App.Env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	checker := newHealthChecker(db, redisClient)
	ctx, cancel := context.WithTimeout(context.Background(), startupCheckTimeout)
	defer cancel()
	if _, err := checker.Check(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("startup health check failed: %w", err)
	}
	logrus.Info("Database and Redis are reachable")

	app.Server = initializeServer(cfg, db, redisClient, checker)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

func newHealthChecker(db *gorm.DB, redisClient *redis.Client) *service.HealthChecker {
	return service.NewHealthChecker(map[string]service.PingFunc{
		"postgres": func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	})
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, checker *service.HealthChecker) *http.Server {
	log := logrus.StandardLogger()

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	historyRepo := repository.NewHistoryRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	tokenRepo := repository.NewTokenRepository(redisClient)
	cacheRepo := repository.NewCacheRepository(redisClient)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	directoryCache := service.NewDirectoryCache(cacheRepo, cfg.Redis.CacheTTL, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, tokenRepo, auditService, jwtService)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, doctorRepo, specialtyRepo, auditService, directoryCache)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, directoryCache)
	specialtyUsecase := usecase.NewSpecialtyUsecase(db, log, specialtyRepo, auditService, directoryCache)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorRepo, auditService)
	historyUsecase := usecase.NewHistoryUsecase(db, log, historyRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase)
	specialtyHandler := handler.NewSpecialtyHandler(specialtyUsecase, doctorUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	historyHandler := handler.NewHistoryHandler(historyUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	healthHandler := handler.NewHealthHandler(checker, log)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUsecase, log)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		doctorHandler,
		specialtyHandler,
		appointmentHandler,
		historyHandler,
		auditLogHandler,
		healthHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes the database pool and the Redis client.
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
