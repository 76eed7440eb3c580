package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/backend"
	"github.com/noah-isme/asdos-web/internal/config"
	"github.com/noah-isme/asdos-web/internal/database"
	"github.com/noah-isme/asdos-web/internal/events"
	"github.com/noah-isme/asdos-web/internal/handler"
	"github.com/noah-isme/asdos-web/internal/middleware"
	"github.com/noah-isme/asdos-web/internal/repository"
	"github.com/noah-isme/asdos-web/internal/router"
	"github.com/noah-isme/asdos-web/internal/service"
	"github.com/noah-isme/asdos-web/internal/session"
	"github.com/noah-isme/asdos-web/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level := zerolog.DebugLevel
	if cfg.Production() {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", cfg.AppName).Logger()

	codec, err := token.NewCodec(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("failed to build token codec: %v", err)
	}
	if !codec.Verifies() {
		logger.Warn().Msg("ASDOS_JWT_SECRET not set; session tokens are decoded without signature checks")
	}
	sessions := session.NewManager(codec, cfg.CookieSecure)

	client, err := backend.New(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}

	var activityRepo repository.ActivityRepository
	if cfg.DatabaseURL != "" {
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		activityRepo = repository.NewActivityRepository(db)
	} else {
		logger.Info().Msg("ASDOS_DATABASE_URL not set; activity trail disabled")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = events.Connect(cfg.NATSURL, logger)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}
	publisher := events.NewNATSPublisher(natsConn, cfg.NATSSubjectPrefix, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityService := service.NewActivityService(activityRepo, logger)
	authService := service.NewAuthService(client, validate, logger)
	userService := service.NewUserService(client, activityService, validate, logger)
	courseService := service.NewCourseService(client, activityService, validate, logger)
	lowonganService := service.NewLowonganService(client, activityService, validate, logger)
	lamaranService := service.NewLamaranService(client, activityService, publisher, validate, logger)
	honorService := service.NewHonorService(client, redisClient, cfg.HonorCacheTTL, cfg.HonorRatePerHour, logger)
	logService := service.NewLogService(client, activityService, publisher, honorService, validate, logger)
	dashboardService := service.NewDashboardService(client, activityService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler: handler.NewAuthHandler(authService, sessions,
			middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWindow), logger),
		AdminHandler:    handler.NewAdminHandler(dashboardService, userService, courseService, activityService, logger),
		StudentHandler:  handler.NewStudentHandler(dashboardService, lowonganService, lamaranService, logService, honorService, logger),
		LecturerHandler: handler.NewLecturerHandler(dashboardService, lowonganService, lamaranService, logService, logger),
		Guard:           middleware.RouteGuard(sessions, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
