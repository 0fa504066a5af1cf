package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classmanager/api/handler"
	apiMiddleware "classmanager/api/middleware"
	"classmanager/api/routes"
	"classmanager/config"
	"classmanager/internal/metrics"
	"classmanager/internal/repository"
	"classmanager/internal/repository/mongostore"
	"classmanager/internal/service"
	"classmanager/internal/utils"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := openStore(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("store unavailable")
	}
	logger.WithField("driver", cfg.Database.Driver).Info("store connected")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	accessManager := &utils.JWTManager{
		Secret:         []byte(cfg.Auth.JWTSecret),
		Issuer:         cfg.Auth.JWTIssuer,
		AccessTokenTTL: cfg.Auth.JWTTTL,
	}

	var emailSender service.EmailSender = service.LogEmailSender{Logger: logger}
	if cfg.Email.ResendAPIKey != "" {
		emailSender = service.NewResendEmailSender(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Auth.VerificationCodeTTL)
	} else {
		logger.Warn("RESEND_API_KEY not set, verification codes will only be logged")
	}

	clock := service.RealClock{}
	store := backend.store
	userService := service.NewUserService(store, service.BcryptPasswordHasher{}, service.JWTAccessIssuer{Manager: accessManager}, clock, logger, appMetrics)
	studentService := service.NewStudentService(store, clock, logger, appMetrics)
	instructorService := service.NewInstructorService(store, clock, logger, appMetrics)
	classService := service.NewClassService(store, clock, logger, appMetrics)
	verificationService := service.NewVerificationService(store, emailSender, clock, cfg.Auth.VerificationCodeTTL, logger, appMetrics)

	validate := handler.NewValidator()
	handlers := routes.Handlers{
		Users:       handler.NewUserHandler(userService, verificationService, validate, logger),
		Students:    handler.NewStudentHandler(studentService, validate, logger),
		Instructors: handler.NewInstructorHandler(instructorService, validate, logger),
		Classes:     handler.NewClassHandler(classService, validate, logger),
		Health:      &handler.HealthHandler{Ping: backend.ping, Logger: logger},
	}

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	app.Use(apiMiddleware.RequestMetrics(appMetrics))
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status":  v.Status,
				"method":  v.Method,
				"uri":     v.URI,
				"ip":      v.RemoteIP,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: accessManager}
	router := routes.NewRouter(app, handlers, authMiddleware, appMetrics, registry)
	router.RegisterRoutes()

	go purgeExpiredTokens(ctx, verificationService, cfg.Auth.TokenPurgeInterval, logger)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("server started")
		if err := app.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("http shutdown")
	}
	if err := backend.close(shutdownCtx); err != nil {
		logger.WithError(err).Error("store close")
	}
}

type storeBackend struct {
	store *repository.Store
	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config) (*storeBackend, error) {
	if cfg.Database.Driver == config.DriverMongo {
		client, db, err := config.OpenMongo(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db, cfg.Auth.VerificationCodeTTL); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &storeBackend{
			store: mongostore.NewStore(db),
			ping:  func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close: client.Disconnect,
		}, nil
	}

	db, err := config.OpenGorm(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &storeBackend{
		store: repository.NewGormStore(db),
		ping:  sqlDB.PingContext,
		close: func(context.Context) error { return sqlDB.Close() },
	}, nil
}

// purgeExpiredTokens removes stale verification codes until ctx ends. Mongo
// also expires them through a TTL index.
func purgeExpiredTokens(ctx context.Context, verifications *service.VerificationService, interval time.Duration, logger logrus.FieldLogger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := verifications.PurgeExpired(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.WithError(err).Warn("purge expired verification tokens")
				}
				continue
			}
			if removed > 0 {
				logger.WithField("removed", removed).Debug("expired verification tokens purged")
			}
		}
	}
}
