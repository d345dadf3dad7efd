package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"simplylife/internal/cms/adapters/cache"
	"simplylife/internal/cms/adapters/email"
	cmshttp "simplylife/internal/cms/adapters/http"
	"simplylife/internal/cms/adapters/postgres"
	"simplylife/internal/cms/adapters/services"
	"simplylife/internal/cms/adapters/storage"
	"simplylife/internal/cms/app"
	"simplylife/internal/cms/config"
	"simplylife/internal/cms/db"
	"simplylife/internal/cms/metrics"
	svc "simplylife/internal/cms/ports/services"
	redisclient "simplylife/pkg/db/redis"
	"simplylife/pkg/logger"
	"simplylife/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "CMS_LOGGER_MODE"
	EnvLoggerLevel = "CMS_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrInitStorage          = "failed to initialize image storage"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrUnknownUploadDriver  = "unknown upload driver"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "CMS service started"
	LogServiceShutdownDone = "CMS service shutdown complete"
	LogInitRepo            = "initializing repositories"
	LogInitCache           = "initializing cache"
	LogInitServices        = "initializing services"
	LogInitStorage         = "initializing image storage"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDB           = "closing database connection"
	LogClosingRedis        = "closing Redis connection"
	LogResendDisabled      = "RESEND_API_KEY is not set, outgoing emails will fail"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres, cfg.MigrationsDir)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitCache)
		rdb, err := redisclient.NewClient(ctx, redisclient.NewConfig(&cfg.Redis))
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}
		limiter := cache.NewLoginLimiter(rdb, cfg.Auth.MaxLoginAttempts, cfg.Auth.LockTime)
		productCache := cache.NewProductCache(rdb, cfg.Redis.ProductTTL)

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(
			cfg.Auth.SecretKey,
			cfg.Auth.AdminTokenTTL,
			cfg.Auth.AppUserTokenTTL,
			cfg.Auth.BCryptCost,
		)
		passwordService := serviceFactory.PasswordService()
		tokenService := serviceFactory.TokenService()

		if cfg.Email.ResendAPIKey == "" {
			log.Warn(ctx, LogResendDisabled)
		}
		mailer := email.NewResendMailer(cfg.Email.ResendAPIKey, cfg.Email.From())

		log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Upload.Driver))
		images, err := newImageStore(ctx, &cfg.Upload)
		if err != nil {
			log.Error(ctx, ErrInitStorage, zap.Error(err))
			_ = rdb.Close()
			database.Close(ctx)
			exitCode = 1
			return
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		serviceMetrics := metrics.New(registry)

		log.Info(ctx, LogInitUseCases)
		adminUseCase := app.NewAdminUseCase(
			repoFactory.AdminRepository(),
			passwordService,
			tokenService,
			limiter,
			serviceMetrics,
		)
		appUserUseCase := app.NewAppUserUseCase(
			repoFactory.AppUserRepository(),
			passwordService,
			tokenService,
			limiter,
			mailer,
			images,
			serviceMetrics,
			app.AppUserConfig{
				ServerURL:     cfg.ServerURL,
				ResetTokenTTL: cfg.Auth.ForgotPasswordTTL,
			},
		)
		supplierUseCase := app.NewSupplierUseCase(repoFactory.SupplierRepository(), productCache)
		healthUseCase := app.NewHealthUseCase(database, cfg.Postgres.Provider(), cfg.Region)

		log.Info(ctx, LogInitHTTPServer)
		server := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.Upload.BodyLimit(),
			ErrorHandler: cmshttp.NewErrorHandler(),
		})

		deps := cmshttp.Dependencies{
			Admins:      adminUseCase,
			AppUsers:    appUserUseCase,
			Suppliers:   supplierUseCase,
			Health:      healthUseCase,
			Observer:    serviceMetrics,
			Gatherer:    registry,
			CORSOrigins: cfg.HTTP.CORSOrigins,
			MaxFileSize: cfg.Upload.MaxFileSize,
		}
		if cfg.Upload.Driver == config.UploadDriverLocal {
			deps.MediaDir = cfg.Upload.Dir
			deps.MediaPath = cfg.Upload.PublicPath
		}
		cmshttp.SetupRouter(server, deps)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.ShutdownWithContext(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return rdb.Close()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// newImageStore выбирает хранилище изображений по драйверу из конфигурации.
func newImageStore(ctx context.Context, cfg *config.UploadConfig) (svc.ImageStore, error) {
	switch cfg.Driver {
	case config.UploadDriverLocal:
		return storage.NewLocalStore(cfg.Dir, cfg.PublicPath), nil
	case config.UploadDriverS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
		if err != nil {
			return nil, err
		}
		return storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix), nil
	default:
		return nil, fmt.Errorf("%s: %q", ErrUnknownUploadDriver, cfg.Driver)
	}
}
