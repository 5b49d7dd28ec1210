package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/config"
	"github.com/artcontest/contest-backend/internal/database"
	"github.com/artcontest/contest-backend/internal/notify"
	"github.com/artcontest/contest-backend/internal/otp"
	"github.com/artcontest/contest-backend/internal/pkg/jwt"
	mysqlRepo "github.com/artcontest/contest-backend/internal/repository/mysql"
	redisRepo "github.com/artcontest/contest-backend/internal/repository/redis"
	"github.com/artcontest/contest-backend/internal/rest"
	"github.com/artcontest/contest-backend/internal/rest/middleware"
	"github.com/artcontest/contest-backend/internal/storage"
	"github.com/artcontest/contest-backend/internal/usecase/admin"
	"github.com/artcontest/contest-backend/internal/usecase/gallery"
	"github.com/artcontest/contest-backend/internal/usecase/like"
	"github.com/artcontest/contest-backend/internal/usecase/moderation"
	otpUsecase "github.com/artcontest/contest-backend/internal/usecase/otp"
	"github.com/artcontest/contest-backend/internal/usecase/submission"
	"github.com/artcontest/contest-backend/internal/workers"
)

const (
	shutdownTimeout = 5 * time.Second
	drainTimeout    = 10 * time.Second
	storageAttempts = 3
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	setupLogger(cfg)

	started := time.Now()

	// prepare database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal(err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logrus.Errorf("got error when closing the DB connection: %v", err)
		}
	}()
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// prepare cache; redis is optional
	var (
		guard    domain.QuotaGuard
		verified domain.VerifiedEmailStore
	)
	if addr := cfg.Cache.Addr(); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer func() {
			if err := client.Close(); err != nil {
				logrus.Errorf("got error when closing the cache connection: %v", err)
			}
		}()

		if err := client.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Warn("cache is unreachable, running without quota lock and OTP memory")
		} else {
			guard = redisRepo.NewQuotaGuard(client)
			verified = redisRepo.NewVerifiedEmailStore(client, cfg.VerifiedTTL)
		}
	}
	if cfg.LikesRequireOTP && verified == nil {
		logrus.Fatal("LIKES_REQUIRE_OTP needs a reachable cache")
	}

	// prepare storage
	local := storage.NewLocalStore(cfg.UploadDir, cfg.UploadURLPrefix)
	var primary domain.FileStore
	if cfg.Minio.Enabled() {
		store, err := storage.NewMinioStore(ctx, storage.MinioOptions{
			Endpoint:    cfg.Minio.EndpointURL(),
			AccessKey:   cfg.Minio.AccessKey,
			SecretKey:   cfg.Minio.SecretKey,
			Bucket:      cfg.Minio.Bucket,
			Region:      cfg.Minio.Region,
			PublicURL:   cfg.Minio.PublicURL,
			Timeout:     cfg.ExternalTimeout,
			MaxAttempts: storageAttempts,
		})
		if err != nil {
			logrus.WithError(err).Warn("object store is misconfigured, uploads go to local disk")
		} else {
			if err := store.EnsureBucket(ctx); err != nil {
				logrus.WithError(err).Warn("failed to ensure bucket, uploads may fall back to local disk")
			}
			primary = store
		}
	} else {
		logrus.Info("object store is not configured, uploads go to local disk")
	}

	// start worker
	telegram := notify.NewTelegram(notify.DefaultTelegramAPI, cfg.Telegram.Token, cfg.Telegram.ChatID, cfg.ExternalTimeout)
	if !telegram.Enabled() {
		logrus.Info("telegram is not configured, notifications are disabled")
	}
	notifier := workers.NewNotifyWorker(telegram)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		notifier.Start(ctx)
	}()

	// build service layer
	submissionRepo := mysqlRepo.NewSubmissionRepository(db)
	likeRepo := mysqlRepo.NewLikeRepository(db)
	adminRepo := mysqlRepo.NewAdminRepository(db)

	submissionSvc := submission.NewService(submissionRepo, primary, local, guard, notifier, submission.Limits{
		Quota:    cfg.SubmissionQuota,
		MaxBytes: cfg.MaxUploadBytes,
	})
	likeSvc := like.NewService(likeRepo, submissionRepo, verified, cfg.LikesRequireOTP)
	gallerySvc := gallery.NewService(submissionRepo, likeSvc)
	moderationSvc := moderation.NewService(submissionRepo)
	adminSvc := admin.NewService(adminRepo, jwt.New(cfg.JWTSecret, cfg.JWTTTL))
	otpSvc := otpUsecase.NewService(otp.NewClient(cfg.OTP.BaseURL(), cfg.OTP.SystemName, cfg.ExternalTimeout), verified)

	// prepare gin
	route := gin.New()
	route.Use(middleware.Logger())
	route.Use(middleware.CORS(cfg.CORSOrigins))
	route.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{cfg.UploadURLPrefix})))
	route.Use(middleware.SetRequestContextWithTimeout(cfg.ContextTimeout))
	route.MaxMultipartMemory = cfg.MaxUploadBytes

	route.Static(cfg.UploadURLPrefix, local.Dir())
	rest.RegisterRoutes(route, rest.Handlers{
		Submission: rest.NewSubmissionHandler(submissionSvc, cfg.MaxUploadBytes),
		Image:      rest.NewImageHandler(gallerySvc),
		Like:       rest.NewLikeHandler(likeSvc),
		OTP:        rest.NewOTPHandler(otpSvc),
		Admin:      rest.NewAdminHandler(adminSvc, moderationSvc),
		Health:     rest.NewHealthHandler(started),
	}, middleware.AdminAuth(adminSvc))

	// start server
	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: route,
	}
	go func() {
		logrus.Infof("Server is running on %s", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Waiting for notifications to drain...")
	select {
	case <-workerDone:
	case <-time.After(drainTimeout):
		logrus.Warn("notification drain timed out")
	}

	logrus.Info("Server exiting")
}

func setupLogger(cfg *config.Config) {
	logrus.SetOutput(os.Stdout)
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
}
