package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"music-contest/domain/repository"
	"music-contest/infrastructure/cache"
	"music-contest/infrastructure/clients/platforms"
	"music-contest/infrastructure/clients/webhook"
	youtubeclient "music-contest/infrastructure/clients/youtube"
	"music-contest/infrastructure/configuration"
	"music-contest/infrastructure/logger"
	"music-contest/infrastructure/persistence"
	"music-contest/infrastructure/pubsub"
	"music-contest/infrastructure/ratelimit"
	httpHandler "music-contest/interfaces/http"
	"music-contest/server"
	"music-contest/usecase"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	cfg := configuration.C

	db, err := persistence.NewSqliteDb(cfg.Database.Path)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Failed to open contest database")
	}
	defer db.Close()

	// Schema problems are fatal before serving a single request.
	if err := persistence.Migrate(ctx, db); err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Database migration failed")
	}
	if err := persistence.VerifyIntegrity(ctx, db); err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Database integrity check failed")
	}
	if _, err := persistence.CreateBackup(cfg.Database.Path, cfg.Database.BackupDir, cfg.Database.BackupRetention); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Startup backup failed - continuing")
	}

	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without metadata cache")
			redisClient = nil
		}
		defer func() {
			if redisClient != nil {
				redisClient.Close()
			}
		}()
	}

	pubSubClient, err := pubsub.NewPubSub(ctx, cfg.Pubsub.ProjectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - continuing without event publishing")
		pubSubClient = nil
	}
	defer func() {
		if pubSubClient != nil {
			pubSubClient.Close()
		}
	}()

	var videoAPI platforms.VideoAPI
	if cfg.YouTube.APIKey != "" {
		ytClient, err := youtubeclient.NewYouTubeClient(ctx, cfg.YouTube.APIKey)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("YouTube API unavailable - falling back to page scraping")
		} else {
			videoAPI = ytClient
		}
	}

	fetcher := platforms.NewFetcher(
		time.Duration(cfg.Request.TimeoutSeconds)*time.Second,
		cfg.Request.MaxResponseSize,
		cfg.Request.UserAgent,
	)
	defer fetcher.Close()

	registry := platforms.NewDefaultRegistry(fetcher, videoAPI)

	contestRepo := persistence.NewContestRepository(db)
	submissionRepo := persistence.NewSubmissionRepository(db)
	voteRepo := persistence.NewVoteRepository(db)
	auditRepo := persistence.NewAuditRepository(db)
	statsRepo := persistence.NewStatsRepository(db)

	var submitLimiter, deleteLimiter repository.IRateLimiter
	if cfg.RateLimit.Persisted {
		rateLimitRepo := persistence.NewRateLimitRepository(db)
		submitLimiter = ratelimit.NewPersistedLimiter(rateLimitRepo, "submit", cfg.RateLimit.SubmitCalls, time.Duration(cfg.RateLimit.SubmitWindow)*time.Second)
		deleteLimiter = ratelimit.NewPersistedLimiter(rateLimitRepo, "delete", cfg.RateLimit.DeleteCalls, time.Duration(cfg.RateLimit.DeleteWindow)*time.Second)
	} else {
		submitLimiter = ratelimit.NewLimiter(cfg.RateLimit.SubmitCalls, time.Duration(cfg.RateLimit.SubmitWindow)*time.Second)
		deleteLimiter = ratelimit.NewLimiter(cfg.RateLimit.DeleteCalls, time.Duration(cfg.RateLimit.DeleteWindow)*time.Second)
	}

	metadataCache := cache.NewMetadataCache(redisClient)
	publisher := pubsub.NewEventPublisher(pubSubClient, cfg.Pubsub.Topic)
	poster := webhook.NewPoster(
		cfg.Poster.PublicWebhookURL,
		cfg.Poster.ReviewWebhookURL,
		time.Duration(cfg.Request.TimeoutSeconds)*time.Second,
	)

	contestUsecase := usecase.NewContestUsecase(contestRepo, submissionRepo, auditRepo, registry)
	submissionUsecase := usecase.NewSubmissionUsecase(
		contestRepo, submissionRepo, auditRepo,
		registry, metadataCache, poster, publisher,
		submitLimiter, deleteLimiter,
	)
	statsUsecase := usecase.NewStatsUsecase(contestRepo, statsRepo)
	voteUsecase := usecase.NewVoteUsecase(contestRepo, submissionRepo, voteRepo, auditRepo)

	router := server.InitiateRouter(
		httpHandler.NewContestHandler(contestUsecase),
		httpHandler.NewSubmissionHandler(submissionUsecase),
		httpHandler.NewStatsHandler(statsUsecase),
		httpHandler.NewVoteHandler(voteUsecase),
		cfg.App.SecretKey,
	)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	g.Go(func() error {
		logger.GetLogger().WithField("port", cfg.App.Port).Info("Contest server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		select {
		case sig := <-interrupt:
			logger.GetLogger().WithField("signal", sig.String()).Info("Shutdown signal received")
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server exited with error")
	}
}
