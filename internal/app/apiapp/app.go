package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/becomecodx/HOMIGO/internal/config"
	s3infra "github.com/becomecodx/HOMIGO/internal/infra/s3"
	"github.com/becomecodx/HOMIGO/internal/jobs/cleanup"
	pgrepo "github.com/becomecodx/HOMIGO/internal/repo/postgres"
	redrepo "github.com/becomecodx/HOMIGO/internal/repo/redis"
	authsvc "github.com/becomecodx/HOMIGO/internal/services/auth"
	feedsvc "github.com/becomecodx/HOMIGO/internal/services/feed"
	listingsvc "github.com/becomecodx/HOMIGO/internal/services/listings"
	matchessvc "github.com/becomecodx/HOMIGO/internal/services/matches"
	mediasvc "github.com/becomecodx/HOMIGO/internal/services/media"
	profilesvc "github.com/becomecodx/HOMIGO/internal/services/profiles"
	ratesvc "github.com/becomecodx/HOMIGO/internal/services/rate"
	reqsvc "github.com/becomecodx/HOMIGO/internal/services/requirements"
	savedsvc "github.com/becomecodx/HOMIGO/internal/services/saved"
	swipesvc "github.com/becomecodx/HOMIGO/internal/services/swipes"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
	cleanupJob *cleanup.Job
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	captchaRepo := redrepo.NewCaptchaRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)

	userRepo := pgrepo.NewUserRepo(pool)
	swipeRepo := pgrepo.NewSwipeRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	listingRepo := pgrepo.NewListingRepo(pool)
	requirementRepo := pgrepo.NewRequirementRepo(pool)
	savedRepo := pgrepo.NewSavedRepo(pool)
	profileRepo := pgrepo.NewProfileRepo(pool)
	mediaRepo := pgrepo.NewMediaRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, userRepo, captchaRepo, cfg.Auth.SessionTTL)
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Matching.SwipeMaxPerSec, cfg.Matching.SwipeMaxPer10Sec)

	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		Pool:        pool,
		SwipeStore:  swipeRepo,
		MatchStore:  matchRepo,
		RateLimiter: rateLimiter,
	})
	matchesService := matchessvc.NewService(matchessvc.Dependencies{
		Pool:       pool,
		MatchStore: matchRepo,
		Contacts:   userRepo,
	})
	listingService := listingsvc.NewService(listingRepo)
	requirementService := reqsvc.NewService(requirementRepo)
	savedService := savedsvc.NewService(savedRepo)
	profileService := profilesvc.NewService(profileRepo)
	feedService := feedsvc.NewService(listingRepo, requirementRepo, feedsvc.Config{
		DefaultPageSize: cfg.Feed.DefaultPageSize,
		MaxPageSize:     cfg.Feed.MaxPageSize,
	})

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	mediaStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	mediaService := mediasvc.NewService(mediaRepo, listingRepo, mediaStorage)
	cleanupJob := cleanup.New(mediaRepo, mediaStorage, cfg.Cleanup.PhotoRetention, log)

	RegisterRoutes(r, Dependencies{
		AuthService:        authService,
		SwipeService:       swipeService,
		MatchService:       matchesService,
		ListingService:     listingService,
		RequirementService: requirementService,
		SavedService:       savedService,
		ProfileService:     profileService,
		FeedService:        feedService,
		MediaService:       mediaService,
		Logger:             log,
		Config:             cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
		cleanupJob: cleanupJob,
	}, nil
}

// RunCleanup runs the photo retention job on a fixed interval until the
// context is canceled.
func (a *App) RunCleanup(ctx context.Context) {
	interval := a.cfg.Cleanup.Interval
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.cleanupJob.Run(ctx); err != nil {
				a.logger.Warn("cleanup job failed", zap.Error(err))
			}
		}
	}
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
