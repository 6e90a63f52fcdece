package app

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libredis "evcharge/backend/libs/redis"
	appconfig "evcharge/backend/services/booking-service/internal/config"
	"evcharge/backend/services/booking-service/internal/db"
	httpserver "evcharge/backend/services/booking-service/internal/http"
	"evcharge/backend/services/booking-service/internal/http/handlers"
	"evcharge/backend/services/booking-service/internal/http/middleware"
	"evcharge/backend/services/booking-service/internal/password"
	redisstore "evcharge/backend/services/booking-service/internal/redis"
	"evcharge/backend/services/booking-service/internal/repository"
	"evcharge/backend/services/booking-service/internal/service"
	"evcharge/backend/services/booking-service/internal/ws"
)

const rateLimiterCleanupInterval = 5 * time.Minute

// App wires dependencies for the booking service.
type App struct {
	server      *httpserver.Server
	db          *sqlx.DB
	redis       *goredis.Client
	hub         *ws.Hub
	slotEvents  *redisstore.SlotEvents
	rateLimiter *middleware.RateLimiter
	cancel      context.CancelFunc
	logger      *zap.Logger
}

// New builds application graph.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(cfg.Database.DSN, logger); err != nil {
			return nil, err
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	dbx, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	a := &App{db: dbx, logger: logger}
	baseCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	userRepo := repository.NewUserRepository(dbx)
	catalogRepo := repository.NewCatalogRepository(dbx)
	bookingRepo := repository.NewBookingRepository(dbx)

	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())
	authSvc := service.NewAuthService(userRepo, password.NewBcryptHasher(0), tokenSvc, logger)

	a.hub = ws.NewHub(logger)
	var (
		publisher service.SlotEventPublisher = a.hub
		cache     service.CatalogCache
	)
	if cfg.RedisEnabled() {
		client, err := libredis.NewClient(context.Background(), libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// Redis only accelerates reads and fans out events; run without it.
			logger.Warn("redis unavailable, continuing without cache and cross-instance events", zap.Error(err))
		} else {
			a.redis = client
			cache = redisstore.NewCatalogCache(client, cfg.CatalogCacheTTL())
			a.slotEvents = redisstore.NewSlotEvents(client, logger)
			publisher = a.slotEvents
		}
	}

	catalogSvc := service.NewCatalogService(catalogRepo, cache, logger)
	reservationSvc := service.NewReservationService(bookingRepo, catalogRepo, logger,
		service.WithPublisher(publisher),
		service.WithLocation(loc),
	)

	origins := cfg.HTTP.CORSOrigins
	wsServer := ws.NewServer(baseCtx, a.hub, ws.ServerOptions{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || middleware.OriginAllowed(origins, origin)
		},
	}, logger)

	if cfg.HTTP.AuthRateLimit > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimit, cfg.HTTP.AuthRateBurst, logger)
	}

	router := httpserver.NewRouter(httpserver.RouterDeps{
		AuthHandlers:    handlers.NewAuthHandlers(authSvc, logger),
		CatalogHandlers: handlers.NewCatalogHandlers(catalogSvc, logger),
		BookingHandlers: handlers.NewBookingHandlers(reservationSvc, logger),
		EventsHandler:   handlers.NewEventsHandler(wsServer),
		HealthHandler:   handlers.NewHealthHandler(dbx, logger),
		Tokens:          tokenSvc,
		AuthRateLimiter: a.rateLimiter,
	})

	a.server = httpserver.NewServer(cfg.HTTPAddress(), router, logger,
		middleware.Recover(logger),
		middleware.RequestID,
		middleware.AccessLog(logger),
		middleware.CORS(origins),
	)

	return a, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.rateLimiter != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.rateLimiter.Run(ctx, rateLimiterCleanupInterval)
		}()
	}

	if a.slotEvents != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.subscribeSlotEvents(ctx)
		}()
	}

	return a.server.Run(ctx)
}

// subscribeSlotEvents keeps the Redis subscription alive, retrying with a
// fixed delay until ctx is done.
func (a *App) subscribeSlotEvents(ctx context.Context) {
	const retryDelay = 5 * time.Second
	for {
		if err := a.slotEvents.Subscribe(ctx, a.redis, a.hub); err != nil && ctx.Err() == nil {
			a.logger.Warn("slot event subscription failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.hub != nil {
		a.hub.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
