package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayspot/internal/api"
	"stayspot/internal/config"
	"stayspot/internal/database"
	"stayspot/internal/domain"
	"stayspot/internal/events"
	"stayspot/internal/logging"
	"stayspot/internal/metrics"
	"stayspot/internal/models"
	"stayspot/internal/repository"
	"stayspot/internal/service"
	"stayspot/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	if err := seedDatabase(db, &logger); err != nil {
		return err
	}

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer repository.Close(redisClient)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewEventBus()
	subscribeEventLog(eventBus, &logger)

	exportWorker := worker.NewExportWorker(db, cfg.Exports, worker.RetryPolicy{}, &logger)
	go exportWorker.Start(ctx)

	backup := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
	go backup.Start(ctx)

	agg := service.NewAggregationService(db)
	bookings := service.NewBookingService(db, eventBus, exportWorker, cfg.Booking.RejectOwner, &logger)
	listings := service.NewListingService(db, agg)
	reviews := service.NewReviewService(db, eventBus, &logger)
	spots := service.NewSpotService(db, eventBus, &logger)

	limiter := buildRateLimiter(redisClient, &logger)
	httpServer := api.NewHTTPServer(cfg.API, bookings, listings, reviews, spots, limiter, &logger)

	startMetrics(ctx, cfg, &logger)

	return serveUntilSignal(ctx, httpServer, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

type seedFile struct {
	Users []struct {
		FirstName string `yaml:"first_name"`
		LastName  string `yaml:"last_name"`
		Email     string `yaml:"email"`
	} `yaml:"users"`
	Spots []struct {
		OwnerEmail  string  `yaml:"owner_email"`
		Address     string  `yaml:"address"`
		City        string  `yaml:"city"`
		State       string  `yaml:"state"`
		Country     string  `yaml:"country"`
		Lat         float64 `yaml:"lat"`
		Lng         float64 `yaml:"lng"`
		Name        string  `yaml:"name"`
		Description string  `yaml:"description"`
		Price       int64   `yaml:"price"`
	} `yaml:"spots"`
}

// seedDatabase loads the optional seed fixture. Users are matched by
// email and spots by owner and name, so restarts stay idempotent.
func seedDatabase(db *database.DB, logger *zerolog.Logger) error {
	seedPath := os.Getenv("SEED_PATH")
	if seedPath == "" {
		seedPath = "configs/seed.yaml"
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info().Str("seed_path", seedPath).Msg("no seed file, skipping")
			return nil
		}
		logger.Error().Err(err).Str("seed_path", seedPath).Msg("read seed")
		return err
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		logger.Error().Err(err).Str("seed_path", seedPath).Msg("parse seed")
		return err
	}

	ctx := context.Background()
	usersByEmail := make(map[string]int64, len(seed.Users))

	for _, u := range seed.Users {
		existing, err := db.GetUserByEmail(ctx, u.Email)
		if err == nil {
			usersByEmail[u.Email] = existing.ID
			continue
		}
		if !errors.Is(err, database.ErrUserNotFound) {
			return err
		}

		user := &models.User{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
		if err := db.CreateUser(ctx, user); err != nil {
			return err
		}
		usersByEmail[u.Email] = user.ID
	}

	for _, sp := range seed.Spots {
		ownerID, ok := usersByEmail[sp.OwnerEmail]
		if !ok {
			logger.Warn().Str("owner_email", sp.OwnerEmail).Str("spot", sp.Name).Msg("seed spot owner missing, skipping")
			continue
		}

		owned, err := db.ListSpotsByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		exists := false
		for _, existing := range owned {
			if existing.Name == sp.Name {
				exists = true
				break
			}
		}
		if exists {
			continue
		}

		spot := &models.Spot{
			OwnerID: ownerID, Address: sp.Address, City: sp.City, State: sp.State,
			Country: sp.Country, Lat: sp.Lat, Lng: sp.Lng, Name: sp.Name,
			Description: sp.Description, Price: sp.Price,
		}
		if err := db.CreateSpot(ctx, spot); err != nil {
			return err
		}
	}

	logger.Info().Int("users", len(seed.Users)).Int("spots", len(seed.Spots)).Msg("seed applied")
	return nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(context.Background(), redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// buildRateLimiter picks redis with a memory fallback when redis is up,
// plain memory otherwise.
func buildRateLimiter(redisClient *redis.Client, logger *zerolog.Logger) domain.RateLimiter {
	memory := repository.NewMemoryRateLimiter()
	if redisClient == nil {
		return memory
	}
	return repository.NewFailoverRateLimiter(repository.NewRedisRateLimiter(redisClient), memory, logger)
}

func subscribeEventLog(bus *events.EventBus, logger *zerolog.Logger) {
	eventLogger := logger.With().Str("component", "events").Logger()
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingDeleted,
		events.EventReviewCreated,
		events.EventSpotCreated,
		events.EventSpotDeleted,
	} {
		bus.Subscribe(eventType, func(e *events.Event) error {
			eventLogger.Info().Str("event_type", e.Type).RawJSON("payload", e.Payload).Msg("domain event")
			return nil
		})
	}
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func serveUntilSignal(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
