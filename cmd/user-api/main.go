package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"user-admin/internal/api"
	"user-admin/internal/cache"
	"user-admin/internal/config"
	"user-admin/internal/events"
	"user-admin/internal/logger"
	"user-admin/internal/repository"
	"user-admin/internal/service"
	"user-admin/migrations"
)

const serviceName = "user-api"

func main() {
	cfg, err := config.New(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("user-api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	repo, closeRepo, err := newRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	var userCache service.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		defer rdb.Close()
		userCache = cache.NewRedis(rdb, cfg.CacheTTL)
	}

	var publisher interface {
		service.Publisher
		Close() error
	} = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewPublisher(config.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
	}
	defer publisher.Close()

	userService := service.NewUserService(repo, userCache, publisher, log)
	userHandler := api.NewUserHandler(userService)
	e := api.NewServer(userHandler, api.Options{
		ServiceName: serviceName,
		CORSOrigin:  cfg.CORSOrigin,
		JWTSecret:   cfg.JWTSecret,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
	}, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ":"+cfg.Port).Msg("API listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newRepository connects to MySQL and migrates it. The memory storage keeps users
// in process instead, which is handy for local front-end work.
func newRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (service.Repository, func(), error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn().Msg("Using in-memory storage, users are lost on restart")
		return repository.NewMemoryRepository(), func() {}, nil
	}

	db, err := connectDB(ctx, cfg.DSN(), cfg.DBName, log)
	if err != nil {
		return nil, nil, err
	}

	if err := migrations.AutoMigrateUsers(ctx, 3, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ensure schema failed: %w", err)
	}

	return repository.NewUserRepository(db), func() { db.Close() }, nil
}

func connectDB(ctx context.Context, dsn, dbname string, log zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			log.Info().Msgf("Connected to DB %s", dbname)
			return db, nil
		}
		log.Warn().Err(err).Msgf("Retry %d: Failed to connect to DB %s", i+1, dbname)

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}

	db.Close()
	return nil, fmt.Errorf("failed to connect to DB %s after retries: %w", dbname, err)
}
