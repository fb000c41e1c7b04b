package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/config"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/infra/memory"
	pgloader "timed-quiz-service/internal/infra/postgres"
	redisstore "timed-quiz-service/internal/infra/redis"
	"timed-quiz-service/internal/lib/slogcustom"
)

func newLogger(cfg config.Config) *slog.Logger {
	return slogcustom.New(os.Stderr, cfg.Log.Level, cfg.Log.NoColor)
}

// buildService picks Postgres/Redis backends when configured and falls back
// to the built-in bank held in memory. The returned cleanup closes clients.
func buildService(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app.QuizService, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = redisClient.Close() })
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cleanup()
			return nil, nil, err
		}
		logger.Info("redis connected", "addr", cfg.Redis.Addr)
	}
	sessionTTL := config.Duration(cfg.Redis.TTL, 15*time.Minute)

	var loader memory.BankLoader = memory.NewStaticBankLoader(domain.DefaultBank())
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
		loader = pgloader.NewBankLoader(pool)
		logger.Info("postgres bank store enabled")
	}

	bankTTL := config.Duration(cfg.Quiz.BankTTL, 10*time.Minute)
	var banks app.BankRepository
	var store app.SessionRepository
	if redisClient != nil {
		banks = redisstore.NewBankRepository(redisClient, loader, bankTTL)
		store = redisstore.NewSessionStore(redisClient, sessionTTL)
	} else {
		banks = memory.NewBankRepository(loader, bankTTL)
		store = memory.NewSessionStore()
	}

	service := app.NewQuizService(store, banks, app.TickerScheduler{}, app.Options{
		GlobalDuration: cfg.GlobalSeconds(),
		TickInterval:   config.Duration(cfg.Quiz.TickInterval, time.Second),
		Logger:         logger,
	})
	return service, cleanup, nil
}
