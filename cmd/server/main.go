package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	redisv9 "github.com/redis/go-redis/v9"

	"watchlist_backend/internal/app/di"
	"watchlist_backend/internal/app/router"
	authadapters "watchlist_backend/internal/feature/auth/adapters"
	authhandler "watchlist_backend/internal/feature/auth/transport/handler"
	authusecase "watchlist_backend/internal/feature/auth/usecase"
	symbollistadapters "watchlist_backend/internal/feature/symbollist/adapters"
	symbollisthandler "watchlist_backend/internal/feature/symbollist/transport/handler"
	symbollistusecase "watchlist_backend/internal/feature/symbollist/usecase"
	watchlistadapters "watchlist_backend/internal/feature/watchlist/adapters"
	watchlisthandler "watchlist_backend/internal/feature/watchlist/transport/handler"
	watchlistusecase "watchlist_backend/internal/feature/watchlist/usecase"
	infradb "watchlist_backend/internal/platform/db"
	"watchlist_backend/internal/platform/errtrack"
	"watchlist_backend/internal/platform/externalapi/finnhub"
	platformhandler "watchlist_backend/internal/platform/http/handler"
	jwtmw "watchlist_backend/internal/platform/jwt"
	"watchlist_backend/internal/platform/logger"
	"watchlist_backend/internal/platform/notify"
	infraredis "watchlist_backend/internal/platform/redis"
)

// serverConfig はサーバープロセス全体の設定です。
type serverConfig struct {
	Env               string        `envconfig:"APP_ENV" default:"development"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	Addr              string        `envconfig:"HTTP_ADDR" default:":8080"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	EnrichConcurrency int           `envconfig:"ENRICH_MAX_CONCURRENCY" default:"8"`
}

func main() {
	// .envがなくても環境変数だけで起動できる
	_ = godotenv.Load()

	var cfg serverConfig
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("failed to load server config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Env, cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg serverConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	dbCfg, err := infradb.LoadConfig()
	if err != nil {
		return err
	}
	db, err := infradb.OpenDB(dbCfg)
	if err != nil {
		return err
	}

	// Redis（接続できなければキャッシュと通知なしで続行）
	var rdb *redisv9.Client
	if redisCfg, err := infraredis.LoadConfig(); err != nil {
		slog.Warn("invalid Redis config. Running without cache.", "error", err)
	} else if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err != nil {
		slog.Warn("Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// エラートラッキング
	trackCfg, err := errtrack.LoadConfig()
	if err != nil {
		return err
	}
	reporter, err := errtrack.New(trackCfg)
	if err != nil {
		return err
	}
	defer reporter.Flush(2 * time.Second)

	// 外部API・通知
	marketCfg, err := finnhub.LoadConfig()
	if err != nil {
		return err
	}
	if marketCfg.APIKey == "" {
		slog.Warn("FINNHUB_API_KEY is not set. Enriched watchlists will have no market data.")
	}
	market := di.NewMarketDataClient(marketCfg, rdb)

	notifyCfg, err := notify.LoadConfig()
	if err != nil {
		return err
	}
	notifier, closeNotifier := di.NewChangeNotifier(notifyCfg, rdb)
	defer func() {
		if err := closeNotifier(); err != nil {
			slog.Error("failed to close change notifier", "error", err)
		}
	}()

	jwtCfg, err := jwtmw.LoadConfig()
	if err != nil {
		return err
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	watchlistRepo := watchlistadapters.NewWatchlistRepository(db)
	symbolRepo := symbollistadapters.NewSymbolRepository(db)
	identity := watchlistadapters.NewIdentityResolver(userRepo)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(jwtCfg))
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo, identity, notifier)
	enrichUC := watchlistusecase.NewEnrichUsecase(watchlistRepo, identity, market, reporter, watchlistusecase.EnrichConfig{
		FetchTimeout:   marketCfg.FetchTimeout,
		MaxConcurrency: cfg.EnrichConcurrency,
	})
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo, watchlistUC)

	// Handler
	readiness := map[string]platformhandler.Checker{
		"db": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": nil,
	}
	if rdb != nil {
		readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Watchlist: watchlisthandler.NewWatchlistHandler(watchlistUC, enrichUC, reporter),
		Symbol:    symbollisthandler.NewSymbolHandler(symbolUC, reporter),
		Readiness: readiness,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("http server stopped")
	return nil
}
