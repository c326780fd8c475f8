// Command watch prints a user's enriched watchlist and refreshes it on an interval.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"watchlist_backend/internal/app/di"
	authadapters "watchlist_backend/internal/feature/auth/adapters"
	"watchlist_backend/internal/feature/watchlist/adapters"
	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/transport/http/dto"
	"watchlist_backend/internal/feature/watchlist/usecase"
	infradb "watchlist_backend/internal/platform/db"
	"watchlist_backend/internal/platform/errtrack"
	"watchlist_backend/internal/platform/externalapi/finnhub"
	"watchlist_backend/internal/platform/logger"
	infraredis "watchlist_backend/internal/platform/redis"
)

// enricher is the part of the enrich usecase the poller needs.
type enricher interface {
	Enrich(ctx context.Context, email string) ([]entity.EnrichedRow, error)
}

func main() {
	_ = godotenv.Load()

	email := flag.String("email", "", "email of the user whose watchlist is shown")
	interval := flag.Duration("interval", 60*time.Second, "refresh interval")
	once := flag.Bool("once", false, "print once and exit")
	flag.Parse()

	logger.Setup(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: watch -email user@example.com [-interval 60s] [-once]")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	enrich, cleanup, err := build(ctx)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if *once {
		refresh(ctx, os.Stdout, enrich, *email, time.Now())
		return
	}
	poll(ctx, os.Stdout, enrich, *email, *interval)
}

// build wires the enrich usecase the same way the server does.
func build(ctx context.Context) (*usecase.EnrichUsecase, func(), error) {
	dbCfg, err := infradb.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := infradb.OpenDB(dbCfg)
	if err != nil {
		return nil, nil, err
	}

	var rdb *redisv9.Client
	if redisCfg, err := infraredis.LoadConfig(); err == nil {
		if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err == nil {
			rdb = tmp
		}
	}

	trackCfg, err := errtrack.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	reporter, err := errtrack.New(trackCfg)
	if err != nil {
		return nil, nil, err
	}

	marketCfg, err := finnhub.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	identity := adapters.NewIdentityResolver(authadapters.NewUserRepository(db))
	uc := usecase.NewEnrichUsecase(
		adapters.NewWatchlistRepository(db),
		identity,
		di.NewMarketDataClient(marketCfg, rdb),
		reporter,
		usecase.EnrichConfig{FetchTimeout: marketCfg.FetchTimeout},
	)

	cleanup := func() {
		reporter.Flush(2 * time.Second)
		if rdb != nil {
			_ = rdb.Close()
		}
	}
	return uc, cleanup, nil
}

// poll prints immediately and then once per interval until ctx is done.
func poll(ctx context.Context, w io.Writer, enrich enricher, email string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refresh(ctx, w, enrich, email, time.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			refresh(ctx, w, enrich, email, now)
		}
	}
}

// refresh runs one Enrich call and renders it. Errors are logged and the table is skipped.
func refresh(ctx context.Context, w io.Writer, enrich enricher, email string, now time.Time) {
	rows, err := enrich.Enrich(ctx, email)
	if err != nil {
		slog.Error("enrich failed", "email", email, "error", err)
		return
	}
	if err := render(w, dto.NewEnrichedItems(rows), now); err != nil {
		slog.Error("render failed", "error", err)
	}
}

func render(w io.Writer, items []dto.EnrichedItem, at time.Time) error {
	fmt.Fprintf(w, "Watchlist at %s\n", at.Format(time.TimeOnly))
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tCOMPANY\tPRICE\tCHANGE\tMARKET CAP\tP/E")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			it.Symbol, it.Company, it.PriceDisplay, it.ChangeDisplay, it.MarketCapDisplay, it.PERatioDisplay)
	}
	return tw.Flush()
}
