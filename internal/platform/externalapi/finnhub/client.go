package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/externalapi/finnhub/dto"
	"watchlist_backend/internal/platform/metrics"
	"watchlist_backend/internal/shared/ratelimiter"
)

// Endpoint labels used in logs and metrics.
const (
	EndpointQuote   = "quote"
	EndpointProfile = "profile"
)

// ErrRateLimited is returned when Finnhub answers 429.
var ErrRateLimited = errors.New("finnhub: rate limited")

// StatusError is returned for any other HTTP status >= 400.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("finnhub %s: http %d", e.Endpoint, e.Code)
}

// Client はFinnhub APIから相場データを取得するMarketDataClient実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// ClientがMarketDataClientを実装していることをコンパイル時に検証します。
var _ usecase.MarketDataClient = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。limiterはnilでも構いません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// Configured はAPIキーが設定されているかを返します。
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

// FetchQuote は現在値と前日比を取得します。結果はキャッシュしません。
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	var body dto.QuoteResponse
	if err := c.get(ctx, EndpointQuote, "/quote", symbol, &body); err != nil {
		return nil, err
	}
	return &entity.Quote{
		CurrentPrice:  body.Current,
		Change:        body.Change,
		ChangePercent: body.ChangePercent,
	}, nil
}

// FetchProfile は企業プロフィール（時価総額を含む）を取得します。
func (c *Client) FetchProfile(ctx context.Context, symbol string) (*entity.Profile, error) {
	var body dto.ProfileResponse
	if err := c.get(ctx, EndpointProfile, "/stock/profile2", symbol, &body); err != nil {
		return nil, err
	}
	return &entity.Profile{
		Ticker:               body.Ticker,
		Name:                 body.Name,
		Exchange:             body.Exchange,
		Currency:             body.Currency,
		Industry:             body.FinnhubIndustry,
		Logo:                 body.Logo,
		WebURL:               body.WebURL,
		MarketCapitalization: body.MarketCapitalization,
	}, nil
}

// get はレートリミットを通過したうえでGETリクエストを実行し、JSONをoutにデコードします。
func (c *Client) get(ctx context.Context, endpoint, path, symbol string, out any) (err error) {
	if !c.Configured() {
		return usecase.ErrMarketDataNotConfigured
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.ProviderRequests.WithLabelValues(endpoint, "rate_limited").Inc()
			return err
		}
	}

	start := time.Now()
	defer func() {
		metrics.ProviderLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.ProviderRequests.WithLabelValues(endpoint, status).Inc()
	}()

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", c.cfg.APIKey)
	u := fmt.Sprintf("%s%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		// url.Errorにはトークン付きURLが含まれるため、原因だけを返す
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return fmt.Errorf("finnhub %s: %w", endpoint, uerr.Err)
		}
		return err
	}
	defer func() {
		if cerr := res.Body.Close(); cerr != nil {
			slog.Warn("failed to close response body", "error", cerr)
		}
	}()

	if res.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if res.StatusCode >= 400 {
		return &StatusError{Endpoint: endpoint, Code: res.StatusCode}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("finnhub %s: decode: %w", endpoint, err)
	}
	return nil
}
