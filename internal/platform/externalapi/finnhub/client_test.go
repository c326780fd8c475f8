package finnhub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"watchlist_backend/internal/feature/watchlist/usecase"
)

type stubLimiter struct {
	err   error
	calls int
}

func (s *stubLimiter) Wait(ctx context.Context) error {
	s.calls++
	return s.err
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *stubLimiter) {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	lim := &stubLimiter{}
	return NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client(), lim), lim
}

func TestClient_Configured(t *testing.T) {
	t.Parallel()

	if NewClient(Config{}, http.DefaultClient, nil).Configured() {
		t.Error("expected client without API key to be unconfigured")
	}
	if NewClient(Config{APIKey: "   "}, http.DefaultClient, nil).Configured() {
		t.Error("expected blank API key to be unconfigured")
	}
	if !NewClient(Config{APIKey: "k"}, http.DefaultClient, nil).Configured() {
		t.Error("expected client with API key to be configured")
	}
}

func TestClient_FetchQuote_Success(t *testing.T) {
	t.Parallel()

	c, lim := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote" {
			t.Errorf("expected path /quote, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") != "BRK.B" {
			t.Errorf("expected symbol BRK.B, got %s", r.URL.Query().Get("symbol"))
		}
		if r.URL.Query().Get("token") != "test-key" {
			t.Errorf("expected token test-key, got %s", r.URL.Query().Get("token"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"c":412.5,"d":-3.25,"dp":-0.78,"h":415,"l":410,"o":414,"pc":415.75,"t":1700000000}`))
	})

	q, err := c.FetchQuote(context.Background(), "BRK.B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.CurrentPrice == nil || *q.CurrentPrice != 412.5 {
		t.Errorf("expected price 412.5, got %v", q.CurrentPrice)
	}
	if q.Change == nil || *q.Change != -3.25 {
		t.Errorf("expected change -3.25, got %v", q.Change)
	}
	if q.ChangePercent == nil || *q.ChangePercent != -0.78 {
		t.Errorf("expected change percent -0.78, got %v", q.ChangePercent)
	}
	if lim.calls != 1 {
		t.Errorf("expected limiter to be consulted once, got %d", lim.calls)
	}
}

func TestClient_FetchQuote_NullFields(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"c":0,"d":null,"dp":null}`))
	})

	q, err := c.FetchQuote(context.Background(), "ZZZZ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.CurrentPrice == nil || *q.CurrentPrice != 0 {
		t.Errorf("expected price 0, got %v", q.CurrentPrice)
	}
	if q.Change != nil || q.ChangePercent != nil {
		t.Errorf("expected nil change fields, got %v %v", q.Change, q.ChangePercent)
	}
}

func TestClient_FetchProfile_Success(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock/profile2" {
			t.Errorf("expected path /stock/profile2, got %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"ticker":"AAPL","name":"Apple Inc","exchange":"NASDAQ","currency":"USD","finnhubIndustry":"Technology","logo":"https://x/logo.png","weburl":"https://apple.com","marketCapitalization":2950.4}`))
	})

	p, err := c.FetchProfile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Apple Inc" || p.Industry != "Technology" || p.Exchange != "NASDAQ" {
		t.Errorf("unexpected profile: %+v", p)
	}
	if p.MarketCapitalization == nil || *p.MarketCapitalization != 2950.4 {
		t.Errorf("expected market cap 2950.4, got %v", p.MarketCapitalization)
	}
}

func TestClient_FetchProfile_UnknownSymbol(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	p, err := c.FetchProfile(context.Background(), "ZZZZ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.MarketCapitalization != nil {
		t.Errorf("expected nil market cap, got %v", *p.MarketCapitalization)
	}
}

func TestClient_HTTPErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrRateLimited) {
					t.Errorf("expected ErrRateLimited, got %v", err)
				}
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var se *StatusError
				if !errors.As(err, &se) || se.Code != 500 || se.Endpoint != EndpointQuote {
					t.Errorf("expected StatusError 500, got %v", err)
				}
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var se *StatusError
				if !errors.As(err, &se) || se.Code != 403 {
					t.Errorf("expected StatusError 403, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := c.FetchQuote(context.Background(), "AAPL")
			tt.check(t, err)
		})
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	if _, err := c.FetchQuote(context.Background(), "AAPL"); err == nil {
		t.Error("expected decode error")
	}
}

func TestClient_NotConfiguredMakesNoRequest(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer server.Close()
	c := NewClient(Config{BaseURL: server.URL}, server.Client(), nil)

	_, err := c.FetchQuote(context.Background(), "AAPL")

	if !errors.Is(err, usecase.ErrMarketDataNotConfigured) {
		t.Errorf("expected ErrMarketDataNotConfigured, got %v", err)
	}
	if called {
		t.Error("expected no request to be made")
	}
}

func TestClient_LimiterErrorStopsRequest(t *testing.T) {
	t.Parallel()

	called := false
	c, lim := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	lim.err = context.DeadlineExceeded

	_, err := c.FetchProfile(context.Background(), "AAPL")

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error, got %v", err)
	}
	if called {
		t.Error("expected no request to be made")
	}
}

func TestClient_ContextTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchQuote(ctx, "AAPL")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if strings.Contains(err.Error(), "test-key") {
		t.Errorf("error leaks API token: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "abc")
	t.Setenv("FINNHUB_FETCH_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "abc" {
		t.Errorf("expected API key abc, got %q", cfg.APIKey)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}
	if cfg.FetchTimeout != 3*time.Second || cfg.RateLimit != 60 || cfg.ProfileTTL != time.Hour {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
