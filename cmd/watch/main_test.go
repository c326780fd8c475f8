package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

type stubEnricher struct {
	rows  []entity.EnrichedRow
	err   error
	calls atomic.Int32
}

func (s *stubEnricher) Enrich(ctx context.Context, email string) ([]entity.EnrichedRow, error) {
	s.calls.Add(1)
	return s.rows, s.err
}

func f(v float64) *float64 { return &v }

func TestRefresh_RendersTable(t *testing.T) {
	t.Parallel()

	enrich := &stubEnricher{rows: []entity.EnrichedRow{
		{Symbol: "AAPL", Company: "Apple Inc", Price: f(189.5), Change: f(1.23), ChangePercent: f(0.65), MarketCap: f(2950)},
		{Symbol: "MSFT", Company: "Microsoft Corp"},
	}}
	var buf bytes.Buffer

	refresh(context.Background(), &buf, enrich, "user@example.com", time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC))

	out := buf.String()
	assert.Contains(t, out, "Watchlist at 09:30:00")
	assert.Contains(t, out, "SYMBOL")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "$189.50")
	assert.Contains(t, lines[2], "+1.23 (+0.65%)")
	assert.Contains(t, lines[2], "$2.95T")
	assert.Equal(t, 4, strings.Count(lines[3], "N/A"), "every market column is N/A for MSFT")
}

func TestRefresh_EmptyAndError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	refresh(context.Background(), &buf, &stubEnricher{rows: []entity.EnrichedRow{}}, "user@example.com", time.Now())
	assert.Contains(t, buf.String(), "(empty)")

	buf.Reset()
	refresh(context.Background(), &buf, &stubEnricher{err: errors.New("user not found")}, "user@example.com", time.Now())
	assert.Empty(t, buf.String())
}

func TestPoll_ReinvokesEnrichUntilCancelled(t *testing.T) {
	t.Parallel()

	enrich := &stubEnricher{rows: []entity.EnrichedRow{}}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		poll(ctx, &bytes.Buffer{}, enrich, "user@example.com", 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return enrich.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poll did not stop after cancel")
	}
}
