package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

func f(v float64) *float64 { return &v }

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   *float64
		want string
	}{
		{nil, "N/A"},
		{f(123.456), "$123.46"},
		{f(0), "$0.00"},
		{f(1.005), "$1.01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.in))
	}
}

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"nil", nil, "N/A"},
		{"trillions", f(2500), "$2.50T"},
		{"exactly one trillion", f(1000), "$1.00T"},
		{"billions", f(450), "$450.00B"},
		{"just below a trillion", f(999.999), "$1000.00B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMarketCap(tt.in))
		})
	}
}

func TestFormatChange(t *testing.T) {
	tests := []struct {
		name    string
		change  *float64
		percent *float64
		want    string
	}{
		{"positive", f(1.23), f(0.45), "+1.23 (+0.45%)"},
		{"zero counts as positive", f(0), f(0), "+0.00 (+0.00%)"},
		{"negative uses native minus", f(-1.23), f(-0.45), "-1.23 (-0.45%)"},
		{"missing change", nil, f(0.45), "N/A"},
		{"missing percent", f(1.23), nil, "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatChange(tt.change, tt.percent))
		})
	}
}

func TestTrend(t *testing.T) {
	assert.Equal(t, "", Trend(nil))
	assert.Equal(t, "up", Trend(f(0)))
	assert.Equal(t, "down", Trend(f(-0.01)))
}

func TestNewEnrichedItems(t *testing.T) {
	rows := []entity.EnrichedRow{
		{Symbol: "AAPL", Company: "Apple Inc", Price: f(190.5), Change: f(-2), ChangePercent: f(-1.04), MarketCap: f(2950)},
		{Symbol: "ZZZZ", Company: "Unknown"},
	}

	items := NewEnrichedItems(rows)

	assert.Len(t, items, 2)
	assert.Equal(t, "AAPL", items[0].Symbol)
	assert.Equal(t, "$190.50", items[0].PriceDisplay)
	assert.Equal(t, "-2.00 (-1.04%)", items[0].ChangeDisplay)
	assert.Equal(t, "$2.95T", items[0].MarketCapDisplay)
	assert.Equal(t, "down", items[0].Trend)
	assert.Equal(t, "N/A", items[0].PERatioDisplay)

	assert.Equal(t, "N/A", items[1].PriceDisplay)
	assert.Equal(t, "N/A", items[1].ChangeDisplay)
	assert.Equal(t, "N/A", items[1].MarketCapDisplay)
	assert.Nil(t, items[1].Price)
}

func TestNewEntryItems(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []entity.Entry{
		{Symbol: "AAPL", Company: "Apple Inc", AddedAt: now.Add(-3 * time.Hour)},
	}

	items := NewEntryItems(entries, now)

	assert.Len(t, items, 1)
	assert.Equal(t, "3 hours ago", items[0].AddedAgo)
	assert.Equal(t, entries[0].AddedAt, items[0].AddedAt)
}
