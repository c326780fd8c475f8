package dto

import (
	"github.com/shopspring/decimal"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// NotAvailable is rendered for any missing value.
const NotAvailable = "N/A"

// trillion is the market cap (in billions) at which the display switches to T.
var trillion = decimal.NewFromInt(1000)

// EnrichedItem is one row of GET /watchlist/enriched.
// Raw numbers are null when the provider had no data; the *_display fields are always set.
type EnrichedItem struct {
	Symbol           string   `json:"symbol"`
	Company          string   `json:"company"`
	Price            *float64 `json:"price"`
	Change           *float64 `json:"change"`
	ChangePercent    *float64 `json:"change_percent"`
	MarketCap        *float64 `json:"market_cap"`
	PERatio          *float64 `json:"pe_ratio"`
	Trend            string   `json:"trend,omitempty"` // up|down
	PriceDisplay     string   `json:"price_display"`
	ChangeDisplay    string   `json:"change_display"`
	MarketCapDisplay string   `json:"market_cap_display"`
	PERatioDisplay   string   `json:"pe_ratio_display"`
}

// NewEnrichedItems converts enriched rows, preserving order.
func NewEnrichedItems(rows []entity.EnrichedRow) []EnrichedItem {
	out := make([]EnrichedItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, EnrichedItem{
			Symbol:           r.Symbol,
			Company:          r.Company,
			Price:            r.Price,
			Change:           r.Change,
			ChangePercent:    r.ChangePercent,
			MarketCap:        r.MarketCap,
			PERatio:          r.PERatio,
			Trend:            Trend(r.Change),
			PriceDisplay:     FormatPrice(r.Price),
			ChangeDisplay:    FormatChange(r.Change, r.ChangePercent),
			MarketCapDisplay: FormatMarketCap(r.MarketCap),
			PERatioDisplay:   FormatRatio(r.PERatio),
		})
	}
	return out
}

// FormatPrice renders "$123.45".
func FormatPrice(p *float64) string {
	if p == nil {
		return NotAvailable
	}
	return "$" + decimal.NewFromFloat(*p).StringFixed(2)
}

// FormatMarketCap renders a market cap given in billions: "$2.50T" from 1000 up, "$450.00B" below.
func FormatMarketCap(billions *float64) string {
	if billions == nil {
		return NotAvailable
	}
	d := decimal.NewFromFloat(*billions)
	if d.GreaterThanOrEqual(trillion) {
		return "$" + d.Div(trillion).StringFixed(2) + "T"
	}
	return "$" + d.StringFixed(2) + "B"
}

// FormatChange renders "+1.23 (+0.45%)". The sign of change decides the prefix of both parts.
func FormatChange(change, percent *float64) string {
	if change == nil || percent == nil {
		return NotAvailable
	}
	sign := ""
	if *change >= 0 {
		sign = "+"
	}
	c := decimal.NewFromFloat(*change).StringFixed(2)
	p := decimal.NewFromFloat(*percent).StringFixed(2)
	return sign + c + " (" + sign + p + "%)"
}

// FormatRatio renders a plain two-decimal ratio.
func FormatRatio(r *float64) string {
	if r == nil {
		return NotAvailable
	}
	return decimal.NewFromFloat(*r).StringFixed(2)
}

// Trend is "up" for change >= 0, "down" below zero and "" when unknown.
func Trend(change *float64) string {
	switch {
	case change == nil:
		return ""
	case *change >= 0:
		return "up"
	default:
		return "down"
	}
}
