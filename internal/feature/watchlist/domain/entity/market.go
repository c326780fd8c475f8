package entity

// Quote is a point-in-time price snapshot for a symbol.
// Fields the provider omits are nil.
type Quote struct {
	CurrentPrice  *float64
	Change        *float64
	ChangePercent *float64
}

// Profile holds company profile data that changes rarely.
type Profile struct {
	Ticker               string
	Name                 string
	Exchange             string
	Currency             string
	Industry             string
	Logo                 string
	WebURL               string
	MarketCapitalization *float64 // In billions of currency units
}
