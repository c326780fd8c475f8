package dto

// ProfileResponse is the body of GET /stock/profile2.
// Unknown symbols return an empty object.
type ProfileResponse struct {
	Ticker               string   `json:"ticker"`
	Name                 string   `json:"name"`
	Exchange             string   `json:"exchange"`
	Currency             string   `json:"currency"`
	Country              string   `json:"country"`
	FinnhubIndustry      string   `json:"finnhubIndustry"`
	Logo                 string   `json:"logo"`
	WebURL               string   `json:"weburl"`
	IPO                  string   `json:"ipo"`
	MarketCapitalization *float64 `json:"marketCapitalization"`
	ShareOutstanding     *float64 `json:"shareOutstanding"`
}
