package entity

// WineRecord is one line-item extracted from a menu page. Extraction is
// best-effort: any field may be empty, and ID is whatever the menu printed
// next to the entry (not guaranteed unique).
type WineRecord struct {
	ID       string `json:"id"`
	Producer string `json:"producer"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	MainType string `json:"main_type"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Vintage  string `json:"vintage"`
	Price    string `json:"price"`
	Size     string `json:"size"`
}

// MarketMatch is the best-effort public market data for one WineRecord.
// String fields hold either a value or the "N/A" marker; FoodPairings may be
// empty when the detail page lists none.
type MarketMatch struct {
	MatchedName    string   `json:"matched_name"`
	DetailLink     string   `json:"detail_link"`
	MatchedCountry string   `json:"matched_country"`
	MatchedRegion  string   `json:"matched_region"`
	Rating         string   `json:"rating"`
	NumRatings     string   `json:"num_ratings"`
	MarketPrice    string   `json:"market_price"`
	PriceRatio     string   `json:"price_ratio"`
	FoodPairings   []string `json:"food_pairings"`
}

// EnrichedRecord pairs a WineRecord with its MarketMatch, 1:1 by position.
// The record's Price field is surfaced as menu_price at export time.
type EnrichedRecord struct {
	WineRecord
	Match MarketMatch
}
