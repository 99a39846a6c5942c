package models

// StockSymbol is one row of the offline-generated symbol master list, used
// for client-side search and autocomplete only.
type StockSymbol struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
}
