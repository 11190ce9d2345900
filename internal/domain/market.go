package domain

import (
	"time"
)

// MarketStatus values reported by the provider. Only trading markets
// are kept in the snapshot.
const (
	StatusTrading = "trading"
	StatusHalted  = "halted"
	StatusAuction = "auction"
)

type Market struct {
	Pair                 string   `json:"market"`
	Status               string   `json:"status"`
	Base                 string   `json:"base"`
	Quote                string   `json:"quote"`
	PricePrecision       string   `json:"pricePrecision"`
	MinOrderInBaseAsset  string   `json:"minOrderInBaseAsset"`
	MinOrderInQuoteAsset string   `json:"minOrderInQuoteAsset"`
	MaxOrderInBaseAsset  string   `json:"maxOrderInBaseAsset"`
	MaxOrderInQuoteAsset string   `json:"maxOrderInQuoteAsset"`
	OrderTypes           []string `json:"orderTypes"`

	UpdatedAt time.Time `json:"updatedAt"`

	// Enrichment is nil until the first successful enrichment pass and is
	// left at its previous value when a later pass fails for this market.
	Enrichment *Enrichment `json:"enrichment,omitempty"`
}

// Enrichment holds derived statistics computed from a point-in-time
// order-book and candle read. Its staleness is bounded by the refresh
// interval, so it carries no timestamp of its own.
type Enrichment struct {
	BestBid  float64 `json:"bestBid"`
	BestAsk  float64 `json:"bestAsk"`
	Price    float64 `json:"price"`
	Spread   float64 `json:"spread"`
	BidDepth float64 `json:"bidDepth"`
	AskDepth float64 `json:"askDepth"`
	Volume   float64 `json:"volume"`
}
