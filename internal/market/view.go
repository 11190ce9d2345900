package market

import (
	"time"

	"marketsnap/internal/domain"
)

// SpecView is a market stripped to its base metadata, the shape served by
// the /markets/specs endpoint.
type SpecView struct {
	Status               string    `json:"status"`
	Base                 string    `json:"base"`
	Quote                string    `json:"quote"`
	PricePrecision       string    `json:"pricePrecision"`
	MinOrderInBaseAsset  string    `json:"minOrderInBaseAsset"`
	MinOrderInQuoteAsset string    `json:"minOrderInQuoteAsset"`
	MaxOrderInBaseAsset  string    `json:"maxOrderInBaseAsset"`
	MaxOrderInQuoteAsset string    `json:"maxOrderInQuoteAsset"`
	OrderTypes           []string  `json:"orderTypes"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// StateView is a market stripped to its derived statistics, the shape
// served by the /markets/state endpoint. Enrichment stays nil until the
// market's first successful enrichment pass.
type StateView struct {
	UpdatedAt  time.Time          `json:"updatedAt"`
	Enrichment *domain.Enrichment `json:"enrichment,omitempty"`
}

func specView(m domain.Market) SpecView {
	return SpecView{
		Status:               m.Status,
		Base:                 m.Base,
		Quote:                m.Quote,
		PricePrecision:       m.PricePrecision,
		MinOrderInBaseAsset:  m.MinOrderInBaseAsset,
		MinOrderInQuoteAsset: m.MinOrderInQuoteAsset,
		MaxOrderInBaseAsset:  m.MaxOrderInBaseAsset,
		MaxOrderInQuoteAsset: m.MaxOrderInQuoteAsset,
		OrderTypes:           m.OrderTypes,
		UpdatedAt:            m.UpdatedAt,
	}
}

func stateView(m domain.Market) StateView {
	return StateView{UpdatedAt: m.UpdatedAt, Enrichment: m.Enrichment}
}

// marketFields flattens a market into the name->value form the fields=
// projection picks from. Enrichment fields are present only once the
// market has been enriched.
func marketFields(m domain.Market) map[string]any {
	fields := map[string]any{
		"status":               m.Status,
		"base":                 m.Base,
		"quote":                m.Quote,
		"pricePrecision":       m.PricePrecision,
		"minOrderInBaseAsset":  m.MinOrderInBaseAsset,
		"minOrderInQuoteAsset": m.MinOrderInQuoteAsset,
		"maxOrderInBaseAsset":  m.MaxOrderInBaseAsset,
		"maxOrderInQuoteAsset": m.MaxOrderInQuoteAsset,
		"orderTypes":           m.OrderTypes,
		"updatedAt":            m.UpdatedAt,
	}
	if m.Enrichment != nil {
		fields["bestBid"] = m.Enrichment.BestBid
		fields["bestAsk"] = m.Enrichment.BestAsk
		fields["price"] = m.Enrichment.Price
		fields["spread"] = m.Enrichment.Spread
		fields["bidDepth"] = m.Enrichment.BidDepth
		fields["askDepth"] = m.Enrichment.AskDepth
		fields["volume"] = m.Enrichment.Volume
	}
	return fields
}
