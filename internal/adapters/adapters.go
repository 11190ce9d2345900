package adapters

import (
	"context"
	"net/http"
	"time"

	"marketsnap/internal/domain"
)

type MarketDataClient interface {
	ListMarkets(ctx context.Context) ([]domain.Market, error)
	ListAssets(ctx context.Context) ([]domain.Asset, error)
	GetOrderBook(ctx context.Context, pair string) (domain.OrderBook, error)
	GetCandles(ctx context.Context, pair string, start time.Time) ([]domain.Candle, error)
}

// RateLimitObserver receives the headers of every provider response so the
// remaining-quota reading is tracked as a side effect of normal calls.
type RateLimitObserver interface {
	Observe(h http.Header) error
}

// ViewCache holds rendered query-layer responses for a short TTL.
type ViewCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, body []byte)
}
