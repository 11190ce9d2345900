package market

import (
	"encoding/json"
	"testing"

	"marketsnap/internal/domain"

	"github.com/stretchr/testify/require"
)

// stubViewCache is an always-consistent in-memory cache for tests.
type stubViewCache struct {
	entries map[string][]byte
}

func newStubViewCache() *stubViewCache {
	return &stubViewCache{entries: make(map[string][]byte)}
}

func (c *stubViewCache) Get(key string) ([]byte, bool) {
	body, ok := c.entries[key]
	return body, ok
}

func (c *stubViewCache) Set(key string, body []byte) {
	c.entries[key] = body
}

func enrichedStore() *Store {
	s := NewStore(nil)
	s.ReconcileMarkets([]domain.Market{tradingMarket("BTC-EUR"), tradingMarket("ETH-EUR")})
	s.ReconcileAssets([]domain.Asset{{Symbol: "BTC", Name: "Bitcoin"}})
	s.MergeEnrichment("BTC-EUR", domain.Enrichment{BestBid: 100, BestAsk: 101, Price: 100.5, Spread: 1, Volume: 2})
	return s
}

func TestService_Market_Found(t *testing.T) {
	svc := NewService(enrichedStore(), newStubViewCache())

	m, err := svc.Market("BTC-EUR")
	require.NoError(t, err)
	require.Equal(t, "BTC-EUR", m.Pair)
}

func TestService_Market_NotFound(t *testing.T) {
	svc := NewService(enrichedStore(), newStubViewCache())

	_, err := svc.Market("XRP-EUR")
	require.ErrorIs(t, err, domain.ErrMarketNotFound)
}

func TestService_ProjectedMarkets_PicksRequestedFields(t *testing.T) {
	svc := NewService(enrichedStore(), newStubViewCache())

	out := svc.ProjectedMarkets([]string{"base", "price"})

	require.Len(t, out, 2)
	require.Equal(t, "BTC", out["BTC-EUR"]["base"])
	require.Equal(t, 100.5, out["BTC-EUR"]["price"])
	// ETH-EUR was never enriched, so price is absent rather than zero
	_, hasPrice := out["ETH-EUR"]["price"]
	require.False(t, hasPrice)
	require.Equal(t, "BTC", out["ETH-EUR"]["base"])
}

func TestService_MarketSpecs_StripsEnrichment(t *testing.T) {
	svc := NewService(enrichedStore(), newStubViewCache())

	body, err := svc.MarketSpecs()
	require.NoError(t, err)

	var views map[string]map[string]any
	require.NoError(t, json.Unmarshal(body, &views))
	require.Len(t, views, 2)
	_, hasPrice := views["BTC-EUR"]["price"]
	require.False(t, hasPrice)
	require.Equal(t, "BTC", views["BTC-EUR"]["base"])
}

func TestService_MarketState_StripsBaseMetadata(t *testing.T) {
	svc := NewService(enrichedStore(), newStubViewCache())

	body, err := svc.MarketState()
	require.NoError(t, err)

	var views map[string]map[string]any
	require.NoError(t, json.Unmarshal(body, &views))
	_, hasBase := views["BTC-EUR"]["base"]
	require.False(t, hasBase)
	require.NotNil(t, views["BTC-EUR"]["enrichment"])
	// never-enriched market appears with no enrichment at all
	_, hasEnrichment := views["ETH-EUR"]["enrichment"]
	require.False(t, hasEnrichment)
}

func TestService_MarketSpecs_ServedFromCacheOnRepeat(t *testing.T) {
	cache := newStubViewCache()
	store := enrichedStore()
	svc := NewService(store, cache)

	first, err := svc.MarketSpecs()
	require.NoError(t, err)

	// a store change within the view TTL is not reflected
	store.DeleteMarket("ETH-EUR")

	second, err := svc.MarketSpecs()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestService_Assets(t *testing.T) {
	svc := NewService(enrichedStore(), newStubViewCache())

	assets := svc.Assets()
	require.Len(t, assets, 1)
	require.Equal(t, "Bitcoin", assets["BTC"].Name)
}
