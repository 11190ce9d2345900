package market

import (
	"sync"
	"time"

	"marketsnap/internal/domain"
)

// Store is the in-process snapshot of markets and assets. It is created
// once at startup and handed by reference to the scheduler, the enrichment
// pass and the pruner; those are the only writers. Reads hand out copies.
type Store struct {
	mu          sync.RWMutex
	markets     map[string]domain.Market
	assets      map[string]domain.Asset
	initialized bool

	now func() time.Time
}

// NewStore builds an empty store. now may be nil, in which case time.Now
// is used; tests inject a fake clock.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		markets: make(map[string]domain.Market),
		assets:  make(map[string]domain.Asset),
		now:     now,
	}
}

// ReconcileMarkets replaces the market set with the given provider listing,
// keeping only markets in trading status and stamping each entry with the
// current time. Enrichment computed by earlier passes survives the replace:
// base metadata is refreshed wholesale, derived statistics are not dropped.
// Markets absent from the listing disappear.
func (s *Store) ReconcileMarkets(markets []domain.Market) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := s.now()
	next := make(map[string]domain.Market, len(markets))
	for _, m := range markets {
		if m.Status != domain.StatusTrading {
			continue
		}
		m.UpdatedAt = stamp
		if prev, ok := s.markets[m.Pair]; ok {
			m.Enrichment = prev.Enrichment
		}
		next[m.Pair] = m
	}
	s.markets = next
	s.initialized = true
}

// ReconcileAssets replaces the asset set wholesale, stamping each entry.
func (s *Store) ReconcileAssets(assets []domain.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := s.now()
	next := make(map[string]domain.Asset, len(assets))
	for _, a := range assets {
		a.UpdatedAt = stamp
		next[a.Symbol] = a
	}
	s.assets = next
}

// MergeEnrichment updates only the enrichment sub-record of an existing
// market. No-op when the market has been removed since the pass started.
func (s *Store) MergeEnrichment(pair string, e domain.Enrichment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.markets[pair]
	if !ok {
		return
	}
	m.Enrichment = &e
	s.markets[pair] = m
}

func (s *Store) DeleteMarket(pair string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markets, pair)
}

func (s *Store) DeleteAsset(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assets, symbol)
}

// DeleteMarketIfOlder removes the market only if its UpdatedAt is strictly
// before cutoff, re-checked under the write lock. A reconciliation landing
// after the caller's snapshot read re-stamps the entry and keeps it alive.
// Reports whether an entry was removed.
func (s *Store) DeleteMarketIfOlder(pair string, cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.markets[pair]
	if !ok || !m.UpdatedAt.Before(cutoff) {
		return false
	}
	delete(s.markets, pair)
	return true
}

// DeleteAssetIfOlder is the asset counterpart of DeleteMarketIfOlder.
func (s *Store) DeleteAssetIfOlder(symbol string, cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assets[symbol]
	if !ok || !a.UpdatedAt.Before(cutoff) {
		return false
	}
	delete(s.assets, symbol)
	return true
}

func (s *Store) Market(pair string) (domain.Market, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.markets[pair]
	return m, ok
}

// Markets returns a copy of the current market set.
func (s *Store) Markets() map[string]domain.Market {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.Market, len(s.markets))
	for k, v := range s.markets {
		out[k] = v
	}
	return out
}

// Assets returns a copy of the current asset set.
func (s *Store) Assets() map[string]domain.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.Asset, len(s.assets))
	for k, v := range s.assets {
		out[k] = v
	}
	return out
}

// MarketKeys returns the pair keys of all known markets.
func (s *Store) MarketKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.markets))
	for k := range s.markets {
		keys = append(keys, k)
	}
	return keys
}

// Initialized reports whether the first market reconciliation completed.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}
