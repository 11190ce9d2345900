package market

import (
	"encoding/json"

	"marketsnap/internal/adapters"
	"marketsnap/internal/domain"
)

const (
	specsViewKey = "views:markets:specs"
	stateViewKey = "views:markets:state"
)

// Service is the read side the query handlers work against: snapshot reads
// plus a short-TTL cache of the two rendered whole-snapshot views.
type Service struct {
	store *Store
	cache adapters.ViewCache
}

func NewService(store *Store, cache adapters.ViewCache) *Service {
	return &Service{store: store, cache: cache}
}

func (s *Service) Market(pair string) (domain.Market, error) {
	m, ok := s.store.Market(pair)
	if !ok {
		return domain.Market{}, domain.ErrMarketNotFound
	}
	return m, nil
}

func (s *Service) Assets() map[string]domain.Asset {
	return s.store.Assets()
}

// ProjectedMarkets returns every market reduced to the requested fields.
// Fields a market does not carry yet (enrichment before the first pass)
// are simply absent from that market's projection.
func (s *Service) ProjectedMarkets(fields []string) map[string]map[string]any {
	markets := s.store.Markets()
	out := make(map[string]map[string]any, len(markets))
	for pair, m := range markets {
		all := marketFields(m)
		projected := make(map[string]any, len(fields))
		for _, f := range fields {
			if v, ok := all[f]; ok {
				projected[f] = v
			}
		}
		out[pair] = projected
	}
	return out
}

// MarketSpecs renders the base-metadata view of all markets, cached for
// the view TTL.
func (s *Service) MarketSpecs() ([]byte, error) {
	if body, ok := s.cache.Get(specsViewKey); ok {
		return body, nil
	}

	markets := s.store.Markets()
	views := make(map[string]SpecView, len(markets))
	for pair, m := range markets {
		views[pair] = specView(m)
	}
	body, err := json.Marshal(views)
	if err != nil {
		return nil, err
	}
	s.cache.Set(specsViewKey, body)
	return body, nil
}

// MarketState renders the derived-statistics view of all markets, cached
// for the view TTL.
func (s *Service) MarketState() ([]byte, error) {
	if body, ok := s.cache.Get(stateViewKey); ok {
		return body, nil
	}

	markets := s.store.Markets()
	views := make(map[string]StateView, len(markets))
	for pair, m := range markets {
		views[pair] = stateView(m)
	}
	body, err := json.Marshal(views)
	if err != nil {
		return nil, err
	}
	s.cache.Set(stateViewKey, body)
	return body, nil
}
