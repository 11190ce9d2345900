package market

import (
	"context"
	"testing"
	"time"

	"marketsnap/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestPruner_SkipsWhileStoreUninitialized(t *testing.T) {
	s := NewStore(nil)
	p := NewPruner(s, 5*time.Minute, 5*time.Minute)

	removed := p.prune()
	require.Equal(t, 0, removed)
}

func TestPruner_RemovesOnlyStaleEntries(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	s := NewStore(func() time.Time { return clock })

	s.ReconcileMarkets([]domain.Market{tradingMarket("BTC-EUR")})
	s.ReconcileAssets([]domain.Asset{{Symbol: "BTC"}})

	// a fresh asset reconciliation three minutes later; the market keeps
	// its original stamp (enrichment never restamps)
	clock = base.Add(3 * time.Minute)
	s.MergeEnrichment("BTC-EUR", domain.Enrichment{Price: 1})
	s.ReconcileAssets([]domain.Asset{{Symbol: "ETH"}})

	p := NewPruner(s, 5*time.Minute, 5*time.Minute)
	p.now = func() time.Time { return base.Add(6 * time.Minute) }

	removed := p.prune()

	// market stamped at base is 6m old -> pruned; asset stamped at +3m survives
	require.Equal(t, 1, removed)
	_, ok := s.Market("BTC-EUR")
	require.False(t, ok)
	_, ok = s.Assets()["ETH"]
	require.True(t, ok)
}

func TestPruner_SurvivorsAreWithinTTL(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(func() time.Time { return base })
	s.ReconcileMarkets([]domain.Market{tradingMarket("BTC-EUR"), tradingMarket("ETH-EUR")})

	ttl := 5 * time.Minute
	p := NewPruner(s, ttl, 5*time.Minute)
	now := base.Add(4 * time.Minute)
	p.now = func() time.Time { return now }

	p.prune()

	for _, m := range s.Markets() {
		require.LessOrEqual(t, now.Sub(m.UpdatedAt), ttl)
	}
	require.Len(t, s.Markets(), 2)
}

func TestPruner_ExactlyTTLOldSurvives(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(func() time.Time { return base })
	s.ReconcileMarkets([]domain.Market{tradingMarket("BTC-EUR")})

	p := NewPruner(s, 5*time.Minute, 5*time.Minute)
	p.now = func() time.Time { return base.Add(5 * time.Minute) }

	removed := p.prune()
	require.Equal(t, 0, removed)
}

func TestPruner_ConcurrentReconcileKeepsRestampedEntry(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// A reconciliation racing the prune tick must never lose a freshly
	// re-stamped entry: staleness is re-checked under the store's write
	// lock at delete time, not just against the tick's snapshot.
	for i := 0; i < 200; i++ {
		clock := base
		s := NewStore(func() time.Time { return clock })
		s.ReconcileMarkets([]domain.Market{tradingMarket("BTC-EUR")})

		clock = base.Add(6 * time.Minute)
		p := NewPruner(s, 5*time.Minute, 5*time.Minute)
		p.now = func() time.Time { return base.Add(6 * time.Minute) }

		done := make(chan struct{})
		go func() {
			s.ReconcileMarkets([]domain.Market{tradingMarket("BTC-EUR")})
			close(done)
		}()
		p.prune()
		<-done

		_, ok := s.Market("BTC-EUR")
		require.True(t, ok, "re-stamped market lost to a concurrent prune")
	}
}

func TestNewPruner_DefaultsWhenInvalid(t *testing.T) {
	p := NewPruner(NewStore(nil), 0, 0)
	require.Equal(t, 5*time.Minute, p.ttl)
	require.Equal(t, 5*time.Minute, p.interval)
}

func TestPruner_StartAndShutdown_Idempotent(t *testing.T) {
	p := NewPruner(NewStore(nil), time.Minute, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, p.Start(ctx))
	require.NotNil(t, p.sched)

	require.NoError(t, p.Shutdown())
	require.Nil(t, p.sched)
	require.NoError(t, p.Shutdown())
}
