package market

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultStaleTTL      = 5 * time.Minute
	defaultPruneInterval = 5 * time.Minute
)

// Pruner evicts snapshot entries whose last reconciliation is older than
// the TTL. It runs on its own timer, independent of the refresh scheduler,
// and stays idle until the store's first reconciliation has landed.
type Pruner struct {
	store    *Store
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time

	mu    sync.Mutex
	sched gocron.Scheduler
}

func NewPruner(store *Store, ttl, interval time.Duration) *Pruner {
	if ttl <= 0 {
		ttl = defaultStaleTTL
	}
	if interval <= 0 {
		interval = defaultPruneInterval
	}
	return &Pruner{store: store, ttl: ttl, interval: interval, now: time.Now}
}

func (p *Pruner) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.sched = scheduler
	p.mu.Unlock()

	_, err = scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(func() { p.prune() }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		if sdErr := p.Shutdown(); sdErr != nil {
			logrus.Errorf("Pruner shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (p *Pruner) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sched == nil {
		return nil
	}
	err := p.sched.Shutdown()
	p.sched = nil
	return err
}

// prune removes every market and asset older than the TTL. Returns the
// number of removed entries.
func (p *Pruner) prune() int {
	if !p.store.Initialized() {
		logrus.Error("Snapshot store not initialized yet, skipping prune")
		return 0
	}

	now := p.now()
	cutoff := now.Add(-p.ttl)
	removed := 0

	// Staleness is re-checked under the store's write lock: a reconciliation
	// that re-stamps an entry between the snapshot read and the delete wins.
	for pair, m := range p.store.Markets() {
		if now.Sub(m.UpdatedAt) > p.ttl && p.store.DeleteMarketIfOlder(pair, cutoff) {
			logrus.Infof("Pruning stale market %s (age %s)", pair, now.Sub(m.UpdatedAt))
			removed++
		}
	}
	for symbol, a := range p.store.Assets() {
		if now.Sub(a.UpdatedAt) > p.ttl && p.store.DeleteAssetIfOlder(symbol, cutoff) {
			logrus.Infof("Pruning stale asset %s (age %s)", symbol, now.Sub(a.UpdatedAt))
			removed++
		}
	}
	return removed
}
