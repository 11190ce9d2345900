package market

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"marketsnap/internal/adapters"
	"marketsnap/internal/domain"
)

const (
	defaultRefreshInterval  = 10 * time.Second
	defaultBootstrapBackoff = 30 * time.Second
)

// Scheduler owns the refresh cycle: it bootstraps the store with a full
// markets+assets reconciliation (retrying on a fixed backoff until it
// succeeds) and then runs the steady-state pass on a fixed interval. Passes
// never overlap; a pass that fails entirely only logs.
type Scheduler struct {
	store  *Store
	client adapters.MarketDataClient
	limits *RateLimitTracker

	refreshInterval  time.Duration
	bootstrapBackoff time.Duration
	enrichCfg        EnrichConfig

	mu    sync.Mutex
	sched gocron.Scheduler
}

func NewScheduler(store *Store, client adapters.MarketDataClient, limits *RateLimitTracker, refreshInterval, bootstrapBackoff time.Duration, enrichCfg EnrichConfig) *Scheduler {
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}
	if bootstrapBackoff <= 0 {
		bootstrapBackoff = defaultBootstrapBackoff
	}
	return &Scheduler{
		store:            store,
		client:           client,
		limits:           limits,
		refreshInterval:  refreshInterval,
		bootstrapBackoff: bootstrapBackoff,
		enrichCfg:        enrichCfg,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	job := func(jobCtx context.Context) {
		s.runPass(jobCtx)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.refreshInterval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Bootstrap retries on its own fixed backoff until the first full
	// reconciliation lands; steady-state passes are gated until then.
	go s.bootstrap(ctx)

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func (s *Scheduler) bootstrap(ctx context.Context) {
	for {
		err := s.reconcile(ctx)
		if err == nil {
			logrus.Info("✅ Snapshot bootstrap complete")
			// Enrich right away rather than waiting out the first tick.
			EnrichMarkets(ctx, uuid.NewString(), s.client, s.limits, s.store, s.enrichCfg)
			return
		}
		logrus.WithError(err).Errorf("Bootstrap reconciliation failed, retrying in %s", s.bootstrapBackoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.bootstrapBackoff):
		}
	}
}

// reconcile pulls the full markets and assets listings concurrently and
// replaces the store's entries. Either listing failing fails the whole
// reconciliation.
func (s *Scheduler) reconcile(ctx context.Context) error {
	var (
		wg      sync.WaitGroup
		markets []domain.Market
		assets  []domain.Asset
		mErr    error
		aErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		markets, mErr = s.client.ListMarkets(ctx)
	}()
	go func() {
		defer wg.Done()
		assets, aErr = s.client.ListAssets(ctx)
	}()
	wg.Wait()

	if mErr != nil {
		return fmt.Errorf("failed to list markets: %w", mErr)
	}
	if aErr != nil {
		return fmt.Errorf("failed to list assets: %w", aErr)
	}

	s.store.ReconcileAssets(assets)
	s.store.ReconcileMarkets(markets)
	return nil
}

// runPass is one steady-state iteration: refresh the base records, then
// enrich every market. Once bootstrapped, a failed reconciliation is not
// fatal; the pass continues against the current snapshot and the entries
// age toward the pruner's TTL.
func (s *Scheduler) runPass(ctx context.Context) {
	if !s.store.Initialized() {
		return
	}

	execID := uuid.NewString()
	if err := s.reconcile(ctx); err != nil {
		logrus.Warnf("Reconciliation failed, continuing with current snapshot: %v; execID: %s", err, execID)
	}
	EnrichMarkets(ctx, execID, s.client, s.limits, s.store, s.enrichCfg)
}
