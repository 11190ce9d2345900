package market

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"marketsnap/internal/adapters"
	"marketsnap/internal/domain"
)

const (
	defaultEnrichWorkers = 5
	defaultDepthFraction = 0.05
	defaultCandleWindow  = 6 * time.Minute
	defaultRequestCost   = 2 // book + candles
)

var errRateLimitLow = errors.New("remaining rate limit budget too low")

// EnrichConfig tunes one enrichment pass.
type EnrichConfig struct {
	Workers       int
	DepthFraction float64
	CandleWindow  time.Duration
	RequestCost   int
}

func (c EnrichConfig) withDefaults() EnrichConfig {
	if c.Workers <= 0 {
		c.Workers = defaultEnrichWorkers
	}
	if c.DepthFraction <= 0 {
		c.DepthFraction = defaultDepthFraction
	}
	if c.CandleWindow <= 0 {
		c.CandleWindow = defaultCandleWindow
	}
	if c.RequestCost <= 0 {
		c.RequestCost = defaultRequestCost
	}
	return c
}

type enrichResult struct {
	Pair string
	Enr  domain.Enrichment
}

// EnrichMarkets runs one enrichment pass over every market currently in the
// store. Each market is processed independently: a failed fetch or a bad
// book only skips that market, its previous enrichment stays in place.
// Returns the number of markets whose enrichment was merged.
func EnrichMarkets(ctx context.Context, execID string, client adapters.MarketDataClient, limits *RateLimitTracker, store *Store, cfg EnrichConfig) int {
	cfg = cfg.withDefaults()

	// STEP 1: snapshot the current key set. Markets added mid-pass are
	// picked up next pass, markets removed mid-pass make the merge a no-op.
	pairs := store.MarketKeys()
	if len(pairs) == 0 {
		logrus.Infof("No markets to enrich this time; execID: %s", execID)
		return 0
	}

	logrus.Infof("Enriching %d markets; execID: %s", len(pairs), execID)

	// STEP 2: fan out over a fixed worker pool. Workers drain the queue and
	// push successful results into the channel; failures are logged and
	// dropped at the task boundary.
	workQueue := make(chan string, len(pairs))
	for _, pair := range pairs {
		workQueue <- pair
	}
	close(workQueue)

	resultsCh := make(chan enrichResult, len(pairs))

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			runEnrichWorker(ctx, workerID, workQueue, client, limits, cfg, resultsCh)
		}(i)
	}

	// STEP 3: barrier. Merging starts only after every task reached a
	// terminal state.
	wg.Wait()
	close(resultsCh)

	// STEP 4: merge only the successful results, as targeted updates of the
	// enrichment sub-record.
	merged := 0
	for res := range resultsCh {
		store.MergeEnrichment(res.Pair, res.Enr)
		merged++
	}

	logrus.Infof("%d of %d markets enriched; execID: %s", merged, len(pairs), execID)
	return merged
}

func runEnrichWorker(ctx context.Context, workerID int, workQueue <-chan string, client adapters.MarketDataClient, limits *RateLimitTracker, cfg EnrichConfig, resultsCh chan<- enrichResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case pair, ok := <-workQueue:
			if !ok {
				return
			}
			enr, err := enrichOne(ctx, client, limits, pair, cfg)
			if err != nil {
				logrus.Warnf("Market '%s' wasn't enriched by worker %d: %s", pair, workerID, err)
				continue
			}
			resultsCh <- enrichResult{Pair: pair, Enr: enr}
		}
	}
}

// enrichOne computes one market's derived statistics from a momentary
// order-book read plus the recent candle window.
func enrichOne(ctx context.Context, client adapters.MarketDataClient, limits *RateLimitTracker, pair string, cfg EnrichConfig) (domain.Enrichment, error) {
	if !limits.Sufficient(cfg.RequestCost) {
		return domain.Enrichment{}, errRateLimitLow
	}

	book, err := client.GetOrderBook(ctx, pair)
	if err != nil {
		return domain.Enrichment{}, err
	}
	if len(book.Bids) == 0 || len(book.Asks) == 0 {
		return domain.Enrichment{}, domain.ErrEmptyBookSide
	}

	bestBid, err := ParseDecimal(book.Bids[0][0])
	if err != nil {
		return domain.Enrichment{}, err
	}
	bestAsk, err := ParseDecimal(book.Asks[0][0])
	if err != nil {
		return domain.Enrichment{}, err
	}

	bidNotional, err := bidDepth(book.Bids, cfg.DepthFraction)
	if err != nil {
		return domain.Enrichment{}, err
	}
	askNotional, err := askDepth(book.Asks, cfg.DepthFraction)
	if err != nil {
		return domain.Enrichment{}, err
	}

	candles, err := client.GetCandles(ctx, pair, time.Now().Add(-cfg.CandleWindow))
	if err != nil {
		return domain.Enrichment{}, err
	}
	var volume float64
	for _, c := range candles {
		v, parseErr := ParseDecimal(c.Volume)
		if parseErr != nil {
			return domain.Enrichment{}, parseErr
		}
		volume += v
	}

	return domain.Enrichment{
		BestBid:  bestBid,
		BestAsk:  bestAsk,
		Price:    (bestBid + bestAsk) / 2,
		Spread:   bestAsk - bestBid,
		BidDepth: bidNotional,
		AskDepth: askNotional,
		Volume:   volume,
	}, nil
}
