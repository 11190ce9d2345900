package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"marketsnap/internal/adapters"
	"marketsnap/internal/domain"
)

// BitvavoClient reads the public market-data endpoints of the Bitvavo REST
// API. Every call is bounded by a timeout: the slow bulk listings get
// listTimeout, the hot per-market book/candle reads get fetchTimeout.
type BitvavoClient struct {
	http         *http.Client
	baseURL      string
	listTimeout  time.Duration
	fetchTimeout time.Duration
	observer     adapters.RateLimitObserver
}

func NewBitvavoClient(httpClient *http.Client, baseURL string, listTimeout, fetchTimeout time.Duration, observer adapters.RateLimitObserver) *BitvavoClient {
	return &BitvavoClient{
		http:         httpClient,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		listTimeout:  listTimeout,
		fetchTimeout: fetchTimeout,
		observer:     observer,
	}
}

type rawResponse struct {
	body   []byte
	header http.Header
}

// do issues one GET bounded by the given timeout and returns the body and
// headers undecoded. The deferred cancel releases the timer even when the
// response arrives early.
func (c *BitvavoClient) do(ctx context.Context, path string, timeout time.Duration) (*rawResponse, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %s", domain.ErrRequestTimeout, path, timeout)
		}
		return nil, fmt.Errorf("failed to execute request for %q: %w", path, err)
	}
	defer resp.Body.Close()

	// Observe the quota headers on every response, including errors: a 429
	// carries exactly the reading the tracker needs.
	if c.observer != nil {
		if obsErr := c.observer.Observe(resp.Header); obsErr != nil {
			logrus.Debugf("Rate limit reading not updated for %q: %v", path, obsErr)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrUpstream, path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %q: %w", path, err)
	}

	return &rawResponse{body: body, header: resp.Header}, nil
}

func (c *BitvavoClient) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	raw, err := c.do(ctx, "/v2/markets", c.listTimeout)
	if err != nil {
		return nil, err
	}
	var markets []domain.Market
	if err = json.Unmarshal(raw.body, &markets); err != nil {
		return nil, fmt.Errorf("failed to decode markets listing: %w", err)
	}
	return markets, nil
}

func (c *BitvavoClient) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	raw, err := c.do(ctx, "/v2/assets", c.listTimeout)
	if err != nil {
		return nil, err
	}
	var assets []domain.Asset
	if err = json.Unmarshal(raw.body, &assets); err != nil {
		return nil, fmt.Errorf("failed to decode assets listing: %w", err)
	}
	return assets, nil
}

func (c *BitvavoClient) GetOrderBook(ctx context.Context, pair string) (domain.OrderBook, error) {
	raw, err := c.do(ctx, "/v2/"+url.PathEscape(pair)+"/book", c.fetchTimeout)
	if err != nil {
		return domain.OrderBook{}, err
	}
	var book domain.OrderBook
	if err = json.Unmarshal(raw.body, &book); err != nil {
		return domain.OrderBook{}, fmt.Errorf("failed to decode order book for %q: %w", pair, err)
	}
	return book, nil
}

func (c *BitvavoClient) GetCandles(ctx context.Context, pair string, start time.Time) ([]domain.Candle, error) {
	path := "/v2/" + url.PathEscape(pair) + "/candles?interval=1m&start=" + strconv.FormatInt(start.UnixMilli(), 10)
	raw, err := c.do(ctx, path, c.fetchTimeout)
	if err != nil {
		return nil, err
	}
	var candles []domain.Candle
	if err = json.Unmarshal(raw.body, &candles); err != nil {
		return nil, fmt.Errorf("failed to decode candles for %q: %w", pair, err)
	}
	return candles, nil
}
