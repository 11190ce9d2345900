package market

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"marketsnap/internal/domain"
)

// RemainingHeader is the provider header carrying the remaining request
// budget for the current rate-limit window.
const RemainingHeader = "bitvavo-ratelimit-remaining"

const defaultSafetyMargin = 10

// RateLimitTracker retains the most recent remaining-quota reading taken
// from provider response headers. Last write wins, no history.
type RateLimitTracker struct {
	mu        sync.Mutex
	remaining int
	known     bool
	margin    int
}

func NewRateLimitTracker(safetyMargin int) *RateLimitTracker {
	if safetyMargin <= 0 {
		safetyMargin = defaultSafetyMargin
	}
	return &RateLimitTracker{margin: safetyMargin}
}

// Observe extracts the remaining-quota header and overwrites the current
// reading. A missing or malformed header leaves prior state untouched and
// is reported as domain.ErrMissingRateLimitHeader, which callers treat as
// informational.
func (t *RateLimitTracker) Observe(h http.Header) error {
	raw := h.Get(RemainingHeader)
	if raw == "" {
		return fmt.Errorf("%w: %s not present", domain.ErrMissingRateLimitHeader, RemainingHeader)
	}
	remaining, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", domain.ErrMissingRateLimitHeader, RemainingHeader, raw)
	}

	t.mu.Lock()
	t.remaining = remaining
	t.known = true
	t.mu.Unlock()
	return nil
}

// Remaining returns the last observed reading, if any.
func (t *RateLimitTracker) Remaining() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining, t.known
}

// Sufficient reports whether a call of the given cost fits the remaining
// budget with the safety margin. When no reading has ever been taken it is
// optimistically true.
func (t *RateLimitTracker) Sufficient(cost int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.known {
		return true
	}
	return t.remaining >= cost+t.margin
}
