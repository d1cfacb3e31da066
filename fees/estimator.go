package fees

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/intent"
	"github.com/dan13ram/omnichain-portal/models"
	log "github.com/sirupsen/logrus"
)

// ErrSuperseded is returned to the caller of an estimate that was overtaken by
// a newer request or an invalidation. Its result was discarded.
var ErrSuperseded = errors.New("estimate superseded")

// Estimator keeps the quote for the most recent estimate request only.
type Estimator struct {
	mu       sync.Mutex
	source   QuoteSource
	ttl      time.Duration
	now      func() time.Time
	sequence uint64
	current  *models.FeeQuote
	cancel   context.CancelFunc
}

// NewEstimator creates an estimator. A zero ttl means quotes never expire.
func NewEstimator(source QuoteSource, ttl time.Duration) *Estimator {
	return &Estimator{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Estimate requests a quote for a ready intent. Any estimate already in flight
// is cancelled and the current quote is cleared until this one resolves.
func (e *Estimator) Estimate(ctx context.Context, bridge models.BridgeIntent) (models.FeeQuote, error) {
	if err := intent.Check(bridge); err != nil {
		return models.FeeQuote{}, err
	}

	e.mu.Lock()
	e.sequence++
	sequence := e.sequence
	if e.cancel != nil {
		e.cancel()
	}
	e.current = nil
	reqCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.mu.Unlock()
	defer cancel()

	logger := log.WithFields(log.Fields{
		"source":      bridge.SourceID(),
		"destination": bridge.DestinationID(),
		"sequence":    sequence,
	})
	logger.Debug("[FEES] Estimating")

	fee, err := e.source.Quote(reqCtx, bridge.SourceID(), bridge.DestinationID())

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sequence != sequence {
		logger.Debug("[FEES] Discarding superseded estimate")
		return models.FeeQuote{}, ErrSuperseded
	}
	e.cancel = nil

	if err != nil {
		logger.WithError(err).Warn("[FEES] Estimate failed")
		if common.KindOf(err) == common.KindEstimationUnavailable {
			return models.FeeQuote{}, err
		}
		return models.FeeQuote{}, common.NewError(common.KindEstimationUnavailable, "source", bridge.SourceID(), err)
	}

	now := e.now()
	quote := models.FeeQuote{
		SourceChain:      bridge.SourceID(),
		DestinationChain: bridge.DestinationID(),
		Fee:              fee,
		QuotedAt:         now,
		IntentVersion:    bridge.Version,
		Sequence:         sequence,
	}
	if e.ttl > 0 {
		quote.ExpiresAt = now.Add(e.ttl)
	}
	e.current = &quote

	logger.WithField("fee", fee).Debug("[FEES] Estimate ready")
	return quote, nil
}

func (e *Estimator) Current() (models.FeeQuote, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return models.FeeQuote{}, false
	}
	return *e.current, true
}

// Valid reports whether the current quote was made for this intent snapshot
// and has not expired.
func (e *Estimator) Valid(bridge models.BridgeIntent, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current != nil && e.current.Matches(bridge) && !e.current.Expired(now)
}

// Invalidate clears the quote and discards any estimate still in flight.
func (e *Estimator) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sequence++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.current = nil
}

// Discard drops quote if it is still the current one. A newer estimate that
// has since replaced it or is in flight is left alone.
func (e *Estimator) Discard(quote models.FeeQuote) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil && e.current.Sequence == quote.Sequence {
		e.current = nil
	}
}

func (e *Estimator) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancel != nil
}
