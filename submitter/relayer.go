package submitter

import (
	"context"
	"fmt"
	"time"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/models"
	log "github.com/sirupsen/logrus"
)

// Relayer carries an accepted transaction across chains and returns its hash.
type Relayer interface {
	Relay(ctx context.Context, tx models.Transaction) (string, error)
}

type RelayerFunc func(ctx context.Context, tx models.Transaction) (string, error)

func (f RelayerFunc) Relay(ctx context.Context, tx models.Transaction) (string, error) {
	return f(ctx, tx)
}

// FixtureRelayer settles after a simulated delay with a deterministic hash.
// Transfers touching a failing chain are rejected.
type FixtureRelayer struct {
	latency time.Duration
	failing map[string]bool
}

func NewFixtureRelayer(latency time.Duration, failingChains []string) *FixtureRelayer {
	failing := make(map[string]bool, len(failingChains))
	for _, chain := range failingChains {
		failing[chain] = true
	}
	return &FixtureRelayer{
		latency: latency,
		failing: failing,
	}
}

func (r *FixtureRelayer) Relay(ctx context.Context, tx models.Transaction) (string, error) {
	if r.latency > 0 {
		timer := time.NewTimer(r.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	for _, chain := range []string{tx.FromChain, tx.ToChain} {
		if r.failing[chain] {
			log.WithField("chain", chain).Debug("[SUBMITTER] Fixture relay rejected")
			return "", fmt.Errorf("relay rejected by %s", chain)
		}
	}

	return common.HashFields(
		tx.Id,
		tx.FromChain,
		tx.ToChain,
		tx.Token,
		tx.Amount,
		tx.Timestamp.UTC().Format(time.RFC3339Nano),
	), nil
}
