package fees

import (
	"context"
	"errors"
	"time"

	"github.com/dan13ram/omnichain-portal/common"
	log "github.com/sirupsen/logrus"
)

// QuoteSource prices a bridge between two chains.
type QuoteSource interface {
	Quote(ctx context.Context, source string, destination string) (string, error)
}

type QuoteSourceFunc func(ctx context.Context, source string, destination string) (string, error)

func (f QuoteSourceFunc) Quote(ctx context.Context, source string, destination string) (string, error) {
	return f(ctx, source, destination)
}

// GasTable looks up the gas estimate for bridges leaving a chain.
type GasTable interface {
	GasEstimate(chainID string) (string, bool)
}

// FixtureSource quotes from a static gas table after a simulated network delay.
// The fee depends only on the source chain.
type FixtureSource struct {
	table   GasTable
	latency time.Duration
}

func NewFixtureSource(table GasTable, latency time.Duration) *FixtureSource {
	return &FixtureSource{
		table:   table,
		latency: latency,
	}
}

func (s *FixtureSource) Quote(ctx context.Context, source string, destination string) (string, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	fee, ok := s.table.GasEstimate(source)
	if !ok {
		log.WithField("source", source).Debug("[FEES] No gas estimate for chain")
		return "", common.NewError(common.KindEstimationUnavailable, "source", source, errors.New("no gas estimate for chain"))
	}
	return fee, nil
}
