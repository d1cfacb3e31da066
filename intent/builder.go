package intent

import (
	"errors"
	"sync"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/models"
	log "github.com/sirupsen/logrus"
)

// Builder holds the working bridge intent. Rejected mutations leave it unchanged;
// accepted ones bump the version.
type Builder struct {
	mu     sync.Mutex
	intent models.BridgeIntent
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) SetSourceChain(chain models.Chain) models.BridgeIntent {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.intent.Source = &chain
	b.clearForeignToken()
	b.bump()

	log.WithField("source", chain.ID).Debug("[INTENT] Source chain set")
	return b.snapshot()
}

func (b *Builder) SetDestinationChain(chain models.Chain) models.BridgeIntent {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.intent.Destination = &chain
	b.clearForeignToken()
	b.bump()

	log.WithField("destination", chain.ID).Debug("[INTENT] Destination chain set")
	return b.snapshot()
}

// Swap exchanges source and destination and clears the token.
func (b *Builder) Swap() (models.BridgeIntent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.intent.Source == nil {
		return b.snapshot(), common.NewError(common.KindIncompleteIntent, "source", "", errors.New("source chain not selected"))
	}
	if b.intent.Destination == nil {
		return b.snapshot(), common.NewError(common.KindIncompleteIntent, "destination", "", errors.New("destination chain not selected"))
	}

	b.intent.Source, b.intent.Destination = b.intent.Destination, b.intent.Source
	b.intent.Token = nil
	b.bump()

	log.WithFields(log.Fields{
		"source":      b.intent.Source.ID,
		"destination": b.intent.Destination.ID,
	}).Debug("[INTENT] Chains swapped")
	return b.snapshot(), nil
}

func (b *Builder) SetToken(token models.Token) (models.BridgeIntent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.intent.Source == nil || token.Chain != b.intent.Source.ID {
		return b.snapshot(), common.NewError(common.KindChainMismatch, "token", token.Symbol+"@"+token.Chain, errors.New("token does not belong to the source chain"))
	}

	b.intent.Token = &token
	b.bump()

	log.WithField("token", token.Symbol).Debug("[INTENT] Token set")
	return b.snapshot(), nil
}

func (b *Builder) SetAmount(raw string) (models.BridgeIntent, error) {
	if _, err := ParseAmount(raw); err != nil {
		return b.Snapshot(), err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.intent.Amount = raw
	b.bump()

	log.WithField("amount", raw).Debug("[INTENT] Amount set")
	return b.snapshot(), nil
}

func (b *Builder) ClearAmount() models.BridgeIntent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.intent.Amount != "" {
		b.intent.Amount = ""
		b.bump()
	}
	return b.snapshot()
}

// Validate returns nil when the intent is ready to quote and submit.
func (b *Builder) Validate() error {
	return Check(b.Snapshot())
}

func (b *Builder) Ready() bool {
	return b.Validate() == nil
}

// Reset discards the working intent. The version keeps increasing so quotes
// for the old intent never match the new one.
func (b *Builder) Reset() models.BridgeIntent {
	b.mu.Lock()
	defer b.mu.Unlock()

	version := b.intent.Version
	b.intent = models.BridgeIntent{Version: version}
	b.bump()

	log.Debug("[INTENT] Reset")
	return b.snapshot()
}

func (b *Builder) Snapshot() models.BridgeIntent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}

func (b *Builder) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.intent.Version
}

func (b *Builder) clearForeignToken() {
	if b.intent.Token == nil {
		return
	}
	if b.intent.Source == nil || b.intent.Token.Chain != b.intent.Source.ID {
		b.intent.Token = nil
	}
}

func (b *Builder) bump() {
	b.intent.Version++
}

// snapshot copies the pointed-to values so callers cannot mutate builder state.
func (b *Builder) snapshot() models.BridgeIntent {
	out := b.intent
	if b.intent.Source != nil {
		source := *b.intent.Source
		out.Source = &source
	}
	if b.intent.Destination != nil {
		destination := *b.intent.Destination
		out.Destination = &destination
	}
	if b.intent.Token != nil {
		token := *b.intent.Token
		out.Token = &token
	}
	return out
}
