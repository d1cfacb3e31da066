package portal

import (
	"context"
	"errors"
	"iter"
	"sync"
	"time"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/fees"
	"github.com/dan13ram/omnichain-portal/intent"
	"github.com/dan13ram/omnichain-portal/ledger"
	"github.com/dan13ram/omnichain-portal/models"
	"github.com/dan13ram/omnichain-portal/registry"
	"github.com/dan13ram/omnichain-portal/submitter"
	"github.com/dan13ram/omnichain-portal/wallet"
	log "github.com/sirupsen/logrus"
)

// Components are the collaborators a session drives. Submitter must record
// into Ledger.
type Components struct {
	Registry  *registry.Registry
	Wallet    *wallet.Session
	Builder   *intent.Builder
	Estimator *fees.Estimator
	Submitter *submitter.Submitter
	Ledger    *ledger.Ledger
}

// Snapshot is the read model handed to the presentation layer.
type Snapshot struct {
	Wallet       models.WalletSession `json:"wallet"`
	Intent       models.BridgeIntent  `json:"intent"`
	Quote        *models.FeeQuote     `json:"quote,omitempty"`
	QuotePending bool                 `json:"quote_pending"`
	Submitting   bool                 `json:"submitting"`
	Ready        bool                 `json:"ready"`
	Problem      string               `json:"problem,omitempty"`
}

// Session is one user's bridge session. All state lives here; there are no
// package-level singletons.
type Session struct {
	Components

	autoQuote bool
	notifier  *notifier
	now       func() time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	quoteWg sync.WaitGroup
}

func NewSession(components Components, config models.PortalConfig) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		Components: components,
		autoQuote:  config.AutoQuote,
		notifier:   newNotifier(config.EventBuffer),
		now:        time.Now,
		ctx:        ctx,
		cancel:     cancel,
	}
	s.Submitter.OnAccepted(s.onAccepted)
	s.Submitter.OnSettled(s.onSettled)
	return s
}

func (s *Session) Subscribe() (<-chan models.Event, func()) {
	return s.notifier.subscribe()
}

func (s *Session) Connect(ctx context.Context, provider models.ProviderType) (models.WalletSession, error) {
	state, err := s.Wallet.Connect(ctx, provider)
	if err != nil {
		s.publishError(models.EventWalletConnectFailed, "", "", err)
		return state, err
	}

	if chain, ok := s.Registry.DefaultChainFor(provider); ok {
		s.Builder.SetSourceChain(chain)
		s.afterMutation()
	}

	s.publish(models.Event{
		Kind:    models.EventWalletConnected,
		Message: state.Address,
	})
	return state, nil
}

// Disconnect resets the wallet and drops the intent and quote. A submission
// already in flight keeps running.
func (s *Session) Disconnect() models.WalletSession {
	state := s.Wallet.Disconnect()
	s.Builder.Reset()
	s.Estimator.Invalidate()

	s.publish(models.Event{Kind: models.EventWalletDisconnected})
	return state
}

func (s *Session) SelectSourceChain(id string) (models.BridgeIntent, error) {
	chain, err := s.chain("source", id)
	if err != nil {
		return s.Builder.Snapshot(), err
	}
	bridge := s.Builder.SetSourceChain(chain)
	s.afterMutation()
	return bridge, nil
}

func (s *Session) SelectDestinationChain(id string) (models.BridgeIntent, error) {
	chain, err := s.chain("destination", id)
	if err != nil {
		return s.Builder.Snapshot(), err
	}
	bridge := s.Builder.SetDestinationChain(chain)
	s.afterMutation()
	return bridge, nil
}

func (s *Session) SwapChains() (models.BridgeIntent, error) {
	if err := s.requireConnected(); err != nil {
		return s.Builder.Snapshot(), err
	}
	bridge, err := s.Builder.Swap()
	if err != nil {
		return bridge, err
	}
	s.afterMutation()
	return bridge, nil
}

// SelectToken picks a token by symbol on chainID, or on the source chain when
// chainID is empty.
func (s *Session) SelectToken(symbol string, chainID string) (models.BridgeIntent, error) {
	if err := s.requireConnected(); err != nil {
		return s.Builder.Snapshot(), err
	}
	if chainID == "" {
		chainID = s.Builder.Snapshot().SourceID()
	}
	token, ok := s.Registry.Token(symbol, chainID)
	if !ok {
		return s.Builder.Snapshot(), common.NewError(common.KindNotFound, "token", symbol+"@"+chainID, errors.New("unknown token"))
	}
	bridge, err := s.Builder.SetToken(token)
	if err != nil {
		return bridge, err
	}
	s.afterMutation()
	return bridge, nil
}

func (s *Session) SetAmount(raw string) (models.BridgeIntent, error) {
	if err := s.requireConnected(); err != nil {
		return s.Builder.Snapshot(), err
	}
	bridge, err := s.Builder.SetAmount(raw)
	if err != nil {
		return bridge, err
	}
	s.afterMutation()
	return bridge, nil
}

func (s *Session) ClearAmount() models.BridgeIntent {
	bridge := s.Builder.ClearAmount()
	s.Estimator.Invalidate()
	return bridge
}

// RefreshQuote estimates the fee for the current intent. fees.ErrSuperseded
// means a newer request or an intent change overtook this one.
func (s *Session) RefreshQuote(ctx context.Context) (models.FeeQuote, error) {
	if err := s.requireConnected(); err != nil {
		return models.FeeQuote{}, err
	}
	bridge := s.Builder.Snapshot()

	quote, err := s.Estimator.Estimate(ctx, bridge)
	if errors.Is(err, fees.ErrSuperseded) {
		return quote, err
	}
	if err != nil {
		s.publishError(models.EventQuoteFailed, summarize(bridge), "", err)
		return quote, err
	}
	if quote.IntentVersion != s.Builder.Version() {
		log.WithField("version", quote.IntentVersion).Debug("[PORTAL] Discarding quote for an edited intent")
		s.Estimator.Discard(quote)
		return models.FeeQuote{}, fees.ErrSuperseded
	}

	s.publish(models.Event{
		Kind:    models.EventQuoteUpdated,
		Intent:  bridge.Summary(),
		Message: quote.Fee,
	})
	return quote, nil
}

// Submit sends the current intent with the current quote.
func (s *Session) Submit(ctx context.Context) (*submitter.Submission, error) {
	bridge := s.Builder.Snapshot()
	if err := s.requireConnected(); err != nil {
		s.publishError(models.EventSubmissionRejected, summarize(bridge), "", err)
		return nil, err
	}

	var quote *models.FeeQuote
	if current, ok := s.Estimator.Current(); ok {
		quote = &current
	}

	sub, err := s.Submitter.Submit(ctx, bridge, quote)
	if err != nil {
		s.publishError(models.EventSubmissionRejected, summarize(bridge), "", err)
		return nil, err
	}
	return sub, nil
}

func (s *Session) Transactions(filter models.TransactionFilter) iter.Seq[models.Transaction] {
	return s.Ledger.Query(filter)
}

// NFTs lists the collectibles held on chainID, or on every chain when chainID
// is empty.
func (s *Session) NFTs(chainID string) []models.NFT {
	return s.Registry.NFTs(chainID)
}

func (s *Session) Snapshot() Snapshot {
	bridge := s.Builder.Snapshot()
	snapshot := Snapshot{
		Wallet:       s.Wallet.Snapshot(),
		Intent:       bridge,
		QuotePending: s.Estimator.Pending(),
		Submitting:   s.Submitter.InFlight(),
	}
	if quote, ok := s.Estimator.Current(); ok && quote.Matches(bridge) {
		snapshot.Quote = &quote
	}
	if err := intent.Check(bridge); err != nil {
		snapshot.Problem = err.Error()
	} else {
		snapshot.Ready = true
	}
	return snapshot
}

// Close stops background estimates, waits for the outstanding submission and
// closes every subscription.
func (s *Session) Close() {
	s.cancel()
	s.Estimator.Invalidate()
	s.quoteWg.Wait()
	s.Submitter.Close()
	s.notifier.close()
}

func (s *Session) chain(field string, id string) (models.Chain, error) {
	if err := s.requireConnected(); err != nil {
		return models.Chain{}, err
	}
	chain, ok := s.Registry.Chain(id)
	if !ok {
		return models.Chain{}, common.NewError(common.KindNotFound, field, id, errors.New("unknown chain"))
	}
	return chain, nil
}

func (s *Session) requireConnected() error {
	if !s.Wallet.Connected() {
		return common.NewError(common.KindNotConnected, "wallet", "", errors.New("connect a wallet first"))
	}
	return nil
}

// afterMutation drops the quote for the previous intent snapshot and, with
// auto quoting on, starts an estimate for the new one.
func (s *Session) afterMutation() {
	s.Estimator.Invalidate()
	if !s.autoQuote || !s.Builder.Ready() || s.ctx.Err() != nil {
		return
	}

	s.quoteWg.Add(1)
	go func() {
		defer s.quoteWg.Done()
		_, err := s.RefreshQuote(s.ctx)
		if err != nil && !errors.Is(err, fees.ErrSuperseded) {
			log.WithError(err).Debug("[PORTAL] Background estimate failed")
		}
	}()
}

func (s *Session) onAccepted(tx models.Transaction) {
	s.publish(models.Event{
		Kind:          models.EventSubmissionAccepted,
		Intent:        txSummary(tx),
		TransactionId: tx.Id,
	})
}

// onSettled clears the amount, destination, token and quote after a completed
// bridge. The source chain stays selected while the wallet is connected.
func (s *Session) onSettled(tx models.Transaction, err error) {
	summary := txSummary(tx)
	if err != nil {
		s.publishError(models.EventSubmissionFailed, summary, tx.Id, err)
		return
	}

	source := s.Builder.Snapshot().Source
	s.Builder.Reset()
	if s.Wallet.Connected() {
		if source == nil {
			if chain, ok := s.Registry.DefaultChainFor(s.Wallet.Snapshot().Provider); ok {
				source = &chain
			}
		}
		if source != nil {
			s.Builder.SetSourceChain(*source)
		}
	}
	s.Estimator.Invalidate()

	s.publish(models.Event{
		Kind:          models.EventSubmissionCompleted,
		Intent:        summary,
		TransactionId: tx.Id,
		Message:       tx.Hash,
	})
}

func (s *Session) publish(event models.Event) {
	event.Time = s.now()
	log.WithField("kind", event.Kind).Debug("[PORTAL] Event")
	s.notifier.publish(event)
}

func (s *Session) publishError(kind models.EventKind, summary string, txId string, err error) {
	errorKind := string(common.KindOf(err))
	if errorKind == "" {
		errorKind = "Unknown"
	}
	s.publish(models.Event{
		Kind:          kind,
		Intent:        summary,
		TransactionId: txId,
		ErrorKind:     errorKind,
		Message:       err.Error(),
	})
}

func summarize(bridge models.BridgeIntent) string {
	if bridge.Source == nil && bridge.Destination == nil {
		return ""
	}
	return bridge.Summary()
}

func txSummary(tx models.Transaction) string {
	return tx.Amount + " " + tx.Token + " from " + tx.FromChain + " to " + tx.ToChain
}
