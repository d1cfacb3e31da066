package submitter

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/intent"
	"github.com/dan13ram/omnichain-portal/models"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateRejected   State = "rejected"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Store is where accepted transactions are recorded.
type Store interface {
	Append(tx models.Transaction) error
	Settle(id string, status models.TransactionStatus, hash string, reason string) (models.Transaction, error)
}

// AcceptedFunc observes every accepted submission before its relay starts.
// It runs under the submitter lock and must not call back into it.
type AcceptedFunc func(tx models.Transaction)

// SettledFunc observes every settled submission before its handle completes.
type SettledFunc func(tx models.Transaction, err error)

// Submitter turns a ready intent and its quote into a ledger transaction and
// relays it. Only one submission runs at a time.
type Submitter struct {
	mu       sync.Mutex
	relayer  Relayer
	store    Store
	timeout  time.Duration
	now      func() time.Time
	newId    func() string
	state    State
	inFlight *Submission
	accepted []AcceptedFunc
	settled  []SettledFunc
	wg       sync.WaitGroup
}

// NewSubmitter creates a submitter. A zero timeout lets a relay run until the
// relayer returns.
func NewSubmitter(relayer Relayer, store Store, timeout time.Duration) *Submitter {
	return &Submitter{
		relayer: relayer,
		store:   store,
		timeout: timeout,
		now:     time.Now,
		newId:   uuid.NewString,
		state:   StateIdle,
	}
}

func (s *Submitter) OnAccepted(fn AcceptedFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accepted = append(s.accepted, fn)
}

func (s *Submitter) OnSettled(fn SettledFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settled = append(s.settled, fn)
}

// Submit validates and accepts a bridge. The relay continues in the background
// even if ctx is cancelled; use the returned handle to follow it.
func (s *Submitter) Submit(ctx context.Context, bridge models.BridgeIntent, quote *models.FeeQuote) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight != nil {
		return nil, common.NewError(common.KindSubmissionInProgress, "transaction", s.inFlight.tx.Id, nil)
	}

	s.state = StateValidating
	if err := s.validate(bridge, quote); err != nil {
		s.state = StateRejected
		log.WithError(err).Debug("[SUBMITTER] Submission rejected")
		return nil, common.NewError(common.KindValidationFailed, "intent", bridge.Summary(), err)
	}

	now := s.now()
	tx := models.Transaction{
		Id:        s.newId(),
		Kind:      models.TransactionKindBridge,
		Status:    models.TransactionStatusPending,
		FromChain: bridge.SourceID(),
		ToChain:   bridge.DestinationID(),
		Token:     bridge.TokenSymbol(),
		Amount:    bridge.Amount,
		Fee:       quote.Fee,
		Timestamp: now,
		UpdatedAt: now,
	}

	if err := s.store.Append(tx); err != nil {
		s.state = StateFailed
		log.WithError(err).Error("[SUBMITTER] Error recording transaction")
		return nil, common.NewError(common.KindSubmissionFailed, "transaction", tx.Id, err)
	}

	sub := newSubmission(tx)
	s.inFlight = sub
	s.state = StateSubmitting

	log.WithFields(log.Fields{
		"id":     tx.Id,
		"intent": bridge.Summary(),
	}).Info("[SUBMITTER] Submission accepted")

	for _, hook := range s.accepted {
		hook(tx)
	}

	relayCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go s.relay(relayCtx, sub)

	return sub, nil
}

func (s *Submitter) validate(bridge models.BridgeIntent, quote *models.FeeQuote) error {
	if err := intent.Check(bridge); err != nil {
		return err
	}
	if quote == nil {
		return common.NewError(common.KindEstimationUnavailable, "quote", "", errors.New("no fee quote"))
	}
	if quote.SourceChain != bridge.SourceID() || quote.DestinationChain != bridge.DestinationID() {
		return common.NewError(common.KindEstimationUnavailable, "quote", quote.SourceChain+"->"+quote.DestinationChain, errors.New("quote is for a different chain pair"))
	}
	if quote.IntentVersion != bridge.Version {
		return common.NewError(common.KindEstimationUnavailable, "quote", quote.Fee, errors.New("quote is stale"))
	}
	if quote.Expired(s.now()) {
		return common.NewError(common.KindEstimationUnavailable, "quote", quote.Fee, errors.New("quote expired"))
	}
	return nil
}

func (s *Submitter) relay(ctx context.Context, sub *Submission) {
	defer s.wg.Done()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	tx := sub.tx
	logger := log.WithField("id", tx.Id)

	hash, relayErr := s.relayer.Relay(ctx, tx)

	var (
		result models.Transaction
		err    error
		state  State
	)
	if relayErr != nil {
		logger.WithError(relayErr).Warn("[SUBMITTER] Relay failed")
		result, err = s.store.Settle(tx.Id, models.TransactionStatusFailed, "", relayErr.Error())
		if err != nil {
			logger.WithError(err).Error("[SUBMITTER] Error settling failed transaction")
			result = tx
			result.Status = models.TransactionStatusFailed
			result.ErrorMessage = relayErr.Error()
		}
		err = common.NewError(common.KindSubmissionFailed, "transaction", tx.Id, relayErr)
		state = StateFailed
	} else {
		result, err = s.store.Settle(tx.Id, models.TransactionStatusCompleted, hash, "")
		if err != nil {
			logger.WithError(err).Error("[SUBMITTER] Error settling completed transaction")
			result = tx
			err = common.NewError(common.KindSubmissionFailed, "transaction", tx.Id, err)
			state = StateFailed
		} else {
			logger.WithField("hash", hash).Info("[SUBMITTER] Submission completed")
			state = StateCompleted
		}
	}

	s.mu.Lock()
	s.state = state
	hooks := make([]SettledFunc, len(s.settled))
	copy(hooks, s.settled)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(result, err)
	}

	s.mu.Lock()
	s.inFlight = nil
	s.mu.Unlock()

	sub.finish(result, err)
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Submitter) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight != nil
}

// Close waits for the outstanding relay to settle.
func (s *Submitter) Close() {
	s.wg.Wait()
}
