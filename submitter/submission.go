package submitter

import (
	"context"

	"github.com/dan13ram/omnichain-portal/models"
)

// Submission is the handle for one accepted bridge transaction.
type Submission struct {
	tx     models.Transaction
	done   chan struct{}
	result models.Transaction
	err    error
}

func newSubmission(tx models.Transaction) *Submission {
	return &Submission{
		tx:   tx,
		done: make(chan struct{}),
	}
}

// Transaction is the pending record as it was appended to the ledger.
func (s *Submission) Transaction() models.Transaction {
	return s.tx
}

// Done is closed once the transaction has settled.
func (s *Submission) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the transaction settles or ctx ends. Cancelling ctx only
// stops the wait; the submission keeps running.
func (s *Submission) Wait(ctx context.Context) (models.Transaction, error) {
	select {
	case <-ctx.Done():
		return s.tx, ctx.Err()
	case <-s.done:
		return s.result, s.err
	}
}

func (s *Submission) finish(result models.Transaction, err error) {
	s.result = result
	s.err = err
	close(s.done)
}
