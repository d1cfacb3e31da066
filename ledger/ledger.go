package ledger

import (
	"errors"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/models"
	log "github.com/sirupsen/logrus"
)

type entry struct {
	tx  models.Transaction
	seq uint64
}

// Ledger is the append-only record of submitted transactions. Writes are
// serialized; entries leave pending exactly once and never change after.
type Ledger struct {
	mu      sync.Mutex
	entries []*entry
	index   map[string]*entry
	nextSeq uint64
	now     func() time.Time
}

func New() *Ledger {
	return &Ledger{
		index: make(map[string]*entry),
		now:   time.Now,
	}
}

// Append records a new pending transaction.
func (l *Ledger) Append(tx models.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tx.Id == "" {
		return common.NewError(common.KindInvalidTransition, "id", "", errors.New("transaction id is empty"))
	}
	if _, exists := l.index[tx.Id]; exists {
		return common.NewError(common.KindInvalidTransition, "id", tx.Id, errors.New("transaction already recorded"))
	}
	if tx.Status != models.TransactionStatusPending {
		return common.NewError(common.KindInvalidTransition, "status", string(tx.Status), errors.New("transactions are recorded as pending"))
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = l.now()
	}
	tx.UpdatedAt = tx.Timestamp

	e := &entry{tx: tx, seq: l.nextSeq}
	l.nextSeq++
	l.entries = append(l.entries, e)
	l.index[tx.Id] = e

	log.WithFields(log.Fields{
		"id":   tx.Id,
		"kind": tx.Kind,
	}).Debug("[LEDGER] Appended transaction")
	return nil
}

// Import records transactions that already settled elsewhere, such as a
// wallet's history. Either every transaction is recorded or none is.
func (l *Ledger) Import(txs ...models.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	batch := make(map[string]bool, len(txs))
	for _, tx := range txs {
		if tx.Id == "" {
			return common.NewError(common.KindInvalidTransition, "id", "", errors.New("transaction id is empty"))
		}
		if _, exists := l.index[tx.Id]; exists || batch[tx.Id] {
			return common.NewError(common.KindInvalidTransition, "id", tx.Id, errors.New("transaction already recorded"))
		}
		if !tx.Status.Terminal() {
			return common.NewError(common.KindInvalidTransition, "status", string(tx.Status), errors.New("imported transactions must be completed or failed"))
		}
		if tx.Timestamp.IsZero() {
			return common.NewError(common.KindInvalidTransition, "timestamp", tx.Id, errors.New("imported transactions need a timestamp"))
		}
		batch[tx.Id] = true
	}

	for _, tx := range txs {
		if tx.UpdatedAt.IsZero() {
			tx.UpdatedAt = tx.Timestamp
		}
		e := &entry{tx: tx, seq: l.nextSeq}
		l.nextSeq++
		l.entries = append(l.entries, e)
		l.index[tx.Id] = e
	}

	log.WithField("count", len(txs)).Debug("[LEDGER] Imported transactions")
	return nil
}

// UpdateStatus moves a pending transaction to a terminal status.
func (l *Ledger) UpdateStatus(id string, status models.TransactionStatus) (models.Transaction, error) {
	return l.Settle(id, status, "", "")
}

// Settle is UpdateStatus that also records the transaction hash or failure reason.
func (l *Ledger) Settle(id string, status models.TransactionStatus, hash string, reason string) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.index[id]
	if !ok {
		return models.Transaction{}, common.NewError(common.KindNotFound, "id", id, errors.New("transaction not found"))
	}
	if e.tx.Status != models.TransactionStatusPending {
		return e.tx, common.NewError(common.KindInvalidTransition, "status", string(e.tx.Status), errors.New("transaction already settled"))
	}
	if !status.Terminal() {
		return e.tx, common.NewError(common.KindInvalidTransition, "status", string(status), errors.New("target status must be completed or failed"))
	}

	e.tx.Status = status
	if hash != "" {
		e.tx.Hash = hash
	}
	if reason != "" {
		e.tx.ErrorMessage = reason
	}
	e.tx.UpdatedAt = l.now()

	log.WithFields(log.Fields{
		"id":     id,
		"status": status,
	}).Debug("[LEDGER] Settled transaction")
	return e.tx, nil
}

func (l *Ledger) Get(id string) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.index[id]
	if !ok {
		return models.Transaction{}, common.NewError(common.KindNotFound, "id", id, errors.New("transaction not found"))
	}
	return e.tx, nil
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Counts returns the number of transactions per status.
func (l *Ledger) Counts() map[models.TransactionStatus]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	counts := map[models.TransactionStatus]int{
		models.TransactionStatusPending:   0,
		models.TransactionStatusCompleted: 0,
		models.TransactionStatusFailed:    0,
	}
	for _, e := range l.entries {
		counts[e.tx.Status]++
	}
	return counts
}

// Query yields matching transactions newest first. Each iteration works on a
// snapshot taken when it starts, so the sequence is finite and can be ranged
// over again to observe later writes.
func (l *Ledger) Query(filter models.TransactionFilter) iter.Seq[models.Transaction] {
	return func(yield func(models.Transaction) bool) {
		for _, tx := range l.snapshot() {
			if !filter.Match(tx) {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// All collects Query into a slice.
func (l *Ledger) All(filter models.TransactionFilter) []models.Transaction {
	txs := make([]models.Transaction, 0)
	for tx := range l.Query(filter) {
		txs = append(txs, tx)
	}
	return txs
}

func (l *Ledger) snapshot() []models.Transaction {
	l.mu.Lock()
	entries := make([]entry, len(l.entries))
	for i, e := range l.entries {
		entries[i] = *e
	}
	l.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].tx.Timestamp.Equal(entries[j].tx.Timestamp) {
			return entries[i].tx.Timestamp.After(entries[j].tx.Timestamp)
		}
		return entries[i].seq > entries[j].seq
	})

	txs := make([]models.Transaction, len(entries))
	for i, e := range entries {
		txs[i] = e.tx
	}
	return txs
}
