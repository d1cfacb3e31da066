package app

import (
	"sync"
	"time"

	"github.com/dan13ram/omnichain-portal/models"
	log "github.com/sirupsen/logrus"
)

const (
	LedgerMonitorName = "LEDGER"
)

type LedgerCounter interface {
	Counts() map[models.TransactionStatus]int
}

// LedgerMonitor samples ledger status counts so they show up in heartbeats.
type LedgerMonitor struct {
	ledger LedgerCounter

	status   models.RunnerStatus
	statusMu sync.RWMutex
}

func (x *LedgerMonitor) Run() {
	counts := x.ledger.Counts()
	status := models.RunnerStatus{
		PendingTransactions:   int64(counts[models.TransactionStatusPending]),
		CompletedTransactions: int64(counts[models.TransactionStatusCompleted]),
		FailedTransactions:    int64(counts[models.TransactionStatusFailed]),
	}

	x.statusMu.Lock()
	x.status = status
	x.statusMu.Unlock()

	log.WithFields(log.Fields{
		"pending":   status.PendingTransactions,
		"completed": status.CompletedTransactions,
		"failed":    status.FailedTransactions,
	}).Debug("[LEDGER] Sampled ledger")
}

func (x *LedgerMonitor) Status() models.RunnerStatus {
	x.statusMu.RLock()
	defer x.statusMu.RUnlock()
	return x.status
}

func NewLedgerMonitor(ledger LedgerCounter, wg *sync.WaitGroup) models.Service {
	interval := time.Duration(Config.HealthCheck.IntervalMillis) * time.Millisecond
	service := NewRunnerService(LedgerMonitorName, &LedgerMonitor{ledger: ledger}, wg, interval)
	if service == nil {
		log.Fatal("[LEDGER] Invalid ledger monitor parameters")
	}
	return service
}
