package app

import (
	"sync"
	"time"

	"github.com/dan13ram/omnichain-portal/models"
	log "github.com/sirupsen/logrus"
)

type Runner interface {
	Run()
	Status() models.RunnerStatus
}

// RunnerService calls its runner every interval until stopped and keeps the
// health of the last run.
type RunnerService struct {
	name     string
	runner   Runner
	stop     chan bool
	interval time.Duration
	wg       *sync.WaitGroup

	health   models.ServiceHealth
	healthMu sync.RWMutex
}

func (x *RunnerService) Start() {
	log.Infof("[%s] Starting service", x.name)
	stop := false
	for !stop {
		log.Infof("[%s] Starting run", x.name)
		x.runner.Run()

		x.UpdateHealth()

		log.Infof("[%s] Finished run, sleeping for %v", x.name, x.interval)

		select {
		case <-x.stop:
			stop = true
			log.Infof("[%s] Stopped service", x.name)
		case <-time.After(x.interval):
		}
	}
	x.wg.Done()
}

func (x *RunnerService) Health() models.ServiceHealth {
	x.healthMu.RLock()
	defer x.healthMu.RUnlock()

	return x.health
}

func (x *RunnerService) UpdateHealth() {
	x.healthMu.Lock()
	defer x.healthMu.Unlock()

	status := x.runner.Status()
	lastSyncTime := time.Now()

	x.health = models.ServiceHealth{
		Name:                  x.name,
		LastSyncTime:          lastSyncTime,
		NextSyncTime:          lastSyncTime.Add(x.interval),
		PendingTransactions:   status.PendingTransactions,
		CompletedTransactions: status.CompletedTransactions,
		FailedTransactions:    status.FailedTransactions,
		Healthy:               true,
	}
}

func (x *RunnerService) Stop() {
	log.Infof("[%s] Stopping service", x.name)
	x.stop <- true
}

func NewRunnerService(
	name string,
	runner Runner,
	wg *sync.WaitGroup,
	interval time.Duration,
) *RunnerService {
	if name == "" || runner == nil || wg == nil || interval <= 0 {
		log.Debug("[RUNNER] Invalid parameters")
		return nil
	}

	return &RunnerService{
		name:     name,
		runner:   runner,
		stop:     make(chan bool, 1),
		interval: interval,
		wg:       wg,
		health: models.ServiceHealth{
			Name:    name,
			Healthy: true,
		},
	}
}
