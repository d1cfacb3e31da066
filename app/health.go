package app

import (
	"os"
	"sync"
	"time"

	"github.com/dan13ram/omnichain-portal/models"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	HealthServiceName = "HEALTH"
)

type WalletReader interface {
	Snapshot() models.WalletSession
}

// HealthCheckRunner upserts one heartbeat document per session and host.
type HealthCheckRunner struct {
	sessionId string
	hostname  string
	wallet    WalletReader

	services   []models.Service
	servicesMu sync.RWMutex
}

func (x *HealthCheckRunner) Run() {
	x.PostHealth()
}

func (x *HealthCheckRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{}
}

func (x *HealthCheckRunner) SetServices(services []models.Service) {
	x.servicesMu.Lock()
	defer x.servicesMu.Unlock()
	x.services = services
}

func (x *HealthCheckRunner) ServiceHealths() []models.ServiceHealth {
	x.servicesMu.RLock()
	defer x.servicesMu.RUnlock()

	var serviceHealths []models.ServiceHealth
	for _, service := range x.services {
		health := service.Health()
		if health.Name == models.EmptyServiceName {
			continue
		}
		serviceHealths = append(serviceHealths, health)
	}
	return serviceHealths
}

func (x *HealthCheckRunner) filter() bson.M {
	return bson.M{
		"session_id": x.sessionId,
		"hostname":   x.hostname,
	}
}

func (x *HealthCheckRunner) walletAddress() string {
	if x.wallet == nil {
		return ""
	}
	return x.wallet.Snapshot().Address
}

func (x *HealthCheckRunner) PostHealth() bool {
	log.Debug("[HEALTH] Posting health")

	lockId, err := DB.XLock(models.CollectionHealthChecks + ":" + x.sessionId)
	if err != nil {
		log.Error("[HEALTH] Error locking health: ", err)
		return false
	}
	defer func() {
		if err := DB.Unlock(lockId); err != nil {
			log.Error("[HEALTH] Error unlocking health: ", err)
		}
	}()

	now := time.Now()

	onInsert := bson.M{
		"session_id": x.sessionId,
		"hostname":   x.hostname,
		"created_at": now,
	}

	onUpdate := bson.M{
		"healthy":         true,
		"service_healths": x.ServiceHealths(),
		"wallet_address":  x.walletAddress(),
		"updated_at":      now,
	}

	update := bson.M{"$set": onUpdate, "$setOnInsert": onInsert}

	if err := DB.UpsertOne(models.CollectionHealthChecks, x.filter(), update); err != nil {
		log.Error("[HEALTH] Error posting health: ", err)
		return false
	}

	log.Info("[HEALTH] Posted health")
	return true
}

func newHealthCheck(wallet WalletReader) *HealthCheckRunner {
	log.Debug("[HEALTH] Initializing health")

	hostname, err := os.Hostname()
	if err != nil {
		log.Fatal("[HEALTH] Error getting hostname: ", err)
	}

	x := &HealthCheckRunner{
		sessionId: uuid.NewString(),
		hostname:  hostname,
		wallet:    wallet,
	}

	log.WithFields(log.Fields{
		"session_id": x.sessionId,
		"hostname":   x.hostname,
	}).Info("[HEALTH] Initialized health")

	return x
}

// NewHealthCheck returns the runner and its service. The runner is returned
// so the caller can hand it the rest of the services once they exist.
func NewHealthCheck(wallet WalletReader, wg *sync.WaitGroup) (*HealthCheckRunner, models.Service) {
	x := newHealthCheck(wallet)
	interval := time.Duration(Config.HealthCheck.IntervalMillis) * time.Millisecond
	service := NewRunnerService(HealthServiceName, x, wg, interval)
	if service == nil {
		log.Fatal("[HEALTH] Invalid health check parameters")
	}
	return x, service
}
