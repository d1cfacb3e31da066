package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dan13ram/omnichain-portal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/omnichain-portal/app/mocks"
)

func init() {
	log.SetOutput(io.Discard)
}

type staticWallet struct {
	session models.WalletSession
}

func (w staticWallet) Snapshot() models.WalletSession {
	return w.session
}

func NewTestHealthCheck() *HealthCheckRunner {
	x := &HealthCheckRunner{
		sessionId: "sessionId",
		hostname:  "hostname",
		wallet: staticWallet{models.WalletSession{
			Connected: true,
			Address:   "0xabc",
			Balance:   "0.56 ETH",
			Provider:  models.ProviderMetaMask,
		}},
	}
	return x
}

func TestHealthStatus(t *testing.T) {
	x := NewTestHealthCheck()

	status := x.Status()
	assert.Equal(t, models.RunnerStatus{}, status)
}

type MockService struct {
	pending int64
}

func (e *MockService) Start() {}

func (e *MockService) Stop() {}

const MockServiceName = "mock"

func (e *MockService) Health() models.ServiceHealth {
	return models.ServiceHealth{
		Name:                MockServiceName,
		LastSyncTime:        time.Now(),
		NextSyncTime:        time.Now(),
		PendingTransactions: e.pending,
		Healthy:             true,
	}
}

func TestServiceHealths(t *testing.T) {
	x := NewTestHealthCheck()
	wg := &sync.WaitGroup{}
	x.SetServices([]models.Service{
		models.NewEmptyService(wg),
		models.NewEmptyService(wg),
		&MockService{pending: 3},
	})

	assert.Equal(t, len(x.services), 3)

	healths := x.ServiceHealths()

	assert.Equal(t, len(healths), 1)
	assert.Equal(t, healths[0].Name, MockServiceName)
	assert.Equal(t, int64(3), healths[0].PendingTransactions)
}

func TestPostHealth(t *testing.T) {
	lockResource := models.CollectionHealthChecks + ":sessionId"

	t.Run("No Error", func(t *testing.T) {
		x := NewTestHealthCheck()
		x.SetServices([]models.Service{&MockService{}})

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		filter := bson.M{
			"session_id": x.sessionId,
			"hostname":   x.hostname,
		}

		onInsert := bson.M{
			"session_id": x.sessionId,
			"hostname":   x.hostname,
			"created_at": nil,
		}

		onUpdate := bson.M{
			"healthy":         true,
			"service_healths": nil,
			"wallet_address":  "0xabc",
			"updated_at":      nil,
		}

		update := bson.M{"$set": onUpdate, "$setOnInsert": onInsert}

		mockDB.EXPECT().XLock(lockResource).Return("lockId", nil)
		call := mockDB.EXPECT().UpsertOne(models.CollectionHealthChecks, filter, mock.Anything)
		call.Run(func(_ string, _ interface{}, arg interface{}) {
			updateArg := arg.(bson.M)

			healths := updateArg["$set"].(bson.M)["service_healths"].([]models.ServiceHealth)
			assert.Len(t, healths, 1)

			updateArg["$setOnInsert"].(bson.M)["created_at"] = nil
			updateArg["$set"].(bson.M)["updated_at"] = nil
			updateArg["$set"].(bson.M)["service_healths"] = nil

			assert.Equal(t, update, updateArg)
		})
		call.Return(nil)
		mockDB.EXPECT().Unlock("lockId").Return(nil)

		success := x.PostHealth()
		assert.True(t, success)
	})

	t.Run("With Upsert Error", func(t *testing.T) {
		x := NewTestHealthCheck()

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		mockDB.EXPECT().XLock(lockResource).Return("lockId", nil)
		mockDB.EXPECT().UpsertOne(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("error"))
		mockDB.EXPECT().Unlock("lockId").Return(nil)

		success := x.PostHealth()
		assert.False(t, success)
	})

	t.Run("With Lock Error", func(t *testing.T) {
		x := NewTestHealthCheck()

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		mockDB.EXPECT().XLock(lockResource).Return("", errors.New("locked"))

		success := x.PostHealth()
		assert.False(t, success)
	})

	t.Run("With Unlock Error", func(t *testing.T) {
		x := NewTestHealthCheck()

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		mockDB.EXPECT().XLock(lockResource).Return("lockId", nil)
		mockDB.EXPECT().UpsertOne(mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mockDB.EXPECT().Unlock("lockId").Return(errors.New("error"))

		success := x.PostHealth()
		assert.True(t, success)
	})

	t.Run("Via Run", func(t *testing.T) {
		x := NewTestHealthCheck()
		x.wallet = nil

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		mockDB.EXPECT().XLock(lockResource).Return("lockId", nil)
		call := mockDB.EXPECT().UpsertOne(mock.Anything, mock.Anything, mock.Anything)
		call.Run(func(_ string, _ interface{}, arg interface{}) {
			set := arg.(bson.M)["$set"].(bson.M)
			assert.Equal(t, "", set["wallet_address"])
		})
		call.Return(nil)
		mockDB.EXPECT().Unlock("lockId").Return(nil)

		x.Run()
	})
}

func TestNewHealthCheck(t *testing.T) {
	t.Run("With Valid Config", func(t *testing.T) {
		Config.HealthCheck.IntervalMillis = 1000
		wg := &sync.WaitGroup{}

		x, service := NewHealthCheck(staticWallet{}, wg)

		hostname, _ := os.Hostname()

		assert.NotNil(t, x)
		assert.NotNil(t, service)
		assert.Equal(t, hostname, x.hostname)
		_, err := uuid.Parse(x.sessionId)
		assert.NoError(t, err)
		assert.Equal(t, HealthServiceName, service.Health().Name)
	})

	t.Run("With Invalid Interval", func(t *testing.T) {
		Config.HealthCheck.IntervalMillis = 0
		wg := &sync.WaitGroup{}

		defer func() { log.StandardLogger().ExitFunc = nil }()
		log.StandardLogger().ExitFunc = func(num int) { panic(fmt.Sprintf("exit %d", num)) }

		assert.Panics(t, func() { NewHealthCheck(staticWallet{}, wg) })
	})
}

func TestLedgerMonitor(t *testing.T) {
	counts := ledgerCounts{
		models.TransactionStatusPending:   1,
		models.TransactionStatusCompleted: 4,
		models.TransactionStatusFailed:    2,
	}
	x := &LedgerMonitor{ledger: counts}

	assert.Equal(t, models.RunnerStatus{}, x.Status())

	x.Run()

	assert.Equal(t, models.RunnerStatus{
		PendingTransactions:   1,
		CompletedTransactions: 4,
		FailedTransactions:    2,
	}, x.Status())
}

type ledgerCounts map[models.TransactionStatus]int

func (c ledgerCounts) Counts() map[models.TransactionStatus]int {
	return c
}
