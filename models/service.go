package models

import (
	"sync"
	"time"
)

type Service interface {
	Start()
	Health() ServiceHealth
	Stop()
}

type ServiceHealth struct {
	Name                  string    `bson:"name" json:"name"`
	LastSyncTime          time.Time `bson:"last_sync_time" json:"last_sync_time"`
	NextSyncTime          time.Time `bson:"next_sync_time" json:"next_sync_time"`
	PendingTransactions   int64     `bson:"pending_transactions" json:"pending_transactions"`
	CompletedTransactions int64     `bson:"completed_transactions" json:"completed_transactions"`
	FailedTransactions    int64     `bson:"failed_transactions" json:"failed_transactions"`
	Healthy               bool      `bson:"healthy" json:"healthy"`
}

// RunnerStatus is what a periodic runner reports after each run.
type RunnerStatus struct {
	PendingTransactions   int64
	CompletedTransactions int64
	FailedTransactions    int64
}

type EmptyService struct {
	wg *sync.WaitGroup
}

func (e *EmptyService) Start() {}

func (e *EmptyService) Stop() {
	e.wg.Done()
}

const EmptyServiceName = "empty"

func (e *EmptyService) Health() ServiceHealth {
	return ServiceHealth{
		Name:         EmptyServiceName,
		LastSyncTime: time.Now(),
		NextSyncTime: time.Now(),
		Healthy:      true,
	}
}

func NewEmptyService(wg *sync.WaitGroup) *EmptyService {
	return &EmptyService{
		wg: wg,
	}
}
