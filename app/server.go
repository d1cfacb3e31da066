package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dan13ram/omnichain-portal/models"
	log "github.com/sirupsen/logrus"
)

const (
	ServerServiceName = "SERVER"
	shutdownTimeout   = 5 * time.Second
)

// ServerService serves /metrics and /events until stopped.
type ServerService struct {
	server *http.Server
	wg     *sync.WaitGroup

	health   models.ServiceHealth
	healthMu sync.RWMutex
}

func NewServerMux(metrics *Metrics, stream http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/events", stream)
	return mux
}

func (x *ServerService) Start() {
	log.Info("[SERVER] Listening on ", x.server.Addr)

	listener, err := net.Listen("tcp", x.server.Addr)
	if err != nil {
		log.Error("[SERVER] Error listening: ", err)
		x.setHealthy(false)
		return
	}
	x.setHealthy(true)

	err = x.server.Serve(listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("[SERVER] Error serving: ", err)
		x.setHealthy(false)
	}
}

func (x *ServerService) setHealthy(healthy bool) {
	x.healthMu.Lock()
	defer x.healthMu.Unlock()
	x.health.Healthy = healthy
	x.health.LastSyncTime = time.Now()
	x.health.NextSyncTime = x.health.LastSyncTime
}

func (x *ServerService) Health() models.ServiceHealth {
	x.healthMu.RLock()
	defer x.healthMu.RUnlock()
	return x.health
}

func (x *ServerService) Stop() {
	log.Info("[SERVER] Stopping server")
	defer x.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := x.server.Shutdown(ctx); err != nil {
		log.Error("[SERVER] Error shutting down: ", err)
	}
	log.Info("[SERVER] Stopped server")
}

func NewServerService(address string, handler http.Handler, wg *sync.WaitGroup) *ServerService {
	return &ServerService{
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		wg: wg,
		health: models.ServiceHealth{
			Name:    ServerServiceName,
			Healthy: true,
		},
	}
}
