package app

import (
	"net/http"
	"sync"
	"time"

	"github.com/axiomhq/hyperloglog"
	"github.com/dan13ram/omnichain-portal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const (
	MetricsServiceName = "METRICS"
)

// Metrics turns the portal event stream into prometheus series.
type Metrics struct {
	registry     *prometheus.Registry
	eventsTotal  *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	settledTotal *prometheus.CounterVec
	lastEvent    prometheus.Gauge

	sketchMu sync.Mutex
	wallets  *hyperloglog.Sketch
	routes   *hyperloglog.Sketch
}

func NewMetrics() *Metrics {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_events_total",
		Help: "Total number of portal events by kind",
	}, []string{"kind"})

	errors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_errors_total",
		Help: "Total number of failed portal events by error kind",
	}, []string{"kind", "error_kind"})

	settled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_submissions_settled_total",
		Help: "Total number of settled bridge submissions by status",
	}, []string{"status"})

	lastEvent := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "portal_last_event_timestamp_seconds",
		Help: "Unix time of the last observed portal event",
	})

	m := &Metrics{
		registry:     prometheus.NewRegistry(),
		eventsTotal:  events,
		errorsTotal:  errors,
		settledTotal: settled,
		lastEvent:    lastEvent,
		wallets:      hyperloglog.New16(),
		routes:       hyperloglog.New16(),
	}

	uniqueWallets := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "portal_unique_wallets",
		Help: "Estimated number of distinct wallet addresses connected",
	}, func() float64 { return m.estimate(m.wallets) })

	uniqueRoutes := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "portal_unique_routes",
		Help: "Estimated number of distinct bridge routes submitted",
	}, func() float64 { return m.estimate(m.routes) })

	m.registry.MustRegister(events, errors, settled, lastEvent, uniqueWallets, uniqueRoutes)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Observe(event models.Event) {
	m.eventsTotal.WithLabelValues(string(event.Kind)).Inc()
	if !event.Time.IsZero() {
		m.lastEvent.Set(float64(event.Time.UnixNano()) / float64(time.Second))
	}
	if event.Failed() {
		m.errorsTotal.WithLabelValues(string(event.Kind), event.ErrorKind).Inc()
	}

	switch event.Kind {
	case models.EventWalletConnected:
		m.insert(m.wallets, event.Message)
	case models.EventSubmissionAccepted:
		m.insert(m.routes, event.Intent)
	case models.EventSubmissionCompleted:
		m.settledTotal.WithLabelValues(string(models.TransactionStatusCompleted)).Inc()
	case models.EventSubmissionFailed:
		m.settledTotal.WithLabelValues(string(models.TransactionStatusFailed)).Inc()
	}
}

func (m *Metrics) insert(sketch *hyperloglog.Sketch, value string) {
	if value == "" {
		return
	}
	m.sketchMu.Lock()
	defer m.sketchMu.Unlock()
	sketch.Insert([]byte(value))
}

func (m *Metrics) estimate(sketch *hyperloglog.Sketch) float64 {
	m.sketchMu.Lock()
	defer m.sketchMu.Unlock()
	return float64(sketch.Estimate())
}

type EventSource interface {
	Subscribe() (<-chan models.Event, func())
}

// MetricsService feeds every portal event into Metrics until stopped.
type MetricsService struct {
	metrics     *Metrics
	events      <-chan models.Event
	unsubscribe func()
	stop        chan bool
	wg          *sync.WaitGroup

	health   models.ServiceHealth
	healthMu sync.RWMutex
}

func (x *MetricsService) Start() {
	log.Info("[METRICS] Starting service")
	defer x.wg.Done()
	for {
		select {
		case <-x.stop:
			x.unsubscribe()
			log.Info("[METRICS] Stopped service")
			return
		case event, ok := <-x.events:
			if !ok {
				log.Info("[METRICS] Event stream closed")
				return
			}
			x.metrics.Observe(event)
			x.updateHealth()
		}
	}
}

func (x *MetricsService) updateHealth() {
	x.healthMu.Lock()
	defer x.healthMu.Unlock()
	x.health.LastSyncTime = time.Now()
	x.health.NextSyncTime = x.health.LastSyncTime
}

func (x *MetricsService) Health() models.ServiceHealth {
	x.healthMu.RLock()
	defer x.healthMu.RUnlock()
	return x.health
}

func (x *MetricsService) Stop() {
	log.Info("[METRICS] Stopping service")
	x.stop <- true
}

func NewMetricsService(metrics *Metrics, source EventSource, wg *sync.WaitGroup) *MetricsService {
	events, unsubscribe := source.Subscribe()
	return &MetricsService{
		metrics:     metrics,
		events:      events,
		unsubscribe: unsubscribe,
		stop:        make(chan bool, 1),
		wg:          wg,
		health: models.ServiceHealth{
			Name:    MetricsServiceName,
			Healthy: true,
		},
	}
}
