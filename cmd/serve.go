package cmd

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dan13ram/omnichain-portal/app"
	"github.com/dan13ram/omnichain-portal/models"
	"github.com/dan13ram/omnichain-portal/portal"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portal event stream, metrics and heartbeats",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	initApp()
	reg, err := loadRegistry()
	if err != nil {
		log.Fatal("[SERVE] Error loading registry: ", err)
	}

	session, err := portal.Build(app.Config, reg)
	if err != nil {
		log.Fatal("[SERVE] Error building session: ", err)
	}

	if app.Config.HealthCheck.Enabled {
		app.InitDB()
	}

	var wg sync.WaitGroup
	var services []models.Service

	services = append(services, app.NewLedgerMonitor(session.Ledger, &wg))

	if app.Config.Metrics.Enabled {
		metrics := app.NewMetrics()
		services = append(services, app.NewMetricsService(metrics, session, &wg))
		mux := app.NewServerMux(metrics, app.NewStreamHandler(session))
		services = append(services, app.NewServerService(app.Config.Metrics.ListenAddress, mux, &wg))
	} else {
		services = append(services, models.NewEmptyService(&wg))
	}

	if app.Config.HealthCheck.Enabled {
		healthcheck, service := app.NewHealthCheck(session.Wallet, &wg)
		healthcheck.SetServices(services)
		services = append(services, service)
	}

	wg.Add(len(services))
	for _, service := range services {
		go service.Start()
	}

	log.Info("[SERVE] Portal started")

	gracefulStop := make(chan os.Signal, 1)
	done := make(chan bool, 1)
	signal.Notify(gracefulStop, syscall.SIGINT, syscall.SIGTERM)
	go waitForExitSignals(gracefulStop, done)
	<-done

	log.Debug("[SERVE] Stopping services")
	for _, service := range services {
		service.Stop()
	}
	session.Close()
	wg.Wait()

	if app.Config.HealthCheck.Enabled {
		if err := app.DB.Disconnect(); err != nil {
			log.Error("[SERVE] Error disconnecting from database: ", err)
		}
	}
	log.Info("[SERVE] Portal stopped")
}

func waitForExitSignals(gracefulStop chan os.Signal, done chan bool) {
	sig := <-gracefulStop
	log.Debug("[SERVE] Got signal: ", sig)
	done <- true
}
