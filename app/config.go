package app

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/dan13ram/omnichain-portal/models"
)

var (
	Config models.Config
)

func InitConfig(configFile string, envFile string) {
	log.Debug("[CONFIG] Initializing config")
	setLatencyDefaults()
	readConfigFromConfigFile(configFile)
	readConfigFromENV(envFile)
	readKeysFromGSM()
	applyDefaults()
	validateConfig()
	log.Info("[CONFIG] Config initialized")
}

func readConfigFromConfigFile(configFile string) bool {
	if configFile == "" {
		log.Debug("[CONFIG] No config file provided")
		return false
	}
	log.Debug("[CONFIG] Reading config file")
	var yamlFile, err = os.ReadFile(configFile)
	if err != nil {
		log.Fatalf("[CONFIG] Error reading config file %q: %s\n", configFile, err.Error())
	}
	err = yaml.Unmarshal(yamlFile, &Config)
	if err != nil {
		log.Fatalf("[CONFIG] Error unmarshalling config file %q: %s\n", configFile, err.Error())
	}
	log.Debug("[CONFIG] Config loaded from config file")
	return true
}

const (
	defaultHandshakeMillis    = 1500
	defaultEstimatorMillis    = 1000
	defaultSubmitterMillis    = 2000
	defaultSubmitterTimeout   = 30000
	defaultHealthCheckMillis  = 60000
	defaultMongoTimeoutMillis = 2000
	defaultListenAddress      = ":9090"
)

// setLatencyDefaults seeds the simulated latencies before the config file and
// env are read, so an explicit 0 in either one turns the delay off.
func setLatencyDefaults() {
	Config.Wallet.HandshakeMillis = defaultHandshakeMillis
	Config.Estimator.LatencyMillis = defaultEstimatorMillis
	Config.Submitter.LatencyMillis = defaultSubmitterMillis
}

// applyDefaults fills settings where zero is not a usable value.
func applyDefaults() {
	if Config.Logger.Level == "" {
		Config.Logger.Level = "info"
	}
	if Config.Logger.Format == "" {
		Config.Logger.Format = "text"
	}
	if Config.Submitter.TimeoutMillis == 0 {
		Config.Submitter.TimeoutMillis = defaultSubmitterTimeout
	}
	if Config.HealthCheck.IntervalMillis == 0 {
		Config.HealthCheck.IntervalMillis = defaultHealthCheckMillis
	}
	if Config.MongoDB.TimeoutMillis == 0 {
		Config.MongoDB.TimeoutMillis = defaultMongoTimeoutMillis
	}
	if Config.Metrics.ListenAddress == "" {
		Config.Metrics.ListenAddress = defaultListenAddress
	}
}

func validateConfig() {
	log.Debug("[CONFIG] Validating config")

	switch strings.ToLower(Config.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		log.Fatal("[CONFIG] Logger.Level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(Config.Logger.Format) {
	case "text", "json":
	default:
		log.Fatal("[CONFIG] Logger.Format must be text or json")
	}

	if Config.Wallet.Mnemonic == "" {
		log.Fatal("[CONFIG] Wallet.Mnemonic is required")
	}
	if Config.Wallet.HandshakeMillis < 0 {
		log.Fatal("[CONFIG] Wallet.HandshakeMillis cannot be negative")
	}
	if Config.Estimator.LatencyMillis < 0 {
		log.Fatal("[CONFIG] Estimator.LatencyMillis cannot be negative")
	}
	if Config.Estimator.QuoteTTLMillis < 0 {
		log.Fatal("[CONFIG] Estimator.QuoteTTLMillis cannot be negative")
	}
	if Config.Submitter.LatencyMillis < 0 {
		log.Fatal("[CONFIG] Submitter.LatencyMillis cannot be negative")
	}
	if Config.Submitter.TimeoutMillis < 0 {
		log.Fatal("[CONFIG] Submitter.TimeoutMillis cannot be negative")
	}
	for _, chain := range Config.Submitter.FailingChains {
		if strings.TrimSpace(chain) == "" {
			log.Fatal("[CONFIG] Submitter.FailingChains cannot contain empty chain ids")
		}
	}
	if Config.Portal.EventBuffer < 0 {
		log.Fatal("[CONFIG] Portal.EventBuffer cannot be negative")
	}

	if Config.HealthCheck.Enabled {
		if Config.HealthCheck.IntervalMillis <= 0 {
			log.Fatal("[CONFIG] HealthCheck.IntervalMillis must be positive")
		}
		if Config.MongoDB.URI == "" {
			log.Fatal("[CONFIG] MongoDB.URI is required when HealthCheck is enabled")
		}
		if Config.MongoDB.Database == "" {
			log.Fatal("[CONFIG] MongoDB.Database is required when HealthCheck is enabled")
		}
		if Config.MongoDB.TimeoutMillis <= 0 {
			log.Fatal("[CONFIG] MongoDB.TimeoutMillis must be positive")
		}
	}

	if Config.Metrics.Enabled && Config.Metrics.ListenAddress == "" {
		log.Fatal("[CONFIG] Metrics.ListenAddress is required when Metrics is enabled")
	}

	log.Debug("[CONFIG] Config validated")
}
