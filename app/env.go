package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func readConfigFromENV(envFile string) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			log.Warn("[ENV] Error loading .env file: ", err.Error())
		}
	}

	// logger
	if os.Getenv("LOG_LEVEL") != "" {
		Config.Logger.Level = os.Getenv("LOG_LEVEL")
	}
	if os.Getenv("LOG_FORMAT") != "" {
		Config.Logger.Format = os.Getenv("LOG_FORMAT")
	}

	// mongodb
	if os.Getenv("MONGODB_URI") != "" {
		Config.MongoDB.URI = os.Getenv("MONGODB_URI")
	}
	if os.Getenv("MONGODB_DATABASE") != "" {
		Config.MongoDB.Database = os.Getenv("MONGODB_DATABASE")
	}
	readInt64("MONGODB_TIMEOUT_MS", &Config.MongoDB.TimeoutMillis)

	// registry
	if os.Getenv("PORTAL_REGISTRY_FIXTURE") != "" {
		Config.Registry.FixturePath = os.Getenv("PORTAL_REGISTRY_FIXTURE")
	}

	// wallet
	if os.Getenv("PORTAL_WALLET_MNEMONIC") != "" {
		Config.Wallet.Mnemonic = os.Getenv("PORTAL_WALLET_MNEMONIC")
	}
	readInt64("PORTAL_WALLET_HANDSHAKE_MS", &Config.Wallet.HandshakeMillis)

	// estimator
	readInt64("PORTAL_ESTIMATOR_LATENCY_MS", &Config.Estimator.LatencyMillis)
	readInt64("PORTAL_ESTIMATOR_QUOTE_TTL_MS", &Config.Estimator.QuoteTTLMillis)

	// submitter
	readInt64("PORTAL_SUBMITTER_LATENCY_MS", &Config.Submitter.LatencyMillis)
	readInt64("PORTAL_SUBMITTER_TIMEOUT_MS", &Config.Submitter.TimeoutMillis)
	if os.Getenv("PORTAL_SUBMITTER_FAILING_CHAINS") != "" {
		Config.Submitter.FailingChains = strings.Split(os.Getenv("PORTAL_SUBMITTER_FAILING_CHAINS"), ",")
	}

	// portal
	readBool("PORTAL_AUTO_QUOTE", &Config.Portal.AutoQuote)
	if os.Getenv("PORTAL_EVENT_BUFFER") != "" {
		buffer, err := strconv.Atoi(os.Getenv("PORTAL_EVENT_BUFFER"))
		if err != nil {
			log.Warn("[ENV] Error parsing PORTAL_EVENT_BUFFER: ", err.Error())
		} else {
			Config.Portal.EventBuffer = buffer
		}
	}

	// health check
	readBool("HEALTH_CHECK_ENABLED", &Config.HealthCheck.Enabled)
	readInt64("HEALTH_CHECK_INTERVAL_MS", &Config.HealthCheck.IntervalMillis)

	// metrics
	readBool("METRICS_ENABLED", &Config.Metrics.Enabled)
	if os.Getenv("METRICS_LISTEN_ADDRESS") != "" {
		Config.Metrics.ListenAddress = os.Getenv("METRICS_LISTEN_ADDRESS")
	}

	// google secret manager
	readBool("GOOGLE_SECRET_MANAGER_ENABLED", &Config.GoogleSecretManager.Enabled)
	if os.Getenv("GOOGLE_PROJECT_ID") != "" {
		Config.GoogleSecretManager.ProjectId = os.Getenv("GOOGLE_PROJECT_ID")
	}
	if os.Getenv("GOOGLE_MONGO_SECRET_NAME") != "" {
		Config.GoogleSecretManager.MongoSecretName = os.Getenv("GOOGLE_MONGO_SECRET_NAME")
	}
	if os.Getenv("GOOGLE_MNEMONIC_SECRET_NAME") != "" {
		Config.GoogleSecretManager.MnemonicSecretName = os.Getenv("GOOGLE_MNEMONIC_SECRET_NAME")
	}
}

func readInt64(key string, target *int64) {
	if os.Getenv(key) == "" {
		return
	}
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		log.Warn("[ENV] Error parsing ", key, ": ", err.Error())
		return
	}
	*target = value
}

func readBool(key string, target *bool) {
	if os.Getenv(key) == "" {
		return
	}
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		log.Warn("[ENV] Error parsing ", key, ": ", err.Error())
		return
	}
	*target = value
}
