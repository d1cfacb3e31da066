package models

type Config struct {
	GoogleSecretManager GoogleSecretManagerConfig `yaml:"google_secret_manager" json:"google_secret_manager"`
	HealthCheck         HealthCheckConfig         `yaml:"health_check" json:"health_check"`
	Logger              LoggerConfig              `yaml:"logger" json:"logger"`
	MongoDB             MongoConfig               `yaml:"mongodb" json:"mongo_db"`
	Metrics             MetricsConfig             `yaml:"metrics" json:"metrics"`
	Registry            RegistryConfig            `yaml:"registry" json:"registry"`
	Wallet              WalletConfig              `yaml:"wallet" json:"wallet"`
	Estimator           EstimatorConfig           `yaml:"estimator" json:"estimator"`
	Submitter           SubmitterConfig           `yaml:"submitter" json:"submitter"`
	Portal              PortalConfig              `yaml:"portal" json:"portal"`
}

type GoogleSecretManagerConfig struct {
	Enabled            bool   `yaml:"enabled" json:"enabled"`
	ProjectId          string `yaml:"project_id" json:"project_id"`
	MongoSecretName    string `yaml:"mongo_secret_name" json:"mongo_secret_name"`
	MnemonicSecretName string `yaml:"mnemonic_secret_name" json:"mnemonic_secret_name"`
}

type HealthCheckConfig struct {
	Enabled        bool  `yaml:"enabled" json:"enabled"`
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}

type LoggerConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

type MongoConfig struct {
	URI           string `yaml:"uri" json:"uri"`
	Database      string `yaml:"database" json:"database"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type MetricsConfig struct {
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	ListenAddress string `yaml:"listen_address" json:"listen_address"`
}

type RegistryConfig struct {
	FixturePath string `yaml:"fixture_path" json:"fixture_path"`
}

type WalletConfig struct {
	Mnemonic        string `yaml:"mnemonic" json:"mnemonic"`
	HandshakeMillis int64  `yaml:"handshake_ms" json:"handshake_ms"`
}

type EstimatorConfig struct {
	LatencyMillis  int64 `yaml:"latency_ms" json:"latency_ms"`
	QuoteTTLMillis int64 `yaml:"quote_ttl_ms" json:"quote_ttl_ms"`
}

type SubmitterConfig struct {
	LatencyMillis int64    `yaml:"latency_ms" json:"latency_ms"`
	TimeoutMillis int64    `yaml:"timeout_ms" json:"timeout_ms"`
	FailingChains []string `yaml:"failing_chains" json:"failing_chains"`
}

type PortalConfig struct {
	AutoQuote   bool `yaml:"auto_quote" json:"auto_quote"`
	EventBuffer int  `yaml:"event_buffer" json:"event_buffer"`
}
