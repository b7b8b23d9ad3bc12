package config

import (
	"time"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"

	InMemory = "in-memory"
	Redis    = "redis"
)

type ChainstampConfig struct {
	LogLevel     string              `mapstructure:"logLevel"`
	LogFormat    string              `mapstructure:"logFormat"`
	Environment  string              `mapstructure:"environment"`
	ProfilerAddr string              `mapstructure:"profilerAddr"`
	Prometheus   *PrometheusConfig   `mapstructure:"prometheus"`
	Tracing      *TracingConfig      `mapstructure:"tracing"`
	MessageQueue *MessageQueueConfig `mapstructure:"messageQueue"`
	API          *APIConfig          `mapstructure:"api"`
	Cache        *CacheConfig        `mapstructure:"cache"`
	Chain        *ChainConfig        `mapstructure:"chain"`
	Webhook      *WebhookConfig      `mapstructure:"webhook"`
}

type PrometheusConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Addr     string `mapstructure:"addr"`
}

func (p *PrometheusConfig) IsEnabled() bool {
	return p != nil && p.Addr != "" && p.Endpoint != ""
}

type TracingConfig struct {
	Enabled    bool              `mapstructure:"enabled"`
	DialAddr   string            `mapstructure:"dialAddr"`
	Sample     int               `mapstructure:"sample"`
	Attributes map[string]string `mapstructure:"attributes"`
}

func (c *ChainstampConfig) IsTracingEnabled() bool {
	return c.Tracing != nil && c.Tracing.Enabled && c.Tracing.DialAddr != ""
}

func (c *ChainstampConfig) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

type MessageQueueConfig struct {
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subjectPrefix"`
}

type APIConfig struct {
	Address             string           `mapstructure:"address"`
	BasePath            string           `mapstructure:"basePath"`
	APIKeys             []string         `mapstructure:"apiKeys"`
	RequestTimeout      time.Duration    `mapstructure:"requestTimeout"`
	RequestExtendedLogs bool             `mapstructure:"requestExtendedLogs"`
	MaxDataSize         int              `mapstructure:"maxDataSize"`
	MaxBatchSize        int              `mapstructure:"maxBatchSize"`
	MaxWaitTimeout      time.Duration    `mapstructure:"maxWaitTimeout"`
	RateLimit           *RateLimitConfig `mapstructure:"rateLimit"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64       `mapstructure:"requestsPerSecond"`
	Burst             int           `mapstructure:"burst"`
	ExpiresIn         time.Duration `mapstructure:"expiresIn"`
}

func (r *RateLimitConfig) IsEnabled() bool {
	return r != nil && r.RequestsPerSecond > 0
}

type CacheConfig struct {
	Engine          string        `mapstructure:"engine"`
	DefaultTTL      time.Duration `mapstructure:"defaultTTL"`
	StagingTTL      time.Duration `mapstructure:"stagingTTL"`
	VerificationTTL time.Duration `mapstructure:"verificationTTL"`
	StatusTTL       time.Duration `mapstructure:"statusTTL"`
	LockTTL         time.Duration `mapstructure:"lockTTL"`
	Redis           *RedisConfig  `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ChainConfig struct {
	RPCURL           string        `mapstructure:"rpcURL"`
	ChainID          uint64        `mapstructure:"chainID"`
	GasLimit         uint64        `mapstructure:"gasLimit"`
	GasPrice         string        `mapstructure:"gasPrice"`
	ReceiverAddress  string        `mapstructure:"receiverAddress"`
	ExplorerURL      string        `mapstructure:"explorerURL"`
	Symbol           string        `mapstructure:"symbol"`
	FiatRate         float64       `mapstructure:"fiatRate"`
	FiatCurrency     string        `mapstructure:"fiatCurrency"`
	PropagationDelay time.Duration `mapstructure:"propagationDelay"`
	PollInterval     time.Duration `mapstructure:"pollInterval"`
	LookupTimeout    time.Duration `mapstructure:"lookupTimeout"`
}

type WebhookConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	BaseDelay       time.Duration `mapstructure:"baseDelay"`
	MaxDelay        time.Duration `mapstructure:"maxDelay"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Workers         int           `mapstructure:"workers"`
	QueueSize       int           `mapstructure:"queueSize"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}
