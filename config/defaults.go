package config

import (
	"time"
)

func getDefaultChainstampConfig() *ChainstampConfig {
	return &ChainstampConfig{
		LogLevel:     "DEBUG",
		LogFormat:    "text",
		Environment:  EnvironmentDevelopment,
		ProfilerAddr: "",
		Prometheus:   getDefaultPrometheusConfig(),
		Tracing:      getDefaultTracingConfig(),
		MessageQueue: getDefaultMessageQueueConfig(),
		API:          getDefaultAPIConfig(),
		Cache:        getDefaultCacheConfig(),
		Chain:        getDefaultChainConfig(),
		Webhook:      getDefaultWebhookConfig(),
	}
}

func getDefaultPrometheusConfig() *PrometheusConfig {
	return &PrometheusConfig{
		Endpoint: "/metrics",
		Addr:     "",
	}
}

func getDefaultTracingConfig() *TracingConfig {
	return &TracingConfig{
		Enabled:  false,
		DialAddr: "",
		Sample:   100,
	}
}

func getDefaultMessageQueueConfig() *MessageQueueConfig {
	return &MessageQueueConfig{
		URL:           "",
		SubjectPrefix: "chainstamp",
	}
}

func getDefaultAPIConfig() *APIConfig {
	return &APIConfig{
		Address:        "localhost:9090",
		BasePath:       "/api/v1",
		APIKeys:        []string{},
		RequestTimeout: 30 * time.Second,
		MaxDataSize:    10 * 1024,
		MaxBatchSize:   50,
		MaxWaitTimeout: 60 * time.Second,
		RateLimit: &RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             30,
			ExpiresIn:         3 * time.Minute,
		},
	}
}

func getDefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Engine:          InMemory,
		DefaultTTL:      24 * time.Hour,
		StagingTTL:      300 * time.Second,
		VerificationTTL: time.Hour,
		StatusTTL:       time.Hour,
		LockTTL:         30 * time.Second,
		Redis: &RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		},
	}
}

func getDefaultChainConfig() *ChainConfig {
	return &ChainConfig{
		RPCURL:           "http://localhost:8545",
		ChainID:          0,
		GasLimit:         100_000,
		GasPrice:         "",
		ReceiverAddress:  "",
		ExplorerURL:      "",
		Symbol:           "ETH",
		FiatRate:         0,
		FiatCurrency:     "USD",
		PropagationDelay: 2 * time.Second,
		PollInterval:     2 * time.Second,
		LookupTimeout:    10 * time.Second,
	}
}

func getDefaultWebhookConfig() *WebhookConfig {
	return &WebhookConfig{
		Enabled:         true,
		RetryAttempts:   3,
		BaseDelay:       time.Second,
		MaxDelay:        30 * time.Second,
		Timeout:         10 * time.Second,
		Workers:         4,
		QueueSize:       1000,
		ShutdownTimeout: 10 * time.Second,
	}
}
