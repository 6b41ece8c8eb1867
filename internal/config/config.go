package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabaseURL  string
	RedisURL     string
	KafkaBrokers string
	NatsURL      string
	OTLPEndpoint string

	// GatewaySuccessRate is the simulated approval probability.
	GatewaySuccessRate float64
	// GatewayLatency delays the simulated charge. Zero disables it.
	GatewayLatency time.Duration

	MaxDailyLimit       float64
	MaxTransactionLimit float64
}

func Load() *Config {
	// Local runs pick up a .env file; a missing file is fine.
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", "8084"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisURL:            os.Getenv("REDIS_URL"),
		KafkaBrokers:        os.Getenv("KAFKA_BROKERS"),
		NatsURL:             os.Getenv("NATS_URL"),
		OTLPEndpoint:        getEnv("OTLP_ENDPOINT", "jaeger:4318"),
		GatewaySuccessRate:  getEnvFloat("GATEWAY_SUCCESS_RATE", 0.9),
		GatewayLatency:      getEnvDuration("GATEWAY_LATENCY", 2*time.Second),
		MaxDailyLimit:       getEnvFloat("MAX_DAILY_LIMIT", 500000),
		MaxTransactionLimit: getEnvFloat("MAX_TRANSACTION_LIMIT", 100000),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
