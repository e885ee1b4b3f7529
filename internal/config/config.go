// Package config loads the process configuration from CARECHAIN_*
// environment variables.
package config

import (
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix of every setting.
const Prefix = "CARECHAIN"

// Config holds the settings of a carechain process.
type Config struct {
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	ServiceName      string `envconfig:"SERVICE_NAME" default:"carechain" validate:"notblank"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`

	Validators []string `envconfig:"VALIDATORS" default:"validator_hospital_001,validator_hospital_002,validator_research_center" validate:"min=1,unique,dive,notblank"`

	Redis Redis `envconfig:"REDIS"`

	IngestRateLimit      int           `envconfig:"INGEST_RATE_LIMIT" default:"100" validate:"gte=0"`
	PublishRetryAttempts uint          `envconfig:"PUBLISH_RETRY_ATTEMPTS" default:"3" validate:"gte=1"`
	PublishRetryDelay    time.Duration `envconfig:"PUBLISH_RETRY_DELAY" default:"200ms" validate:"gt=0"`
	PurgeAfterRejections int           `envconfig:"PURGE_AFTER_REJECTIONS" default:"0" validate:"gte=0"`
	EventClaimTTL        time.Duration `envconfig:"EVENT_CLAIM_TTL" default:"24h" validate:"gt=0"`
}

// Redis holds the message bus connection settings.
type Redis struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379" validate:"hostname_port"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0" validate:"gte=0"`
}

// Load reads and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
