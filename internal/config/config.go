package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Battery probe sources.
const (
	ProbeSysfs = "sysfs"
	ProbeNone  = "none"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Battery capability probing.
	ProbeSource  string
	SysfsPath    string
	ProbeTimeout time.Duration

	// Optional Kafka notice publishing.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaNoticeTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	probeTimeoutStr := sharedcfg.EnvOrDefault("PROBE_TIMEOUT", "2s")
	probeTimeout, err := time.ParseDuration(probeTimeoutStr)
	if err != nil || probeTimeout <= 0 {
		return nil, errors.New("invalid PROBE_TIMEOUT")
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ProbeSource:  sharedcfg.EnvOrDefault("PROBE_SOURCE", ProbeSysfs),
		SysfsPath:    sharedcfg.EnvOrDefault("SYSFS_PATH", "/sys"),
		ProbeTimeout: probeTimeout,

		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     brokers,
		KafkaNoticeTopic: sharedcfg.EnvOrDefault("KAFKA_NOTICE_TOPIC", "phone-temp-notices"),
	}

	switch cfg.ProbeSource {
	case ProbeSysfs, ProbeNone:
	default:
		return nil, fmt.Errorf("invalid PROBE_SOURCE %q: want %q or %q", cfg.ProbeSource, ProbeSysfs, ProbeNone)
	}
	if cfg.ProbeSource == ProbeSysfs && cfg.SysfsPath == "" {
		return nil, errors.New("SYSFS_PATH is required when PROBE_SOURCE is sysfs")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaNoticeTopic == "" {
		return nil, errors.New("KAFKA_NOTICE_TOPIC is required")
	}

	return cfg, nil
}
