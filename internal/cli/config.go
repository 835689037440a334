package cli

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"faultline/pkg/dispatch/source"
	"faultline/pkg/handlers"
)

const (
	envConfigPath        = "FAULTLINE_CONFIG"
	envClickHouseDSN     = "FAULTLINE_CLICKHOUSE_DSN"
	envClickHouseTable   = "FAULTLINE_CLICKHOUSE_TABLE"
	envClickHouseTimeout = "FAULTLINE_CLICKHOUSE_TIMEOUT"
	envEventKind         = "FAULTLINE_EVENT_KIND"
	envEventAPIVersion   = "FAULTLINE_EVENT_API_VERSION"
	envPodNamespace      = "POD_NAMESPACE"
	envPodName           = "POD_NAME"

	defaultClickHouseTimeout = 5 * time.Second
	defaultEventKind         = "Pod"
)

// CLIConfig holds settings read from the environment. Command flags take
// precedence over it.
type CLIConfig struct {
	ConfigPath        string
	ClickHouseDSN     string
	ClickHouseTable   string
	ClickHouseTimeout time.Duration
	EventKind         string
	EventAPIVersion   string
	PodNamespace      string
	PodName           string
}

// LoadDotEnv loads KEY=value pairs from the given files, or from ./.env when
// none are given, without overriding variables that are already set. A
// missing default .env file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return wrapWithSentinelAndContext(ErrLoadDotEnvFailed, err, err.Error(), map[string]any{"path": ".env"})
		}
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return wrapWithSentinelAndContext(ErrLoadDotEnvFailed, err, err.Error(), map[string]any{"paths": paths})
	}
	return nil
}

// LoadCLIConfig reads the FAULTLINE_* and POD_* variables. Invalid values
// fall back to their defaults.
func LoadCLIConfig() *CLIConfig {
	return &CLIConfig{
		ConfigPath:        getEnvOrDefault(envConfigPath, source.DefaultPath),
		ClickHouseDSN:     strings.TrimSpace(os.Getenv(envClickHouseDSN)),
		ClickHouseTable:   getEnvOrDefault(envClickHouseTable, handlers.DefaultClickHouseTable),
		ClickHouseTimeout: getEnvDuration(envClickHouseTimeout, defaultClickHouseTimeout),
		EventKind:         getEnvOrDefault(envEventKind, defaultEventKind),
		EventAPIVersion:   strings.TrimSpace(os.Getenv(envEventAPIVersion)),
		PodNamespace:      strings.TrimSpace(os.Getenv(envPodNamespace)),
		PodName:           strings.TrimSpace(os.Getenv(envPodName)),
	}
}

// ClickHouseOptions returns the options for the clickhouse handler.
func (c *CLIConfig) ClickHouseOptions() handlers.ClickHouseOptions {
	return handlers.ClickHouseOptions{
		DSN:     c.ClickHouseDSN,
		Table:   c.ClickHouseTable,
		Timeout: c.ClickHouseTimeout,
	}
}

// KubeEventOptions returns the options for the kube-event handler.
func (c *CLIConfig) KubeEventOptions() handlers.KubeEventOptions {
	return handlers.KubeEventOptions{
		Kind:       c.EventKind,
		APIVersion: c.EventAPIVersion,
		Namespace:  c.PodNamespace,
		Name:       c.PodName,
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
