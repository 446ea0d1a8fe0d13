package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBPath    string
	OutputDir string

	RegistryURL       string
	RegistryIndexURL  string
	RegistryCachePath string
	RegistryOnline    bool

	FetchTimeoutMs    int
	FetchRateLimitRPS int
	FetchMaxAttempts  int

	TrackCapacity    bool
	ExtractMode      string
	CSVStrictQuoting bool
	ExportXLSX       bool

	WatchIntervalSec int

	NotifyOutboxDir string
	NotifyFrom      string
	NotifyTo        string

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		RegistryURL:       getEnv("REGISTRY_URL", "https://www.dhs.wisconsin.gov/guide/recovresdir.pdf"),
		RegistryIndexURL:  getEnv("REGISTRY_INDEX_URL", ""),
		RegistryCachePath: getEnv("REGISTRY_CACHE_PATH", filepath.Join(cwd, "data", "recovresdir.pdf")),
		RegistryOnline:    getEnvBool("REGISTRY_ONLINE", true),

		FetchTimeoutMs:    getEnvInt("FETCH_TIMEOUT_MS", 30000),
		FetchRateLimitRPS: getEnvInt("FETCH_RATE_LIMIT_RPS", 2),
		FetchMaxAttempts:  getEnvInt("FETCH_MAX_ATTEMPTS", 5),

		TrackCapacity:    getEnvBool("TRACK_CAPACITY", true),
		ExtractMode:      getEnv("EXTRACT_MODE", "plain"),
		CSVStrictQuoting: getEnvBool("CSV_STRICT_QUOTING", false),
		ExportXLSX:       getEnvBool("EXPORT_XLSX", false),

		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 3600),

		NotifyOutboxDir: getEnv("NOTIFY_OUTBOX_DIR", ""),
		NotifyFrom:      getEnv("NOTIFY_FROM", "recovres@localhost"),
		NotifyTo:        getEnv("NOTIFY_TO", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

// Logger builds the process logger from LOG_LEVEL and LOG_FORMAT.
// Unknown levels fall back to info.
func (c Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if strings.EqualFold(strings.TrimSpace(c.LogFormat), "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
