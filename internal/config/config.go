package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config contains runtime configuration required by the service.
type Config struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	Port        string `envconfig:"PORT" default:"8080"`
	DBURL       string `envconfig:"DB_URL" required:"true"`
	UploadDir   string `envconfig:"UPLOAD_DIR" default:"uploads"`

	// API_KEYS format: "operator1:key1,operator2:key2". Guards admin routes.
	APIKeysRaw string            `envconfig:"API_KEYS"`
	APIKeys    map[string]string `ignored:"true"` // apiKey -> operator

	SerpAPIKey        string `envconfig:"SERPAPI_API_KEY"`
	SerpAPIBaseURL    string `envconfig:"SERPAPI_BASE_URL" default:"https://serpapi.com/search.json"`
	IngestLocation    string `envconfig:"INGEST_LOCATION" default:"Bangalore"`
	IngestMaxEvents   int    `envconfig:"INGEST_MAX_EVENTS" default:"20"`
	IngestOnStartup   bool   `envconfig:"INGEST_ON_STARTUP" default:"true"`
	IngestTimeoutSecs int    `envconfig:"INGEST_TIMEOUT_SECS" default:"30"`

	// Cron expression for recurring ingestion; empty disables it.
	IngestSchedule string `envconfig:"INGEST_SCHEDULE" default:"@every 6h"`

	OpenAIKey   string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel string `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`

	MapCenterLat float64 `envconfig:"MAP_CENTER_LAT" default:"12.97"`
	MapCenterLon float64 `envconfig:"MAP_CENTER_LON" default:"77.59"`
}

// Load reads values from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process config: %w", err)
	}
	cfg.DBURL = strings.TrimSpace(cfg.DBURL)
	if cfg.DBURL == "" {
		return Config{}, errors.New("DB_URL required")
	}
	if cfg.IngestMaxEvents < 0 {
		return Config{}, errors.New("INGEST_MAX_EVENTS must be >= 0")
	}

	keys, err := ParseAPIKeys(cfg.APIKeysRaw)
	if err != nil {
		return Config{}, err
	}
	cfg.APIKeys = keys

	return cfg, nil
}

// ParseAPIKeys parses "operator:key,operator:key" into a key -> operator map.
func ParseAPIKeys(raw string) (map[string]string, error) {
	apiKeys := map[string]string{}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return apiKeys, nil
	}

	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts := strings.SplitN(p, ":", 2)
		if len(parts) != 2 {
			return nil, errors.New(`API_KEYS must be "operator:key,operator:key"`)
		}
		operator := strings.TrimSpace(parts[0])
		key := strings.TrimSpace(parts[1])
		if operator == "" || key == "" {
			return nil, errors.New(`API_KEYS must be "operator:key,operator:key"`)
		}
		apiKeys[key] = operator
	}
	return apiKeys, nil
}
