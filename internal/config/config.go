package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the quoting service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server.
// - Workers: The number of concurrent quote workers.
// - Geocoder: Settings of the geocoding provider.
// - Pickup: The region pickups must lie in.
type Config struct {
	Env      string         `yaml:"env"`             // Env is the current environment: local, development, production.
	Port     int            `yaml:"monitoring.port"` // Port is the monitoring server port.
	Workers  int            `yaml:"quote.workers"`   // The number of concurrent workers for processing quotes.
	Geocoder GeocoderConfig `yaml:"geocoder"`        // Geocoder holds the geocoding provider configuration.
	Pickup   RegionConfig   `yaml:"pickup"`          // Pickup holds the allowed pickup region.
}

// GeocoderConfig holds the settings of the geocoding provider.
type GeocoderConfig struct {
	ProviderType string        `yaml:"provider.type"` // ProviderType specifies which geocoding provider to use.
	APIKey       string        `yaml:"api_key"`       // The API key (required for Google).
	BaseURL      string        `yaml:"base_url"`      // Base URL of the Nominatim instance.
	UserAgent    string        `yaml:"user_agent"`    // Client identification sent to the provider.
	Timeout      time.Duration `yaml:"timeout"`       // HTTP timeout of a single lookup.
	RateInterval time.Duration `yaml:"rate_interval"` // Minimum spacing between two lookups.
}

// RegionConfig names the district and state pickups are restricted to.
type RegionConfig struct {
	District string `yaml:"district"`
	State    string `yaml:"state"`
}

// defaults are applied when neither the environment nor the .env file sets a key.
var defaults = map[string]string{
	"CABFARE_ENV":             "production",
	"CABFARE_HEALTH_PORT":     "8080",
	"CABFARE_WORKERS":         "4",
	"CABFARE_PROVIDER_TYPE":   "nominatim",
	"NOMINATIM_API_URL":       "https://nominatim.openstreetmap.org",
	"CABFARE_USER_AGENT":      "SaminToursTravels/1.0",
	"CABFARE_HTTP_TIMEOUT":    "10s",
	"CABFARE_RATE_INTERVAL":   "1s",
	"CABFARE_PICKUP_DISTRICT": "Samastipur",
	"CABFARE_PICKUP_STATE":    "Bihar",
}

// MustLoad loads the configuration from the environment and an optional
// .env file (path taken from CABFARE_ENV_FILE) and returns a Config struct.
// It panics when a numeric or duration setting cannot be parsed.
func MustLoad() *Config {
	envFile := ".env"
	v := viper.New()
	v.AutomaticEnv()
	if path := v.GetString("CABFARE_ENV_FILE"); path != "" {
		envFile = path
	}
	_ = godotenv.Load(envFile)

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	healthPort, err := strconv.Atoi(v.GetString("CABFARE_HEALTH_PORT"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("CABFARE_WORKERS"))
	if err != nil || workers < 1 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	timeout, err := time.ParseDuration(v.GetString("CABFARE_HTTP_TIMEOUT"))
	if err != nil {
		panic("failed to parse http timeout from configuration")
	}

	rateInterval, err := time.ParseDuration(v.GetString("CABFARE_RATE_INTERVAL"))
	if err != nil {
		panic("failed to parse rate interval from configuration")
	}

	return &Config{
		Env:     v.GetString("CABFARE_ENV"),
		Port:    healthPort,
		Workers: workers,
		Geocoder: GeocoderConfig{
			ProviderType: v.GetString("CABFARE_PROVIDER_TYPE"),
			APIKey:       v.GetString("CABFARE_PROVIDER_KEY"),
			BaseURL:      v.GetString("NOMINATIM_API_URL"),
			UserAgent:    v.GetString("CABFARE_USER_AGENT"),
			Timeout:      timeout,
			RateInterval: rateInterval,
		},
		Pickup: RegionConfig{
			District: v.GetString("CABFARE_PICKUP_DISTRICT"),
			State:    v.GetString("CABFARE_PICKUP_STATE"),
		},
	}
}
