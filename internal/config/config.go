package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Transport names accepted in server.transport.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// EnvAPIKey overrides upstream.api_key when set in the environment.
const EnvAPIKey = "WEATHERXM_API_KEY"

// Config represents the application configuration loaded from YAML.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig controls the protocol transport and HTTP settings.
type ServerConfig struct {
	Transport   string        `yaml:"transport"`
	Address     string        `yaml:"address"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// UpstreamConfig defines the WeatherXM API endpoint and credential.
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// MetricsConfig toggles the prometheus endpoint in SSE mode.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads configuration from the supplied path or returns defaults.
// A missing API key is not a load error; the upstream client reports it
// on first use.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.Upstream.APIKey = key
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Transport:   TransportStdio,
			Address:     ":8000",
			ReadTimeout: 15 * time.Second,
			IdleTimeout: 60 * time.Second,
		},
		Upstream: UpstreamConfig{
			BaseURL: "https://api.weatherxm.com/v1",
			Timeout: 30 * time.Second,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}
