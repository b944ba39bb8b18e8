package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/chrissnell/wxastro/pkg/site"
)

// EnvPrefix prefixes every environment variable read by EnvProvider.
const EnvPrefix = "WXASTRO"

// envSpec maps WXASTRO_* variables onto configuration fields.
type envSpec struct {
	Latitude   float64 `envconfig:"LATITUDE" required:"true"`
	Longitude  float64 `envconfig:"LONGITUDE" required:"true"`
	Elevation  float64 `envconfig:"ELEVATION"`
	TZOffset   int     `envconfig:"TZ_OFFSET"`
	ListenAddr string  `envconfig:"LISTEN_ADDR"`
	Port       int     `envconfig:"PORT" default:"8080"`
	Cert       string  `envconfig:"TLS_CERT"`
	Key        string  `envconfig:"TLS_KEY"`
}

// EnvProvider implements ConfigProvider from environment variables, with
// an optional .env file loaded first. Variables already set in the
// environment take precedence over the file.
type EnvProvider struct {
	envFile string
	config  *ConfigData
}

// NewEnvProvider creates an environment provider. An empty envFile loads
// ./.env if it exists; a named file must exist.
func NewEnvProvider(envFile string) *EnvProvider {
	return &EnvProvider{envFile: envFile}
}

// LoadConfig reads the configuration from the environment
func (e *EnvProvider) LoadConfig() (*ConfigData, error) {
	if e.envFile != "" {
		if err := godotenv.Load(e.envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", e.envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var spec envSpec
	if err := envconfig.Process(EnvPrefix, &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	config, err := finish(&ConfigData{
		Site: site.Site{
			Latitude:      spec.Latitude,
			Longitude:     spec.Longitude,
			ElevationFt:   spec.Elevation,
			TZOffsetHours: spec.TZOffset,
		},
		Server: ServerData{
			ListenAddr: spec.ListenAddr,
			Port:       spec.Port,
			Cert:       spec.Cert,
			Key:        spec.Key,
		},
	})
	if err != nil {
		return nil, err
	}

	e.config = config
	return config, nil
}

// GetSite returns the site configuration
func (e *EnvProvider) GetSite() (*site.Site, error) {
	if e.config == nil {
		if _, err := e.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return &e.config.Site, nil
}

// GetServerConfig returns the HTTP server configuration
func (e *EnvProvider) GetServerConfig() (*ServerData, error) {
	if e.config == nil {
		if _, err := e.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return &e.config.Server, nil
}

// Close is a no-op for the environment provider
func (e *EnvProvider) Close() error {
	return nil
}
