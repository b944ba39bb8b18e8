package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/chrissnell/wxastro/pkg/site"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", y.filename, err)
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Site   SiteYAML   `yaml:"site"`
		Server ServerYAML `yaml:"server,omitempty"`
	}

	err = yaml.UnmarshalStrict(cfgFile, &yamlConfig)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", y.filename, err)
	}

	config := &ConfigData{
		Site: site.Site{
			Latitude:      yamlConfig.Site.Latitude,
			Longitude:     yamlConfig.Site.Longitude,
			ElevationFt:   yamlConfig.Site.Elevation,
			TZOffsetHours: yamlConfig.Site.TZOffset,
		},
		Server: ServerData{
			ListenAddr: yamlConfig.Server.ListenAddr,
			Port:       yamlConfig.Server.Port,
			Cert:       yamlConfig.Server.Cert,
			Key:        yamlConfig.Server.Key,
		},
	}

	config, err = finish(config)
	if err != nil {
		return nil, err
	}

	y.config = config
	return config, nil
}

// GetSite returns the site configuration
func (y *YAMLProvider) GetSite() (*site.Site, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Site, nil
}

// GetServerConfig returns the HTTP server configuration
func (y *YAMLProvider) GetServerConfig() (*ServerData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Server, nil
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// SiteYAML is the site section of the config file
type SiteYAML struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Elevation float64 `yaml:"elevation,omitempty"`
	TZOffset  int     `yaml:"tz-offset,omitempty"`
}

// ServerYAML is the server section of the config file
type ServerYAML struct {
	ListenAddr string `yaml:"listen-addr,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
}
