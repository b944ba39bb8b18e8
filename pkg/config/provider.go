package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/chrissnell/wxastro/pkg/site"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// ErrInvalidConfig is returned (wrapped) when loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetSite() (*site.Site, error)
	GetServerConfig() (*ServerData, error)

	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Site   site.Site  `json:"site"`
	Server ServerData `json:"server"`
}

// ServerData holds the HTTP API listener configuration
type ServerData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty" validate:"gte=1,lte=65535"`
	Cert       string `json:"cert,omitempty" validate:"required_with=Key"`
	Key        string `json:"key,omitempty" validate:"required_with=Cert"`
}

// Addr returns the host:port the server listens on.
func (s ServerData) Addr() string {
	return fmt.Sprintf("%s:%d", s.ListenAddr, s.Port)
}

// applyDefaults fills in unset optional values.
func (c *ConfigData) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
}

// Validate checks the site and server sections.
func (c *ConfigData) Validate() error {
	if err := c.Site.Validate(); err != nil {
		return fmt.Errorf("%w: site: %v", ErrInvalidConfig, err)
	}
	if err := validate.Struct(c.Server); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return fmt.Errorf("%w: server: invalid fields %v", ErrInvalidConfig, fields)
		}
		return fmt.Errorf("%w: server: %v", ErrInvalidConfig, err)
	}
	return nil
}

// finish applies defaults and validates a freshly loaded configuration.
func finish(c *ConfigData) (*ConfigData, error) {
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
