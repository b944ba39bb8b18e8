package config

import "fmt"

// Backend names accepted by NewProvider.
const (
	BackendYAML = "yaml"
	BackendEnv  = "env"
)

// NewProvider returns the provider for backend. path is the YAML file for
// the yaml backend and an optional .env file for the env backend.
func NewProvider(backend, path string) (ConfigProvider, error) {
	switch backend {
	case BackendYAML, "":
		if path == "" {
			return nil, fmt.Errorf("yaml config backend requires a config file")
		}
		return NewYAMLProvider(path), nil
	case BackendEnv:
		return NewEnvProvider(path), nil
	default:
		return nil, fmt.Errorf("unknown config backend %q", backend)
	}
}
