package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the subnetctl settings loaded from a YAML file.
type Config struct {
	// Server is the base URL of the calculator API.
	Server string `yaml:"server"`
	// TimeoutSeconds bounds every request issued to the server.
	TimeoutSeconds int `yaml:"timeoutSeconds"`
}

// LoadConfig reads the configuration from path, falling back to
// ~/.config/subnetctl.yaml and then to defaults. SUBNETCTL_SERVER overrides
// the configured server in any case.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Server:         "http://localhost:4040",
		TimeoutSeconds: 10,
	}

	explicit := path != ""
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".config", "subnetctl.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
			}
		case explicit:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if server := os.Getenv("SUBNETCTL_SERVER"); server != "" {
		cfg.Server = server
	}
	if cfg.Server == "" {
		cfg.Server = "http://localhost:4040"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 10
	}

	return cfg, nil
}
