// Package config loads the local configuration file. The loaded value is
// returned to the caller and threaded through constructors explicitly;
// there is no package-level configuration state.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variable fallbacks for the provider credentials, so tokens
// can stay out of the config file.
const (
	EnvAccessToken = "SACENV_ACCESS_TOKEN"
	EnvSecretToken = "SACENV_SECRET_TOKEN"
)

// Config is the root of the configuration file.
type Config struct {
	Provider ProviderConfig `yaml:"provider" validate:"required"`
	Server   ServerConfig   `yaml:"server"`
	Remote   RemoteConfig   `yaml:"remote" validate:"required"`
}

// ProviderConfig holds the cloud API credentials and zone.
type ProviderConfig struct {
	// Zone is the provider zone the environment lives in.
	Zone string `yaml:"zone" validate:"required"`

	// AccessToken and SecretToken authenticate API calls. Either may be
	// empty in the file and supplied through the environment instead.
	AccessToken string `yaml:"access_token"`
	SecretToken string `yaml:"secret_token"`

	// BaseURL overrides the API endpoint; for tests.
	BaseURL string `yaml:"base_url"`
}

// ServerConfig feeds the setup script templates.
type ServerConfig struct {
	// HostName is assigned to the provisioned host.
	HostName string `yaml:"host_name"`

	// Packages are installed during setup, in order.
	Packages []string `yaml:"packages"`

	// GitName and GitEmail configure the login user's git identity.
	GitName  string `yaml:"git_name"`
	GitEmail string `yaml:"git_email"`

	// WireGuardPrivateKey and WireGuardAddress, when set, configure a
	// wg0 interface during setup.
	WireGuardPrivateKey string `yaml:"wireguard_private_key"`
	WireGuardAddress    string `yaml:"wireguard_address"`
}

// RemoteConfig describes how to reach the host once provisioned.
type RemoteConfig struct {
	// User is the SSH login user.
	User string `yaml:"user" validate:"required"`

	// PrivateKeyPath is the key used for SSH sessions.
	PrivateKeyPath string `yaml:"private_key_path" validate:"required"`

	// PrivateKeyPassphrase unlocks the key when it is encrypted.
	PrivateKeyPassphrase string `yaml:"private_key_passphrase"`
}

// Load reads, parses, and validates the configuration at path. Credential
// fields left empty in the file fall back to the environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if cfg.Provider.AccessToken == "" {
		cfg.Provider.AccessToken = os.Getenv(EnvAccessToken)
	}
	if cfg.Provider.SecretToken == "" {
		cfg.Provider.SecretToken = os.Getenv(EnvSecretToken)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Provider.AccessToken == "" || cfg.Provider.SecretToken == "" {
		return nil, fmt.Errorf("provider tokens missing: set them in the config file or via %s/%s", EnvAccessToken, EnvSecretToken)
	}
	return &cfg, nil
}
