// Package config manages the letsencrypt-vesta configuration stored in YAML
// format at ~/.config/letsencrypt-vesta/config.yaml.
//
// Everything has a working default for a stock Vesta install, so the config
// file is optional. It exists for the installs that relocate the panel,
// use a certbot wrapper, or run a non-standard web server set. Example:
//
//	vesta_bin: /usr/local/vesta/bin
//	certbot: certbot
//	webroot: /etc/letsencrypt/webroot
//	live_dir: /etc/letsencrypt/live
//	email: hostmaster@example.com
//	renew_days: 60
//	servers:
//	  - httpd
//	  - nginx
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// VestaBin is the directory holding the panel's v-* commands
	VestaBin string `yaml:"vesta_bin"`
	// Certbot is the certificate client binary name or path
	Certbot string `yaml:"certbot"`
	// Webroot is the directory certbot uses for http-01 challenges
	Webroot string `yaml:"webroot"`
	// LiveDir is where the client stores issued certificate bundles
	LiveDir string `yaml:"live_dir"`
	// Email is the default contact email when -m is not given
	Email string `yaml:"email,omitempty"`
	// RenewDays is the default renewal offset when -a is not given
	RenewDays int `yaml:"renew_days,omitempty"`
	// Servers are the web servers probed and reloaded after installation
	Servers []string `yaml:"servers"`
}

// configDir is the default config directory
const configDir = ".config/letsencrypt-vesta"
const configFile = "config.yaml"

// New creates a new Config with default values
func New() *Config {
	return &Config{
		VestaBin: "/usr/local/vesta/bin",
		Certbot:  "certbot",
		Webroot:  "/etc/letsencrypt/webroot",
		LiveDir:  "/etc/letsencrypt/live",
		Servers:  []string{"httpd", "apache2", "nginx"},
	}
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir, configFile), nil
}

// Load reads the config from disk, falling back to defaults when the file
// does not exist.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Servers) == 0 {
		cfg.Servers = New().Servers
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
