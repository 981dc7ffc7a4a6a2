// Package config loads larascope.yml, the optional per-project
// configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the larascope configuration.
type Config struct {
	ProjectName string      `mapstructure:"project_name"`
	Output      string      `mapstructure:"output"`
	Paths       PathsConfig `mapstructure:"paths"`
	Serve       ServeConfig `mapstructure:"serve"`
}

// PathsConfig overrides the conventional scan paths, each relative to
// the project root.
type PathsConfig struct {
	Models      []string `mapstructure:"models"`
	Controllers []string `mapstructure:"controllers"`
	Services    []string `mapstructure:"services"`
	Routes      []string `mapstructure:"routes"`
}

// ServeConfig configures the documentation preview server.
type ServeConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Load reads larascope.yml (or .yaml) from root. A missing file yields
// the defaults; a malformed one is an error.
func Load(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("output", "docs")
	v.SetDefault("serve.host", "localhost")
	v.SetDefault("serve.port", 8000)

	v.SetConfigName("larascope")
	v.SetConfigType("yaml")
	v.AddConfigPath(root)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// InProject reports whether dir looks like a Laravel project root:
// either a larascope config or the framework's own markers.
func InProject(dir string) bool {
	for _, marker := range []string{"larascope.yml", "larascope.yaml", "artisan", "composer.json"} {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks upward from dir looking for a project marker.
func FindProjectRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if InProject(abs) {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not inside a Laravel project (no composer.json or larascope.yml found)")
		}
		abs = parent
	}
}
