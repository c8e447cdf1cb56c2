// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"logdeck/internal/engine"
	"logdeck/internal/model"
)

// Service is one configured service entry.
type Service struct {
	Name      string `mapstructure:"name"`
	Container string `mapstructure:"container"`
	File      string `mapstructure:"file"`
}

// Web configures the browser front end.
type Web struct {
	Listen string `mapstructure:"listen"`
	Token  string `mapstructure:"token"`
}

// Config is the full application configuration, read from a YAML file with
// LOGDECK_* environment overrides.
type Config struct {
	Services   []Service `mapstructure:"services"`
	Tail       int       `mapstructure:"tail"`
	Capacity   int       `mapstructure:"capacity"`
	DockerHost string    `mapstructure:"docker_host"`
	Web        Web       `mapstructure:"web"`
}

// Load reads the configuration. With an empty path the default locations
// are searched (~/.config/logdeck, /etc/logdeck).
func Load(path string) (*Config, error) {
	v := viper.New()

	// Every key needs a default, even an empty one: viper only applies
	// environment overrides to keys it already knows about.
	v.SetDefault("tail", engine.DefaultTail)
	v.SetDefault("capacity", engine.DefaultCapacity)
	v.SetDefault("docker_host", "")
	v.SetDefault("web.listen", "127.0.0.1:8080")
	v.SetDefault("web.token", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.config/logdeck")
		v.AddConfigPath("/etc/logdeck")
	}

	v.SetEnvPrefix("LOGDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file in the default locations; env and defaults only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.Services) == 0 {
		return nil, errors.New("no services configured: add a 'services' list to the config file")
	}
	for i, svc := range cfg.Services {
		if svc.Name == "" {
			return nil, fmt.Errorf("service %d: name is required", i+1)
		}
		if svc.Container == "" {
			cfg.Services[i].Container = svc.Name
		}
	}

	return &cfg, nil
}

// Descriptors converts the configured services into engine descriptors.
func (c *Config) Descriptors() []model.ServiceDescriptor {
	out := make([]model.ServiceDescriptor, 0, len(c.Services))
	for _, svc := range c.Services {
		out = append(out, model.ServiceDescriptor{
			Name:      svc.Name,
			Container: svc.Container,
			File:      svc.File,
		})
	}
	return out
}
