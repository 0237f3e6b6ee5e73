// Package config loads and validates respkv's runtime configuration,
// layering a config file, environment variables, and CLI flags through
// Viper the same way the wider toolchain's CLI commands do.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the respkv server.
type Config struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	MaxClients int `mapstructure:"max_clients"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	SweepInterval time.Duration `mapstructure:"sweep_interval"`

	TCPKeepAlive bool          `mapstructure:"tcp_keepalive"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	MetricsAddr string `mapstructure:"metrics_addr"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Host:          "127.0.0.1",
		Port:          6379,
		MaxClients:    10000,
		LogLevel:      "info",
		LogFormat:     "text",
		SweepInterval: time.Second,
		TCPKeepAlive:  true,
		ReadTimeout:   30 * time.Second,
		WriteTimeout:  30 * time.Second,
		MetricsAddr:   "127.0.0.1:6380",
	}
}

// LoadConfig loads configuration from environment variables, an optional
// config file, and whatever flags have already been bound into Viper by
// the caller.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	viper.SetConfigName("respkv")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/respkv/")
	viper.AddConfigPath("$HOME/.respkv")

	viper.SetEnvPrefix("RESPKV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("host", config.Host)
	viper.SetDefault("port", config.Port)
	viper.SetDefault("max_clients", config.MaxClients)
	viper.SetDefault("log_level", config.LogLevel)
	viper.SetDefault("log_format", config.LogFormat)
	viper.SetDefault("sweep_interval", config.SweepInterval)
	viper.SetDefault("tcp_keepalive", config.TCPKeepAlive)
	viper.SetDefault("read_timeout", config.ReadTimeout)
	viper.SetDefault("write_timeout", config.WriteTimeout)
	viper.SetDefault("metrics_addr", config.MetricsAddr)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return config, nil
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}

	if c.MaxClients < 1 {
		return fmt.Errorf("max_clients must be at least 1")
	}

	validLogLevels := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	validLevel := false
	for _, level := range validLogLevels {
		if c.LogLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log_level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive")
	}

	return nil
}

// String returns a short human-readable summary of the config.
func (c *Config) String() string {
	return fmt.Sprintf("respkv Config: %s:%d, LogLevel: %s, SweepInterval: %s",
		c.Host, c.Port, c.LogLevel, c.SweepInterval)
}
