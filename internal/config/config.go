// Package config layers service configuration from defaults, an optional
// YAML file, FILESEARCH_ environment variables, and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvKeyReplacer maps nested config keys to env var segments, so
// server.port becomes FILESEARCH_SERVER_PORT.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// Config holds the resolved runtime configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	DefaultExtension string
	DecodePolicy     string
	MaxFileSize      int64
	SkipBinary       bool
	MaxUploadBytes   int64

	AuditEnabled bool
	AuditPath    string

	LogLevel string
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FromViper builds a Config from the current viper state.
func FromViper() *Config {
	return &Config{
		Host:             viper.GetString("server.host"),
		Port:             viper.GetInt("server.port"),
		ReadTimeout:      viper.GetDuration("server.read_timeout"),
		WriteTimeout:     viper.GetDuration("server.write_timeout"),
		DefaultExtension: viper.GetString("search.default_extension"),
		DecodePolicy:     viper.GetString("search.decode_policy"),
		MaxFileSize:      viper.GetInt64("search.max_file_size"),
		SkipBinary:       viper.GetBool("search.skip_binary"),
		MaxUploadBytes:   viper.GetInt64("search.max_upload_bytes"),
		AuditEnabled:     viper.GetBool("audit.enabled"),
		AuditPath:        viper.GetString("audit.path"),
		LogLevel:         viper.GetString("logging.level"),
	}
}
