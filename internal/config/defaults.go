package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultMaxFileSize caps individual scanned files at 10 MiB.
	DefaultMaxFileSize = 10 * 1024 * 1024
	// DefaultMaxUploadBytes caps the request body of /search-uploaded at
	// 32 MiB, enforced via http.MaxBytesReader.
	DefaultMaxUploadBytes = 32 * 1024 * 1024

	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 60 * time.Second
)

// SetViperDefaults sets all default configuration values in viper.
func SetViperDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", DefaultReadTimeout)
	viper.SetDefault("server.write_timeout", DefaultWriteTimeout)

	viper.SetDefault("search.default_extension", ".txt")
	viper.SetDefault("search.decode_policy", "replace")
	viper.SetDefault("search.max_file_size", DefaultMaxFileSize)
	viper.SetDefault("search.skip_binary", false)
	viper.SetDefault("search.max_upload_bytes", DefaultMaxUploadBytes)

	viper.SetDefault("audit.enabled", false)
	viper.SetDefault("audit.path", "./filesearch-audit.db")

	viper.SetDefault("logging.level", "info")
}
