package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML layout of the config file.
type fileConfig struct {
	Server struct {
		Host         string `yaml:"host"`
		Port         int    `yaml:"port"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
	} `yaml:"server"`

	Search struct {
		DefaultExtension string `yaml:"default_extension"`
		DecodePolicy     string `yaml:"decode_policy"`
		MaxFileSize      int64  `yaml:"max_file_size"`
		SkipBinary       bool   `yaml:"skip_binary"`
		MaxUploadBytes   int64  `yaml:"max_upload_bytes"`
	} `yaml:"search"`

	Audit struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"audit"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// WriteDefault writes a starter config file with default values. It refuses
// to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	var fc fileConfig
	fc.Server.Host = "0.0.0.0"
	fc.Server.Port = 8000
	fc.Server.ReadTimeout = DefaultReadTimeout.String()
	fc.Server.WriteTimeout = DefaultWriteTimeout.String()
	fc.Search.DefaultExtension = ".txt"
	fc.Search.DecodePolicy = "replace"
	fc.Search.MaxFileSize = DefaultMaxFileSize
	fc.Search.SkipBinary = false
	fc.Search.MaxUploadBytes = DefaultMaxUploadBytes
	fc.Audit.Enabled = false
	fc.Audit.Path = "./filesearch-audit.db"
	fc.Logging.Level = "info"

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
