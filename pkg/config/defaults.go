package config

import (
	"strings"

	"github.com/marmos91/filepacket/internal/bytesize"
)

// DefaultMaxPacketSize fits the largest DATA packet with room to spare.
const DefaultMaxPacketSize = 64*bytesize.KiB + 16

// ApplyDefaults fills zero-valued fields and normalizes values. Explicit
// values are preserved; booleans keep their zero value as the default.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyOutputDefaults(&cfg.Output)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)
	if cfg.Level == "WARNING" {
		cfg.Level = "WARN"
	}

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	cfg.Format = strings.ToLower(cfg.Format)

	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

func applyOutputDefaults(cfg *OutputConfig) {
	if cfg.Format == "" {
		cfg.Format = "table"
	}
	cfg.Format = strings.ToLower(cfg.Format)
}

// GetDefaultConfig returns a fully populated default configuration.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Codec: CodecConfig{
			MaxPacketSize: DefaultMaxPacketSize,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
