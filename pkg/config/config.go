// Package config loads fpkt configuration from a YAML file, FPKT_*
// environment variables and built-in defaults.
//
// Precedence, highest first:
//  1. Environment variables (FPKT_LOGGING_LEVEL, FPKT_CODEC_MAX_PACKET_SIZE, ...)
//  2. Configuration file
//  3. Defaults
//
// Command-line flags are applied on top by the CLI after Load returns.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/marmos91/filepacket/internal/bytesize"
	"github.com/marmos91/filepacket/pkg/filepacket"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the top-level fpkt configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" json:"logging" yaml:"logging"`

	Metrics MetricsConfig `mapstructure:"metrics" json:"metrics" yaml:"metrics"`

	Codec CodecConfig `mapstructure:"codec" json:"codec" yaml:"codec"`

	Output OutputConfig `mapstructure:"output" json:"output" yaml:"output"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level (DEBUG, INFO, WARN, ERROR).
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR" json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `mapstructure:"format" validate:"required,oneof=text json" json:"format" yaml:"format"`

	// Output is stdout, stderr or a file path.
	Output string `mapstructure:"output" validate:"required" json:"output" yaml:"output"`
}

// MetricsConfig controls codec instrumentation.
type MetricsConfig struct {
	// Enabled turns on the Prometheus registry. The CLI dumps it to stderr
	// after each command.
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`

	// IncludeRuntime adds Go runtime and process collectors.
	IncludeRuntime bool `mapstructure:"include_runtime" json:"include_runtime" yaml:"include_runtime"`
}

// CodecConfig mirrors filepacket.CodecConfig with file-friendly types.
type CodecConfig struct {
	// MaxPacketSize bounds packets handled by the codec. Accepts "64KiB" etc.
	// Zero disables the limit.
	MaxPacketSize bytesize.ByteSize `mapstructure:"max_packet_size" validate:"omitempty,gte=5" json:"max_packet_size" yaml:"max_packet_size"`

	// StrictDecode rejects input with bytes after the packet.
	StrictDecode bool `mapstructure:"strict_decode" json:"strict_decode" yaml:"strict_decode"`
}

// OutputConfig controls how the CLI renders decoded packets.
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"required,oneof=table json yaml cbor" json:"format" yaml:"format"`
}

// CodecOptions converts the section into the codec's own configuration.
func (c CodecConfig) CodecOptions() filepacket.CodecConfig {
	return filepacket.CodecConfig{
		MaxPacketSize: c.MaxPacketSize.Int(),
		StrictDecode:  c.StrictDecode,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tag constraints.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load reads configuration from configPath, or from the default location
// when configPath is empty. A missing file is not an error: defaults and
// environment variables still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes cfg as YAML, creating the parent directory.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures env support, defaults and the config file search.
func setupViper(v *viper.Viper, configPath string) {
	// Example: FPKT_CODEC_STRICT_DECODE=true
	v.SetEnvPrefix("FPKT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Env lookups only cover keys viper already knows about.
	setViperDefaults(v, GetDefaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

func setViperDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.include_runtime", d.Metrics.IncludeRuntime)
	v.SetDefault("codec.max_packet_size", uint64(d.Codec.MaxPacketSize))
	v.SetDefault("codec.strict_decode", d.Codec.StrictDecode)
	v.SetDefault("output.format", d.Output.Format)
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return true, nil
}

func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
	)
}

// byteSizeDecodeHook converts strings and numbers to bytesize.ByteSize so
// files and env vars can say "64KiB".
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}

		v := reflect.ValueOf(data)
		switch v.Kind() {
		case reflect.String:
			return bytesize.ParseByteSize(v.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return bytesize.FromInt(v.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return bytesize.ByteSize(v.Uint()), nil
		case reflect.Float32, reflect.Float64:
			// YAML often deserializes numbers as float64
			return bytesize.FromFloat(v.Float())
		default:
			return data, nil
		}
	}
}

// getConfigDir returns $XDG_CONFIG_HOME/fpkt, ~/.config/fpkt, or "." when
// the home directory is unknown.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "fpkt")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "fpkt")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}
