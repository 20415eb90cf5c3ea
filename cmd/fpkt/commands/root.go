// Package commands implements the fpkt command tree.
package commands

import (
	"fmt"
	"strings"

	"github.com/marmos91/filepacket/internal/cli/output"
	"github.com/marmos91/filepacket/internal/logger"
	"github.com/marmos91/filepacket/pkg/config"
	"github.com/marmos91/filepacket/pkg/filepacket"
	"github.com/marmos91/filepacket/pkg/metrics"
	"github.com/spf13/cobra"

	// Import prometheus metrics to register init() functions
	_ "github.com/marmos91/filepacket/pkg/metrics/prometheus"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// skipSetup marks commands that must run without loading configuration.
const skipSetup = "fpkt/skip-setup"

// app carries global flag values and the state built from them before a
// subcommand runs.
type app struct {
	configPath string
	output     string
	logLevel   string
	noColor    bool

	cfg     *config.Config
	metrics filepacket.Metrics
	codec   *filepacket.Codec
	printer *output.Printer
}

// Execute builds the command tree and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns a fresh command tree. Each call has its own flag state.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "fpkt",
		Short: "Encode and decode file transfer packets",
		Long: `fpkt encodes and decodes the START, DATA, END and CANCEL packets of the
file transfer protocol.

Configuration is read from $XDG_CONFIG_HOME/fpkt/config.yaml, FPKT_*
environment variables and command-line flags, in increasing priority.

Use "fpkt [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] == "true" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg == nil || !a.cfg.Metrics.Enabled {
				return nil
			}
			reg := metrics.GetRegistry()
			if reg == nil {
				return nil
			}
			return dumpMetrics(cmd.ErrOrStderr(), reg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config file (default: $XDG_CONFIG_HOME/fpkt/config.yaml)")
	flags.StringVarP(&a.output, "output", "o", "", "Output format (table|json|yaml|cbor)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newEncodeCmd(a))
	rootCmd.AddCommand(newDecodeCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger,
// metrics and codec used by the subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Logging.Level = strings.ToUpper(a.logLevel)
	}
	if a.output != "" {
		cfg.Output.Format = strings.ToLower(a.output)
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var m filepacket.Metrics
	if cfg.Metrics.Enabled {
		metrics.ResetRegistry()
		metrics.InitRegistry(cfg.Metrics.IncludeRuntime)
		m = metrics.NewCodecMetrics()
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.metrics = m
	a.codec = filepacket.NewCodec(cfg.Codec.CodecOptions(), m)
	a.printer = output.NewPrinter(cmd.OutOrStdout(), format, !a.noColor)

	logger.Debug("configuration loaded",
		logger.ConfigFile(a.configPath),
		logger.Operation(cmd.Name()))
	return nil
}
