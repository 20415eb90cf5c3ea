package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/marmos91/filepacket/internal/cli/output"
	"github.com/marmos91/filepacket/internal/cli/prompt"
	"github.com/marmos91/filepacket/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the fpkt configuration",
	}
	cmd.AddCommand(newConfigInitCmd(a))
	cmd.AddCommand(newConfigShowCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to --config, or to
$XDG_CONFIG_HOME/fpkt/config.yaml when no path is given.

Examples:
  fpkt config init
  fpkt config init --config ./fpkt.yaml --force`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = config.GetDefaultConfigPath()
			}

			if _, err := os.Stat(path); err == nil {
				ok, err := prompt.ConfirmWithForce(cmd.InOrStdin(), fmt.Sprintf("Overwrite %s", path), force)
				if errors.Is(err, prompt.ErrNotInteractive) {
					return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
				}
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}

			if err := config.SaveConfig(config.GetDefaultConfig(), path); err != nil {
				return err
			}

			output.NewPrinter(cmd.OutOrStdout(), output.FormatTable, !a.noColor).
				Success(fmt.Sprintf("Configuration written to %s", path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration after merging the file, FPKT_* environment
variables, defaults and command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.printer.Format() != output.FormatTable {
				return a.printer.Print(a.cfg)
			}
			return a.printer.Print(configTable(a.cfg))
		},
	}
}

func configTable(cfg *config.Config) *output.TableData {
	maxSize := "unlimited"
	if cfg.Codec.MaxPacketSize > 0 {
		text, _ := cfg.Codec.MaxPacketSize.MarshalText()
		maxSize = string(text)
	}

	t := output.NewTableData("Setting", "Value")
	t.AddRow("logging.level", cfg.Logging.Level)
	t.AddRow("logging.format", cfg.Logging.Format)
	t.AddRow("logging.output", cfg.Logging.Output)
	t.AddRow("metrics.enabled", fmt.Sprint(cfg.Metrics.Enabled))
	t.AddRow("metrics.include_runtime", fmt.Sprint(cfg.Metrics.IncludeRuntime))
	t.AddRow("codec.max_packet_size", maxSize)
	t.AddRow("codec.strict_decode", fmt.Sprint(cfg.Codec.StrictDecode))
	t.AddRow("output.format", cfg.Output.Format)
	return t
}
