package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/marmos91/filepacket/pkg/filepacket"
	"github.com/spf13/cobra"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		file   string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "decode [hex|-]",
		Short: "Decode a packet",
		Long: `Decode one packet and print its fields.

The packet is read from the hex argument, from stdin as hex when the
argument is "-", or as raw bytes from --file.

Examples:
  fpkt decode 020000002adeadbeef
  fpkt encode cancel --seq 3 | fpkt decode -
  fpkt decode --file packet.bin -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readPacketInput(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}

			codec := a.codec
			if cmd.Flags().Changed("strict") {
				opts := codec.Config()
				opts.StrictDecode = strict
				codec = filepacket.NewCodec(opts, a.metrics)
			}

			p, err := codec.Unmarshal(data)
			if err != nil {
				return err
			}
			return a.printer.Print(newPacketView(p))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read raw packet bytes from a file")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject bytes after the packet (overrides codec.strict_decode)")
	return cmd
}

func readPacketInput(stdin io.Reader, args []string, file string) ([]byte, error) {
	switch {
	case file != "" && len(args) > 0:
		return nil, fmt.Errorf("pass either a hex argument or --file, not both")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read packet file: %w", err)
		}
		return data, nil
	case len(args) == 0:
		return nil, fmt.Errorf("missing packet: pass hex, \"-\" or --file")
	case args[0] == "-":
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return parseHex(strings.TrimSpace(string(raw)))
	default:
		return parseHex(args[0])
	}
}
