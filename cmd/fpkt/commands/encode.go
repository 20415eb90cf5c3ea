package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/marmos91/filepacket/internal/cli/output"
	"github.com/marmos91/filepacket/pkg/bufpool"
	"github.com/marmos91/filepacket/pkg/cfdp"
	"github.com/marmos91/filepacket/pkg/filepacket"
	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a packet",
		Long: `Encode a packet and print its wire bytes as hex.

With the table output format only the hex string is printed, so the result
can be piped straight into "fpkt decode -".

Examples:
  # END packet carrying a checksum
  fpkt encode end --seq 42 --checksum 0xDEADBEEF

  # START packet
  fpkt encode start --seq 0 --file-size 1024 --source a.bin --destination /tmp/a.bin

  # DATA packet from hex or text
  fpkt encode data --seq 1 --offset 0 --data-hex cafebabe
  fpkt encode data --seq 2 --offset 4 --data "hello"

  # CANCEL packet
  fpkt encode cancel --seq 3`,
	}

	cmd.AddCommand(newEncodeStartCmd(a))
	cmd.AddCommand(newEncodeDataCmd(a))
	cmd.AddCommand(newEncodeEndCmd(a))
	cmd.AddCommand(newEncodeCancelCmd(a))
	return cmd
}

func newEncodeStartCmd(a *app) *cobra.Command {
	var (
		seq, fileSize uint32
		source, dest  string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Encode a START packet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := filepacket.NewPathName(source)
			if err != nil {
				return fmt.Errorf("source path: %w", err)
			}
			dst, err := filepacket.NewPathName(dest)
			if err != nil {
				return fmt.Errorf("destination path: %w", err)
			}
			return a.writeEncoded(filepacket.NewStartPacket(seq, fileSize, src, dst))
		},
	}

	cmd.Flags().Uint32Var(&seq, "seq", 0, "Sequence index")
	cmd.Flags().Uint32Var(&fileSize, "file-size", 0, "Size of the file being transferred")
	cmd.Flags().StringVar(&source, "source", "", "Source path (max 255 bytes)")
	cmd.Flags().StringVar(&dest, "destination", "", "Destination path (max 255 bytes)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("destination")
	return cmd
}

func newEncodeDataCmd(a *app) *cobra.Command {
	var (
		seq, offset   uint32
		dataHex, text string
	)

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Encode a DATA packet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chunk := []byte(text)
			if cmd.Flags().Changed("data-hex") {
				var err error
				if chunk, err = parseHex(dataHex); err != nil {
					return err
				}
			}
			if len(chunk) > filepacket.MaxDataSize {
				return fmt.Errorf("data chunk of %d bytes exceeds %d", len(chunk), filepacket.MaxDataSize)
			}
			return a.writeEncoded(filepacket.NewDataPacket(seq, offset, chunk))
		},
	}

	cmd.Flags().Uint32Var(&seq, "seq", 0, "Sequence index")
	cmd.Flags().Uint32Var(&offset, "offset", 0, "Byte offset of the chunk in the file")
	cmd.Flags().StringVar(&dataHex, "data-hex", "", "Chunk as hex")
	cmd.Flags().StringVar(&text, "data", "", "Chunk as literal text")
	cmd.MarkFlagsMutuallyExclusive("data-hex", "data")
	return cmd
}

func newEncodeEndCmd(a *app) *cobra.Command {
	var (
		seq      uint32
		checksum string
	)

	cmd := &cobra.Command{
		Use:   "end",
		Short: "Encode an END packet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseUint(checksum, 0, 32)
			if err != nil {
				return fmt.Errorf("invalid checksum %q: %w", checksum, err)
			}
			return a.writeEncoded(filepacket.NewEndPacket(seq, cfdp.NewChecksum(uint32(v))))
		},
	}

	cmd.Flags().Uint32Var(&seq, "seq", 0, "Sequence index")
	cmd.Flags().StringVar(&checksum, "checksum", "0", "File checksum (decimal or 0x-prefixed hex)")
	return cmd
}

func newEncodeCancelCmd(a *app) *cobra.Command {
	var seq uint32

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Encode a CANCEL packet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.writeEncoded(filepacket.NewCancelPacket(seq))
		},
	}

	cmd.Flags().Uint32Var(&seq, "seq", 0, "Sequence index")
	return cmd
}

// writeEncoded encodes p into a pooled buffer and prints the result.
func (a *app) writeEncoded(p filepacket.Packet) error {
	buf := bufpool.Get(p.EncodedSize())
	defer bufpool.Put(buf)

	n, err := a.codec.MarshalTo(buf, p)
	if err != nil {
		return fmt.Errorf("encode %s packet: %w", p.Type(), err)
	}
	encoded := hex.EncodeToString(buf[:n])

	if a.printer.Format() == output.FormatTable {
		a.printer.Println(encoded)
		return nil
	}
	return a.printer.Print(encodedView{
		Type:          p.Type().String(),
		SequenceIndex: p.Header().SequenceIndex(),
		Size:          n,
		Hex:           encoded,
	})
}
