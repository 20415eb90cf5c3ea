package logger

import (
	"encoding/hex"
	"log/slog"
)

// Standard field keys. Use these so packet logs can be queried uniformly.
const (
	KeyPacketType    = "packet_type"
	KeySequenceIndex = "sequence_index"
	KeyOperation     = "operation" // encode, decode
	KeySize          = "size"      // encoded packet size in bytes
	KeyCapacity      = "capacity"  // buffer capacity in bytes
	KeyChecksum      = "checksum"
	KeyByteOffset    = "byte_offset"
	KeyPath          = "path"
	KeyBytes         = "bytes" // hex dump of wire bytes
	KeyDurationMs    = "duration_ms"
	KeyError         = "error"
	KeyErrorKind     = "error_kind"
	KeyConfigFile    = "config_file"
)

func PacketType(t string) slog.Attr { return slog.String(KeyPacketType, t) }

func SequenceIndex(seq uint32) slog.Attr { return slog.Uint64(KeySequenceIndex, uint64(seq)) }

func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }

func Size(n int) slog.Attr { return slog.Int(KeySize, n) }

func Capacity(n int) slog.Attr { return slog.Int(KeyCapacity, n) }

func Checksum(s string) slog.Attr { return slog.String(KeyChecksum, s) }

func ByteOffset(off uint32) slog.Attr { return slog.Uint64(KeyByteOffset, uint64(off)) }

func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// Bytes logs raw wire bytes as lower-case hex.
func Bytes(b []byte) slog.Attr { return slog.String(KeyBytes, hex.EncodeToString(b)) }

func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

func ErrorKind(kind string) slog.Attr { return slog.String(KeyErrorKind, kind) }

func ConfigFile(path string) slog.Attr { return slog.String(KeyConfigFile, path) }

// Err returns an error attribute; a nil error yields an empty attr which the
// handlers drop.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
