package filepacket

import (
	"errors"

	"github.com/marmos91/filepacket/pkg/serial"
)

var (
	// ErrPathTooLong indicates a path name longer than MaxPathLength bytes.
	ErrPathTooLong = errors.New("filepacket: path name too long")
	// ErrTrailingData indicates bytes left over after a strictly decoded packet.
	ErrTrailingData = errors.New("filepacket: trailing data after packet")
	// ErrPacketTooLarge indicates a packet above the codec's configured size limit.
	ErrPacketTooLarge = errors.New("filepacket: packet too large")
)

// ErrorKind classifies err into a short label for metrics and logs.
// A nil error is "ok".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, serial.ErrBufferExhausted):
		return "buffer_exhausted"
	case errors.Is(err, serial.ErrMalformedData):
		return "malformed_data"
	case errors.Is(err, ErrTrailingData):
		return "trailing_data"
	case errors.Is(err, ErrPacketTooLarge):
		return "packet_too_large"
	case errors.Is(err, ErrPathTooLong):
		return "path_too_long"
	default:
		return "error"
	}
}
