package filepacket

import (
	"fmt"
	"time"

	"github.com/marmos91/filepacket/internal/logger"
	"github.com/marmos91/filepacket/pkg/serial"
)

// Metrics observes codec operations. Implementations must be safe for
// concurrent use. A nil Metrics disables collection.
type Metrics interface {
	// RecordEncode records one encode of a packet of type t. size is the
	// encoded size on success and the attempted size on failure.
	RecordEncode(t Type, size int, duration time.Duration, err error)

	// RecordDecode records one decode. size is the decoded packet's size,
	// excluding any trailing input, or the input length when no packet was
	// decoded. t is TypeNone when no packet was decoded.
	RecordDecode(t Type, size int, duration time.Duration, err error)
}

// CodecConfig configures a Codec.
type CodecConfig struct {
	// MaxPacketSize bounds encoded packets and decode inputs. Zero means no
	// limit beyond the wire format.
	MaxPacketSize int

	// StrictDecode rejects inputs with bytes after the packet.
	StrictDecode bool
}

// Codec wraps the package-level Marshal and Unmarshal functions with a size
// limit, metrics and debug logging. It holds no mutable state and is safe
// for concurrent use.
type Codec struct {
	cfg     CodecConfig
	metrics Metrics
}

// NewCodec creates a Codec. m may be nil.
func NewCodec(cfg CodecConfig, m Metrics) *Codec {
	return &Codec{cfg: cfg, metrics: m}
}

// Config returns the codec configuration.
func (c *Codec) Config() CodecConfig {
	return c.cfg
}

// Marshal encodes p into a new slice.
func (c *Codec) Marshal(p Packet) ([]byte, error) {
	start := time.Now()
	size := p.EncodedSize()

	var data []byte
	err := c.checkSize(size)
	if err == nil {
		data, err = Marshal(p)
	}
	c.observeEncode(p, size, start, err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// MarshalTo encodes p into dst and returns the number of bytes written.
func (c *Codec) MarshalTo(dst []byte, p Packet) (int, error) {
	start := time.Now()
	size := p.EncodedSize()

	n := 0
	err := c.checkSize(size)
	if err == nil {
		n, err = MarshalTo(dst, p)
	}
	c.observeEncode(p, size, start, err)
	return n, err
}

// Unmarshal decodes one packet from data, honoring StrictDecode. Metrics
// record the decoded packet's size, or the input length when decoding
// failed.
func (c *Codec) Unmarshal(data []byte) (Packet, error) {
	start := time.Now()

	t, size := TypeNone, len(data)
	var p Packet
	err := c.checkSize(len(data))
	if err == nil {
		buf := serial.NewBuffer(data)
		p, err = Decode(buf)
		if err == nil {
			t, size = p.Type(), p.EncodedSize()
			if c.cfg.StrictDecode {
				err = checkTrailing(buf, p)
			}
		}
	}

	if c.metrics != nil {
		c.metrics.RecordDecode(t, size, time.Since(start), err)
	}

	if err != nil {
		if logger.IsDebugEnabled() {
			logger.Debug("packet decode failed",
				logger.Operation("decode"),
				logger.PacketType(t.String()),
				logger.Capacity(len(data)),
				logger.Bytes(data[:min(len(data), maxLoggedBytes)]),
				logger.ErrorKind(ErrorKind(err)),
				logger.Err(err))
		}
		return nil, fmt.Errorf("decode packet: %w", err)
	}

	if logger.IsDebugEnabled() {
		logger.Debug("packet decoded", append(packetAttrs(p),
			logger.Operation("decode"),
			logger.DurationMs(logger.Duration(start)))...)
	}
	return p, nil
}

func (c *Codec) checkSize(size int) error {
	if c.cfg.MaxPacketSize > 0 && size > c.cfg.MaxPacketSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrPacketTooLarge, size, c.cfg.MaxPacketSize)
	}
	return nil
}

func (c *Codec) observeEncode(p Packet, size int, start time.Time, err error) {
	if c.metrics != nil {
		c.metrics.RecordEncode(p.Type(), size, time.Since(start), err)
	}
	if err != nil {
		logger.Debug("packet encode failed",
			logger.Operation("encode"),
			logger.PacketType(p.Type().String()),
			logger.Size(size),
			logger.ErrorKind(ErrorKind(err)),
			logger.Err(err))
		return
	}
	if logger.IsDebugEnabled() {
		logger.Debug("packet encoded", append(packetAttrs(p),
			logger.Operation("encode"),
			logger.DurationMs(logger.Duration(start)))...)
	}
}

// maxLoggedBytes caps the input dumped when a decode fails.
const maxLoggedBytes = 32

// packetAttrs returns the log fields describing p.
func packetAttrs(p Packet) []any {
	attrs := []any{
		logger.PacketType(p.Type().String()),
		logger.SequenceIndex(p.Header().SequenceIndex()),
		logger.Size(p.EncodedSize()),
	}
	switch p := p.(type) {
	case *StartPacket:
		attrs = append(attrs, logger.Path(p.SourcePath().String()))
	case *DataPacket:
		attrs = append(attrs, logger.ByteOffset(p.ByteOffset()))
	case *EndPacket:
		attrs = append(attrs, logger.Checksum(p.Checksum().String()))
	}
	return attrs
}
