// Package filepacket encodes and decodes the packets of the file transfer
// protocol.
//
// Every packet starts with the same 5-byte header followed by a payload
// whose shape is selected by the header's type tag.
//
// # Header Structure (5 bytes)
//
//	┌────────┬──────┬───────────────┬──────────────────────────────────┐
//	│ Offset │ Size │ Field         │ Description                      │
//	├────────┼──────┼───────────────┼──────────────────────────────────┤
//	│   0    │  1   │ Type          │ START=0 DATA=1 END=2 CANCEL=3    │
//	│   1    │  4   │ SequenceIndex │ Assigned per transfer by caller  │
//	└────────┴──────┴───────────────┴──────────────────────────────────┘
//
// # Payloads
//
//	START   FileSize:u32  SourcePath:PathName  DestinationPath:PathName
//	DATA    ByteOffset:u32  DataSize:u16  Data[DataSize]
//	END     Checksum:u32
//	CANCEL  (none)
//
//	PathName := Length:u8 Bytes[Length]
//
// All integers are big-endian.
//
// # Sending and Receiving
//
// Senders build a variant through its constructor, size a buffer with
// EncodedSize and call Encode:
//
//	end := filepacket.NewEndPacket(42, cfdp.NewChecksum(0xDEADBEEF))
//	data := make([]byte, end.EncodedSize())
//	if err := end.Encode(serial.NewBuffer(data)); err != nil {
//	    return err
//	}
//
// Receivers decode the header first, pick the variant from its type, bind
// the header to an empty variant and decode only the payload. Decode does
// this for the whole catalog:
//
//	pkt, err := filepacket.Decode(serial.NewBuffer(data))
//
// # Contract Violations
//
// A variant may only encode or decode while its header carries the
// variant's own type. Handing a variant a header of another type,
// initializing a header twice or encoding an uninitialized header are bugs
// in the caller, not bad input, and they panic. Bad input from the wire is
// reported with serial.ErrBufferExhausted or serial.ErrMalformedData.
//
// Packets are plain values and are not safe for concurrent mutation.
package filepacket
