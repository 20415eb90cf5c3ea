// Package serial provides the fixed-capacity byte cursor used by the file
// packet codec.
//
// A Buffer wraps a caller-owned byte slice with a position. It never grows
// and never reallocates the slice it was given: encoding into a Buffer that
// is too small fails with ErrBufferExhausted instead of appending.
//
//	data := make([]byte, packet.EncodedSize())
//	buf := serial.NewBuffer(data)
//	if err := buf.PutUint8(tag); err != nil {
//	    return err
//	}
//	if err := buf.PutUint32(sequenceIndex); err != nil {
//	    return err
//	}
//
// Each Put/Get either succeeds and advances the position by exactly the
// width of the field, or fails and leaves the position where it was. Fields
// written before a failure stay in the slice; callers must treat the whole
// buffer as unspecified after any error and must not transmit it.
//
// All integers use big-endian byte order. The byte order is a protocol
// constant shared by both endpoints and is not configurable.
//
// A Buffer borrows its slice for the duration of a single encode or decode
// call. It is not safe for concurrent use.
package serial
