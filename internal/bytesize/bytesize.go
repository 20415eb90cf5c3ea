// Package bytesize parses human-readable sizes such as "64KiB" for
// configuration values.
package bytesize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ByteSize is a size in bytes that can be unmarshaled from strings like
// "64KiB", "1Mi", "9B" or plain numbers.
//
// Supported formats:
//   - Plain numbers: 9, 65546
//   - Binary units (×1024): Ki/KiB, Mi/MiB, Gi/GiB
//   - Decimal units (×1000): K/KB, M/MB, G/GB
//   - Bytes: B
type ByteSize uint64

const (
	B  ByteSize = 1
	KB ByteSize = 1000
	MB ByteSize = 1000 * KB
	GB ByteSize = 1000 * MB

	KiB ByteSize = 1024
	MiB ByteSize = 1024 * KiB
	GiB ByteSize = 1024 * MiB
)

var byteSizePattern = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*([a-z]*)\s*$`)

var unitMultipliers = map[string]ByteSize{
	"":    B,
	"b":   B,
	"k":   KB,
	"kb":  KB,
	"m":   MB,
	"mb":  MB,
	"g":   GB,
	"gb":  GB,
	"ki":  KiB,
	"kib": KiB,
	"mi":  MiB,
	"mib": MiB,
	"gi":  GiB,
	"gib": GiB,
}

// ParseByteSize parses a human-readable byte size string.
func ParseByteSize(s string) (ByteSize, error) {
	if strings.TrimSpace(s) == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	matches := byteSizePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid byte size format: %q", s)
	}

	multiplier, ok := unitMultipliers[strings.ToLower(matches[2])]
	if !ok {
		return 0, fmt.Errorf("unknown byte size unit: %q", matches[2])
	}

	numStr := matches[1]
	if strings.Contains(numStr, ".") {
		num, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number in byte size: %q", numStr)
		}
		size, err := FromFloat(num * float64(multiplier))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", err, s)
		}
		return size, nil
	}

	num, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number in byte size: %q", numStr)
	}
	if num > math.MaxUint64/uint64(multiplier) {
		return 0, fmt.Errorf("byte size overflows: %q", s)
	}
	return ByteSize(num) * multiplier, nil
}

// FromInt converts a signed count of bytes. Negative values are rejected.
func FromInt(n int64) (ByteSize, error) {
	if n < 0 {
		return 0, fmt.Errorf("negative byte size: %d", n)
	}
	return ByteSize(n), nil
}

// FromFloat converts a possibly fractional count of bytes, truncating to
// whole bytes. Negative and out-of-range values are rejected, as is a
// non-zero value below one byte, which would otherwise collapse to zero.
func FromFloat(f float64) (ByteSize, error) {
	switch {
	case math.IsNaN(f) || f < 0:
		return 0, fmt.Errorf("invalid byte size: %v", f)
	case f >= math.MaxUint64:
		return 0, fmt.Errorf("byte size overflows: %v", f)
	case f > 0 && f < 1:
		return 0, fmt.Errorf("byte size below one byte: %v", f)
	}
	return ByteSize(math.Trunc(f)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so ByteSize can be used
// directly in mapstructure-decoded structs.
func (b *ByteSize) UnmarshalText(text []byte) error {
	size, err := ParseByteSize(string(text))
	if err != nil {
		return err
	}
	*b = size
	return nil
}

// MarshalText writes the largest binary unit that represents b exactly, so
// the result always parses back to the same value.
func (b ByteSize) MarshalText() ([]byte, error) {
	switch {
	case b == 0:
		return []byte("0"), nil
	case b%GiB == 0:
		return []byte(fmt.Sprintf("%dGiB", b/GiB)), nil
	case b%MiB == 0:
		return []byte(fmt.Sprintf("%dMiB", b/MiB)), nil
	case b%KiB == 0:
		return []byte(fmt.Sprintf("%dKiB", b/KiB)), nil
	default:
		return []byte(strconv.FormatUint(uint64(b), 10)), nil
	}
}

// String returns a rounded human-readable representation.
func (b ByteSize) String() string {
	switch {
	case b >= GiB:
		return fmt.Sprintf("%.2fGiB", float64(b)/float64(GiB))
	case b >= MiB:
		return fmt.Sprintf("%.2fMiB", float64(b)/float64(MiB))
	case b >= KiB:
		return fmt.Sprintf("%.2fKiB", float64(b)/float64(KiB))
	default:
		return fmt.Sprintf("%dB", b)
	}
}

// Int returns the size as an int, saturating at math.MaxInt.
func (b ByteSize) Int() int {
	if uint64(b) > math.MaxInt {
		return math.MaxInt
	}
	return int(b)
}
