package stream

import "fmt"

// FormatError is returned when a read crosses EOF or a length field is
// structurally impossible (negative count, string length overflow). It
// carries the byte offset at which the inconsistency was detected.
type FormatError struct {
	Offset int64
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error at offset %d: %s", e.Offset, e.Reason)
}

// ErrBadSignature is returned when the first four bytes of a stream match
// neither the little-endian nor the byte-swapped package signature.
type ErrBadSignature struct {
	Got uint32
}

func (e *ErrBadSignature) Error() string {
	return fmt.Sprintf("bad signature: got 0x%08X", e.Got)
}

// ErrUnsupportedVersion is returned for legacy versions outside the
// supported range (legacy < -7), or when a branch explicitly refuses.
type ErrUnsupportedVersion struct {
	LegacyVersion int32
	Reason        string
}

func (e *ErrUnsupportedVersion) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported version %d: %s", e.LegacyVersion, e.Reason)
	}
	return fmt.Sprintf("unsupported version %d", e.LegacyVersion)
}
