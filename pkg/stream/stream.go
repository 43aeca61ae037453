// Package stream provides an endian-aware byte cursor over package files.
//
// Byte order is fixed once at construction, detected from the package
// signature tag, and never re-derived mid-parse. Every typed read can
// optionally be traced as a (name, offset, size) triple for diagnostics
// without altering the parsed value.
package stream

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Order identifies the byte order a Stream was constructed with.
type Order int

const (
	LittleEndian Order = iota
	BigEndian
)

// TagLittle and TagSwapped are the two signature tags a package may open
// with; TagSwapped is TagLittle's bytes read in the other order.
const (
	TagLittle  uint32 = 0x9E2A83C1
	TagSwapped uint32 = 0xC1832A9E
)

// DetectOrder inspects a raw signature tag and returns the byte order the
// rest of the stream must be read in, or ok=false if the tag matches
// neither known signature.
func DetectOrder(tag uint32) (order Order, ok bool) {
	switch tag {
	case TagLittle:
		return LittleEndian, true
	case TagSwapped:
		return BigEndian, true
	default:
		return 0, false
	}
}

// ReadTrace records one named read for diagnostics.
type ReadTrace struct {
	Name   string
	Offset int64
	Size   int64
}

// Stream is a cursor over a package file with a fixed byte order.
type Stream struct {
	rw    io.ReadWriteSeeker
	order Order

	// Trace enables collection of ReadTrace entries on every named read.
	Trace  bool
	Traces []ReadTrace
}

// New wraps rw with an explicit byte order, bypassing signature detection.
// Used when the caller already knows the order (e.g. re-opening a stream
// whose Summary has already been parsed once).
func New(rw io.ReadWriteSeeker, order Order) *Stream {
	return &Stream{rw: rw, order: order}
}

func (s *Stream) byteOrder() binary.ByteOrder {
	if s.order == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Order returns the stream's fixed byte order.
func (s *Stream) Order() Order { return s.order }

// SetOrder fixes the stream's byte order after construction. Used once,
// immediately after reading the signature tag, to commit to the order the
// tag implied (§4.A).
func (s *Stream) SetOrder(o Order) { s.order = o }

// Pos returns the current stream position.
func (s *Stream) Pos() (int64, error) {
	return s.rw.Seek(0, io.SeekCurrent)
}

// Seek repositions the stream.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	return s.rw.Seek(offset, whence)
}

func (s *Stream) trace(name string, offset, size int64) {
	if s.Trace {
		s.Traces = append(s.Traces, ReadTrace{Name: name, Offset: offset, Size: size})
	}
}

func (s *Stream) readN(name string, n int) ([]byte, error) {
	off, _ := s.Pos()
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.rw, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, &FormatError{Offset: off, Reason: fmt.Sprintf("read past EOF reading %s (%d bytes)", name, n)}
		}
		return nil, err
	}
	s.trace(name, off, int64(n))
	return buf, nil
}

// Bytes reads n raw bytes.
func (s *Stream) Bytes(name string, n int) ([]byte, error) {
	return s.readN(name, n)
}

// WriteBytes writes raw bytes.
func (s *Stream) WriteBytes(b []byte) error {
	_, err := s.rw.Write(b)
	return err
}

// U8 reads an unsigned byte.
func (s *Stream) U8(name string) (uint8, error) {
	b, err := s.readN(name, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteU8 writes an unsigned byte.
func (s *Stream) WriteU8(v uint8) error { return s.WriteBytes([]byte{v}) }

// U16 reads an unsigned 16-bit integer.
func (s *Stream) U16(name string) (uint16, error) {
	b, err := s.readN(name, 2)
	if err != nil {
		return 0, err
	}
	return s.byteOrder().Uint16(b), nil
}

// WriteU16 writes an unsigned 16-bit integer.
func (s *Stream) WriteU16(v uint16) error {
	b := make([]byte, 2)
	s.byteOrder().PutUint16(b, v)
	return s.WriteBytes(b)
}

// U32 reads an unsigned 32-bit integer.
func (s *Stream) U32(name string) (uint32, error) {
	b, err := s.readN(name, 4)
	if err != nil {
		return 0, err
	}
	return s.byteOrder().Uint32(b), nil
}

// WriteU32 writes an unsigned 32-bit integer.
func (s *Stream) WriteU32(v uint32) error {
	b := make([]byte, 4)
	s.byteOrder().PutUint32(b, v)
	return s.WriteBytes(b)
}

// U64 reads an unsigned 64-bit integer.
func (s *Stream) U64(name string) (uint64, error) {
	b, err := s.readN(name, 8)
	if err != nil {
		return 0, err
	}
	return s.byteOrder().Uint64(b), nil
}

// WriteU64 writes an unsigned 64-bit integer.
func (s *Stream) WriteU64(v uint64) error {
	b := make([]byte, 8)
	s.byteOrder().PutUint64(b, v)
	return s.WriteBytes(b)
}

// I32 reads a signed 32-bit integer.
func (s *Stream) I32(name string) (int32, error) {
	v, err := s.U32(name)
	return int32(v), err
}

// WriteI32 writes a signed 32-bit integer.
func (s *Stream) WriteI32(v int32) error { return s.WriteU32(uint32(v)) }

// I16 reads a signed 16-bit integer.
func (s *Stream) I16(name string) (int16, error) {
	v, err := s.U16(name)
	return int16(v), err
}

// WriteI16 writes a signed 16-bit integer.
func (s *Stream) WriteI16(v int16) error { return s.WriteU16(uint16(v)) }

// I64 reads a signed 64-bit integer.
func (s *Stream) I64(name string) (int64, error) {
	v, err := s.U64(name)
	return int64(v), err
}

// WriteI64 writes a signed 64-bit integer.
func (s *Stream) WriteI64(v int64) error { return s.WriteU64(uint64(v)) }

// F32 reads an IEEE-754 single-precision float.
func (s *Stream) F32(name string) (float32, error) {
	v, err := s.U32(name)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// WriteF32 writes an IEEE-754 single-precision float.
func (s *Stream) WriteF32(v float32) error { return s.WriteU32(math.Float32bits(v)) }

// GUID reads a 16-byte GUID as four little-endian 32-bit words (the GUID's
// internal word order is always little-endian regardless of stream order,
// per the package format's convention).
func (s *Stream) GUID(name string) (GUID, error) {
	b, err := s.readN(name, 16)
	if err != nil {
		return GUID{}, err
	}
	var g GUID
	for i := range g {
		g[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return g, nil
}

// WriteGUID writes a GUID.
func (s *Stream) WriteGUID(g GUID) error {
	b := make([]byte, 16)
	for i := range g {
		binary.LittleEndian.PutUint32(b[i*4:i*4+4], g[i])
	}
	return s.WriteBytes(b)
}

// GUID is four little-endian 32-bit words, 16 bytes total.
type GUID [4]uint32

// String reads a length-prefixed string: a signed 32-bit count, positive
// meaning ANSI (one byte per char, NUL-terminated), negative meaning
// UTF-16LE (|n| code units, NUL-terminated).
func (s *Stream) String(name string) (string, error) {
	off, _ := s.Pos()
	n, err := s.I32(name + ".len")
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	if n > 0 {
		if n > 1<<20 {
			return "", &FormatError{Offset: off, Reason: "ANSI string length overflow"}
		}
		b, err := s.readN(name, int(n))
		if err != nil {
			return "", err
		}
		if len(b) == 0 || b[len(b)-1] != 0 {
			return string(b), nil
		}
		return string(b[:len(b)-1]), nil
	}
	count := -n
	if count > 1<<20 {
		return "", &FormatError{Offset: off, Reason: "UTF-16 string length overflow"}
	}
	b, err := s.readN(name, int(count)*2)
	if err != nil {
		return "", err
	}
	units := make([]uint16, count)
	for i := range units {
		units[i] = s.byteOrder().Uint16(b[i*2 : i*2+2])
	}
	if len(units) > 0 && units[len(units)-1] == 0 {
		units = units[:len(units)-1]
	}
	return decodeUTF16(units), nil
}

// WriteString writes a length-prefixed string using the ANSI encoding
// (positive count) when s is pure ASCII, UTF-16LE (negative count)
// otherwise. A trailing NUL is always written, matching the reader.
func (s *Stream) WriteString(v string) error {
	if isASCII(v) {
		b := append([]byte(v), 0)
		if err := s.WriteI32(int32(len(b))); err != nil {
			return err
		}
		return s.WriteBytes(b)
	}
	units := encodeUTF16(v)
	units = append(units, 0)
	if err := s.WriteI32(-int32(len(units))); err != nil {
		return err
	}
	b := make([]byte, len(units)*2)
	for i, u := range units {
		s.byteOrder().PutUint16(b[i*2:i*2+2], u)
	}
	return s.WriteBytes(b)
}

func isASCII(v string) bool {
	for i := 0; i < len(v); i++ {
		if v[i] > 127 {
			return false
		}
	}
	return true
}

func decodeUTF16(units []uint16) string {
	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u >= 0xD800 && u <= 0xDBFF && i+1 < len(units) {
			u2 := units[i+1]
			if u2 >= 0xDC00 && u2 <= 0xDFFF {
				r := (rune(u-0xD800)<<10 | rune(u2-0xDC00)) + 0x10000
				runes = append(runes, r)
				i++
				continue
			}
		}
		runes = append(runes, rune(u))
	}
	return string(runes)
}

func encodeUTF16(v string) []uint16 {
	var units []uint16
	for _, r := range v {
		if r <= 0xFFFF {
			units = append(units, uint16(r))
			continue
		}
		r -= 0x10000
		units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
	}
	return units
}
