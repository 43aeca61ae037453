package upk

import (
	"io"
)

// boundedSection restricts reads/writes/seeks on an underlying
// io.ReadWriteSeeker to the half-open byte range [base, base+size), used to
// hand each export's object serializer a stream it cannot read or write
// past its own SerialSize (§6).
type boundedSection struct {
	rw   io.ReadWriteSeeker
	base int64
	size int64
}

func newBoundedSection(rw io.ReadWriteSeeker, base, size int64) *boundedSection {
	return &boundedSection{rw: rw, base: base, size: size}
}

func (b *boundedSection) pos() (int64, error) {
	return b.rw.Seek(0, io.SeekCurrent)
}

func (b *boundedSection) Read(p []byte) (int, error) {
	pos, err := b.pos()
	if err != nil {
		return 0, err
	}
	remaining := b.base + b.size - pos
	if remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	return b.rw.Read(p)
}

func (b *boundedSection) Write(p []byte) (int, error) {
	pos, err := b.pos()
	if err != nil {
		return 0, err
	}
	remaining := b.base + b.size - pos
	if remaining <= 0 {
		return 0, io.ErrShortWrite
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	return b.rw.Write(p)
}

func (b *boundedSection) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = b.base + offset
	case io.SeekCurrent:
		pos, err := b.pos()
		if err != nil {
			return 0, err
		}
		abs = pos + offset
	case io.SeekEnd:
		abs = b.base + b.size + offset
	default:
		return 0, io.ErrUnexpectedEOF
	}
	if _, err := b.rw.Seek(abs, io.SeekStart); err != nil {
		return 0, err
	}
	return abs - b.base, nil
}

// membuf is a minimal in-memory io.ReadWriteSeeker over a growable byte
// slice, used by Save to assemble the whole output file before writing it.
type membuf struct {
	data []byte
	pos  int64
}

func newMembuf(size int64) *membuf {
	return &membuf{data: make([]byte, size)}
}

func (m *membuf) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *membuf) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	n := copy(m.data[m.pos:end], p)
	m.pos = end
	return n, nil
}

func (m *membuf) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	default:
		return 0, io.ErrUnexpectedEOF
	}
	if abs < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	m.pos = abs
	return abs, nil
}
