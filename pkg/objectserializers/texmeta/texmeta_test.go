package texmeta

import (
	"io"
	"testing"

	"github.com/goopsie/upkfile/pkg/branch"
	"github.com/goopsie/upkfile/pkg/stream"
)

type memRWS struct {
	data []byte
	pos  int64
}

func (m *memRWS) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memRWS) Write(p []byte) (int, error) {
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

func (m *memRWS) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	}
	m.pos = abs
	return abs, nil
}

type fakeObject struct{ value any }

func (f *fakeObject) ClassName() string           { return "TextureMetadata" }
func (f *fakeObject) Package() branch.PackageView { return nil }
func (f *fakeObject) Instance() any                { return f.value }

func TestMetadataRoundTrip(t *testing.T) {
	meta := &Metadata{
		Width: 1024, Height: 1024, MipLevels: 10,
		DXGIFormat: DXGIFormatBC7UNorm, RawFileSize: 699_056, ArraySize: 1,
	}
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	if err := Serialize(s, meta); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	buf.pos = 0
	got := &Metadata{}
	if err := Deserialize(&fakeObject{value: got}, stream.New(buf, stream.LittleEndian)); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got.Width != meta.Width || got.DXGIFormat != meta.DXGIFormat {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestConvertRawBCToDDS(t *testing.T) {
	meta := &Metadata{Width: 4, Height: 4, MipLevels: 1, DXGIFormat: DXGIFormatBC1UNorm, RawFileSize: 8, ArraySize: 1}
	raw := make([]byte, 8)
	dds, err := ConvertRawBCToDDS(raw, meta)
	if err != nil {
		t.Fatalf("ConvertRawBCToDDS: %v", err)
	}
	if len(dds) != 4+124+20+8 {
		t.Errorf("unexpected DDS size: %d", len(dds))
	}
	if dds[0] != 'D' || dds[1] != 'D' || dds[2] != 'S' || dds[3] != ' ' {
		t.Errorf("missing DDS magic: %v", dds[:4])
	}
}

func TestConvertRawBCToDDSSizeMismatch(t *testing.T) {
	meta := &Metadata{RawFileSize: 16}
	if _, err := ConvertRawBCToDDS(make([]byte, 8), meta); err == nil {
		t.Fatal("expected size mismatch error")
	}
}
