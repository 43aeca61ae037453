package colorblock

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

type fakeObject struct {
	value any
}

func (f *fakeObject) ClassName() string            { return "ColorBlock" }
func (f *fakeObject) Package() branch.PackageView  { return nil }
func (f *fakeObject) Instance() any                { return f.value }

func TestColorBlockRoundTrip(t *testing.T) {
	block := &Block{
		ResourceID: 0x0123456789abcdef,
		Colors: [5]Color{
			{1, 0, 0, 1},
			{0, 1, 0, 1},
			{0, 0, 1, 1},
			{1, 1, 0, 1},
			{0.5, 0.5, 0.5, 1},
		},
	}

	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	if err := Serialize(s, block); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	buf.pos = 0
	got := &Block{}
	obj := &fakeObject{value: got}
	if err := Deserialize(obj, stream.New(buf, stream.LittleEndian)); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if got.ResourceID != block.ResourceID {
		t.Errorf("resource id mismatch: got %x want %x", got.ResourceID, block.ResourceID)
	}
	if got.Colors[2] != block.Colors[2] {
		t.Errorf("color mismatch: got %+v want %+v", got.Colors[2], block.Colors[2])
	}
}

func TestColorBlockToCSS(t *testing.T) {
	block := &Block{Colors: [5]Color{{1, 0, 0, 1}, {}, {}, {}, {}}}
	css := block.ToCSS("rwd_tint_0001")
	if css == "" {
		t.Fatal("expected non-empty CSS")
	}
}
