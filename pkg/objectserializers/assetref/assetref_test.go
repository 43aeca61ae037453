package assetref

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

func (f *fakeObject) ClassName() string           { return "AssetReference" }
func (f *fakeObject) Package() branch.PackageView { return nil }
func (f *fakeObject) Instance() any                { return f.value }

func TestDeserializeMaterialSizedReference(t *testing.T) {
	ref := &Reference{
		Size: 88, Type: ReferenceTypeMaterial,
		ReferenceGUID: 0x1, TargetGUID: 0x2, Flags: 0x3,
		AdditionalData: make([]byte, 68),
	}
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	if err := Serialize(s, ref); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	buf.pos = 0
	got := &Reference{}
	if err := Deserialize(&fakeObject{value: got}, stream.New(buf, stream.LittleEndian)); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got.Type != ReferenceTypeMaterial {
		t.Errorf("expected Material type, got %s", got.Type)
	}
	if got.ReferenceGUID != ref.ReferenceGUID || got.TargetGUID != ref.TargetGUID {
		t.Errorf("guid mismatch: %+v", got)
	}
	if len(got.AdditionalData) != 68 {
		t.Errorf("additional data length mismatch: got %d", len(got.AdditionalData))
	}
}

func TestDeserializeTooShort(t *testing.T) {
	buf := &memRWS{data: make([]byte, 4)}
	err := Deserialize(&fakeObject{value: &Reference{}}, stream.New(buf, stream.LittleEndian))
	if err == nil {
		t.Fatal("expected error for short reference block")
	}
}
