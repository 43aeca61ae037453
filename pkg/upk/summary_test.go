package upk

import (
	"io"
	"testing"

	"github.com/goopsie/upkfile/pkg/branch"
	"github.com/goopsie/upkfile/pkg/build"
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

func defaultBranchForTest() branch.Branch { return branch.NewDefault() }

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

func minimalUE3Summary() *header.Summary {
	return &header.Summary{
		Version:         600,
		LicenseeVersion: 0,
		HeaderSize:      0,
		FolderName:      "None",
		Generations:     []header.Generation{{ExportCount: 0, NameCount: 0, NetObjectCount: 0}},
	}
}

func TestSummaryRoundTripUE3(t *testing.T) {
	sum := minimalUE3Summary()
	sum.SignatureTag = stream.TagLittle
	sum.LegacyVersion = packLicenseeVersion(sum.Version, sum.LicenseeVersion)

	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	br := defaultBranchForTest()
	if err := WriteSummary(s, sum, br); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	buf.pos = 0
	rs := stream.New(buf, stream.LittleEndian)
	got, _, err := ReadSummary(rs, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("ReadSummary: %v", err)
	}
	if got.Version != sum.Version || got.LicenseeVersion != sum.LicenseeVersion {
		t.Errorf("version mismatch: got %d/%d want %d/%d", got.Version, got.LicenseeVersion, sum.Version, sum.LicenseeVersion)
	}
	if got.FolderName != sum.FolderName {
		t.Errorf("folder name mismatch: got %q want %q", got.FolderName, sum.FolderName)
	}
}

func TestSummaryRoundTripHeritageEra(t *testing.T) {
	sum := &header.Summary{
		SignatureTag:   stream.TagLittle,
		Version:        68,
		HeaderSize:     -1,
		HeritageCount:  1,
		HeritageOffset: 512,
	}
	sum.LegacyVersion = packLicenseeVersion(sum.Version, sum.LicenseeVersion)

	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	br := defaultBranchForTest()
	if err := WriteSummary(s, sum, br); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	buf.pos = 0
	rs := stream.New(buf, stream.LittleEndian)
	got, _, err := ReadSummary(rs, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("ReadSummary: %v", err)
	}
	if got.HeritageCount != 1 || got.HeritageOffset != 512 {
		t.Errorf("heritage fields mismatch: %+v", got)
	}
	// Nothing past Heritage was written or read back: GUID/Generations
	// stay zero-valued and the stream ends exactly where Heritage did.
	if len(got.Generations) != 0 {
		t.Errorf("expected no Generations for a Heritage-era summary, got %+v", got.Generations)
	}
	if pos, _ := buf.Seek(0, io.SeekCurrent); pos != int64(len(buf.data)) {
		t.Errorf("ReadSummary left %d unread trailing bytes", int64(len(buf.data))-pos)
	}
}

func TestSummaryRejectsLegacyVersionBelowRange(t *testing.T) {
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	if err := s.WriteU32(stream.TagLittle); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteI32(-8); err != nil {
		t.Fatal(err)
	}
	buf.pos = 0
	rs := stream.New(buf, stream.LittleEndian)
	_, _, err := ReadSummary(rs, DefaultLoadOptions())
	if err == nil {
		t.Fatal("expected an unsupported-version error for legacy version -8")
	}
	if _, ok := err.(*stream.ErrUnsupportedVersion); !ok {
		t.Errorf("expected *stream.ErrUnsupportedVersion, got %T: %v", err, err)
	}
}

func TestSummaryBadSignature(t *testing.T) {
	buf := &memRWS{data: []byte{0, 0, 0, 0, 0, 0, 0, 0}}
	s := stream.New(buf, stream.LittleEndian)
	_, _, err := ReadSummary(s, DefaultLoadOptions())
	if err == nil {
		t.Fatal("expected bad signature error")
	}
	if _, ok := err.(*stream.ErrBadSignature); !ok {
		t.Errorf("expected *stream.ErrBadSignature, got %T", err)
	}
}

func TestCustomVersionListLegacyMinus6(t *testing.T) {
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	versions := []header.CustomVersion{
		{GUID: stream.GUID{1, 2, 3, 4}, Version: 10},
		{GUID: stream.GUID{5, 6, 7, 8}, Version: 20},
	}
	if err := writeCustomVersionList(s, -6, versions); err != nil {
		t.Fatal(err)
	}
	written, _ := buf.Seek(0, io.SeekCurrent)
	// 4-byte count prefix + 2 entries * 20 bytes (16-byte GUID + 4-byte version).
	if want := int64(4 + 2*20); written != want {
		t.Errorf("wrote %d bytes, want %d", written, want)
	}

	buf.pos = 0
	rs := stream.New(buf, stream.LittleEndian)
	got, err := readCustomVersionList(rs, -6)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Version != 10 || got[1].Version != 20 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestSummaryRoundTripUE4(t *testing.T) {
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	sum := &header.Summary{
		SignatureTag:       stream.TagLittle,
		LegacyVersion:      -6,
		UE3Version:         868,
		UE4FileVersion:     500,
		UE4LicenseeVersion: 0,
		FolderName:         "None",
		EngineVersion4:     &header.EngineVersion4{Major: 4, Minor: 20, Patch: 0},
		CompatibleEngineVersion4: &header.EngineVersion4{Major: 4, Minor: 20, Patch: 0},
	}
	br := defaultBranchForTest()
	if err := WriteSummary(s, sum, br); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	buf.pos = 0
	rs := stream.New(buf, stream.LittleEndian)
	opts := DefaultLoadOptions()
	opts.Platform = build.PlatformUndetermined
	got, _, err := ReadSummary(rs, opts)
	if err != nil {
		t.Fatalf("ReadSummary: %v", err)
	}
	if !got.IsUE4() {
		t.Fatal("expected UE4 summary")
	}
	if got.UE4FileVersion != sum.UE4FileVersion {
		t.Errorf("UE4FileVersion mismatch: got %d want %d", got.UE4FileVersion, sum.UE4FileVersion)
	}
	if got.Branch != build.BranchUE4 {
		t.Errorf("expected branch ue4, got %s", got.Branch)
	}
}
