package upk

import (
	"testing"

	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

func TestNameTableRoundTrip(t *testing.T) {
	sum := &header.Summary{Version: 600, NameCount: 2}
	entries := []NameEntry{
		{Name: "Core", Flags: 0x1},
		{Name: "Engine", Flags: 0x2},
	}
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	if err := WriteNameTable(s, sum, entries); err != nil {
		t.Fatal(err)
	}
	buf.pos = 0
	got, err := ReadNameTable(stream.New(buf, stream.LittleEndian), sum)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "Core" || got[1].Flags != 0x2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestNameTableRoundTripLegacy32BitFlags(t *testing.T) {
	sum := &header.Summary{Version: header.ThresholdNameFlags64Added - 1, NameCount: 2}
	entries := []NameEntry{
		{Name: "Core", Flags: 0x1},
		{Name: "Engine", Flags: 0x2},
	}
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	if err := WriteNameTable(s, sum, entries); err != nil {
		t.Fatal(err)
	}
	// A pre-UE3 entry writes 4 bytes of flags instead of 8; confirm the
	// encoded size actually shrank rather than just checking round trip.
	wantSize := int64(0)
	for _, e := range entries {
		wantSize += 4 + int64(len(e.Name)) + 1 + 4 // len-prefix + name + NUL + 32-bit flags
	}
	if int64(len(buf.data)) != wantSize {
		t.Fatalf("encoded size = %d, want %d (32-bit flags)", len(buf.data), wantSize)
	}
	buf.pos = 0
	got, err := ReadNameTable(stream.New(buf, stream.LittleEndian), sum)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "Core" || got[1].Flags != 0x2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestImportTableRoundTrip(t *testing.T) {
	entries := []ImportEntry{
		{
			ClassPackage: stream.NameRef{Index: 0},
			ClassName:    stream.NameRef{Index: 1},
			OuterIndex:   0,
			ObjectName:   stream.NameRef{Index: 2, Suffix: 3},
		},
	}
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	if err := WriteImportTable(s, entries); err != nil {
		t.Fatal(err)
	}
	buf.pos = 0
	sum := &header.Summary{ImportCount: 1}
	got, err := ReadImportTable(stream.New(buf, stream.LittleEndian), sum)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ObjectName.Suffix != 3 {
		t.Errorf("import round trip mismatch: %+v", got)
	}
}

func TestExportTableNetObjectCountPadding(t *testing.T) {
	sum := &header.Summary{
		Version:     600,
		ExportCount: 1,
		Generations: []header.Generation{{}, {}, {}},
	}
	entries := []ExportEntry{{ObjectName: stream.NameRef{Index: 0}}}
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	if err := WriteExportTable(s, sum, entries); err != nil {
		t.Fatal(err)
	}
	buf.pos = 0
	got, err := ReadExportTable(stream.New(buf, stream.LittleEndian), sum)
	if err != nil {
		t.Fatalf("ReadExportTable after short NetObjectCount slice: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 export, got %d", len(got))
	}
	if len(got[0].NetObjectCount) != 3 {
		t.Errorf("expected 3 padded NetObjectCount entries, got %d", len(got[0].NetObjectCount))
	}
}

func TestDependsTableRoundTrip(t *testing.T) {
	// A zero offset means "table absent" (see ReadDependsTable), so pad
	// four junk bytes ahead of the real table and point DependsOffset
	// past them.
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	if err := s.WriteI32(0xBEEF); err != nil {
		t.Fatal(err)
	}
	depends := [][]int32{{-1, -2}, {}}
	if err := WriteDependsTable(s, depends); err != nil {
		t.Fatal(err)
	}
	sum := &header.Summary{ExportCount: 2, DependsOffset: 4}
	buf.pos = 0
	got := ReadDependsTable(stream.New(buf, stream.LittleEndian), sum, nil)
	if len(got) != 2 || len(got[0]) != 2 || got[0][0] != -1 || got[0][1] != -2 {
		t.Errorf("depends round trip mismatch: %+v", got)
	}
}

func TestDependsTableNoneOffsetSkipsRead(t *testing.T) {
	sum := &header.Summary{DependsOffset: 0}
	buf := &memRWS{}
	got := ReadDependsTable(stream.New(buf, stream.LittleEndian), sum, nil)
	if got != nil {
		t.Errorf("expected nil Depends for zero offset, got %+v", got)
	}
}

func TestThumbnailTableRoundTrip(t *testing.T) {
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	if err := s.WriteI32(0xBEEF); err != nil {
		t.Fatal(err)
	}
	entries := []ThumbnailEntry{
		{ClassName: "Texture2D", ObjectPath: "Pkg.Tex", DataOffset: 128},
	}
	if err := WriteThumbnailTable(s, entries); err != nil {
		t.Fatal(err)
	}
	buf.pos = 0
	sum := &header.Summary{ThumbnailTableOffset: 4}
	got := ReadThumbnailTable(stream.New(buf, stream.LittleEndian), sum, nil)
	if len(got) != 1 || got[0].ClassName != "Texture2D" || got[0].DataOffset != 128 {
		t.Errorf("thumbnail round trip mismatch: %+v", got)
	}
}

func TestImportExportGUIDsRoundTrip(t *testing.T) {
	buf := &memRWS{}
	s := stream.New(buf, stream.LittleEndian)
	if err := s.WriteI32(0xBEEF); err != nil {
		t.Fatal(err)
	}
	entries := []ImportExportGUID{
		{ImportIndex: 1, GUID: stream.GUID{1, 1, 1, 1}},
		{ExportIndex: 2, GUID: stream.GUID{2, 2, 2, 2}},
	}
	if err := WriteImportExportGUIDs(s, entries); err != nil {
		t.Fatal(err)
	}
	// Import half is (index, GUID): the index comes first in the bytes.
	wantImportIdx := stream.New(&memRWS{data: buf.data[4:8]}, stream.LittleEndian)
	gotImportIdx, err := wantImportIdx.I32("check")
	if err != nil || gotImportIdx != 1 {
		t.Errorf("expected import half to lead with the index, got %d (err=%v)", gotImportIdx, err)
	}
	// Export half is (GUID, index): the index comes last, after its GUID.
	exportHalfStart := 4 + 4 + 16 // import index + import GUID
	wantExportIdx := stream.New(&memRWS{data: buf.data[exportHalfStart+16:]}, stream.LittleEndian)
	gotExportIdx, err := wantExportIdx.I32("check")
	if err != nil || gotExportIdx != 2 {
		t.Errorf("expected export half to trail with the index, got %d (err=%v)", gotExportIdx, err)
	}

	buf.pos = 0
	sum := &header.Summary{ImportGUIDsCount: 1, ExportGUIDsCount: 1, ImportExportGUIDsOffset: 4}
	got := ReadImportExportGUIDs(stream.New(buf, stream.LittleEndian), sum, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ImportIndex != 1 || got[1].ExportIndex != 2 {
		t.Errorf("import/export GUID round trip mismatch: %+v", got)
	}
	if got[0].GUID != (stream.GUID{1, 1, 1, 1}) || got[1].GUID != (stream.GUID{2, 2, 2, 2}) {
		t.Errorf("GUID round trip mismatch: %+v", got)
	}
}
