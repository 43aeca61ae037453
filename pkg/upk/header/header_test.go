package header

import "testing"

func TestValidateCatchesUndersizedHeader(t *testing.T) {
	// HeaderSize sits right at NameOffset, leaving no room for any of the
	// ten Name entries the Summary claims follow it.
	sum := &Summary{
		Version:    600,
		HeaderSize: 64,
		NameOffset: 64,
		NameCount:  10,
	}
	if err := sum.Validate(); err == nil {
		t.Fatal("expected Validate to reject a header too small for its Name table, got nil")
	}
}

func TestValidateAcceptsRoomyHeader(t *testing.T) {
	sum := &Summary{
		Version:      600,
		NameOffset:   64,
		NameCount:    2,
		ImportOffset: 200,
		ImportCount:  1,
		ExportOffset: 300,
		ExportCount:  1,
		HeaderSize:   1 << 20,
	}
	if err := sum.Validate(); err != nil {
		t.Fatalf("Validate on a roomy header: %v", err)
	}
}

func TestValidateIgnoresUnusedTables(t *testing.T) {
	sum := &Summary{Version: 600, HeaderSize: 16}
	if err := sum.Validate(); err != nil {
		t.Fatalf("Validate with every offset zero: %v", err)
	}
}

func TestExportEntryMinSizeGrowsWithGenerations(t *testing.T) {
	base := &Summary{Version: 600}
	withGen := &Summary{Version: 600, Generations: []Generation{{}, {}}}
	if withGen.exportEntryMinSize() <= base.exportEntryMinSize() {
		t.Fatalf("expected per-generation NetObjectCount to widen the minimum export size")
	}
}

func TestNameEntryMinSizeNarrowsPre64BitFlags(t *testing.T) {
	legacy := &Summary{Version: ThresholdNameFlags64Added - 1}
	modern := &Summary{Version: ThresholdNameFlags64Added}
	if legacy.nameEntryMinSize() >= modern.nameEntryMinSize() {
		t.Fatalf("expected pre-UE3 32-bit flags to be smaller than UE3's 64-bit flags")
	}
}
