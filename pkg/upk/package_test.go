package upk

import (
	"testing"

	"github.com/goopsie/upkfile/pkg/branch"
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

// buildSyntheticPackage assembles a minimal but structurally complete
// in-memory Package: one import (a class), one export (an instance of it)
// whose Outer is None, and a Depends entry linking the export to the
// import.
func buildSyntheticPackage() *Package {
	sum := &header.Summary{
		SignatureTag: stream.TagLittle,
		Version:      600,
		FolderName:   "None",
		Generations:  []header.Generation{{}},
	}
	sum.LegacyVersion = packLicenseeVersion(sum.Version, sum.LicenseeVersion)

	names := []NameEntry{
		{Name: "Core"},
		{Name: "Class"},
		{Name: "MyActor"},
		{Name: "Default__MyActor"},
	}
	imports := []ImportEntry{
		{
			ClassPackage: stream.NameRef{Index: 0},
			ClassName:    stream.NameRef{Index: 1},
			OuterIndex:   0,
			ObjectName:   stream.NameRef{Index: 2},
		},
	}
	exports := []ExportEntry{
		{
			ClassIndex:   PackageIndex(-1), // the import above
			SuperIndex:   0,
			OuterIndex:   0,
			ObjectName:   stream.NameRef{Index: 3},
			SerialSize:   0,
			SerialOffset: 0,
		},
	}

	return &Package{
		Summary: sum,
		Branch:  branch.NewDefault(),
		Names:   names,
		Imports: imports,
		Exports: exports,
		Depends: [][]int32{{-1}},
		objects: map[PackageIndex]*Object{},
	}
}

func TestPackageSaveLoadRoundTrip(t *testing.T) {
	pkg := buildSyntheticPackage()
	buf := &memRWS{}
	if err := pkg.Save(buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	buf.pos = 0
	opts := DefaultLoadOptions()
	got, err := LoadReader(buf, opts)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	if len(got.Names) != len(pkg.Names) {
		t.Fatalf("name count mismatch: got %d want %d", len(got.Names), len(pkg.Names))
	}
	for i, n := range pkg.Names {
		if got.Names[i].Name != n.Name {
			t.Errorf("name %d mismatch: got %q want %q", i, got.Names[i].Name, n.Name)
		}
	}
	if len(got.Imports) != 1 || len(got.Exports) != 1 {
		t.Fatalf("table count mismatch: imports=%d exports=%d", len(got.Imports), len(got.Exports))
	}
	if len(got.Depends) != 1 || len(got.Depends[0]) != 1 || got.Depends[0][0] != -1 {
		t.Errorf("depends round trip mismatch: %+v", got.Depends)
	}
}

func TestPackageObjectResolution(t *testing.T) {
	pkg := buildSyntheticPackage()
	opts := DefaultLoadOptions()
	if err := pkg.buildObjectGraph(opts); err != nil {
		t.Fatalf("buildObjectGraph: %v", err)
	}

	exportObj, err := pkg.ResolveIndex(PackageIndex(1))
	if err != nil {
		t.Fatalf("ResolveIndex(export): %v", err)
	}
	if exportObj.Name != "Default__MyActor" {
		t.Errorf("export name mismatch: got %q", exportObj.Name)
	}
	if exportObj.Class != "MyActor" {
		t.Errorf("export class mismatch: got %q, want the import's object name", exportObj.Class)
	}

	importObj, err := pkg.ResolveIndex(PackageIndex(-1))
	if err != nil {
		t.Fatalf("ResolveIndex(import): %v", err)
	}
	if importObj.Name != "MyActor" {
		t.Errorf("import name mismatch: got %q", importObj.Name)
	}
	if importObj.Class != "Class" {
		t.Errorf("import class mismatch: got %q", importObj.Class)
	}
}

func TestPackageResolveIndexNone(t *testing.T) {
	pkg := buildSyntheticPackage()
	obj, err := pkg.ResolveIndex(PackageIndex(0))
	if err != nil {
		t.Fatalf("ResolveIndex(none): %v", err)
	}
	if obj != nil {
		t.Errorf("expected nil object for none index, got %+v", obj)
	}
}

func TestPackageSuperChainResolution(t *testing.T) {
	pkg := buildSyntheticPackage()
	// Add a second export, "Default__MyDerivedActor", whose SuperIndex
	// points back at the first export: a two-export inheritance chain.
	pkg.Names = append(pkg.Names, NameEntry{Name: "Default__MyDerivedActor"})
	pkg.Exports = append(pkg.Exports, ExportEntry{
		ClassIndex: PackageIndex(-1),
		SuperIndex: PackageIndex(1),
		OuterIndex: 0,
		ObjectName: stream.NameRef{Index: 4},
	})

	opts := DefaultLoadOptions()
	if err := pkg.buildObjectGraph(opts); err != nil {
		t.Fatalf("buildObjectGraph: %v", err)
	}

	derived, err := pkg.ResolveIndex(PackageIndex(2))
	if err != nil {
		t.Fatalf("ResolveIndex(derived export): %v", err)
	}
	if derived.Super == nil {
		t.Fatal("expected derived export's Super to resolve to the base export")
	}
	if derived.Super.Name != "Default__MyActor" {
		t.Errorf("Super name mismatch: got %q", derived.Super.Name)
	}

	pkg.constructInstances()
	if derived.Value == nil {
		t.Fatal("expected constructInstances to assign a Value even with no registered class")
	}
	if _, ok := derived.Value.(*UnknownObject); !ok {
		t.Errorf("expected an UnknownObject placeholder, got %T", derived.Value)
	}
}

func TestPackageCyclicOuterDetected(t *testing.T) {
	pkg := buildSyntheticPackage()
	// Export 0's outer is itself: a one-node cycle.
	pkg.Exports[0].OuterIndex = PackageIndex(1)
	if _, err := pkg.ResolveIndex(PackageIndex(1)); err == nil {
		t.Fatal("expected cyclic reference error")
	}
}
