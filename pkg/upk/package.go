// Package upk ties the Summary, table, and object-resolution pieces
// together behind a single façade: Load opens a package file end to end,
// Save writes one back out, and the resulting Package exposes every table
// plus the resolved Import/Export object graph (§4.G).
package upk

import (
	"fmt"
	"io"
	"os"

	"github.com/goopsie/upkfile/internal/classreg"
	"github.com/goopsie/upkfile/pkg/branch"
	"github.com/goopsie/upkfile/pkg/diag"
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

// Package is one loaded package file: its Summary, its four primary
// tables, the auxiliary tables, and the resolved object graph built from
// Imports+Exports (§3, §4.F).
type Package struct {
	Summary *header.Summary
	Branch  branch.Branch

	Names   []NameEntry
	Imports []ImportEntry
	Exports []ExportEntry

	Depends            [][]int32
	ImportExportGUIDs  []ImportExportGUID
	Thumbnails         []ThumbnailEntry

	Diagnostics *diag.Sink

	objects map[PackageIndex]*Object
	rw      io.ReadWriteSeeker
	order   stream.Order
}

var _ branch.PackageView = (*Package)(nil)

// NameCount satisfies branch.PackageView.
func (p *Package) NameCount() int { return len(p.Names) }

// ExportCount satisfies branch.PackageView.
func (p *Package) ExportCount() int { return len(p.Exports) }

// ImportCount satisfies branch.PackageView.
func (p *Package) ImportCount() int { return len(p.Imports) }

// resolveNameRef turns a NameRef into its display string: the Name-table
// entry plus a "_<suffix-1>" instance tag when Suffix is non-zero (§3 Name
// Reference).
func (p *Package) resolveNameRef(ref stream.NameRef) string {
	if ref.Index < 0 || int(ref.Index) >= len(p.Names) {
		return fmt.Sprintf("<invalid name %d>", ref.Index)
	}
	name := p.Names[ref.Index].Name
	if ref.Suffix > 0 {
		name = fmt.Sprintf("%s_%d", name, ref.Suffix-1)
	}
	return name
}

// Load opens path and runs every phase LoadOptions.Flags selects.
func Load(path string, opts LoadOptions) (*Package, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
	}
	if opts.PathHint == "" {
		opts.PathHint = path
	}
	pkg, err := LoadReader(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return pkg, nil
}

// LoadReader runs Load's phases against an already-open stream.
func LoadReader(rw io.ReadWriteSeeker, opts LoadOptions) (*Package, error) {
	s := stream.New(rw, stream.LittleEndian)
	s.Trace = opts.Trace

	sum, br, err := ReadSummary(s, opts)
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		Summary:     sum,
		Branch:      br,
		Diagnostics: opts.Logger,
		objects:     map[PackageIndex]*Object{},
		rw:          rw,
		order:       s.Order(),
	}
	if pkg.Diagnostics == nil {
		pkg.Diagnostics = diag.NewSink(nil)
	}

	if sum.NameOffset > 0 {
		if _, err := s.Seek(int64(sum.NameOffset), io.SeekStart); err != nil {
			return nil, err
		}
		if pkg.Names, err = ReadNameTable(s, sum); err != nil {
			return nil, err
		}
	}
	if sum.ImportOffset > 0 {
		if _, err := s.Seek(int64(sum.ImportOffset), io.SeekStart); err != nil {
			return nil, err
		}
		if pkg.Imports, err = ReadImportTable(s, sum); err != nil {
			return nil, err
		}
	}
	if sum.ExportOffset > 0 {
		if _, err := s.Seek(int64(sum.ExportOffset), io.SeekStart); err != nil {
			return nil, err
		}
		if pkg.Exports, err = ReadExportTable(s, sum); err != nil {
			return nil, err
		}
	}

	if err := br.PostDeserializePackage(pkg, s); err != nil {
		return nil, err
	}

	pkg.Depends = ReadDependsTable(s, sum, pkg.Diagnostics)
	pkg.ImportExportGUIDs = ReadImportExportGUIDs(s, sum, pkg.Diagnostics)
	pkg.Thumbnails = ReadThumbnailTable(s, sum, pkg.Diagnostics)

	if opts.Flags&RegisterClasses != 0 {
		classreg.Seal()
	}

	if opts.Flags&Construct != 0 {
		if err := pkg.buildObjectGraph(opts); err != nil {
			return nil, err
		}
		pkg.constructInstances()
		if opts.OnConstruct != nil {
			for _, obj := range pkg.objects {
				opts.OnConstruct(obj)
			}
		}
	}

	if opts.Flags&Deserialize != 0 {
		if err := pkg.deserializeExports(s, opts); err != nil {
			return nil, err
		}
	}

	if opts.Flags&Link != 0 && opts.OnLink != nil {
		for _, obj := range pkg.objects {
			opts.OnLink(obj)
		}
	}

	return pkg, nil
}

// buildObjectGraph resolves every import and export index into an *Object
// (§4.F).
func (p *Package) buildObjectGraph(opts LoadOptions) error {
	visiting := map[PackageIndex]bool{}
	for i := range p.Imports {
		idx := PackageIndex(-(int32(i) + 1))
		obj, err := p.resolveObject(idx, visiting)
		if err != nil {
			return err
		}
		if opts.OnObject != nil {
			opts.OnObject(obj)
		}
	}
	for i := range p.Exports {
		idx := PackageIndex(i + 1)
		obj, err := p.resolveObject(idx, visiting)
		if err != nil {
			return err
		}
		if opts.OnObject != nil {
			opts.OnObject(obj)
		}
	}
	return nil
}

// deserializeExports hands each export's bounded byte range to its
// registered ObjectSerializerFunc, aggregating per-object failures into a
// single AggregatedDeserializeError rather than stopping at the first
// failure; LoadReader returns that error once every export has been tried (§7).
func (p *Package) deserializeExports(s *stream.Stream, opts LoadOptions) error {
	var agg AggregatedDeserializeError
	for i, exp := range p.Exports {
		idx := PackageIndex(i + 1)
		obj := p.objects[idx]
		if obj == nil || exp.SerialSize <= 0 {
			continue
		}
		fn, ok := p.Branch.ObjectSerializer(obj.Class)
		if !ok {
			continue
		}
		section := newBoundedSection(p.rw, int64(exp.SerialOffset), int64(exp.SerialSize))
		if _, err := section.Seek(0, io.SeekStart); err != nil {
			return err
		}
		objStream := stream.New(section, p.order)
		err := fn(obj, objStream)
		obj.deserErr = err
		if opts.OnDeserialize != nil {
			opts.OnDeserialize(obj, err)
		}
		if err != nil {
			p.Diagnostics.Warn(diag.KindObjectDeserialize, "object deserialize failed", int64(exp.SerialOffset), err)
			agg.Errors = append(agg.Errors, &ObjectDeserializeError{ExportIndex: i, Err: err})
		}
	}
	if len(agg.Errors) > 0 {
		return &agg
	}
	return nil
}

// ResolveIndex resolves a raw PackageIndex (as stored on any table row)
// into its *Object, using the same memoized, cycle-detected walk Load
// performs internally. Returns nil, nil for a none index.
func (p *Package) ResolveIndex(idx PackageIndex) (*Object, error) {
	if obj, ok := p.objects[idx]; ok {
		return obj, nil
	}
	return p.resolveObject(idx, map[PackageIndex]bool{})
}

// Save writes pkg back out to w in a single pass. Table counts, offsets and
// HeaderSize are recomputed from the tables actually present rather than
// trusted from the in-memory Summary, matching §4.G's endianness/offset
// round-trip property.
func (p *Package) Save(w io.ReadWriteSeeker) error {
	buf := newMembuf(0)
	s := stream.New(buf, p.order)

	sum := *p.Summary
	sum.NameCount = int32(len(p.Names))
	sum.ImportCount = int32(len(p.Imports))
	sum.ExportCount = int32(len(p.Exports))
	if len(sum.Generations) == 0 && (sum.IsUE4() || sum.Version >= header.ThresholdHeritageTableDeprecated) {
		sum.Generations = []header.Generation{{ExportCount: sum.ExportCount, NameCount: sum.NameCount}}
	}

	if err := WriteSummary(s, &sum, p.Branch); err != nil {
		return err
	}
	headerEnd, err := buf.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	sum.NameOffset = int32(headerEnd)
	if err := WriteNameTable(s, &sum, p.Names); err != nil {
		return err
	}
	importOffset, _ := buf.Seek(0, io.SeekCurrent)
	sum.ImportOffset = int32(importOffset)
	if err := WriteImportTable(s, p.Imports); err != nil {
		return err
	}
	exportOffset, _ := buf.Seek(0, io.SeekCurrent)
	sum.ExportOffset = int32(exportOffset)
	if err := WriteExportTable(s, &sum, p.Exports); err != nil {
		return err
	}

	if err := p.Branch.PostSerializePackage(p, s); err != nil {
		return err
	}

	if len(p.Depends) > 0 {
		dependsOffset, _ := buf.Seek(0, io.SeekCurrent)
		sum.DependsOffset = int32(dependsOffset)
		if err := WriteDependsTable(s, p.Depends); err != nil {
			return err
		}
	}
	if len(p.ImportExportGUIDs) > 0 {
		guidOffset, _ := buf.Seek(0, io.SeekCurrent)
		sum.ImportExportGUIDsOffset = int32(guidOffset)
		if err := WriteImportExportGUIDs(s, p.ImportExportGUIDs); err != nil {
			return err
		}
	}
	if len(p.Thumbnails) > 0 {
		thumbOffset, _ := buf.Seek(0, io.SeekCurrent)
		sum.ThumbnailTableOffset = int32(thumbOffset)
		if err := WriteThumbnailTable(s, p.Thumbnails); err != nil {
			return err
		}
	}
	tablesEnd, _ := buf.Seek(0, io.SeekCurrent)
	sum.HeaderSize = int32(tablesEnd)

	// Second pass: rewrite the Summary now that every offset is known.
	if _, err := buf.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := WriteSummary(s, &sum, p.Branch); err != nil {
		return err
	}
	p.Summary = &sum

	if _, err := w.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err = w.Write(buf.data)
	return err
}
