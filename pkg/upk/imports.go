package upk

import (
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

// ReadImportTable reads sum.ImportCount entries starting at sum.ImportOffset
// (§3, §4.E). The caller seeks s to ImportOffset first.
func ReadImportTable(s *stream.Stream, sum *header.Summary) ([]ImportEntry, error) {
	entries := make([]ImportEntry, sum.ImportCount)
	for i := range entries {
		classPkg, err := s.NameReference("import.classPackage")
		if err != nil {
			return nil, err
		}
		className, err := s.NameReference("import.className")
		if err != nil {
			return nil, err
		}
		outer, err := s.I32("import.outerIndex")
		if err != nil {
			return nil, err
		}
		objName, err := s.NameReference("import.objectName")
		if err != nil {
			return nil, err
		}
		entries[i] = ImportEntry{
			ClassPackage: classPkg,
			ClassName:    className,
			OuterIndex:   PackageIndex(outer),
			ObjectName:   objName,
		}
	}
	return entries, nil
}

// WriteImportTable writes entries in the layout ReadImportTable expects.
func WriteImportTable(s *stream.Stream, entries []ImportEntry) error {
	for _, e := range entries {
		if err := s.WriteNameReference(e.ClassPackage); err != nil {
			return err
		}
		if err := s.WriteNameReference(e.ClassName); err != nil {
			return err
		}
		if err := s.WriteI32(int32(e.OuterIndex)); err != nil {
			return err
		}
		if err := s.WriteNameReference(e.ObjectName); err != nil {
			return err
		}
	}
	return nil
}
