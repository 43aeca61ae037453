// Package upk implements the version-aware package I/O engine: Summary
// reading/writing, the Name/Import/Export/Depends tables, cross-reference
// resolution, and the Package façade (§4.D-G).
package upk

import (
	"github.com/goopsie/upkfile/pkg/stream"
)

// PackageIndex is the signed encoding used everywhere objects
// cross-reference each other (§3): 0 = none, n>0 refers to Exports[n-1],
// n<0 refers to Imports[-n-1].
type PackageIndex int32

// IsNone reports whether the index refers to nothing.
func (i PackageIndex) IsNone() bool { return i == 0 }

// IsExport reports whether the index refers to an export.
func (i PackageIndex) IsExport() bool { return i > 0 }

// IsImport reports whether the index refers to an import.
func (i PackageIndex) IsImport() bool { return i < 0 }

// ExportIndex returns the zero-based index into Exports. Valid only when
// IsExport() is true.
func (i PackageIndex) ExportIndex() int { return int(i) - 1 }

// ImportIndex returns the zero-based index into Imports. Valid only when
// IsImport() is true.
func (i PackageIndex) ImportIndex() int { return int(-i) - 1 }

// NameEntry is one Name-table row (§3).
type NameEntry struct {
	Name                  string
	Flags                 uint64
	NonCasePreservingHash uint16
	CasePreservingHash    uint16
}

// ImportEntry is one Import-table row (§3, §4.E).
type ImportEntry struct {
	ClassPackage stream.NameRef
	ClassName    stream.NameRef
	OuterIndex   PackageIndex
	ObjectName   stream.NameRef
}

// ComponentMapEntry is one entry of an Export's optional component map.
type ComponentMapEntry struct {
	Name        stream.NameRef
	ObjectIndex PackageIndex
}

// ExportEntry is one Export-table row (§3, §4.E).
type ExportEntry struct {
	ClassIndex     PackageIndex
	SuperIndex     PackageIndex
	OuterIndex     PackageIndex
	ObjectName     stream.NameRef
	ArchetypeIndex PackageIndex
	ObjectFlags    uint64
	SerialSize     int32
	SerialOffset   int32
	ComponentMap   []ComponentMapEntry
	ExportFlags    uint32
	NetObjectCount []int32
	PackageGUID    *stream.GUID
	PackageFlags   *uint32
}

// ImportExportGUID pairs an import or export index with a GUID (§4.E).
type ImportExportGUID struct {
	ImportIndex int32
	ExportIndex int32
	GUID        stream.GUID
}

// ThumbnailEntry describes one thumbnail's location (§4.E); the body is
// read lazily by external consumers at DataOffset.
type ThumbnailEntry struct {
	ClassName  string
	ObjectPath string
	DataOffset int32
}
