// Package header defines the wire-level data model shared by the Summary
// reader/writer and the Engine Branch hooks that adjust it. It has no
// dependency on pkg/branch or pkg/upk so both can import it without a
// cycle: branch hooks receive a *Summary, and pkg/upk owns the actual
// read/write sequence.
package header

import (
	"github.com/goopsie/upkfile/pkg/build"
	"github.com/goopsie/upkfile/pkg/stream"
)

// Version thresholds gating optional Summary fields (§4.D). No original
// reference implementation was available
// in this exercise's retrieval pack to check against real game files, so
// exact historical version numbers are illustrative rather than verified.
const (
	ThresholdAddedTotalHeaderSize      int32 = 249
	ThresholdAddedFolderName           int32 = 269
	ThresholdHeritageTableDeprecated   int32 = 69
	ThresholdAddedDependsTable         int32 = 47
	ThresholdAddedImportExportGUIDs    int32 = 416
	ThresholdAddedThumbnailTable       int32 = 584
	ThresholdCompressionAdded          int32 = 334
	ThresholdAddedPackageSource        int32 = 482
	ThresholdAddedAdditionalPkgsToCook int32 = 516
	ThresholdAddedTextureAllocations   int32 = 767

	// UE4 file-version thresholds.
	ThresholdUE4GatherableTextData int32 = 459
	ThresholdUE4LocalizationID     int32 = 516

	// Export table field-shape thresholds, shared with pkg/upk's own
	// ReadExportTable/WriteExportTable so Validate's minimum-size estimate
	// stays consistent with the actual reader.
	ThresholdComponentMapRemoved int32 = 195
	ThresholdExportFlagsAdded    int32 = 195

	// ThresholdNameFlags64Added marks the UE3 widening of the Name table's
	// per-entry flags field from 32 to 64 bits. Below it (older UE1/UE2
	// engines), the flags field is a plain 32-bit word.
	ThresholdNameFlags64Added int32 = 195
)

// CustomVersion pairs a feature GUID with the version of that feature
// present in the file, used by UE4's custom-version list.
type CustomVersion struct {
	GUID    stream.GUID
	Version int32
}

// Generation records one historical save-point (§3 Generation).
type Generation struct {
	ExportCount  int32
	NameCount    int32
	NetObjectCount int32
}

// CompressedChunk describes one block of chunk-compressed data (§3).
type CompressedChunk struct {
	UncompressedOffset int32
	UncompressedSize   int32
	CompressedOffset   int32
	CompressedSize     int32
}

// EngineVersion4 is UE4's structured engine-version record.
type EngineVersion4 struct {
	Major      uint16
	Minor      uint16
	Patch      uint16
	Changelist uint32
	Branch     string
}

// Summary is the mutable package header descriptor (§3 Summary).
type Summary struct {
	SignatureTag uint32
	Order        stream.Order

	// LegacyVersion is the raw signed int32 immediately following the
	// signature. Negative (>= -7) marks a UE4/UE5 file.
	LegacyVersion int32

	Version         int32
	LicenseeVersion int16

	UE3Version         int32
	UE4FileVersion     int32
	UE4LicenseeVersion int32
	CustomVersions     []CustomVersion

	Platform build.Platform

	HeaderSize int32
	FolderName string

	LocalizationID          string
	NameCount               int32
	NameOffset              int32
	GatherableTextDataCount int32
	GatherableTextDataOffset int32

	ExportCount  int32
	ExportOffset int32
	ImportCount  int32
	ImportOffset int32

	HeritageCount  int32
	HeritageOffset int32

	DependsOffset int32

	StringAssetReferencesCount  int32
	StringAssetReferencesOffset int32
	SearchableNamesOffset      int32

	ImportGUIDsCount        int32
	ExportGUIDsCount        int32
	ImportExportGUIDsOffset int32

	ThumbnailTableOffset int32

	GUID stream.GUID

	Generations []Generation

	EngineVersion            int32
	EngineVersion4           *EngineVersion4
	CompatibleEngineVersion4 *EngineVersion4

	CookerVersion int32

	CompressionFlags uint32
	CompressedChunks []CompressedChunk

	PackageSource uint32

	AdditionalPackagesToCook []string

	TextureAllocations []byte

	AssetRegistryDataOffset int32
	BulkDataStartOffset     int64
	WorldTileInfoDataOffset int32
	ChunkIDs                []int32
	PreloadDependencyCount  int32
	PreloadDependencyOffset int32

	Branch build.BranchKey
	Build  build.Build
}

// IsUE4 reports whether LegacyVersion marks this Summary as a UE4/UE5
// header (negative, and within the supported range of -7..-1). A legacy
// version more negative than -7 is out of range, not UE4; the caller must
// reject it (§4.D step 2) rather than treat it as UE4-shaped.
func (s *Summary) IsUE4() bool {
	return s.LegacyVersion < 0 && s.LegacyVersion >= -7
}

// nameEntryMinSize is the smallest a Name entry can serialize to: an
// empty string (4-byte zero length, no data) plus the version-gated
// flags/hash field (§4.E).
func (s *Summary) nameEntryMinSize() int64 {
	if s.IsUE4() {
		return 4 + 4 // empty string + two uint16 hashes
	}
	if s.Version >= ThresholdNameFlags64Added {
		return 4 + 8 // empty string + 64-bit flags
	}
	return 4 + 4 // empty string + 32-bit flags
}

// importEntrySize is exact, not a minimum: every Import entry is three
// fixed 8-byte name references plus a 4-byte outer index, with no
// variable-length fields (§4.E).
const importEntrySize int64 = 8 + 8 + 4 + 8

// exportEntryMinSize is the smallest an Export entry can serialize to:
// every optional/variable-length piece (ComponentMap, NetObjectCount,
// PackageGUID+Flags) at its minimum extent of zero (§4.E).
func (s *Summary) exportEntryMinSize() int64 {
	size := int64(4 + 4 + 4 + 8) // class+super+outer+objectName
	if s.IsUE4() || s.Version >= ThresholdExportFlagsAdded {
		size += 4     // archetypeIndex
		size += 8     // 64-bit objectFlags
		size += 4 + 4 // fixed-width serialSize+serialOffset
	} else {
		size += 4     // 32-bit objectFlags
		size += 1 + 1 // packed-int serialSize+serialOffset, minimum one byte each
	}
	if !s.IsUE4() && s.Version < ThresholdComponentMapRemoved {
		size += 4 // componentMapCount, zero entries at minimum
	}
	if !s.IsUE4() && s.Version >= ThresholdExportFlagsAdded {
		size += 4 // exportFlags
	}
	if !s.IsUE4() {
		size += 4 * int64(len(s.Generations)) // one netObjectCount per generation
	}
	if !s.IsUE4() && s.Version >= ThresholdAddedImportExportGUIDs {
		size += 16 + 4 // packageGuid + packageFlags
	}
	return size
}

// Validate enforces the Summary's core invariant for the Name, Import and
// Export tables: header size must be at least as large as each table's
// offset plus that table's minimum possible byte length. Tables whose
// offset is zero (unused) are exempt; the Depends, ImportExportGUIDs and
// Thumbnail offsets are not checked.
// The per-entry sizes are minimums, not exact sizes, for Name and Export
// (both carry variable-length data); Import entries are fixed-size so its
// minimum is exact.
func (s *Summary) Validate() error {
	check := func(offset int32, minEnd int64, name string) error {
		if offset > 0 && minEnd > int64(s.HeaderSize) {
			return &InvariantError{Field: name, Offset: offset, HeaderSize: s.HeaderSize}
		}
		return nil
	}
	nameEnd := int64(s.NameOffset) + int64(s.NameCount)*s.nameEntryMinSize()
	if err := check(s.NameOffset, nameEnd, "NameOffset"); err != nil {
		return err
	}
	importEnd := int64(s.ImportOffset) + int64(s.ImportCount)*importEntrySize
	if err := check(s.ImportOffset, importEnd, "ImportOffset"); err != nil {
		return err
	}
	exportEnd := int64(s.ExportOffset) + int64(s.ExportCount)*s.exportEntryMinSize()
	if err := check(s.ExportOffset, exportEnd, "ExportOffset"); err != nil {
		return err
	}
	return nil
}

// InvariantError reports a Summary invariant violation.
type InvariantError struct {
	Field      string
	Offset     int32
	HeaderSize int32
}

func (e *InvariantError) Error() string {
	return "header invariant violated: " + e.Field + " offset exceeds header size"
}
