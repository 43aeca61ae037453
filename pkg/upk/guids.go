package upk

import (
	"github.com/goopsie/upkfile/pkg/diag"
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

// ReadImportExportGUIDs reads the ImportGUIDsCount+ExportGUIDsCount entries
// at sum.ImportExportGUIDsOffset (§3, §4.E). TableRecoverable: failures are
// reported to sink rather than aborting the load.
func ReadImportExportGUIDs(s *stream.Stream, sum *header.Summary, sink *diag.Sink) []ImportExportGUID {
	if sum.ImportExportGUIDsOffset == 0 {
		return nil
	}
	if _, err := s.Seek(int64(sum.ImportExportGUIDsOffset), 0); err != nil {
		warn(sink, diag.KindImportExportGUIDs, "seek to ImportExportGUIDs table failed", int64(sum.ImportExportGUIDsOffset), err)
		return nil
	}
	total := int(sum.ImportGUIDsCount) + int(sum.ExportGUIDsCount)
	out := make([]ImportExportGUID, 0, total)
	for i := 0; i < total; i++ {
		var entry ImportExportGUID
		if i < int(sum.ImportGUIDsCount) {
			// Import half: (import-index, GUID).
			idx, err := s.I32("importExportGuid.importIndex")
			if err != nil {
				warn(sink, diag.KindImportExportGUIDs, "ImportExportGUIDs table truncated", int64(sum.ImportExportGUIDsOffset), err)
				return out
			}
			g, err := s.GUID("importExportGuid.guid")
			if err != nil {
				warn(sink, diag.KindImportExportGUIDs, "ImportExportGUIDs table truncated", int64(sum.ImportExportGUIDsOffset), err)
				return out
			}
			entry = ImportExportGUID{ImportIndex: idx, GUID: g}
		} else {
			// Export half: (GUID, export-index), reversed from the import
			// half (§4.E).
			g, err := s.GUID("importExportGuid.guid")
			if err != nil {
				warn(sink, diag.KindImportExportGUIDs, "ImportExportGUIDs table truncated", int64(sum.ImportExportGUIDsOffset), err)
				return out
			}
			idx, err := s.I32("importExportGuid.exportIndex")
			if err != nil {
				warn(sink, diag.KindImportExportGUIDs, "ImportExportGUIDs table truncated", int64(sum.ImportExportGUIDsOffset), err)
				return out
			}
			entry = ImportExportGUID{ExportIndex: idx, GUID: g}
		}
		out = append(out, entry)
	}
	return out
}

// WriteImportExportGUIDs writes entries back out in the layout
// ReadImportExportGUIDs expects: import entries as (index, GUID), export
// entries as (GUID, index) — the two halves have reversed field order
// (§4.E). Entries must already be ordered import-half first.
func WriteImportExportGUIDs(s *stream.Stream, entries []ImportExportGUID) error {
	for _, e := range entries {
		if e.ImportIndex != 0 {
			if err := s.WriteI32(e.ImportIndex); err != nil {
				return err
			}
			if err := s.WriteGUID(e.GUID); err != nil {
				return err
			}
		} else {
			if err := s.WriteGUID(e.GUID); err != nil {
				return err
			}
			if err := s.WriteI32(e.ExportIndex); err != nil {
				return err
			}
		}
	}
	return nil
}
