package upk

import (
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

// Export table field-shape thresholds live in pkg/upk/header
// (ThresholdComponentMapRemoved, ThresholdExportFlagsAdded) so
// Summary.Validate's minimum-table-size estimate can use the same
// constants as the reader/writer below.

// ReadExportTable reads sum.ExportCount entries starting at sum.ExportOffset
// (§3, §4.E).
func ReadExportTable(s *stream.Stream, sum *header.Summary) ([]ExportEntry, error) {
	entries := make([]ExportEntry, sum.ExportCount)
	for i := range entries {
		var e ExportEntry
		var err error
		cls, err := s.I32("export.classIndex")
		if err != nil {
			return nil, err
		}
		e.ClassIndex = PackageIndex(cls)

		super, err := s.I32("export.superIndex")
		if err != nil {
			return nil, err
		}
		e.SuperIndex = PackageIndex(super)

		outer, err := s.I32("export.outerIndex")
		if err != nil {
			return nil, err
		}
		e.OuterIndex = PackageIndex(outer)

		name, err := s.NameReference("export.objectName")
		if err != nil {
			return nil, err
		}
		e.ObjectName = name

		if sum.IsUE4() || sum.Version >= header.ThresholdExportFlagsAdded {
			arch, err := s.I32("export.archetypeIndex")
			if err != nil {
				return nil, err
			}
			e.ArchetypeIndex = PackageIndex(arch)
		}

		if sum.IsUE4() || sum.Version >= header.ThresholdExportFlagsAdded {
			flags, err := s.U64("export.objectFlags")
			if err != nil {
				return nil, err
			}
			e.ObjectFlags = flags
		} else {
			flags, err := s.U32("export.objectFlags32")
			if err != nil {
				return nil, err
			}
			e.ObjectFlags = uint64(flags)
		}

		if sum.IsUE4() || sum.Version >= header.ThresholdExportFlagsAdded {
			e.SerialSize, err = s.I32("export.serialSize")
			if err != nil {
				return nil, err
			}
			e.SerialOffset, err = s.I32("export.serialOffset")
			if err != nil {
				return nil, err
			}
		} else {
			e.SerialSize, err = s.PackedInt("export.serialSize")
			if err != nil {
				return nil, err
			}
			e.SerialOffset, err = s.PackedInt("export.serialOffset")
			if err != nil {
				return nil, err
			}
		}

		if !sum.IsUE4() && sum.Version < header.ThresholdComponentMapRemoved {
			count, err := s.I32("export.componentMapCount")
			if err != nil {
				return nil, err
			}
			e.ComponentMap = make([]ComponentMapEntry, count)
			for j := range e.ComponentMap {
				cname, err := s.NameReference("export.componentMap.name")
				if err != nil {
					return nil, err
				}
				cobj, err := s.I32("export.componentMap.objectIndex")
				if err != nil {
					return nil, err
				}
				e.ComponentMap[j] = ComponentMapEntry{Name: cname, ObjectIndex: PackageIndex(cobj)}
			}
		}

		if !sum.IsUE4() && sum.Version >= header.ThresholdExportFlagsAdded {
			ef, err := s.U32("export.exportFlags")
			if err != nil {
				return nil, err
			}
			e.ExportFlags = ef
		}

		if !sum.IsUE4() && len(sum.Generations) > 0 {
			e.NetObjectCount = make([]int32, len(sum.Generations))
			for j := range e.NetObjectCount {
				v, err := s.I32("export.netObjectCount")
				if err != nil {
					return nil, err
				}
				e.NetObjectCount[j] = v
			}
		}

		if !sum.IsUE4() && sum.Version >= header.ThresholdAddedImportExportGUIDs {
			g, err := s.GUID("export.packageGuid")
			if err != nil {
				return nil, err
			}
			e.PackageGUID = &g
			pf, err := s.U32("export.packageFlags")
			if err != nil {
				return nil, err
			}
			e.PackageFlags = &pf
		}

		entries[i] = e
	}
	return entries, nil
}

// WriteExportTable writes entries in the layout ReadExportTable expects.
func WriteExportTable(s *stream.Stream, sum *header.Summary, entries []ExportEntry) error {
	for _, e := range entries {
		if err := s.WriteI32(int32(e.ClassIndex)); err != nil {
			return err
		}
		if err := s.WriteI32(int32(e.SuperIndex)); err != nil {
			return err
		}
		if err := s.WriteI32(int32(e.OuterIndex)); err != nil {
			return err
		}
		if err := s.WriteNameReference(e.ObjectName); err != nil {
			return err
		}
		if sum.IsUE4() || sum.Version >= header.ThresholdExportFlagsAdded {
			if err := s.WriteI32(int32(e.ArchetypeIndex)); err != nil {
				return err
			}
		}
		if sum.IsUE4() || sum.Version >= header.ThresholdExportFlagsAdded {
			if err := s.WriteU64(e.ObjectFlags); err != nil {
				return err
			}
		} else {
			if err := s.WriteU32(uint32(e.ObjectFlags)); err != nil {
				return err
			}
		}
		if sum.IsUE4() || sum.Version >= header.ThresholdExportFlagsAdded {
			if err := s.WriteI32(e.SerialSize); err != nil {
				return err
			}
			if err := s.WriteI32(e.SerialOffset); err != nil {
				return err
			}
		} else {
			if err := s.WritePackedInt(e.SerialSize); err != nil {
				return err
			}
			if err := s.WritePackedInt(e.SerialOffset); err != nil {
				return err
			}
		}
		if !sum.IsUE4() && sum.Version < header.ThresholdComponentMapRemoved {
			if err := s.WriteI32(int32(len(e.ComponentMap))); err != nil {
				return err
			}
			for _, c := range e.ComponentMap {
				if err := s.WriteNameReference(c.Name); err != nil {
					return err
				}
				if err := s.WriteI32(int32(c.ObjectIndex)); err != nil {
					return err
				}
			}
		}
		if !sum.IsUE4() && sum.Version >= header.ThresholdExportFlagsAdded {
			if err := s.WriteU32(e.ExportFlags); err != nil {
				return err
			}
		}
		if !sum.IsUE4() && len(sum.Generations) > 0 {
			// The reader always consumes exactly one int32 per generation;
			// pad with zeros if the in-memory slice is short.
			for i := 0; i < len(sum.Generations); i++ {
				var v int32
				if i < len(e.NetObjectCount) {
					v = e.NetObjectCount[i]
				}
				if err := s.WriteI32(v); err != nil {
					return err
				}
			}
		}
		if !sum.IsUE4() && sum.Version >= header.ThresholdAddedImportExportGUIDs {
			var g stream.GUID
			if e.PackageGUID != nil {
				g = *e.PackageGUID
			}
			if err := s.WriteGUID(g); err != nil {
				return err
			}
			var pf uint32
			if e.PackageFlags != nil {
				pf = *e.PackageFlags
			}
			if err := s.WriteU32(pf); err != nil {
				return err
			}
		}
	}
	return nil
}
