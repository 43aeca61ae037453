package upk

import (
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

// ReadNameTable reads sum.NameCount entries starting at sum.NameOffset
// (§4.E). Three entry shapes, picked by version: UE4 drops the flags field
// entirely in favor of two precomputed hashes; UE3 carries 64-bit flags;
// older UE1/UE2 builds carry 32-bit flags. The caller is responsible for
// seeking s to NameOffset first.
func ReadNameTable(s *stream.Stream, sum *header.Summary) ([]NameEntry, error) {
	entries := make([]NameEntry, sum.NameCount)
	for i := range entries {
		name, err := s.String("name.name")
		if err != nil {
			return nil, err
		}
		entries[i].Name = name
		switch {
		case sum.IsUE4():
			nonCase, err := s.U16("name.nonCasePreservingHash")
			if err != nil {
				return nil, err
			}
			casePreserving, err := s.U16("name.casePreservingHash")
			if err != nil {
				return nil, err
			}
			entries[i].NonCasePreservingHash = nonCase
			entries[i].CasePreservingHash = casePreserving
		case sum.Version >= header.ThresholdNameFlags64Added:
			flags, err := s.U64("name.flags")
			if err != nil {
				return nil, err
			}
			entries[i].Flags = flags
		default:
			flags, err := s.U32("name.flags32")
			if err != nil {
				return nil, err
			}
			entries[i].Flags = uint64(flags)
		}
	}
	return entries, nil
}

// WriteNameTable writes entries in the layout ReadNameTable expects.
func WriteNameTable(s *stream.Stream, sum *header.Summary, entries []NameEntry) error {
	for _, e := range entries {
		if err := s.WriteString(e.Name); err != nil {
			return err
		}
		switch {
		case sum.IsUE4():
			if err := s.WriteU16(e.NonCasePreservingHash); err != nil {
				return err
			}
			if err := s.WriteU16(e.CasePreservingHash); err != nil {
				return err
			}
		case sum.Version >= header.ThresholdNameFlags64Added:
			if err := s.WriteU64(e.Flags); err != nil {
				return err
			}
		default:
			if err := s.WriteU32(uint32(e.Flags)); err != nil {
				return err
			}
		}
	}
	return nil
}
