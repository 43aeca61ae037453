package upk

import (
	"github.com/goopsie/upkfile/pkg/diag"
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

// ReadDependsTable reads the per-export dependency-index lists at
// sum.DependsOffset (§3, §4.E). The table is TableRecoverable (§6): a
// parse failure is reported to sink and the load continues with a nil
// table rather than aborting.
func ReadDependsTable(s *stream.Stream, sum *header.Summary, sink *diag.Sink) [][]int32 {
	if sum.DependsOffset == 0 {
		return nil
	}
	if _, err := s.Seek(int64(sum.DependsOffset), 0); err != nil {
		warn(sink, diag.KindDepends, "seek to Depends table failed", int64(sum.DependsOffset), err)
		return nil
	}
	out := make([][]int32, sum.ExportCount)
	for i := range out {
		count, err := s.I32("depends.count")
		if err != nil {
			warn(sink, diag.KindDepends, "Depends table truncated", int64(sum.DependsOffset), err)
			return nil
		}
		deps := make([]int32, count)
		for j := range deps {
			v, err := s.I32("depends.index")
			if err != nil {
				warn(sink, diag.KindDepends, "Depends table truncated", int64(sum.DependsOffset), err)
				return nil
			}
			deps[j] = v
		}
		out[i] = deps
	}
	return out
}

// WriteDependsTable writes depends back out in the layout ReadDependsTable
// expects.
func WriteDependsTable(s *stream.Stream, depends [][]int32) error {
	for _, deps := range depends {
		if err := s.WriteI32(int32(len(deps))); err != nil {
			return err
		}
		for _, v := range deps {
			if err := s.WriteI32(v); err != nil {
				return err
			}
		}
	}
	return nil
}

func warn(sink *diag.Sink, kind diag.Kind, msg string, offset int64, err error) {
	if sink != nil {
		sink.Warn(kind, msg, offset, err)
	}
}
