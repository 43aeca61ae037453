package upk

import (
	"github.com/goopsie/upkfile/pkg/diag"
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

// ReadThumbnailTable reads the thumbnail index at sum.ThumbnailTableOffset
// (§3, §4.E). Thumbnail bodies themselves are not loaded eagerly; callers
// read them lazily at each entry's DataOffset. TableRecoverable.
func ReadThumbnailTable(s *stream.Stream, sum *header.Summary, sink *diag.Sink) []ThumbnailEntry {
	if sum.ThumbnailTableOffset == 0 {
		return nil
	}
	if _, err := s.Seek(int64(sum.ThumbnailTableOffset), 0); err != nil {
		warn(sink, diag.KindThumbnails, "seek to thumbnail table failed", int64(sum.ThumbnailTableOffset), err)
		return nil
	}
	count, err := s.I32("thumbnails.count")
	if err != nil {
		warn(sink, diag.KindThumbnails, "thumbnail table truncated", int64(sum.ThumbnailTableOffset), err)
		return nil
	}
	out := make([]ThumbnailEntry, 0, count)
	for i := int32(0); i < count; i++ {
		className, err := s.String("thumbnails.className")
		if err != nil {
			warn(sink, diag.KindThumbnails, "thumbnail table truncated", int64(sum.ThumbnailTableOffset), err)
			return out
		}
		objectPath, err := s.String("thumbnails.objectPath")
		if err != nil {
			warn(sink, diag.KindThumbnails, "thumbnail table truncated", int64(sum.ThumbnailTableOffset), err)
			return out
		}
		dataOffset, err := s.I32("thumbnails.dataOffset")
		if err != nil {
			warn(sink, diag.KindThumbnails, "thumbnail table truncated", int64(sum.ThumbnailTableOffset), err)
			return out
		}
		out = append(out, ThumbnailEntry{ClassName: className, ObjectPath: objectPath, DataOffset: dataOffset})
	}
	return out
}

// WriteThumbnailTable writes entries back out in the layout
// ReadThumbnailTable expects.
func WriteThumbnailTable(s *stream.Stream, entries []ThumbnailEntry) error {
	if err := s.WriteI32(int32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := s.WriteString(e.ClassName); err != nil {
			return err
		}
		if err := s.WriteString(e.ObjectPath); err != nil {
			return err
		}
		if err := s.WriteI32(e.DataOffset); err != nil {
			return err
		}
	}
	return nil
}
