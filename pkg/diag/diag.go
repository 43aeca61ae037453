// Package diag implements the write-only diagnostics channel (§6) that
// non-fatal table failures report through without aborting a load.
package diag

import (
	"github.com/charmbracelet/log"
)

// Kind names the category of a non-fatal diagnostic.
type Kind string

const (
	KindDepends            Kind = "depends"
	KindImportExportGUIDs  Kind = "import_export_guids"
	KindThumbnails         Kind = "thumbnails"
	KindTextureAllocations Kind = "texture_allocations"
	KindCompressed         Kind = "compressed"
	KindObjectDeserialize  Kind = "object_deserialize"
)

// Diagnostic is one recorded non-fatal event.
type Diagnostic struct {
	Kind    Kind
	Message string
	Offset  int64
	Err     error
}

// Sink collects diagnostics and forwards them to a structured logger.
type Sink struct {
	logger      *log.Logger
	Diagnostics []Diagnostic
}

// NewSink wraps logger. A nil logger falls back to log.Default().
func NewSink(logger *log.Logger) *Sink {
	if logger == nil {
		logger = log.Default()
	}
	return &Sink{logger: logger}
}

// Warn records a non-fatal diagnostic ("Couldn't parse Dependencies",
// "Missing package header data") and logs it without aborting the load.
func (s *Sink) Warn(kind Kind, msg string, offset int64, err error) {
	s.Diagnostics = append(s.Diagnostics, Diagnostic{Kind: kind, Message: msg, Offset: offset, Err: err})
	if s.logger != nil {
		s.logger.Warn(msg, "kind", string(kind), "offset", offset, "err", err)
	}
}
