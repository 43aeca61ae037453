// Package branch implements the polymorphic Engine Branch rules object
// (§4.C). A Branch is selected by the build registry and owns flag-bit
// mappings, build-specific Summary insertions, and the object-serializer
// dispatcher external per-class deserializers call into.
package branch

import (
	"fmt"

	"github.com/goopsie/upkfile/pkg/build"
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

// FlagKind names one of the six flag enums whose bit positions are
// branch-specific.
type FlagKind int

const (
	PackageFlagKind FlagKind = iota
	ObjectFlagKind
	PropertyFlagKind
	ClassFlagKind
	FunctionFlagKind
	StructFlagKind
)

// LogicalFlag is a branch-independent flag identity, e.g. "Cooked" or
// "Transient"; each Branch maps it to the bit position valid for that
// branch's generation of the engine.
type LogicalFlag string

// PackageView is the minimal package-level state a branch hook needs once
// all tables have been read.
type PackageView interface {
	NameCount() int
	ExportCount() int
	ImportCount() int
}

// ObjectContext is the minimal view of an object an external serializer
// needs.
type ObjectContext interface {
	ClassName() string
	Package() PackageView

	// Instance returns the Go value Construct created for this object
	// (the type registered in the class registry under ClassName, or an
	// UnknownObject placeholder) so a serializer can fill it in.
	Instance() any
}

// ObjectSerializerFunc deserializes one object's payload from a stream
// bounded to [serial-offset, serial-offset+serial-size) (§6).
type ObjectSerializerFunc func(obj ObjectContext, s *stream.Stream) error

// Branch is the polymorphic rules object (§4.C).
type Branch interface {
	Key() build.BranchKey

	// PostDeserializeSummary/PostSerializeSummary fix up the Summary
	// immediately after/before the generic parse.
	PostDeserializeSummary(s *stream.Stream, sum *header.Summary) error
	PostSerializeSummary(s *stream.Stream, sum *header.Summary) error

	// PostDeserializePackage/PostSerializePackage run after/before all
	// tables are read/written.
	PostDeserializePackage(pkg PackageView, s *stream.Stream) error
	PostSerializePackage(pkg PackageView, s *stream.Stream) error

	// FlagBit maps a LogicalFlag to the bit position valid for this
	// branch, or ok=false if this branch does not define that flag.
	FlagBit(kind FlagKind, logical LogicalFlag) (bit uint, ok bool)

	// ObjectSerializer looks up the versioned serializer for a class name.
	ObjectSerializer(className string) (ObjectSerializerFunc, bool)
}

// ErrNotSupported is returned by stub branches whose byte layout is
// speculative and intentionally out of scope (§9 Open Questions).
var ErrNotSupported = fmt.Errorf("branch: not supported")

var registry = map[build.BranchKey]func() Branch{}

// Register adds a branch constructor to the registry. Branches register
// themselves from an init() function in their own file.
func Register(key build.BranchKey, ctor func() Branch) {
	registry[key] = ctor
}

// New instantiates the branch registered under key, or the DefaultBranch
// if key is unregistered.
func New(key build.BranchKey) Branch {
	if ctor, ok := registry[key]; ok {
		return ctor()
	}
	return NewDefault()
}
