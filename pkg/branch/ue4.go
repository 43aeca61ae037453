package branch

import (
	"github.com/goopsie/upkfile/pkg/build"
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

func init() {
	Register(build.BranchUE4, func() Branch { return NewUE4() })
}

// UE4 re-numbered most flag bits relative to UE3; these tables reflect
// that renumbering rather than reusing defaultPackageFlagBits.
var ue4PackageFlagBits = map[LogicalFlag]uint{
	"ClientOptional": 0,
	"ServerSideOnly": 1,
	"Cooked":         3,
	"ContainsMap":    10,
	"Compiling":      11,
	"ContainsScript": 12,
	"DisallowLazyLoading": 13,
	"UnversionedProperties": 25,
	"FilterEditorOnly": 27,
}

var ue4ObjectFlagBits = map[LogicalFlag]uint{
	"Public":      0,
	"Standalone":  1,
	"Transactional": 3,
	"ClassDefaultObject": 4,
	"ArchetypeObject":    5,
	"Transient":          6,
	"Native":             25,
}

// UE4Branch implements the UE4/UE5 Summary tail (AssetRegistry, BulkData,
// WorldTileInfo, ChunkIdentifiers, PreloadDependency) gating and UE4's
// flag-bit numbering. The tail fields themselves are read directly by the
// Summary reader (§4.D steps 22-23); this branch contributes only the
// flag maps and the (currently empty) insertion hooks.
type UE4Branch struct{}

// NewUE4 constructs a UE4Branch.
func NewUE4() *UE4Branch { return &UE4Branch{} }

func (b *UE4Branch) Key() build.BranchKey { return build.BranchUE4 }

func (b *UE4Branch) PostDeserializeSummary(s *stream.Stream, sum *header.Summary) error {
	return nil
}

func (b *UE4Branch) PostSerializeSummary(s *stream.Stream, sum *header.Summary) error {
	return nil
}

func (b *UE4Branch) PostDeserializePackage(pkg PackageView, s *stream.Stream) error {
	return nil
}

func (b *UE4Branch) PostSerializePackage(pkg PackageView, s *stream.Stream) error {
	return nil
}

func (b *UE4Branch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	switch kind {
	case PackageFlagKind:
		bit, ok := ue4PackageFlagBits[logical]
		return bit, ok
	case ObjectFlagKind:
		bit, ok := ue4ObjectFlagBits[logical]
		return bit, ok
	default:
		return 0, false
	}
}

func (b *UE4Branch) ObjectSerializer(className string) (ObjectSerializerFunc, bool) {
	return nil, false
}
