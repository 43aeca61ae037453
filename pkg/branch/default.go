package branch

import (
	"github.com/goopsie/upkfile/pkg/build"
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

func init() {
	Register(build.BranchDefault, func() Branch { return NewDefault() })
}

// defaultPackageFlagBits maps logical package flags to the bit positions
// used by UE1/UE2/UE3 generically (before any licensee re-numbering).
var defaultPackageFlagBits = map[LogicalFlag]uint{
	"AllowDownload":  0,
	"ClientOptional": 1,
	"ServerSideOnly": 2,
	"BrokenLinks":    4,
	"Unsecure":       5,
	"Official":       7,
	"Cooked":         9,
	"Compiling":      16,
	"ContainsMap":    17,
	"Trash":          18,
	"DisallowLazyLoading": 19,
	"PlayInEditor":   20,
	"ContainsScript": 21,
	"ContainsDebugInfo": 22,
}

var defaultObjectFlagBits = map[LogicalFlag]uint{
	"Transient":   0,
	"LoadForClient": 1,
	"LoadForServer": 2,
	"LoadForEdit": 3,
	"Standalone":  4,
	"Public":      5,
	"Native":      6,
	"Final":       7,
}

// DefaultBranch implements the generic UE1/UE2/UE3 rules with no
// build-specific Summary insertions.
type DefaultBranch struct {
	// quirkTeraNameCountOverride reproduces Tera's habit of overwriting
	// NameCount from the last generation entry on load. The underlying
	// reason is unknown (§9 Open Questions); flagged as suspect.
	quirkTeraNameCountOverride bool
}

// NewDefault constructs a DefaultBranch.
func NewDefault() *DefaultBranch { return &DefaultBranch{} }

// NewTera constructs a DefaultBranch with the Tera generation quirk
// enabled.
func NewTera() *DefaultBranch { return &DefaultBranch{quirkTeraNameCountOverride: true} }

func (b *DefaultBranch) Key() build.BranchKey { return build.BranchDefault }

func (b *DefaultBranch) PostDeserializeSummary(s *stream.Stream, sum *header.Summary) error {
	return nil
}

func (b *DefaultBranch) PostSerializeSummary(s *stream.Stream, sum *header.Summary) error {
	return nil
}

func (b *DefaultBranch) PostDeserializePackage(pkg PackageView, s *stream.Stream) error {
	return nil
}

func (b *DefaultBranch) PostSerializePackage(pkg PackageView, s *stream.Stream) error {
	return nil
}

func (b *DefaultBranch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	switch kind {
	case PackageFlagKind:
		bit, ok := defaultPackageFlagBits[logical]
		return bit, ok
	case ObjectFlagKind:
		bit, ok := defaultObjectFlagBits[logical]
		return bit, ok
	default:
		return 0, false
	}
}

func (b *DefaultBranch) ObjectSerializer(className string) (ObjectSerializerFunc, bool) {
	return lookupObjectSerializer(className)
}

// ApplyTeraGenerationQuirk overwrites sum.NameCount from the last
// generation entry, matching Tera's observed (and unexplained) behavior.
func (b *DefaultBranch) ApplyTeraGenerationQuirk(sum *header.Summary) {
	if !b.quirkTeraNameCountOverride || len(sum.Generations) == 0 {
		return
	}
	sum.NameCount = sum.Generations[len(sum.Generations)-1].NameCount
}
