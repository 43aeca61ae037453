package branch

import (
	"github.com/goopsie/upkfile/pkg/build"
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

func init() {
	Register(build.BranchAA2, func() Branch { return &AA2Branch{} })
	Register(build.BranchDNF, func() Branch { return &DNFBranch{} })
	Register(build.BranchSFX, func() Branch { return &SFXBranch{} })
	Register(build.BranchAPB, func() Branch { return &APBBranch{} })
	Register(build.BranchRSS, func() Branch { return &RSSBranch{} })
	Register(build.BranchRL, func() Branch { return &RLBranch{} })
	Register(build.BranchSCX, func() Branch { return &SCXBranch{} })
	Register(build.BranchLead, func() Branch { return &LeadBranch{} })
	Register(build.BranchHMS, func() Branch { return &HMSBranch{} })
	Register(build.BranchHuxley, func() Branch { return &HuxleyBranch{} })
	Register(build.BranchR6Vegas, func() Branch { return &R6VegasBranch{} })
	Register(build.BranchDCUO, func() Branch { return &DCUOBranch{} })
}

// passthroughHooks is embedded by licensee branches whose Summary
// insertions are identical to DefaultBranch's (no extra fields), so only
// Key() and flag maps need overriding.
type passthroughHooks struct{}

func (passthroughHooks) PostDeserializeSummary(*stream.Stream, *header.Summary) error { return nil }
func (passthroughHooks) PostSerializeSummary(*stream.Stream, *header.Summary) error    { return nil }
func (passthroughHooks) PostDeserializePackage(PackageView, *stream.Stream) error      { return nil }
func (passthroughHooks) PostSerializePackage(PackageView, *stream.Stream) error        { return nil }
func (passthroughHooks) ObjectSerializer(className string) (ObjectSerializerFunc, bool) {
	return lookupObjectSerializer(className)
}
func (passthroughHooks) flagBit(table map[LogicalFlag]uint, kind FlagKind, logical LogicalFlag) (uint, bool) {
	if kind != PackageFlagKind && kind != ObjectFlagKind {
		return 0, false
	}
	bit, ok := table[logical]
	return bit, ok
}

// AA2Branch implements America's Army 2's licensee rules. No documented
// Summary insertions beyond the generic UE2.5 gating.
type AA2Branch struct{ passthroughHooks }

func (b *AA2Branch) Key() build.BranchKey { return build.BranchAA2 }
func (b *AA2Branch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	return b.flagBit(defaultPackageFlagBits, kind, logical)
}

// DNFBranch implements Duke Nukem Forever's licensee rules.
type DNFBranch struct{ passthroughHooks }

func (b *DNFBranch) Key() build.BranchKey { return build.BranchDNF }
func (b *DNFBranch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	return b.flagBit(defaultPackageFlagBits, kind, logical)
}

// SFXBranch is a stub for Mass Effect / BioWare's SFX engine branch. Its
// byte layout is speculative and intentionally out of scope (§9 Open
// Questions); every hook refuses.
type SFXBranch struct{}

func (b *SFXBranch) Key() build.BranchKey { return build.BranchSFX }
func (b *SFXBranch) PostDeserializeSummary(*stream.Stream, *header.Summary) error {
	return ErrNotSupported
}
func (b *SFXBranch) PostSerializeSummary(*stream.Stream, *header.Summary) error {
	return ErrNotSupported
}
func (b *SFXBranch) PostDeserializePackage(PackageView, *stream.Stream) error { return ErrNotSupported }
func (b *SFXBranch) PostSerializePackage(PackageView, *stream.Stream) error   { return ErrNotSupported }
func (b *SFXBranch) FlagBit(FlagKind, LogicalFlag) (uint, bool)               { return 0, false }
func (b *SFXBranch) ObjectSerializer(string) (ObjectSerializerFunc, bool)     { return nil, false }

// APBBranch implements All Points Bulletin's licensee rules.
type APBBranch struct{ passthroughHooks }

func (b *APBBranch) Key() build.BranchKey { return build.BranchAPB }
func (b *APBBranch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	return b.flagBit(defaultPackageFlagBits, kind, logical)
}

// RSSBranch implements Rogue Squadron / SOCOM's licensee rules.
type RSSBranch struct{ passthroughHooks }

func (b *RSSBranch) Key() build.BranchKey { return build.BranchRSS }
func (b *RSSBranch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	return b.flagBit(defaultPackageFlagBits, kind, logical)
}

// RLBranch implements Rock Legends' licensee rules.
type RLBranch struct{ passthroughHooks }

func (b *RLBranch) Key() build.BranchKey { return build.BranchRL }
func (b *RLBranch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	return b.flagBit(defaultPackageFlagBits, kind, logical)
}

// SCXBranch is a stub for late-licensee SCX builds whose byte layout past
// a certain version is speculative (§9 Open Questions).
type SCXBranch struct{}

func (b *SCXBranch) Key() build.BranchKey { return build.BranchSCX }
func (b *SCXBranch) PostDeserializeSummary(*stream.Stream, *header.Summary) error {
	return ErrNotSupported
}
func (b *SCXBranch) PostSerializeSummary(*stream.Stream, *header.Summary) error {
	return ErrNotSupported
}
func (b *SCXBranch) PostDeserializePackage(PackageView, *stream.Stream) error { return ErrNotSupported }
func (b *SCXBranch) PostSerializePackage(PackageView, *stream.Stream) error   { return ErrNotSupported }
func (b *SCXBranch) FlagBit(FlagKind, LogicalFlag) (uint, bool)               { return 0, false }
func (b *SCXBranch) ObjectSerializer(string) (ObjectSerializerFunc, bool)     { return nil, false }

// LeadBranch implements a Lead-studio internal game's licensee rules.
type LeadBranch struct{ passthroughHooks }

func (b *LeadBranch) Key() build.BranchKey { return build.BranchLead }
func (b *LeadBranch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	return b.flagBit(defaultPackageFlagBits, kind, logical)
}

// HMSBranch implements Hardware Murder Simulator's licensee rules. Reads
// one extra i32 immediately after PackageFlags (§4.D "build-specific
// inserts").
type HMSBranch struct {
	passthroughHooks
	ExtraField int32
}

func (b *HMSBranch) Key() build.BranchKey { return build.BranchHMS }

func (b *HMSBranch) PostDeserializeSummary(s *stream.Stream, sum *header.Summary) error {
	v, err := s.I32("hms.extra")
	if err != nil {
		return err
	}
	b.ExtraField = v
	return nil
}

func (b *HMSBranch) PostSerializeSummary(s *stream.Stream, sum *header.Summary) error {
	return s.WriteI32(b.ExtraField)
}

func (b *HMSBranch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	return b.flagBit(defaultPackageFlagBits, kind, logical)
}

// huxleySentinel is the fixed marker Huxley writes (and expects) right
// after the Summary's PackageFlags.
const huxleySentinel uint32 = 0xFEFEFEFE

// HuxleyBranch implements Huxley's licensee rules: a fixed 0xFEFEFEFE
// sentinel follows the Summary's PackageFlags.
type HuxleyBranch struct{ passthroughHooks }

func (b *HuxleyBranch) Key() build.BranchKey { return build.BranchHuxley }

func (b *HuxleyBranch) PostDeserializeSummary(s *stream.Stream, sum *header.Summary) error {
	v, err := s.U32("huxley.sentinel")
	if err != nil {
		return err
	}
	if v != huxleySentinel {
		return &stream.FormatError{Reason: "Huxley sentinel mismatch"}
	}
	return nil
}

func (b *HuxleyBranch) PostSerializeSummary(s *stream.Stream, sum *header.Summary) error {
	return s.WriteU32(huxleySentinel)
}

func (b *HuxleyBranch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	return b.flagBit(defaultPackageFlagBits, kind, logical)
}

// R6VegasBranch implements Rainbow Six Vegas's licensee rules: the file
// carries an extra cooker-version scalar in the gap between the Import and
// Export table bytes. Since every table is read by seeking directly to its
// recorded offset rather than sequentially, that gap is never naturally
// visited; this branch instead surfaces the value through
// PostDeserializePackage, called once all three primary tables are read,
// by reading it from wherever the stream cursor currently sits (the first
// byte past the last Export entry) rather than its original file position.
// This reproduces the value for round-tripping without depending on the
// gap's exact byte offset.
type R6VegasBranch struct {
	passthroughHooks
	PostImportCookerVersion int32
}

func (b *R6VegasBranch) Key() build.BranchKey { return build.BranchR6Vegas }

func (b *R6VegasBranch) PostDeserializePackage(pkg PackageView, s *stream.Stream) error {
	v, err := s.I32("r6vegas.postImportCookerVersion")
	if err != nil {
		return err
	}
	b.PostImportCookerVersion = v
	return nil
}

func (b *R6VegasBranch) PostSerializePackage(pkg PackageView, s *stream.Stream) error {
	return s.WriteI32(b.PostImportCookerVersion)
}

func (b *R6VegasBranch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	return b.flagBit(defaultPackageFlagBits, kind, logical)
}

// DCUOBranch implements DC Universe Online's licensee rules: table
// offsets read before AdditionalPackagesToCook must be retrofitted after
// that list is read, because DCUO inserts unannounced padding there.
type DCUOBranch struct {
	passthroughHooks
	OffsetShift int32
}

func (b *DCUOBranch) Key() build.BranchKey { return build.BranchDCUO }

// ReadOffsetPadding reads DCUO's unannounced padding field, inserted right
// after AdditionalPackagesToCook, and records its value as the shift
// ApplyOffsetRetrofit applies.
func (b *DCUOBranch) ReadOffsetPadding(s *stream.Stream) error {
	v, err := s.I32("dcuo.offsetPadding")
	if err != nil {
		return err
	}
	b.OffsetShift = v
	return nil
}

// WriteOffsetPadding writes back the padding field ReadOffsetPadding reads.
func (b *DCUOBranch) WriteOffsetPadding(s *stream.Stream) error {
	return s.WriteI32(b.OffsetShift)
}

// ApplyOffsetRetrofit shifts ThumbnailTableOffset and
// AssetRegistryDataOffset in sum by the branch's recorded shift, leaving
// either one untouched when it is zero; the Name, Import, Export, Depends
// and ImportExportGUIDs offsets keep the values read. Called by the Summary
// reader immediately after ReadOffsetPadding.
func (b *DCUOBranch) ApplyOffsetRetrofit(sum *header.Summary) {
	if b.OffsetShift == 0 {
		return
	}
	shift := func(v int32) int32 {
		if v == 0 {
			return 0
		}
		return v + b.OffsetShift
	}
	sum.ThumbnailTableOffset = shift(sum.ThumbnailTableOffset)
	sum.AssetRegistryDataOffset = shift(sum.AssetRegistryDataOffset)
}

func (b *DCUOBranch) FlagBit(kind FlagKind, logical LogicalFlag) (uint, bool) {
	return b.flagBit(defaultPackageFlagBits, kind, logical)
}
