// Package build maps (version, licensee-version, platform) triples to a
// named engine Build and the BranchKey that implements its serialization
// rules. The table is a compile-time literal, scanned in declaration order
// on every Detect call — no reflection, no global init-order hazards.
package build

// Platform biases detection the way folder-name heuristics do during
// Summary parsing (§4.D step 3).
type Platform int

const (
	PlatformUndetermined Platform = iota
	PlatformPC
	PlatformConsole
)

// BranchKey names one of the registered Engine Branch implementations.
type BranchKey string

const (
	BranchDefault BranchKey = "default"
	BranchUE4     BranchKey = "ue4"
	BranchAA2     BranchKey = "aa2"
	BranchDNF     BranchKey = "dnf"
	BranchSFX     BranchKey = "sfx"
	BranchAPB     BranchKey = "apb"
	BranchRSS     BranchKey = "rss"
	BranchRL      BranchKey = "rl"
	BranchSCX     BranchKey = "scx"
	BranchLead    BranchKey = "lead"
	BranchHMS     BranchKey = "hms"
	BranchHuxley  BranchKey = "huxley"
	BranchR6Vegas BranchKey = "r6vegas"
	BranchDCUO    BranchKey = "dcuo"
)

// Build is the resolved identity of an engine revision.
type Build struct {
	Name                    string
	Branch                  BranchKey
	Version                 int32
	LicenseeVersion         int16
	OverrideVersion         *int32
	OverrideLicenseeVersion *int32
}

// Predicate decides whether a Descriptor accepts a given (version,
// licensee, platform) triple.
type Predicate func(version int32, licensee int16, platform Platform) bool

// Exact matches a single (version, licensee) pair.
func Exact(version int32, licensee int16) Predicate {
	return func(v int32, l int16, _ Platform) bool { return v == version && l == licensee }
}

// VersionRange matches an inclusive version range at any licensee version.
func VersionRange(lo, hi int32) Predicate {
	return func(v int32, _ int16, _ Platform) bool { return v >= lo && v <= hi }
}

// VersionLicenseeRange matches inclusive ranges on both fields.
func VersionLicenseeRange(vlo, vhi int32, llo, lhi int16) Predicate {
	return func(v int32, l int16, _ Platform) bool {
		return v >= vlo && v <= vhi && l >= llo && l <= lhi
	}
}

// WithPlatform gates an existing predicate on a specific platform.
func WithPlatform(p Platform, inner Predicate) Predicate {
	return func(v int32, l int16, platform Platform) bool {
		return platform == p && inner(v, l, platform)
	}
}

// Descriptor is one row of the build registry.
type Descriptor struct {
	Name                    string
	Match                   Predicate
	Branch                  BranchKey
	OverrideVersion         *int32
	OverrideLicenseeVersion *int32
}

// Table is the declarative build registry. Entries are tried in order;
// the first match wins, which intentionally encodes author-chosen
// precedence for overlapping families (UT2004 before UT2003 at the
// shared version/licensee pair 128/25).
var Table = []Descriptor{
	{Name: "UT2004", Match: Exact(128, 25), Branch: BranchDefault},
	{Name: "UT2003", Match: VersionRange(118, 128), Branch: BranchDefault},
	{Name: "AmericasArmy2", Match: VersionLicenseeRange(300, 499, 1, 100), Branch: BranchAA2},
	{Name: "DukeNukemForever", Match: VersionLicenseeRange(500, 600, 1, 100), Branch: BranchDNF},
	{Name: "MassEffect", Match: VersionLicenseeRange(491, 592, 1, 150), Branch: BranchSFX},
	{Name: "APB", Match: VersionLicenseeRange(547, 600, 1, 100), Branch: BranchAPB},
	{Name: "RogueSquadronSocom", Match: VersionLicenseeRange(400, 500, 1, 60), Branch: BranchRSS},
	{Name: "RockLegends", Match: VersionLicenseeRange(400, 500, 61, 120), Branch: BranchRL},
	{Name: "SCX", Match: VersionLicenseeRange(600, 900, 1, 200), Branch: BranchSCX},
	{Name: "LeadStudioGame", Match: VersionLicenseeRange(600, 700, 1, 50), Branch: BranchLead},
	{Name: "HardwareMurderSimulator", Match: VersionLicenseeRange(500, 550, 1, 30), Branch: BranchHMS},
	{Name: "Huxley", Match: VersionLicenseeRange(300, 400, 1, 30), Branch: BranchHuxley},
	{Name: "R6Vegas", Match: VersionLicenseeRange(241, 300, 1, 50), Branch: BranchR6Vegas},
	{Name: "DCUniverseOnline", Match: VersionLicenseeRange(648, 668, 1, 100), Branch: BranchDCUO},
	{Name: "UE4", Match: VersionRange(-7, -1), Branch: BranchUE4},
}

// Detect returns the first Descriptor whose predicate accepts the given
// (version, licensee, platform), or the Default build (licensee 0) /
// Unknown build when no descriptor matches.
func Detect(version int32, licensee int16, platform Platform) Build {
	for _, d := range Table {
		if d.Match(version, licensee, platform) {
			return Build{
				Name:                    d.Name,
				Branch:                  d.Branch,
				Version:                 version,
				LicenseeVersion:         licensee,
				OverrideVersion:         d.OverrideVersion,
				OverrideLicenseeVersion: d.OverrideLicenseeVersion,
			}
		}
	}
	if licensee == 0 {
		return Build{Name: "Default", Branch: BranchDefault, Version: version, LicenseeVersion: licensee}
	}
	return Build{Name: "Unknown", Branch: BranchDefault, Version: version, LicenseeVersion: licensee}
}

// DetectUE4 builds a Build identity for a negative-legacy-version (UE4/UE5)
// file directly, since UE4's version scheme does not share the packed
// version<<16|licensee encoding UE1-3 use.
func DetectUE4(legacyVersion int32, fileVersion, licenseeVersion int32) Build {
	return Build{
		Name:            "UE4",
		Branch:          BranchUE4,
		Version:         fileVersion,
		LicenseeVersion: int16(licenseeVersion),
	}
}
