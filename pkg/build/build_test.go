package build

import "testing"

func TestDetectTieBreak(t *testing.T) {
	// Seed scenario 6: version=128 licensee=25 must resolve to UT2004
	// before UT2003, per declaration order in Table.
	b := Detect(128, 25, PlatformUndetermined)
	if b.Name != "UT2004" {
		t.Fatalf("Detect(128,25) = %q, want UT2004", b.Name)
	}
}

func TestDetectDefaultAndUnknown(t *testing.T) {
	b := Detect(999999, 0, PlatformUndetermined)
	if b.Name != "Default" {
		t.Errorf("Detect with licensee 0 and no match = %q, want Default", b.Name)
	}
	u := Detect(999999, 7, PlatformUndetermined)
	if u.Name != "Unknown" {
		t.Errorf("Detect with licensee!=0 and no match = %q, want Unknown", u.Name)
	}
}

func TestDetectUE4Range(t *testing.T) {
	b := Detect(-5, 0, PlatformUndetermined)
	if b.Branch != BranchUE4 {
		t.Errorf("Detect(-5,0) branch = %q, want ue4", b.Branch)
	}
}
