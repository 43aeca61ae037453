package upk

import (
	"github.com/goopsie/upkfile/pkg/build"
	"github.com/goopsie/upkfile/pkg/diag"
)

// LoadFlag selects which phases of Load to run (§4.G).
type LoadFlag int

const (
	// RegisterClasses seals the class registry (internal/classreg) before
	// construction, fixing the class-name->type bindings that init-time
	// Register calls added; it registers nothing itself.
	RegisterClasses LoadFlag = 1 << iota
	// Construct materializes placeholder objects for every import/export.
	Construct
	// Deserialize hands each export's bounded payload to its registered
	// object serializer.
	Deserialize
	// Link invokes LoadOptions.OnLink once per object; no method on the
	// object or its Value is called.
	Link
)

// LoadOptions replaces the process-wide Platform/OverrideVersion globals
// with an explicit struct passed into Load (§6, §9 Design Notes).
type LoadOptions struct {
	Platform                build.Platform
	OverrideVersion         *int32
	OverrideLicenseeVersion *int16
	Flags                   LoadFlag
	Logger                  *diag.Sink
	// PathHint is the on-disk path (or folder) the file was opened from,
	// used for the CookedPC/CookedPCConsole/... platform heuristic (§4.D
	// step 3). Load sets this automatically; LoadReader callers should
	// set it themselves if the heuristic matters.
	PathHint string
	Trace    bool

	// Event callbacks, each optional, invoked as the corresponding load
	// phase touches an object (§4.G).
	OnObject      func(*Object)
	OnConstruct   func(*Object)
	OnDeserialize func(*Object, error)
	OnLink        func(*Object)
}

// DefaultLoadOptions returns the common case: run every phase.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{Flags: RegisterClasses | Construct | Deserialize | Link}
}
