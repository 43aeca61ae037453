package main

import (
	"fmt"

	"github.com/goopsie/upkfile/pkg/diag"
	"github.com/goopsie/upkfile/pkg/upk"
)

// loadPackage opens path and runs exactly the phases flags selects,
// wiring the shared --platform/--trace/--verbose flags into LoadOptions.
func loadPackage(path string, flags upk.LoadFlag) (*upk.Package, error) {
	platform, err := resolvePlatform()
	if err != nil {
		return nil, err
	}
	opts := upk.LoadOptions{
		Platform: platform,
		Flags:    flags,
		Trace:    flagTrace,
		Logger:   diag.NewSink(nil),
	}
	pkg, err := upk.Load(path, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if flagVerbose {
		for _, d := range pkg.Diagnostics.Diagnostics {
			fmt.Printf("warning: %s: %s (offset=%d err=%v)\n", d.Kind, d.Message, d.Offset, d.Err)
		}
	}
	return pkg, nil
}

// allPhases runs every Load phase: class registration, object
// construction, export deserialization, and link callbacks.
func allPhases() upk.LoadFlag {
	return upk.RegisterClasses | upk.Construct | upk.Deserialize | upk.Link
}
