// Package objectserializers exists purely for its import side effects:
// pulling in the example per-class plug-ins so their init() functions
// register with internal/classreg and pkg/branch before the first
// package load happens. Import this package (blank is fine) from any
// binary that wants the example class names resolvable.
package objectserializers

import (
	_ "github.com/goopsie/upkfile/pkg/objectserializers/assetref"
	_ "github.com/goopsie/upkfile/pkg/objectserializers/audioref"
	_ "github.com/goopsie/upkfile/pkg/objectserializers/colorblock"
	_ "github.com/goopsie/upkfile/pkg/objectserializers/texmeta"
)
