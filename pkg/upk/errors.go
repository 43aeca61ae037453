package upk

import "fmt"

// ObjectDeserializeError wraps a failure raised by an external object
// serializer, carrying the offending export index (§7).
type ObjectDeserializeError struct {
	ExportIndex int
	Err         error
}

func (e *ObjectDeserializeError) Error() string {
	return fmt.Sprintf("object deserialize failed for export %d: %v", e.ExportIndex, e.Err)
}

func (e *ObjectDeserializeError) Unwrap() error { return e.Err }

// AggregatedDeserializeError collects every ObjectDeserializeError from one
// Load call (§7: "wrapped ... and rethrown as a single aggregated error
// per load").
type AggregatedDeserializeError struct {
	Errors []*ObjectDeserializeError
}

func (e *AggregatedDeserializeError) Error() string {
	return fmt.Sprintf("%d object(s) failed to deserialize (first: export %d: %v)",
		len(e.Errors), e.Errors[0].ExportIndex, e.Errors[0].Err)
}
