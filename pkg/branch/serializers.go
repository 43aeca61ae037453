package branch

// objectSerializers is the process-wide dispatch table external
// per-class deserializer plug-ins register into at init time, mirroring
// the Branch registry's self-registration pattern above. DefaultBranch
// and every passthroughHooks-based licensee branch consult it so a
// plug-in only has to register once to be reachable from any branch that
// does not define its own class-specific override.
var objectSerializers = map[string]ObjectSerializerFunc{}

// RegisterObjectSerializer binds className to fn. Called from a
// serializer package's own init().
func RegisterObjectSerializer(className string, fn ObjectSerializerFunc) {
	objectSerializers[className] = fn
}

// lookupObjectSerializer is the shared lookup DefaultBranch and
// passthroughHooks-based branches use to satisfy Branch.ObjectSerializer.
func lookupObjectSerializer(className string) (ObjectSerializerFunc, bool) {
	fn, ok := objectSerializers[className]
	return fn, ok
}
