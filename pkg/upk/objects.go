package upk

import (
	"fmt"

	"github.com/goopsie/upkfile/internal/classreg"
	"github.com/goopsie/upkfile/pkg/branch"
)

// Object is one resolved import or export: a name, a resolved class name,
// and (once Construct has run) the constructed Go value for that class, or
// an UnknownObject placeholder when the class is unregistered (§4.F).
type Object struct {
	Index     PackageIndex
	Name      string
	Class     string
	Outer     *Object
	Archetype *Object

	// Super is the export's parent class object (Export.SuperIndex), nil
	// for imports and for exports with no SuperIndex. Construct walks this
	// chain when Class itself has no registered Go type (§4.F).
	Super *Object

	// Value is the constructed Go value: either the type registered
	// under Class in classreg, or an *UnknownObject if nothing claims it.
	// Populated by Construct; nil before then.
	Value any

	pkg      *Package
	isImport bool
	deserErr error
}

// ClassName satisfies branch.ObjectContext.
func (o *Object) ClassName() string { return o.Class }

// Package satisfies branch.ObjectContext.
func (o *Object) Package() branch.PackageView { return o.pkg }

// Instance satisfies branch.ObjectContext, giving a registered
// ObjectSerializerFunc the Go value Construct created for this object.
func (o *Object) Instance() any { return o.Value }

// UnknownObject is the placeholder constructed for a class name that has
// no registered Go type (§4.F: "construction never fails outright").
type UnknownObject struct {
	ClassName string
}

// outerChainDepthLimit bounds the outer-chain walk so a malformed file with
// a cyclic OuterIndex graph cannot loop forever (§8: outer-chain resolution
// must terminate).
const outerChainDepthLimit = 1 << 16

// resolveObject resolves idx to an *Object, memoizing in p.objects and
// detecting OuterIndex/SuperIndex cycles with visiting.
func (p *Package) resolveObject(idx PackageIndex, visiting map[PackageIndex]bool) (*Object, error) {
	if idx.IsNone() {
		return nil, nil
	}
	if obj, ok := p.objects[idx]; ok {
		return obj, nil
	}
	if len(visiting) > outerChainDepthLimit {
		return nil, fmt.Errorf("upk: outer-chain depth limit exceeded at index %d", int32(idx))
	}
	if visiting[idx] {
		return nil, fmt.Errorf("upk: cyclic object reference at index %d", int32(idx))
	}
	visiting[idx] = true
	defer delete(visiting, idx)

	var obj *Object
	if idx.IsImport() {
		imp := p.Imports[idx.ImportIndex()]
		className := p.resolveNameRef(imp.ClassName)
		outer, err := p.resolveObject(imp.OuterIndex, visiting)
		if err != nil {
			return nil, err
		}
		obj = &Object{
			Index:    idx,
			Name:     p.resolveNameRef(imp.ObjectName),
			Class:    className,
			Outer:    outer,
			pkg:      p,
			isImport: true,
		}
	} else {
		exp := p.Exports[idx.ExportIndex()]
		className, err := p.resolveClassName(exp.ClassIndex, visiting)
		if err != nil {
			return nil, err
		}
		outer, err := p.resolveObject(exp.OuterIndex, visiting)
		if err != nil {
			return nil, err
		}
		archetype, err := p.resolveObject(exp.ArchetypeIndex, visiting)
		if err != nil {
			return nil, err
		}
		super, err := p.resolveObject(exp.SuperIndex, visiting)
		if err != nil {
			return nil, err
		}
		obj = &Object{
			Index:     idx,
			Name:      p.resolveNameRef(exp.ObjectName),
			Class:     className,
			Outer:     outer,
			Archetype: archetype,
			Super:     super,
			pkg:       p,
		}
	}
	p.objects[idx] = obj
	return obj, nil
}

// resolveClassName follows an Export's ClassIndex. A class index of zero
// means the export is itself a UClass; its own object name is its class
// name. Otherwise the referenced object's name is the class name.
func (p *Package) resolveClassName(classIdx PackageIndex, visiting map[PackageIndex]bool) (string, error) {
	if classIdx.IsNone() {
		return "Class", nil
	}
	obj, err := p.resolveObject(classIdx, visiting)
	if err != nil {
		return "", err
	}
	if obj == nil {
		return "Class", nil
	}
	return obj.Name, nil
}

// constructInstances runs the Construct phase: every resolved Object gets
// an Instance, either from classreg, from the nearest registered ancestor
// found by walking the Super chain, or an UnknownObject placeholder
// (§4.F). Never returns an error: unregistered classes degrade, they do
// not fail the load.
func (p *Package) constructInstances() {
	for _, obj := range p.objects {
		if obj.Value != nil {
			continue
		}
		if ctor, ok := classreg.Lookup(obj.Class); ok {
			obj.Value = ctor()
			continue
		}
		if ctor := resolveSuperChainCtor(obj); ctor != nil {
			obj.Value = ctor()
			continue
		}
		obj.Value = &UnknownObject{ClassName: obj.Class}
	}
}

// resolveSuperChainCtor walks obj.Super looking for the nearest ancestor
// with a registered constructor, bounded by outerChainDepthLimit so a
// cyclic Super graph cannot loop forever.
func resolveSuperChainCtor(obj *Object) classreg.Constructor {
	seen := 0
	for anc := obj.Super; anc != nil; anc = anc.Super {
		if seen > outerChainDepthLimit {
			return nil
		}
		seen++
		if ctor, ok := classreg.Lookup(anc.Class); ok {
			return ctor
		}
	}
	return nil
}
