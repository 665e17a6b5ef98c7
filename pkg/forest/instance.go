package forest

import "github.com/ThatTimothy/rbx-dom/pkg/ref"

// Instance is a payload rooted in a forest, together with its structural
// metadata. The payload is opaque to this package: it is stored, moved, and
// returned, never inspected.
//
// Structural fields (ref, parent, child list) are unexported and mutated only
// by [Forest] operations, which keep the forest invariants intact. The
// payload is an exported field and may be edited freely through the pointer
// returned by [Forest.Get].
//
// Instances are created only by [Forest.Insert]; the zero value is not usable.
type Instance struct {
	// Payload is the instance-specific data (e.g. class name and property
	// bag). It is never inspected by this package.
	Payload any

	id       ref.Ref
	parent   ref.Ref // ref.Nil when the instance is a root
	children []ref.Ref
}

// ID returns the ref assigned to the instance at insertion.
// It never changes for the lifetime of the instance.
func (in *Instance) ID() ref.Ref { return in.id }

// Parent returns the parent's ref and true, or ref.Nil and false if the
// instance is a root of its forest.
func (in *Instance) Parent() (ref.Ref, bool) {
	return in.parent, !in.parent.IsNil()
}

// Children returns the instance's child refs in order. The order is
// semantically meaningful and is preserved by all forest operations.
// The returned slice should not be modified - use it as a read-only view.
func (in *Instance) Children() []ref.Ref { return in.children }
