package forest

import (
	"fmt"
	"slices"

	"github.com/ThatTimothy/rbx-dom/pkg/observability"
	"github.com/ThatTimothy/rbx-dom/pkg/ref"
)

// Forest is an identity-indexed store of instances. It owns every instance's
// storage and keeps parent/child back-references consistent; an instance's
// lifetime is exactly its membership in the forest.
//
// A forest may have any number of roots, including zero. The zero value is
// not usable - use [New] to create a valid Forest.
//
// Forest is not safe for concurrent use without external synchronization.
type Forest struct {
	instances map[ref.Ref]*Instance
	roots     map[ref.Ref]struct{}

	// version counts structural mutations. Descendants cursors snapshot it
	// to detect mutation during traversal.
	version uint64
}

// New creates an empty Forest with no instances and no roots.
func New() *Forest {
	return &Forest{
		instances: make(map[ref.Ref]*Instance),
		roots:     make(map[ref.Ref]struct{}),
	}
}

// Len returns the number of instances in the forest.
func (f *Forest) Len() int { return len(f.instances) }

// Contains reports whether id identifies a live instance in the forest.
func (f *Forest) Contains(id ref.Ref) bool {
	_, ok := f.instances[id]
	return ok
}

// Get returns the instance with the given ref and true, or nil and false if
// not found. The returned pointer refers to the actual instance in the
// forest: payload edits through it affect the forest, while the structural
// fields stay under forest control.
func (f *Forest) Get(id ref.Ref) (*Instance, bool) {
	in, ok := f.instances[id]
	return in, ok
}

// Roots returns a copy of the root set: the refs of all parentless
// instances. The order is not guaranteed.
func (f *Forest) Roots() []ref.Ref {
	roots := make([]ref.Ref, 0, len(f.roots))
	for id := range f.roots {
		roots = append(roots, id)
	}
	return roots
}

// IsRoot reports whether id is in the forest's root set.
func (f *Forest) IsRoot(id ref.Ref) bool {
	_, ok := f.roots[id]
	return ok
}

// Insert creates a new instance wrapping payload, assigns it a fresh ref, and
// links it under parent. With parent == ref.Nil the instance becomes a new
// root; otherwise its ref is appended to the END of the parent's child list,
// so repeated insertions under the same parent preserve insertion order.
//
// Insert panics if parent is non-nil and not present in the forest: that is a
// caller contract violation, not a recoverable condition. No existing
// instance is touched except the parent's child list.
func (f *Forest) Insert(payload any, parent ref.Ref) ref.Ref {
	in := &Instance{
		Payload: payload,
		id:      ref.New(),
		parent:  parent,
	}
	f.attach(in)

	observability.Forest().OnInsert(in.id, parent)
	return in.id
}

// attach links in under its recorded parent and stores it.
// The instance must not already be present.
func (f *Forest) attach(in *Instance) {
	if in.parent.IsNil() {
		f.roots[in.id] = struct{}{}
	} else {
		p, ok := f.instances[in.parent]
		if !ok {
			panic(fmt.Sprintf("forest: cannot insert %s under %s: parent not in this forest", in.id, in.parent))
		}
		p.children = append(p.children, in.id)
	}
	f.instances[in.id] = in
	f.version++
}

// unlink severs the edge from in's former parent (or the root set) to in.
// The instance's own parent field is left untouched.
func (f *Forest) unlink(in *Instance) {
	if in.parent.IsNil() {
		delete(f.roots, in.id)
		return
	}
	p, ok := f.instances[in.parent]
	if !ok {
		panic(fmt.Sprintf("forest: %s has dangling parent %s", in.id, in.parent))
	}
	i := slices.Index(p.children, in.id)
	if i < 0 {
		panic(fmt.Sprintf("forest: %s missing from child list of %s", in.id, in.parent))
	}
	p.children = slices.Delete(p.children, i, i+1)
}

// Remove detaches the subtree rooted at rootID - the instance itself plus
// every descendant - and returns it as a new, independent Forest whose sole
// root is rootID. It returns nil and false, without mutating the forest, if
// rootID is not present.
//
// The subtree's internal structure (parent/child refs and child order) is
// preserved exactly; only the link between the detached root and its former
// parent is severed, on both sides.
func (f *Forest) Remove(rootID ref.Ref) (*Forest, bool) {
	root, ok := f.instances[rootID]
	if !ok {
		return nil, false
	}

	f.unlink(root)
	root.parent = ref.Nil

	sub := New()
	sub.roots[rootID] = struct{}{}
	f.moveSubtree(rootID, sub)

	observability.Forest().OnRemove(rootID, sub.Len())
	return sub, true
}

// Transplant moves the subtree rooted at sourceID out of source and into f,
// re-parenting the moved root under newParent (or making it a new root of f
// when newParent is ref.Nil). Afterwards source contains none of the moved
// instances and f contains all of them, with the subtree's internal shape
// intact; only the moved root's parent linkage changes.
//
// Transplant panics on caller contract violations: sourceID not present in
// source, newParent non-nil and not present in f, or f == source.
func (f *Forest) Transplant(source *Forest, sourceID ref.Ref, newParent ref.Ref) {
	if f == source {
		panic("forest: cannot transplant within the same forest")
	}
	root, ok := source.instances[sourceID]
	if !ok {
		panic(fmt.Sprintf("forest: cannot transplant %s: not in source forest", sourceID))
	}
	if !newParent.IsNil() {
		if _, ok := f.instances[newParent]; !ok {
			panic(fmt.Sprintf("forest: cannot transplant %s under %s: parent not in this forest", sourceID, newParent))
		}
	}

	source.unlink(root)
	moved := source.moveSubtree(sourceID, f)

	// Only the top instance's parent linkage changes; descendants keep
	// pointing at their original parent among the moved set.
	root.parent = newParent
	if newParent.IsNil() {
		f.roots[sourceID] = struct{}{}
	} else {
		p := f.instances[newParent]
		p.children = append(p.children, sourceID)
	}

	observability.Forest().OnTransplant(sourceID, newParent, moved)
}

// moveSubtree transfers rootID and every instance reachable through child
// lists from f into dst, returning the number moved. Each instance's child
// list is read before the instance leaves the map, so the set of refs still
// to visit is never lost. Refs that do not resolve are skipped; instances
// unreachable from rootID are never collected.
func (f *Forest) moveSubtree(rootID ref.Ref, dst *Forest) int {
	moved := 0
	toVisit := []ref.Ref{rootID}
	for len(toVisit) > 0 {
		id := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]

		in, ok := f.instances[id]
		if !ok {
			continue
		}
		toVisit = append(toVisit, in.children...)

		delete(f.instances, id)
		dst.instances[id] = in
		moved++
	}
	f.version++
	dst.version++
	return moved
}
