package forest

import "github.com/ThatTimothy/rbx-dom/pkg/ref"

// Descendants is a lazy, single-pass cursor over a subtree. It is created by
// [Forest.Descendants] and is not restartable: once Next reports false the
// cursor is exhausted.
//
// The cursor borrows the forest for its lifetime. Structural mutation of the
// forest while a cursor is live invalidates it; the next call to Next panics,
// since no well-defined traversal result exists. Payload edits do not count
// as structural mutation.
type Descendants struct {
	forest  *Forest
	toVisit []ref.Ref
	version uint64
}

// Descendants returns a cursor over the instance identified by id and all of
// its transitive children. The seed instance itself is yielded first;
// callers that want strict descendants skip it.
//
// The walk is depth-first with an explicit stack: each step pops the most
// recently pushed ref and, if it resolves to a live instance, pushes that
// instance's children in list order before yielding it. Because the stack is
// last-in-first-out, siblings are visited in REVERSE child-list order (the
// last child and its subtree before its earlier siblings). Refs that do not
// resolve are skipped, so a cursor seeded at an absent id yields nothing.
func (f *Forest) Descendants(id ref.Ref) *Descendants {
	return &Descendants{
		forest:  f,
		toVisit: []ref.Ref{id},
		version: f.version,
	}
}

// Next returns the next instance in the walk, or nil and false when the
// subtree is exhausted.
//
// Next panics if the forest has been structurally mutated since the cursor
// was created.
func (d *Descendants) Next() (*Instance, bool) {
	if d.version != d.forest.version {
		panic("forest: structural mutation during descendant traversal")
	}

	for len(d.toVisit) > 0 {
		id := d.toVisit[len(d.toVisit)-1]
		d.toVisit = d.toVisit[:len(d.toVisit)-1]

		in, ok := d.forest.instances[id]
		if !ok {
			continue
		}
		d.toVisit = append(d.toVisit, in.children...)
		return in, true
	}
	return nil, false
}
