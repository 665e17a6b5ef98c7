// Package forest provides an identity-indexed store of tree-structured
// instances, modeling a hierarchical document such as a place or model file.
//
// # Overview
//
// A [Forest] owns a set of instances addressed by [ref.Ref]. Each [Instance]
// carries an opaque payload plus structural metadata: its own ref, its parent
// ref (nil for roots), and an ordered list of child refs. Parent/child
// relationships are expressed as ref lookups into a single owning map rather
// than direct pointers, so the structure cannot form reference cycles and a
// detached subtree cannot be reached by accident.
//
// The Forest is the sole owner of instance lifetime: instances are created
// only by [Forest.Insert] and destroyed only by removal of themselves or an
// ancestor. Child order is semantically meaningful and is preserved by every
// operation that does not explicitly reorder.
//
// # Basic Usage
//
// Create a forest with [New], add instances with [Forest.Insert], and walk a
// subtree with [Forest.Descendants]:
//
//	f := forest.New()
//	game := f.Insert(payload, ref.Nil)
//	workspace := f.Insert(payload, game)
//	part := f.Insert(payload, workspace)
//
//	cur := f.Descendants(game)
//	for inst, ok := cur.Next(); ok; inst, ok = cur.Next() {
//	    // visits game, then workspace, then part
//	}
//
// [Forest.Remove] detaches a whole subtree into a new independent Forest, and
// [Forest.Transplant] moves a subtree from one forest into another, for
// example when merging a model file into an open document.
//
// # Invariants
//
// After every public operation, on every forest touched by it:
//
//  1. An instance's parent ref, when non-nil, resolves to a live instance
//     whose child list contains the instance.
//  2. Every ref in a child list resolves to a live instance whose parent is
//     the list's owner.
//  3. The root set is exactly the set of parentless instances.
//  4. Child lists contain no duplicates and no dangling refs.
//  5. The graph is acyclic: no instance is its own ancestor.
//
// [Forest.Validate] checks all five and is used by the codec when decoding
// untrusted documents.
//
// # Errors and Contract Violations
//
// Absent-ref queries ([Forest.Get], [Forest.Remove]) report "not found"
// through their boolean result and never fail. Caller contract violations,
// such as inserting under a parent that is not in the forest or transplanting
// onto one, panic: there is no partially-mutated forest to return, so these are
// programming errors rather than recoverable conditions.
//
// # Concurrency
//
// Forest instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same forest. A
// [Descendants] cursor additionally requires that the forest not be
// structurally mutated while the cursor is live; the cursor detects this and
// panics, since no well-defined traversal result exists.
package forest
