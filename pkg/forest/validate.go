package forest

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ThatTimothy/rbx-dom/pkg/ref"
)

var (
	// ErrDanglingParent is returned by [Forest.Validate] when an instance's
	// parent ref does not resolve to a live instance.
	ErrDanglingParent = errors.New("parent ref not present in forest")

	// ErrMissingChildLink is returned by [Forest.Validate] when an instance
	// is absent from its parent's child list.
	ErrMissingChildLink = errors.New("instance absent from its parent's child list")

	// ErrDanglingChild is returned by [Forest.Validate] when a child list
	// entry does not resolve to a live instance.
	ErrDanglingChild = errors.New("child ref not present in forest")

	// ErrParentMismatch is returned by [Forest.Validate] when a child does
	// not point back at the instance whose child list names it.
	ErrParentMismatch = errors.New("child does not point back at its parent")

	// ErrDuplicateChild is returned by [Forest.Validate] when a ref appears
	// more than once in the same child list.
	ErrDuplicateChild = errors.New("duplicate ref in child list")

	// ErrRootMismatch is returned by [Forest.Validate] when the root set
	// disagrees with the set of parentless instances.
	ErrRootMismatch = errors.New("root set does not match parentless instances")

	// ErrCycle is returned by [Forest.Validate] when an instance is
	// reachable from itself through child lists. This indicates corruption:
	// no sequence of forest operations can produce it.
	ErrCycle = errors.New("forest contains a cycle")
)

// Validate checks structural integrity and returns nil if the forest is
// consistent. It verifies that parent refs and child lists agree in both
// directions, that child lists contain no duplicates or dangling refs, that
// the root set is exactly the parentless instances, and that the graph is
// acyclic.
//
// Every forest operation preserves these properties, so Validate is mainly
// useful after reconstructing a forest from external data. Cycle detection
// runs in O(N) time using depth-first search.
func (f *Forest) Validate() error {
	if err := f.validateLinks(); err != nil {
		return err
	}
	if err := f.validateRoots(); err != nil {
		return err
	}
	return f.detectCycles()
}

func (f *Forest) validateLinks() error {
	for id, in := range f.instances {
		if p, ok := in.Parent(); ok {
			parent, live := f.instances[p]
			if !live {
				return fmt.Errorf("instance %s: parent %s: %w", id, p, ErrDanglingParent)
			}
			if !slices.Contains(parent.children, id) {
				return fmt.Errorf("instance %s: parent %s: %w", id, p, ErrMissingChildLink)
			}
		}

		seen := make(map[ref.Ref]bool, len(in.children))
		for _, c := range in.children {
			if seen[c] {
				return fmt.Errorf("instance %s: child %s: %w", id, c, ErrDuplicateChild)
			}
			seen[c] = true

			child, live := f.instances[c]
			if !live {
				return fmt.Errorf("instance %s: child %s: %w", id, c, ErrDanglingChild)
			}
			if child.parent != id {
				return fmt.Errorf("instance %s: child %s: %w", id, c, ErrParentMismatch)
			}
		}
	}
	return nil
}

func (f *Forest) validateRoots() error {
	for id := range f.roots {
		in, ok := f.instances[id]
		if !ok {
			return fmt.Errorf("root %s is not a live instance: %w", id, ErrRootMismatch)
		}
		if !in.parent.IsNil() {
			return fmt.Errorf("root %s has parent %s: %w", id, in.parent, ErrRootMismatch)
		}
	}
	for id, in := range f.instances {
		if in.parent.IsNil() && !f.IsRoot(id) {
			return fmt.Errorf("parentless instance %s is not in the root set: %w", id, ErrRootMismatch)
		}
	}
	return nil
}

func (f *Forest) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[ref.Ref]int, len(f.instances))
	var hasCycle bool

	var dfs func(id ref.Ref)
	dfs = func(id ref.Ref) {
		color[id] = gray
		for _, child := range f.instances[id].children {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for id := range f.instances {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrCycle
			}
		}
	}
	return nil
}
