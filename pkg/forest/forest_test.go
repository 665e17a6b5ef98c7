package forest

import (
	"slices"
	"testing"

	"github.com/ThatTimothy/rbx-dom/pkg/ref"
)

// mustGet fails the test if id is not present.
func mustGet(t *testing.T, f *Forest, id ref.Ref) *Instance {
	t.Helper()
	in, ok := f.Get(id)
	if !ok {
		t.Fatalf("instance %s not in forest", id)
	}
	return in
}

// checkValid fails the test if the forest violates its invariants.
func checkValid(t *testing.T, f *Forest) {
	t.Helper()
	if err := f.Validate(); err != nil {
		t.Fatalf("forest invariants violated: %v", err)
	}
}

// snapshot captures the reachable structure of a forest for equality checks:
// parent, ordered children, and payload per instance, plus the root set.
type snapshot struct {
	parents  map[ref.Ref]ref.Ref
	children map[ref.Ref][]ref.Ref
	payloads map[ref.Ref]any
	roots    map[ref.Ref]bool
}

func takeSnapshot(f *Forest) snapshot {
	s := snapshot{
		parents:  make(map[ref.Ref]ref.Ref),
		children: make(map[ref.Ref][]ref.Ref),
		payloads: make(map[ref.Ref]any),
		roots:    make(map[ref.Ref]bool),
	}
	for _, r := range f.Records() {
		s.parents[r.ID] = r.Parent
		s.children[r.ID] = r.Children
		s.payloads[r.ID] = r.Payload
	}
	for _, id := range f.Roots() {
		s.roots[id] = true
	}
	return s
}

func checkSnapshotEqual(t *testing.T, got, want snapshot) {
	t.Helper()
	if len(got.parents) != len(want.parents) {
		t.Fatalf("instance count = %d, want %d", len(got.parents), len(want.parents))
	}
	for id, wantParent := range want.parents {
		if got.parents[id] != wantParent {
			t.Errorf("instance %s: parent = %s, want %s", id, got.parents[id], wantParent)
		}
		if !slices.Equal(got.children[id], want.children[id]) {
			t.Errorf("instance %s: children = %v, want %v", id, got.children[id], want.children[id])
		}
		if got.payloads[id] != want.payloads[id] {
			t.Errorf("instance %s: payload = %v, want %v", id, got.payloads[id], want.payloads[id])
		}
	}
	if len(got.roots) != len(want.roots) {
		t.Fatalf("root count = %d, want %d", len(got.roots), len(want.roots))
	}
	for id := range want.roots {
		if !got.roots[id] {
			t.Errorf("missing root %s", id)
		}
	}
}

func TestNew_Empty(t *testing.T) {
	f := New()
	if f.Len() != 0 {
		t.Errorf("Len() = %d, want 0", f.Len())
	}
	if len(f.Roots()) != 0 {
		t.Errorf("Roots() = %v, want empty", f.Roots())
	}
	checkValid(t, f)
}

func TestInsert_Scenario(t *testing.T) {
	// The canonical scenario: one root with two children.
	f := New()
	a := f.Insert("payload_a", ref.Nil)
	b := f.Insert("payload_b", a)
	c := f.Insert("payload_c", a)

	if roots := f.Roots(); len(roots) != 1 || roots[0] != a {
		t.Errorf("Roots() = %v, want [%s]", roots, a)
	}
	if got := mustGet(t, f, a).Children(); !slices.Equal(got, []ref.Ref{b, c}) {
		t.Errorf("children of a = %v, want [%s %s]", got, b, c)
	}
	checkValid(t, f)

	removed, ok := f.Remove(a)
	if !ok {
		t.Fatal("Remove(a) reported not found")
	}
	if _, ok := f.Get(a); ok {
		t.Error("a still present after removal")
	}
	if roots := f.Roots(); len(roots) != 0 {
		t.Errorf("Roots() after removal = %v, want empty", roots)
	}
	if roots := removed.Roots(); len(roots) != 1 || roots[0] != a {
		t.Errorf("removed.Roots() = %v, want [%s]", roots, a)
	}
	if _, ok := removed.Get(b); !ok {
		t.Error("b missing from removed forest")
	}
	if _, ok := removed.Get(c); !ok {
		t.Error("c missing from removed forest")
	}
	checkValid(t, f)
	checkValid(t, removed)
}

func TestInsert_AppendsLast(t *testing.T) {
	f := New()
	parent := f.Insert("parent", ref.Nil)

	var want []ref.Ref
	for i := 0; i < 10; i++ {
		want = append(want, f.Insert(i, parent))
	}
	if got := mustGet(t, f, parent).Children(); !slices.Equal(got, want) {
		t.Errorf("children = %v, want insertion order %v", got, want)
	}
}

func TestInsert_UnknownParentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Insert under unknown parent did not panic")
		}
	}()
	New().Insert("orphan", ref.New())
}

func TestGet_Absent(t *testing.T) {
	f := New()
	if in, ok := f.Get(ref.New()); ok || in != nil {
		t.Errorf("Get(absent) = (%v, %v), want (nil, false)", in, ok)
	}
}

func TestGet_PayloadEdit(t *testing.T) {
	f := New()
	id := f.Insert("before", ref.Nil)

	mustGet(t, f, id).Payload = "after"

	if got := mustGet(t, f, id).Payload; got != "after" {
		t.Errorf("payload = %v, want %q", got, "after")
	}
}

// buildFixture creates a forest with a known shape and returns it along with
// the refs in insertion order:
//
//	a (root)          x (root)
//	├── b
//	│   ├── d
//	│   └── e
//	└── c
func buildFixture(t *testing.T) (f *Forest, a, b, c, d, e, x ref.Ref) {
	t.Helper()
	f = New()
	a = f.Insert("a", ref.Nil)
	b = f.Insert("b", a)
	c = f.Insert("c", a)
	d = f.Insert("d", b)
	e = f.Insert("e", b)
	x = f.Insert("x", ref.Nil)
	checkValid(t, f)
	return
}

func TestRemove_Absent(t *testing.T) {
	f, _, _, _, _, _, _ := buildFixture(t)
	before := takeSnapshot(f)

	sub, ok := f.Remove(ref.New())
	if ok || sub != nil {
		t.Fatalf("Remove(absent) = (%v, %v), want (nil, false)", sub, ok)
	}
	checkSnapshotEqual(t, takeSnapshot(f), before)
}

func TestRemove_Subtree(t *testing.T) {
	f, a, b, c, d, e, x := buildFixture(t)

	sub, ok := f.Remove(b)
	if !ok {
		t.Fatal("Remove(b) reported not found")
	}

	// b, d, e moved; a, c, x stayed.
	for _, id := range []ref.Ref{b, d, e} {
		if f.Contains(id) {
			t.Errorf("%s still in source after removal", id)
		}
		if !sub.Contains(id) {
			t.Errorf("%s missing from detached forest", id)
		}
	}
	for _, id := range []ref.Ref{a, c, x} {
		if !f.Contains(id) {
			t.Errorf("%s unexpectedly removed", id)
		}
	}

	// The detached forest has exactly one root, and the subtree's internal
	// structure is preserved.
	if roots := sub.Roots(); len(roots) != 1 || roots[0] != b {
		t.Errorf("detached roots = %v, want [%s]", roots, b)
	}
	if got := mustGet(t, sub, b).Children(); !slices.Equal(got, []ref.Ref{d, e}) {
		t.Errorf("children of b = %v, want [%s %s]", got, d, e)
	}
	if p, ok := mustGet(t, sub, d).Parent(); !ok || p != b {
		t.Errorf("parent of d = (%s, %v), want (%s, true)", p, ok, b)
	}

	// Only the severed top link changed in the source.
	if got := mustGet(t, f, a).Children(); !slices.Equal(got, []ref.Ref{c}) {
		t.Errorf("children of a = %v, want [%s]", got, c)
	}
	checkValid(t, f)
	checkValid(t, sub)
}

func TestRemove_Root(t *testing.T) {
	f, a, _, _, _, _, x := buildFixture(t)

	sub, ok := f.Remove(a)
	if !ok {
		t.Fatal("Remove(a) reported not found")
	}
	if sub.Len() != 5 {
		t.Errorf("detached Len() = %d, want 5", sub.Len())
	}
	if roots := f.Roots(); len(roots) != 1 || roots[0] != x {
		t.Errorf("remaining roots = %v, want [%s]", roots, x)
	}
	checkValid(t, f)
	checkValid(t, sub)
}

func TestRemove_RoundTrip(t *testing.T) {
	// Detaching a subtree and grafting it back at its original parent
	// reproduces the original structure exactly, including child order.
	// Grafting appends, so this holds when the detached instance was the
	// last child of its parent.
	f := New()
	root := f.Insert("root", ref.Nil)
	f.Insert("first", root)
	last := f.Insert("last", root)
	f.Insert("u", last)
	f.Insert("v", last)
	before := takeSnapshot(f)

	parent, _ := mustGet(t, f, last).Parent()
	sub, ok := f.Remove(last)
	if !ok {
		t.Fatal("Remove(last) reported not found")
	}
	f.Transplant(sub, last, parent)

	checkSnapshotEqual(t, takeSnapshot(f), before)
	checkValid(t, f)
	if sub.Len() != 0 {
		t.Errorf("source forest still has %d instances", sub.Len())
	}
}

func TestTransplant_Completeness(t *testing.T) {
	src, _, b, _, d, e, _ := buildFixture(t)
	dst := New()
	target := dst.Insert("target", ref.Nil)

	dst.Transplant(src, b, target)

	for _, id := range []ref.Ref{b, d, e} {
		if src.Contains(id) {
			t.Errorf("%s still in source after transplant", id)
		}
		if !dst.Contains(id) {
			t.Errorf("%s missing from destination", id)
		}
	}

	// Each moved instance is reachable from b in the destination.
	reached := make(map[ref.Ref]bool)
	cur := dst.Descendants(b)
	for in, ok := cur.Next(); ok; in, ok = cur.Next() {
		reached[in.ID()] = true
	}
	for _, id := range []ref.Ref{b, d, e} {
		if !reached[id] {
			t.Errorf("%s not reachable from %s after transplant", id, b)
		}
	}

	// Only the top instance re-parented; the moved root was appended to the
	// target's child list.
	if p, ok := mustGet(t, dst, b).Parent(); !ok || p != target {
		t.Errorf("parent of b = (%s, %v), want (%s, true)", p, ok, target)
	}
	if p, ok := mustGet(t, dst, d).Parent(); !ok || p != b {
		t.Errorf("parent of d = (%s, %v), want (%s, true)", p, ok, b)
	}
	if got := mustGet(t, dst, target).Children(); !slices.Equal(got, []ref.Ref{b}) {
		t.Errorf("children of target = %v, want [%s]", got, b)
	}
	checkValid(t, src)
	checkValid(t, dst)
}

func TestTransplant_DeepChainMovesAllDescendants(t *testing.T) {
	// Regression guard for the subtle ordering requirement: each instance's
	// child list must be read before the instance leaves the source map. A
	// broken implementation moves only the named instance and strands the
	// rest; a deep chain makes that failure unmissable.
	src := New()
	top := src.Insert(0, ref.Nil)
	parent := top
	ids := []ref.Ref{top}
	for i := 1; i < 50; i++ {
		parent = src.Insert(i, parent)
		ids = append(ids, parent)
	}

	dst := New()
	dst.Transplant(src, top, ref.Nil)

	if src.Len() != 0 {
		t.Fatalf("source Len() = %d, want 0", src.Len())
	}
	if dst.Len() != len(ids) {
		t.Fatalf("destination Len() = %d, want %d", dst.Len(), len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if p, ok := mustGet(t, dst, ids[i]).Parent(); !ok || p != ids[i-1] {
			t.Fatalf("chain broken at depth %d: parent = (%s, %v)", i, p, ok)
		}
	}
	checkValid(t, dst)
}

func TestTransplant_ToRoot(t *testing.T) {
	src, _, b, _, _, _, _ := buildFixture(t)
	dst := New()

	dst.Transplant(src, b, ref.Nil)

	if roots := dst.Roots(); len(roots) != 1 || roots[0] != b {
		t.Errorf("destination roots = %v, want [%s]", roots, b)
	}
	if _, ok := mustGet(t, dst, b).Parent(); ok {
		t.Error("transplanted root still has a parent")
	}
	checkValid(t, src)
	checkValid(t, dst)
}

func TestTransplant_SourceRootUnlinked(t *testing.T) {
	// Moving a root out of the source must shrink the source's root set.
	src, a, _, _, _, _, x := buildFixture(t)
	dst := New()

	dst.Transplant(src, a, ref.Nil)

	if roots := src.Roots(); len(roots) != 1 || roots[0] != x {
		t.Errorf("source roots = %v, want [%s]", roots, x)
	}
	checkValid(t, src)
}

func TestTransplant_Panics(t *testing.T) {
	tests := []struct {
		name string
		call func()
	}{
		{
			name: "UnknownSource",
			call: func() {
				src, dst := New(), New()
				dst.Transplant(src, ref.New(), ref.Nil)
			},
		},
		{
			name: "UnknownParent",
			call: func() {
				src, dst := New(), New()
				id := src.Insert("n", ref.Nil)
				dst.Transplant(src, id, ref.New())
			},
		},
		{
			name: "SameForest",
			call: func() {
				f := New()
				id := f.Insert("n", ref.Nil)
				f.Transplant(f, id, ref.Nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.call()
		})
	}
}

func TestInvariants_AfterOperationSequence(t *testing.T) {
	// Chains inserts, removals, and transplants across two forests and
	// revalidates after every step.
	f := New()
	g := New()

	var fids []ref.Ref
	root := f.Insert("root", ref.Nil)
	fids = append(fids, root)
	for i := 0; i < 20; i++ {
		parent := fids[(i*7)%len(fids)]
		fids = append(fids, f.Insert(i, parent))
		checkValid(t, f)
	}

	sub, ok := f.Remove(fids[5])
	if !ok {
		t.Fatal("Remove reported not found")
	}
	checkValid(t, f)
	checkValid(t, sub)

	groot := g.Insert("other", ref.Nil)
	g.Transplant(sub, fids[5], groot)
	checkValid(t, g)
	checkValid(t, sub)

	f.Transplant(g, groot, root)
	checkValid(t, f)
	checkValid(t, g)

	if g.Len() != 0 {
		t.Errorf("g.Len() = %d, want 0", g.Len())
	}
	if f.Len() != 22 {
		t.Errorf("f.Len() = %d, want 22", f.Len())
	}
}
