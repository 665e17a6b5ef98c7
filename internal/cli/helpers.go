package cli

import (
	"cmp"
	"fmt"
	"slices"

	apperrors "github.com/ThatTimothy/rbx-dom/pkg/errors"
	"github.com/ThatTimothy/rbx-dom/pkg/forest"
	"github.com/ThatTimothy/rbx-dom/pkg/ref"
)

// sortedRoots returns the forest's roots in a stable order for display.
func sortedRoots(f *forest.Forest) []ref.Ref {
	roots := f.Roots()
	slices.SortFunc(roots, func(a, b ref.Ref) int {
		return cmp.Compare(a.String(), b.String())
	})
	return roots
}

// parseRefArg parses a ref given on the command line, returning a coded
// error suitable for direct display.
func parseRefArg(arg string) (ref.Ref, error) {
	r, err := ref.Parse(arg)
	if err != nil {
		return ref.Nil, apperrors.Wrap(apperrors.ErrCodeInvalidRef, err, "invalid ref %q", arg)
	}
	return r, nil
}

// requireInstance returns a coded error if id is not present in f.
func requireInstance(f *forest.Forest, id ref.Ref, role string) error {
	if !f.Contains(id) {
		return apperrors.New(apperrors.ErrCodeInstanceNotFound, "%s %s not found in document", role, id)
	}
	return nil
}

// statsLine formats a completion message for progress logging.
func statsLine(verb string, instances int, path string) string {
	return fmt.Sprintf("%s %d instances to %s", verb, instances, path)
}

// maxDepth returns the length of the longest root-to-leaf path in the
// subtree rooted at id, counting the root itself as depth 1. The walk uses
// an explicit stack so document depth never translates into call depth.
func maxDepth(f *forest.Forest, id ref.Ref) int {
	type frame struct {
		id    ref.Ref
		depth int
	}

	deepest := 0
	stack := []frame{{id: id, depth: 1}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		in, ok := f.Get(fr.id)
		if !ok {
			continue
		}
		if fr.depth > deepest {
			deepest = fr.depth
		}
		for _, child := range in.Children() {
			stack = append(stack, frame{id: child, depth: fr.depth + 1})
		}
	}
	return deepest
}
