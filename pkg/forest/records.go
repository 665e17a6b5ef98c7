package forest

import (
	"fmt"
	"slices"

	"github.com/ThatTimothy/rbx-dom/pkg/ref"
)

// Record is the flat representation of one instance, sufficient for an
// external codec to represent a whole forest. Parent is ref.Nil for roots.
type Record struct {
	ID       ref.Ref
	Parent   ref.Ref
	Children []ref.Ref
	Payload  any
}

// Records exports every instance as a [Record]. The order is not guaranteed;
// codecs that need deterministic output sort the result themselves. Child
// slices are copies, so the caller may retain and modify them.
func (f *Forest) Records() []Record {
	records := make([]Record, 0, len(f.instances))
	for id, in := range f.instances {
		records = append(records, Record{
			ID:       id,
			Parent:   in.parent,
			Children: slices.Clone(in.children),
			Payload:  in.Payload,
		})
	}
	return records
}

// Reconstruct rebuilds a Forest from exported records, deriving the root set
// from parentless records and validating the result. It is the inverse of
// [Forest.Records] and exists for codecs; within a process, instances enter a
// forest through [Forest.Insert] and [Forest.Transplant] only.
//
// Reconstruct rejects duplicate record IDs and any record set that fails
// [Forest.Validate], so a malformed document can never become a live forest.
func Reconstruct(records []Record) (*Forest, error) {
	f := New()
	for _, r := range records {
		if r.ID.IsNil() {
			return nil, fmt.Errorf("reconstruct: record with nil ref")
		}
		if _, exists := f.instances[r.ID]; exists {
			return nil, fmt.Errorf("reconstruct: duplicate ref %s", r.ID)
		}
		f.instances[r.ID] = &Instance{
			Payload:  r.Payload,
			id:       r.ID,
			parent:   r.Parent,
			children: slices.Clone(r.Children),
		}
		if r.Parent.IsNil() {
			f.roots[r.ID] = struct{}{}
		}
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}
	return f, nil
}
