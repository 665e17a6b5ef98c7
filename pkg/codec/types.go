package codec

import (
	"cmp"
	"slices"

	apperrors "github.com/ThatTimothy/rbx-dom/pkg/errors"
	"github.com/ThatTimothy/rbx-dom/pkg/forest"
	"github.com/ThatTimothy/rbx-dom/pkg/ref"
)

// Document is the canonical serialization format for a forest.
// Used for storage, tooling interchange, and golden-file tests.
type Document struct {
	Roots     []ref.Ref  `json:"roots"`
	Instances []Instance `json:"instances"`
}

// Instance is the wire form of a single forest instance.
// Parent is omitted for roots.
type Instance struct {
	ID       ref.Ref   `json:"id"`
	Parent   *ref.Ref  `json:"parent,omitempty"`
	Children []ref.Ref `json:"children,omitempty"`
	Payload  any       `json:"payload,omitempty"`
}

// FromForest converts a forest to its document form.
// Roots and instances are sorted by ref for deterministic output.
func FromForest(f *forest.Forest) Document {
	doc := Document{
		Roots:     f.Roots(),
		Instances: make([]Instance, 0, f.Len()),
	}
	slices.SortFunc(doc.Roots, compareRefs)

	for _, r := range f.Records() {
		in := Instance{
			ID:       r.ID,
			Children: r.Children,
			Payload:  r.Payload,
		}
		if !r.Parent.IsNil() {
			parent := r.Parent
			in.Parent = &parent
		}
		doc.Instances = append(doc.Instances, in)
	}
	slices.SortFunc(doc.Instances, func(a, b Instance) int {
		return compareRefs(a.ID, b.ID)
	})
	return doc
}

// ToForest rebuilds a forest from its document form, validating structural
// integrity. Returns an INVALID_DOCUMENT error if the instance graph is
// inconsistent or if the document's root list disagrees with the parentless
// instances it declares.
func ToForest(doc Document) (*forest.Forest, error) {
	records := make([]forest.Record, len(doc.Instances))
	for i, in := range doc.Instances {
		r := forest.Record{
			ID:       in.ID,
			Children: in.Children,
			Payload:  in.Payload,
		}
		if in.Parent != nil {
			r.Parent = *in.Parent
		}
		records[i] = r
	}

	f, err := forest.Reconstruct(records)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "inconsistent instance graph")
	}

	declared := slices.Clone(doc.Roots)
	slices.SortFunc(declared, compareRefs)
	actual := f.Roots()
	slices.SortFunc(actual, compareRefs)
	if !slices.Equal(declared, actual) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidDocument, "declared roots %v do not match parentless instances %v", declared, actual)
	}

	return f, nil
}

func compareRefs(a, b ref.Ref) int {
	return cmp.Compare(a.String(), b.String())
}
