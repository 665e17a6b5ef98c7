package codec

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	apperrors "github.com/ThatTimothy/rbx-dom/pkg/errors"
	"github.com/ThatTimothy/rbx-dom/pkg/forest"
	"github.com/ThatTimothy/rbx-dom/pkg/ref"
)

// buildForest creates a small two-root forest with string payloads.
func buildForest(t *testing.T) (*forest.Forest, []ref.Ref) {
	t.Helper()
	f := forest.New()
	a := f.Insert("a", ref.Nil)
	b := f.Insert("b", a)
	c := f.Insert("c", a)
	d := f.Insert("d", b)
	x := f.Insert("x", ref.Nil)
	return f, []ref.Ref{a, b, c, d, x}
}

func TestMarshal_RoundTrip(t *testing.T) {
	f, ids := buildForest(t)

	data, err := Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Len() != f.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), f.Len())
	}
	for _, id := range ids {
		orig, _ := f.Get(id)
		dec, ok := got.Get(id)
		if !ok {
			t.Fatalf("instance %s lost in round trip", id)
		}
		if !slices.Equal(dec.Children(), orig.Children()) {
			t.Errorf("instance %s: children = %v, want %v", id, dec.Children(), orig.Children())
		}
		gp, gok := dec.Parent()
		op, ook := orig.Parent()
		if gp != op || gok != ook {
			t.Errorf("instance %s: parent = (%s, %v), want (%s, %v)", id, gp, gok, op, ook)
		}
		if dec.Payload != orig.Payload {
			t.Errorf("instance %s: payload = %v, want %v", id, dec.Payload, orig.Payload)
		}
	}
	if err := got.Validate(); err != nil {
		t.Errorf("decoded forest invalid: %v", err)
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	f, _ := buildForest(t)

	first, err := Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated Marshal of the same forest produced different bytes")
	}
}

func TestUnmarshal_InverseOfMarshal(t *testing.T) {
	f, _ := buildForest(t)

	data, err := Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Len() != f.Len() {
		t.Errorf("Len() = %d, want %d", got.Len(), f.Len())
	}
	if err := got.Validate(); err != nil {
		t.Errorf("decoded forest invalid: %v", err)
	}
}

func TestMarshal_Empty(t *testing.T) {
	data, err := Marshal(forest.New())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0", got.Len())
	}
}

func TestFile_RoundTrip(t *testing.T) {
	f, _ := buildForest(t)
	path := filepath.Join(t.TempDir(), "place.json")

	if err := WriteFile(f, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Len() != f.Len() {
		t.Errorf("Len() = %d, want %d", got.Len(), f.Len())
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeFileNotFound)
	}
}

func TestRead_MalformedJSON(t *testing.T) {
	_, err := Read(strings.NewReader("{not json"))
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeInvalidFormat)
	}
}

func TestRead_InconsistentDocument(t *testing.T) {
	id := ref.New()
	parent := ref.New()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "DanglingParent",
			doc: `{"roots": [], "instances": [
				{"id": "` + id.String() + `", "parent": "` + parent.String() + `"}
			]}`,
		},
		{
			name: "RootListMismatch",
			doc: `{"roots": ["` + parent.String() + `"], "instances": [
				{"id": "` + id.String() + `"}
			]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc))
			if !apperrors.Is(err, apperrors.ErrCodeInvalidDocument) {
				t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeInvalidDocument)
			}
		})
	}
}

func TestWriteFile_Golden(t *testing.T) {
	// The wire format itself is part of the contract: field names and
	// ordering must stay stable for interchange with other tooling.
	f := forest.New()
	root := f.Insert(map[string]any{"className": "Folder"}, ref.Nil)
	f.Insert(map[string]any{"className": "Part"}, root)

	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteFile(f, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	for _, want := range []string{`"roots"`, `"instances"`, `"id"`, `"parent"`, `"children"`, `"payload"`, `"className"`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("output missing %s:\n%s", want, data)
		}
	}
}
