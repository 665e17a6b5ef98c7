package codec

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"time"

	apperrors "github.com/ThatTimothy/rbx-dom/pkg/errors"
	"github.com/ThatTimothy/rbx-dom/pkg/forest"
	"github.com/ThatTimothy/rbx-dom/pkg/observability"
)

// Marshal converts a forest to JSON bytes.
// Instances are sorted by ref for deterministic output.
func Marshal(f *forest.Forest) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(f, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a validated forest.
// It is the inverse of [Marshal].
func Unmarshal(data []byte) (*forest.Forest, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes a forest as indented JSON to w.
// Use [Marshal] for in-memory serialization or [WriteFile] for files.
func Write(f *forest.Forest, w io.Writer) error {
	start := time.Now()
	err := writeTo(f, w)
	observability.Codec().OnEncode(f.Len(), time.Since(start), err)
	return err
}

// WriteFile writes a forest to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(f *forest.Forest, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "create %s", path)
	}
	defer out.Close()
	return Write(f, out)
}

// Read decodes a JSON document from r into a validated forest.
// Returns an INVALID_FORMAT error for malformed JSON and an INVALID_DOCUMENT
// error for well-formed JSON that describes an inconsistent forest.
func Read(r io.Reader) (*forest.Forest, error) {
	start := time.Now()
	f, err := readFrom(r)
	n := 0
	if f != nil {
		n = f.Len()
	}
	observability.Codec().OnDecode(n, time.Since(start), err)
	return f, err
}

// ReadFile reads a JSON file and returns the decoded forest.
// Returns a FILE_NOT_FOUND error if the file does not exist.
func ReadFile(path string) (*forest.Forest, error) {
	in, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "open %s", path)
	}
	defer in.Close()
	return Read(in)
}

func writeTo(f *forest.Forest, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromForest(f)); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode forest")
	}
	return nil
}

func readFrom(r io.Reader) (*forest.Forest, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode document")
	}
	return ToForest(doc)
}
