// Package ref provides the referent type used to identify instances.
//
// A Ref is a 128-bit universally unique identifier. Refs are cheap to copy,
// comparable with ==, and usable as map keys. Every Ref produced by [New] is
// unique for the lifetime of the process (and, in practice, globally).
//
// The zero value [Nil] is reserved: it is never returned by [New] and is used
// throughout the module to mean "no instance" (for example, an instance whose
// parent ref is Nil is a root).
package ref

import (
	"fmt"

	"github.com/google/uuid"
)

// Ref uniquely identifies an instance within a forest.
// The underlying representation is a version 4 UUID.
type Ref uuid.UUID

// Nil is the zero Ref. It never identifies an instance.
var Nil = Ref(uuid.Nil)

// New returns a fresh, unique Ref.
func New() Ref {
	return Ref(uuid.New())
}

// Parse decodes a Ref from its canonical string form
// (e.g. "9a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9").
func Parse(s string) (Ref, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("parse ref %q: %w", s, err)
	}
	return Ref(u), nil
}

// IsNil reports whether r is the zero Ref.
func (r Ref) IsNil() bool { return r == Nil }

// String returns the canonical hyphenated form of the Ref.
func (r Ref) String() string { return uuid.UUID(r).String() }

// Short returns the first eight hex digits of the Ref, for compact display.
func (r Ref) Short() string { return r.String()[:8] }

// MarshalText implements encoding.TextMarshaler. Because Refs marshal as
// text, they can be used directly as JSON object keys and field values.
func (r Ref) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Ref) UnmarshalText(text []byte) error {
	u, err := uuid.ParseBytes(text)
	if err != nil {
		return fmt.Errorf("parse ref %q: %w", text, err)
	}
	*r = Ref(u)
	return nil
}
