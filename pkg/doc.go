// Package pkg provides the core libraries for working with instance forests.
//
// # Overview
//
// An instance forest is an identity-addressed tree of instances modeling a
// hierarchical document (a place or model file). The pkg directory is
// organized around that core:
//
//  1. [forest] - The forest itself: insertion, lookup, subtree removal,
//     transplanting between forests, and descendant traversal
//  2. [ref] - The referent type identifying instances
//  3. [codec] - JSON document serialization with structural validation
//  4. [render] - Graphviz DOT/SVG/PNG diagrams of a forest's structure
//  5. [errors] - Structured, coded errors shared by the codec and CLI
//  6. [observability] - Optional hooks for instrumenting mutations
//  7. [buildinfo] - Build-time version information
//
// # Quick Start
//
// Build a document and walk it:
//
//	import (
//	    "github.com/ThatTimothy/rbx-dom/pkg/forest"
//	    "github.com/ThatTimothy/rbx-dom/pkg/ref"
//	)
//
//	f := forest.New()
//	game := f.Insert(payload, ref.Nil)
//	workspace := f.Insert(payload, game)
//
//	cur := f.Descendants(game)
//	for in, ok := cur.Next(); ok; in, ok = cur.Next() {
//	    // ...
//	}
//
// Serialize it:
//
//	import "github.com/ThatTimothy/rbx-dom/pkg/codec"
//
//	err := codec.WriteFile(f, "place.json")
//	f2, err := codec.ReadFile("place.json")
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/forest/...   # Specific package
//	go test -run Example       # Examples only
//
// [forest]: https://pkg.go.dev/github.com/ThatTimothy/rbx-dom/pkg/forest
// [ref]: https://pkg.go.dev/github.com/ThatTimothy/rbx-dom/pkg/ref
// [codec]: https://pkg.go.dev/github.com/ThatTimothy/rbx-dom/pkg/codec
// [render]: https://pkg.go.dev/github.com/ThatTimothy/rbx-dom/pkg/render
// [errors]: https://pkg.go.dev/github.com/ThatTimothy/rbx-dom/pkg/errors
// [observability]: https://pkg.go.dev/github.com/ThatTimothy/rbx-dom/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/ThatTimothy/rbx-dom/pkg/buildinfo
package pkg
