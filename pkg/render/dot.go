// Package render converts forests to Graphviz DOT and rendered images.
//
// The node-link diagram shows the forest's parent/child structure: one box
// per instance, one edge per parent-to-child link, roots drawn with a
// distinct fill. Rendering to SVG or PNG uses the embedded Graphviz engine,
// so no system graphviz installation is required.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ThatTimothy/rbx-dom/pkg/forest"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the payload in node labels.
	// When false, only the short ref is shown.
	Detailed bool
}

// ToDOT converts a forest to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
// Output order follows each parent's child list, so the diagram is stable
// for a given forest.
func ToDOT(f *forest.Forest, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph forest {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, root := range f.Roots() {
		cur := f.Descendants(root)
		for in, ok := cur.Next(); ok; in, ok = cur.Next() {
			label := fmtLabel(in, opts.Detailed)
			attrs := fmtAttrs(f, in, label)
			fmt.Fprintf(&buf, "  %q [%s];\n", in.ID().String(), strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("\n")
	for _, root := range f.Roots() {
		cur := f.Descendants(root)
		for in, ok := cur.Next(); ok; in, ok = cur.Next() {
			for _, child := range in.Children() {
				fmt.Fprintf(&buf, "  %q -> %q;\n", in.ID().String(), child.String())
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(in *forest.Instance, detailed bool) string {
	if !detailed || in.Payload == nil {
		return in.ID().Short()
	}
	return fmt.Sprintf("%s\n%v", in.ID().Short(), in.Payload)
}

func fmtAttrs(f *forest.Forest, in *forest.Instance, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if f.IsRoot(in.ID()) {
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderAs(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderAs(dot, graphviz.PNG)
}

func renderAs(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
