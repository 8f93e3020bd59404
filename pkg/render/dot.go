package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/jsonizer/pkg/part"
)

// Options configures DOT generation.
type Options struct {
	// Title labels the graph, typically the document ID.
	Title string

	// Detailed adds serials and leaf counts to node labels.
	Detailed bool
}

var fills = map[part.Kind]string{
	part.Int:    "#dbeafe",
	part.Double: "#dcfce7",
	part.String: "#fef9c3",
	part.Array:  "#ede9fe",
	part.Object: "#fee2e2",
}

// ToDOT converts a part tree to Graphviz DOT source. The tree is laid out
// left to right with the root first.
func ToDOT(root *part.Part, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=12];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	if root != nil {
		var edges []string
		writeNode(&buf, &edges, root, opts.Detailed)
		if len(edges) > 0 {
			buf.WriteString("\n")
		}
		for _, e := range edges {
			buf.WriteString(e)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, edges *[]string, p *part.Part, detailed bool) {
	id := nodeID(p)
	fmt.Fprintf(buf, "  %q [label=%q, fillcolor=%q];\n", id, fmtLabel(p, detailed), fills[p.Kind()])
	for _, c := range p.Children() {
		if c == nil {
			continue
		}
		*edges = append(*edges, fmt.Sprintf("  %q -> %q;\n", id, nodeID(c)))
		writeNode(buf, edges, c, detailed)
	}
}

func nodeID(p *part.Part) string {
	return fmt.Sprintf("p%d", p.Serial())
}

func fmtLabel(p *part.Part, detailed bool) string {
	var head string
	switch {
	case p.IsLeaf():
		head = p.Value()
	case p.Kind() == part.Array:
		head = fmt.Sprintf("[%d]", len(p.Children()))
	default:
		head = fmt.Sprintf("{%d}", len(p.Children()))
	}
	if p.HasKey() {
		head = p.Key() + ": " + head
	}
	if !detailed {
		return head
	}

	c := p.Counts()
	lines := []string{head, fmt.Sprintf("serial: %d", p.Serial())}
	if !p.IsLeaf() {
		lines = append(lines, fmt.Sprintf("ints: %d doubles: %d strings: %d", c.Ints, c.Doubles, c.Strings))
	}
	return strings.Join(lines, "\n")
}
