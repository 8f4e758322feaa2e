package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grove-platform/docparse/rstast"
	"gopkg.in/yaml.v3"
)

// yamlNode is the plain-value shape rstast.Node is flattened into
// before handing it to yaml.v3, since Node itself carries unexported
// AttrValue internals that yaml.Marshal can't see into directly.
type yamlNode struct {
	Kind     string         `yaml:"kind"`
	Text     string         `yaml:"text,omitempty"`
	Line     int            `yaml:"line,omitempty"`
	Attrs    map[string]any `yaml:"attrs,omitempty"`
	Children []*yamlNode    `yaml:"children,omitempty"`
}

func toYAMLNode(n *rstast.Node) *yamlNode {
	y := &yamlNode{Kind: n.Kind.String(), Text: n.Text, Line: n.Line}
	if len(n.Attrs) > 0 {
		y.Attrs = make(map[string]any, len(n.Attrs))
		for k, v := range n.Attrs {
			y.Attrs[k] = v.AsInterface()
		}
	}
	for _, c := range n.Children {
		y.Children = append(y.Children, toYAMLNode(c))
	}
	return y
}

// renderYAML dumps doc's tree via yaml.v3, the "docparse parse
// --format=yaml" path SPEC_FULL.md's domain stack wiring names for
// gopkg.in/yaml.v3's AST-out role.
func renderYAML(doc *rstast.Document) (string, error) {
	out, err := yaml.Marshal(toYAMLNode(doc.Node))
	if err != nil {
		return "", fmt.Errorf("failed to marshal document as YAML: %w", err)
	}
	return string(out), nil
}

// renderSExpr renders doc as a stable, one-node-per-line textual form
// (kind, then sorted attrs, then text when present), indented by
// depth. This is the representation the diff subcommand compares
// between two parses: a line-oriented shape is what a line-diff
// algorithm like go-udiff's is built for.
func renderSExpr(doc *rstast.Document) string {
	var b strings.Builder
	writeSExpr(&b, doc.Node, 0)
	return b.String()
}

func writeSExpr(b *strings.Builder, n *rstast.Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("(")
	b.WriteString(n.Kind.String())

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, n.Attrs[k].AsInterface())
	}
	if n.Text != "" {
		fmt.Fprintf(b, " %q", n.Text)
	}
	b.WriteString(")\n")

	for _, c := range n.Children {
		writeSExpr(b, c, depth+1)
	}
}
