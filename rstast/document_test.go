package rstast

import "testing"

func TestDocument_NewAutoID_Uniqueness(t *testing.T) {
	doc := NewDocument("test.rst", "", "", nil)

	first := doc.NewAutoID("Hello World")
	second := doc.NewAutoID("Hello World")

	if first == second {
		t.Fatalf("expected distinct auto ids for repeated candidate, got %q twice", first)
	}
	if first != "hello-world" {
		t.Fatalf("want hello-world, got %q", first)
	}
}

func TestDocument_RegisterElement_DuplicateNameTable(t *testing.T) {
	tests := []struct {
		name         string
		refname      string
		register     func(doc *Document)
		wantID       *string
		wantExplicit bool
	}{
		{
			name:    "first explicit registration",
			refname: "foo",
			register: func(doc *Document) {
				e := NewNode(KindTarget)
				e.Names = []string{"foo"}
				e.IDs = []string{"foo-id"}
				doc.RegisterElement(e, true)
			},
			wantID:       strPtr("foo-id"),
			wantExplicit: true,
		},
		{
			name:    "implicit then explicit demotes prior",
			refname: "bar",
			register: func(doc *Document) {
				implicit := NewNode(KindSection)
				implicit.Names = []string{"bar"}
				implicit.IDs = []string{"bar-implicit"}
				doc.RegisterElement(implicit, false)

				explicit := NewNode(KindTarget)
				explicit.Names = []string{"bar"}
				explicit.IDs = []string{"bar-explicit"}
				doc.RegisterElement(explicit, true)
			},
			wantID:       strPtr("bar-explicit"),
			wantExplicit: true,
		},
		{
			name:    "two explicit duplicates with no refuri invalidate both",
			refname: "baz",
			register: func(doc *Document) {
				a := NewNode(KindTarget)
				a.Names = []string{"baz"}
				a.IDs = []string{"baz-a"}
				doc.RegisterElement(a, true)

				b := NewNode(KindTarget)
				b.Names = []string{"baz"}
				b.IDs = []string{"baz-b"}
				doc.RegisterElement(b, true)
			},
			wantID:       nil,
			wantExplicit: true,
		},
		{
			name:    "matching refuri explicit duplicates keep the prior",
			refname: "qux",
			register: func(doc *Document) {
				a := NewNode(KindTarget)
				a.Names = []string{"qux"}
				a.IDs = []string{"qux-a"}
				a.SetAttr("refuri", AttrString("https://example.com"))
				doc.RegisterElement(a, true)

				b := NewNode(KindTarget)
				b.Names = []string{"qux"}
				b.IDs = []string{"qux-b"}
				b.SetAttr("refuri", AttrString("https://example.com"))
				doc.RegisterElement(b, true)
			},
			wantID:       strPtr("qux-a"),
			wantExplicit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument("test.rst", "", "", nil)
			tt.register(doc)

			ids := doc.NameIDs()
			gotID, known := ids[tt.refname]
			if !known {
				t.Fatalf("name %q not registered", tt.refname)
			}
			if tt.wantID == nil {
				if gotID != nil {
					t.Fatalf("want nil id, got %q", *gotID)
				}
			} else {
				if gotID == nil || *gotID != *tt.wantID {
					t.Fatalf("want id %q, got %v", *tt.wantID, gotID)
				}
			}

			explicit, _ := doc.NameExplicit(tt.refname)
			if explicit != tt.wantExplicit {
				t.Fatalf("want explicit=%v, got %v", tt.wantExplicit, explicit)
			}
		})
	}
}

func TestNode_AstText_And_Walk(t *testing.T) {
	para := NewNode(KindParagraph)
	para.Append(NewText("Hello, "))
	strong := NewNode(KindStrong)
	strong.Append(NewText("world"))
	para.Append(strong)
	para.Append(NewText("!"))

	if got := para.AstText(); got != "Hello, world!" {
		t.Fatalf("want flattened text, got %q", got)
	}

	var kinds []Kind
	para.Walk(func(n *Node) bool {
		kinds = append(kinds, n.Kind)
		return true
	})
	if len(kinds) != 5 {
		t.Fatalf("want 5 visited nodes, got %d: %v", len(kinds), kinds)
	}
}
