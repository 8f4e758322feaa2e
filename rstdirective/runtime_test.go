package rstdirective

import (
	"testing"

	"github.com/grove-platform/docparse/rstast"
	"github.com/grove-platform/docparse/rstinline"
	"github.com/grove-platform/docparse/rstline"
	"github.com/grove-platform/docparse/rstmachine"
	"github.com/grove-platform/docparse/rstreport"
)

func TestValidateArguments(t *testing.T) {
	tests := []struct {
		name    string
		spec    DirectiveSpec
		args    []string
		want    []string
		wantErr bool
	}{
		{"too few", DirectiveSpec{RequiredArgs: 2}, []string{"a"}, nil, true},
		{"exact", DirectiveSpec{RequiredArgs: 1, OptionalArgs: 1}, []string{"a", "b"}, []string{"a", "b"}, false},
		{"too many without final whitespace", DirectiveSpec{OptionalArgs: 1}, []string{"a", "b"}, nil, true},
		{"excess joined with final whitespace", DirectiveSpec{RequiredArgs: 1, FinalArgWhitespace: true},
			[]string{"a", "b", "c"}, []string{"a b c"}, false},
		{"unlimited joined when max is zero", DirectiveSpec{FinalArgWhitespace: true},
			[]string{"x", "y"}, []string{"x y"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateArguments(tt.spec, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateOptionsRejectsUnknownName(t *testing.T) {
	spec := DirectiveSpec{OptionSpec: map[string]OptionValidator{"linenos": Flag}}
	_, err := validateOptions(spec, map[string]rstast.AttrValue{"bogus": rstast.AttrString("")})
	if err == nil {
		t.Fatal("expected unknown option name to error")
	}
}

func TestValidateOptionsConvertsValue(t *testing.T) {
	spec := DirectiveSpec{OptionSpec: map[string]OptionValidator{"depth": NonNegativeInt}}
	got, err := validateOptions(spec, map[string]rstast.AttrValue{"depth": rstast.AttrString("2")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["depth"] != 2 {
		t.Errorf("got depth = %v, want 2", got["depth"])
	}
}

func newTestContext(t *testing.T) *rstmachine.Context {
	t.Helper()
	reporter := rstreport.New(rstast.SeverityInfo, 5)
	doc := rstast.NewDocument("test.rst", "", "", reporter)
	inlineCtx := rstinline.NewContext(doc, reporter)
	memo := &rstmachine.Memo{Doc: doc, Reporter: reporter, Inline: inlineCtx, TabWidth: 8}
	return &rstmachine.Context{Memo: memo, Parent: doc.Node, SectionRoot: doc.Node}
}

func TestRuntimeInvokeKnownDirective(t *testing.T) {
	rt := NewRuntime(NewDefaultRegistry().LookupDirective)
	ctx := newTestContext(t)
	req := rstmachine.DirectiveRequest{
		Name:      "code-block",
		Arguments: []string{"go"},
		Options:   map[string]rstast.AttrValue{},
		Content:   rstline.FromSource("fmt.Println(1)", 8, true, "test.rst"),
		SourceID:  "test.rst",
		Line:      1,
		Ctx:       ctx,
		NestedParse: func(l *rstline.LineStore) []*rstast.Node {
			return nil
		},
	}

	nodes, messages := rt.Invoke(req)
	if len(messages) != 0 {
		t.Fatalf("unexpected messages: %v", messages)
	}
	if len(nodes) != 1 || nodes[0].Kind != rstast.KindCode {
		t.Fatalf("expected one KindCode node, got %#v", nodes)
	}
	if lang := nodes[0].AttrStringOr("language", ""); lang != "go" {
		t.Errorf("language = %q, want \"go\"", lang)
	}
}

func TestRuntimeInvokeUnknownDirectiveProducesSystemMessage(t *testing.T) {
	rt := NewRuntime(NewDefaultRegistry().LookupDirective)
	ctx := newTestContext(t)
	req := rstmachine.DirectiveRequest{
		Name: "not-a-real-directive", SourceID: "test.rst", Line: 3, Ctx: ctx,
	}

	nodes, messages := rt.Invoke(req)
	if len(nodes) != 0 {
		t.Fatalf("expected no content nodes, got %#v", nodes)
	}
	if len(messages) != 2 {
		t.Fatalf("expected a SystemMessage plus literal copy, got %#v", messages)
	}
	if messages[0].Kind != rstast.KindSystemMessage {
		t.Errorf("messages[0].Kind = %v, want KindSystemMessage", messages[0].Kind)
	}
}

func TestRuntimeInvokeArgumentErrorProducesSystemMessage(t *testing.T) {
	rt := NewRuntime(NewDefaultRegistry().LookupDirective)
	ctx := newTestContext(t)
	req := rstmachine.DirectiveRequest{
		Name: "image", SourceID: "test.rst", Line: 5, Ctx: ctx, BlockText: ".. image::",
	}

	nodes, messages := rt.Invoke(req)
	if nodes != nil {
		t.Fatalf("expected no nodes on a failed required-argument check, got %#v", nodes)
	}
	if len(messages) != 2 {
		t.Fatalf("expected a SystemMessage plus literal copy, got %#v", messages)
	}
}
