package htmldoc

import (
	"testing"

	"github.com/spamcore/htmlscan/internal/tagcat"
)

func TestParseInlineStyle(t *testing.T) {
	t.Parallel()
	decls := parseInlineStyle("color: red; background-color:#000 ; font-size : 0")
	if decls["color"] != "red" {
		t.Errorf("color = %q, want red", decls["color"])
	}
	if decls["background-color"] != "#000" {
		t.Errorf("background-color = %q, want #000", decls["background-color"])
	}
	if decls["font-size"] != "0" {
		t.Errorf("font-size = %q, want 0", decls["font-size"])
	}
}

func TestStylesheetComputeAll(t *testing.T) {
	t.Parallel()
	root := &HtmlTag{ID: tagcat.Div, Name: "div", Flags: FLBlock, ContentOffset: -1}
	child := &HtmlTag{
		ID: tagcat.P, Name: "p", Flags: FLBlock, ContentOffset: -1,
		Parameters: []Param{
			{Kind: CompClass, Value: "hidden"},
			{Kind: CompID, Value: "a"},
		},
	}
	root.Children = []*HtmlTag{child}
	child.Parent = root

	ss := &Stylesheet{}
	ss.parseStyleBlock(`.hidden { display: none; } #a { color: red; }`)

	computed := ss.ComputeAll(root)
	decls, ok := computed[child]
	if !ok {
		t.Fatal("expected a computed declaration map for the child <p>")
	}
	if decls["display"] != "none" {
		t.Errorf("display = %q, want none", decls["display"])
	}
	if decls["color"] != "red" {
		t.Errorf("color = %q, want red", decls["color"])
	}
	if _, ok := computed[root]; ok {
		t.Errorf("did not expect the root <div> to match any rule")
	}
}

func TestStylesheetComputeAllIDBeatsClass(t *testing.T) {
	t.Parallel()
	root := &HtmlTag{
		ID: tagcat.P, Name: "p", Flags: FLBlock, ContentOffset: -1,
		Parameters: []Param{
			{Kind: CompClass, Value: "x"},
			{Kind: CompID, Value: "y"},
		},
	}
	ss := &Stylesheet{}
	ss.parseStyleBlock(`#y { color: red; } .x { color: blue; }`)

	computed := ss.ComputeAll(root)
	if computed[root]["color"] != "red" {
		t.Errorf("color = %q, want red (#id outranks .class regardless of source order)", computed[root]["color"])
	}
}

func TestStylesheetComputeAllInlineWins(t *testing.T) {
	t.Parallel()
	root := &HtmlTag{
		ID: tagcat.P, Name: "p", Flags: FLBlock, ContentOffset: -1,
		Parameters: []Param{
			{Kind: CompClass, Value: "x"},
			{Kind: CompStyle, Value: "color: blue"},
		},
	}
	ss := &Stylesheet{}
	ss.parseStyleBlock(`.x { color: red; }`)

	computed := ss.ComputeAll(root)
	if computed[root]["color"] != "blue" {
		t.Errorf("color = %q, want blue (inline style overrides stylesheet)", computed[root]["color"])
	}
}
