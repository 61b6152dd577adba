package htmldoc

import (
	"testing"

	"github.com/spamcore/htmlscan/internal/tagcat"
)

func newTag(id int, name string, flags uint32) *HtmlTag {
	return &HtmlTag{ID: id, Name: name, Flags: flags, ContentOffset: -1}
}

func newContent() *HtmlContent {
	return &HtmlContent{TagsSeen: make([]bool, numTags())}
}

func TestTreeBuilderSimpleNesting(t *testing.T) {
	t.Parallel()
	hc := newContent()
	tb := newTreeBuilder(hc)

	outer := newTag(tagcat.Div, "div", FLBlock)
	if !tb.accept(outer, false) {
		t.Fatal("expected outer div accepted")
	}
	inner := newTag(tagcat.Div, "div", FLBlock)
	if !tb.accept(inner, false) {
		t.Fatal("expected inner div accepted")
	}
	closeInner := newTag(tagcat.Div, "div", FLBlock|FLClosing)
	if !tb.accept(closeInner, true) {
		t.Fatal("expected closing inner div accepted")
	}
	closeOuter := newTag(tagcat.Div, "div", FLBlock|FLClosing)
	if !tb.accept(closeOuter, true) {
		t.Fatal("expected closing outer div accepted")
	}

	if hc.RootTag != outer {
		t.Fatalf("RootTag = %v, want outer", hc.RootTag)
	}
	if len(outer.Children) != 1 || outer.Children[0] != inner {
		t.Fatalf("outer.Children = %+v, want [inner]", outer.Children)
	}
	if hc.Flags&FlagUnbalanced != 0 {
		t.Fatalf("unexpected UNBALANCED flag")
	}
}

func TestTreeBuilderUnbalancedCloseRejected(t *testing.T) {
	t.Parallel()
	hc := newContent()
	tb := newTreeBuilder(hc)

	div := newTag(tagcat.Div, "div", FLBlock)
	tb.accept(div, false)
	closeP := newTag(tagcat.P, "p", FLBlock|FLClosing)
	if tb.accept(closeP, true) {
		t.Fatal("expected unmatched closing tag to be rejected")
	}
	if hc.Flags&FlagUnbalanced == 0 {
		t.Fatal("expected UNBALANCED to be set")
	}
}

func TestTreeBuilderSameTagReparenting(t *testing.T) {
	t.Parallel()
	hc := newContent()
	tb := newTreeBuilder(hc)

	outerA := newTag(tagcat.A, "a", FLHref)
	tb.accept(outerA, false)
	innerA := newTag(tagcat.A, "a", FLHref)
	if !tb.accept(innerA, false) {
		t.Fatal("expected nested <a> to still be accepted (reparented)")
	}
	if hc.Flags&FlagUnbalanced == 0 {
		t.Fatal("expected UNBALANCED for same-tag misnesting")
	}
	if innerA.Parent != nil {
		t.Fatalf("innerA.Parent = %v, want nil (reparented to outer's parent)", innerA.Parent)
	}
}

func TestTreeBuilderDuplicateUniqueTag(t *testing.T) {
	t.Parallel()
	hc := newContent()
	tb := newTreeBuilder(hc)

	html1 := newTag(tagcat.Html, "html", CMUnique)
	tb.accept(html1, false)
	html2 := newTag(tagcat.Html, "html", CMUnique)
	tb.accept(html2, false)

	if hc.Flags&FlagDuplicateElements == 0 {
		t.Fatal("expected DUPLICATE_ELEMENTS to be set")
	}
}

func TestTreeBuilderUnknownTagRejected(t *testing.T) {
	t.Parallel()
	hc := newContent()
	tb := newTreeBuilder(hc)

	bogus := newTag(-1, "bogus", 0)
	if tb.accept(bogus, false) {
		t.Fatal("expected unknown tag to be rejected")
	}
	if hc.Flags&FlagUnknownElements == 0 {
		t.Fatal("expected UNKNOWN_ELEMENTS to be set")
	}
}

func TestTreeBuilderInlineIgnoredUnderHead(t *testing.T) {
	t.Parallel()
	hc := newContent()
	tb := newTreeBuilder(hc)

	head := newTag(tagcat.Head, "head", CMHead|CMUnique)
	if tb.accept(head, false) {
		t.Fatal("expected <head> itself to be marked ignored (returns reject)")
	}
	img := newTag(tagcat.Img, "img", CMInline|CMEmpty)
	if tb.accept(img, false) {
		t.Fatal("expected inline tag under an ignored head to be rejected")
	}
	if img.Flags&FLIgnore == 0 {
		t.Fatal("expected FL_IGNORE on the image nested in <head>")
	}
}
