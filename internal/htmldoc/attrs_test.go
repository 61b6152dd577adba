package htmldoc

import (
	"testing"

	"github.com/spamcore/htmlscan/internal/tagcat"
)

func TestParseTagBasic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		wantID  int
		wantLen int // number of stored params
	}{
		{"simple div", `div class="x">rest`, tagcat.Div, 1},
		{"self closed img", `img src="a.png" />rest`, tagcat.Img, 1},
		{"unquoted value", `a href=http://x.com>rest`, tagcat.A, 1},
		{"duplicate attr both stored", `a href="1" href="2">rest`, tagcat.A, 2},
		{"unknown tag", `frobnicate x="1">rest`, -1, 0},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tag, _ := parseTag([]byte(tc.input), 0)
			if tag.ID != tc.wantID {
				t.Fatalf("ID = %d, want %d", tag.ID, tc.wantID)
			}
			if len(tag.Parameters) != tc.wantLen {
				t.Fatalf("Parameters = %+v, want %d entries", tag.Parameters, tc.wantLen)
			}
		})
	}
}

func TestParseTagSelfClose(t *testing.T) {
	t.Parallel()
	tag, next := parseTag([]byte(`br/>after`), 0)
	if tag.Flags&FLClosed == 0 {
		t.Fatalf("expected FL_CLOSED, got flags %#x", tag.Flags)
	}
	if got := "br/>after"[next:]; got != "after" {
		t.Fatalf("next = %d, remaining %q, want \"after\"", next, got)
	}
}

func TestParseTagDuplicateFirstWins(t *testing.T) {
	t.Parallel()
	tag, _ := parseTag([]byte(`a href="first" href="second">`), 0)
	v, ok := tag.FirstParam(CompHref)
	if !ok || v != "first" {
		t.Fatalf("FirstParam(CompHref) = %q, %v, want \"first\", true", v, ok)
	}
}

func TestParseTagMalformedQuoteAfterName(t *testing.T) {
	t.Parallel()
	tag, next := parseTag([]byte(`div x"weird">after`), 0)
	if tag.Flags&FLBroken == 0 {
		t.Fatalf("expected FL_BROKEN for bad quote placement, flags = %#x", tag.Flags)
	}
	if got := `div x"weird">after`[next:]; got != "after" {
		t.Fatalf("next = %d, remaining %q, want \"after\"", next, got)
	}
}

func TestParseTagEmptyName(t *testing.T) {
	t.Parallel()
	tag, _ := parseTag([]byte(`>rest`), 0)
	if tag.ID != -1 || tag.Flags&FLBroken == 0 {
		t.Fatalf("empty tag name: ID=%d flags=%#x, want ID=-1 and FL_BROKEN", tag.ID, tag.Flags)
	}
}

func TestAttrKindOfAliases(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"href", "src", "action"} {
		kind, ok := attrKindOf(name)
		if !ok || kind != CompHref {
			t.Errorf("attrKindOf(%q) = %v, %v, want CompHref, true", name, kind, ok)
		}
	}
}
