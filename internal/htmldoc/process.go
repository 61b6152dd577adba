package htmldoc

import "strings"

// Options configures a single Process call. It is the Go shape of
// spec.md §6's process(arena, bytes, exceptions_sink?, url_set?,
// part_urls?, allow_css) entry point - the arena itself is simply Go's
// GC, so there is nothing to pass for it here.
type Options struct {
	AllowCSS   bool
	Exceptions *[]Exception
	URLs       *URLSet
	PartURLs   *[]*Url
}

// Process parses input as a (possibly malformed) HTML document and
// returns the accumulated document tree, extracted text, and derived
// artifacts. It is safe to call concurrently from multiple goroutines:
// all mutable state lives in the HtmlContent this call allocates and
// the parseState/specializerState/contentWriter built to fill it in,
// none of it shared with any other call.
func Process(input []byte, opts Options) *HtmlContent {
	hc := &HtmlContent{TagsSeen: make([]bool, numTags())}
	hc.urls = opts.URLs
	if hc.urls == nil {
		hc.urls = NewURLSet()
	}
	hc.exceptions = opts.Exceptions
	hc.partURLs = opts.PartURLs

	tb := newTreeBuilder(hc)
	cw := &contentWriter{hc: hc, curTag: tb.currentParent}
	sp := newSpecializerState(hc, cw)
	ps := &parseState{hc: hc, tb: tb, sp: sp, cw: cw, cssAllowed: opts.AllowCSS}

	ps.parseDocument(input)
	runPostPass(hc, opts)

	return hc
}

// DebugStructure renders the accepted tree as a depth-prefixed dump
// ("+div;++a;..."), one '+' per nesting level starting at 1 for the
// root. Used by tests and the CLI dump tool; the round-trip invariant
// in spec.md §8 depends on this exact format.
func (hc *HtmlContent) DebugStructure() string {
	if hc.RootTag == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(t *HtmlTag, depth int)
	walk = func(t *HtmlTag, depth int) {
		sb.WriteString(strings.Repeat("+", depth))
		sb.WriteString(t.Name)
		sb.WriteString(";")
		for _, c := range t.Children {
			walk(c, depth+1)
		}
	}
	walk(hc.RootTag, 1)
	return sb.String()
}
