// Package tagcat is the tag-name/flags catalog collaborator described in
// the HTML core spec: a static, frozen name<->id table with per-tag
// content-model and behaviour flags. It is read-only after init() and
// safe to share across goroutines, matching the "global/static catalog"
// design note.
package tagcat

import "strings"

// Flag bits describing a tag's content model and specializer eligibility.
// These are catalog-level (static) flags; the parser ORs in its own
// per-instance flags (FL_CLOSING, FL_BROKEN, ...) on top of these.
const (
	CMInline  uint32 = 1 << iota // renders inline, nests freely
	CMEmpty                      // void element, never pushed on the open-tag stack
	CMHead                       // metadata element; content is not user-visible text
	CMUnknown                    // not a real element (placeholder for id == -1 entries)
	CMUnique                     // at most one expected per document (DUPLICATE_ELEMENTS otherwise)
	FLHref                       // tag carries a primary link attribute (href/src/action)
	FLBlock                      // tag may carry a visual block (color/bgcolor/style)
)

// Well-known ids referenced by name in the parser (see spec.md §4.1, §6).
const (
	Unknown int = -1
	Html    int = iota
	Head
	Title
	Base
	Meta
	Link
	Style
	Script
	Body
	Div
	P
	Span
	A
	Img
	Br
	Hr
	Table
	Tbody
	Thead
	Tfoot
	Tr
	Td
	Th
	Caption
	Colgroup
	Col
	Ul
	Ol
	Li
	Dl
	Dt
	Dd
	H1
	H2
	H3
	H4
	H5
	H6
	Blockquote
	Pre
	Code
	Font
	B
	Strong
	I
	Em
	U
	Small
	Big
	Sub
	Sup
	Strike
	S
	Del
	Ins
	Abbr
	Acronym
	Bdo
	Center
	Form
	Input
	Button
	Select
	Option
	Textarea
	Label
	Fieldset
	Legend
	Area
	Map
	IFrame
	Object
	Embed
	Param
	Dir
	Menu
	Frameset
	Frame
	Noframes
	Marquee
	Blink
	Applet
	Isindex
	Basefont
	Noscript
	Section
	Article
	Nav
	Aside
	Header
	Footer
	Figure
	Figcaption
	Video
	Audio
	Source
	Track
	Canvas
	Wbr
)

// TagDef describes a single catalog entry.
type TagDef struct {
	ID    int
	Name  string
	Flags uint32
}

var byName map[string]TagDef
var byID map[int]TagDef

func def(id int, name string, flags uint32) TagDef {
	return TagDef{ID: id, Name: name, Flags: flags}
}

func init() {
	defs := []TagDef{
		def(Html, "html", CMUnique),
		def(Head, "head", CMHead|CMUnique),
		def(Title, "title", CMHead|CMUnique),
		def(Base, "base", CMHead|CMEmpty|CMUnique|FLHref),
		def(Meta, "meta", CMHead|CMEmpty),
		def(Link, "link", CMHead|CMEmpty|FLHref),
		def(Style, "style", CMHead),
		def(Script, "script", CMHead),
		def(Noscript, "noscript", CMHead),
		def(Body, "body", CMUnique|FLBlock),

		def(Div, "div", FLBlock),
		def(P, "p", FLBlock),
		def(Span, "span", CMInline|FLBlock),
		// <a> deliberately omits CMInline and FLBlock: unlike b/i/span it
		// must go through the block-category open/close stack so nested
		// <a>...<a> triggers the same-tag misnesting rule (spec §4.3).
		def(A, "a", FLHref),
		def(Img, "img", CMInline|CMEmpty),
		def(Br, "br", CMEmpty),
		def(Hr, "hr", CMEmpty|FLBlock),

		def(Table, "table", FLBlock),
		def(Tbody, "tbody", FLBlock),
		def(Thead, "thead", FLBlock),
		def(Tfoot, "tfoot", FLBlock),
		def(Tr, "tr", FLBlock),
		def(Td, "td", FLBlock),
		def(Th, "th", FLBlock),
		def(Caption, "caption", FLBlock),
		def(Colgroup, "colgroup", 0),
		def(Col, "col", CMEmpty),

		def(Ul, "ul", FLBlock),
		def(Ol, "ol", FLBlock),
		def(Li, "li", FLBlock),
		def(Dl, "dl", FLBlock),
		def(Dt, "dt", FLBlock),
		def(Dd, "dd", FLBlock),

		def(H1, "h1", FLBlock),
		def(H2, "h2", FLBlock),
		def(H3, "h3", FLBlock),
		def(H4, "h4", FLBlock),
		def(H5, "h5", FLBlock),
		def(H6, "h6", FLBlock),

		def(Blockquote, "blockquote", FLBlock),
		def(Pre, "pre", FLBlock),
		def(Code, "code", CMInline|FLBlock),
		def(Font, "font", CMInline|FLBlock),
		def(B, "b", CMInline|FLBlock),
		def(Strong, "strong", CMInline|FLBlock),
		def(I, "i", CMInline|FLBlock),
		def(Em, "em", CMInline|FLBlock),
		def(U, "u", CMInline|FLBlock),
		def(Small, "small", CMInline|FLBlock),
		def(Big, "big", CMInline|FLBlock),
		def(Sub, "sub", CMInline|FLBlock),
		def(Sup, "sup", CMInline|FLBlock),
		def(Strike, "strike", CMInline|FLBlock),
		def(S, "s", CMInline|FLBlock),
		def(Del, "del", CMInline|FLBlock),
		def(Ins, "ins", CMInline|FLBlock),
		def(Abbr, "abbr", CMInline|FLBlock),
		def(Acronym, "acronym", CMInline|FLBlock),
		def(Bdo, "bdo", CMInline|FLBlock),
		def(Center, "center", FLBlock),

		def(Form, "form", FLHref),
		def(Input, "input", CMInline|CMEmpty),
		def(Button, "button", CMInline),
		def(Select, "select", CMInline),
		def(Option, "option", CMInline),
		def(Textarea, "textarea", CMInline),
		def(Label, "label", CMInline),
		def(Fieldset, "fieldset", FLBlock),
		def(Legend, "legend", FLBlock),

		def(Area, "area", CMEmpty|FLHref),
		def(Map, "map", 0),
		def(IFrame, "iframe", FLHref),
		def(Object, "object", 0),
		def(Embed, "embed", CMEmpty),
		def(Param, "param", CMEmpty),

		def(Dir, "dir", FLBlock),
		def(Menu, "menu", FLBlock),
		def(Frameset, "frameset", CMHead),
		def(Frame, "frame", CMHead|CMEmpty),
		def(Noframes, "noframes", CMHead),
		def(Marquee, "marquee", FLBlock),
		def(Blink, "blink", CMInline|FLBlock),
		def(Applet, "applet", 0),
		def(Isindex, "isindex", CMEmpty),
		def(Basefont, "basefont", CMEmpty|FLBlock),

		def(Section, "section", FLBlock),
		def(Article, "article", FLBlock),
		def(Nav, "nav", FLBlock),
		def(Aside, "aside", FLBlock),
		def(Header, "header", FLBlock),
		def(Footer, "footer", FLBlock),
		def(Figure, "figure", FLBlock),
		def(Figcaption, "figcaption", FLBlock),

		def(Video, "video", 0),
		def(Audio, "audio", 0),
		def(Source, "source", CMEmpty),
		def(Track, "track", CMEmpty),
		def(Canvas, "canvas", CMInline),
		def(Wbr, "wbr", CMEmpty),
	}

	byName = make(map[string]TagDef, len(defs))
	byID = make(map[int]TagDef, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
		byID[d.ID] = d
		if d.ID > maxTagID {
			maxTagID = d.ID
		}
	}
	NumTags = maxTagID + 1
}

// ByName looks up a tag definition by name, case-insensitively: ByName
// lowercases name itself (the attribute micro-parser already passes a
// lowercased name, while tests may pass mixed case).
func ByName(name string) (TagDef, bool) {
	d, ok := byName[strings.ToLower(name)]
	return d, ok
}

// ByID looks up a tag definition by its numeric id.
func ByID(id int) (TagDef, bool) {
	d, ok := byID[id]
	return d, ok
}

// NumTags is the size of the fixed tags_seen bitset (N_TAGS in spec.md §3).
// Ids are assigned 1..N (Unknown occupies 0's iota slot at -1), so the
// bitset must be sized to the highest id plus one, not the entry count;
// both are set by init() once the catalog is built.
var NumTags int
var maxTagID int
