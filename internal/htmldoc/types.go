// Package htmldoc is the HTML content-processing core: a hand-rolled,
// one-pass byte-streaming parser that turns an arbitrary (often
// malformed) byte buffer claiming to be HTML into a tolerant document
// tree, extracted text, and the derived artifacts (URLs, images, visual
// blocks, invisible-region exceptions) used by downstream scoring.
//
// There are no fatal errors here except allocation failure, which in Go
// surfaces as a panic from the runtime rather than a return value (see
// spec §7); every malformed input is recovered by flagging instead.
package htmldoc

import "net/url"

// ComponentKind is the closed set of attribute kinds the micro-parser
// recognizes (spec §3).
type ComponentKind int

const (
	CompName ComponentKind = iota
	CompHref
	CompColor
	CompBgcolor
	CompStyle
	CompClass
	CompWidth
	CompHeight
	CompSize
	CompRel
	CompAlt
	CompID
)

// Per-instance tag flags, ORed on top of the catalog's static flags.
// Bits 0-7 are reserved for tagcat's catalog flags (CMInline, CMEmpty,
// ...); parser-discovered flags start at bit 8 so the two flag spaces
// can be OR'd together freely, matching spec §3's "flags: copy of
// catalog flags OR'd with parser-discovered flags".
const (
	FLClosing uint32 = 1 << (8 + iota) // a closing </tag>
	FLClosed                           // self-closed <tag/>
	FLBroken                           // malformed, id forced to -1
	FLIgnore                           // content under this tag is not user-visible
	FLImage                            // carries an HtmlImage in Extra
	FLHrefInstance                     // carries a resolved Url in Extra
	FLBlockInstance                    // carries a Block
)

// Document-level flags (spec §3 HtmlContent.flags).
const (
	FlagBadStart uint32 = 1 << iota
	FlagBadElements
	FlagUnknownElements
	FlagXML
	FlagUnbalanced
	FlagTooManyTags
	FlagDuplicateElements
	FlagHasDataURLs
)

// MaxTags is the hard cap on tree growth (spec §3 MAX_TAGS).
const MaxTags = 8192

// Param is an (attribute kind, decoded value) pair. Duplicates of the
// same kind are both stored; consumers read the first (spec §4.2/§9).
type Param struct {
	Kind  ComponentKind
	Value string
}

// Url is the parsed-URL artifact. The real "URL parser" collaborator is
// stdlib net/url (spec §1 lists it as an external collaborator; this
// module implements it for real rather than leaving it a stub, since
// net/url already does exactly that job).
type Url struct {
	Raw    string
	Parsed *url.URL
	Flags  uint32
	Count  int // how many times this exact URL was observed
}

// URL-set flags.
const (
	URLQuery uint32 = 1 << iota
	URLImage
)

// Image flags (spec §3 HtmlImage.flags).
const (
	ImageEmbedded uint32 = 1 << iota
	ImageExternal
	ImageData
)

// HtmlImage is the specializer output for <img> (and <link rel="icon">).
type HtmlImage struct {
	Tag    *HtmlTag
	Src    string
	URL    *Url
	Flags  uint32
	Width  int
	Height int

	ProbedWidth  int
	ProbedHeight int
	ProbedFormat string
}

// Block is the visual-block artifact: computed foreground/background
// color and visibility. The block specializer attaches one to each
// opened FL_BLOCK tag; the post-pass then gives every tag in the tree a
// block (its own, CSS-merged, inherited from its parent, or a default).
type Block struct {
	FgColor      string
	BgColor      string
	Declarations map[string]string
	Visible      bool
}

// ExceptionKind distinguishes the two exception payloads the post-pass
// and <a>/specializer logic emit.
type ExceptionKind int

const (
	ExcInvisible ExceptionKind = iota
	ExcDisplayedURLMismatch
)

// Exception correlates a slice of HtmlContent.Parsed with a downstream
// scoring signal (spec §6 "Output of exceptions sink", GLOSSARY).
type Exception struct {
	Pos     int
	Len     int
	Kind    ExceptionKind
	Payload string // the URL string for ExcDisplayedURLMismatch
}

// HtmlTag is a single parsed element (spec §3).
type HtmlTag struct {
	ID         int
	Name       string
	Flags      uint32
	Parameters []Param

	Parent   *HtmlTag
	Children []*HtmlTag

	// Extra holds at most one of *Url, *HtmlImage, *Block - the
	// specializer's output (spec §3 "extra: tagged union").
	Extra interface{}
	Block *Block

	ContentOffset int
	ContentLength int
}

// FirstParam returns the value of the first parameter of the given
// kind, matching the spec's "consumers use first match" rule (§4.3).
func (t *HtmlTag) FirstParam(kind ComponentKind) (string, bool) {
	for _, p := range t.Parameters {
		if p.Kind == kind {
			return p.Value, true
		}
	}
	return "", false
}

// HasFlag reports whether all bits in mask are set.
func (t *HtmlTag) HasFlag(mask uint32) bool { return t.Flags&mask == mask }

// URLSet is the caller-provided de-duplicating collection described in
// spec §6. Insertion is keyed on Url.Raw, the resolved URL string
// (after base-relative resolution), matching "insert into the URL set; if already present, increase
// count".
type URLSet struct {
	byRaw map[string]*Url
	order []*Url
}

// NewURLSet creates an empty URL set.
func NewURLSet() *URLSet {
	return &URLSet{byRaw: make(map[string]*Url)}
}

// Insert adds u (keyed by u.Raw), merging flags and bumping Count if an
// entry already exists for that raw text. It returns the stored entry,
// which may not be u itself.
func (s *URLSet) Insert(u *Url) *Url {
	if existing, ok := s.byRaw[u.Raw]; ok {
		existing.Flags |= u.Flags
		existing.Count++
		return existing
	}
	u.Count = 1
	s.byRaw[u.Raw] = u
	s.order = append(s.order, u)
	return u
}

// All returns the URLs in insertion order.
func (s *URLSet) All() []*Url { return s.order }

// HtmlContent is the process-wide output (spec §3).
type HtmlContent struct {
	Parsed  []byte
	AllTags []*HtmlTag
	RootTag *HtmlTag
	Images  []*HtmlImage
	BaseURL *Url
	CSS     *Stylesheet

	TagsSeen []bool
	Flags    uint32
	TotalTags int

	urls       *URLSet
	exceptions *[]Exception
	partURLs   *[]*Url
}

// TagSeen reports whether a tag with the given name was ever opened.
func (hc *HtmlContent) TagSeen(name string) bool {
	d, ok := tagDefByName(name)
	if !ok {
		return false
	}
	return hc.tagSeenByID(d.ID)
}

func (hc *HtmlContent) tagSeenByID(id int) bool {
	if id < 0 || id >= len(hc.TagsSeen) {
		return false
	}
	return hc.TagsSeen[id]
}

// ParsedText returns the extracted human-visible text.
func (hc *HtmlContent) ParsedText() []byte { return hc.Parsed }

// FindEmbeddedImage returns the first image whose Src matches cid and
// which is flagged ImageEmbedded (spec §6).
func (hc *HtmlContent) FindEmbeddedImage(cid string) *HtmlImage {
	for _, img := range hc.Images {
		if img.Flags&ImageEmbedded != 0 && img.Src == cid {
			return img
		}
	}
	return nil
}

// TagName returns the tag's own (possibly unknown) name.
func (hc *HtmlContent) TagName(t *HtmlTag) string { return t.Name }

// TagNameByID returns the catalog name for id, if known.
func (hc *HtmlContent) TagNameByID(id int) (string, bool) {
	d, ok := tagDefByID(id)
	if !ok {
		return "", false
	}
	return d.Name, true
}

// URLSetOf exposes the URL set Process filled: the caller's
// Options.URLs, or a fresh set when none was supplied.
func (hc *HtmlContent) URLSetOf() *URLSet { return hc.urls }
