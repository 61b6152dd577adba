package htmldoc

import (
	"strconv"
	"strings"

	"github.com/spamcore/htmlscan/internal/tagcat"
)

// anchorCtx tracks one currently-open <a> on the anchor stack, so a
// nested or closing anchor can emit a displayed-URL exception for the
// text that accumulated while it was open (spec §4.4).
type anchorCtx struct {
	offset int
	url    *Url
}

// specializerState runs the §4.4 per-tag specializers as the tree
// builder accepts each tag. It is allocated fresh per Process call
// (see process.go) so nothing here is shared across concurrent calls.
type specializerState struct {
	hc          *HtmlContent
	cw          *contentWriter
	anchorStack []anchorCtx
}

func newSpecializerState(hc *HtmlContent, cw *contentWriter) *specializerState {
	return &specializerState{hc: hc, cw: cw}
}

// addURL inserts u into the de-duplicating URL set and, the first time a
// given raw URL is seen, also appends it to the flat part_urls sink
// (spec §6 "part_urls"), mirroring the original's
// rspamd_url_set_add_or_return "only add on first sighting" rule.
func (sp *specializerState) addURL(u *Url) *Url {
	if sp.hc.urls == nil {
		return u
	}
	resolved := sp.hc.urls.Insert(u)
	if resolved.Count == 1 && sp.hc.partURLs != nil {
		*sp.hc.partURLs = append(*sp.hc.partURLs, resolved)
	}
	return resolved
}

// onOpen dispatches a freshly-opened (accepted) tag to its specializer,
// by id, per spec §4.4 ("run after a successful opening, not closings").
func (sp *specializerState) onOpen(tag *HtmlTag) {
	switch tag.ID {
	case tagcat.Base:
		sp.handleBase(tag)
	case tagcat.A:
		sp.openAnchor(tag)
	case tagcat.Img:
		sp.handleImage(tag)
	case tagcat.Link:
		sp.handleLink(tag)
	default:
		if tag.Flags&FLHref != 0 {
			sp.handleHref(tag)
		}
	}
	if tag.Flags&FLBlock != 0 {
		sp.handleBlock(tag)
	}
}

// onClose handles the one specializer reaction that fires on a
// closing tag: </a> closes out the anchor-exception tracking.
func (sp *specializerState) onClose(tag *HtmlTag) {
	if tag.ID == tagcat.A {
		sp.closeAnchor()
	}
}

func (sp *specializerState) handleBase(tag *HtmlTag) {
	if sp.hc.BaseURL != nil {
		return
	}
	href, ok := tag.FirstParam(CompHref)
	if !ok {
		return
	}
	resolved, ok := resolveHref(href, nil)
	if !ok {
		return
	}
	sp.hc.BaseURL = resolved
	tag.Extra = resolved
	tag.Flags |= FLHrefInstance
}

func (sp *specializerState) handleHref(tag *HtmlTag) {
	href, ok := tag.FirstParam(CompHref)
	if !ok {
		return
	}
	resolved, ok := resolveHref(href, sp.hc.BaseURL)
	if !ok {
		return
	}
	resolved = sp.addURL(resolved)
	tag.Extra = resolved
	tag.Flags |= FLHrefInstance
	sp.insertQueryURLs(href)
}

func (sp *specializerState) handleLink(tag *HtmlTag) {
	if rel, ok := tag.FirstParam(CompRel); ok && strings.EqualFold(strings.TrimSpace(rel), "icon") {
		sp.handleImage(tag)
		return
	}
	if tag.Flags&FLHref != 0 {
		sp.handleHref(tag)
	}
}

func (sp *specializerState) insertQueryURLs(href string) {
	if sp.hc.urls == nil {
		return
	}
	for _, u := range findQueryURLs(href) {
		sp.addURL(u)
	}
}

func (sp *specializerState) openAnchor(tag *HtmlTag) {
	var u *Url
	if href, ok := tag.FirstParam(CompHref); ok {
		if resolved, ok2 := resolveHref(href, sp.hc.BaseURL); ok2 {
			resolved = sp.addURL(resolved)
			u = resolved
			tag.Extra = resolved
			tag.Flags |= FLHrefInstance
			sp.insertQueryURLs(href)
		}
	}
	offset := len(sp.hc.Parsed)
	if len(sp.anchorStack) > 0 {
		outer := sp.anchorStack[len(sp.anchorStack)-1]
		sp.emitDisplayedURLException(outer, offset)
	}
	sp.anchorStack = append(sp.anchorStack, anchorCtx{offset: offset, url: u})
}

func (sp *specializerState) closeAnchor() {
	if len(sp.anchorStack) == 0 {
		return
	}
	ctx := sp.anchorStack[len(sp.anchorStack)-1]
	sp.anchorStack = sp.anchorStack[:len(sp.anchorStack)-1]
	sp.emitDisplayedURLException(ctx, len(sp.hc.Parsed))
}

func (sp *specializerState) emitDisplayedURLException(ctx anchorCtx, end int) {
	if sp.hc.exceptions == nil || ctx.url == nil || end <= ctx.offset {
		return
	}
	*sp.hc.exceptions = append(*sp.hc.exceptions, Exception{
		Pos: ctx.offset, Len: end - ctx.offset,
		Kind: ExcDisplayedURLMismatch, Payload: ctx.url.Raw,
	})
}

func (sp *specializerState) handleImage(tag *HtmlTag) {
	img := &HtmlImage{Tag: tag}
	tag.Extra = img
	tag.Flags |= FLImage

	if href, ok := tag.FirstParam(CompHref); ok {
		img.Src = href
		switch {
		case strings.HasPrefix(href, "cid:"):
			img.Flags |= ImageEmbedded
		case strings.HasPrefix(href, "data:"):
			img.Flags |= ImageEmbedded | ImageData
			sp.hc.Flags |= FlagHasDataURLs
			if w, h, format, ok2 := probeDataURI(href); ok2 {
				img.ProbedWidth, img.ProbedHeight, img.ProbedFormat = w, h, format
			}
		default:
			img.Flags |= ImageExternal
			if resolved, ok2 := resolveHref(href, sp.hc.BaseURL); ok2 {
				resolved.Flags |= URLImage
				resolved = sp.addURL(resolved)
				img.URL = resolved
			}
		}
	}

	if w, ok := tag.FirstParam(CompWidth); ok {
		img.Width = parseUintPrefix(w)
	}
	if h, ok := tag.FirstParam(CompHeight); ok {
		img.Height = parseUintPrefix(h)
	}
	if style, ok := tag.FirstParam(CompStyle); ok {
		if img.Width == 0 {
			img.Width = scanStyleDimension(style, "width")
		}
		if img.Height == 0 {
			img.Height = scanStyleDimension(style, "height")
		}
	}

	sp.hc.Images = append(sp.hc.Images, img)

	if alt, ok := tag.FirstParam(CompAlt); ok {
		alt = strings.TrimSpace(alt)
		if alt != "" {
			sp.cw.writeString(" " + alt + " ")
		}
	}
}

func (sp *specializerState) handleBlock(tag *HtmlTag) {
	block := &Block{Declarations: map[string]string{}}
	if color, ok := tag.FirstParam(CompColor); ok {
		if hex := cssToHex(color); hex != "" {
			block.FgColor = hex
		}
	}
	if bg, ok := tag.FirstParam(CompBgcolor); ok {
		if hex := cssToHex(bg); hex != "" {
			block.BgColor = hex
		}
	}
	if style, ok := tag.FirstParam(CompStyle); ok {
		block = mergeDecls(block, parseInlineStyle(style))
	}
	tag.Block = block
	tag.Flags |= FLBlockInstance
}

// parseUintPrefix accepts the leading run of ASCII digits in s and
// parses it as an unsigned integer, e.g. "100px" -> 100. Returns 0 if s
// has no leading digit.
func parseUintPrefix(s string) int {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0
	}
	return n
}

// scanStyleDimension looks for prop (e.g. "width") inside a raw style
// string and accepts the first run of digits following any of
// '=', ':' or spaces, per spec §4.4's img fallback rule.
func scanStyleDimension(style, prop string) int {
	lower := strings.ToLower(style)
	idx := strings.Index(lower, prop)
	if idx < 0 {
		return 0
	}
	i := idx + len(prop)
	for i < len(style) {
		c := style[i]
		if c == '=' || c == ':' || c == ' ' {
			i++
			continue
		}
		break
	}
	return parseUintPrefix(style[i:])
}
