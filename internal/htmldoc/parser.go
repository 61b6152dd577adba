package htmldoc

import (
	"bytes"

	"github.com/spamcore/htmlscan/internal/tagcat"
)

// contentWriter owns the single growable "parsed" byte string (spec
// §4.1 content_write) and the collapsing rule behind it: a run of
// whitespace becomes at most one ASCII space, and only when it falls
// between two non-whitespace runs. It also maintains content_offset /
// content_length bookkeeping for whichever tag is currently on top of
// the open-tag stack, via curTag.
type contentWriter struct {
	hc           *HtmlContent
	curTag       func() *HtmlTag
	pendingSpace bool
}

func (cw *contentWriter) writeByte(b byte) {
	if isSpaceByte(b) {
		cw.pendingSpace = true
		return
	}
	before := len(cw.hc.Parsed)
	if cw.pendingSpace {
		cw.pendingSpace = false
		if before > 0 && !isSpaceByte(cw.hc.Parsed[before-1]) {
			cw.hc.Parsed = append(cw.hc.Parsed, ' ')
		}
	}
	cw.hc.Parsed = append(cw.hc.Parsed, b)
	cw.record(before)
}

func (cw *contentWriter) writeString(s string) {
	for i := 0; i < len(s); i++ {
		cw.writeByte(s[i])
	}
}

// writeRun appends a scanned content run, decoding entities first if
// the run contained an '&' (spec §4.1: "appended verbatim, or via the
// in-place entity decoder if '&' was seen").
func (cw *contentWriter) writeRun(raw []byte) {
	if bytes.IndexByte(raw, '&') >= 0 {
		raw = decodeEntities(append([]byte(nil), raw...))
	}
	for _, b := range raw {
		cw.writeByte(b)
	}
}

// injectBreak appends a hard line break for Br/Hr/P/Tr/Div boundaries,
// skipped if parsed already ends in '\n' (spec §4.1).
func (cw *contentWriter) injectBreak() {
	cw.pendingSpace = false
	if n := len(cw.hc.Parsed); n > 0 && cw.hc.Parsed[n-1] == '\n' {
		return
	}
	before := len(cw.hc.Parsed)
	cw.hc.Parsed = append(cw.hc.Parsed, '\r', '\n')
	cw.record(before)
}

// record attributes the bytes written since `before` to whichever tag
// is currently open (the tree builder's current parent), matching
// spec §4.1's "maintain content_offset/content_length for content_tag".
// Post-pass (postpass.go) later sums children into ancestors.
func (cw *contentWriter) record(before int) {
	tag := cw.curTag()
	if tag == nil {
		return
	}
	if tag.ContentOffset < 0 {
		tag.ContentOffset = before
	}
	tag.ContentLength += len(cw.hc.Parsed) - before
}

// parseState drives spec §4.1's outer document-parser state machine.
// It is allocated fresh per Process call.
type parseState struct {
	hc        *HtmlContent
	tb        *treeBuilder
	sp        *specializerState
	cw        *contentWriter
	writing   bool
	styleMode bool
	styleBuf  []byte
	cssAllowed bool
}

func (ps *parseState) parseDocument(input []byte) {
	n := len(input)
	if n > 0 && input[0] != '<' {
		ps.hc.Flags |= FlagBadStart
	}
	ps.writing = true
	p := 0
	for p < n {
		if ps.styleMode {
			p = ps.scanStyleContent(input, p)
			continue
		}
		start := p
		for p < n && input[p] != '<' {
			p++
		}
		if p > start {
			ps.emitContentRun(input[start:p])
		}
		if p >= n {
			break
		}
		p = ps.handleLT(input, p)
	}
}

func (ps *parseState) emitContentRun(raw []byte) {
	if !ps.writing {
		return
	}
	ps.cw.writeRun(raw)
}

func (ps *parseState) scanStyleContent(input []byte, p int) int {
	n := len(input)
	i := p
	for i < n {
		if input[i] == '<' && i+2 < n && input[i+1] == '/' && (input[i+2] == 's' || input[i+2] == 'S') {
			if i > p {
				ps.styleBuf = append(ps.styleBuf, input[p:i]...)
			}
			ps.styleMode = false
			return i
		}
		i++
	}
	if n > p {
		ps.styleBuf = append(ps.styleBuf, input[p:n]...)
	}
	ps.styleMode = false
	ps.writing = false
	return n
}

func (ps *parseState) enterStyleMode() {
	ps.styleMode = true
	ps.styleBuf = ps.styleBuf[:0]
	ps.writing = false
}

func (ps *parseState) exitStyleMode() {
	// scanStyleContent already cleared styleMode the moment it found the
	// "</s" terminator, so styleBuf (not styleMode) is the signal that
	// there is captured <style> content waiting to be parsed here.
	if len(ps.styleBuf) > 0 && ps.cssAllowed {
		ps.ensureStylesheet().parseStyleBlock(string(ps.styleBuf))
	}
	ps.styleMode = false
	ps.styleBuf = ps.styleBuf[:0]
}

func (ps *parseState) ensureStylesheet() *Stylesheet {
	if ps.hc.CSS == nil {
		ps.hc.CSS = &Stylesheet{}
	}
	return ps.hc.CSS
}

func isAsciiLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// handleLT dispatches on the byte following '<' (spec §4.1 tag_begin).
func (ps *parseState) handleLT(input []byte, p int) int {
	n := len(input)
	q := p + 1
	if q >= n {
		ps.hc.Flags |= FlagBadElements
		return n
	}
	switch {
	case input[q] == '!':
		return ps.handleSgml(input, q+1)
	case input[q] == '?':
		ps.hc.Flags |= FlagXML
		return ps.handleXML(input, q+1)
	case input[q] == '/':
		return ps.handleClosingTag(input, q+1)
	case isAsciiLetter(input[q]):
		return ps.handleOpeningTag(input, q)
	default:
		ps.hc.Flags |= FlagBadElements
		return q
	}
}

func (ps *parseState) handleOpeningTag(input []byte, pos int) int {
	tag, next := parseTag(input, pos)
	if tag.Flags&FLBroken != 0 {
		ps.hc.Flags |= FlagBadElements
	}
	accepted := ps.tb.accept(tag, false)
	if accepted {
		ps.sp.onOpen(tag)
		if tag.ID == tagcat.Br || tag.ID == tagcat.Hr {
			ps.cw.injectBreak()
		}
	}
	switch {
	case tag.ID == tagcat.Style:
		ps.enterStyleMode()
	case accepted:
		ps.writing = true
	default:
		ps.writing = false
	}
	return next
}

func (ps *parseState) handleClosingTag(input []byte, pos int) int {
	name, i := parseTagName(input, pos)
	i = skipToGT(input, i)

	tag := &HtmlTag{Name: name, Flags: FLClosing, ContentOffset: -1}
	if name == "" {
		tag.ID = -1
		tag.Flags |= FLBroken
	} else if def, ok := tagDefByName(name); ok {
		tag.ID = def.ID
		tag.Flags |= def.Flags
	} else {
		tag.ID = -1
	}

	accepted := ps.tb.accept(tag, true)
	if accepted {
		ps.sp.onClose(tag)
		ps.writing = true
		switch tag.ID {
		case tagcat.P, tagcat.Tr, tagcat.Div:
			ps.cw.injectBreak()
		}
	}

	if tag.ID == tagcat.Style {
		ps.exitStyleMode()
		ps.writing = true
	}

	return i
}

func (ps *parseState) handleSgml(input []byte, pos int) int {
	n := len(input)
	if pos < n && input[pos] == '[' {
		return ps.handleCompoundTag(input, pos+1)
	}
	if pos < n && input[pos] == '-' {
		return ps.handleComment(input, pos+1)
	}
	return ps.handleSgmlContent(input, pos)
}

func (ps *parseState) handleComment(input []byte, pos int) int {
	n := len(input)
	if pos >= n || input[pos] != '-' {
		ps.hc.Flags |= FlagBadElements
		return ps.handleSgmlContent(input, pos)
	}
	pos++
	idx := bytes.Index(input[pos:], []byte("-->"))
	if idx < 0 {
		return n
	}
	return pos + idx + 3
}

func (ps *parseState) handleSgmlContent(input []byte, pos int) int {
	return skipToGT(input, pos)
}

func (ps *parseState) handleCompoundTag(input []byte, pos int) int {
	n := len(input)
	depth := 1
	i := pos
	for i < n {
		switch input[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '>':
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return n
}

func (ps *parseState) handleXML(input []byte, pos int) int {
	n := len(input)
	i := pos
	for i < n {
		if input[i] == '?' {
			if i+1 < n && input[i+1] == '>' {
				return i + 2
			}
			ps.hc.Flags |= FlagBadElements
		}
		if input[i] == '>' {
			ps.hc.Flags |= FlagBadElements
			return i + 1
		}
		i++
	}
	return n
}
