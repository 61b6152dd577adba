package htmldoc

import (
	"strconv"
	"strings"
)

// runPostPass implements spec §4.6: a post-order pass that sums
// content_length up into ancestors, followed by a pre-order pass that
// merges any computed CSS block, decides visibility, and emits
// INVISIBLE exceptions (carving out any visible tag nested inside an
// invisible one).
func runPostPass(hc *HtmlContent, opts Options) {
	if hc.RootTag == nil {
		return
	}
	postOrderSum(hc.RootTag)

	var cssBlocks map[*HtmlTag]map[string]string
	if hc.CSS != nil {
		cssBlocks = hc.CSS.ComputeAll(hc.RootTag)
	}
	preOrder(hc.RootTag, visState{visible: true, excIdx: -1}, cssBlocks, hc)
}

func postOrderSum(tag *HtmlTag) {
	for _, c := range tag.Children {
		postOrderSum(c)
		tag.ContentLength += c.ContentLength
		if tag.ContentOffset < 0 && c.ContentOffset >= 0 {
			tag.ContentOffset = c.ContentOffset
		}
	}
	if tag.ContentOffset < 0 {
		tag.ContentOffset = 0
	}
}

// visState threads the outcome of the parent tag through the pre-order
// walk: whether it ended up visible, the index of the INVISIBLE
// exception it emitted (if any, so a visible child can carve it), and
// its resolved block (for reference-inheritance into children without
// their own block).
type visState struct {
	visible bool
	excIdx  int
	block   *Block
}

func preOrder(tag *HtmlTag, parent visState, cssBlocks map[*HtmlTag]map[string]string, hc *HtmlContent) {
	block := tag.Block
	if decls, ok := cssBlocks[tag]; ok {
		block = mergeDecls(block, decls)
	}
	if block == nil {
		block = parent.block
	}
	if block == nil {
		block = &Block{}
	}
	block.Visible = computeVisible(block)
	tag.Block = block

	cur := visState{visible: block.Visible, excIdx: -1, block: block}

	if hc.exceptions != nil {
		switch {
		case !block.Visible && (parent.visible || parent.excIdx < 0):
			idx := len(*hc.exceptions)
			*hc.exceptions = append(*hc.exceptions, Exception{
				Pos: tag.ContentOffset, Len: tag.ContentLength, Kind: ExcInvisible,
			})
			cur.excIdx = idx
		case block.Visible && parent.excIdx >= 0:
			adjustParentException(hc, parent.excIdx, tag)
		}
	}

	for _, c := range tag.Children {
		preOrder(c, cur, cssBlocks, hc)
	}
}

// adjustParentException carves the range [tag.ContentOffset,
// tag.ContentOffset+tag.ContentLength) out of the exception the parent
// emitted, per spec §4.6's four cases (covers all / end / start /
// middle of the parent range).
func adjustParentException(hc *HtmlContent, idx int, tag *HtmlTag) {
	excs := *hc.exceptions
	if idx < 0 || idx >= len(excs) {
		return
	}
	p := excs[idx]
	tagStart, tagEnd := tag.ContentOffset, tag.ContentOffset+tag.ContentLength
	pEnd := p.Pos + p.Len

	switch {
	case tagStart <= p.Pos && tagEnd >= pEnd:
		excs[idx].Len = 0
	case tagEnd >= pEnd:
		excs[idx].Len = tagStart - p.Pos
	case tagStart <= p.Pos:
		excs[idx].Pos = tagEnd
		excs[idx].Len = pEnd - tagEnd
	default:
		prefixLen := tagStart - p.Pos
		suffixPos, suffixLen := tagEnd, pEnd-tagEnd
		excs[idx].Len = prefixLen
		if suffixLen > 0 {
			excs = append(excs, Exception{Pos: suffixPos, Len: suffixLen, Kind: ExcInvisible, Payload: p.Payload})
		}
	}
	*hc.exceptions = excs
}

func mergeDecls(block *Block, decls map[string]string) *Block {
	if block == nil {
		block = &Block{Declarations: map[string]string{}}
	} else if block.Declarations == nil {
		block.Declarations = map[string]string{}
	}
	for k, v := range decls {
		block.Declarations[k] = v
		switch k {
		case "color":
			if hex := cssToHex(v); hex != "" {
				block.FgColor = hex
			}
		case "background-color", "background":
			if hex := cssToHex(v); hex != "" {
				block.BgColor = hex
			}
		}
	}
	return block
}

// computeVisible applies the heuristics this module uses to decide a
// block's visibility: the bits an email scanner actually cares about
// (display:none, visibility:hidden, opacity 0, zero font-size, and
// foreground == background, the classic "white text on white" trick).
func computeVisible(b *Block) bool {
	if b == nil {
		return true
	}
	if d, ok := b.Declarations["display"]; ok && strings.EqualFold(strings.TrimSpace(d), "none") {
		return false
	}
	if v, ok := b.Declarations["visibility"]; ok {
		vv := strings.ToLower(strings.TrimSpace(v))
		if vv == "hidden" || vv == "collapse" {
			return false
		}
	}
	if o, ok := b.Declarations["opacity"]; ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(o), 64); err == nil && f <= 0 {
			return false
		}
	}
	if fs, ok := b.Declarations["font-size"]; ok && isZeroLength(fs) {
		return false
	}
	if b.FgColor != "" && b.BgColor != "" && strings.EqualFold(b.FgColor, b.BgColor) {
		return false
	}
	return true
}

func isZeroLength(s string) bool {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && (s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 {
		return false
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	return err == nil && f == 0
}
