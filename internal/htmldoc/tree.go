package htmldoc

// treeBuilder implements spec §4.3: it owns the open-tag stack (a plain
// slice of non-owning pointers into HtmlContent.AllTags) and decides,
// for each completed HtmlTag, whether it becomes part of the tree.
type treeBuilder struct {
	hc    *HtmlContent
	stack []*HtmlTag
}

func newTreeBuilder(hc *HtmlContent) *treeBuilder {
	return &treeBuilder{hc: hc}
}

func (tb *treeBuilder) currentParent() *HtmlTag {
	if n := len(tb.stack); n > 0 {
		return tb.stack[n-1]
	}
	return tb.hc.RootTag
}

func (tb *treeBuilder) push(tag *HtmlTag) {
	tb.stack = append(tb.stack, tag)
}

// findOpenAncestor searches the stack from the top down for an entry
// with the given tag id (spec §4.3 balance check).
func (tb *treeBuilder) findOpenAncestor(id int) int {
	for i := len(tb.stack) - 1; i >= 0; i-- {
		if tb.stack[i].ID == id {
			return i
		}
	}
	return -1
}

// popTo closes the ancestor at idx: if it is the stack top it is simply
// popped, otherwise it is swapped with the top entry and popped from
// there (spec §4.3 "swap it to top and pop"). The other open tags stay
// on the stack, but the former top now sits in idx's slot, so with more
// than one tag above idx their order changes.
func (tb *treeBuilder) popTo(idx int) {
	last := len(tb.stack) - 1
	if idx == last {
		tb.stack = tb.stack[:last]
		return
	}
	tb.stack[idx] = tb.stack[last]
	tb.stack = tb.stack[:last]
}

func appendChild(parent, child *HtmlTag) {
	if parent == nil {
		return
	}
	parent.Children = append(parent.Children, child)
}

// accept runs the §4.3 rules for a freshly parsed tag and returns
// whether the document parser should treat it as successfully opened
// (drives content_write vs content_ignore in the outer state machine).
func (tb *treeBuilder) accept(tag *HtmlTag, closing bool) bool {
	hc := tb.hc
	hc.TotalTags++
	overCap := hc.TotalTags > MaxTags
	if overCap {
		hc.Flags |= FlagTooManyTags
	}

	hc.AllTags = append(hc.AllTags, tag)

	if tag.ID == -1 {
		if tag.Name == "" {
			hc.Flags |= FlagBadElements
		} else {
			hc.Flags |= FlagUnknownElements
		}
		return false
	}

	parent := tb.currentParent()

	if !closing && tag.ID < len(hc.TagsSeen) {
		if tag.Flags&CMUnique != 0 && hc.TagsSeen[tag.ID] {
			hc.Flags |= FlagDuplicateElements
		}
		hc.TagsSeen[tag.ID] = true
	}

	if tag.Flags&(CMInline|CMEmpty) != 0 {
		tag.Parent = parent
		if parent != nil && !overCap {
			appendChild(parent, tag)
		}
		if parent != nil && parent.Flags&(CMHead|CMUnknown|FLIgnore) != 0 {
			tag.Flags |= FLIgnore
			return false
		}
		return true
	}

	// Block-level tag.
	if closing || tag.Flags&FLClosing != 0 {
		if parent == nil {
			return false
		}
		idx := tb.findOpenAncestor(tag.ID)
		if idx < 0 {
			hc.Flags |= FlagUnbalanced
			return false
		}
		tb.stack[idx].Flags |= FLClosed
		tb.popTo(idx)
		return true
	}

	// A parent that has already been closed (e.g. a <style> that became
	// the root) no longer passes FL_IGNORE on to later siblings' content.
	if parent != nil && parent.Flags&FLIgnore != 0 && parent.Flags&FLClosed == 0 {
		tag.Flags |= FLIgnore
	}

	switch {
	case parent == nil:
		tag.Parent = nil
		hc.RootTag = tag
	case parent.ID == tag.ID && parent.Flags&FLBlock == 0:
		hc.Flags |= FlagUnbalanced
		gp := parent.Parent
		tag.Parent = gp
		if gp != nil && !overCap {
			appendChild(gp, tag)
		}
	default:
		tag.Parent = parent
		if !overCap {
			appendChild(parent, tag)
		}
	}

	if !overCap && tag.Flags&FLClosed == 0 {
		tb.push(tag)
	}

	if tag.Flags&(CMHead|CMUnknown|FLIgnore) != 0 {
		tag.Flags |= FLIgnore
		return false
	}
	return true
}
