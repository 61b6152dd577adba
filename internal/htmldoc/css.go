package htmldoc

import (
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Stylesheet is the "CSS parser" collaborator named in spec.md §1: it
// turns the text of every <style> block in a document into a set of
// compiled, cascade-ordered rules that postpass.go can query per tag.
// Grounded on the teacher's oms/css_engine.go (buildStylesheet,
// computeStyleFor), rebuilt on top of cascadia/douceur rather than the
// teacher's own selector matcher since those are the exact libraries
// the teacher already depends on for this job.
type Stylesheet struct {
	rules []cssRule
}

type cssRule struct {
	sel   cascadia.Sel
	spec  cascadia.Specificity
	order int
	decls []css.Declaration
}

// parseStyleBlock compiles the text content of a single <style> element
// and appends its rules to the stylesheet, preserving source order for
// the cascade's "later wins on a tie" rule.
func (ss *Stylesheet) parseStyleBlock(text string) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return
	}
	ss.addRules(sheet.Rules)
}

// addRules walks douceur's rule list, recursing into @media bodies
// (condition text is ignored: this module has no notion of a viewport,
// so a media rule's declarations apply unconditionally) and skipping
// other at-rules (@import, @font-face, @keyframes - none name a
// selector this package could match against).
func (ss *Stylesheet) addRules(rules []*css.Rule) {
	for _, r := range rules {
		if r.Kind == css.AtRule && r.Name == "@media" {
			ss.addRules(r.Rules)
			continue
		}
		if r.Kind != css.QualifiedRule {
			continue
		}
		if len(r.Selectors) == 0 || len(r.Declarations) == 0 {
			continue
		}
		for _, selText := range r.Selectors {
			sel, err := cascadia.Parse(selText)
			if err != nil {
				continue
			}
			decls := make([]css.Declaration, len(r.Declarations))
			for i, d := range r.Declarations {
				decls[i] = *d
			}
			ss.rules = append(ss.rules, cssRule{
				sel: sel, spec: sel.Specificity(),
				order: len(ss.rules), decls: decls,
			})
		}
	}
}

// parseInlineStyle parses a style="..." attribute value into a flat
// declaration map, the per-element equivalent of parseStyleBlock.
func parseInlineStyle(value string) map[string]string {
	// douceur records a declaration's value only when it reaches ';' or
	// '}', so the final declaration of an attribute is terminated here.
	if v := strings.TrimSpace(value); v != "" && !strings.HasSuffix(v, ";") {
		value = v + ";"
	}
	decls, err := parser.ParseDeclarations(value)
	if err != nil {
		return nil
	}
	out := make(map[string]string, len(decls))
	for _, d := range decls {
		out[strings.ToLower(d.Property)] = d.Value
	}
	return out
}

// ComputeAll matches every rule in the stylesheet against a shadow DOM
// built from the document's tag tree and returns, for each tag that has
// at least one matching rule or an inline style, its cascaded
// declaration map. It runs once per Process call regardless of document
// size: cascadia needs a real *html.Node tree to match combinators
// against, so this builds one synthetic node per HtmlTag purely to
// drive selector matching, then discards it.
func (ss *Stylesheet) ComputeAll(root *HtmlTag) map[*HtmlTag]map[string]string {
	out := make(map[*HtmlTag]map[string]string)
	if root == nil {
		return out
	}
	shadow, nodeToTag := buildShadowTree(root)

	ordered := make([]cssRule, len(ss.rules))
	copy(ordered, ss.rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := ordered[i], ordered[j]
		if ri.spec.Less(rj.spec) {
			return true
		}
		if rj.spec.Less(ri.spec) {
			return false
		}
		return ri.order < rj.order
	})

	walkShadow(shadow, func(n *html.Node) {
		tag := nodeToTag[n]
		if tag == nil {
			return
		}
		merged := map[string]string{}
		var important = map[string]bool{}
		for _, r := range ordered {
			if !r.sel.Match(n) {
				continue
			}
			for _, d := range r.decls {
				prop := strings.ToLower(d.Property)
				if important[prop] && !d.Important {
					continue
				}
				merged[prop] = d.Value
				if d.Important {
					important[prop] = true
				}
			}
		}
		if styleAttr, ok := tag.FirstParam(CompStyle); ok {
			for k, v := range parseInlineStyle(styleAttr) {
				merged[k] = v
			}
		}
		if len(merged) > 0 {
			out[tag] = merged
		}
	})
	return out
}

func buildShadowTree(root *HtmlTag) (*html.Node, map[*html.Node]*HtmlTag) {
	nodeToTag := make(map[*html.Node]*HtmlTag)
	var build func(t *HtmlTag) *html.Node
	build = func(t *HtmlTag) *html.Node {
		n := &html.Node{
			Type:     html.ElementNode,
			Data:     t.Name,
			DataAtom: atom.Lookup([]byte(t.Name)),
		}
		if class, ok := t.FirstParam(CompClass); ok {
			n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
		}
		if id, ok := t.FirstParam(CompID); ok {
			n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
		}
		nodeToTag[n] = t
		var prev *html.Node
		for _, child := range t.Children {
			cn := build(child)
			cn.Parent = n
			if prev == nil {
				n.FirstChild = cn
			} else {
				prev.NextSibling = cn
				cn.PrevSibling = prev
			}
			prev = cn
		}
		n.LastChild = prev
		return n
	}
	shadow := build(root)
	return shadow, nodeToTag
}

func walkShadow(n *html.Node, visit func(*html.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkShadow(c, visit)
	}
}
