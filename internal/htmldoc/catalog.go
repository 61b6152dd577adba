package htmldoc

import "github.com/spamcore/htmlscan/internal/tagcat"

// Re-exported catalog content-model flags, so callers of this package
// never need to import internal/tagcat directly.
const (
	CMInline  = tagcat.CMInline
	CMEmpty   = tagcat.CMEmpty
	CMHead    = tagcat.CMHead
	CMUnknown = tagcat.CMUnknown
	CMUnique  = tagcat.CMUnique
	FLHref    = tagcat.FLHref
	FLBlock   = tagcat.FLBlock
)

func tagDefByName(name string) (tagcat.TagDef, bool) { return tagcat.ByName(name) }
func tagDefByID(id int) (tagcat.TagDef, bool)        { return tagcat.ByID(id) }

// numTags sizes the tags_seen bitset (spec §3 N_TAGS).
func numTags() int { return tagcat.NumTags }
