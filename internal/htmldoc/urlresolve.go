package htmldoc

import (
	"net/url"
	"strings"
)

// resolveHref implements spec §4.5's URL resolution rules against an
// optional base URL, then hands the result to stdlib net/url - the
// "URL parser" collaborator named (but left unimplemented) in spec §1.
func resolveHref(href string, base *Url) (*Url, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, false
	}
	if strings.HasPrefix(href, "data:") {
		return nil, false
	}

	raw := href
	switch {
	case strings.Contains(href, "://"):
		// absolute already
	case strings.HasPrefix(href, "//"):
		if base != nil && base.Parsed != nil {
			raw = base.Parsed.Scheme + ":" + href
		}
	case strings.HasPrefix(href, "/"):
		if base != nil && base.Parsed != nil {
			raw = base.Parsed.Scheme + "://" + base.Parsed.Host + href
		}
	default:
		if base != nil {
			baseStr := base.Raw
			if base.Parsed != nil && base.Parsed.Path == "" {
				baseStr = strings.TrimRight(baseStr, "/") + "/"
			} else if !strings.HasSuffix(baseStr, "/") {
				if idx := strings.LastIndex(baseStr, "/"); idx > strings.Index(baseStr, "://")+2 {
					baseStr = baseStr[:idx+1]
				} else {
					baseStr += "/"
				}
			}
			raw = baseStr + href
		}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &Url{Raw: raw, Parsed: parsed}, true
}

// findQueryURLs scans an href's query string for embedded absolute
// URLs (e.g. a redirector's "?u=http://...") and returns them flagged
// URLQuery. A mailto: target without a user part is rejected, matching
// spec §4.4's "mailto without user is rejected".
func findQueryURLs(href string) []*Url {
	qIdx := strings.IndexByte(href, '?')
	if qIdx < 0 {
		return nil
	}
	query := href[qIdx+1:]
	values, err := url.ParseQuery(query)
	if err != nil {
		return nil
	}

	var out []*Url
	for _, vals := range values {
		for _, v := range vals {
			isMailto := strings.HasPrefix(strings.ToLower(v), "mailto:")
			if !isMailto && !strings.Contains(v, "://") {
				continue
			}
			if isMailto && !strings.Contains(v[len("mailto:"):], "@") {
				continue
			}
			parsed, err := url.Parse(v)
			if err != nil {
				continue
			}
			out = append(out, &Url{Raw: v, Parsed: parsed, Flags: URLQuery})
		}
	}
	return out
}
