package service

import "github.com/spamcore/htmlscan/internal/htmldoc"

// ScanResult is the JSON response shape for POST /scan. It flattens the
// htmldoc.HtmlContent artifacts a downstream scorer needs, without
// exposing the internal tree pointers (spec §6 "consumers of the
// output: ... scoring rules").
type ScanResult struct {
	Flags      []string        `json:"flags"`
	Text       string          `json:"text"`
	BaseURL    string          `json:"base_url,omitempty"`
	URLs       []ScanURL       `json:"urls"`
	Images     []ScanImage     `json:"images"`
	Exceptions []ScanException `json:"exceptions"`
	Structure  string          `json:"structure"`
}

type ScanURL struct {
	Raw   string   `json:"raw"`
	Count int      `json:"count"`
	Flags []string `json:"flags"`
}

type ScanImage struct {
	Src          string   `json:"src"`
	Flags        []string `json:"flags"`
	Width        int      `json:"width,omitempty"`
	Height       int      `json:"height,omitempty"`
	ProbedWidth  int      `json:"probed_width,omitempty"`
	ProbedHeight int      `json:"probed_height,omitempty"`
	ProbedFormat string   `json:"probed_format,omitempty"`
}

type ScanException struct {
	Pos     int    `json:"pos"`
	Len     int    `json:"len"`
	Kind    string `json:"kind"`
	Payload string `json:"payload,omitempty"`
}

var docFlagNames = []struct {
	bit  uint32
	name string
}{
	{htmldoc.FlagBadStart, "bad_start"},
	{htmldoc.FlagBadElements, "bad_elements"},
	{htmldoc.FlagUnknownElements, "unknown_elements"},
	{htmldoc.FlagXML, "xml"},
	{htmldoc.FlagUnbalanced, "unbalanced"},
	{htmldoc.FlagTooManyTags, "too_many_tags"},
	{htmldoc.FlagDuplicateElements, "duplicate_elements"},
	{htmldoc.FlagHasDataURLs, "has_data_urls"},
}

func docFlagsToStrings(flags uint32) []string {
	var out []string
	for _, f := range docFlagNames {
		if flags&f.bit != 0 {
			out = append(out, f.name)
		}
	}
	return out
}

var urlFlagNames = []struct {
	bit  uint32
	name string
}{
	{htmldoc.URLQuery, "query"},
	{htmldoc.URLImage, "image"},
}

func urlFlagsToStrings(flags uint32) []string {
	var out []string
	for _, f := range urlFlagNames {
		if flags&f.bit != 0 {
			out = append(out, f.name)
		}
	}
	return out
}

var imageFlagNames = []struct {
	bit  uint32
	name string
}{
	{htmldoc.ImageEmbedded, "embedded"},
	{htmldoc.ImageExternal, "external"},
	{htmldoc.ImageData, "data"},
}

func imageFlagsToStrings(flags uint32) []string {
	var out []string
	for _, f := range imageFlagNames {
		if flags&f.bit != 0 {
			out = append(out, f.name)
		}
	}
	return out
}

func exceptionKindName(k htmldoc.ExceptionKind) string {
	switch k {
	case htmldoc.ExcInvisible:
		return "invisible"
	case htmldoc.ExcDisplayedURLMismatch:
		return "displayed_url_mismatch"
	default:
		return "unknown"
	}
}

// BuildScanResult flattens a processed HtmlContent into the wire shape,
// given the exceptions slice collected via Options.Exceptions (the
// HtmlContent itself keeps only an unexported pointer to it).
func BuildScanResult(hc *htmldoc.HtmlContent, excs []htmldoc.Exception) ScanResult {
	res := ScanResult{
		Flags:     docFlagsToStrings(hc.Flags),
		Text:      string(hc.ParsedText()),
		Structure: hc.DebugStructure(),
	}
	if hc.BaseURL != nil {
		res.BaseURL = hc.BaseURL.Raw
	}
	if set := hc.URLSetOf(); set != nil {
		for _, u := range set.All() {
			res.URLs = append(res.URLs, ScanURL{Raw: u.Raw, Count: u.Count, Flags: urlFlagsToStrings(u.Flags)})
		}
	}
	for _, img := range hc.Images {
		res.Images = append(res.Images, ScanImage{
			Src: img.Src, Flags: imageFlagsToStrings(img.Flags),
			Width: img.Width, Height: img.Height,
			ProbedWidth: img.ProbedWidth, ProbedHeight: img.ProbedHeight, ProbedFormat: img.ProbedFormat,
		})
	}
	for _, e := range excs {
		res.Exceptions = append(res.Exceptions, ScanException{Pos: e.Pos, Len: e.Len, Kind: exceptionKindName(e.Kind), Payload: e.Payload})
	}
	return res
}
