package htmldoc

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"
)

// probeDataURI implements the "image decoder" collaborator named in
// spec.md §1: given a data: URI it decodes just enough to report the
// pixel dimensions and format, the way the teacher's oms/oms.go
// decodeDataURI does before re-encoding for its own renderer. This
// package never re-encodes - specializers.go only needs width/height/format
// to fold into an HtmlImage.
func probeDataURI(uri string) (width, height int, format string, ok bool) {
	if !strings.HasPrefix(uri, "data:") {
		return 0, 0, "", false
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return 0, 0, "", false
	}
	meta := uri[len("data:"):comma]
	data := uri[comma+1:]

	var raw []byte
	if strings.Contains(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return 0, 0, "", false
		}
		raw = b
	} else {
		raw = []byte(data)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, "", false
	}
	return cfg.Width, cfg.Height, format, true
}
