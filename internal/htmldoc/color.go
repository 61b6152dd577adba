package htmldoc

import (
	"fmt"
	"strconv"
	"strings"
)

// cssToHex normalizes common CSS color syntaxes into #rrggbb. Adapted
// from the teacher's oms/color_utils.go parseCSSColor/cssToHex pair,
// trimmed to the subset this module needs (no RGB565 floor, no
// contrast-ratio lightening - those were about rendering onto a
// constrained mobile screen, which is out of scope here).
func cssToHex(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "#") {
		return normalizeHex(s)
	}
	switch s {
	case "black":
		return "#000000"
	case "white":
		return "#ffffff"
	case "red":
		return "#ff0000"
	case "green":
		return "#008000"
	case "blue":
		return "#0000ff"
	case "gray", "grey":
		return "#808080"
	case "silver":
		return "#c0c0c0"
	case "yellow":
		return "#ffff00"
	case "transparent":
		return ""
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return rgbFuncToHex(s)
	}
	return ""
}

func normalizeHex(s string) string {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		return "#" + string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
		return "#" + hex
	default:
		if len(hex) > 6 {
			return "#" + hex[:6]
		}
		return ""
	}
}

func rgbFuncToHex(s string) string {
	open := strings.IndexByte(s, '(')
	close := strings.IndexByte(s, ')')
	if open < 0 || close < 0 || close < open {
		return ""
	}
	inner := s[open+1 : close]
	parts := strings.Split(inner, ",")
	if len(parts) < 3 {
		return ""
	}
	chan3 := func(p string) int64 {
		p = strings.TrimSpace(p)
		if strings.HasSuffix(p, "%") {
			f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
			if err != nil {
				return 0
			}
			return int64(f * 255.0 / 100.0)
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0
		}
		return n
	}
	clamp := func(v int64) int64 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	r := clamp(chan3(parts[0]))
	g := clamp(chan3(parts[1]))
	b := clamp(chan3(parts[2]))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
