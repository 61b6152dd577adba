package htmldoc

import "bytes"

// attribute micro-parser states (spec §4.2). Tag-name scanning happens
// before this machine starts (see parseTagName); these states cover
// everything from just after the name to the terminating '>'.
type attrState int

const (
	stSpacesAfterName attrState = iota
	stAttrName
	stSpacesBeforeEq
	stSpacesAfterEq
	stStartDquote
	stDqValue
	stStartSquote
	stSqValue
	stUnquotedValue
	stSpacesAfterParam
	stIgnoreBadTag
)

// attrKindOf maps an attribute name to its ComponentKind. href, src, and
// action all alias to CompHref (spec §3 ComponentKind, §6 attribute map).
func attrKindOf(name string) (ComponentKind, bool) {
	switch name {
	case "name":
		return CompName, true
	case "href", "src", "action":
		return CompHref, true
	case "color":
		return CompColor, true
	case "bgcolor":
		return CompBgcolor, true
	case "style":
		return CompStyle, true
	case "class":
		return CompClass, true
	case "width":
		return CompWidth, true
	case "height":
		return CompHeight, true
	case "size":
		return CompSize, true
	case "rel":
		return CompRel, true
	case "alt":
		return CompAlt, true
	case "id":
		return CompID, true
	default:
		return 0, false
	}
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// parseTagName scans bytes from pos up to the first whitespace, '>' or
// '/', lowercases and
// entity-decodes a private copy, and returns it plus the index of the
// first byte after the name.
func parseTagName(input []byte, pos int) (string, int) {
	start := pos
	i := pos
	for i < len(input) {
		b := input[i]
		if isSpaceByte(b) || b == '>' || b == '/' {
			break
		}
		i++
	}
	if i == start {
		return "", i
	}
	raw := append([]byte(nil), input[start:i]...)
	raw = decodeEntities(raw)
	return string(bytes.ToLower(raw)), i
}

// tagAttrParser holds the per-tag scratch state for the attribute
// micro-parser. A fresh value is used for every tag (spec §4.2 "reset
// attribute micro-state"), so none of this is shared across calls.
type tagAttrParser struct {
	input      []byte
	tag        *HtmlTag
	nameStart  int
	valueStart int
	pendKind   ComponentKind
	pendValid  bool
}

func finishNamedAttr(ap *tagAttrParser, nameBytes []byte) {
	raw := append([]byte(nil), nameBytes...)
	raw = decodeEntities(raw)
	name := trimTrailingNonAlnum(string(bytes.ToLower(raw)))
	kind, ok := attrKindOf(name)
	ap.pendKind = kind
	ap.pendValid = ok
}

func storeValue(ap *tagAttrParser, valueBytes []byte) {
	if !ap.pendValid {
		return
	}
	ap.pendValid = false
	if len(valueBytes) == 0 {
		return
	}
	raw := append([]byte(nil), valueBytes...)
	raw = decodeEntities(raw)
	ap.tag.Parameters = append(ap.tag.Parameters, Param{Kind: ap.pendKind, Value: string(raw)})
}

func trimTrailingNonAlnum(s string) string {
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			break
		}
		end--
	}
	return s[:end]
}

func skipToGT(input []byte, pos int) int {
	i := pos
	for i < len(input) {
		if input[i] == '>' {
			return i + 1
		}
		i++
	}
	return i
}

// parseTag parses the element starting at pos (the first byte of the
// tag name) through its terminating '>' (inclusive), producing a tag
// with Name/ID/Flags/Parameters populated. FLClosing (leading "</") is
// the caller's responsibility; everything else - including FLClosed for
// a trailing "/>" or a stray '/' anywhere in the attribute list - is set
// here.
func parseTag(input []byte, pos int) (*HtmlTag, int) {
	name, i := parseTagName(input, pos)
	tag := &HtmlTag{ContentOffset: -1}

	if name == "" {
		tag.ID = -1
		tag.Flags |= FLBroken
		return tag, skipToGT(input, i)
	}

	tag.Name = name
	if def, ok := tagDefByName(name); ok {
		tag.ID = def.ID
		tag.Flags |= def.Flags
	} else {
		tag.ID = -1
	}

	ap := &tagAttrParser{input: input, tag: tag}
	state := stSpacesAfterName

	for i < len(input) {
		b := input[i]
		switch state {
		case stSpacesAfterName:
			switch {
			case isSpaceByte(b):
				i++
			case b == '/':
				tag.Flags |= FLClosed
				i++
			case b == '>':
				return tag, i + 1
			case b == '"' || b == '\'':
				// A quote where an attribute name should start: an
				// empty name followed by a quote with no '='.
				tag.Flags |= FLBroken
				state = stIgnoreBadTag
				i++
			default:
				ap.nameStart = i
				state = stAttrName
				i++
			}

		case stAttrName:
			switch {
			case b == '=':
				finishNamedAttr(ap, input[ap.nameStart:i])
				state = stSpacesAfterEq
				i++
			case b == '"' || b == '\'':
				// Attribute name directly followed by a quote with no
				// '=' is malformed recovery territory (spec §4.2).
				tag.Flags |= FLBroken
				state = stIgnoreBadTag
				i++
			case isSpaceByte(b):
				finishNamedAttr(ap, input[ap.nameStart:i])
				state = stSpacesBeforeEq
				i++
			case b == '>':
				finishNamedAttr(ap, input[ap.nameStart:i])
				return tag, i + 1
			case b == '/':
				finishNamedAttr(ap, input[ap.nameStart:i])
				tag.Flags |= FLClosed
				state = stSpacesAfterName
				i++
			default:
				i++
			}

		case stSpacesBeforeEq:
			switch {
			case isSpaceByte(b):
				i++
			case b == '=':
				state = stSpacesAfterEq
				i++
			case b == '>':
				return tag, i + 1
			case b == '/':
				tag.Flags |= FLClosed
				state = stSpacesAfterName
				i++
			default:
				ap.nameStart = i
				state = stAttrName
				i++
			}

		case stSpacesAfterEq:
			switch {
			case isSpaceByte(b):
				i++
			case b == '"':
				state = stStartDquote
				i++
			case b == '\'':
				state = stStartSquote
				i++
			case b == '>':
				return tag, i + 1
			default:
				ap.valueStart = i
				state = stUnquotedValue
			}

		case stStartDquote:
			ap.valueStart = i
			state = stDqValue

		case stDqValue:
			if b == '"' {
				storeValue(ap, input[ap.valueStart:i])
				state = stSpacesAfterParam
			}
			i++

		case stStartSquote:
			ap.valueStart = i
			state = stSqValue

		case stSqValue:
			if b == '\'' {
				storeValue(ap, input[ap.valueStart:i])
				state = stSpacesAfterParam
			}
			i++

		case stUnquotedValue:
			switch {
			case isSpaceByte(b) || b == '"':
				// A naked '"' mid-unquoted value terminates the value
				// like whitespace does (spec §9 Open Question #1:
				// mirror source).
				storeValue(ap, input[ap.valueStart:i])
				state = stSpacesAfterParam
				i++
			case b == '>':
				storeValue(ap, input[ap.valueStart:i])
				return tag, i + 1
			case b == '/' && i+1 < len(input) && input[i+1] == '>':
				storeValue(ap, input[ap.valueStart:i])
				tag.Flags |= FLClosed
				return tag, i + 2
			default:
				i++
			}

		case stSpacesAfterParam:
			switch {
			case isSpaceByte(b):
				i++
			case b == '>':
				return tag, i + 1
			case b == '/':
				tag.Flags |= FLClosed
				i++
			default:
				ap.nameStart = i
				state = stAttrName
				i++
			}

		case stIgnoreBadTag:
			if b == '>' {
				return tag, i + 1
			}
			i++
		}
	}

	// Unterminated tag at EOF: whatever was scanned stands.
	if state == stUnquotedValue {
		storeValue(ap, input[ap.valueStart:i])
	}
	return tag, i
}
