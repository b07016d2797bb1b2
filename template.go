package hexdump

import (
	"fmt"
	"strings"
)

const (
	placeholderStart = "#["
	placeholderEnd   = "]"
)

// field identifies which computed column a template segment substitutes.
type field uint8

const (
	fieldNone field = iota
	fieldOffset
	fieldRaw
	fieldASCII
)

func (f field) String() string {
	switch f {
	case fieldOffset:
		return "OFFSET"
	case fieldRaw:
		return "RAW"
	case fieldASCII:
		return "ASCII"
	default:
		return ""
	}
}

// segment is a literal prefix followed by an optional field.
type segment struct {
	literal string
	field   field
}

// template is a pre-parsed line layout, replayed once per line.
type template struct {
	text     string
	segments []segment
	uses     [fieldASCII + 1]bool
}

// parseTemplate splits text into literal/placeholder segments.
//
// Placeholders are written #[OFFSET], #[RAW] and #[ASCII]. Any other name between the marks is
// rejected, as is an opening mark with no closing one. Text without placeholders is valid and
// renders as a constant line.
func parseTemplate(text string) (template, error) {
	if text == "" {
		return template{}, ErrEmptyTemplate
	}

	t := template{text: text}
	rest := text

	for {
		start := strings.Index(rest, placeholderStart)
		if start < 0 {
			break
		}

		nameStart := start + len(placeholderStart)

		end := strings.Index(rest[nameStart:], placeholderEnd)
		if end < 0 {
			return template{}, fmt.Errorf("%w: unterminated placeholder at %q", ErrMalformedTemplate, rest[start:])
		}

		name := rest[nameStart : nameStart+end]

		var f field

		switch name {
		case "OFFSET":
			f = fieldOffset
		case "RAW":
			f = fieldRaw
		case "ASCII":
			f = fieldASCII
		default:
			return template{}, fmt.Errorf("%w: %q", ErrUnknownPlaceholder, name)
		}

		t.segments = append(t.segments, segment{literal: rest[:start], field: f})
		t.uses[f] = true
		rest = rest[nameStart+end+len(placeholderEnd):]
	}

	if rest != "" || len(t.segments) == 0 {
		t.segments = append(t.segments, segment{literal: rest})
	}

	return t, nil
}

func (t *template) has(f field) bool {
	return t.uses[f]
}
