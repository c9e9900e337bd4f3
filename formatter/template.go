package formatter

import (
	"fmt"
	"strings"

	"github.com/philipp01105/preciselog/core"
)

// segment is either literal text or, when field is set, a placeholder.
type segment struct {
	text  string
	field string
}

// template is a parsed message format.
type template struct {
	segments []segment
	// fields lists placeholder names in order of first appearance.
	fields []string
}

func (t *template) references(name string) bool {
	for _, f := range t.fields {
		if f == name {
			return true
		}
	}
	return false
}

// parseTemplate splits s into literals and {name} placeholders. Names
// cannot be empty or contain whitespace. "{{" and "}}" are literal braces.
// In strict mode malformed braces and templates without placeholders are
// rejected; otherwise they are kept as literal text.
func parseTemplate(s string, strict bool) (*template, error) {
	t := &template{}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexAny(s[i+1:], "{}")
			if end <= 0 || s[i+1+end] != '}' || strings.ContainsAny(s[i+1:i+1+end], " \t\r\n") {
				if strict {
					return nil, fmt.Errorf("%w: malformed placeholder at offset %d in message format %q", core.ErrInvalidConfiguration, i, s)
				}
				lit.WriteByte(c)
				continue
			}
			name := s[i+1 : i+1+end]
			flush()
			t.segments = append(t.segments, segment{field: name})
			if !t.references(name) {
				t.fields = append(t.fields, name)
			}
			i += end + 1
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			if strict {
				return nil, fmt.Errorf("%w: unmatched '}' at offset %d in message format %q", core.ErrInvalidConfiguration, i, s)
			}
			lit.WriteByte(c)
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	if strict && len(t.fields) == 0 {
		return nil, fmt.Errorf("%w: message format %q has no placeholders", core.ErrInvalidConfiguration, s)
	}
	return t, nil
}
