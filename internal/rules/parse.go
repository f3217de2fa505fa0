package rules

import (
	"fmt"
	"strings"
)

// Call is the parsed form of a rule's "function" string: a name and its
// positional argument expressions, exactly as written in the scheme
// file (each arg is still raw text — a quoted literal, a bare decimal
// literal, or a field name — resolved later against a token map).
type Call struct {
	Name string
	Args []string
}

// ParseCall parses a string of the form name(arg1,arg2,...) into a
// Call. Arguments may themselves contain commas inside quotes, so this
// is a small hand-written scanner rather than a single split on ','.
func ParseCall(s string) (Call, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Call{}, fmt.Errorf("malformed rule function %q", s)
	}
	name := strings.TrimSpace(s[:open])
	if name == "" {
		return Call{}, fmt.Errorf("malformed rule function %q: missing name", s)
	}
	body := s[open+1 : len(s)-1]

	args, err := splitArgs(body)
	if err != nil {
		return Call{}, fmt.Errorf("malformed rule function %q: %w", s, err)
	}
	return Call{Name: name, Args: args}, nil
}

// splitArgs splits a comma-separated argument list, respecting single-
// and double-quoted spans so a literal like "a,b" stays one argument.
func splitArgs(body string) ([]string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, nil
	}

	var args []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
			cur.WriteByte(c)
		case c == ',':
			args = append(args, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote")
	}
	args = append(args, strings.TrimSpace(cur.String()))
	return args, nil
}

// IsLiteral reports whether arg is a quoted literal, returning its
// unquoted text. Per the Open Question in the domain spec, any
// argument wrapped in matching single or double quotes is always a
// literal, never a field lookup — even if a field happens to share that
// name.
func IsLiteral(arg string) (string, bool) {
	if len(arg) >= 2 {
		if (arg[0] == '\'' && arg[len(arg)-1] == '\'') || (arg[0] == '"' && arg[len(arg)-1] == '"') {
			return arg[1 : len(arg)-1], true
		}
	}
	return "", false
}
