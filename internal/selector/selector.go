// Package selector resolves the unique (Scheme, Level, Option) triple
// an input identifier belongs to, and the output triple a target level
// maps to once that input option is known.
package selector

import (
	"fmt"
	"strconv"

	"github.com/epcglobal/tdtengine/internal/schema"
)

// Hints is the caller-supplied disambiguation map (taglength, filter,
// gs1companyprefixlength, companyprefixlength, and any scheme-specific
// optionKey), all values carried as strings.
type Hints map[string]string

// NoMatchError reports that no (Scheme, Level, Option) matched the
// input identifier under any candidate.
type NoMatchError struct {
	Identifier string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no scheme matches identifier %q", e.Identifier)
}

// AmbiguousMatchError reports that more than one (Scheme, Level,
// Option) matched the input identifier.
type AmbiguousMatchError struct {
	Identifier string
	Count      int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("identifier %q matches %d schemes ambiguously", e.Identifier, e.Count)
}

func isTextOptionKeyed(t schema.LevelType) bool {
	switch t {
	case schema.LevelBinary, schema.LevelTagEncoding, schema.LevelPureIdentity:
		return false
	default:
		return true
	}
}

// Select resolves the unique input triple for identifier E given hints H.
func Select(set *schema.Set, e string, h Hints) (*schema.Triple, error) {
	var candidates []*schema.Triple

	wantTagLength, hasTagLength := -1, false
	if v, ok := h["taglength"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid taglength hint %q: %w", v, err)
		}
		wantTagLength, hasTagLength = n, true
	}

	for i := range set.Triples {
		t := &set.Triples[i]
		if t.Level.PrefixMatch == "" || len(e) < len(t.Level.PrefixMatch) || e[:len(t.Level.PrefixMatch)] != t.Level.PrefixMatch {
			continue
		}
		if hasTagLength && t.Scheme.TagLength != wantTagLength {
			continue
		}
		if t.Option.Compiled == nil || !t.Option.Compiled.MatchString(e) {
			continue
		}
		if isTextOptionKeyed(t.Level.Type) {
			want, ok := h[t.Scheme.OptionKey]
			if !ok || want != t.Option.OptionKey {
				continue
			}
		}
		candidates = append(candidates, t)
	}

	switch len(candidates) {
	case 0:
		return nil, &NoMatchError{Identifier: e}
	case 1:
		return candidates[0], nil
	default:
		return nil, &AmbiguousMatchError{Identifier: e, Count: len(candidates)}
	}
}

// SelectOutput resolves the unique triple for emitting schemeName at
// targetLevel using the optionKey established by the input triple.
func SelectOutput(set *schema.Set, schemeName string, optionKey string, targetLevel schema.LevelType) (*schema.Triple, error) {
	var found *schema.Triple
	for i := range set.Triples {
		t := &set.Triples[i]
		if t.Scheme.Name != schemeName || t.Level.Type != targetLevel || t.Option.OptionKey != optionKey {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("scheme %s: ambiguous output option %q at level %s", schemeName, optionKey, targetLevel)
		}
		found = t
	}
	if found == nil {
		return nil, fmt.Errorf("scheme %s: no level %s with option %q", schemeName, targetLevel, optionKey)
	}
	return found, nil
}
