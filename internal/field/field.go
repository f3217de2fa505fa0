// Package field implements per-field validation: character-set regular
// expressions and decimal range checks, applied to a single token value
// after it has been extracted from (or before it is emitted to) the
// wire representation of an EPC identifier.
package field

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"sync"
)

// InvalidCharacterSetError reports a token that does not match its
// field's declared character set.
type InvalidCharacterSetError struct {
	Field, Token, CharSet string
}

func (e *InvalidCharacterSetError) Error() string {
	return fmt.Sprintf("field %q: token %q does not match character set %q", e.Field, e.Token, e.CharSet)
}

// RangeError reports a decimal token outside its field's declared bounds.
type RangeError struct {
	Field, Token, Bound string
	Below               bool
}

func (e *RangeError) Error() string {
	if e.Below {
		return fmt.Sprintf("field %q: value %q is below minimum %q", e.Field, e.Token, e.Bound)
	}
	return fmt.Sprintf("field %q: value %q is above maximum %q", e.Field, e.Token, e.Bound)
}

// Spec is the subset of a schema field description that validation
// needs: a name (for diagnostics), an optional character-set fragment,
// and optional decimal bounds.
type Spec struct {
	Name           string
	CharacterSet   string // regex fragment, without the implied trailing '*'
	DecimalMinimum string // empty means unset
	DecimalMaximum string // empty means unset
}

var (
	charsetCacheMu sync.Mutex
	charsetCache   = map[string]*regexp.Regexp{}
)

func compileCharset(fragment string) (*regexp.Regexp, error) {
	charsetCacheMu.Lock()
	defer charsetCacheMu.Unlock()
	if re, ok := charsetCache[fragment]; ok {
		return re, nil
	}
	pat := fragment
	if !strings.HasSuffix(pat, "*") {
		pat = pat + "*"
	}
	re, err := regexp.Compile("^" + pat + "$")
	if err != nil {
		return nil, fmt.Errorf("compile character set %q: %w", fragment, err)
	}
	charsetCache[fragment] = re
	return re, nil
}

// CheckCharset validates token against f.CharacterSet. A field with no
// declared character set accepts any token.
func CheckCharset(f Spec, token string) error {
	if f.CharacterSet == "" {
		return nil
	}
	re, err := compileCharset(f.CharacterSet)
	if err != nil {
		return err
	}
	if !re.MatchString(token) {
		return &InvalidCharacterSetError{Field: f.Name, Token: token, CharSet: f.CharacterSet}
	}
	return nil
}

// CheckRange validates token against f.DecimalMinimum/DecimalMaximum
// when token parses as a decimal integer. Each bound is enforced
// independently; a bound left unset disables only that side of the check.
func CheckRange(f Spec, token string) error {
	if f.DecimalMinimum == "" && f.DecimalMaximum == "" {
		return nil
	}
	val, ok := new(big.Int).SetString(token, 10)
	if !ok {
		return nil
	}
	if f.DecimalMinimum != "" {
		min, ok := new(big.Int).SetString(f.DecimalMinimum, 10)
		if !ok {
			return fmt.Errorf("field %q: invalid decimalMinimum %q", f.Name, f.DecimalMinimum)
		}
		if val.Cmp(min) < 0 {
			return &RangeError{Field: f.Name, Token: token, Bound: f.DecimalMinimum, Below: true}
		}
	}
	if f.DecimalMaximum != "" {
		max, ok := new(big.Int).SetString(f.DecimalMaximum, 10)
		if !ok {
			return fmt.Errorf("field %q: invalid decimalMaximum %q", f.Name, f.DecimalMaximum)
		}
		if val.Cmp(max) > 0 {
			return &RangeError{Field: f.Name, Token: token, Bound: f.DecimalMaximum, Below: false}
		}
	}
	return nil
}
