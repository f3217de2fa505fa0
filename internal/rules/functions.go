package rules

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/epcglobal/tdtengine/internal/cptable"
	"github.com/epcglobal/tdtengine/internal/tokenmap"
)

// TableNotFoundError reports a tablelookup rule naming an unknown table.
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table not found: %q", e.Table)
}

// MissingTableKeyError reports a tablelookup whose key has no entry.
type MissingTableKeyError struct {
	Table, Key string
}

func (e *MissingTableKeyError) Error() string {
	return fmt.Sprintf("table %q has no entry for key %q", e.Table, e.Key)
}

// OutOfRangeError reports a substr rule whose indices fall outside the
// source string.
type OutOfRangeError struct {
	Field string
	Start, End, Len int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("substr(%s,%d,%d) out of range for string of length %d", e.Field, e.Start, e.End, e.Len)
}

// ArithmeticError reports an arithmetic rule that could not be
// evaluated, such as division or modulo by zero.
type ArithmeticError struct {
	Msg string
}

func (e *ArithmeticError) Error() string { return e.Msg }

// Context carries the external data a rule function may need beyond
// the token map — currently only the GS1 company-prefix table used by
// tablelookup.
type Context struct {
	CompanyPrefixes cptable.Table
}

// resolveArg resolves one rule argument: look it up in the token map
// by name first; if the map has no such key, treat the text itself as
// a literal (quotes are stripped if present, otherwise the raw text —
// typically a decimal literal — is used verbatim).
func resolveArg(tm tokenmap.Map, arg string) (string, error) {
	if v, ok := tm.Get(arg); ok {
		return v, nil
	}
	if lit, ok := IsLiteral(arg); ok {
		return lit, nil
	}
	return arg, nil
}

// Func is one rule function's implementation.
type Func func(ctx Context, tm tokenmap.Map, args []string) (string, error)

// Registry maps a rule function name to its implementation.
var Registry = map[string]Func{
	"tablelookup": tableLookup,
	"length":      length,
	"gs1checksum": gs1Checksum,
	"substr":      substr,
	"concat":      concat,
	"add":         arith(func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }),
	"subtract":    arith(func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }),
	"multiply":    arith(func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }),
	"divide":      arithDiv,
	"mod":         arithMod,
}

// Eval parses and evaluates a single rule function string such as
// "tablelookup(gtin,tdt64bitcpi,1,2)" against the current token map,
// returning the derived value to be bound to the rule's newFieldName.
func Eval(ctx Context, tm tokenmap.Map, function string) (string, error) {
	call, err := ParseCall(function)
	if err != nil {
		return "", err
	}
	fn, ok := Registry[call.Name]
	if !ok {
		return "", fmt.Errorf("unknown rule function %q", call.Name)
	}
	return fn(ctx, tm, call.Args)
}

func tableLookup(ctx Context, tm tokenmap.Map, args []string) (string, error) {
	if len(args) != 4 {
		return "", fmt.Errorf("tablelookup: expected 4 args, got %d", len(args))
	}
	field, tableName := args[0], args[1]
	if tableName != "tdt64bitcpi" {
		return "", &TableNotFoundError{Table: tableName}
	}
	key, err := resolveArg(tm, field)
	if err != nil {
		return "", err
	}
	val, ok := ctx.CompanyPrefixes.Lookup(key)
	if !ok {
		return "", &MissingTableKeyError{Table: tableName, Key: key}
	}
	return val, nil
}

func length(ctx Context, tm tokenmap.Map, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("length: expected 1 arg, got %d", len(args))
	}
	v, err := resolveArg(tm, args[0])
	if err != nil {
		return "", err
	}
	return strconv.Itoa(len(v)), nil
}

// gs1Checksum computes the GS1 mod-10 check digit: scanning digits
// right-to-left, the digit at 0-based offset i from the right weights
// -3 when i is even and -1 when i is odd; the result normalizes
// (10 + total%10) % 10 to a single digit 0-9, matching the EAN-13/
// GTIN-14 check digit.
func gs1Checksum(ctx Context, tm tokenmap.Map, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("gs1checksum: expected 1 arg, got %d", len(args))
	}
	v, err := resolveArg(tm, args[0])
	if err != nil {
		return "", err
	}
	total := 0
	n := len(v)
	for i := 0; i < n; i++ {
		c := v[n-1-i]
		if c < '0' || c > '9' {
			return "", fmt.Errorf("gs1checksum: non-digit character %q in %q", c, v)
		}
		d := int(c - '0')
		if i%2 == 0 {
			total += -3 * d
		} else {
			total += -1 * d
		}
	}
	result := (10 + total%10) % 10
	return strconv.Itoa(result), nil
}

func substr(ctx Context, tm tokenmap.Map, args []string) (string, error) {
	if len(args) != 2 && len(args) != 3 {
		return "", fmt.Errorf("substr: expected 2 or 3 args, got %d", len(args))
	}
	field := args[0]
	v, err := resolveArg(tm, field)
	if err != nil {
		return "", err
	}
	startStr, err := resolveArg(tm, args[1])
	if err != nil {
		return "", err
	}
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return "", fmt.Errorf("substr: invalid start %q", startStr)
	}
	end := len(v)
	if len(args) == 3 {
		lenStr, err := resolveArg(tm, args[2])
		if err != nil {
			return "", err
		}
		l, err := strconv.Atoi(lenStr)
		if err != nil {
			return "", fmt.Errorf("substr: invalid length %q", lenStr)
		}
		end = start + l
	}
	if start < 0 || end < start || end > len(v) {
		return "", &OutOfRangeError{Field: field, Start: start, End: end, Len: len(v)}
	}
	return v[start:end], nil
}

// concat implements the Open Question resolution documented in
// DESIGN.md: each argument matching a quoted '...' or "..." form is a
// literal; anything else must be a bound field name, and an unbound
// name fails rather than silently falling back to its raw text.
func concat(ctx Context, tm tokenmap.Map, args []string) (string, error) {
	var b strings.Builder
	for _, arg := range args {
		if lit, ok := IsLiteral(arg); ok {
			b.WriteString(lit)
			continue
		}
		v, ok := tm.Get(arg)
		if !ok {
			return "", fmt.Errorf("concat: unbound field %q", arg)
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

func arith(op func(a, b *big.Int) *big.Int) Func {
	return func(ctx Context, tm tokenmap.Map, args []string) (string, error) {
		a, b, err := arithOperands(tm, args)
		if err != nil {
			return "", err
		}
		return op(a, b).String(), nil
	}
}

func arithDiv(ctx Context, tm tokenmap.Map, args []string) (string, error) {
	a, b, err := arithOperands(tm, args)
	if err != nil {
		return "", err
	}
	if b.Sign() == 0 {
		return "", &ArithmeticError{Msg: "divide by zero"}
	}
	return new(big.Int).Quo(a, b).String(), nil
}

func arithMod(ctx Context, tm tokenmap.Map, args []string) (string, error) {
	a, b, err := arithOperands(tm, args)
	if err != nil {
		return "", err
	}
	if b.Sign() == 0 {
		return "", &ArithmeticError{Msg: "mod by zero"}
	}
	return new(big.Int).Rem(a, b).String(), nil
}

func arithOperands(tm tokenmap.Map, args []string) (*big.Int, *big.Int, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("arithmetic rule: expected 2 args, got %d", len(args))
	}
	av, err := resolveArg(tm, args[0])
	if err != nil {
		return nil, nil, err
	}
	bv, err := resolveArg(tm, args[1])
	if err != nil {
		return nil, nil, err
	}
	a, ok := new(big.Int).SetString(av, 10)
	if !ok {
		return nil, nil, &ArithmeticError{Msg: fmt.Sprintf("not an integer: %q", av)}
	}
	b, ok := new(big.Int).SetString(bv, 10)
	if !ok {
		return nil, nil, &ArithmeticError{Msg: fmt.Sprintf("not an integer: %q", bv)}
	}
	return a, b, nil
}
