// Package schema holds the declarative TDT data model — Scheme, Level,
// Option, Field, Rule — and the XML deserializer that builds it from
// EPCglobal TDT markup files. Nothing in this package interprets the
// model; it only loads and shapes it for the engine's components.
package schema

import "regexp"

// LevelType enumerates the representations a Level can take.
type LevelType string

const (
	LevelBinary       LevelType = "BINARY"
	LevelTagEncoding  LevelType = "TAG_ENCODING"
	LevelPureIdentity LevelType = "PURE_IDENTITY"
	LevelLegacy       LevelType = "LEGACY"
	LevelLegacyAI     LevelType = "LEGACY_AI"
	LevelONSHostname  LevelType = "ONS_HOSTNAME"
)

// RuleType enumerates the two points in the pipeline a Rule may fire at.
type RuleType string

const (
	RuleExtract RuleType = "EXTRACT"
	RuleFormat  RuleType = "FORMAT"
)

// PadDir (used for both bit and text padding) shares the vocabulary of
// bitcodec.PadDir but is kept separate here so the schema package has no dependency on
// the codec package — it is pure data.
type PadDir string

const (
	PadNone  PadDir = ""
	PadLeft  PadDir = "LEFT"
	PadRight PadDir = "RIGHT"
)

// Field describes one named token within an Option's pattern/grammar.
type Field struct {
	Name string
	// Seq is the field's 1-based regex capture group index within its
	// Option's pattern. Zero means the field is declared purely as
	// padding/length metadata for when this Option serves as an output
	// target — e.g. a composite field produced only by an EXTRACT rule
	// when this level is the input — and is never read from a match.
	Seq               int
	HasLength         bool
	Length            int // decimal chars, or bits, depending on the level
	CharacterSet      string
	HasDecimalMinimum bool
	DecimalMinimum    string
	HasDecimalMaximum bool
	DecimalMaximum    string
	PadDir            PadDir
	PadChar           byte
	HasPadChar        bool
	BitPadDir         PadDir
	HasBitPadDir      bool
	Compaction        int // 5, 6, 7 or 8
	CompactionSet     bool
}

// Rule is one EXTRACT or FORMAT derivation step.
type Rule struct {
	Type         RuleType
	Function     string // e.g. "tablelookup(gtin,tdt64bitcpi,1,2)"
	NewFieldName string
}

// Option is one disambiguated variant of a Level: a pattern, its
// capturing fields, and the output grammar used when this option's
// level is the emission target.
type Option struct {
	OptionKey string
	Pattern   string
	Compiled  *regexp.Regexp
	Fields    []Field
	Grammar   []string // whitespace-separated ABNF tokens: 'literal' or fieldName
}

// FieldByName returns the Option's field with the given name, or nil.
func (o *Option) FieldByName(name string) *Field {
	for i := range o.Fields {
		if o.Fields[i].Name == name {
			return &o.Fields[i]
		}
	}
	return nil
}

// Level is one representation of a Scheme (BINARY, TAG_ENCODING, ...).
type Level struct {
	Type        LevelType
	PrefixMatch string
	Options     []Option
	Rules       []Rule
	Scheme      *Scheme // back-reference, set during load
}

// Scheme is a logical identifier family (SGTIN-96, SSCC-96, ...).
type Scheme struct {
	Name      string
	TagLength int
	OptionKey string
	Levels    []Level
}

// Triple is a flattened (Scheme, Level, Option) entry, the unit the
// selector matches candidates against.
type Triple struct {
	Scheme *Scheme
	Level  *Level
	Option *Option
}

// Set is the process-wide, immutable-after-load collection of triples.
type Set struct {
	Triples []Triple
	Schemes []*Scheme
}
