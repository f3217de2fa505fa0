package tdtengine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/epcglobal/tdtengine/internal/cptable"
	"github.com/epcglobal/tdtengine/internal/emitter"
	"github.com/epcglobal/tdtengine/internal/rules"
	"github.com/epcglobal/tdtengine/internal/schema"
	"github.com/epcglobal/tdtengine/internal/selector"
	"github.com/epcglobal/tdtengine/internal/tokenizer"
	"github.com/epcglobal/tdtengine/internal/tokenmap"
)

// Level is the public spelling of a translation target/source
// representation, matching schema.LevelType's vocabulary.
type Level = schema.LevelType

const (
	Binary       Level = schema.LevelBinary
	TagEncoding  Level = schema.LevelTagEncoding
	PureIdentity Level = schema.LevelPureIdentity
	Legacy       Level = schema.LevelLegacy
	LegacyAI     Level = schema.LevelLegacyAI
	ONSHostname  Level = schema.LevelONSHostname
)

// ParseLevel parses s against the Level enumeration case-sensitively,
// as required by the convenience string overload of Translate.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case Binary, TagEncoding, PureIdentity, Legacy, LegacyAI, ONSHostname:
		return Level(s), nil
	default:
		return "", invalidArg("unrecognized target level %q", s)
	}
}

// Hints is the caller-supplied disambiguation map threaded through
// scheme selection: taglength, filter, gs1companyprefixlength,
// companyprefixlength, and any scheme-specific optionKey. Every value
// is carried as a string.
type Hints map[string]string

// ParseHints parses a ";"-separated list of "key=value" pairs into a
// Hints map. Empty pairs are ignored and keys/values are whitespace
// trimmed.
func ParseHints(hintsString string) (Hints, error) {
	h := Hints{}
	for _, pair := range strings.Split(hintsString, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, invalidArg("malformed hint %q: expected key=value", pair)
		}
		k := strings.TrimSpace(kv[0])
		v := strings.TrimSpace(kv[1])
		if k == "" {
			return nil, invalidArg("malformed hint %q: empty key", pair)
		}
		h[k] = v
	}
	return h, nil
}

// SchemeLoader abstracts the filesystem so the engine can be built
// once from a directory of TDT markup files and later told to reload
// it on Refresh. New takes the loader explicitly (DirLoader wraps
// schema.LoadDir); it is an interface here purely so tests and
// alternate ingestion paths (embedded fixtures, remote fetch) can
// substitute their own loader without changing Engine's shape.
type SchemeLoader interface {
	Load() (*schema.Set, error)
}

// DirLoader loads every *.xml file in Dir via schema.LoadDir.
type DirLoader struct{ Dir string }

func (d DirLoader) Load() (*schema.Set, error) { return schema.LoadDir(d.Dir) }

// TableLoader loads the GS1 company-prefix auxiliary table.
type TableLoader interface {
	Load() (cptable.Table, error)
}

// FileTableLoader loads ManagerTranslation.xml from Path.
type FileTableLoader struct{ Path string }

func (f FileTableLoader) Load() (cptable.Table, error) { return cptable.Load(f.Path) }

// Engine is a built-once TDT translator. Its loaded scheme set and
// company-prefix table are immutable after construction or after a
// call to Refresh; Translate is referentially transparent given that
// state and safe for concurrent use.
type Engine struct {
	schemeLoader SchemeLoader
	tableLoader  TableLoader

	mu      sync.RWMutex
	set     *schema.Set
	cpTable cptable.Table
}

// New builds an Engine by invoking schemeLoader and tableLoader once.
// A nil tableLoader is permitted when no scheme in use requires
// tablelookup; an empty table is installed in that case.
func New(schemeLoader SchemeLoader, tableLoader TableLoader) (*Engine, error) {
	e := &Engine{schemeLoader: schemeLoader, tableLoader: tableLoader}
	if err := e.Refresh(); err != nil {
		return nil, err
	}
	return e, nil
}

// Refresh re-executes scheme (and table) loading and atomically swaps
// the engine's view once both complete successfully. Loading runs
// outside the lock; only the swap itself is exclusive, so in-flight
// Translate calls observe a consistent (old or new, never half-loaded)
// state.
func (e *Engine) Refresh() error {
	set, err := e.schemeLoader.Load()
	if err != nil {
		return fmt.Errorf("load scheme set: %w", err)
	}

	var table cptable.Table
	if e.tableLoader != nil {
		table, err = e.tableLoader.Load()
		if err != nil {
			return fmt.Errorf("load company prefix table: %w", err)
		}
	} else {
		table = cptable.Table{}
	}

	e.mu.Lock()
	e.set = set
	e.cpTable = table
	e.mu.Unlock()
	return nil
}

func (e *Engine) snapshot() (*schema.Set, cptable.Table) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.set, e.cpTable
}

// SchemeInfo is a read-only summary of one loaded Scheme, for
// introspection tools (the CLI's list-schemes) that have no business
// touching the engine's internal schema.Set.
type SchemeInfo struct {
	Name           string
	TagLength      int
	OptionKeyField string
	Levels         []string
}

// Schemes summarizes every scheme in the engine's current snapshot.
func (e *Engine) Schemes() []SchemeInfo {
	set, _ := e.snapshot()
	if set == nil {
		return nil
	}
	infos := make([]SchemeInfo, 0, len(set.Schemes))
	for _, s := range set.Schemes {
		levels := make([]string, 0, len(s.Levels))
		for _, lvl := range s.Levels {
			levels = append(levels, string(lvl.Type))
		}
		infos = append(infos, SchemeInfo{
			Name:           s.Name,
			TagLength:      s.TagLength,
			OptionKeyField: s.OptionKey,
			Levels:         levels,
		})
	}
	return infos
}

// Translate runs select → tokenize → evaluate rules → emit over
// identifier, returning the re-encoded string at targetLevel.
func (e *Engine) Translate(identifier string, hints Hints, targetLevel Level) (string, error) {
	if strings.TrimSpace(identifier) == "" {
		return "", invalidArg("identifier must not be empty")
	}
	if targetLevel == "" {
		return "", invalidArg("target level must not be empty")
	}

	set, cpTable := e.snapshot()
	if set == nil {
		return "", invalidArg("engine has no loaded scheme set")
	}

	id := emitter.Decode(strings.TrimSpace(identifier))

	selHints := selector.Hints(hints)
	inTriple, err := selector.Select(set, id, selHints)
	if err != nil {
		return "", classify(err)
	}

	outTriple, err := selector.SelectOutput(set, inTriple.Scheme.Name, inTriple.Option.OptionKey, targetLevel)
	if err != nil {
		return "", classify(err)
	}

	// Seed the token map with hints that are not themselves captured by
	// the input option's pattern (e.g. "filter", which never appears in
	// a LEGACY_AI string but is still a BINARY/TAG_ENCODING field). A
	// hint that collides with an input-captured field name is left out
	// here so the tokenizer's own capture is authoritative.
	seed := tokenmap.New()
	for k, v := range hints {
		if inTriple.Option.FieldByName(k) == nil {
			seed[k] = v
		}
	}
	tm, err := tokenizer.Tokenize(inTriple.Level, inTriple.Option, outTriple.Option, id, seed)
	if err != nil {
		return "", classify(err)
	}

	ctx := rules.Context{CompanyPrefixes: cpTable}
	if err := rules.Run(ctx, tm, inTriple.Level, schema.RuleExtract); err != nil {
		return "", classify(err)
	}
	if err := rules.Run(ctx, tm, outTriple.Level, schema.RuleFormat); err != nil {
		return "", classify(err)
	}

	if targetLevel == Binary {
		if err := emitter.ToBinary(outTriple.Option, tm); err != nil {
			return "", classify(err)
		}
	}

	out, err := emitter.Emit(outTriple.Option, targetLevel, tm)
	if err != nil {
		return "", classify(err)
	}
	return out, nil
}

// TranslateStrings is the convenience overload of Translate: hintsString
// is a ";"-separated "key=value" list and targetLevelString parses
// case-sensitively against the Level enumeration.
func (e *Engine) TranslateStrings(identifier, hintsString, targetLevelString string) (string, error) {
	hints, err := ParseHints(hintsString)
	if err != nil {
		return "", err
	}
	level, err := ParseLevel(targetLevelString)
	if err != nil {
		return "", err
	}
	return e.Translate(identifier, hints, level)
}
