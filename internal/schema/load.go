package schema

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// xmlDoc / xmlScheme / xmlLevel / xmlOption / xmlField / xmlRule mirror the EPCglobal TDT markup's
// attribute names directly; LoadFile decodes into these then shapes
// them into the public schema.* types the rest of the engine consumes.

type xmlDoc struct {
	XMLName xml.Name    `xml:"epcTagDataTranslation"`
	Schemes []xmlScheme `xml:"scheme"`
}

type xmlScheme struct {
	Name      string     `xml:"name,attr"`
	TagLength int        `xml:"tagLength,attr"`
	OptionKey string     `xml:"optionKey,attr"`
	Levels    []xmlLevel `xml:"level"`
}

type xmlLevel struct {
	Type        string      `xml:"type,attr"`
	PrefixMatch string      `xml:"prefixMatch,attr"`
	Options     []xmlOption `xml:"option"`
	Rules       []xmlRule   `xml:"rule"`
}

type xmlOption struct {
	OptionKey string     `xml:"optionKey,attr"`
	Pattern   string     `xml:"pattern,attr"`
	Grammar   string     `xml:"grammar,attr"`
	Fields    []xmlField `xml:"field"`
}

type xmlField struct {
	Name              string `xml:"name,attr"`
	Seq               int    `xml:"seq,attr"`
	Length            string `xml:"length,attr"`
	CharacterSet      string `xml:"characterSet,attr"`
	DecimalMinimum    string `xml:"decimalMinimum,attr"`
	DecimalMaximum    string `xml:"decimalMaximum,attr"`
	PadDir            string `xml:"padDir,attr"`
	PadChar           string `xml:"padChar,attr"`
	BitPadDir         string `xml:"bitPadDir,attr"`
	Compaction        string `xml:"compaction,attr"`
}

type xmlRule struct {
	Type         string `xml:"type,attr"`
	Function     string `xml:"function,attr"`
	NewFieldName string `xml:"newFieldName,attr"`
}

// LoadFile parses a single TDT scheme XML file into Scheme values,
// wiring the Level -> Scheme back-references as it goes.
func LoadFile(path string) ([]*Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scheme file %s: %w", path, err)
	}
	schemes, err := parseDoc(data)
	if err != nil {
		return nil, fmt.Errorf("parse scheme file %s: %w", path, err)
	}
	return schemes, nil
}

// parseDoc decodes TDT scheme markup already in memory, shared by
// LoadFile (disk) and the embedded default bundle.
func parseDoc(data []byte) ([]*Scheme, error) {
	var doc xmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	schemes := make([]*Scheme, 0, len(doc.Schemes))
	for _, xs := range doc.Schemes {
		s := &Scheme{Name: xs.Name, TagLength: xs.TagLength, OptionKey: xs.OptionKey}
		for _, xl := range xs.Levels {
			lvl := Level{
				Type:        LevelType(xl.Type),
				PrefixMatch: xl.PrefixMatch,
				Scheme:      s,
			}
			for _, xr := range xl.Rules {
				lvl.Rules = append(lvl.Rules, Rule{
					Type:         RuleType(xr.Type),
					Function:     xr.Function,
					NewFieldName: xr.NewFieldName,
				})
			}
			for _, xo := range xl.Options {
				opt, err := buildOption(xo)
				if err != nil {
					return nil, fmt.Errorf("scheme %s level %s option %s: %w", xs.Name, xl.Type, xo.OptionKey, err)
				}
				lvl.Options = append(lvl.Options, opt)
			}
			s.Levels = append(s.Levels, lvl)
		}
		// fix up back-references now that Levels has its final address
		for i := range s.Levels {
			s.Levels[i].Scheme = s
		}
		schemes = append(schemes, s)
	}
	return schemes, nil
}

func buildOption(xo xmlOption) (Option, error) {
	re, err := regexp.Compile("^" + strings.TrimSuffix(strings.TrimPrefix(xo.Pattern, "^"), "$") + "$")
	if err != nil {
		return Option{}, fmt.Errorf("compile pattern %q: %w", xo.Pattern, err)
	}
	opt := Option{
		OptionKey: xo.OptionKey,
		Pattern:   xo.Pattern,
		Compiled:  re,
		Grammar:   strings.Fields(xo.Grammar),
	}
	for _, xf := range xo.Fields {
		f := Field{
			Name:         xf.Name,
			Seq:          xf.Seq,
			CharacterSet: xf.CharacterSet,
		}
		if xf.Length != "" {
			n, err := strconv.Atoi(xf.Length)
			if err != nil {
				return Option{}, fmt.Errorf("field %s: invalid length %q", xf.Name, xf.Length)
			}
			f.HasLength = true
			f.Length = n
		}
		if xf.DecimalMinimum != "" {
			f.HasDecimalMinimum = true
			f.DecimalMinimum = xf.DecimalMinimum
		}
		if xf.DecimalMaximum != "" {
			f.HasDecimalMaximum = true
			f.DecimalMaximum = xf.DecimalMaximum
		}
		if xf.PadDir != "" {
			f.PadDir = PadDir(strings.ToUpper(xf.PadDir))
		}
		if xf.PadChar != "" {
			f.HasPadChar = true
			f.PadChar = xf.PadChar[0]
		}
		if xf.BitPadDir != "" {
			f.HasBitPadDir = true
			f.BitPadDir = PadDir(strings.ToUpper(xf.BitPadDir))
		}
		if xf.Compaction != "" {
			n, err := strconv.Atoi(strings.TrimSuffix(xf.Compaction, "bit"))
			if err != nil {
				return Option{}, fmt.Errorf("field %s: invalid compaction %q", xf.Name, xf.Compaction)
			}
			f.CompactionSet = true
			f.Compaction = n
		}
		opt.Fields = append(opt.Fields, f)
	}
	return opt, nil
}

// LoadDir parses every *.xml file in dir in parallel and merges the
// resulting schemes into a single Set. Per-file parsing is independent;
// only the accumulation into the shared slice is synchronized, per the
// engine's concurrency model.
func LoadDir(dir string) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scheme directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".xml") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		set      = &Set{}
	)
	for _, path := range files {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			schemes, err := LoadFile(path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for _, s := range schemes {
				set.Schemes = append(set.Schemes, s)
				for li := range s.Levels {
					for oi := range s.Levels[li].Options {
						set.Triples = append(set.Triples, Triple{
							Scheme: s,
							Level:  &s.Levels[li],
							Option: &s.Levels[li].Options[oi],
						})
					}
				}
			}
		}(path)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return set, nil
}
