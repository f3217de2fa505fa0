// Package tokenizer implements C5: regex-driven extraction of an
// input identifier's fields into a token map, decoding BINARY fields
// through the bit codec and leaving text-level fields as raw captures.
package tokenizer

import (
	"fmt"

	"github.com/epcglobal/tdtengine/internal/bitcodec"
	"github.com/epcglobal/tdtengine/internal/field"
	"github.com/epcglobal/tdtengine/internal/schema"
	"github.com/epcglobal/tdtengine/internal/tokenmap"
)

func toPadDir(d schema.PadDir) bitcodec.PadDir {
	switch d {
	case schema.PadLeft:
		return bitcodec.DirLeft
	case schema.PadRight:
		return bitcodec.DirRight
	default:
		return bitcodec.DirNone
	}
}

func fieldSpec(f *schema.Field) field.Spec {
	s := field.Spec{Name: f.Name, CharacterSet: f.CharacterSet}
	if f.HasDecimalMinimum {
		s.DecimalMinimum = f.DecimalMinimum
	}
	if f.HasDecimalMaximum {
		s.DecimalMaximum = f.DecimalMaximum
	}
	return s
}

// Tokenize matches identifier against inputOpt.Pattern and builds the
// token map. outputOpt is the option the engine will ultimately emit
// to (already resolved by the selector); it is consulted
// only to reconcile text-padding directions between the input and
// output representation of each field. seed pre-populates the returned
// map (typically with the caller's hints, such as filter, that never
// appear in any level's regex capture but are still needed as fields
// downstream) before any captured field is bound.
func Tokenize(inputLevel *schema.Level, inputOpt *schema.Option, outputOpt *schema.Option, identifier string, seed tokenmap.Map) (tokenmap.Map, error) {
	m := inputOpt.Compiled.FindStringSubmatch(identifier)
	if m == nil {
		return nil, fmt.Errorf("identifier %q does not match option pattern %q", identifier, inputOpt.Pattern)
	}

	tm := tokenmap.New()
	for k, v := range seed {
		tm[k] = v
	}
	isBinary := inputLevel.Type == schema.LevelBinary

	for i := range inputOpt.Fields {
		f := &inputOpt.Fields[i]
		if f.Seq == 0 {
			// Declared only as output-side padding/length metadata (see
			// schema.Field doc); never captured when this option is the input.
			continue
		}
		if f.Seq < 0 || f.Seq >= len(m) {
			return nil, fmt.Errorf("field %q: seq %d is not a valid capture group of pattern %q", f.Name, f.Seq, inputOpt.Pattern)
		}
		raw := m[f.Seq]

		var token string
		var err error
		if isBinary {
			token, err = tokenizeBinaryField(f, raw)
		} else {
			token = raw
			err = field.CheckCharset(fieldSpec(f), token)
			if err == nil {
				err = field.CheckRange(fieldSpec(f), token)
			}
		}
		if err != nil {
			return nil, err
		}

		if isBinary {
			token, err = reconcileTextPadding(f, outputOpt, token)
			if err != nil {
				return nil, err
			}
		}

		if err := tm.Bind(f.Name, token); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

func tokenizeBinaryField(f *schema.Field, raw string) (string, error) {
	if f.CompactionSet {
		k := f.Compaction
		if f.HasBitPadDir {
			stripped, err := bitcodec.StripBitPadding(raw, toPadDir(f.BitPadDir), k)
			if err != nil {
				return "", err
			}
			raw = stripped
		}
		token, err := bitcodec.BinaryToString(raw, k)
		if err != nil {
			return "", err
		}
		if err := field.CheckCharset(fieldSpec(f), token); err != nil {
			return "", err
		}
		return token, nil
	}

	if f.HasBitPadDir {
		stripped, err := bitcodec.StripBitPadding(raw, toPadDir(f.BitPadDir), 0)
		if err != nil {
			return "", err
		}
		raw = stripped
	}
	token, err := bitcodec.BinToDec(raw)
	if err != nil {
		return "", err
	}
	if token != "" {
		if err := field.CheckRange(fieldSpec(f), token); err != nil {
			return "", err
		}
	}
	return token, nil
}

// reconcileTextPadding implements the input/output padDir reconciliation:
// declaring padDir on both sides is a scheme-authoring error; declaring
// it on only one side strips (input) or applies (output) that padding.
func reconcileTextPadding(f *schema.Field, outputOpt *schema.Option, token string) (string, error) {
	if outputOpt == nil {
		return token, nil
	}
	outField := outputOpt.FieldByName(f.Name)
	if outField == nil {
		return token, nil
	}

	inHasPad := f.PadDir != schema.PadNone
	outHasPad := outField.PadDir != schema.PadNone

	switch {
	case inHasPad && outHasPad:
		return "", fmt.Errorf("invalid scheme file: field %q declares padDir on both input and output options", f.Name)
	case inHasPad:
		ch := byte(' ')
		if f.HasPadChar {
			ch = f.PadChar
		}
		return bitcodec.StripPadChar(token, toPadDir(f.PadDir), ch), nil
	case outHasPad:
		ch := byte(' ')
		if outField.HasPadChar {
			ch = outField.PadChar
		}
		reqLen := outField.Length
		return bitcodec.ApplyPadChar(token, toPadDir(outField.PadDir), ch, reqLen), nil
	default:
		return token, nil
	}
}
