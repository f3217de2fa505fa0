// Package emitter implements C6: converting token values to BINARY
// when the target level requires it, then walking the output option's
// ABNF-style grammar to produce the final identifier string.
package emitter

import (
	"fmt"
	"strings"

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

// ToBinary rewrites every field of outOpt in tm to its BINARY
// encoding: apply any declared text padding, compact-or-convert to
// bits, then apply bit padding.
func ToBinary(outOpt *schema.Option, tm tokenmap.Map) error {
	for i := range outOpt.Fields {
		f := &outOpt.Fields[i]
		v, ok := tm.Get(f.Name)
		if !ok {
			return fmt.Errorf("field %q has no bound value to encode", f.Name)
		}

		if f.HasPadChar && f.PadDir != schema.PadNone {
			v = bitcodec.ApplyPadChar(v, toPadDir(f.PadDir), f.PadChar, f.Length)
		}

		if f.CompactionSet {
			if err := field.CheckCharset(fieldSpec(f), v); err != nil {
				return err
			}
			bits, err := bitcodec.StringToBinary(v, f.Compaction)
			if err != nil {
				return err
			}
			v = bits
		} else {
			if err := field.CheckRange(fieldSpec(f), v); err != nil {
				return err
			}
			bits, err := bitcodec.DecToBin(v)
			if err != nil {
				return err
			}
			v = bits
		}

		if f.HasBitPadDir {
			v = bitcodec.ApplyPadChar(v, toPadDir(f.BitPadDir), '0', f.Length)
		}

		tm.Set(f.Name, v)
	}
	return nil
}

// Emit walks outOpt.Grammar left to right, substituting bound token
// values for field-name tokens and literal text for 'quoted' tokens,
// concatenating the result into the final output identifier. For
// TAG_ENCODING and PURE_IDENTITY targets, each field value is
// percent-decoded before being written out.
func Emit(outOpt *schema.Option, targetLevel schema.LevelType, tm tokenmap.Map) (string, error) {
	decode := targetLevel == schema.LevelTagEncoding || targetLevel == schema.LevelPureIdentity

	var b strings.Builder
	for _, tok := range outOpt.Grammar {
		if strings.HasPrefix(tok, "'") {
			lit := strings.TrimPrefix(tok, "'")
			lit = strings.TrimSuffix(lit, "'")
			b.WriteString(lit)
			continue
		}
		v, ok := tm.Get(tok)
		if !ok {
			return "", fmt.Errorf("grammar field %q has no bound value", tok)
		}
		if decode {
			v = Decode(v)
		}
		b.WriteString(v)
	}
	return b.String(), nil
}
