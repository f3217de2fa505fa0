package tdtengine

import (
	"errors"
	"fmt"

	"github.com/epcglobal/tdtengine/internal/bitcodec"
	"github.com/epcglobal/tdtengine/internal/field"
	"github.com/epcglobal/tdtengine/internal/rules"
	"github.com/epcglobal/tdtengine/internal/selector"
	"github.com/epcglobal/tdtengine/internal/tokenmap"
)

// ErrorKind classifies a TDTError by the stage of translation that
// failed. Every value here is fatal to the current Translate call;
// none are retried.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNoMatch
	KindAmbiguousMatch
	KindInvalidCharacterSet
	KindBelowMinimum
	KindAboveMaximum
	KindUnsupportedCompaction
	KindInvalidBinary
	KindTableNotFound
	KindMissingTableKey
	KindOutOfRange
	KindArithmeticError
	KindDuplicateField
	KindInvalidSchemeFile
	KindInvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoMatch:
		return "NoMatch"
	case KindAmbiguousMatch:
		return "AmbiguousMatch"
	case KindInvalidCharacterSet:
		return "InvalidCharacterSet"
	case KindBelowMinimum:
		return "BelowMinimum"
	case KindAboveMaximum:
		return "AboveMaximum"
	case KindUnsupportedCompaction:
		return "UnsupportedCompaction"
	case KindInvalidBinary:
		return "InvalidBinary"
	case KindTableNotFound:
		return "TableNotFound"
	case KindMissingTableKey:
		return "MissingTableKey"
	case KindOutOfRange:
		return "OutOfRange"
	case KindArithmeticError:
		return "ArithmeticError"
	case KindDuplicateField:
		return "DuplicateField"
	case KindInvalidSchemeFile:
		return "InvalidSchemeFile"
	case KindInvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// TDTError is the single error variant the engine surfaces to callers,
// carrying a human-readable message and its ErrorKind tag.
type TDTError struct {
	Kind ErrorKind
	Msg  string
	err  error
}

func (e *TDTError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *TDTError) Unwrap() error { return e.err }

func newErr(kind ErrorKind, cause error) *TDTError {
	return &TDTError{Kind: kind, Msg: cause.Error(), err: cause}
}

func invalidArg(format string, args ...interface{}) *TDTError {
	return &TDTError{Kind: KindInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// classify wraps any error surfaced by a subcomponent into a TDTError,
// inferring ErrorKind from the subcomponent's own typed error. Errors
// that are already a *TDTError pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var tdtErr *TDTError
	if errors.As(err, &tdtErr) {
		return tdtErr
	}

	var (
		noMatch       *selector.NoMatchError
		ambiguous     *selector.AmbiguousMatchError
		charset       *field.InvalidCharacterSetError
		rangeErr      *field.RangeError
		compaction    *bitcodec.UnsupportedCompactionError
		invalidBinary *bitcodec.InvalidBinaryError
		tableNotFound *rules.TableNotFoundError
		missingKey    *rules.MissingTableKeyError
		outOfRange    *rules.OutOfRangeError
		arithmetic    *rules.ArithmeticError
		duplicate     *tokenmap.DuplicateFieldError
	)

	switch {
	case errors.As(err, &noMatch):
		return newErr(KindNoMatch, err)
	case errors.As(err, &ambiguous):
		return newErr(KindAmbiguousMatch, err)
	case errors.As(err, &charset):
		return newErr(KindInvalidCharacterSet, err)
	case errors.As(err, &rangeErr):
		if rangeErr.Below {
			return newErr(KindBelowMinimum, err)
		}
		return newErr(KindAboveMaximum, err)
	case errors.As(err, &compaction):
		return newErr(KindUnsupportedCompaction, err)
	case errors.As(err, &invalidBinary):
		return newErr(KindInvalidBinary, err)
	case errors.As(err, &tableNotFound):
		return newErr(KindTableNotFound, err)
	case errors.As(err, &missingKey):
		return newErr(KindMissingTableKey, err)
	case errors.As(err, &outOfRange):
		return newErr(KindOutOfRange, err)
	case errors.As(err, &arithmetic):
		return newErr(KindArithmeticError, err)
	case errors.As(err, &duplicate):
		return newErr(KindDuplicateField, err)
	default:
		return newErr(KindInvalidSchemeFile, err)
	}
}
