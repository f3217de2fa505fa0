package rules

import (
	"fmt"

	"github.com/epcglobal/tdtengine/internal/schema"
	"github.com/epcglobal/tdtengine/internal/tokenmap"
)

// Run evaluates every Rule of the given type belonging to lvl, in
// document order, binding each rule's result to its newFieldName in tm.
// Rules may depend on tokens produced by earlier rules in the same
// pass. Rebinding an existing key fails with tokenmap.DuplicateFieldError.
func Run(ctx Context, tm tokenmap.Map, lvl *schema.Level, ruleType schema.RuleType) error {
	for _, r := range lvl.Rules {
		if r.Type != ruleType {
			continue
		}
		val, err := Eval(ctx, tm, r.Function)
		if err != nil {
			return fmt.Errorf("rule %s %s: %w", ruleType, r.Function, err)
		}
		if err := tm.Bind(r.NewFieldName, val); err != nil {
			return err
		}
	}
	return nil
}
