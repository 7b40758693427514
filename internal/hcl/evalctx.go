package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// newEvalContext returns the context every time expression is evaluated in.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"ns": cty.NumberIntVal(1),
			"us": cty.NumberIntVal(1_000),
			"ms": cty.NumberIntVal(1_000_000),
			"s":  cty.NumberIntVal(1_000_000_000),
		},
	}
}

// evalInt64 evaluates expr to a whole number. ok is false when the attribute
// was not set at all.
func evalInt64(expr hcl.Expression, evalCtx *hcl.EvalContext) (v int64, ok bool, err error) {
	if expr == nil {
		return 0, false, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, false, diags
	}
	if val.IsNull() {
		return 0, false, nil
	}
	if !val.IsWhollyKnown() {
		return 0, false, fmt.Errorf("value is not known")
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, false, err
	}
	if err := gocty.FromCtyValue(num, &v); err != nil {
		return 0, false, err
	}
	return v, true, nil
}
