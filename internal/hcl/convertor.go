package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// extractParams evaluates the attributes of a params block into plain Go
// values. Params are opaque to the engine; they are handed to task executors
// untouched.
func extractParams(block *paramsBlock) (map[string]any, error) {
	if block == nil {
		return nil, nil
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid params block: %w", diags)
	}

	params := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid params attribute %q: %w", name, diags)
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("params attribute %q: %w", name, err)
		}
		params[name] = goVal
	}
	return params, nil
}

// ctyToGo converts an evaluated cty value into the loosest matching Go
// value: string, float64, bool, []any, or map[string]any.
func ctyToGo(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		items := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			goElem, err := ctyToGo(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, goElem)
		}
		return items, nil
	case ty.IsObjectType() || ty.IsMapType():
		fields := make(map[string]any, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			goElem, err := ctyToGo(elem)
			if err != nil {
				return nil, err
			}
			fields[key.AsString()] = goElem
		}
		return fields, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
