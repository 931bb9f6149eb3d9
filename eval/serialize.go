package eval

import "github.com/vishalmet/ava/values"

// ToPlain converts a runtime Value into the plain Go types the trace's
// JSON encoding needs (spec.md §4.5's value-serialization rules):
// Numbers/Strings as themselves, Lists recursively, everything else
// (Function, Builtin) through its String() form, which already renders
// as "<function NAME>" / "<built-in function NAME>".
func ToPlain(v values.Value) interface{} {
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case *values.Number:
		return val.Value
	case *values.String:
		return val.Value
	case *values.List:
		out := make([]interface{}, len(val.Elements))
		for i, e := range val.Elements {
			out[i] = ToPlain(e)
		}
		return out
	default:
		return v.String()
	}
}
