package builtins

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	"github.com/vishalmet/ava/values"
)

// Additive builtins beyond spec.md §4.4's required table (SPEC_FULL.md
// §4.4): coercions grounded in go-mix/std's execute_int/execute_float/
// execute_str-style builtins, and uuid() for correlation IDs.
func init() {
	add("str", 1, 1, toStr)
	add("num", 1, 1, toNum)
	add("uuid", 0, 0, newUUID)
}

func toStr(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	return values.NewString(args[0].String()), nil
}

func toNum(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	switch v := args[0].(type) {
	case *values.Number:
		return v, nil
	case *values.String:
		n, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to a number", v.Value)
		}
		return values.NewNumber(n), nil
	default:
		return nil, fmt.Errorf("cannot convert %s to a number", v.String())
	}
}

func newUUID(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	return values.NewString(uuid.NewString()), nil
}
