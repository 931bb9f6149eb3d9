package builtins

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vishalmet/ava/values"
)

func init() {
	add("show", 1, 1, show)
	add("print_ret", 1, 1, printRet)
	add("input", 0, 0, input)
	add("input_int", 0, 0, inputInt)
	add("clear", 0, 0, clear)
	add("is_num", 1, 1, isKind(values.NumberKind))
	add("is_str", 1, 1, isKind(values.StringKind))
	add("is_list", 1, 1, isKind(values.ListKind))
	add("is_fun", 1, 1, isFunction)
}

// show prints the stringified value followed by a newline (spec.md
// §4.4) and returns unit.
func show(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	fmt.Fprintln(w, args[0].String())
	return values.Null, nil
}

// printRet returns the string form of value without printing it.
func printRet(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	return values.NewString(args[0].String()), nil
}

func input(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	line, err := readLine(rt.InputReader())
	if err != nil {
		return nil, err
	}
	return values.NewString(line), nil
}

// inputInt reprompts until the line parses as an integer, matching
// original_source/ava_core/basic.py's execute_input_int loop.
func inputInt(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	for {
		line, err := readLine(rt.InputReader())
		if err != nil {
			return nil, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil {
			return values.NewNumber(float64(n)), nil
		}
		fmt.Fprintf(w, "'%s' must be an integer. Try again!\n", line)
	}
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func clear(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	rt.ClearScreen()
	return values.Null, nil
}

func isKind(kind values.Kind) values.Handler {
	return func(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
		return values.BoolNumber(args[0].Kind() == kind), nil
	}
}

func isFunction(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	return values.BoolNumber(args[0].Kind() == values.FunctionKind || args[0].Kind() == values.BuiltinKind), nil
}
