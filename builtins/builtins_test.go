package builtins

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishalmet/ava/trace"
	"github.com/vishalmet/ava/values"
)

// fakeRuntime is a minimal values.Runtime for exercising builtin
// handlers in isolation, without an eval.Evaluator.
type fakeRuntime struct {
	reader      *bufio.Reader
	cleared     bool
	execFileFn  func(path string) (*trace.Object, error)
	callFuncFn  func(fn values.Value, args ...values.Value) (values.Value, error)
}

func (f *fakeRuntime) CallFunction(fn values.Value, args ...values.Value) (values.Value, error) {
	if f.callFuncFn != nil {
		return f.callFuncFn(fn, args...)
	}
	return values.Null, nil
}
func (f *fakeRuntime) InputReader() *bufio.Reader { return f.reader }
func (f *fakeRuntime) ClearScreen()               { f.cleared = true }
func (f *fakeRuntime) ExecFile(path string) (*trace.Object, error) {
	if f.execFileFn != nil {
		return f.execFileFn(path)
	}
	return nil, nil
}

func newFakeRuntime(stdin string) *fakeRuntime {
	return &fakeRuntime{reader: bufio.NewReader(strings.NewReader(stdin))}
}

func findBuiltin(t *testing.T, name string) *values.Builtin {
	t.Helper()
	for _, b := range Registered {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("builtin %q not registered", name)
	return nil
}

func TestShowWritesStringFormPlusNewline(t *testing.T) {
	var out bytes.Buffer
	b := findBuiltin(t, "show")
	result, err := b.Handler(newFakeRuntime(""), &out, []values.Value{values.NewString("hi")})
	require.NoError(t, err)
	assert.Equal(t, values.Null, result)
	assert.Equal(t, "hi\n", out.String())
}

func TestPrintRetReturnsStringWithoutWriting(t *testing.T) {
	var out bytes.Buffer
	b := findBuiltin(t, "print_ret")
	result, err := b.Handler(newFakeRuntime(""), &out, []values.Value{values.NewNumber(42)})
	require.NoError(t, err)
	assert.Equal(t, "42", result.(*values.String).Value)
	assert.Empty(t, out.String())
}

func TestInputReadsOneLine(t *testing.T) {
	var out bytes.Buffer
	b := findBuiltin(t, "input")
	result, err := b.Handler(newFakeRuntime("hello world\n"), &out, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", result.(*values.String).Value)
}

func TestInputIntRepromptsOnBadLine(t *testing.T) {
	var out bytes.Buffer
	b := findBuiltin(t, "input_int")
	result, err := b.Handler(newFakeRuntime("not-a-number\n42\n"), &out, nil)
	require.NoError(t, err)
	assert.Equal(t, 42.0, result.(*values.Number).Value)
	assert.Contains(t, out.String(), "must be an integer")
}

func TestClearCallsClearScreen(t *testing.T) {
	var out bytes.Buffer
	rt := newFakeRuntime("")
	b := findBuiltin(t, "clear")
	_, err := b.Handler(rt, &out, nil)
	require.NoError(t, err)
	assert.True(t, rt.cleared)
}

func TestIsNumIsStrIsListDiscriminate(t *testing.T) {
	isNum := findBuiltin(t, "is_num")
	isStr := findBuiltin(t, "is_str")
	isList := findBuiltin(t, "is_list")
	var out bytes.Buffer
	rt := newFakeRuntime("")

	r, _ := isNum.Handler(rt, &out, []values.Value{values.NewNumber(1)})
	assert.True(t, r.IsTrue())
	r, _ = isStr.Handler(rt, &out, []values.Value{values.NewNumber(1)})
	assert.False(t, r.IsTrue())
	r, _ = isList.Handler(rt, &out, []values.Value{values.NewList(nil)})
	assert.True(t, r.IsTrue())
}

func TestIsFunAcceptsBuiltinsAndFunctions(t *testing.T) {
	isFun := findBuiltin(t, "is_fun")
	var out bytes.Buffer
	rt := newFakeRuntime("")
	r, _ := isFun.Handler(rt, &out, []values.Value{findBuiltin(t, "show")})
	assert.True(t, r.IsTrue())
}

func TestListAddAppendsInPlace(t *testing.T) {
	list := values.NewList([]values.Value{values.NewNumber(1)})
	var out bytes.Buffer
	b := findBuiltin(t, "add")
	_, err := b.Handler(newFakeRuntime(""), &out, []values.Value{list, values.NewNumber(2)})
	require.NoError(t, err)
	require.Len(t, list.Elements, 2)
	assert.Equal(t, 2.0, list.Elements[1].(*values.Number).Value)
}

func TestListAddFirstArgNotListErrors(t *testing.T) {
	var out bytes.Buffer
	b := findBuiltin(t, "add")
	_, err := b.Handler(newFakeRuntime(""), &out, []values.Value{values.NewNumber(1), values.NewNumber(2)})
	assert.ErrorIs(t, err, errFirstArgMustBeList)
}

func TestListPopRemovesAndReturnsElement(t *testing.T) {
	list := values.NewList([]values.Value{values.NewNumber(1), values.NewNumber(2), values.NewNumber(3)})
	var out bytes.Buffer
	b := findBuiltin(t, "pop")
	result, err := b.Handler(newFakeRuntime(""), &out, []values.Value{list, values.NewNumber(1)})
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.(*values.Number).Value)
	assert.Len(t, list.Elements, 2)
}

func TestListPopOutOfBoundsErrors(t *testing.T) {
	list := values.NewList([]values.Value{values.NewNumber(1)})
	var out bytes.Buffer
	b := findBuiltin(t, "pop")
	_, err := b.Handler(newFakeRuntime(""), &out, []values.Value{list, values.NewNumber(5)})
	assert.EqualError(t, err, "Element at this index could not be removed from list because index is out of bounds")
}

func TestListExtendAppendsAllElements(t *testing.T) {
	a := values.NewList([]values.Value{values.NewNumber(1)})
	b := values.NewList([]values.Value{values.NewNumber(2), values.NewNumber(3)})
	var out bytes.Buffer
	extend := findBuiltin(t, "extend")
	_, err := extend.Handler(newFakeRuntime(""), &out, []values.Value{a, b})
	require.NoError(t, err)
	assert.Len(t, a.Elements, 3)
}

func TestListLenReturnsElementCount(t *testing.T) {
	list := values.NewList([]values.Value{values.NewNumber(1), values.NewNumber(2)})
	var out bytes.Buffer
	b := findBuiltin(t, "len")
	result, err := b.Handler(newFakeRuntime(""), &out, []values.Value{list})
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.(*values.Number).Value)
}

func TestToStrConvertsNumber(t *testing.T) {
	var out bytes.Buffer
	b := findBuiltin(t, "str")
	result, err := b.Handler(newFakeRuntime(""), &out, []values.Value{values.NewNumber(3.5)})
	require.NoError(t, err)
	assert.Equal(t, "3.5", result.(*values.String).Value)
}

func TestToNumParsesNumericString(t *testing.T) {
	var out bytes.Buffer
	b := findBuiltin(t, "num")
	result, err := b.Handler(newFakeRuntime(""), &out, []values.Value{values.NewString("12.5")})
	require.NoError(t, err)
	assert.Equal(t, 12.5, result.(*values.Number).Value)
}

func TestToNumRejectsNonNumericString(t *testing.T) {
	var out bytes.Buffer
	b := findBuiltin(t, "num")
	_, err := b.Handler(newFakeRuntime(""), &out, []values.Value{values.NewString("abc")})
	assert.Error(t, err)
}

func TestNewUUIDReturnsDistinctValues(t *testing.T) {
	var out bytes.Buffer
	b := findBuiltin(t, "uuid")
	a, err := b.Handler(newFakeRuntime(""), &out, nil)
	require.NoError(t, err)
	c, err := b.Handler(newFakeRuntime(""), &out, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.(*values.String).Value, c.(*values.String).Value)
}

func TestParseHeaderStrictJSON(t *testing.T) {
	header, err := ParseHeader(`# {"author": "eve", "version": 2}` + "\nshow(1)")
	require.NoError(t, err)
	assert.Equal(t, "eve", header["author"])
	assert.Equal(t, 2.0, header["version"])
}

func TestParseHeaderSingleQuoted(t *testing.T) {
	header, err := ParseHeader(`# {'author': 'eve', 'tags': ['a', 'b']}` + "\nshow(1)")
	require.NoError(t, err)
	assert.Equal(t, "eve", header["author"])
}

func TestParseHeaderTrailingComma(t *testing.T) {
	header, err := ParseHeader(`# {"author": "eve",}` + "\nshow(1)")
	require.NoError(t, err)
	assert.Equal(t, "eve", header["author"])
}

func TestParseHeaderNoHeaderLineReturnsNil(t *testing.T) {
	header, err := ParseHeader("show(1)\nshow(2)")
	require.NoError(t, err)
	assert.Nil(t, header)
}

func TestParseHeaderUnparsableReturnsError(t *testing.T) {
	_, err := ParseHeader("# not json at all {{{\nshow(1)")
	assert.Error(t, err)
}

func TestAvaExecRequiresNonEmptyHeader(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/no_header.ava"
	require.NoError(t, os.WriteFile(path, []byte("show(1)"), 0644))

	var out bytes.Buffer
	b := findBuiltin(t, "ava_exec")
	_, err := b.Handler(newFakeRuntime(""), &out, []values.Value{values.NewString(path)})
	assert.ErrorContains(t, err, "missing required header")
}

func TestAvaExecDelegatesToRuntimeExecFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/with_header.ava"
	require.NoError(t, os.WriteFile(path, []byte(`# {"author": "eve"}`+"\nshow(1)"), 0644))

	rt := newFakeRuntime("")
	rt.execFileFn = func(p string) (*trace.Object, error) {
		assert.Equal(t, path, p)
		return &trace.Object{Stdout: "1\n"}, nil
	}

	var out bytes.Buffer
	b := findBuiltin(t, "ava_exec")
	result, err := b.Handler(rt, &out, []values.Value{values.NewString(path)})
	require.NoError(t, err)
	assert.Equal(t, values.Null, result)
	assert.Equal(t, "1\n", out.String())
}
