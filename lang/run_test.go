package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioArithmeticPrecedence(t *testing.T) {
	result := Run("<test>", "var x = 1 + 2 * 3", nil)
	require.Nil(t, result.Error)
	assert.Equal(t, 7.0, result.FinalValue)
	assert.Equal(t, "", result.Stdout)
}

func TestScenarioListMutationThroughBuiltins(t *testing.T) {
	result := Run("<test>", "var xs = [1,2,3]; add(xs, 4); len(xs)", nil)
	require.Nil(t, result.Error)
	assert.Equal(t, 4.0, result.FinalValue)
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0, 4.0}, result.SymbolsEnd["xs"])
}

func TestScenarioSingleLineFunctionDef(t *testing.T) {
	result := Run("<test>", "fun add1(n) -> n + 1\nadd1(41)", nil)
	require.Nil(t, result.Error)
	assert.Equal(t, 42.0, result.FinalValue)
}

func TestScenarioIfElifElseBranchesOnFirstTruthyCase(t *testing.T) {
	result := Run("<test>", "if 0 then show(\"a\") elif 1 then show(\"b\") else show(\"c\") end", nil)
	require.Nil(t, result.Error)
	assert.Equal(t, "b\n", result.Stdout)
}

func TestScenarioWhileLoopVariableVisibleAcrossIterations(t *testing.T) {
	result := Run("<test>", "var i = 0\nwhile i < 3 then var i = i + 1 end\ni", nil)
	require.Nil(t, result.Error)
	assert.Equal(t, 3.0, result.FinalValue)
}

func TestScenarioClosureCountsFromCapturedEnvironmentEachCall(t *testing.T) {
	result := Run("<test>", "fun counter()\nvar c = 0\nfun inc() -> var c = c + 1\nreturn inc\nend\nvar f = counter()\nf()\nf()\nf()", nil)
	require.Nil(t, result.Error)
	assert.Equal(t, 1.0, result.FinalValue)
}

func TestRunAlwaysReturnsTraceEvenOnLexError(t *testing.T) {
	result := Run("<test>", "var x = @", nil)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Illegal Character", result.Error.Name)
}

func TestRunAlwaysReturnsTraceEvenOnSyntaxError(t *testing.T) {
	result := Run("<test>", "var x =", nil)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Invalid Syntax", result.Error.Name)
}

func TestRunAlwaysReturnsTraceEvenOnRuntimeError(t *testing.T) {
	result := Run("<test>", "undefined_name", nil)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Runtime Error", result.Error.Name)
	assert.NotEmpty(t, result.Error.TracebackStr)
}

func TestRunRecordsParsedHeader(t *testing.T) {
	result := Run("<test>", `# {"author": "eve"}`+"\nshow(1)", nil)
	require.Nil(t, result.Error)
	assert.Equal(t, "eve", result.Trace.Execution.Header["author"])
}

func TestRunEmitsEnterAndExitEventsForEveryStatement(t *testing.T) {
	result := Run("<test>", "var x = 1", nil)
	require.Nil(t, result.Error)
	var sawEnter, sawExit bool
	for _, ev := range result.Trace.Execution.Events {
		if ev.Kind == "enter_node" {
			sawEnter = true
		}
		if ev.Kind == "exit_node" {
			sawExit = true
		}
	}
	assert.True(t, sawEnter)
	assert.True(t, sawExit)
}
