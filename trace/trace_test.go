package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vishalmet/ava/position"
)

func TestEventIDsAreMonotonicallyIncreasing(t *testing.T) {
	c := New("<t>", "var x = 1")
	c.AddEvent("enter_node", map[string]interface{}{"kind": "VarAssign"})
	c.AddEvent("exit_node", map[string]interface{}{"kind": "VarAssign"})

	assert.Equal(t, 1, c.execution.Events[0].ID)
	assert.Equal(t, 2, c.execution.Events[1].ID)
}

func TestAppendStdoutAccumulates(t *testing.T) {
	c := New("<t>", "")
	c.AppendStdout("a\n")
	c.AppendStdout("b\n")
	assert.Equal(t, "a\nb\n", c.Snapshot().Stdout)
}

func TestSnapshotNestsLexerParserExecutionUnderTrace(t *testing.T) {
	c := New("<t>", "1")
	p := position.New("<t>", "1")
	c.AddToken("INT", "1", p, p)
	c.SetRootRepr("[1]")
	c.Finish(map[string]interface{}{}, float64(1))

	snap := c.Snapshot()
	assert.Len(t, snap.Trace.Lexer.Tokens, 1)
	assert.Equal(t, "[1]", snap.Trace.Parser.RootRepr)
	assert.Equal(t, float64(1), snap.Trace.Execution.FinalValue)
	assert.Equal(t, float64(1), snap.FinalValue)
}

func TestRunIDIsPopulated(t *testing.T) {
	c := New("<t>", "")
	assert.NotEmpty(t, c.RunID())
}
