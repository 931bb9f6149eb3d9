package function

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/environment"
	"github.com/vishalmet/ava/position"
)

func TestCallEnvNestsInsideCapturedEnvironment(t *testing.T) {
	p := position.New("<t>", "")
	body := ast.NewNumberNode(1, p, p)
	defEnv := environment.New()

	fn := New("f", []string{"x"}, body, defEnv, true)
	callEnv := fn.CallEnv()

	callEnv.Set("x", nil)
	if _, ok := defEnv.Get("x"); ok {
		t.Fatal("binding inside call scope leaked into captured definition scope")
	}
}

func TestStringUsesNameWhenPresent(t *testing.T) {
	p := position.New("<t>", "")
	fn := New("add1", nil, ast.NewNumberNode(1, p, p), environment.New(), true)
	assert.Equal(t, "<function add1>", fn.String())
}

func TestStringFallsBackForAnonymous(t *testing.T) {
	p := position.New("<t>", "")
	fn := New("", nil, ast.NewNumberNode(1, p, p), environment.New(), true)
	assert.Equal(t, "<function <anonymous>>", fn.String())
}
