package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vishalmet/ava/values"
)

func TestGetFallsBackToParent(t *testing.T) {
	root := New()
	root.Set("x", values.NewNumber(1))

	child := NewChild(root)
	v, ok := child.Get("x")
	assert.True(t, ok)
	assert.Equal(t, values.NewNumber(1), v)
}

func TestSetAlwaysTargetsCurrentScope(t *testing.T) {
	root := New()
	root.Set("x", values.NewNumber(1))

	child := NewChild(root)
	child.Set("x", values.NewNumber(2))

	childVal, _ := child.Get("x")
	rootVal, _ := root.Get("x")
	assert.Equal(t, values.NewNumber(2), childVal)
	assert.Equal(t, values.NewNumber(1), rootVal)
}

func TestGetMissingReturnsFalse(t *testing.T) {
	_, ok := New().Get("nope")
	assert.False(t, ok)
}

func TestRemoveOnlyAffectsCurrentScope(t *testing.T) {
	root := New()
	root.Set("x", values.NewNumber(1))
	child := NewChild(root)
	child.Set("x", values.NewNumber(2))

	child.Remove("x")
	v, ok := child.Get("x")
	assert.True(t, ok)
	assert.Equal(t, values.NewNumber(1), v)
}

func TestSnapshotAllMergesParentAndChildShadowing(t *testing.T) {
	root := New()
	root.Set("a", values.NewNumber(1))
	root.Set("b", values.NewNumber(2))

	child := NewChild(root)
	child.Set("b", values.NewNumber(20))

	snap := child.SnapshotAll()
	assert.Equal(t, values.NewNumber(1), snap["a"])
	assert.Equal(t, values.NewNumber(20), snap["b"])
}

func TestCopyIsIndependentOfOriginal(t *testing.T) {
	root := New()
	root.Set("x", values.NewNumber(1))
	cp := root.Copy()
	cp.Set("x", values.NewNumber(99))

	orig, _ := root.Get("x")
	copied, _ := cp.Get("x")
	assert.Equal(t, values.NewNumber(1), orig)
	assert.Equal(t, values.NewNumber(99), copied)
}
