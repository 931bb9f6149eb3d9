package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddedToNumbers(t *testing.T) {
	v, err := AddedTo(NewNumber(1), NewNumber(2))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(3), v)
}

func TestAddedToMismatchedKindsIsIllegalOperation(t *testing.T) {
	_, err := AddedTo(NewNumber(1), NewString("x"))
	assert.ErrorIs(t, err, ErrIllegalOperation)
}

func TestDivedByZeroIsError(t *testing.T) {
	_, err := DivedBy(NewNumber(1), NewNumber(0))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestListAddedToAppendsWithoutMutatingOriginal(t *testing.T) {
	orig := NewList([]Value{NewNumber(1)})
	v, err := AddedTo(orig, NewNumber(2))
	require.NoError(t, err)

	result := v.(*List)
	assert.Len(t, result.Elements, 2)
	assert.Len(t, orig.Elements, 1)
}

func TestListSubbedByRemovesAtIndex(t *testing.T) {
	orig := NewList([]Value{NewNumber(1), NewNumber(2), NewNumber(3)})
	v, err := SubbedBy(orig, NewNumber(1))
	require.NoError(t, err)

	result := v.(*List)
	assert.Equal(t, []Value{NewNumber(1), NewNumber(3)}, result.Elements)
}

func TestListSubbedByOutOfBoundsErrors(t *testing.T) {
	orig := NewList([]Value{NewNumber(1)})
	_, err := SubbedBy(orig, NewNumber(5))
	assert.Error(t, err)
}

func TestListDivedByNegativeIndex(t *testing.T) {
	orig := NewList([]Value{NewNumber(1), NewNumber(2), NewNumber(3)})
	v, err := DivedBy(orig, NewNumber(-1))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(3), v)
}

func TestStringMultedByRepeats(t *testing.T) {
	v, err := MultedBy(NewString("ab"), NewNumber(3))
	require.NoError(t, err)
	assert.Equal(t, NewString("ababab"), v)
}

func TestComparisonOperators(t *testing.T) {
	v, err := ComparisonLt(NewNumber(1), NewNumber(2))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(1), v)
}

func TestNottedFlipsTruthiness(t *testing.T) {
	v, err := Notted(NewNumber(0))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(1), v)

	v, err = Notted(NewNumber(5))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(0), v)
}

func TestNegated(t *testing.T) {
	v, err := Negated(NewNumber(5))
	require.NoError(t, err)
	assert.Equal(t, NewNumber(-5), v)
}
