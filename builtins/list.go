package builtins

import (
	"errors"
	"io"

	"github.com/vishalmet/ava/values"
)

func init() {
	add("add", 2, 2, listAdd)
	add("pop", 2, 2, listPop)
	add("extend", 2, 2, listExtend)
	add("len", 1, 1, listLen)
}

var errFirstArgMustBeList = errors.New("First argument must be list")

// listAdd appends value onto list in place and returns unit, matching
// original_source's execute_append semantics (ava names it `add`).
func listAdd(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	list, ok := args[0].(*values.List)
	if !ok {
		return nil, errFirstArgMustBeList
	}
	list.Elements = append(list.Elements, args[1])
	return values.Null, nil
}

// listPop removes and returns the element at index, erroring on an
// out-of-bounds index (original_source's execute_pop).
func listPop(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	list, ok := args[0].(*values.List)
	if !ok {
		return nil, errFirstArgMustBeList
	}
	index, ok := args[1].(*values.Number)
	if !ok {
		return nil, errors.New("Second argument must be number")
	}

	i, ok := values.ResolveIndex(len(list.Elements), index.Value)
	if !ok {
		return nil, errors.New("Element at this index could not be removed from list because index is out of bounds")
	}

	element := list.Elements[i]
	list.Elements = append(list.Elements[:i], list.Elements[i+1:]...)
	return element, nil
}

// listExtend appends listB's elements onto listA in place and returns
// unit (original_source's execute_extend).
func listExtend(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	listA, ok := args[0].(*values.List)
	if !ok {
		return nil, errFirstArgMustBeList
	}
	listB, ok := args[1].(*values.List)
	if !ok {
		return nil, errors.New("Second argument must be list")
	}
	listA.Elements = append(listA.Elements, listB.Elements...)
	return values.Null, nil
}

func listLen(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	list, ok := args[0].(*values.List)
	if !ok {
		return nil, errors.New("Argument must be list")
	}
	return values.NewNumber(float64(len(list.Elements))), nil
}
