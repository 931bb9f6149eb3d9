// Package builtins implements ava's pre-registered native callables
// (spec.md §4.4), grounded on go-mix's std/builtins.go
// (Builtin{Name, Callback}, the package-level registration slice) but
// generalized to min/max arity ranges the way
// original_source/ava_core/basic.py's BuiltInFunction flexible-arity
// support (min_args/max_args attributes on execute_* methods) does.
package builtins

import "github.com/vishalmet/ava/values"

// Registered is the list of every builtin this package defines, in
// registration order. lang.Run binds each into the global environment
// under its own Name before evaluating a program.
var Registered []*values.Builtin

// Register appends a host-extension builtin to Registered. Host code
// calls this before constructing the global environment (spec.md §4.4's
// "host code may add named callables before run is invoked").
func Register(name string, minArgs, maxArgs int, handler values.Handler) {
	Registered = append(Registered, &values.Builtin{
		Name: name, MinArgs: minArgs, MaxArgs: maxArgs, Handler: handler,
	})
}

func add(name string, minArgs, maxArgs int, handler values.Handler) {
	Registered = append(Registered, &values.Builtin{
		Name: name, MinArgs: minArgs, MaxArgs: maxArgs, Handler: handler,
	})
}
