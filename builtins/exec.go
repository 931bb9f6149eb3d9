package builtins

import (
	"fmt"
	"io"
	"os"

	"github.com/vishalmet/ava/values"
)

func init() {
	add("ava_exec", 1, 1, avaExec)
}

// avaExec implements spec.md §4.4's `ava_exec(path)`: read the file,
// validate it declares a non-empty header (SPEC_FULL.md §4.4's
// restatement of original_source's "required header fields" check, with
// the blockchain-specific `pk` requirement dropped since pk/pow/web3
// belong to an out-of-scope host subsystem — see DESIGN.md), then
// recursively run it through the host's wired ExecFile.
func avaExec(rt values.Runtime, w io.Writer, args []values.Value) (values.Value, error) {
	pathVal, ok := args[0].(*values.String)
	if !ok {
		return nil, fmt.Errorf("argument must be string")
	}
	path := pathVal.Value

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load script %q: %w", path, err)
	}

	header, err := ParseHeader(string(source))
	if err != nil {
		return nil, fmt.Errorf("error in parsing header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("missing required header in %q", path)
	}

	result, err := rt.ExecFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to finish executing script %q: %w", path, err)
	}

	if result.Stdout != "" {
		fmt.Fprint(w, result.Stdout)
	}

	return values.Null, nil
}
