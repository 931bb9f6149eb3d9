// Command ava is a non-interactive front-end over the lang package: it
// runs a source file and prints its captured stdout, final value, and
// any parse/runtime error, colorized the way go-mix's
// main/main.go.executeFileWithRecovery does (red for errors, yellow for
// results, cyan for informational banners). The REPL and TCP server
// modes go-mix's main.go also offers are dropped — spec.md places both
// out of scope (see DESIGN.md).
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vishalmet/ava/lang"
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

const version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "ava",
		Short: "ava runs programs written in the ava language",
	}

	var traceOut string
	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "execute an ava source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0], traceOut)
		},
	}
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "write the run's full JSON trace to this path")
	root.AddCommand(runCmd)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print the ava version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cyanColor.Printf("ava %s\n", version)
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runFile(fileName, traceOut string) error {
	source, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file %q: %v\n", fileName, err)
		os.Exit(1)
	}

	result := lang.Run(fileName, string(source), nil)
	fmt.Print(result.Stdout)

	if traceOut != "" {
		if writeErr := writeTrace(traceOut, result); writeErr != nil {
			redColor.Fprintf(os.Stderr, "[TRACE ERROR] could not write trace to %q: %v\n", traceOut, writeErr)
		}
	}

	if result.Error != nil {
		redColor.Fprintln(os.Stderr, result.Error.TracebackStr)
		os.Exit(1)
	}

	if result.FinalValue != nil {
		yellowColor.Printf("%v\n", result.FinalValue)
	}
	return nil
}

func writeTrace(path string, result interface{}) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
