// Package trace implements the per-run structured execution trace
// (spec.md §4.5/§6), grounded on original_source/ava_core/basic.py's
// TraceCollector class. Collector is passed explicitly through the
// evaluator rather than stashed in a package-level global, per
// spec.md §9's stated preference for re-entrant tracing: a nested
// ava_exec call gets its own Collector instead of mutating the
// outer run's event list.
package trace

import (
	"time"

	"github.com/google/uuid"

	"github.com/vishalmet/ava/position"
)

// TokenRecord is one lexed token as attached to the trace.
type TokenRecord struct {
	Kind  string          `json:"type"`
	Value string          `json:"value"`
	Start *PositionRecord `json:"pos_start"`
	End   *PositionRecord `json:"pos_end"`
}

// PositionRecord is the JSON-facing projection of a position.Position.
type PositionRecord struct {
	Index int    `json:"idx"`
	Line  int    `json:"line"`
	Col   int    `json:"col"`
	File  string `json:"file,omitempty"`
}

func PosRecord(p position.Position) *PositionRecord {
	return &PositionRecord{Index: p.Index, Line: p.Line, Col: p.Column, File: p.FileName}
}

// Event is one execution-time occurrence: enter_node/exit_node,
// var_assign, call, return, each carrying a monotonically increasing id
// and a kind-specific data payload.
type Event struct {
	ID   int                    `json:"id"`
	Kind string                 `json:"kind"`
	Data map[string]interface{} `json:"data"`
}

// ErrorRecord is the JSON-facing projection of a diag error, built by
// the lang package once a run concludes.
type ErrorRecord struct {
	Name         string          `json:"name"`
	Details      string          `json:"details"`
	PosStart     *PositionRecord `json:"pos_start"`
	PosEnd       *PositionRecord `json:"pos_end"`
	TracebackStr string          `json:"traceback_str"`
}

type lexerTrace struct {
	Tokens []TokenRecord `json:"tokens"`
}

type parserTrace struct {
	RootRepr string `json:"root_repr"`
}

type executionTrace struct {
	Events     []Event                `json:"events"`
	FinalValue interface{}            `json:"final_value"`
	Stdout     string                 `json:"stdout"`
	Header     map[string]interface{} `json:"header,omitempty"`
}

// Object is the wire shape a finished Collector renders to, matching
// spec.md §6's trace object exactly.
type Object struct {
	File    string  `json:"file"`
	Elapsed float64 `json:"elapsed"`
	Trace   struct {
		Lexer     lexerTrace     `json:"lexer"`
		Parser    parserTrace    `json:"parser"`
		Execution executionTrace `json:"execution"`
	} `json:"trace"`
	Stdout     string                  `json:"stdout"`
	FinalValue interface{}             `json:"final_value"`
	SymbolsEnd map[string]interface{}  `json:"symbols_end"`
	Error      *ErrorRecord            `json:"error"`
	RunID      string                  `json:"run_id"`
}

// Collector accumulates one run's trace as it is lexed/parsed/evaluated.
// Call Finish once evaluation concludes, then Snapshot to obtain the
// externally-facing Object.
type Collector struct {
	runID      string
	fileName   string
	sourceText string
	startTime  time.Time
	elapsed    float64

	lexer     lexerTrace
	parser    parserTrace
	execution executionTrace

	symbolsEnd map[string]interface{}
	err        *ErrorRecord

	nextEventID int
}

// New creates a Collector ready to record a fresh run. RunID uses
// google/uuid so concurrent or repeated runs never collide in downstream
// log aggregation.
func New(fileName, sourceText string) *Collector {
	return &Collector{
		runID:       uuid.NewString(),
		fileName:    fileName,
		sourceText:  sourceText,
		startTime:   time.Now(),
		symbolsEnd:  make(map[string]interface{}),
		nextEventID: 1,
	}
}

func (c *Collector) RunID() string { return c.runID }

// AddToken records one lexed token.
func (c *Collector) AddToken(kind, value string, start, end position.Position) {
	c.lexer.Tokens = append(c.lexer.Tokens, TokenRecord{
		Kind: kind, Value: value, Start: PosRecord(start), End: PosRecord(end),
	})
}

// SetRootRepr records the parser's textual summary of the program root.
func (c *Collector) SetRootRepr(repr string) {
	c.parser.RootRepr = repr
}

// AddEvent appends a new execution event with the next sequential id.
func (c *Collector) AddEvent(kind string, data map[string]interface{}) {
	c.execution.Events = append(c.execution.Events, Event{ID: c.nextEventID, Kind: kind, Data: data})
	c.nextEventID++
}

// AppendStdout accumulates captured built-in output. A nested ava_exec
// run's captured text is appended here at the point the nested call
// completes, per spec.md §4.5.
func (c *Collector) AppendStdout(s string) {
	c.execution.Stdout += s
}

// SetHeader attaches the parsed `ava_exec` source header, if any.
func (c *Collector) SetHeader(header map[string]interface{}) {
	c.execution.Header = header
}

// SetError records the run's final error, if it failed.
func (c *Collector) SetError(err *ErrorRecord) {
	c.err = err
}

// Finish stamps elapsed time and records the end-of-run symbol snapshot
// and final value.
func (c *Collector) Finish(symbols map[string]interface{}, finalValue interface{}) {
	c.elapsed = time.Since(c.startTime).Seconds()
	c.symbolsEnd = symbols
	c.execution.FinalValue = finalValue
}

// Snapshot renders the Collector into the externally-facing Object.
func (c *Collector) Snapshot() *Object {
	obj := &Object{
		File:       c.fileName,
		Elapsed:    c.elapsed,
		Stdout:     c.execution.Stdout,
		FinalValue: c.execution.FinalValue,
		SymbolsEnd: c.symbolsEnd,
		Error:      c.err,
		RunID:      c.runID,
	}
	obj.Trace.Lexer = c.lexer
	obj.Trace.Parser = c.parser
	obj.Trace.Execution = c.execution
	return obj
}
