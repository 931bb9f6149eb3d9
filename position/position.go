// Package position tracks where a piece of source text came from.
//
// Every token and every AST node carries a span built from two Positions,
// so diagnostics (lexer/parser/runtime errors, the execution trace) can
// always point back at the exact slice of source that produced them.
package position

// Position is an immutable pointer into a source file: a byte offset plus
// the 0-based line/column it corresponds to, alongside the file name and
// the full source text (kept so error rendering can re-slice the offending
// line without the caller re-reading the file).
type Position struct {
	Index      int    // rune offset into FullSource (the byte offset for ASCII source)
	Line       int    // 0-based line number
	Column     int    // 0-based column number
	FileName   string
	FullSource string
}

// New creates the starting Position for a freshly lexed file.
func New(fileName, fullSource string) Position {
	return Position{Index: -1, Line: 0, Column: -1, FileName: fileName, FullSource: fullSource}
}

// Advance moves the position forward by one rune. A newline rune resets
// the column and bumps the line, matching the lexer's single-pass scan.
func (p Position) Advance(current rune) Position {
	p.Index++
	p.Column++
	if current == '\n' {
		p.Line++
		p.Column = 0
	}
	return p
}

// DisplayLine returns the 1-based line number used in user-facing text.
func (p Position) DisplayLine() int {
	return p.Line + 1
}

// Span delimits a piece of source text between two Positions.
type Span struct {
	Start Position
	End   Position
}
