package regcore

import "strings"

// SyntaxError is a compile-time failure, the same shape as
// auvred-regonaut's SyntaxError (regonaut.go): a plain string payload
// behind the error interface, with no wrapped cause chain because a
// dialect parser has nothing further upstream to wrap.
type SyntaxError struct {
	err      string
	pattern  string
	position int
	hasPos   bool
}

func (e *SyntaxError) Error() string { return e.err }

var _ error = (*SyntaxError)(nil)

// NewSyntaxError builds an unpositioned SyntaxError, for failures that
// aren't anchored to a single offset in the source (e.g. "unterminated
// pattern").
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{err: message}
}

// NewSyntaxErrorAt builds a SyntaxError anchored to a code-point offset in
// pattern, enough information for Describe to reproduce the original
// engine's three-line diagnostic.
func NewSyntaxErrorAt(pattern string, position int, message string) *SyntaxError {
	return &SyntaxError{err: message, pattern: pattern, position: position, hasPos: true}
}

// Describe renders the §5 three-line diagnostic: a header, the pattern
// source, and a caret pointing at the offending code point, ported from
// RegexMatcher.cpp's Regex<Parser>::error_string.
func (e *SyntaxError) Describe() string {
	var b strings.Builder
	b.WriteString("Error during parsing of regular expression:\n")
	b.WriteString("    ")
	b.WriteString(e.pattern)
	b.WriteString("\n    ")
	if e.hasPos {
		runes := []rune(e.pattern)
		limit := e.position
		if limit > len(runes) {
			limit = len(runes)
		}
		for i := 0; i < limit; i++ {
			b.WriteByte(' ')
		}
	}
	b.WriteString("^---- ")
	b.WriteString(e.err)
	return b.String()
}

// CompileError wraps a SyntaxError with the (source, options) that produced
// it, so a caller that caught the error from Compile still knows which
// cache key failed without having kept the inputs around itself.
type CompileError struct {
	Source  string
	Options Flag
	Err     *SyntaxError
}

func (e *CompileError) Error() string { return e.Err.Error() }

func (e *CompileError) Unwrap() error { return e.Err }
