package regcore

// Flag is the option bitmask §6 enumerates. It is carried on MatchInput for
// every Interpreter.Execute call and on CompiledPattern for every driver
// call, exactly the way auvred-regonaut's Flag bitmask rides along a
// compiler/machine pair (regonaut.go's Flag* constants), generalized from
// regonaut's single ECMAScript dialect to the multi-dialect option set §6
// names.
type Flag uint32

const (
	Global Flag = 1 << iota
	Sticky
	Multiline
	SingleMatch
	Insensitive
	Unicode
	UnicodeSets
	DotAll
	// MatchNotBeginOfLine and MatchNotEndOfLine are per-call overrides the
	// driver sets on MatchInput (never on a CompiledPattern), §4.F.5: the
	// substring being searched is known not to be the true start/end of the
	// line even though its position looks like one.
	MatchNotBeginOfLine
	MatchNotEndOfLine
	// StatefulStartOffset marks a CompiledPattern as retaining start_offset
	// across calls (the Global/Sticky "use and advance lastIndex" behavior),
	// mirroring RegexMatcher.cpp's m_pattern.options().has_flag_set(internal).
	StatefulStartOffset
)

// Parser is the external collaborator contract §2/§9 describes: anything
// that can turn pattern source plus Flag into a Program is a valid supplier
// for Compile, so the dialect-specific grammar (ECMAScript, POSIX, etc.)
// never has to live inside this package. internal/compile.ECMA is the one
// dialect this repo ships.
type Parser interface {
	Parse(source string, options Flag) (*Program, error)
}

// CompiledPattern is the immutable result of a successful compile (§3):
// a Program plus every piece of dialect-independent metadata the driver
// needs without ever inspecting Program.Ops itself.
type CompiledPattern struct {
	Source  string
	Options Flag

	Program *Program

	MinMatchLength         int
	CaptureGroupCount      int
	NamedCaptureGroupCount int

	StartingRanges            []CharRange
	StartingRangesInsensitive []CharRange
	OnlyStartOfLine           bool

	NamedCaptures map[string][]int
}

// Matcher pairs a CompiledPattern with the one piece of mutable state a
// caller can legitimately keep across calls when StatefulStartOffset is
// set: the offset the next search should resume from, mirroring
// RegexMatcher.cpp's RegexResult::start_offset persistence (§4.F.1/§12).
type Matcher struct {
	Pattern *CompiledPattern

	startOffset int
}

// NewMatcher returns a Matcher ready to search from the beginning of any
// view it is given. Reusing one Matcher for repeated Global/Sticky calls on
// the same logical input is what makes start_offset persistence visible;
// passing a fresh Matcher is equivalent to resetting lastIndex to 0.
func NewMatcher(pattern *CompiledPattern) *Matcher {
	return &Matcher{Pattern: pattern}
}

// StartOffset reports the code-point offset the next Match call will begin
// searching from.
func (m *Matcher) StartOffset() int { return m.startOffset }

// SetStartOffset overrides the resume position, the Go equivalent of
// assigning to a RegExp's lastIndex property.
func (m *Matcher) SetStartOffset(offset int) { m.startOffset = offset }
