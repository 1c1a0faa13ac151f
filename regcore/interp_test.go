package regcore

import (
	"testing"

	"gotest.tools/v3/assert"
)

// buildLiteralProgram returns a program that matches the exact rune
// sequence s, hand-assembled the way a compiler would, without pulling in
// internal/compile (which imports this package).
func buildLiteralProgram(s string) *Program {
	ops := make([]Op, 0, len(s)+1)
	for _, r := range s {
		ops = append(ops, Op{Kind: OpChar, Rune: r})
	}
	ops = append(ops, Op{Kind: OpMatch})
	return &Program{Ops: ops}
}

func runProgram(p *Program, s string, captureCount int) (bool, MatchState, int) {
	interp := Interpreter{Program: p}
	input := MatchInput{View: NewView(s)}
	state := newMatchState(captureCount, p.MarkCount)
	operations := 0
	ok := interp.Execute(&input, &state, &operations)
	return ok, state, operations
}

func TestInterpreterLiteralMatch(t *testing.T) {
	p := buildLiteralProgram("abc")
	ok, state, ops := runProgram(p, "abc", 0)
	assert.Equal(t, ok, true)
	assert.Equal(t, state.StringPosition, 3)
	assert.Assert(t, ops > 0)
}

func TestInterpreterLiteralMismatch(t *testing.T) {
	p := buildLiteralProgram("abc")
	ok, _, _ := runProgram(p, "abd", 0)
	assert.Equal(t, ok, false)
}

// TestInterpreterForkHighPrefersFirstBranch builds "a|ab" by hand (an
// OpForkHigh trying "a" first, falling back to "ab" only on failure) and
// checks the greedy-first-branch bias resolves in favor of the fork target.
func TestInterpreterForkHighPrefersFirstBranch(t *testing.T) {
	// program: ForkHigh(target=1) ; 'a' ; Skip(to end) ; 'a' ; 'b' ; Match
	// split's size must land its deferred continuation at the second
	// alternative's first op (index 3): 2 (split+skip slots) + 1 (the
	// first alternative's one op).
	split := Op{Kind: OpForkHigh, ForkTarget: 1}
	split.SetSize(3)
	skip := Op{Kind: OpSkip}
	skip.SetSize(3)
	ops := []Op{
		split,
		{Kind: OpChar, Rune: 'a'},
		skip,
		{Kind: OpChar, Rune: 'a'},
		{Kind: OpChar, Rune: 'b'},
		{Kind: OpMatch},
	}
	p := &Program{Ops: ops}

	ok, state, _ := runProgram(p, "a", 0)
	assert.Equal(t, ok, true)
	assert.Equal(t, state.StringPosition, 1)

	ok, state, _ = runProgram(p, "ab", 0)
	assert.Equal(t, ok, true)
	// Greedy-first: "a" alone matches at position 1, "ab" is never tried
	// since the shorter alternative already succeeded.
	assert.Equal(t, state.StringPosition, 1)
}

// TestInterpreterForkHighFallsBackOnFailure forces the first branch to fail
// so the queued fallback runs.
func TestInterpreterForkHighFallsBackOnFailure(t *testing.T) {
	split := Op{Kind: OpForkHigh, ForkTarget: 1}
	split.SetSize(3)
	skip := Op{Kind: OpSkip}
	skip.SetSize(3)
	ops := []Op{
		split,
		{Kind: OpChar, Rune: 'x'}, // never matches
		skip,
		{Kind: OpChar, Rune: 'a'},
		{Kind: OpChar, Rune: 'b'},
		{Kind: OpMatch},
	}
	p := &Program{Ops: ops}

	ok, state, _ := runProgram(p, "ab", 0)
	assert.Equal(t, ok, true)
	assert.Equal(t, state.StringPosition, 2)
}

func TestInterpreterCaptureGroup(t *testing.T) {
	// program: SaveStart(0) 'b' 'c' SaveEnd(0) Match  -- matches "bc",
	// capturing the whole thing into group 0.
	ops := []Op{
		{Kind: OpSaveStart, SlotIndex: 0},
		{Kind: OpChar, Rune: 'b'},
		{Kind: OpChar, Rune: 'c'},
		{Kind: OpSaveEnd, SlotIndex: 0},
		{Kind: OpMatch},
	}
	p := &Program{Ops: ops}
	ok, state, _ := runProgram(p, "bc", 1)
	assert.Equal(t, ok, true)
	assert.Equal(t, state.Captures[0].Start, 0)
	assert.Equal(t, state.Captures[0].End, 2)
}

func TestInterpreterUnboundedLoopViaForkHighAndCheckProgress(t *testing.T) {
	// Hand-assembled "b+" against "bbbx": entry ForkHigh into the body,
	// body is MarkPos/'b'/CheckProgress, tail ForkHigh loops back.
	mark := 0
	markPos := Op{Kind: OpMarkPos, MarkIndex: mark}
	checkProgress := Op{Kind: OpCheckProgress, MarkIndex: mark}
	body := []Op{markPos, {Kind: OpChar, Rune: 'b'}, checkProgress}

	entry := Op{Kind: OpForkHigh, ForkTarget: 1}
	entry.SetSize(len(body) + 2)
	tail := Op{Kind: OpForkHigh, ForkTarget: 1}
	tail.SetSize(1)

	ops := append([]Op{entry}, body...)
	ops = append(ops, tail, Op{Kind: OpMatch})

	p := &Program{Ops: ops, MarkCount: 1}
	ok, state, _ := runProgram(p, "bbbx", 0)
	assert.Equal(t, ok, true)
	assert.Equal(t, state.StringPosition, 3)
}
