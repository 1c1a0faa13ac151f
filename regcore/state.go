package regcore

import "github.com/cespare/xxhash/v2"

// Capture is a single capture-group span, in code points, into the view
// that was active when it was recorded. Start == -1 means "unset" (the
// sentinel §3 requires).
type Capture struct {
	Start, End int
}

// Unset reports whether the capture never participated in the match.
func (c Capture) Unset() bool { return c.Start < 0 || c.End < 0 }

// View is the opaque code-point view an interpreter run walks over. It
// exposes just enough surface for opcodes and the driver: random access by
// code-point index and a length. Unicode decoding (component A's
// "propagate Unicode/UnicodeSets to each view's code-point decoder", §4.F.3)
// is the caller's responsibility when constructing a View; the engine only
// ever indexes it.
type View struct {
	runes []rune
}

// NewView builds a View from a Go string, decoding it as a sequence of
// Unicode code points. Callers that need UTF-16-style code-unit semantics
// construct a View directly from a []rune already split into code units.
func NewView(s string) View { return View{runes: []rune(s)} }

// NewViewFromRunes builds a View directly from decoded code points,
// letting a caller choose code-unit vs code-point granularity upstream.
func NewViewFromRunes(r []rune) View { return View{runes: r} }

func (v View) Len() int { return len(v.runes) }

func (v View) At(i int) (rune, bool) {
	if i < 0 || i >= len(v.runes) {
		return 0, false
	}
	return v.runes[i], true
}

func (v View) Slice(start, end int) string { return string(v.runes[start:end]) }

// MatchInput is the per-call, effectively-immutable record §3 describes.
// FailCounter and ForkToReplace are the two fields opcodes mutate in place
// to drive possessive quantifiers / atomic groups (§4.E, §9).
type MatchInput struct {
	View         View
	Line         int
	Column       int
	MatchIndex   int
	GlobalOffset int
	Options      Flag

	FailCounter int

	forkToReplaceSet bool
	forkToReplace    int
}

// SetForkToReplace arms the targeted-replacement mechanism: the next
// ForkPrioHigh/ForkPrioLow the interpreter dispatches will overwrite the
// newest queued state whose InitiatingFork equals id, instead of appending.
func (in *MatchInput) SetForkToReplace(id int) {
	in.forkToReplaceSet = true
	in.forkToReplace = id
}

func (in *MatchInput) clearForkToReplace() { in.forkToReplaceSet = false }

// MatchState is the per-candidate-path mutable record §3 describes.
type MatchState struct {
	StringPosition         int
	StringPositionCodeUnit int
	InstructionPosition    int
	ForkAtPosition         int
	InitiatingFork         int

	RepetitionMarks []int // MarkPos targets, indexed by Op.MarkIndex

	Captures          []Capture
	CaptureGroupCount int
}

// newMatchState returns a zeroed MatchState sized for a program with
// captureCount capture groups and markCount loop-control marks.
func newMatchState(captureCount, markCount int) MatchState {
	st := MatchState{
		RepetitionMarks:   make([]int, markCount),
		Captures:          make([]Capture, captureCount),
		CaptureGroupCount: captureCount,
	}
	for i := range st.Captures {
		st.Captures[i] = Capture{Start: -1, End: -1}
	}
	return st
}

// clone deep-copies the slices a MatchState owns so that a queued fork and
// the state that produced it never alias each other's backing arrays. This
// mirrors the original matcher's BumpAllocatedLinkedList<MatchState>, which
// stores MatchState by value (full Vector copies) at every append (§4.C).
func (st MatchState) clone() MatchState {
	st.RepetitionMarks = append([]int(nil), st.RepetitionMarks...)
	st.Captures = append([]Capture(nil), st.Captures...)
	return st
}

// fingerprint computes the cycle-cutting hash §3/§4.D/§9 requires: it must
// reflect every field affecting future execution from this point (position,
// instruction pointer, loop marks/counters, captures) and nothing else.
// Matches/flat_capture_group_matches are deliberately excluded: they only
// accumulate completed results between driver-level position attempts and
// never change during a single Interpreter.Execute call, so hashing them
// would be both wasted work and over-hashing (harmless per §9, but pointless).
func (st *MatchState) fingerprint() uint64 {
	var buf [8]byte
	h := xxhash.New()
	write64 := func(v uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	write64(uint64(st.InstructionPosition))
	write64(uint64(st.StringPosition))
	for _, m := range st.RepetitionMarks {
		write64(uint64(m))
	}
	for _, cap := range st.Captures {
		write64(uint64(cap.Start))
		write64(uint64(cap.End))
	}
	x := h.Sum64()
	// The spec's own mixing function, ported from the original's
	// SufficientlyUniformValueTraits::hash, applied on top of the
	// xxhash digest rather than on a hand-rolled accumulator.
	return mixFingerprint(x)
}

// mixFingerprint is §4.D's hash(x) = (x >> 32) ^ x, verbatim.
func mixFingerprint(x uint64) uint64 {
	return (x >> 32) ^ x
}
