package regcore

import "unicode"

// executeOp runs a single Op's matching contract (§4.A/§6) and reports the
// ExecResult the interpreter's dispatch loop should act on. Each case below
// is grounded on the corresponding compiled closure in auvred-regonaut's
// compileAtom/compileAssertion/compileTerm (regonaut.go): that engine
// inlines the same checks directly into a []func(vm *machine) entry, where
// this engine instead returns a plain ExecResult for the shared dispatch
// loop in interp.go to act on.
func (it *Interpreter) executeOp(op *Op, input *MatchInput, state *MatchState) ExecResult {
	switch op.Kind {
	case OpChar:
		r, ok := input.View.At(state.StringPosition)
		if !ok {
			return Failed
		}
		if input.Options&Insensitive != 0 {
			if canonicalize(r) != canonicalize(op.Rune) {
				return Failed
			}
		} else if r != op.Rune {
			return Failed
		}
		state.StringPosition++
		return Continue

	case OpAny:
		r, ok := input.View.At(state.StringPosition)
		if !ok {
			return Failed
		}
		if input.Options&DotAll == 0 && isLineTerminator(r) {
			return Failed
		}
		state.StringPosition++
		return Continue

	case OpClass:
		r, ok := input.View.At(state.StringPosition)
		if !ok {
			return Failed
		}
		matched := op.Class.Contains(r)
		if !matched && input.Options&Insensitive != 0 {
			matched = foldContains(op.Class, r)
		}
		if matched == op.Negate {
			return Failed
		}
		state.StringPosition++
		return Continue

	case OpBOL:
		if state.StringPosition == 0 && input.Options&MatchNotBeginOfLine == 0 {
			return Continue
		}
		if input.Options&Multiline != 0 {
			if prev, ok := input.View.At(state.StringPosition - 1); ok && isLineTerminator(prev) {
				return Continue
			}
		}
		return Failed

	case OpEOL:
		if state.StringPosition == input.View.Len() && input.Options&MatchNotEndOfLine == 0 {
			return Continue
		}
		if input.Options&Multiline != 0 {
			if next, ok := input.View.At(state.StringPosition); ok && isLineTerminator(next) {
				return Continue
			}
		}
		return Failed

	case OpWordBoundary:
		before := false
		if r, ok := input.View.At(state.StringPosition - 1); ok {
			before = isWordChar(r)
		}
		after := false
		if r, ok := input.View.At(state.StringPosition); ok {
			after = isWordChar(r)
		}
		if (before != after) == op.Negate {
			return Failed
		}
		return Continue

	case OpBackref:
		ref := state.Captures[op.SlotIndex]
		if ref.Unset() {
			// An unset group participates as a zero-width match, per
			// ECMA-262 21.2.2.9 ("Backreference") - regonaut's
			// captureMatchKindUnknown branch does the same.
			return Continue
		}
		length := ref.End - ref.Start
		if state.StringPosition+length > input.View.Len() {
			return Failed
		}
		for i := 0; i < length; i++ {
			a, _ := input.View.At(ref.Start + i)
			b, _ := input.View.At(state.StringPosition + i)
			if input.Options&Insensitive != 0 {
				if canonicalize(a) != canonicalize(b) {
					return Failed
				}
			} else if a != b {
				return Failed
			}
		}
		state.StringPosition += length
		return Continue

	case OpSaveStart:
		state.Captures[op.SlotIndex].Start = state.StringPosition
		return Continue

	case OpSaveEnd:
		state.Captures[op.SlotIndex].End = state.StringPosition
		return Continue

	case OpForkHigh:
		state.ForkAtPosition = op.ForkTarget
		return ForkPrioHigh

	case OpForkLow:
		state.ForkAtPosition = op.ForkTarget
		return ForkPrioLow

	case OpSkip:
		return Continue

	case OpMarkPos:
		state.RepetitionMarks[op.MarkIndex] = state.StringPosition
		return Continue

	case OpCheckProgress:
		if state.StringPosition == state.RepetitionMarks[op.MarkIndex] {
			return Failed
		}
		return Continue

	case OpMatch:
		return Succeeded
	}

	return Failed
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == ' ' || r == ' '
}

// isWordChar implements ECMAScript's ASCII-only \w (AnnexB, no Unicode
// property escapes), matching regonaut's handling of \w/\W/\b/\B.
func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

// canonicalize picks the smallest rune in r's simple case-fold orbit, the
// same representative-element trick Go's own regexp/syntax package uses for
// case-insensitive comparisons - the standard library's unicode package is
// the only sane source for this table, so there is no third-party
// equivalent to wire in here.
func canonicalize(r rune) rune {
	min := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < min {
			min = f
		}
	}
	return min
}

// foldContains reports whether any rune in r's case-fold orbit is a member
// of c, used when OpClass runs under Insensitive.
func foldContains(c *CharClass, r rune) bool {
	if c.Contains(r) {
		return true
	}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if c.Contains(f) {
			return true
		}
	}
	return false
}
