package regcore

// Match is one successful match result: the matched substring's position
// and the text itself, mirroring RegexMatcher.cpp's `Match` record.
type Match struct {
	Value        string
	Line         int
	Column       int
	Start        int
	GlobalOffset int
}

// CaptureMatch is one capture group's result for one Match. Valid is false
// when the group never participated (§3's Capture.Unset, surfaced here).
type CaptureMatch struct {
	Value        string
	Valid        bool
	Start        int
	GlobalOffset int
}

// MatchResult is the driver's top-level return value, the Go shape of
// RegexMatcher.cpp's RegexResult.
type MatchResult struct {
	Success                bool
	Count                  int
	Matches                []Match
	CaptureGroupMatches    [][]CaptureMatch // one slice per Match, each sized CaptureGroupCount
	Operations             int
	CaptureGroupCount      int
	NamedCaptureGroupCount int
}

// MatchViews runs the full §4.F driver over views using matcher.Pattern, folding
// in overrideOptions (the per-call options a caller passes alongside the
// pattern's own compiled-in options, e.g. Global/Sticky/MatchNotBeginOfLine
// set by a caller doing incremental search). It is a direct Go port of
// Matcher<Parser>::match(Vector<RegexStringView> const&, ...) in
// RegexMatcher.cpp, generalized from that file's single ECMA262
// specialization (which always passes a single-element views slice, since
// ECMA262 never splits multiline input into per-line views the way other
// dialects do) to accept any number of views so a future non-ECMA Parser
// can still drive this same loop.
func MatchViews(views []View, matcher *Matcher, overrideOptions Flag) *MatchResult {
	pattern := matcher.Pattern
	options := pattern.Options | overrideOptions

	if options&StatefulStartOffset == 0 {
		matcher.startOffset = 0
	}

	interp := Interpreter{Program: pattern.Program}

	input := MatchInput{Options: options}
	input.Line = 0
	input.GlobalOffset = 0
	startOffset := matcher.startOffset

	matchCount := 0
	operations := 0

	// continueSearch controls what happens both after a successful match
	// (keep hunting for further, non-overlapping matches within the same
	// call - §8 scenario 4 runs `^foo` under bare Multiline and expects
	// both line-starts, not just the first) and at the MatchNotEndOfLine/
	// MatchNotBeginOfLine rejection points just below (skip past a
	// rejected match and keep scanning vs. give up entirely) - the same
	// single concept RegexMatcher.cpp's match() groups under its own
	// continue_search: `continue_search = Global||Multiline; if (Sticky)
	// continue_search = false`. Sticky forces it off in every case, per
	// §6 and Testable Property §8.4 (count <= 1 under Sticky).
	// anchored controls a different, narrower thing: whether a *failed*
	// attempt gets to retry at the next position at all. Sticky means
	// exactly one position (matcher.startOffset) is ever tried, matching
	// a JS RegExp with the sticky flag. Retrying on failure is
	// independent of continueSearch - even a plain, flagless pattern
	// must scan forward past early failures to find a match anywhere in
	// the view (§8 scenario 1).
	continueSearch := options&(Global|Multiline) != 0 && options&Sticky == 0
	anchored := options&Sticky != 0
	singleMatchOnly := options&SingleMatch != 0
	onlyStartOfLine := pattern.OnlyStartOfLine && options&Multiline == 0
	insensitive := options&Insensitive != 0

	var matches []Match
	var captureGroupMatches [][]CaptureMatch

	appendMatch := func(view View, state *MatchState, startPosition int) {
		value := view.Slice(startPosition, state.StringPosition)
		matches = append(matches, Match{
			Value:        value,
			Line:         input.Line,
			Column:       startPosition,
			Start:        startPosition,
			GlobalOffset: input.GlobalOffset + startPosition,
		})
		captures := make([]CaptureMatch, pattern.CaptureGroupCount)
		for i, cap := range state.Captures {
			if cap.Unset() {
				continue
			}
			captures[i] = CaptureMatch{
				Value:        view.Slice(cap.Start, cap.End),
				Valid:        true,
				Start:        cap.Start,
				GlobalOffset: input.GlobalOffset + cap.Start,
			}
		}
		captureGroupMatches = append(captureGroupMatches, captures)
	}

	succeeded := false

	for _, view := range views {
		input.View = view
		viewLength := view.Len()
		viewIndex := startOffset
		state := newMatchState(pattern.CaptureGroupCount, pattern.Program.MarkCount)

		if viewIndex == viewLength && pattern.MinMatchLength == 0 {
			// Run non-consuming code against an empty tail, e.g. an
			// anchors-only pattern like "$".
			tempOperations := operations
			input.Column = matchCount
			input.MatchIndex = matchCount
			state.InstructionPosition = 0
			for i := range state.RepetitionMarks {
				state.RepetitionMarks[i] = 0
			}

			ok := interp.Execute(&input, &state, &tempOperations)
			if ok && state.StringPosition <= viewIndex {
				operations = tempOperations
				if matchCount == 0 {
					appendMatch(view, &state, viewIndex)
					matchCount++
					if viewIndex == 0 && viewLength == 0 {
						viewIndex++
					}
				}
			}
		}

		for ; viewIndex <= viewLength; viewIndex++ {
			if viewIndex == viewLength && options&Multiline != 0 {
				break
			}

			if pattern.MinMatchLength > 0 && pattern.MinMatchLength > viewLength-viewIndex {
				break
			}

			if ranges := startingRangesFor(pattern, insensitive); len(ranges) > 0 {
				ch, ok := view.At(viewIndex)
				if !ok {
					break
				}
				if insensitive {
					ch = toASCIILower(ch)
				}
				if !rangesContain(ranges, ch, insensitive) {
					goto doneMatching
				}
			}

			input.Column = matchCount
			input.MatchIndex = matchCount
			state.StringPosition = viewIndex
			state.StringPositionCodeUnit = viewIndex
			state.InstructionPosition = 0
			for i := range state.RepetitionMarks {
				state.RepetitionMarks[i] = 0
			}
			for i := range state.Captures {
				state.Captures[i] = Capture{Start: -1, End: -1}
			}

			if interp.Execute(&input, &state, &operations) {
				succeeded = true

				if options&MatchNotEndOfLine != 0 && state.StringPosition == view.Len() {
					if !continueSearch {
						break
					}
					continue
				}
				if options&MatchNotBeginOfLine != 0 && viewIndex == 0 {
					if !continueSearch {
						break
					}
					continue
				}

				matchCount++

				if continueSearch {
					appendMatch(view, &state, viewIndex)
					hasZeroLength := state.StringPosition == viewIndex
					if hasZeroLength {
						viewIndex = state.StringPosition
					} else {
						viewIndex = state.StringPosition - 1
					}
					if singleMatchOnly {
						break
					}
					continue
				}
				// Plain single-match search: the first match found anywhere
				// in the view is the result, regardless of how much of the
				// view it consumed. Sticky (anchored) also settles here,
				// since it only ever gets one attempt to begin with.
				appendMatch(view, &state, viewIndex)
				break
			}

		doneMatching:
			if anchored || onlyStartOfLine {
				break
			}
		}

		input.Line++
		input.GlobalOffset += view.Len() + 1

		if options&StatefulStartOffset != 0 {
			matcher.startOffset = state.StringPosition
		}

		if succeeded && !continueSearch {
			break
		}
	}

	return &MatchResult{
		Success:                matchCount != 0,
		Count:                  matchCount,
		Matches:                matches,
		CaptureGroupMatches:    captureGroupMatches,
		Operations:             operations,
		CaptureGroupCount:      pattern.CaptureGroupCount,
		NamedCaptureGroupCount: pattern.NamedCaptureGroupCount,
	}
}

// MatchString is the common-case entry point: search a single Go string
// with no multi-view fan-out, equivalent to calling MatchViews with a
// one-element views slice built by NewView.
func MatchString(matcher *Matcher, s string, overrideOptions Flag) *MatchResult {
	return MatchViews([]View{NewView(s)}, matcher, overrideOptions)
}

func startingRangesFor(pattern *CompiledPattern, insensitive bool) []CharRange {
	if insensitive {
		return pattern.StartingRangesInsensitive
	}
	return pattern.StartingRanges
}

func toASCIILower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func toASCIIUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// rangesContain is the compare_range binary search of RegexMatcher.cpp's
// match(): both the ASCII-lowered and ASCII-uppered form of ch are checked
// against each candidate range when insensitive, since starting_ranges are
// recorded in whatever case the pattern's literal happened to use.
func rangesContain(ranges []CharRange, ch rune, insensitive bool) bool {
	lower, upper := ch, ch
	if insensitive {
		lower = toASCIILower(ch)
		upper = toASCIIUpper(ch)
	}
	lo, hi := 0, len(ranges)
	for lo < hi {
		mid := (lo + hi) / 2
		rg := ranges[mid]
		switch {
		case lower > rg.Hi && upper > rg.Hi:
			lo = mid + 1
		case lower < rg.Lo && upper < rg.Lo:
			hi = mid
		default:
			return true
		}
	}
	return false
}
