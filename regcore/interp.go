package regcore

// Program is the opaque compiled bytecode §3/§4.A describes: a flat,
// variable-"size" opcode sequence plus the precomputed hints the match
// driver (component F) consults before ever running the interpreter.
type Program struct {
	Ops []Op

	MinMatchLength int

	CaptureGroupCount      int
	NamedCaptureGroupCount int
	MarkCount              int // number of distinct loop-control marks used by Ops

	StartingRanges           []CharRange
	StartingRangesInsensitive []CharRange

	OnlyStartOfLine bool

	NamedCaptures map[string][]int
}

// Interpreter runs the backtracking VM of §4.E over a single Program. It
// holds no state between Execute calls; the work queue and seen-set are
// allocated fresh every time, exactly as the original's
// Matcher<Parser>::execute allocates its BumpAllocatedLinkedList and
// HashTable on the stack per call.
type Interpreter struct {
	Program *Program
}

// Execute runs the VM starting from state.InstructionPosition (normally 0,
// set by the driver) and reports whether the program succeeded. On success,
// state holds the final StringPosition and Captures. operations is
// incremented once per opcode fetch, for the caller's own budget tracking
// (§5, "no mid-call cancellation hook ... caller can set an informed budget
// next time").
func (it *Interpreter) Execute(input *MatchInput, state *MatchState, operations *int) bool {
	queue := newWorkQueue()
	seen := newSeenStateSet()

	for {
		ip := state.InstructionPosition
		op := &it.Program.Ops[ip]
		*operations++

		var result ExecResult
		if input.FailCounter > 0 {
			input.FailCounter--
			result = FailedExecuteLowPrioForks
		} else {
			result = it.executeOp(op, input, state)
		}

		state.InstructionPosition = ip + op.Size()

		switch result {
		case Continue:
			continue

		case Succeeded:
			return true

		case ForkPrioLow:
			entry := state.clone()
			entry.InstructionPosition = state.ForkAtPosition
			it.enqueueFork(&queue, input, ip, entry)
			continue

		case ForkPrioHigh:
			entry := state.clone()
			it.enqueueFork(&queue, input, ip, entry)
			state.InstructionPosition = state.ForkAtPosition
			continue

		case Failed, FailedExecuteLowPrioForks:
			found := false
			for !queue.isEmpty() {
				candidate := queue.takeLast()
				h := candidate.fingerprint()
				if !seen.insertIfNew(h) {
					continue
				}
				*state = candidate
				found = true
				break
			}
			if !found {
				return false
			}
			continue
		}
	}
}

// enqueueFork implements the targeted-replacement rule shared by
// ForkPrioHigh and ForkPrioLow (§4.E): if MatchInput.ForkToReplace is armed,
// it overwrites the newest queued entry with that InitiatingFork instead of
// appending, then disarms itself; otherwise it appends a new entry tagged
// with the forking opcode's own offset as its identity.
func (it *Interpreter) enqueueFork(queue *workQueue, input *MatchInput, forkOpcodeOffset int, entry MatchState) {
	if input.forkToReplaceSet {
		entry.InitiatingFork = input.forkToReplace
		if queue.replaceByInitiatingFork(input.forkToReplace, entry) {
			input.clearForkToReplace()
			return
		}
		input.clearForkToReplace()
	}
	entry.InitiatingFork = forkOpcodeOffset
	queue.append(entry)
}
