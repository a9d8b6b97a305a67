package transcriber

// chunkState is the per-chunk retry state.
type chunkState int

const (
	statePending chunkState = iota
	stateRetrying
	stateTerminal
)

func (s chunkState) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateRetrying:
		return "retrying"
	default:
		return "terminal"
	}
}

// advance applies an attempt outcome to the remaining budget. Unintelligible
// audio spends one unit and retries while budget remains; success and
// backend errors are terminal without spending anything further.
func advance(outcome Outcome, budget int) (chunkState, int) {
	switch outcome {
	case OutcomeUnintelligible:
		budget--
		if budget <= 0 {
			return stateTerminal, 0
		}
		return stateRetrying, budget
	default:
		return stateTerminal, budget
	}
}
