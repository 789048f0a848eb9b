package session

import "time"

// Advance applies one turn's verdict to the session state machine and
// reports whether this turn transitioned the engagement to FINISHED.
//
// Rules:
//   - The turn counter always increments, whatever the verdict.
//   - ScamDetected is sticky: once a scam turn has been seen, later
//     benign-looking turns do not clear it.
//   - The engagement finishes only when the model says it has run its
//     course AND the turn is a scam turn. A finished-but-benign verdict
//     keeps the session active: there is nothing to report on a
//     conversation that never turned into a scam.
//   - FINISHED is terminal. Further turns on a finished session still
//     count but never transition again.
func Advance(state *State, isScam, isFinished bool) (transitioned bool) {
	state.TurnCount++
	state.LastTurnAt = time.Now()

	if isScam {
		state.ScamDetected = true
	}

	if state.Finished() {
		return false
	}

	if isFinished && isScam {
		state.Status = StatusFinished
		return true
	}
	return false
}
