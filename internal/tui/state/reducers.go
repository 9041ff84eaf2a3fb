package state

import "jsonview/internal/format"

// New returns the startup state: waiting for input, nothing to export.
func New(indent int) UIState {
	return Waiting(UIState{Session: Session{Indent: indent}})
}

// Waiting resets the status to the default prompt and drops any output.
func Waiting(s UIState) UIState {
	s.Session.LastFormatted = ""
	s.Status = WaitingMessage
	s.Detail = ""
	s.Kind = StatusDefault
	s.Hint = HintWaiting
	return s
}

// ApplyOutcome records the result of a formatting pass.
func ApplyOutcome(s UIState, out format.Outcome) UIState {
	s.Detail = out.Stats.Summary()
	if out.OK() {
		s.Session.LastFormatted = out.Formatted
		s.Status = SuccessMessage
		s.Kind = StatusDefault
		s.Hint = HintSuccess
		return s
	}
	s.Session.LastFormatted = ""
	s.Status = out.Message()
	s.Kind = StatusError
	s.Hint = HintFailure
	return s
}

// SetIndent stores a new indent width. Callers re-run the formatter.
func SetIndent(s UIState, width int) UIState {
	s.Session.Indent = width
	return s
}

// Clear empties the session and returns to the waiting prompt. The indent
// choice is kept because the selector still shows it.
func Clear(s UIState) UIState {
	return Waiting(CancelTransient(s))
}

// SetHint replaces the output hint text.
func SetHint(s UIState, hint string) UIState {
	s.Hint = hint
	return s
}

// CancelTransient forgets any pending reversion. A tick that arrives later
// for the old handle is ignored by Revert.
func CancelTransient(s UIState) UIState {
	s.Pending = 0
	return s
}

// ShowTransient displays msg until the returned handle is reverted. Any
// previously pending handle is replaced, so at most one reversion applies.
func ShowTransient(s UIState, msg string, kind StatusKind) (UIState, TimerHandle) {
	if s.Pending == 0 {
		s.restStatus, s.restKind = s.Status, s.Kind
	}
	s.lastTimer++
	s.Pending = s.lastTimer
	s.Status = msg
	s.Kind = kind
	return s, s.Pending
}

// Revert restores the status that was showing before the transient began,
// the plain success message after a copy, if h is still the pending handle.
// The metrics detail is left as it was.
func Revert(s UIState, h TimerHandle) UIState {
	if h == 0 || h != s.Pending {
		return s
	}
	s.Pending = 0
	s.Status, s.Kind = s.restStatus, s.restKind
	return s
}
