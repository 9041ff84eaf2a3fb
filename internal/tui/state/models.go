package state

// StatusKind marks the status line as informational or as an error.
type StatusKind int

const (
	StatusDefault StatusKind = iota
	StatusError
)

// Fixed user-facing messages.
const (
	WaitingMessage = "Waiting for JSON…"
	SuccessMessage = "JSON formatted successfully"
	CopiedMessage  = "Copied formatted JSON to clipboard"

	HintWaiting = "Paste JSON to see formatted output instantly."
	HintSuccess = "Output refreshed automatically."
	HintFailure = "Fix the JSON above and the output will refresh."
)

// Session is the controller's record of what the user chose and what was
// last produced. LastFormatted is non-empty only after a successful,
// non-empty format.
type Session struct {
	Indent        int
	LastFormatted string
}

// TimerHandle identifies one scheduled reversion of a transient status.
// The zero value means nothing is pending.
type TimerHandle uint64

// UIState holds everything the status line, hint and action chips render.
type UIState struct {
	Session Session

	Status string
	Detail string // metrics summary, e.g. "13 B • <1 ms"
	Kind   StatusKind
	Hint   string

	// Pending is the transient status awaiting reversion, if any.
	Pending   TimerHandle
	lastTimer TimerHandle

	// status shown before the first pending transient
	restStatus string
	restKind   StatusKind
}

// CanExport reports whether copy and download are available.
func (s UIState) CanExport() bool {
	return s.Session.LastFormatted != ""
}
