package ui

// StatusMsg carries a transient toast-style confirmation line that the
// root model shows in the status bar.
type StatusMsg struct {
	Text string
}
