package tui

// SelectionSummary carries counts for the status bar.
type SelectionSummary struct {
	Name     string // native select name of the focused widget
	Selected int
	Total    int
}

// SubmitMsg asks the form to finish and keep the current selection.
type SubmitMsg struct{}

// CancelMsg asks the form to finish without submitting.
type CancelMsg struct{}
