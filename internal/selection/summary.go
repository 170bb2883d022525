package selection

import (
	"strconv"
	"sync"

	"github.com/ruminaider/selectme/internal/locale"
)

// Formatter builds the closed-state summary text from the selected labels in
// document order, the total option count, the active message bundle and the
// selection mode.
type Formatter func(selectedLabels []string, total int, messages locale.Bundle, multiple bool) string

// DefaultFormatter renders "<count> <from> <total>" or the "none" message in
// Multiple mode, and the selected label in Single mode.
func DefaultFormatter(selectedLabels []string, total int, messages locale.Bundle, multiple bool) string {
	if multiple {
		if len(selectedLabels) > 0 {
			return strconv.Itoa(len(selectedLabels)) + " " + messages.From + " " + strconv.Itoa(total)
		}
		return messages.None
	}
	if len(selectedLabels) == 0 {
		return ""
	}
	return selectedLabels[0]
}

var (
	formatterMu sync.RWMutex
	formatter   Formatter = DefaultFormatter
)

// SetSummaryFormatter replaces the process-wide formatter. Passing nil
// restores DefaultFormatter.
func SetSummaryFormatter(f Formatter) {
	formatterMu.Lock()
	defer formatterMu.Unlock()
	if f == nil {
		f = DefaultFormatter
	}
	formatter = f
}

// SummaryFormatter returns the process-wide formatter.
func SummaryFormatter() Formatter {
	formatterMu.RLock()
	defer formatterMu.RUnlock()
	return formatter
}

// SummaryText formats the current selection. A nil f uses the process-wide
// formatter.
func (s *State) SummaryText(messages locale.Bundle, f Formatter) string {
	if f == nil {
		f = SummaryFormatter()
	}
	return f(s.SelectedLabels(), s.tree.OptionCount(), messages, s.mode == Multiple)
}
