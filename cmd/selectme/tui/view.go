package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/ruminaider/selectme/internal/selection"
	"github.com/ruminaider/selectme/internal/widget"
)

const (
	minTriggerWidth = 16
	triggerHeight   = 3 // rounded border around one line
	panelInset      = 2 // border plus horizontal padding on each side
	columnGap       = 1
)

// shortcut identifies one entry of the shortcuts row.
type shortcut int

const (
	shortcutSelectAll shortcut = iota
	shortcutUnselectAll
	shortcutShowSelected
)

type shortcutSpan struct {
	kind       shortcut
	label      string
	start, end int // columns within the content area, end exclusive
}

// dropdownLayout is the geometry of an open dropdown, shared by rendering and
// hit testing.
type dropdownLayout struct {
	inner        int // content width inside border and padding
	searchLine   int // content line of the search field, -1 when absent
	shortcutLine int // content line of the shortcuts row, -1 when absent
	firstRow     int // content line of the first option line
	perColumn    int
	colWidth     int
	rows         []widget.Row
	shortcuts    []shortcutSpan
}

func (l dropdownLayout) lines() int {
	n := l.firstRow + l.perColumn
	if l.perColumn == 0 {
		n++ // "no matches" line
	}
	return n
}

// rowAt returns the row index under content line y and column x, or -1.
func (l dropdownLayout) rowAt(x, y int) int {
	line := y - l.firstRow
	if line < 0 || line >= l.perColumn || l.colWidth <= 0 {
		return -1
	}
	col := x / l.colWidth
	idx := col*l.perColumn + line
	if idx < 0 || idx >= len(l.rows) {
		return -1
	}
	return idx
}

// WidgetView draws one widget: a trigger button showing the summary and, when
// open, a dropdown with search field, shortcuts and option columns.
type WidgetView struct {
	w       *widget.Widget
	search  textinput.Model
	width   int // trigger and dropdown width in cells
	focused bool
}

// NewWidgetView wraps w.
func NewWidgetView(w *widget.Widget) WidgetView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = w.Messages().Search
	ti.CharLimit = 64
	return WidgetView{w: w, search: ti, width: minTriggerWidth}
}

// Widget returns the controller behind the view.
func (v WidgetView) Widget() *widget.Widget { return v.w }

// SetWidth resolves the widget's width token against the page width.
func (v *WidgetView) SetWidth(pageWidth int) {
	w := v.w.Width().Resolve(pageWidth)
	if w < minTriggerWidth {
		w = minTriggerWidth
	}
	v.width = w
	v.search.Width = w - panelInset*2 - len(v.search.Prompt) - 1
}

// Width returns the drawn width in cells.
func (v WidgetView) Width() int { return v.width }

// SetFocused marks the view as the one receiving key input.
func (v *WidgetView) SetFocused(f bool) { v.focused = f }

// Update handles a key while this view has focus.
func (v WidgetView) Update(msg tea.KeyMsg, keys keyMap) (WidgetView, tea.Cmd) {
	w := v.w
	if !w.IsOpen() {
		if key.Matches(msg, keys.Enter, keys.Toggle, keys.Down) {
			w.Open()
		}
		return v.sync()
	}

	multiple := w.Mode() == selection.Multiple
	noSearch := !w.Settings().Search
	switch {
	case key.Matches(msg, keys.Dismiss, keys.NextWidget, keys.PrevWidget):
		w.DismissKey()
	case key.Matches(msg, keys.Enter):
		w.Activate()
	case key.Matches(msg, keys.Up), noSearch && key.Matches(msg, keys.ListUp):
		w.MovePrev()
	case key.Matches(msg, keys.Down), noSearch && key.Matches(msg, keys.ListDown):
		w.MoveNext()
	case multiple && key.Matches(msg, keys.SelectAll):
		w.SelectAll()
	case multiple && key.Matches(msg, keys.UnselectAll):
		w.UnselectAll()
	case multiple && key.Matches(msg, keys.ShowSelected):
		w.ShowSelected()
	case w.Focus() == widget.FocusList && key.Matches(msg, keys.Toggle):
		w.ToggleMarked()
	case w.Focus() == widget.FocusList:
		switch msg.Type {
		case tea.KeyRunes:
			w.TypeKey(string(msg.Runes))
		case tea.KeyBackspace:
			w.TypeKey("")
		}
	case w.Focus() == widget.FocusSearch:
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		if q := v.search.Value(); q != w.Query() {
			w.SetQuery(q)
		}
		var syncCmd tea.Cmd
		v, syncCmd = v.sync()
		return v, tea.Batch(cmd, syncCmd)
	}
	return v.sync()
}

// Click handles a left click at (x, y) relative to the dropdown's top-left
// corner.
func (v WidgetView) Click(x, y int) (WidgetView, tea.Cmd) {
	if !v.w.IsOpen() {
		return v, nil
	}
	l := v.layout()
	cx, cy := x-panelInset, y-1
	if cx < 0 || cy < 0 || cx >= l.inner {
		return v, nil
	}
	switch {
	case cy == l.searchLine:
		v.w.EditQuery()
	case cy == l.shortcutLine:
		for _, s := range l.shortcuts {
			if cx >= s.start && cx < s.end {
				v.runShortcut(s.kind)
				break
			}
		}
	default:
		if i := l.rowAt(cx, cy); i >= 0 && l.rows[i].Kind == widget.RowOption {
			v.w.ClickOption(l.rows[i].ID)
		}
	}
	return v.sync()
}

func (v WidgetView) runShortcut(s shortcut) {
	switch s {
	case shortcutSelectAll:
		v.w.SelectAll()
	case shortcutUnselectAll:
		v.w.UnselectAll()
	case shortcutShowSelected:
		v.w.ShowSelected()
	}
}

// sync aligns the search field with the widget's query and focus.
func (v WidgetView) sync() (WidgetView, tea.Cmd) {
	if v.search.Value() != v.w.Query() {
		v.search.SetValue(v.w.Query())
		v.search.CursorEnd()
	}
	if v.w.IsOpen() && v.w.Focus() == widget.FocusSearch {
		if !v.search.Focused() {
			return v, v.search.Focus()
		}
		return v, nil
	}
	v.search.Blur()
	return v, nil
}

func (v WidgetView) layout() dropdownLayout {
	w := v.w
	l := dropdownLayout{
		inner:        v.width - panelInset*2,
		searchLine:   -1,
		shortcutLine: -1,
		rows:         w.Rows(),
	}
	if l.inner < 1 {
		l.inner = 1
	}
	line := 0
	if w.Settings().Search {
		l.searchLine = line
		line++
	}
	if w.Mode() == selection.Multiple {
		l.shortcutLine = line
		line++
		msgs := w.Messages()
		x := 0
		for i, s := range []shortcutSpan{
			{kind: shortcutSelectAll, label: msgs.SelectAll},
			{kind: shortcutUnselectAll, label: msgs.UnselectAll},
			{kind: shortcutShowSelected, label: msgs.ShowSelected},
		} {
			if i > 0 {
				x += runewidth.StringWidth(shortcutSep)
			}
			s.start = x
			x += runewidth.StringWidth(s.label)
			s.end = x
			l.shortcuts = append(l.shortcuts, s)
		}
	}
	l.firstRow = line

	cols := w.Settings().ColumnCount
	if cols < 1 {
		cols = 1
	}
	if n := len(l.rows); n > 0 {
		l.perColumn = (n + cols - 1) / cols
	}
	l.colWidth = l.inner / cols
	if l.colWidth < 1 {
		l.colWidth = 1
	}
	return l
}

const shortcutSep = " · "

// TriggerView renders the closed-state button.
func (v WidgetView) TriggerView() string {
	th := v.w.Theme()
	style := th.Trigger
	if v.focused {
		style = th.TriggerFocused
	}
	arrow := " ▾"
	if v.w.IsOpen() {
		arrow = " ▴"
	}
	textWidth := v.width - panelInset*2 - runewidth.StringWidth(arrow)
	text := runewidth.FillRight(runewidth.Truncate(v.w.Summary(), textWidth, "…"), textWidth)
	if v.w.Summary() == "" {
		text = th.Muted.Render(text)
	}
	return style.Width(v.width - 2).Render(text + arrow)
}

// DropdownView renders the open dropdown, or "" when closed.
func (v WidgetView) DropdownView() string {
	if !v.w.IsOpen() {
		return ""
	}
	th := v.w.Theme()
	l := v.layout()

	var lines []string
	if l.searchLine >= 0 {
		lines = append(lines, v.search.View())
	}
	if l.shortcutLine >= 0 {
		parts := make([]string, 0, len(l.shortcuts))
		for _, s := range l.shortcuts {
			st := th.Shortcut
			if s.kind == shortcutShowSelected && v.w.ShowingSelected() {
				st = th.ShortcutActive
			}
			parts = append(parts, st.Render(s.label))
		}
		lines = append(lines, strings.Join(parts, th.Muted.Render(shortcutSep)))
	}

	if l.perColumn == 0 {
		lines = append(lines, th.Muted.Render("(no matches)"))
	}
	for line := 0; line < l.perColumn; line++ {
		var b strings.Builder
		for col := 0; col*l.perColumn+line < len(l.rows); col++ {
			b.WriteString(v.renderCell(l.rows[col*l.perColumn+line], l.colWidth))
		}
		lines = append(lines, b.String())
	}

	for i, line := range lines {
		lines[i] = ansi.Truncate(line, l.inner, "")
	}
	return th.Panel.Width(v.width - 2).Render(strings.Join(lines, "\n"))
}

// DropdownHeight is the number of terminal lines DropdownView occupies.
func (v WidgetView) DropdownHeight() int {
	if !v.w.IsOpen() {
		return 0
	}
	return v.layout().lines() + 2
}

// renderCell draws one row padded to width cells.
func (v WidgetView) renderCell(r widget.Row, width int) string {
	th := v.w.Theme()
	avail := width - columnGap
	if avail < 1 {
		avail = 1
	}

	marker := "  "
	if r.Marked {
		marker = "> "
	}
	indent := strings.Repeat("  ", r.Depth)

	if r.Kind == widget.RowGroup {
		head := runewidth.Truncate(marker+indent+"── "+r.Label+" ──", avail, "…")
		return th.Header.Render(head) + pad(head, width)
	}

	radio := r.RadioGroup != ""
	box := "[ ]"
	if radio {
		box = "( )"
	}
	boxStyle := th.Unchecked
	if r.Selected {
		box = "[x]"
		if radio {
			box = "(•)"
		}
		boxStyle = th.Checked
	}
	prefix := marker + indent + box + " "
	label := runewidth.Truncate(r.Label, avail-runewidth.StringWidth(prefix), "…")
	plain := prefix + label

	labelStyle := th.Unchecked
	switch {
	case r.Disabled:
		labelStyle = th.Disabled
		boxStyle = th.Disabled
	case r.Marked:
		labelStyle = th.Marked
	}
	return marker + indent + boxStyle.Render(box) + " " + labelStyle.Render(label) + pad(plain, width)
}

// pad returns the spaces needed to widen plain to width cells.
func pad(plain string, width int) string {
	n := width - runewidth.StringWidth(plain)
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
