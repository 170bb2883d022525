package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruminaider/selectme/internal/config"
	"github.com/ruminaider/selectme/internal/dismiss"
	"github.com/ruminaider/selectme/internal/native"
	"github.com/ruminaider/selectme/internal/page"
	"github.com/ruminaider/selectme/internal/widget"
)

// Each widget occupies a label line, the trigger and one blank line.
const blockHeight = 1 + triggerHeight + 1

// Model is the root bubbletea model: a vertical form of selection widgets
// sharing one page.
type Model struct {
	form  *native.Form
	page  *page.Page
	views []WidgetView
	keys  keyMap

	statusBar StatusBar

	focus         int
	width, height int
	ready         bool // set after first WindowSizeMsg
	quitting      bool

	// Submitted is set when the user confirms the form with ctrl+s.
	Submitted bool
}

// NewModel builds one widget per select of form. Every widget is rendered
// into the same page, so stylesheets and the dismissal listener are shared.
func NewModel(form *native.Form, opts config.Options, deps ...widget.Option) (Model, error) {
	p := page.New()
	all := append(append([]widget.Option(nil), deps...), widget.WithPage(p))

	m := Model{
		form:      form,
		page:      p,
		keys:      defaultKeyMap(),
		statusBar: NewStatusBar(),
	}
	for _, sel := range form.Selects {
		w, err := widget.New(sel, opts, all...)
		if err != nil {
			m.Dispose()
			return Model{}, fmt.Errorf("building widget %q: %w", sel.Name, err)
		}
		m.views = append(m.views, NewWidgetView(w))
	}
	m.relayout()
	return m, nil
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update satisfies tea.Model. Keys go to the focused widget; mouse presses go
// through the page first so open dropdowns elsewhere are dismissed.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
	case SubmitMsg:
		m.Submitted = true
		m.quitting = true
		return m, tea.Quit
	case CancelMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	}

	m.relayout()
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, func() tea.Msg { return SubmitMsg{} }
	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg { return CancelMsg{} }
	}
	if len(m.views) == 0 {
		return m, nil
	}

	v := m.views[m.focus]
	if !v.Widget().IsOpen() {
		switch {
		case key.Matches(msg, m.keys.NextWidget):
			m.focus = (m.focus + 1) % len(m.views)
			return m, nil
		case key.Matches(msg, m.keys.PrevWidget):
			m.focus = (m.focus - 1 + len(m.views)) % len(m.views)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.views[m.focus], cmd = v.Update(msg, m.keys)
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	pt := dismiss.Point{X: msg.X, Y: msg.Y}
	m.page.PointerDown(pt)

	// An open dropdown is drawn over the widgets below it, so it wins.
	for i, v := range m.views {
		if !v.Widget().IsOpen() {
			continue
		}
		r := m.dropdownRect(i)
		if r.Contains(pt) {
			m.focus = i
			var cmd tea.Cmd
			m.views[i], cmd = v.Click(pt.X-r.X, pt.Y-r.Y)
			return m, cmd
		}
	}

	for i, v := range m.views {
		if m.triggerRect(i).Contains(pt) {
			m.focus = i
			v.Widget().Toggle()
			var cmd tea.Cmd
			m.views[i], cmd = v.sync()
			return m, cmd
		}
	}
	return m, nil
}

// View satisfies tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	for i, v := range m.views {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(v.Widget().Theme().Label.Render(v.Widget().Name()))
		b.WriteString("\n")
		b.WriteString(v.TriggerView())
	}
	body := b.String()
	for i, v := range m.views {
		if v.Widget().IsOpen() {
			r := m.dropdownRect(i)
			body = Composite(body, v.DropdownView(), r.Y, r.X)
		}
	}

	mainHeight := m.height - 1
	if mainHeight < 1 {
		mainHeight = 1
	}
	body = clampHeight(PadHeight(body, mainHeight), mainHeight)
	return body + "\n" + m.statusBar.View()
}

// Dispose releases every widget and restores the native selects.
func (m Model) Dispose() {
	for _, v := range m.views {
		v.Widget().Dispose()
	}
}

// Widgets returns the widgets in form order.
func (m Model) Widgets() []*widget.Widget {
	out := make([]*widget.Widget, 0, len(m.views))
	for _, v := range m.views {
		out = append(out, v.Widget())
	}
	return out
}

// Page returns the page the widgets are rendered into.
func (m Model) Page() *page.Page { return m.page }

// Focused returns the index of the focused widget.
func (m Model) Focused() int { return m.focus }

// Values returns the form values as they would be submitted.
func (m Model) Values() url.Values {
	return m.form.Values()
}

func (m Model) triggerRect(i int) dismiss.Rect {
	return dismiss.Rect{X: 0, Y: i*blockHeight + 1, W: m.views[i].Width(), H: triggerHeight}
}

func (m Model) dropdownRect(i int) dismiss.Rect {
	t := m.triggerRect(i)
	return dismiss.Rect{X: t.X, Y: t.Y + t.H, W: t.W, H: m.views[i].DropdownHeight()}
}

// relayout pushes sizes, focus and bounds into the views and refreshes the
// status bar.
func (m *Model) relayout() {
	for i := range m.views {
		m.views[i].SetWidth(m.width)
		m.views[i].SetFocused(i == m.focus)
		m.views[i], _ = m.views[i].sync()
		m.views[i].Widget().SetBounds(m.triggerRect(i).Union(m.dropdownRect(i)))
	}
	m.statusBar.SetWidth(m.width)
	if len(m.views) == 0 {
		return
	}
	w := m.views[m.focus].Widget()
	m.statusBar.Update(SelectionSummary{
		Name:     w.Name(),
		Selected: w.SelectedCount(),
		Total:    w.Total(),
	}, m.keys.statusHints(w.IsOpen()), w.Theme())
}

// clampHeight truncates s to at most maxLines lines.
func clampHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}
