package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruminaider/selectme/internal/config"
	"github.com/ruminaider/selectme/internal/dismiss"
	"github.com/ruminaider/selectme/internal/logging"
	"github.com/ruminaider/selectme/internal/native"
	"github.com/ruminaider/selectme/internal/widget"
)

func testForm() *native.Form {
	return &native.Form{Selects: []*native.Select{
		{
			Name:     "fruit",
			Multiple: true,
			Children: []native.Node{
				&native.Option{Label: "Apple", Value: "apple"},
				&native.OptGroup{Label: "Citrus", Children: []native.Node{
					&native.Option{Label: "Orange", Value: "orange"},
					&native.Option{Label: "Lemon", Value: "lemon", Disabled: true},
					&native.OptGroup{Label: "Limes", Children: []native.Node{
						&native.Option{Label: "Key Lime", Value: "key-lime"},
					}},
				}},
				&native.Option{Label: "Banana", Value: "banana"},
			},
		},
		{
			Name: "size",
			Children: []native.Node{
				&native.Option{Label: "Small", Value: "s"},
				&native.Option{Label: "Medium", Value: "m", Selected: true},
				&native.Option{Label: "Large", Value: "l"},
			},
		},
	}}
}

func testOptions() config.Options {
	o := config.DefaultOptions()
	o.CSSFile = ""
	return o
}

func newTestModel(t *testing.T, opts config.Options) (Model, *dismiss.Registry) {
	t.Helper()
	reg := dismiss.NewRegistry()
	m, err := NewModel(testForm(), opts,
		widget.WithRegistry(reg),
		widget.WithLogger(logging.Discard()),
	)
	require.NoError(t, err)
	m = send(m, tea.WindowSizeMsg{Width: 60, Height: 30})
	return m, reg
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = send(m, keyRunes(string(r)))
	}
	return m
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyUp       = tea.KeyMsg{Type: tea.KeyUp}
	keySpace    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func TestNewModel_HidesSelects(t *testing.T) {
	m, reg := newTestModel(t, testOptions())
	require.Len(t, m.Widgets(), 2)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 1, m.Page().ListenerCount())
	for _, w := range m.Widgets() {
		assert.True(t, w.Select().Hidden)
	}

	m.Dispose()
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0, m.Page().ListenerCount())
	for _, w := range m.Widgets() {
		assert.False(t, w.Select().Hidden)
	}
}

func TestNewModel_InvalidOptions(t *testing.T) {
	o := testOptions()
	o.Width = "wide"
	_, err := NewModel(testForm(), o, widget.WithRegistry(dismiss.NewRegistry()))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestView_Closed(t *testing.T) {
	m, _ := newTestModel(t, testOptions())
	view := m.View()
	assert.Contains(t, view, "fruit")
	assert.Contains(t, view, "None selected")
	assert.Contains(t, view, "Medium")
	assert.Contains(t, view, "fruit · 0/5 selected")
	assert.NotContains(t, view, "Select all")
}

func TestView_BeforeResize(t *testing.T) {
	m, err := NewModel(testForm(), testOptions(), widget.WithRegistry(dismiss.NewRegistry()))
	require.NoError(t, err)
	assert.Equal(t, "Loading...", m.View())
}

func TestKeyboard_SearchMarkToggleSubmit(t *testing.T) {
	m, _ := newTestModel(t, testOptions())
	fruit := m.Widgets()[0]

	m = send(m, keyEnter)
	require.True(t, fruit.IsOpen())
	assert.Equal(t, widget.FocusSearch, fruit.Focus())

	m = typeText(m, "lime")
	assert.Equal(t, "lime", fruit.Query())
	view := m.View()
	assert.Contains(t, view, "Key Lime")
	assert.NotContains(t, view, "Apple")

	m = send(m, keyDown)
	assert.Equal(t, widget.FocusList, fruit.Focus())
	m = send(m, keySpace)
	assert.Contains(t, m.View(), "[x] Key Lime")
	assert.Equal(t, "1 from 5", fruit.Summary())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	require.NotNil(t, cmd)
	m = send(m, cmd())
	assert.True(t, m.Submitted)
	assert.Equal(t, []string{"key-lime"}, m.Values()["fruit"])
	assert.Equal(t, []string{"m"}, m.Values()["size"])
}

func TestKeyboard_TypingFromListResetsQuery(t *testing.T) {
	m, _ := newTestModel(t, testOptions())
	fruit := m.Widgets()[0]

	m = send(m, keyEnter)
	m = typeText(m, "an")
	m = send(m, keyDown)
	_, marked := fruit.Marked()
	require.True(t, marked)

	m = send(m, keyRunes("b"))
	_, marked = fruit.Marked()
	assert.False(t, marked)
	assert.Equal(t, "b", fruit.Query())
	assert.Equal(t, widget.FocusSearch, fruit.Focus())

	// The search field keeps receiving text afterwards.
	m = typeText(m, "an")
	assert.Equal(t, "ban", fruit.Query())
}

func TestKeyboard_Shortcuts(t *testing.T) {
	m, _ := newTestModel(t, testOptions())
	fruit := m.Widgets()[0]
	m = send(m, keyEnter)

	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true})
	assert.Equal(t, []string{"apple", "orange", "key-lime", "banana"}, fruit.Select().SelectedValues())

	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}, Alt: true})
	assert.Empty(t, fruit.Select().SelectedValues())

	m = send(m, keyDown)
	m = send(m, keySpace)
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}, Alt: true})
	assert.True(t, fruit.ShowingSelected())
	view := m.View()
	assert.Contains(t, view, "Apple")
	assert.NotContains(t, view, "Banana")
}

func TestKeyboard_DismissAndTabbing(t *testing.T) {
	m, _ := newTestModel(t, testOptions())
	fruit, size := m.Widgets()[0], m.Widgets()[1]

	m = send(m, keyEnter)
	m = send(m, keyTab)
	assert.False(t, fruit.IsOpen())
	assert.Equal(t, 0, m.Focused())

	m = send(m, keyTab)
	assert.Equal(t, 1, m.Focused())
	assert.Contains(t, m.View(), "size · 1/3 selected")

	m = send(m, keyShiftTab)
	assert.Equal(t, 0, m.Focused())
	m = send(m, keyShiftTab)
	assert.Equal(t, 1, m.Focused())

	m = send(m, keyDown)
	assert.True(t, size.IsOpen())
	m = send(m, keyEsc)
	assert.False(t, size.IsOpen())
	assert.Equal(t, widget.FocusTrigger, size.Focus())
}

func TestKeyboard_SingleSelectRadio(t *testing.T) {
	m, _ := newTestModel(t, testOptions())
	size := m.Widgets()[1]

	m = send(m, keyTab)
	m = send(m, keyEnter)
	view := m.View()
	assert.Contains(t, view, "(•) Medium")
	assert.Contains(t, view, "( ) Small")
	assert.NotContains(t, view, "Select all")

	m = send(m, keyUp)
	m = send(m, keyUp)
	m = send(m, keySpace)
	assert.Equal(t, []string{"l"}, size.Select().SelectedValues())
	assert.Equal(t, "Large", size.Summary())

	m = send(m, keyEnter)
	assert.False(t, size.IsOpen())
}

func TestKeyboard_SearchDisabled(t *testing.T) {
	o := testOptions()
	o.Search = false
	m, _ := newTestModel(t, o)
	fruit := m.Widgets()[0]

	m = send(m, keyEnter)
	assert.Equal(t, widget.FocusList, fruit.Focus())
	m = send(m, keyDown)
	m = send(m, keyRunes("x"))
	assert.Equal(t, "", fruit.Query())
	_, marked := fruit.Marked()
	assert.True(t, marked)
	assert.NotContains(t, m.View(), "Search")

	// Letters navigate instead.
	first, _ := fruit.Marked()
	m = send(m, keyRunes("j"))
	next, _ := fruit.Marked()
	assert.NotEqual(t, first, next)
	m = send(m, keyRunes("k"))
	back, _ := fruit.Marked()
	assert.Equal(t, first, back)
}

func TestMouse_TriggerOptionsAndShortcuts(t *testing.T) {
	m, _ := newTestModel(t, testOptions())
	fruit := m.Widgets()[0]

	// fruit's trigger spans rows 1-3.
	m = send(m, click(3, 2))
	require.True(t, fruit.IsOpen())

	// Dropdown: border at 4, search at 5, shortcuts at 6, options from 7.
	m = send(m, click(4, 9))
	assert.Equal(t, []string{"orange"}, fruit.Select().SelectedValues())
	id, ok := fruit.Marked()
	require.True(t, ok)
	assert.Equal(t, fruit.Tree().FindValue("orange").ID, id)

	// Group headers are not clickable.
	m = send(m, click(4, 8))
	assert.Equal(t, []string{"orange"}, fruit.Select().SelectedValues())

	m = send(m, click(2, 6))
	assert.Equal(t, []string{"apple", "orange", "key-lime", "banana"}, fruit.Select().SelectedValues())

	// Clicking the search line focuses it.
	m = send(m, click(4, 5))
	assert.Equal(t, widget.FocusSearch, fruit.Focus())

	// Clicking the trigger again closes.
	m = send(m, click(3, 2))
	assert.False(t, fruit.IsOpen())
}

func TestMouse_OutsideClickDismisses(t *testing.T) {
	m, _ := newTestModel(t, testOptions())
	fruit, size := m.Widgets()[0], m.Widgets()[1]

	// size's trigger spans rows 6-8.
	m = send(m, click(3, 7))
	require.True(t, size.IsOpen())
	assert.Equal(t, 1, m.Focused())

	m = send(m, click(3, 2))
	assert.False(t, size.IsOpen())
	assert.True(t, fruit.IsOpen())
	assert.Equal(t, 0, m.Focused())

	m = send(m, click(59, 28))
	assert.False(t, fruit.IsOpen())
}

func TestMouse_IgnoresNonPress(t *testing.T) {
	m, _ := newTestModel(t, testOptions())
	m = send(m, tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.False(t, m.Widgets()[0].IsOpen())
}

func TestCancel(t *testing.T) {
	m, _ := newTestModel(t, testOptions())
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)
	require.NotNil(t, cmd)
	m = send(m, cmd())
	assert.False(t, m.Submitted)
	assert.Equal(t, "", m.View())
}

func TestView_Columns(t *testing.T) {
	o := testOptions()
	o.ColumnCount = 2
	m, _ := newTestModel(t, o)
	m = send(m, keyEnter)

	view := m.View()
	// Seven rows fill two columns of four lines, top to bottom.
	assert.Regexp(t, `Apple\s+── Limes ──`, view)
	assert.Regexp(t, `── Citrus ──\s+\[ \] Key Lime`, view)
}
