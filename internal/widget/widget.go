// Package widget is the controller of one searchable selection widget. It
// owns the option tree built from a native select, the selection state, the
// active filter and the keyboard cursor, and it keeps the native select in
// step with every change.
//
// A Widget is not safe for concurrent use; the host calls it from a single
// event loop.
package widget

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ruminaider/selectme/internal/config"
	"github.com/ruminaider/selectme/internal/dismiss"
	"github.com/ruminaider/selectme/internal/filter"
	"github.com/ruminaider/selectme/internal/locale"
	"github.com/ruminaider/selectme/internal/native"
	"github.com/ruminaider/selectme/internal/navigation"
	"github.com/ruminaider/selectme/internal/optiontree"
	"github.com/ruminaider/selectme/internal/page"
	"github.com/ruminaider/selectme/internal/selection"
	"github.com/ruminaider/selectme/internal/theme"
)

// DismissListener prefixes the page listener names of the dismissal
// registries. Widgets sharing a page and a registry share one listener.
const DismissListener = "selectme.dismiss"

func listenerName(r *dismiss.Registry) string {
	return fmt.Sprintf("%s/%p", DismissListener, r)
}

// ErrNoSelect is returned by New when no native select is given.
var ErrNoSelect = errors.New("widget needs a native select")

var instances atomic.Int64

// Focus is the part of the widget that receives key input.
type Focus int

const (
	FocusTrigger Focus = iota
	FocusSearch
	FocusList
)

func (f Focus) String() string {
	switch f {
	case FocusSearch:
		return "search"
	case FocusList:
		return "list"
	default:
		return "trigger"
	}
}

type deps struct {
	registry *dismiss.Registry
	page     *page.Page
	themes   *theme.Cache
	logger   *slog.Logger
}

// Option configures the collaborators of a widget.
type Option func(*deps)

// WithRegistry sets the dismissal registry. Defaults to dismiss.Default.
func WithRegistry(r *dismiss.Registry) Option {
	return func(d *deps) { d.registry = r }
}

// WithPage sets the page the widget is rendered into.
func WithPage(p *page.Page) Option {
	return func(d *deps) { d.page = p }
}

// WithThemeCache shares a stylesheet cache between widgets.
func WithThemeCache(c *theme.Cache) Option {
	return func(d *deps) { d.themes = c }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *deps) { d.logger = l }
}

// Widget is one selection widget bound to a native select.
type Widget struct {
	id   int64
	sel  *native.Select
	opts config.Options
	deps deps

	tree     *optiontree.Tree
	state    *selection.State
	diags    []optiontree.Diagnostic
	criteria filter.Criteria
	vis      filter.Visibility
	cursor   navigation.Cursor

	messages   locale.Bundle
	resolution locale.Resolution
	theme      theme.Theme
	width      config.Width

	open       bool
	focus      Focus
	bounds     dismiss.Rect
	wasHidden  bool
	handle     dismiss.Handle
	listener   string
	registered bool
	disposed   bool
}

// New builds a widget for sel. The native select is hidden until Dispose.
func New(sel *native.Select, opts config.Options, options ...Option) (*Widget, error) {
	if sel == nil {
		return nil, ErrNoSelect
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("widget %q: %w", sel.Name, err)
	}
	width, _ := config.ParseWidth(opts.Width)

	d := deps{registry: dismiss.Default}
	for _, o := range options {
		o(&d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.page == nil {
		d.page = page.New()
	}
	if d.themes == nil {
		d.themes = theme.NewCache()
	}

	w := &Widget{
		id:    instances.Add(1),
		sel:   sel,
		opts:  opts,
		deps:  d,
		width: width,
	}
	w.deps.logger = d.logger.With("widget", sel.Name, "instance", w.id)

	w.tree, w.diags = optiontree.Parse(sel.Children)
	for _, diag := range w.diags {
		w.deps.logger.Warn("malformed source entry", "path", diag.Path, "kind", diag.Kind)
	}
	w.state = selection.New(w.tree, sel)

	w.messages, w.resolution = locale.Resolve(locale.Defaults().Merge(opts.LocaleResource), opts.Locale)
	if w.resolution.Fallback() {
		w.deps.logger.Warn("locale not available", "requested", w.resolution.Requested, "used", w.resolution.Used)
	}
	if len(w.resolution.Filled) > 0 {
		w.deps.logger.Info("locale bundle incomplete", "locale", w.resolution.Used, "filled", w.resolution.Filled)
	}

	var err error
	w.theme, err = d.themes.Get(opts.CSSFile)
	if err != nil {
		w.deps.logger.Warn("stylesheet not loaded, using default theme", "path", opts.CSSFile, "error", err)
	}
	d.page.AttachStylesheet(opts.CSSFile)

	registry := d.registry
	w.listener = listenerName(registry)
	d.page.Listen(w.listener, func(p dismiss.Point) { registry.PointerDown(p) })

	w.wasHidden = sel.Hidden
	sel.Hidden = true
	w.handle = registry.Register(w)
	w.registered = true

	w.refilter()
	w.notify("load", func() {
		if opts.OnLoad != nil {
			opts.OnLoad(sel.Name)
		}
	})
	return w, nil
}

// ID returns the instance number, unique within the process.
func (w *Widget) ID() int64 { return w.id }

// Name returns the name of the native select.
func (w *Widget) Name() string { return w.sel.Name }

// RadioGroup is the group name shared by the radio inputs of a Single mode
// widget.
func (w *Widget) RadioGroup() string { return fmt.Sprintf("selectme-%d", w.id) }

// Open shows the dropdown. Focus moves to the search field when search is
// enabled, otherwise to the option list.
func (w *Widget) Open() {
	if w.disposed || w.open {
		return
	}
	w.open = true
	if w.opts.Search {
		w.focus = FocusSearch
	} else {
		w.focus = FocusList
	}
	w.notify("dropdown open", func() {
		if w.opts.OnDropdownOpen != nil {
			w.opts.OnDropdownOpen(w.sel.Name)
		}
	})
}

// Close hides the dropdown and returns focus to the trigger.
func (w *Widget) Close() {
	if !w.open {
		return
	}
	w.open = false
	w.focus = FocusTrigger
	w.notify("dropdown close", func() {
		if w.opts.OnDropdownClose != nil {
			w.opts.OnDropdownClose(w.sel.Name)
		}
	})
}

// Toggle opens a closed dropdown and closes an open one, like a click on the
// trigger.
func (w *Widget) Toggle() {
	if w.open {
		w.Close()
	} else {
		w.Open()
	}
}

// IsOpen reports whether the dropdown is shown.
func (w *Widget) IsOpen() bool { return w.open }

// Disposed reports whether Dispose has been called.
func (w *Widget) Disposed() bool { return w.disposed }

// Dispose removes the widget from the dismissal registry, releases its page
// listener and restores the native select's visibility. Calling it again does
// nothing.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	w.disposed = true
	if w.registered {
		w.deps.registry.Unregister(w.handle)
		w.deps.page.Unlisten(w.listener)
		w.registered = false
	}
	w.open = false
	w.focus = FocusTrigger
	w.bounds = dismiss.Rect{}
	w.sel.Hidden = w.wasHidden
	w.deps.logger.Debug("widget disposed")
}

// SetBounds records where the widget was last drawn.
func (w *Widget) SetBounds(r dismiss.Rect) { w.bounds = r }

// Bounds returns the rectangle set by SetBounds.
func (w *Widget) Bounds() dismiss.Rect { return w.bounds }

// Contains reports whether p is inside the widget's drawn bounds.
func (w *Widget) Contains(p dismiss.Point) bool { return w.bounds.Contains(p) }

// Focus returns the focused part of the widget.
func (w *Widget) Focus() Focus { return w.focus }

// EditQuery moves focus to the search field of an open dropdown, keeping the
// current query. It reports whether focus moved.
func (w *Widget) EditQuery() bool {
	if !w.open || !w.opts.Search {
		return false
	}
	w.cursor.Clear()
	w.focus = FocusSearch
	return true
}

// SetQuery replaces the search text and re-applies the filter. It leaves the
// show-selected view.
func (w *Widget) SetQuery(q string) {
	if w.disposed {
		return
	}
	w.criteria = filter.Criteria{Query: q}
	w.refilter()
	w.notify("search", func() {
		if w.opts.OnSearch != nil {
			w.opts.OnSearch(w.sel.Name, q)
		}
	})
}

// Query returns the active search text.
func (w *Widget) Query() string { return w.criteria.Query }

// ShowSelected switches to the view that lists only selected options. The
// search text is cleared.
func (w *Widget) ShowSelected() {
	if w.disposed {
		return
	}
	w.criteria = filter.Criteria{SelectedOnly: true}
	w.refilter()
}

// ShowingSelected reports whether the show-selected view is active.
func (w *Widget) ShowingSelected() bool { return w.criteria.SelectedOnly }

// SelectAll checks every visible option.
func (w *Widget) SelectAll() {
	if w.disposed {
		return
	}
	w.changed(w.state.SelectAll(w.vis.Visible))
}

// UnselectAll clears every visible option.
func (w *Widget) UnselectAll() {
	if w.disposed {
		return
	}
	w.changed(w.state.UnselectAll(w.vis.Visible))
}

// ToggleOption sets the checked flag of the option with the given id.
func (w *Widget) ToggleOption(id optiontree.NodeID, checked bool) error {
	if w.disposed {
		return nil
	}
	changed, err := w.state.Toggle(id, checked)
	if err != nil {
		return err
	}
	w.changed(changed)
	return nil
}

// ToggleMarked flips the marked option the way a click on its input would.
// In Single mode a checked radio stays checked.
func (w *Widget) ToggleMarked() {
	id, ok := w.cursor.Marked()
	if !ok {
		return
	}
	w.activateOption(id)
}

// ClickOption marks the option and flips it, like a click on its label.
func (w *Widget) ClickOption(id optiontree.NodeID) {
	o := w.tree.Option(id)
	if w.disposed || o == nil || o.Disabled || !w.vis.Visible(id) {
		return
	}
	w.cursor.Mark(id)
	w.focus = FocusList
	w.activateOption(id)
}

func (w *Widget) activateOption(id optiontree.NodeID) {
	o := w.tree.Option(id)
	if o == nil || o.Disabled {
		return
	}
	checked := !o.Selected
	if w.state.Mode() == selection.Single {
		checked = true
	}
	if err := w.ToggleOption(id, checked); err != nil {
		w.deps.logger.Debug("toggle ignored", "option", o.Value, "error", err)
	}
}

// MoveNext marks the next visible option, wrapping around.
func (w *Widget) MoveNext() {
	if !w.open {
		return
	}
	seq := w.sequence()
	w.cursor.Next(seq)
	if len(seq) > 0 {
		w.focus = FocusList
	}
}

// MovePrev marks the previous visible option, wrapping around.
func (w *Widget) MovePrev() {
	if !w.open {
		return
	}
	seq := w.sequence()
	w.cursor.Prev(seq)
	if len(seq) > 0 {
		w.focus = FocusList
	}
}

// Marked returns the marked option, if any.
func (w *Widget) Marked() (optiontree.NodeID, bool) { return w.cursor.Marked() }

// Activate handles the enter key: an open dropdown is closed.
func (w *Widget) Activate() {
	if w.open {
		w.Close()
	}
}

// DismissKey handles escape and tab: the dropdown closes and the trigger
// takes focus whatever the current mark.
func (w *Widget) DismissKey() {
	w.Close()
	w.focus = FocusTrigger
}

// TypeKey handles a printable key typed while the list has focus. The mark is
// cleared, the search field takes focus with an empty query and then receives
// the key. It reports whether the key was consumed; with search disabled it
// never is.
func (w *Widget) TypeKey(text string) bool {
	if w.disposed || !w.open || !w.opts.Search {
		return false
	}
	w.cursor.Clear()
	w.focus = FocusSearch
	w.SetQuery(text)
	return true
}

// Summary returns the closed-state text.
func (w *Widget) Summary() string {
	return w.state.SummaryText(w.messages, w.opts.SummaryFormatter)
}

// Mode returns the selection mode.
func (w *Widget) Mode() selection.Mode { return w.state.Mode() }

// Diagnostics returns the source entries skipped while building the tree.
func (w *Widget) Diagnostics() []optiontree.Diagnostic { return w.diags }

// Messages returns the resolved message bundle.
func (w *Widget) Messages() locale.Bundle { return w.messages }

// Locale reports how the message bundle was resolved.
func (w *Widget) Locale() locale.Resolution { return w.resolution }

// Theme returns the styles loaded from the widget's stylesheet.
func (w *Widget) Theme() theme.Theme { return w.theme }

// Settings returns the construction settings.
func (w *Widget) Settings() config.Settings { return w.opts.Settings }

// Width returns the parsed width token.
func (w *Widget) Width() config.Width { return w.width }

// Tree returns the option tree.
func (w *Widget) Tree() *optiontree.Tree { return w.tree }

// Visible reports whether the node is shown under the active filter.
func (w *Widget) Visible(id optiontree.NodeID) bool { return w.vis.Visible(id) }

// SelectedCount returns the number of checked options.
func (w *Widget) SelectedCount() int { return len(w.state.Selected()) }

// Total returns the number of options.
func (w *Widget) Total() int { return w.tree.OptionCount() }

// Select returns the native select the widget mirrors into.
func (w *Widget) Select() *native.Select { return w.sel }

func (w *Widget) changed(options []*optiontree.Option) {
	if len(options) == 0 {
		return
	}
	w.refilter()
	for _, o := range options {
		w.notify("option value changed", func() {
			if w.opts.OnOptionValueChanged != nil {
				w.opts.OnOptionValueChanged(w.sel.Name, o)
			}
		})
	}
}

func (w *Widget) refilter() {
	w.vis = filter.Apply(w.tree, w.criteria)
	w.cursor.Reconcile(w.sequence())
}

// sequence is the navigable options: visible and enabled, in document order.
func (w *Widget) sequence() []optiontree.NodeID {
	var seq []optiontree.NodeID
	for _, o := range w.tree.Options() {
		if !o.Disabled && w.vis.Visible(o.ID) {
			seq = append(seq, o.ID)
		}
	}
	return seq
}

// notify runs a host callback. A panic is logged and swallowed.
func (w *Widget) notify(event string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.deps.logger.Error("callback panicked", "event", event, "panic", r)
		}
	}()
	fn()
}
