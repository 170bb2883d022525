// Package selection tracks which options of a tree are checked and keeps the
// native control's selected set in step with it.
package selection

import (
	"errors"
	"fmt"

	"github.com/ruminaider/selectme/internal/native"
	"github.com/ruminaider/selectme/internal/optiontree"
)

// Mode is fixed at construction from the native control's multiplicity.
type Mode int

const (
	Single Mode = iota
	Multiple
)

func (m Mode) String() string {
	if m == Multiple {
		return "multiple"
	}
	return "single"
}

var (
	// ErrUnknownOption is returned when an id does not name an option.
	ErrUnknownOption = errors.New("unknown option")

	// ErrDisabled is returned when toggling a disabled option.
	ErrDisabled = errors.New("option is disabled")
)

// Scope limits bulk operations to a subset of options.
type Scope func(id optiontree.NodeID) bool

// ScopeAll includes every option.
func ScopeAll(optiontree.NodeID) bool { return true }

// State is the selection state of one widget.
type State struct {
	tree *optiontree.Tree
	sel  *native.Select
	mode Mode
}

// New creates the selection state for tree, mirroring into sel. In Single
// mode a source with several pre-selected options keeps only the last one,
// the way a browser resolves it.
func New(tree *optiontree.Tree, sel *native.Select) *State {
	s := &State{tree: tree, sel: sel, mode: Single}
	if sel != nil && sel.Multiple {
		s.mode = Multiple
	}
	if s.mode == Single {
		var last *optiontree.Option
		for _, o := range tree.Options() {
			if o.Selected {
				last = o
			}
		}
		for _, o := range tree.Options() {
			if o.Selected && o != last {
				s.set(o, false)
			}
		}
	}
	return s
}

// Mode returns the selection mode.
func (s *State) Mode() Mode { return s.mode }

// Tree returns the option tree the state operates on.
func (s *State) Tree() *optiontree.Tree { return s.tree }

// Toggle sets the checked flag of one option and returns every option whose
// flag changed. In Single mode checking an option clears all others first.
// Unchecking the only selected option is allowed.
func (s *State) Toggle(id optiontree.NodeID, checked bool) ([]*optiontree.Option, error) {
	target := s.tree.Option(id)
	if target == nil {
		return nil, fmt.Errorf("toggle %d: %w", id, ErrUnknownOption)
	}
	if target.Disabled {
		return nil, fmt.Errorf("toggle %q: %w", target.Value, ErrDisabled)
	}

	var changed []*optiontree.Option
	if checked && s.mode == Single {
		for _, o := range s.tree.Options() {
			if o != target && o.Selected {
				s.set(o, false)
				changed = append(changed, o)
			}
		}
	}
	if target.Selected != checked {
		changed = append(changed, target)
	}
	s.set(target, checked)
	return changed, nil
}

// SelectAll checks every enabled option in scope. In Single mode only the
// first enabled option in scope is checked.
func (s *State) SelectAll(scope Scope) []*optiontree.Option {
	if scope == nil {
		scope = ScopeAll
	}
	if s.mode == Single {
		for _, o := range s.tree.Options() {
			if !o.Disabled && scope(o.ID) {
				changed, _ := s.Toggle(o.ID, true)
				return changed
			}
		}
		return nil
	}
	var changed []*optiontree.Option
	for _, o := range s.tree.Options() {
		if o.Disabled || !scope(o.ID) || o.Selected {
			continue
		}
		s.set(o, true)
		changed = append(changed, o)
	}
	return changed
}

// UnselectAll clears every enabled option in scope.
func (s *State) UnselectAll(scope Scope) []*optiontree.Option {
	if scope == nil {
		scope = ScopeAll
	}
	var changed []*optiontree.Option
	for _, o := range s.tree.Options() {
		if o.Disabled || !scope(o.ID) || !o.Selected {
			continue
		}
		s.set(o, false)
		changed = append(changed, o)
	}
	return changed
}

// Selected returns the checked options in document order.
func (s *State) Selected() []*optiontree.Option { return s.tree.Selected() }

// SelectedLabels returns the labels of the checked options in document order.
func (s *State) SelectedLabels() []string {
	sel := s.tree.Selected()
	out := make([]string, 0, len(sel))
	for _, o := range sel {
		out = append(out, o.Label)
	}
	return out
}

func (s *State) set(o *optiontree.Option, checked bool) {
	o.Selected = checked
	if s.sel != nil && o.Native() != nil {
		s.sel.SetSelected(o.Native(), checked)
	}
}
