package native

import (
	"net/url"
)

// Node is one child of a Select or OptGroup. Only *Option and *OptGroup carry
// selectable content; other kinds are kept so consumers can decide what to do
// with them.
type Node interface {
	node()
}

// Option is a single <option> entry.
type Option struct {
	Label    string
	Value    string
	Selected bool
	Disabled bool
}

// OptGroup is an <optgroup> entry. Groups may nest.
type OptGroup struct {
	Label    string
	Children []Node
}

// Separator is a horizontal rule between entries. It has no value.
type Separator struct{}

// Unknown preserves a source entry that was neither an option nor a group.
type Unknown struct {
	Kind string // best-effort description of what the entry looked like
}

func (*Option) node()    {}
func (*OptGroup) node()  {}
func (*Separator) node() {}
func (*Unknown) node()   {}

// Select is the native list-selection control. Its selected set is the
// authoritative value a surrounding form submits.
type Select struct {
	Name     string
	Multiple bool
	Hidden   bool
	Children []Node
}

// Options returns every option in document order, descending into groups.
func (s *Select) Options() []*Option {
	var out []*Option
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case *Option:
				out = append(out, n)
			case *OptGroup:
				walk(n.Children)
			}
		}
	}
	walk(s.Children)
	return out
}

// SetSelected sets the selected flag of opt. Selecting an option of a
// single-valued control deselects every other option, matching how a browser
// treats a non-multiple <select>.
func (s *Select) SetSelected(opt *Option, selected bool) {
	if opt == nil {
		return
	}
	if selected && !s.Multiple {
		for _, o := range s.Options() {
			if o != opt {
				o.Selected = false
			}
		}
	}
	opt.Selected = selected
}

// normalize leaves a single-valued select with at most one selected option,
// the last one in document order, as a browser does.
func (s *Select) normalize() {
	if s.Multiple {
		return
	}
	selected := s.SelectedOptions()
	if len(selected) > 1 {
		s.SetSelected(selected[len(selected)-1], true)
	}
}

// SelectedOptions returns the selected options in document order.
func (s *Select) SelectedOptions() []*Option {
	var out []*Option
	for _, o := range s.Options() {
		if o.Selected {
			out = append(out, o)
		}
	}
	return out
}

// SelectedValues returns the values of the selected options in document order.
func (s *Select) SelectedValues() []string {
	var out []string
	for _, o := range s.SelectedOptions() {
		out = append(out, o.Value)
	}
	return out
}

// Form is an ordered set of selects submitted together.
type Form struct {
	Selects []*Select
}

// Values returns the submitted form values. Disabled options are not
// submitted, like a browser form.
func (f *Form) Values() url.Values {
	v := url.Values{}
	for _, s := range f.Selects {
		if s.Name == "" {
			continue
		}
		for _, o := range s.SelectedOptions() {
			if o.Disabled {
				continue
			}
			v.Add(s.Name, o.Value)
		}
	}
	return v
}

// Lookup returns the select with the given name, or nil.
func (f *Form) Lookup(name string) *Select {
	for _, s := range f.Selects {
		if s.Name == name {
			return s
		}
	}
	return nil
}
