// Package filter computes which nodes of an option tree are shown for a
// search query or for the "show selected" view.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/ruminaider/selectme/internal/optiontree"
)

// Criteria is the active filter. Query and SelectedOnly are exclusive; when
// SelectedOnly is set the query is ignored.
type Criteria struct {
	Query        string
	SelectedOnly bool
}

// Visibility is the derived show/hide flag of every node, indexed by NodeID.
type Visibility struct {
	shown []bool
}

// Visible reports whether the node is shown. Unknown ids are hidden.
func (v Visibility) Visible(id optiontree.NodeID) bool {
	if id < 0 || int(id) >= len(v.shown) {
		return false
	}
	return v.shown[id]
}

// Count returns the number of shown nodes.
func (v Visibility) Count() int {
	n := 0
	for _, s := range v.shown {
		if s {
			n++
		}
	}
	return n
}

// Equal reports whether both visibilities show the same nodes.
func (v Visibility) Equal(o Visibility) bool {
	if len(v.shown) != len(o.shown) {
		return false
	}
	for i := range v.shown {
		if v.shown[i] != o.shown[i] {
			return false
		}
	}
	return true
}

// Matches reports whether label contains query, ignoring case. The empty
// query matches everything.
func Matches(label, query string) bool {
	if query == "" {
		return true
	}
	folder := cases.Fold()
	return strings.Contains(folder.String(label), folder.String(query))
}

// Apply computes the visibility of every node in t.
//
// With a text query an option is shown when its label matches or when it is
// selected. With SelectedOnly an option is shown only when selected. A group
// is shown when at least one descendant option is shown.
func Apply(t *optiontree.Tree, c Criteria) Visibility {
	v := Visibility{shown: make([]bool, t.Len())}
	folder := cases.Fold()
	query := ""
	if !c.SelectedOnly {
		query = folder.String(c.Query)
	}

	var visit func(n optiontree.Node) bool
	visit = func(n optiontree.Node) bool {
		var shown bool
		switch n := n.(type) {
		case *optiontree.Option:
			if c.SelectedOnly {
				shown = n.Selected
			} else {
				shown = n.Selected || query == "" || strings.Contains(folder.String(n.Label), query)
			}
		case *optiontree.Group:
			for _, child := range n.Children {
				if visit(child) {
					shown = true
				}
			}
		}
		v.shown[n.NodeID()] = shown
		return shown
	}
	for _, n := range t.Roots {
		visit(n)
	}
	return v
}
