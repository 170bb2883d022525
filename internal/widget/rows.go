package widget

import (
	"github.com/ruminaider/selectme/internal/optiontree"
	"github.com/ruminaider/selectme/internal/selection"
)

// RowKind distinguishes group headers from option rows.
type RowKind int

const (
	RowOption RowKind = iota
	RowGroup
)

// Row is one visible line of the dropdown list.
type Row struct {
	Kind     RowKind
	ID       optiontree.NodeID
	Label    string
	Value    string
	Depth    int
	Selected bool
	Disabled bool
	Marked   bool

	// RadioGroup names the radio set of a Single mode option row. It is
	// empty for checkbox rows and group headers.
	RadioGroup string
}

// Rows flattens the visible part of the tree in document order. Hidden groups
// are skipped together with their children.
func (w *Widget) Rows() []Row {
	marked, hasMark := w.cursor.Marked()
	var radio string
	if w.state.Mode() == selection.Single {
		radio = w.RadioGroup()
	}
	var rows []Row
	w.tree.Walk(func(n optiontree.Node) bool {
		if !w.vis.Visible(n.NodeID()) {
			return false
		}
		row := Row{
			ID:    n.NodeID(),
			Label: n.NodeLabel(),
			Depth: optiontree.Depth(n),
		}
		switch n := n.(type) {
		case *optiontree.Group:
			row.Kind = RowGroup
		case *optiontree.Option:
			row.Kind = RowOption
			row.Value = n.Value
			row.Selected = n.Selected
			row.Disabled = n.Disabled
			row.Marked = hasMark && marked == n.ID
			row.RadioGroup = radio
		}
		rows = append(rows, row)
		return true
	})
	return rows
}
