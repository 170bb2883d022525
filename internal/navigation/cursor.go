// Package navigation implements the keyboard cursor that marks one option
// among the currently visible ones.
package navigation

import "github.com/ruminaider/selectme/internal/optiontree"

// Cursor is either unmarked or marks one node. The zero value is unmarked.
type Cursor struct {
	marked optiontree.NodeID
	ok     bool
}

// Marked returns the marked node and whether there is one.
func (c Cursor) Marked() (optiontree.NodeID, bool) {
	return c.marked, c.ok
}

// Mark marks id.
func (c *Cursor) Mark(id optiontree.NodeID) {
	c.marked, c.ok = id, true
}

// Clear unmarks the cursor.
func (c *Cursor) Clear() {
	c.marked, c.ok = 0, false
}

// Next moves to the node after the marked one in seq, wrapping to the first.
// From the unmarked state it marks the first node. An empty seq is a no-op.
func (c *Cursor) Next(seq []optiontree.NodeID) {
	c.step(seq, +1)
}

// Prev moves to the node before the marked one in seq, wrapping to the last.
// From the unmarked state it marks the first node.
func (c *Cursor) Prev(seq []optiontree.NodeID) {
	c.step(seq, -1)
}

func (c *Cursor) step(seq []optiontree.NodeID, dir int) {
	if len(seq) == 0 {
		return
	}
	pos := c.position(seq)
	if pos < 0 {
		c.Mark(seq[0])
		return
	}
	next := (pos + dir + len(seq)) % len(seq)
	c.Mark(seq[next])
}

func (c Cursor) position(seq []optiontree.NodeID) int {
	if !c.ok {
		return -1
	}
	for i, id := range seq {
		if id == c.marked {
			return i
		}
	}
	return -1
}

// Reconcile clears the mark when the marked node is no longer in seq.
func (c *Cursor) Reconcile(seq []optiontree.NodeID) {
	if c.ok && c.position(seq) < 0 {
		c.Clear()
	}
}
