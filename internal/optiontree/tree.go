// Package optiontree builds the ordered tree of options and groups a selection
// widget works on. The tree owns no UI state; only the Selected flag of its
// options changes after Parse.
package optiontree

import (
	"fmt"
	"strings"

	"github.com/ruminaider/selectme/internal/native"
)

// NodeID is the pre-order position of a node in its tree. IDs are assigned
// once by Parse and never change.
type NodeID int

// Node is either an *Option or a *Group.
type Node interface {
	NodeID() NodeID
	NodeLabel() string
	Parent() *Group
}

// Option is a selectable leaf.
type Option struct {
	ID       NodeID
	Label    string
	Value    string
	Selected bool
	Disabled bool

	parent *Group
	native *native.Option
}

// Group is a named container of options and nested groups.
type Group struct {
	ID       NodeID
	Label    string
	Children []Node

	parent *Group
}

func (o *Option) NodeID() NodeID    { return o.ID }
func (o *Option) NodeLabel() string { return o.Label }
func (o *Option) Parent() *Group    { return o.parent }

// Native returns the native option this node mirrors.
func (o *Option) Native() *native.Option { return o.native }

func (g *Group) NodeID() NodeID    { return g.ID }
func (g *Group) NodeLabel() string { return g.Label }
func (g *Group) Parent() *Group    { return g.parent }

// Depth returns how many groups enclose n.
func Depth(n Node) int {
	d := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// Diagnostic describes a source entry Parse skipped.
type Diagnostic struct {
	Path string // slash-separated child indexes from the root, e.g. "2/0"
	Kind string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("skipped %s at %s", d.Kind, d.Path)
}

// Tree is the root sequence of nodes.
type Tree struct {
	Roots []Node

	nodes   []Node // indexed by NodeID
	options []*Option
}

// Parse walks src depth-first and in order. Options and groups become tree
// nodes; every other entry is skipped and reported.
func Parse(src []native.Node) (*Tree, []Diagnostic) {
	t := &Tree{}
	var diags []Diagnostic
	t.Roots = t.parseLevel(src, nil, nil, &diags)
	return t, diags
}

func (t *Tree) parseLevel(src []native.Node, parent *Group, path []int, diags *[]Diagnostic) []Node {
	var out []Node
	for i, n := range src {
		p := append(append([]int(nil), path...), i)
		switch n := n.(type) {
		case *native.Option:
			if n == nil {
				*diags = append(*diags, Diagnostic{Path: joinPath(p), Kind: "nil option"})
				continue
			}
			o := &Option{
				ID:       NodeID(len(t.nodes)),
				Label:    n.Label,
				Value:    n.Value,
				Selected: n.Selected,
				Disabled: n.Disabled,
				parent:   parent,
				native:   n,
			}
			t.nodes = append(t.nodes, o)
			t.options = append(t.options, o)
			out = append(out, o)
		case *native.OptGroup:
			if n == nil {
				*diags = append(*diags, Diagnostic{Path: joinPath(p), Kind: "nil group"})
				continue
			}
			g := &Group{ID: NodeID(len(t.nodes)), Label: n.Label, parent: parent}
			t.nodes = append(t.nodes, g)
			g.Children = t.parseLevel(n.Children, g, p, diags)
			out = append(out, g)
		case *native.Separator:
			*diags = append(*diags, Diagnostic{Path: joinPath(p), Kind: "separator"})
		case *native.Unknown:
			*diags = append(*diags, Diagnostic{Path: joinPath(p), Kind: n.Kind})
		default:
			*diags = append(*diags, Diagnostic{Path: joinPath(p), Kind: fmt.Sprintf("%T", n)})
		}
	}
	return out
}

func joinPath(p []int) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, "/")
}

// Len returns the number of nodes, options and groups together.
func (t *Tree) Len() int { return len(t.nodes) }

// OptionCount returns the number of options.
func (t *Tree) OptionCount() int { return len(t.options) }

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id NodeID) Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Option returns the option with the given id, or nil if id is out of range
// or names a group.
func (t *Tree) Option(id NodeID) *Option {
	o, _ := t.Node(id).(*Option)
	return o
}

// Options returns all options in document order. The slice must not be
// modified.
func (t *Tree) Options() []*Option { return t.options }

// Nodes returns all nodes in pre-order. The slice must not be modified.
func (t *Tree) Nodes() []Node { return t.nodes }

// Selected returns the selected options in document order.
func (t *Tree) Selected() []*Option {
	var out []*Option
	for _, o := range t.options {
		if o.Selected {
			out = append(out, o)
		}
	}
	return out
}

// FindValue returns the first option with the given value, or nil.
func (t *Tree) FindValue(value string) *Option {
	for _, o := range t.options {
		if o.Value == value {
			return o
		}
	}
	return nil
}

// Walk calls fn for every node in pre-order. Returning false from fn skips
// the children of a group.
func (t *Tree) Walk(fn func(n Node) bool) {
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			if !fn(n) {
				continue
			}
			if g, ok := n.(*Group); ok {
				walk(g.Children)
			}
		}
	}
	walk(t.Roots)
}
