// Package dismiss closes open dropdowns when the pointer goes down outside
// them. One Registry serves every widget in the process; each widget adds and
// removes only its own entry.
package dismiss

import (
	"sort"
	"sync"
)

// Point is a pointer position in page cells.
type Point struct {
	X, Y int
}

// Rect is a rectangle in page cells. The zero Rect contains nothing.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Union returns the smallest rectangle covering r and o. Empty rectangles
// are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.W <= 0 || r.H <= 0 {
		return o
	}
	if o.W <= 0 || o.H <= 0 {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Member is what a widget contributes to the registry.
type Member interface {
	// Contains reports whether p falls inside the widget's bounds.
	Contains(p Point) bool
	IsOpen() bool
	Close()
}

// Handle identifies one registration.
type Handle uint64

// Registry is a set of members consulted on every pointer-down event.
type Registry struct {
	mu      sync.Mutex
	next    Handle
	members map[Handle]Member
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{members: make(map[Handle]Member)}
}

// Default is the process-wide registry widgets use unless given another.
var Default = NewRegistry()

// Register adds m and returns the handle that removes it.
func (r *Registry) Register(m Member) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.members[r.next] = m
	return r.next
}

// Unregister removes the member registered under h. Unknown handles are
// ignored, so calling it twice is safe.
func (r *Registry) Unregister(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, h)
}

// Registered reports whether h is still registered.
func (r *Registry) Registered(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[h]
	return ok
}

// Len returns the number of registered members.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// PointerDown closes every open member that does not contain p and returns
// how many were closed. Members are visited in registration order and may
// unregister themselves while being closed.
func (r *Registry) PointerDown(p Point) int {
	r.mu.Lock()
	handles := make([]Handle, 0, len(r.members))
	for h := range r.members {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	members := make([]Member, 0, len(handles))
	for _, h := range handles {
		members = append(members, r.members[h])
	}
	r.mu.Unlock()

	closed := 0
	for _, m := range members {
		if m.IsOpen() && !m.Contains(p) {
			m.Close()
			closed++
		}
	}
	return closed
}
