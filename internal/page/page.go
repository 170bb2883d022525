// Package page models the document widgets are rendered into: the set of
// attached stylesheets and the document-level pointer listeners.
package page

import (
	"sync"

	"github.com/ruminaider/selectme/internal/dismiss"
)

// PointerListener receives pointer-down events anywhere on the page.
type PointerListener func(p dismiss.Point)

// Page is the host document.
type Page struct {
	mu          sync.Mutex
	stylesheets []string
	attached    map[string]bool
	listeners   map[string]PointerListener
	refs        map[string]int
	order       []string
}

// New returns an empty page.
func New() *Page {
	return &Page{
		attached:  make(map[string]bool),
		listeners: make(map[string]PointerListener),
		refs:      make(map[string]int),
	}
}

// AttachStylesheet adds url to the page unless it is already attached and
// reports whether it was added.
func (p *Page) AttachStylesheet(url string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if url == "" || p.attached[url] {
		return false
	}
	p.attached[url] = true
	p.stylesheets = append(p.stylesheets, url)
	return true
}

// Stylesheets returns the attached stylesheets in attachment order.
func (p *Page) Stylesheets() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.stylesheets...)
}

// Listen registers fn under name. A later registration under the same name
// keeps the first fn and only adds a reference; it reports whether fn was
// registered. Every Listen is paired with one Unlisten.
func (p *Page) Listen(name string, fn PointerListener) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs[name]++
	if _, ok := p.listeners[name]; ok {
		return false
	}
	p.listeners[name] = fn
	p.order = append(p.order, name)
	return true
}

// Unlisten drops one reference to name. The listener is removed with its
// last reference.
func (p *Page) Unlisten(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.listeners[name]; !ok {
		return
	}
	if p.refs[name]--; p.refs[name] > 0 {
		return
	}
	delete(p.refs, name)
	delete(p.listeners, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// ListenerCount returns the number of registered pointer listeners.
func (p *Page) ListenerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}

// PointerDown dispatches a pointer-down event to every listener in
// registration order.
func (p *Page) PointerDown(pt dismiss.Point) {
	p.mu.Lock()
	fns := make([]PointerListener, 0, len(p.order))
	for _, n := range p.order {
		fns = append(fns, p.listeners[n])
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(pt)
	}
}
