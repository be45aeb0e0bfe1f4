package codeview

import "sync"

// guardRegistry tracks which widgets are inside a configuration pass.
// The flag is keyed by widget identity rather than stored on the
// adapter, so it survives adapter reconstruction: hosts routinely
// rebuild the adapter on every render, and a guard stored on the
// adapter itself would reset mid-pass.
type guardRegistry struct {
	mu     sync.Mutex
	active map[string]bool
}

var guards = &guardRegistry{active: make(map[string]bool)}

// acquire marks the widget as configuring and returns a release func.
// Re-entrant acquisition returns nil; the caller must skip the pass.
func (g *guardRegistry) acquire(id string) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active[id] {
		return nil
	}
	g.active[id] = true
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.active, id)
	}
}

// held reports whether the widget is currently inside a pass.
func (g *guardRegistry) held(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active[id]
}

// forget drops the widget's guard state entirely. Called when a view
// is released so the registry doesn't grow with widget churn.
func (g *guardRegistry) forget(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, id)
}
