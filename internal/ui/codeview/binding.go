// Package codeview provides a bindable source-code editor/viewer widget.
// The View facade wraps the editor component; an Adapter keeps the widget
// and a set of host-owned bindings in sync without feedback loops.
package codeview

// Binding connects a widget property to host-owned state. Get reads the
// current host value during a configuration pass; Set writes widget
// changes back. A nil Set makes the binding read-only from the widget's
// point of view.
type Binding[T any] struct {
	Get func() T
	Set func(T)
}

// Constant returns a read-only binding that always yields v.
func Constant[T any](v T) Binding[T] {
	return Binding[T]{Get: func() T { return v }}
}

// Var returns a two-way binding over the pointed-to value. Useful for
// hosts that keep their state in plain struct fields.
func Var[T any](p *T) Binding[T] {
	return Binding[T]{
		Get: func() T { return *p },
		Set: func(v T) { *p = v },
	}
}

// readable reports whether the binding can produce a value.
func (b Binding[T]) readable() bool {
	return b.Get != nil
}

// writable reports whether the binding accepts widget-side changes.
func (b Binding[T]) writable() bool {
	return b.Set != nil
}
