package view

import "github.com/vango-dev/viewcore/internal/errors"

// Pod holds one live element together with its generation counter.
//
// The generation is bumped every time a handle is issued and every time the
// element is replaced through a handle. The swap count only moves on
// replacement; comparing it across a nested call tells whether the callee
// swapped the element. At most one handle is outstanding.
type Pod[E any] struct {
	elem  E
	gen   uint64
	swaps uint64
	out   *Mut[E]
}

// NewPod wraps a freshly built element.
func NewPod[E any](e E) *Pod[E] {
	return &Pod[E]{elem: e}
}

// Element returns the current element. Hosts use it to read the tree
// between passes.
func (p *Pod[E]) Element() E {
	return p.elem
}

// Generation returns the current generation.
func (p *Pod[E]) Generation() uint64 {
	return p.gen
}

// Swaps returns how many times the element was replaced.
func (p *Pod[E]) Swaps() uint64 {
	return p.swaps
}

// Borrowed reports whether a handle is outstanding.
func (p *Pod[E]) Borrowed() bool {
	return p.out != nil
}

// Borrow issues the exclusive handle for this element. Borrowing while a
// previous handle is still outstanding means that handle was retained past
// its call, and aborts the pass.
func (p *Pod[E]) Borrow() *Mut[E] {
	if p.out != nil {
		errors.Panic("VC002", "element already borrowed at generation %d", p.out.gen)
	}
	p.gen++
	m := &Mut[E]{pod: p, gen: p.gen}
	p.out = m
	return m
}

// With issues a handle, runs fn and releases it. It reports whether fn
// replaced the element wholesale.
func (p *Pod[E]) With(fn func(*Mut[E])) (replaced bool) {
	m := p.Borrow()
	before := p.swaps
	fn(m)
	replaced = p.swaps != before
	m.Release()
	return replaced
}

// Mut is a scoped, exclusive, generation-tracked handle to an element.
// It is only valid during the call it was passed to.
type Mut[E any] struct {
	pod      *Pod[E]
	gen      uint64
	done     bool
	replaced bool
}

func (m *Mut[E]) check() {
	if m.done || m.pod.out != m {
		errors.Panic("VC002", "handle at generation %d used after its call", m.gen)
	}
	if m.gen != m.pod.gen {
		errors.Panic("VC006", "handle at generation %d, element at %d", m.gen, m.pod.gen)
	}
}

// Get returns the element for in-place mutation.
func (m *Mut[E]) Get() E {
	m.check()
	return m.pod.elem
}

// Set overwrites the element in place. Unlike Replace it does not count as
// a swap; use it for value elements whose identity does not change.
func (m *Mut[E]) Set(e E) {
	m.check()
	m.pod.elem = e
}

// Update calls fn with a pointer to the stored element.
func (m *Mut[E]) Update(fn func(e *E)) {
	m.check()
	fn(&m.pod.elem)
}

// Replace swaps the element wholesale. The handle stays valid and follows
// the new generation.
func (m *Mut[E]) Replace(e E) {
	m.check()
	m.pod.elem = e
	m.pod.gen++
	m.pod.swaps++
	m.gen = m.pod.gen
	m.replaced = true
}

// Replaced reports whether the element was replaced through this handle.
func (m *Mut[E]) Replaced() bool {
	return m.replaced
}

// Generation returns the generation the handle is valid for.
func (m *Mut[E]) Generation() uint64 {
	return m.gen
}

// Reborrow suspends m, issues a nested handle for fn and resumes m with the
// corrected generation. It reports whether fn replaced the element.
func (m *Mut[E]) Reborrow(fn func(*Mut[E])) (replaced bool) {
	m.check()
	m.pod.out = nil
	replaced = m.pod.With(fn)
	m.pod.out = m
	m.gen = m.pod.gen
	if replaced {
		m.replaced = true
	}
	return replaced
}

// Release ends the handle's scope. A generation that moved underneath the
// handle means an unauthorised write and aborts the pass.
func (m *Mut[E]) Release() {
	if m.done {
		errors.Panic("VC002", "handle at generation %d released twice", m.gen)
	}
	if m.gen != m.pod.gen {
		errors.Panic("VC006", "release at generation %d, element at %d", m.gen, m.pod.gen)
	}
	m.done = true
	m.pod.out = nil
}
