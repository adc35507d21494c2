package archon

import "github.com/TheBitDrifter/bark"

// Accessor is a typed, reusable handle to a registered component: its id
// is resolved once (registering the type if this is the first use) and
// every subsequent Get/Has/GetSafe call skips the componentInfoFor type
// lookup. Built around EntityID lookups rather than a cursor's row index,
// since this engine iterates archetypes directly instead of through a
// single cross-archetype cursor.
type Accessor[T any] struct {
	id ComponentID
}

// NewAccessor resolves T's component id for repeated reuse.
func NewAccessor[T any]() Accessor[T] {
	return Accessor[T]{id: componentInfoFor[T]().id}
}

// Check reports whether arch's signature includes this accessor's type.
func (a Accessor[T]) Check(arch *Archetype) bool {
	return containsAll(signatureOf(a.id), arch.Signature())
}

// Has reports whether entity id currently carries this accessor's type.
func (a Accessor[T]) Has(w *World, id EntityID) bool {
	rec := w.recordFor(id)
	return a.Check(rec.archetype)
}

// Get returns a pointer to entity id's component, panicking (precondition
// violation) if it does not carry one.
func (a Accessor[T]) Get(w *World, id EntityID) *T {
	rec := w.recordFor(id)
	p := rec.archetype.get(id, a.id)
	if p == nil {
		panic(bark.AddTrace(MissingComponentError{EntityID: id, Type: componentsByID[a.id].name}))
	}
	return (*T)(p)
}

// GetSafe is Get without the panic: it reports false instead of
// panicking when entity id does not carry this accessor's type.
func (a Accessor[T]) GetSafe(w *World, id EntityID) (*T, bool) {
	rec := w.recordFor(id)
	p := rec.archetype.get(id, a.id)
	if p == nil {
		return nil, false
	}
	return (*T)(p), true
}
