// Fixed-arity entry points standing in for variadic generics, which Go
// does not have: each arity is spelled out explicitly, and Go's own
// type-inference on function-typed arguments recovers "infer the
// component set from the callable's signature" without reflecting on the
// callback itself.
package archon

import "unsafe"

// AddEntity1 creates a new entity carrying exactly one component.
func AddEntity1[T1 any](w *World, v1 T1) EntityID {
	c1 := componentInfoFor[T1]()
	id := w.newEntityID()
	arch := w.archetypeFor([]*componentType{c1})
	dst := arch.allocateSlot(id)
	arch.constructAt(dst, c1, unsafe.Pointer(&v1))
	w.records[id].archetype = arch
	w.live++
	return id
}

// AddEntity2 creates a new entity carrying exactly two components.
func AddEntity2[T1, T2 any](w *World, v1 T1, v2 T2) EntityID {
	c1, c2 := componentInfoFor[T1](), componentInfoFor[T2]()
	id := w.newEntityID()
	arch := w.archetypeFor([]*componentType{c1, c2})
	dst := arch.allocateSlot(id)
	arch.constructAt(dst, c1, unsafe.Pointer(&v1))
	arch.constructAt(dst, c2, unsafe.Pointer(&v2))
	w.records[id].archetype = arch
	w.live++
	return id
}

// AddEntity3 creates a new entity carrying exactly three components.
func AddEntity3[T1, T2, T3 any](w *World, v1 T1, v2 T2, v3 T3) EntityID {
	c1, c2, c3 := componentInfoFor[T1](), componentInfoFor[T2](), componentInfoFor[T3]()
	id := w.newEntityID()
	arch := w.archetypeFor([]*componentType{c1, c2, c3})
	dst := arch.allocateSlot(id)
	arch.constructAt(dst, c1, unsafe.Pointer(&v1))
	arch.constructAt(dst, c2, unsafe.Pointer(&v2))
	arch.constructAt(dst, c3, unsafe.Pointer(&v3))
	w.records[id].archetype = arch
	w.live++
	return id
}

// AddEntity4 creates a new entity carrying exactly four components.
func AddEntity4[T1, T2, T3, T4 any](w *World, v1 T1, v2 T2, v3 T3, v4 T4) EntityID {
	c1, c2, c3, c4 := componentInfoFor[T1](), componentInfoFor[T2](), componentInfoFor[T3](), componentInfoFor[T4]()
	id := w.newEntityID()
	arch := w.archetypeFor([]*componentType{c1, c2, c3, c4})
	dst := arch.allocateSlot(id)
	arch.constructAt(dst, c1, unsafe.Pointer(&v1))
	arch.constructAt(dst, c2, unsafe.Pointer(&v2))
	arch.constructAt(dst, c3, unsafe.Pointer(&v3))
	arch.constructAt(dst, c4, unsafe.Pointer(&v4))
	w.records[id].archetype = arch
	w.live++
	return id
}

// ForEach1 invokes fn once per live entity carrying T1, across every
// archetype whose signature is a superset of {T1}. Removing an entity or
// adding/removing a component from inside fn is undefined behavior; this
// package defers such a call until the outermost ForEach call returns
// rather than let it corrupt the iteration in progress.
func ForEach1[T1 any](w *World, fn func(t1 *T1)) {
	c1 := componentInfoFor[T1]()
	q := signatureOf(c1.id)

	w.lock()
	defer w.unlock()
	for _, arch := range w.archetypesMatching(q) {
		arch.forEachBlock(func(_ EntityID, block unsafe.Pointer) {
			fn((*T1)(arch.fieldPointer(block, c1.id)))
		})
	}
}

// ForEach2 invokes fn once per live entity carrying both T1 and T2.
func ForEach2[T1, T2 any](w *World, fn func(t1 *T1, t2 *T2)) {
	c1, c2 := componentInfoFor[T1](), componentInfoFor[T2]()
	q := signatureOf(c1.id, c2.id)

	w.lock()
	defer w.unlock()
	for _, arch := range w.archetypesMatching(q) {
		arch.forEachBlock(func(_ EntityID, block unsafe.Pointer) {
			fn(
				(*T1)(arch.fieldPointer(block, c1.id)),
				(*T2)(arch.fieldPointer(block, c2.id)),
			)
		})
	}
}

// ForEach3 invokes fn once per live entity carrying T1, T2 and T3.
func ForEach3[T1, T2, T3 any](w *World, fn func(t1 *T1, t2 *T2, t3 *T3)) {
	c1, c2, c3 := componentInfoFor[T1](), componentInfoFor[T2](), componentInfoFor[T3]()
	q := signatureOf(c1.id, c2.id, c3.id)

	w.lock()
	defer w.unlock()
	for _, arch := range w.archetypesMatching(q) {
		arch.forEachBlock(func(_ EntityID, block unsafe.Pointer) {
			fn(
				(*T1)(arch.fieldPointer(block, c1.id)),
				(*T2)(arch.fieldPointer(block, c2.id)),
				(*T3)(arch.fieldPointer(block, c3.id)),
			)
		})
	}
}

// ForEach4 invokes fn once per live entity carrying T1, T2, T3 and T4.
func ForEach4[T1, T2, T3, T4 any](w *World, fn func(t1 *T1, t2 *T2, t3 *T3, t4 *T4)) {
	c1, c2, c3, c4 := componentInfoFor[T1](), componentInfoFor[T2](), componentInfoFor[T3](), componentInfoFor[T4]()
	q := signatureOf(c1.id, c2.id, c3.id, c4.id)

	w.lock()
	defer w.unlock()
	for _, arch := range w.archetypesMatching(q) {
		arch.forEachBlock(func(_ EntityID, block unsafe.Pointer) {
			fn(
				(*T1)(arch.fieldPointer(block, c1.id)),
				(*T2)(arch.fieldPointer(block, c2.id)),
				(*T3)(arch.fieldPointer(block, c3.id)),
				(*T4)(arch.fieldPointer(block, c4.id)),
			)
		})
	}
}
