/*
Package archon is an archetype-based Entity-Component-System (ECS) core.

It groups entities by their exact set of component types (their "archetype")
and lays out each group's components in contiguous, chunked memory for
cache-friendly bulk iteration. The package owns three layers:

  - Component type descriptors: a process-wide id, size, alignment, and a
    vtable of copy/move/destroy operations, assigned once per registered Go
    type via RegisterComponent.
  - Archetype: per-signature chunked column storage, with swap-back removal
    and relocation driven entirely by the component vtable (never a raw
    memcpy of component bytes).
  - World: the archetype registry, entity table, and query cache that
    dispatches ForEach-style iteration across every archetype whose
    signature is a superset of the requested component set.

Core Concepts:

  - Entity: an EntityID naming a live row in exactly one archetype.
  - Component: a plain Go value type registered once with RegisterComponent.
  - Archetype: the storage for every entity sharing an exact component set.
  - Signature: the bitset identifying an archetype or a query by component id.

Basic Usage:

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	w := archon.NewWorld()

	e := archon.AddEntity2(w, Position{X: 10, Y: 20}, Velocity{X: 1, Y: 2})

	archon.ForEach2(w, func(pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

	pos := archon.Get[Position](w, e)

This is the core storage and indexing engine only; a benchmarking harness,
a sample application driver, serialization, and multithreaded system
scheduling are external collaborators that consume this package's public
operations but are not part of it.
*/
package archon
