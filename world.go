package archon

import (
	"unsafe"

	"github.com/TheBitDrifter/bark"
)

// entityRecord is the world's per-id entry: which archetype currently
// holds the entity, and nil when the id is free.
type entityRecord struct {
	archetype *Archetype
}

// World owns every archetype, the entity table, the entity-id free list,
// and the query cache. It is the single object external callers interact
// with; all structural mutation (add/remove entity, add/remove component)
// funnels through it so the query cache and entity table stay consistent
// with archetype storage.
//
// The lock-then-queue guard against structural mutation mid-iteration
// defers queued operations until the outermost iteration completes,
// instead of rejecting or applying them immediately.
type World struct {
	chunkSize   int
	maxEntities int

	archetypes map[Signature]*Archetype
	cache      *queryCache

	records  []entityRecord
	freeList []EntityID
	live     int

	lockDepth int
	deferred  []func(*World)
}

// NewWorld constructs a World from the current package-level Config. The
// snapshot is taken once, at construction; later writes to Config do not
// affect Worlds already built.
func NewWorld() *World {
	return &World{
		chunkSize:   Config.MemoryChunkSize,
		maxEntities: Config.MaxEntities,
		archetypes:  make(map[Signature]*Archetype),
		cache:       newQueryCache(),
	}
}

// Len reports the number of live entities.
func (w *World) Len() int { return w.live }

func (w *World) newEntityID() EntityID {
	if n := len(w.freeList); n > 0 {
		id := w.freeList[n-1]
		w.freeList = w.freeList[:n-1]
		return id
	}
	if len(w.records) >= w.maxEntities {
		panic(bark.AddTrace(EntityCapacityError{MaxEntities: w.maxEntities}))
	}
	id := EntityID(len(w.records))
	w.records = append(w.records, entityRecord{})
	return id
}

// archetypeFor returns the archetype for exactly this set of component
// descriptors, creating it (and registering it with the query cache) on
// first use.
func (w *World) archetypeFor(types []*componentType) *Archetype {
	ids := make([]ComponentID, len(types))
	for i, ct := range types {
		ids[i] = ct.id
	}
	sig := signatureOf(ids...)

	if arch, ok := w.archetypes[sig]; ok {
		return arch
	}

	arch := newArchetype(sig, types, w.chunkSize, w.maxEntities)
	w.archetypes[sig] = arch
	w.cache.registerArchetype(arch)
	return arch
}

// archetypeWithout builds (or fetches) the archetype holding every type in
// base except the one whose id is excluded.
func (w *World) archetypeWithout(base *Archetype, exclude ComponentID) *Archetype {
	types := make([]*componentType, 0, len(base.layout.types))
	for _, ct := range base.layout.types {
		if ct.id != exclude {
			types = append(types, ct)
		}
	}
	return w.archetypeFor(types)
}

// archetypeWith builds (or fetches) the archetype holding every type in
// base plus extra.
func (w *World) archetypeWith(base *Archetype, extra *componentType) *Archetype {
	types := make([]*componentType, 0, len(base.layout.types)+1)
	types = append(types, base.layout.types...)
	types = append(types, extra)
	return w.archetypeFor(types)
}

// RemoveEntity destroys id's components and returns its id to the free
// list. Deferred, rather than applied immediately, while a ForEach is in
// progress.
func (w *World) RemoveEntity(id EntityID) {
	if w.lockDepth > 0 {
		w.deferred = append(w.deferred, func(w *World) { w.RemoveEntity(id) })
		return
	}

	rec := w.recordFor(id)
	rec.archetype.removeSlot(id)
	w.records[id].archetype = nil
	w.freeList = append(w.freeList, id)
	w.live--
}

func (w *World) recordFor(id EntityID) *entityRecord {
	if int(id) >= len(w.records) || w.records[id].archetype == nil {
		panic(bark.AddTrace(UnknownEntityError{EntityID: id}))
	}
	return &w.records[id]
}

// ComponentsAsString renders entity id's current component set as a
// sorted, human-readable list (e.g. "[Position, Velocity]"), for logging
// and debugging.
func (w *World) ComponentsAsString(id EntityID) string {
	rec := w.recordFor(id)
	return signatureString(rec.archetype.Signature())
}

// Has reports whether entity id currently carries component type T.
func Has[T any](w *World, id EntityID) bool {
	rec := w.recordFor(id)
	ct := componentInfoFor[T]()
	return containsAll(signatureOf(ct.id), rec.archetype.Signature())
}

// Get returns a pointer to entity id's component of type T. Valid only
// until the next structural mutation of id's archetype (see spec's
// pointer-stability rule).
func Get[T any](w *World, id EntityID) *T {
	rec := w.recordFor(id)
	ct := componentInfoFor[T]()
	p := rec.archetype.get(id, ct.id)
	if p == nil {
		panic(bark.AddTrace(MissingComponentError{EntityID: id, Type: ct.name}))
	}
	return (*T)(p)
}

// AddComponent attaches a new component of type T, carrying value, to an
// entity that does not yet have one. Relocates every existing component
// into a (possibly newly created) archetype whose signature is the old
// one plus T's id.
func AddComponent[T any](w *World, id EntityID, value T) {
	if w.lockDepth > 0 {
		w.deferred = append(w.deferred, func(w *World) { AddComponent(w, id, value) })
		return
	}

	rec := w.recordFor(id)
	ct := componentInfoFor[T]()
	old := rec.archetype
	if containsAll(signatureOf(ct.id), old.Signature()) {
		panic(bark.AddTrace(ComponentExistsError{EntityID: id, Type: ct.name}))
	}

	newArch := w.archetypeWith(old, ct)
	extracted := old.removeSlotExtracting(id)
	dst := newArch.allocateSlot(id)
	newArch.constructAt(dst, ct, unsafe.Pointer(&value))
	for _, oldCt := range old.layout.types {
		srcOff := old.layout.offsets[oldCt.id]
		dstOff := newArch.layout.offsets[oldCt.id]
		oldCt.moveFn(unsafe.Add(dst, dstOff), unsafe.Add(extracted, srcOff))
	}

	rec.archetype = newArch
}

// RemoveComponent detaches entity id's component of type T, relocating
// every surviving component into a (possibly newly created) archetype
// whose signature is the old one minus T's id.
func RemoveComponent[T any](w *World, id EntityID) {
	if w.lockDepth > 0 {
		w.deferred = append(w.deferred, func(w *World) { RemoveComponent[T](w, id) })
		return
	}

	rec := w.recordFor(id)
	ct := componentInfoFor[T]()
	old := rec.archetype
	if !containsAll(signatureOf(ct.id), old.Signature()) {
		panic(bark.AddTrace(MissingComponentError{EntityID: id, Type: ct.name}))
	}

	newArch := w.archetypeWithout(old, ct.id)
	extracted := old.removeSlotExtracting(id)
	dst := newArch.allocateSlot(id)
	for _, oldCt := range old.layout.types {
		if oldCt.id == ct.id {
			ct.destroyFn(unsafe.Add(extracted, old.layout.offsets[oldCt.id]))
			continue
		}
		srcOff := old.layout.offsets[oldCt.id]
		dstOff := newArch.layout.offsets[oldCt.id]
		oldCt.moveFn(unsafe.Add(dst, dstOff), unsafe.Add(extracted, srcOff))
	}

	rec.archetype = newArch
}

// lock marks a ForEach iteration in progress; unlock reverses it and, once
// the outermost iteration finishes, applies every deferred structural
// mutation queued during iteration (in the order requested).
func (w *World) lock() { w.lockDepth++ }

func (w *World) unlock() {
	w.lockDepth--
	if w.lockDepth > 0 {
		return
	}
	for len(w.deferred) > 0 {
		pending := w.deferred
		w.deferred = nil
		for _, op := range pending {
			op(w)
		}
	}
}

// archetypesMatching resolves every live archetype whose signature
// contains q, via the world's query cache.
func (w *World) archetypesMatching(q Signature) []*Archetype {
	set := w.cache.archetypesFor(q)
	out := make([]*Archetype, 0, len(set))
	for _, arch := range set {
		out = append(out, arch)
	}
	return out
}
