package archon

import (
	"unsafe"

	"github.com/TheBitDrifter/bark"
)

// EntityID identifies a live row. It is unique among currently-live
// entities but is recycled (see World's free list) once removed.
type EntityID uint32

// Archetype owns every entity whose component set exactly matches its
// signature: a sequence of fixed-capacity chunks of blockLayout-shaped
// slots, append-only, never freed until the archetype itself is dropped.
type Archetype struct {
	signature Signature
	layout    *blockLayout

	blocksPerChunk int
	chunks         []*chunk

	count            int // total live slots, dense [0, count)
	countInLastChunk int

	slotOfEntity map[EntityID]int
	entityAtSlot []EntityID
}

func newArchetype(sig Signature, types []*componentType, chunkSize, maxEntities int) *Archetype {
	layout := newBlockLayout(types)
	return &Archetype{
		signature:      sig,
		layout:         layout,
		blocksPerChunk: layout.blocksPerChunk(chunkSize, maxEntities),
		slotOfEntity:   make(map[EntityID]int),
	}
}

// Signature reports the exact component set this archetype stores.
func (a *Archetype) Signature() Signature { return a.signature }

// Len reports the number of live entities.
func (a *Archetype) Len() int { return a.count }

// ChunkCount reports how many chunks have been allocated so far. Chunks
// are never freed once allocated, even if every entity in them is later
// removed.
func (a *Archetype) ChunkCount() int { return len(a.chunks) }

// BlockSize reports the padded per-entity byte footprint of this
// archetype's canonical layout.
func (a *Archetype) BlockSize() uintptr { return a.layout.blockSize }

func (a *Archetype) chunkIndex(slot int) int   { return slot / a.blocksPerChunk }
func (a *Archetype) indexInChunk(slot int) int { return slot % a.blocksPerChunk }

// needsAnotherChunk reports true once the last chunk's count would
// overflow on the next insert.
func (a *Archetype) needsAnotherChunk() bool {
	return len(a.chunks) == 0 || a.countInLastChunk == a.blocksPerChunk
}

func (a *Archetype) slotPointer(slot int) unsafe.Pointer {
	ch := a.chunks[a.chunkIndex(slot)]
	return ch.slot(a.indexInChunk(slot), a.layout.blockSize)
}

// fieldPointer returns the pointer to component id's field within the
// block that starts at blockPtr. Panics (internal invariant violation)
// if this archetype's signature does not include id.
func (a *Archetype) fieldPointer(blockPtr unsafe.Pointer, id ComponentID) unsafe.Pointer {
	off, ok := a.layout.offsets[id]
	if !ok {
		panic(bark.AddTrace(MissingComponentError{Type: componentsByID[id].name}))
	}
	return unsafe.Add(blockPtr, off)
}

// allocateSlot reserves the next free slot for id, growing the chunk
// sequence if the last one is full, and returns a pointer to the
// uninitialized block. The caller must copy-construct every component in
// this archetype's signature into that block (via constructAt) before the
// slot is observable to any other operation.
func (a *Archetype) allocateSlot(id EntityID) unsafe.Pointer {
	if _, exists := a.slotOfEntity[id]; exists {
		panic(bark.AddTrace(DuplicateEntityError{EntityID: id}))
	}
	if a.needsAnotherChunk() {
		a.chunks = append(a.chunks, newChunk(a.layout, a.blocksPerChunk))
		a.countInLastChunk = 0
	}

	slot := a.count
	a.slotOfEntity[id] = slot
	a.entityAtSlot = append(a.entityAtSlot, id)
	a.count++
	a.countInLastChunk++
	return a.slotPointer(slot)
}

// constructAt copy-constructs src (a pointer to a single T value) into
// ct's field of the block at blockPtr.
func (a *Archetype) constructAt(blockPtr unsafe.Pointer, ct *componentType, src unsafe.Pointer) {
	ct.copyFn(a.fieldPointer(blockPtr, ct.id), src)
}

// insertFromBytes appends a new slot for id and move-constructs every
// component of this archetype's signature out of src, which must already
// be laid out with this archetype's own canonical offsets (the payload
// Archetype.removeSlotExtracting produced for this exact signature). Only
// ever re-inserts a byte payload into the same archetype that extracted
// it, never across differently-offset archetypes.
func (a *Archetype) insertFromBytes(id EntityID, src unsafe.Pointer) {
	dst := a.allocateSlot(id)
	for _, ct := range a.layout.types {
		off := a.layout.offsets[ct.id]
		ct.moveFn(unsafe.Add(dst, off), unsafe.Add(src, off))
	}
}

// get returns a pointer to component id's field for the entity's live
// slot, or nil if the entity is not in this archetype, or this archetype's
// signature does not include compID.
func (a *Archetype) get(id EntityID, compID ComponentID) unsafe.Pointer {
	slot, ok := a.slotOfEntity[id]
	if !ok {
		return nil
	}
	off, ok := a.layout.offsets[compID]
	if !ok {
		return nil
	}
	return unsafe.Add(a.slotPointer(slot), off)
}

// forEachBlock calls fn with the block pointer for every live slot, in
// storage (chunk, then index) order. fn must not reshape this archetype.
func (a *Archetype) forEachBlock(fn func(entity EntityID, block unsafe.Pointer)) {
	for slot := 0; slot < a.count; slot++ {
		fn(a.entityAtSlot[slot], a.slotPointer(slot))
	}
}

// removeSlot destroys the entity's components in place and compacts the
// archetype by swapping the last live slot into the freed one (if it
// wasn't already the last). When the last chunk empties out, its count is
// reset to blocksPerChunk rather than freed, so the chunk slice is never
// shrunk.
func (a *Archetype) removeSlot(id EntityID) {
	slot, ok := a.slotOfEntity[id]
	if !ok {
		panic(bark.AddTrace(UnknownEntityError{EntityID: id}))
	}

	ptr := a.slotPointer(slot)
	for _, ct := range a.layout.types {
		ct.destroyFn(a.fieldPointer(ptr, ct.id))
	}

	a.compact(slot)
}

// removeSlotExtracting destroys nothing: it moves the entity's live
// components out into a newly allocated, GC-visible value shaped exactly
// like this archetype's block (so pointer-bearing components stay
// traceable across the hand-off) and compacts the archetype the same way
// removeSlot does. The returned pointer is valid until the caller is done
// consuming it; its backing value is not pooled or reused. Used by
// World.AddComponent/RemoveComponent to relocate a surviving component
// set into a different archetype's layout.
func (a *Archetype) removeSlotExtracting(id EntityID) unsafe.Pointer {
	slot, ok := a.slotOfEntity[id]
	if !ok {
		panic(bark.AddTrace(UnknownEntityError{EntityID: id}))
	}

	src := a.slotPointer(slot)
	out := newBlockValue(a.layout)
	for _, ct := range a.layout.types {
		off := a.layout.offsets[ct.id]
		ct.moveFn(unsafe.Add(out, off), unsafe.Add(src, off))
	}

	a.compact(slot)
	return out
}

// compact swaps the last live slot into the freed slot (unless the freed
// slot was already last) and shrinks count, applying the chunk-underflow
// trick to the last chunk's bookkeeping.
func (a *Archetype) compact(freedSlot int) {
	lastSlot := a.count - 1
	removedID := a.entityAtSlot[freedSlot]

	if freedSlot != lastSlot {
		lastPtr := a.slotPointer(lastSlot)
		freedPtr := a.slotPointer(freedSlot)
		for _, ct := range a.layout.types {
			off := a.layout.offsets[ct.id]
			ct.moveFn(unsafe.Add(freedPtr, off), unsafe.Add(lastPtr, off))
		}
		movedID := a.entityAtSlot[lastSlot]
		a.entityAtSlot[freedSlot] = movedID
		a.slotOfEntity[movedID] = freedSlot
	}

	delete(a.slotOfEntity, removedID)
	a.entityAtSlot = a.entityAtSlot[:lastSlot]
	a.count--

	if a.countInLastChunk == 1 {
		a.countInLastChunk = a.blocksPerChunk
	} else {
		a.countInLastChunk--
	}
}
