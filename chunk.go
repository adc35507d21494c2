package archon

import (
	"fmt"
	"reflect"
	"sort"
	"unsafe"
)

// blockLayout is the canonicalized, per-archetype arrangement of a
// signature's component types within one contiguous block: types are
// sorted descending on (align, id) so the first component is the most
// strictly aligned, offsets are the running sum of sizes in that order,
// and the block size is padded to a multiple of the leading (largest)
// alignment.
//
// A raw []byte buffer cannot safely hold arbitrary component values that
// contain pointers, slices, or strings: the garbage collector does not
// scan byte slices for pointers hidden inside via unsafe casts. Instead,
// blockType is a struct type assembled at runtime with reflect.StructOf,
// one field per component in canonical order — the runtime then knows
// exactly where this block's pointers live, and chunks built from it (see
// newChunk) are ordinary, GC-visible Go arrays. Because fields are sorted
// by non-increasing, power-of-two alignment, and a Go type's size is
// always a multiple of its own alignment, no padding is ever inserted
// between fields — reflect.StructOf's layout coincides exactly with the
// manual align-desc/id-desc offset scheme this type documents above.
type blockLayout struct {
	types      []*componentType // canonical order: align desc, then id desc
	offsets    map[ComponentID]uintptr
	blockType  reflect.Type
	blockSize  uintptr
	blockAlign uintptr
}

func newBlockLayout(types []*componentType) *blockLayout {
	sorted := make([]*componentType, len(types))
	copy(sorted, types)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].align != sorted[j].align {
			return sorted[i].align > sorted[j].align
		}
		return sorted[i].id > sorted[j].id
	})

	var blockType reflect.Type
	if len(sorted) == 0 {
		blockType = reflect.TypeOf(struct{}{})
	} else {
		fields := make([]reflect.StructField, len(sorted))
		for i, ct := range sorted {
			fields[i] = reflect.StructField{
				Name: fmt.Sprintf("F%d", i),
				Type: ct.typ,
			}
		}
		blockType = reflect.StructOf(fields)
	}

	offsets := make(map[ComponentID]uintptr, len(sorted))
	for i, ct := range sorted {
		offsets[ct.id] = blockType.Field(i).Offset
	}

	return &blockLayout{
		types:      sorted,
		offsets:    offsets,
		blockType:  blockType,
		blockSize:  blockType.Size(),
		blockAlign: uintptr(blockType.Align()),
	}
}

// blocksPerChunk is floor(chunkSize / blockSize), the number of whole
// blocks that fit in one MemoryChunkSize-byte chunk. A zero-sized block (a
// signature with no components) never overflows a chunk, so it is treated
// as fitting Config.MaxEntities blocks per chunk.
func (l *blockLayout) blocksPerChunk(chunkSize, maxEntities int) int {
	if l.blockSize == 0 {
		return maxEntities
	}
	n := chunkSize / int(l.blockSize)
	if n == 0 {
		n = 1
	}
	return n
}

// chunk is one fixed-capacity, append-only block of storage. Its backing
// array's element type is the archetype's blockType, so the Go runtime's
// garbage collector correctly traces every pointer-shaped field inside —
// the same technique delaneyj-arche's ecs.Storage uses
// (reflect.New(reflect.ArrayOf(...)) plus unsafe.Pointer access) applied to
// a runtime-assembled struct type instead of a single known component type.
type chunk struct {
	backing reflect.Value // addressable [blocksPerChunk]blockType array
	base    unsafe.Pointer
}

func newChunk(layout *blockLayout, blocksPerChunk int) *chunk {
	arrType := reflect.ArrayOf(blocksPerChunk, layout.blockType)
	v := reflect.New(arrType).Elem()
	return &chunk{
		backing: v,
		base:    v.Addr().UnsafePointer(),
	}
}

// slot returns a pointer to the beginning of the i-th block in this chunk.
func (c *chunk) slot(i int, blockSize uintptr) unsafe.Pointer {
	return unsafe.Add(c.base, uintptr(i)*blockSize)
}

// newBlockValue allocates one GC-visible, addressable blockType value: a
// temporary single-block buffer a slot's components are extracted into
// before being handed to another archetype. Letting Go heap allocate it,
// rather than reusing a shared scratch buffer, is what keeps any
// pointer-shaped component inside it valid and traceable between
// Archetype.removeSlotExtracting and whatever reinserts it.
func newBlockValue(layout *blockLayout) unsafe.Pointer {
	v := reflect.New(layout.blockType)
	return v.UnsafePointer()
}
