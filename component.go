package archon

import (
	"reflect"
	"strings"
	"sync"
	"unsafe"

	"github.com/TheBitDrifter/bark"
)

// ComponentID is the process-wide, monotonically assigned id a component
// type receives on first registration. Stable for the process lifetime,
// bounded by Config.MaxComponents (default DefaultMaxComponents).
type ComponentID int32

// Destroyer is an optional interface a component value type may implement
// to run cleanup logic at the moment its slot is destroyed by explicit
// removal (World.RemoveEntity, or RemoveComponent of that type). Go has no
// destructors; a component needing cleanup-on-destroy semantics opts in by
// implementing OnDestroy, invoked by the vtable's destroy operation.
// Archetypes and Worlds have no teardown operation: components still live
// when a World is dropped are never passed to OnDestroy.
type Destroyer interface {
	OnDestroy()
}

var destroyerType = reflect.TypeOf((*Destroyer)(nil)).Elem()

// componentType is the engine-visible contract for a registered component:
// an id, a size, an alignment, and a vtable of three byte-level operations
// (copy-construct, move: copy to dst then zero src without running
// OnDestroy, and destroy: OnDestroy if implemented, then zero) operating
// through unsafe pointers into the GC-visible backing arrays chunk.go
// allocates. copyFn/moveFn/destroyFn are built once per Go type via
// generics at registration time, so they run as plain dereferences rather
// than per-call reflection.
type componentType struct {
	id    ComponentID
	typ   reflect.Type
	name  string
	size  uintptr
	align uintptr

	copyFn    func(dst, src unsafe.Pointer)
	moveFn    func(dst, src unsafe.Pointer)
	destroyFn func(p unsafe.Pointer)
}

var (
	componentRegistryMu sync.RWMutex
	componentsByType    = map[reflect.Type]*componentType{}
	componentsByID      = map[ComponentID]*componentType{}
	nextComponentID     ComponentID
)

// RegisterComponent assigns (or returns the existing) process-wide id for
// component type T together with its vtable. Idempotent: the first call for
// a given T does the real registration work; every subsequent call, for
// that T, returns the same id. Panics (precondition violation; see
// errors.go) if registering a genuinely new type would exceed
// Config.MaxComponents.
func RegisterComponent[T any]() ComponentID {
	typ := reflect.TypeFor[T]()

	componentRegistryMu.RLock()
	if info, ok := componentsByType[typ]; ok {
		componentRegistryMu.RUnlock()
		return info.id
	}
	componentRegistryMu.RUnlock()

	componentRegistryMu.Lock()
	defer componentRegistryMu.Unlock()
	if info, ok := componentsByType[typ]; ok {
		return info.id
	}

	if int(nextComponentID) >= Config.MaxComponents {
		panic(bark.AddTrace(ComponentCapacityError{MaxComponents: Config.MaxComponents}))
	}

	id := nextComponentID
	nextComponentID++

	hasDestroyer := reflect.PointerTo(typ).Implements(destroyerType)

	info := &componentType{
		id:    id,
		typ:   typ,
		name:  typeName(typ),
		size:  typ.Size(),
		align: uintptr(typ.Align()),
		copyFn: func(dst, src unsafe.Pointer) {
			*(*T)(dst) = *(*T)(src)
		},
		moveFn: func(dst, src unsafe.Pointer) {
			*(*T)(dst) = *(*T)(src)
			var zero T
			*(*T)(src) = zero
		},
		destroyFn: func(p unsafe.Pointer) {
			if hasDestroyer {
				if d, ok := any((*T)(p)).(Destroyer); ok {
					d.OnDestroy()
				}
			}
			var zero T
			*(*T)(p) = zero
		},
	}
	componentsByType[typ] = info
	componentsByID[id] = info
	return id
}

// componentInfoFor returns T's descriptor, registering it on first use.
// Every generated accessor (Get, AddEntityN, ForEachN, ...) resolves its
// component types through this, so callers never have to call
// RegisterComponent themselves — though they may, to control registration
// order (and thus id assignment, and thus archetype layout) up front.
func componentInfoFor[T any]() *componentType {
	typ := reflect.TypeFor[T]()
	componentRegistryMu.RLock()
	info, ok := componentsByType[typ]
	componentRegistryMu.RUnlock()
	if ok {
		return info
	}
	id := RegisterComponent[T]()
	componentRegistryMu.RLock()
	defer componentRegistryMu.RUnlock()
	_ = id
	return componentsByType[typ]
}

// typeName renders a reflect.Type's bare identifier, trimming package path
// and pointer/slice decoration, the same trimming ComponentsAsString-style
// debug helpers apply.
func typeName(t reflect.Type) string {
	s := t.String()
	s = strings.TrimPrefix(s, "*")
	parts := strings.Split(s, ".")
	return parts[len(parts)-1]
}
