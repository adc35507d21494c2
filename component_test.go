package archon

import (
	"testing"
	"unsafe"
)

type compTestVal struct{ N int }

func TestRegisterComponentIsIdempotent(t *testing.T) {
	id1 := RegisterComponent[compTestVal]()
	id2 := RegisterComponent[compTestVal]()
	if id1 != id2 {
		t.Fatalf("expected the same id across repeated registration, got %d and %d", id1, id2)
	}
}

func TestVtableCopyMoveDestroy(t *testing.T) {
	RegisterComponent[compTestVal]()
	ct := componentInfoFor[compTestVal]()

	src := compTestVal{N: 42}
	var dst compTestVal

	ct.copyFn(unsafe.Pointer(&dst), unsafe.Pointer(&src))
	if dst.N != 42 {
		t.Fatalf("expected copy to produce 42, got %d", dst.N)
	}
	if src.N != 42 {
		t.Fatalf("copy must not alter the source")
	}

	var moved compTestVal
	ct.moveFn(unsafe.Pointer(&moved), unsafe.Pointer(&src))
	if moved.N != 42 {
		t.Fatalf("expected move to produce 42, got %d", moved.N)
	}
	if src.N != 0 {
		t.Fatalf("expected move to zero the source, got %d", src.N)
	}

	ct.destroyFn(unsafe.Pointer(&moved))
	if moved.N != 0 {
		t.Fatalf("expected destroy to zero a plain value, got %d", moved.N)
	}
}

type compTestCounted struct{ Counter *int }

func (c *compTestCounted) OnDestroy() { *c.Counter-- }

func TestDestroyerHookInvokedOnlyByDestroy(t *testing.T) {
	RegisterComponent[compTestCounted]()
	ct := componentInfoFor[compTestCounted]()

	n := 1
	v := compTestCounted{Counter: &n}

	var moved compTestCounted
	ct.moveFn(unsafe.Pointer(&moved), unsafe.Pointer(&v))
	if n != 1 {
		t.Fatalf("move must not invoke OnDestroy, counter changed to %d", n)
	}

	ct.destroyFn(unsafe.Pointer(&moved))
	if n != 0 {
		t.Fatalf("expected destroy to invoke OnDestroy and decrement counter to 0, got %d", n)
	}
}
