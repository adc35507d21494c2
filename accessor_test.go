package archon

import "testing"

type acTestPos struct{ x, y int }
type acTestVel struct{ dx, dy int }

func TestAccessorGetHasCheck(t *testing.T) {
	w := NewWorld()
	pos := NewAccessor[acTestPos]()
	vel := NewAccessor[acTestVel]()

	e := AddEntity2(w, acTestPos{x: 1, y: 2}, acTestVel{dx: 3, dy: 4})
	lone := AddEntity1(w, acTestPos{x: 9, y: 9})

	if !pos.Has(w, e) {
		t.Fatalf("expected entity to carry acTestPos")
	}
	if !vel.Has(w, e) {
		t.Fatalf("expected entity to carry acTestVel")
	}
	if vel.Has(w, lone) {
		t.Fatalf("expected lone entity to not carry acTestVel")
	}

	p := pos.Get(w, e)
	if p.x != 1 || p.y != 2 {
		t.Fatalf("expected {1 2}, got %+v", p)
	}

	rec := w.recordFor(e)
	if !pos.Check(rec.archetype) {
		t.Fatalf("expected Check to report true for an archetype holding acTestPos")
	}
	loneRec := w.recordFor(lone)
	if vel.Check(loneRec.archetype) {
		t.Fatalf("expected Check to report false for an archetype missing acTestVel")
	}
}

func TestAccessorGetSafeAndGetPanic(t *testing.T) {
	w := NewWorld()
	vel := NewAccessor[acTestVel]()

	lone := AddEntity1(w, acTestPos{x: 5, y: 6})

	if v, ok := vel.GetSafe(w, lone); ok || v != nil {
		t.Fatalf("expected GetSafe to report (nil, false) for a missing component")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Get to panic for a missing component")
		}
	}()
	vel.Get(w, lone)
}
