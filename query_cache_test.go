package archon

import "testing"

type qcA struct{}
type qcB struct{}
type qcC struct{}
type qcD struct{}

func TestQueryCacheReconciliationBothDirections(t *testing.T) {
	a := RegisterComponent[qcA]()
	b := RegisterComponent[qcB]()
	c := RegisterComponent[qcC]()
	d := RegisterComponent[qcD]()

	cache := newQueryCache()

	abc := newArchetype(signatureOf(a, b, c), nil, 100, 10)
	cache.registerArchetype(abc)

	// A query registered after the archetype must still find it.
	matches := cache.archetypesFor(signatureOf(a, b))
	if _, ok := matches[abc.Signature()]; !ok {
		t.Fatalf("expected query {A,B} to match existing archetype {A,B,C}")
	}

	ab := newArchetype(signatureOf(a, b), nil, 100, 10)
	cache.registerArchetype(ab)

	// A query registered before a new, narrower archetype must pick it up
	// once that archetype is registered (archetype-after-query direction).
	abMatches := cache.archetypesFor(signatureOf(a, b))
	if _, ok := abMatches[ab.Signature()]; !ok {
		t.Fatalf("expected query {A,B} to pick up newly created archetype {A,B} too")
	}
	if _, ok := abMatches[abc.Signature()]; !ok {
		t.Fatalf("expected query {A,B} to still contain archetype {A,B,C}")
	}

	// A query narrower than both existing archetypes must match both of
	// them, even though neither archetype's own signature was ever asked
	// for as {A} specifically (registerArchetype must reconcile every
	// known key, not just ones previously asked for via archetypesFor).
	onlyA := cache.archetypesFor(signatureOf(a))
	if len(onlyA) != 2 {
		t.Fatalf("expected query {A} to match both {A,B} and {A,B,C}, got %d matches", len(onlyA))
	}
	if _, ok := onlyA[ab.Signature()]; !ok {
		t.Fatalf("expected query {A} to match archetype {A,B}")
	}
	if _, ok := onlyA[abc.Signature()]; !ok {
		t.Fatalf("expected query {A} to match archetype {A,B,C}")
	}

	// A signature that is first a query and only later becomes an
	// archetype must still end up matching itself, unaffected by the
	// unrelated archetypes registered above.
	onlyD := cache.archetypesFor(signatureOf(d))
	if len(onlyD) != 0 {
		t.Fatalf("expected no archetypes yet for query {D} alone, got %d", len(onlyD))
	}
	dArch := newArchetype(signatureOf(d), nil, 100, 10)
	cache.registerArchetype(dArch)
	onlyD = cache.archetypesFor(signatureOf(d))
	if _, ok := onlyD[dArch.Signature()]; !ok {
		t.Fatalf("expected query {D} (registered before archetype {D} existed) to match it afterward")
	}
	if len(onlyD) != 1 {
		t.Fatalf("expected query {D} to match only archetype {D}, got %d matches", len(onlyD))
	}
}
