package archon

// queryCache maintains, for every signature ever asked for (as a query
// filter, or because a live archetype carries it), the set of archetype
// signatures it matches by the ⊑ (contained-in) relation: query signature
// q matches archetype signature a iff every bit set in q is also set in a
// (containsAll(q, a)). Every time either side introduces a signature the
// other side hasn't seen, the cache reconciles against everything already
// known, so a later lookup is a single map read instead of a scan over
// every live archetype.
//
// Built as a map-backed memo keyed by Signature, testing the relation via
// mask.Mask.ContainsAll; the bidirectional reconciliation (both sides stay
// correct regardless of which kind of signature — query or archetype — is
// introduced first, and regardless of which one happens to be introduced
// first for a given signature value) is this cache's own addition.
type queryCache struct {
	archetypes map[Signature]*Archetype
	matches    map[Signature]map[Signature]*Archetype
}

func newQueryCache() *queryCache {
	return &queryCache{
		archetypes: make(map[Signature]*Archetype),
		matches:    make(map[Signature]map[Signature]*Archetype),
	}
}

// registerArchetype introduces a newly created archetype to the cache.
// It reconciles in both directions: every signature already known as a
// cache key — whether seeded by an earlier query or by another
// archetype's own signature — picks up this archetype if the key is
// contained in it, and this archetype's own signature is seeded (or
// backfilled, via registerQuery) as a key in its own right, since an
// archetype signature is itself a valid query that must match at least
// itself and any existing archetype it happens to be a subset of.
func (c *queryCache) registerArchetype(arch *Archetype) {
	sig := arch.Signature()
	c.archetypes[sig] = arch

	for k := range c.matches {
		if containsAll(k, sig) {
			c.addMatch(k, arch)
		}
	}
	c.registerQuery(sig)
}

// registerQuery introduces a new query signature, reconciling it against
// every archetype signature already known, then returns the live set of
// matching archetypes (shared with future lookups; callers must not
// mutate it). If q is already a tracked key — whether from an earlier
// call here or from registerArchetype seeding it — that set is already
// complete, so it is returned directly without rescanning.
func (c *queryCache) registerQuery(q Signature) map[Signature]*Archetype {
	if existing, ok := c.matches[q]; ok {
		return existing
	}

	set := make(map[Signature]*Archetype)
	c.matches[q] = set

	for sig, arch := range c.archetypes {
		if containsAll(q, sig) {
			set[sig] = arch
		}
	}
	return set
}

func (c *queryCache) addMatch(q Signature, arch *Archetype) {
	set, ok := c.matches[q]
	if !ok {
		set = make(map[Signature]*Archetype)
		c.matches[q] = set
	}
	set[arch.Signature()] = arch
}

// archetypesFor returns every live archetype whose signature contains q,
// registering q as a tracked query signature on first use.
func (c *queryCache) archetypesFor(q Signature) map[Signature]*Archetype {
	return c.registerQuery(q)
}
