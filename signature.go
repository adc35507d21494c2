package archon

import (
	"sort"
	"strings"

	"github.com/TheBitDrifter/mask"
)

// Signature is a fixed-width bitset identifying an archetype or a query by
// the component type ids it includes. Bit k is set iff component id k is
// present. mask.Mask is comparable, so Signature can be used directly as a
// map key — exactly the shape the archetype registry and query cache need.
type Signature = mask.Mask

// signatureOf builds the Signature for a set of component ids.
func signatureOf(ids ...ComponentID) Signature {
	var sig Signature
	for _, id := range ids {
		sig.Mark(int(id))
	}
	return sig
}

// containsAll reports whether sig is contained in other, i.e. sig ⊑ other:
// every bit set in sig is also set in other. This is the query-matching
// relation an archetype signature must satisfy to match a query.
func containsAll(sig, other Signature) bool {
	return other.ContainsAll(sig)
}

// signatureString renders a Signature's registered component names in
// sorted order, e.g. "[Position, Velocity]", a ComponentsAsString-style
// debug helper adapted to work from a Signature rather than a live
// component slice.
func signatureString(sig Signature) string {
	var names []string
	componentRegistryMu.RLock()
	for id, info := range componentsByID {
		if sig.ContainsAll(signatureOf(id)) {
			names = append(names, info.name)
		}
	}
	componentRegistryMu.RUnlock()
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}
