package depset

// Order is the deterministic flattening strategy of a closure set. The set
// of orders is closed: every traversal decision is an exhaustive switch
// over these constants, never open extension.
//
// Two sets may only be combined when their orders match; mixing orders is
// a usage error, not something that is silently resolved.
type Order int

const (
	// Stable is a depth-first order, direct elements before children,
	// first occurrence wins. Intended where human-readable stability
	// across incremental re-computation matters more than toolchain
	// ordering constraints.
	Stable Order = iota
	// Compile orders direct elements before transitive ones, first
	// occurrence wins, mirroring how compilation inputs are ordered (own
	// flags before transitive flags). Iteration coincides with Stable;
	// the orders stay distinct so sets built for one purpose cannot be
	// merged into the other.
	Compile
	// Link orders direct elements before children and keeps a duplicate
	// at its last required position instead of its first, since native
	// linkers are order-sensitive per archive: a library needed by
	// several dependents must appear after the last of them.
	Link
	// NaiveLink is Link without the duplicate-sinking pass: a plain
	// concatenation with first-occurrence dedup. Cheaper, valid when the
	// inputs are already known acyclic at the symbol level.
	NaiveLink
)

// String returns the lowercase name of the order.
func (o Order) String() string {
	switch o {
	case Stable:
		return "stable"
	case Compile:
		return "compile"
	case Link:
		return "link"
	case NaiveLink:
		return "naive_link"
	default:
		return "unknown"
	}
}

// lastOccurrenceWins reports whether a duplicate element is kept at its
// last position in the flattened sequence rather than its first.
func (o Order) lastOccurrenceWins() bool {
	return o == Link
}
