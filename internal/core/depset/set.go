// Package depset implements the ordered, deduplicating transitive-closure
// set of the build graph: an immutable DAG node holding direct elements
// plus shared child sets, flattened lazily under a fixed Order.
//
// Construction cost is proportional to the direct-element and child count
// at one level, never to the size of the transitive closure. The same
// child may be referenced from any number of parents; nothing is copied
// and nothing mutates after publication, so sets are safe for concurrent
// readers without locking.
package depset

import (
	"iter"
	"slices"
	"sync/atomic"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Set is an immutable node in a closure DAG. The zero value is not usable;
// construct sets with New or a Builder.
type Set[E comparable] struct {
	order    Order
	direct   []E
	children []*Set[E]
	empty    bool

	// flat caches the flattened sequence after the first traversal.
	// Publication is atomic; racing traversals compute identical slices.
	flat atomic.Pointer[[]E]
}

// New creates a set with the given order, direct elements and child sets.
// Direct elements are deduplicated against each other (last occurrence
// wins for Link, first otherwise); deduplication against descendants
// happens only at flattening time. A child whose order differs from the
// requested order fails with ErrIncompatibleOrder.
func New[E comparable](order Order, direct []E, children ...*Set[E]) (*Set[E], error) {
	empty := true
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.order != order {
			err := zerr.Wrap(domain.ErrIncompatibleOrder, "cannot combine closure sets")
			err = zerr.With(err, "want", order.String())
			err = zerr.With(err, "got", c.order.String())
			return nil, err
		}
		if !c.empty {
			empty = false
		}
	}

	kept := dedupeLevel(direct, order.lastOccurrenceWins())
	if len(kept) > 0 {
		empty = false
	}

	s := &Set[E]{
		order:    order,
		direct:   kept,
		children: slices.DeleteFunc(slices.Clone(children), func(c *Set[E]) bool { return c == nil }),
		empty:    empty,
	}
	return s, nil
}

// Empty returns the empty set for the given order.
func Empty[E comparable](order Order) *Set[E] {
	s, _ := New[E](order, nil)
	return s
}

// Order returns the order the set was built with.
func (s *Set[E]) Order() Order {
	return s.order
}

// IsEmpty reports whether the whole closure contains no elements. It is
// derived structurally at construction time; no traversal happens here.
func (s *Set[E]) IsEmpty() bool {
	return s.empty
}

// Direct returns a copy of the direct elements of this node.
func (s *Set[E]) Direct() []E {
	return slices.Clone(s.direct)
}

// Children returns a copy of the child-set list of this node.
func (s *Set[E]) Children() []*Set[E] {
	return slices.Clone(s.children)
}

// Equal reports whether two sets are interchangeable for caching and
// structure sharing: same order, same direct elements, same child
// identities. It is deliberately defined over the unflattened tuple, never
// over the flattened output, so comparing stays O(direct + children).
func (s *Set[E]) Equal(other *Set[E]) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if s.order != other.order || !slices.Equal(s.direct, other.direct) {
		return false
	}
	return slices.Equal(s.children, other.children)
}

// Flatten performs a single deterministic traversal of the DAG reachable
// from this node and returns the deduplicated sequence dictated by the
// order. Each distinct node object is visited at most once, detected by
// identity, so cost is bounded by the number of distinct nodes rather
// than the number of paths to them. The result is memoized; repeated
// calls return the cached slice.
//
// A set reachable from itself fails with ErrCyclicClosure. Construction
// makes that impossible for well-behaved callers; the check here is
// defensive, since looping instead of failing would hang the build.
func (s *Set[E]) Flatten() ([]E, error) {
	if p := s.flat.Load(); p != nil {
		return *p, nil
	}

	var buf []E
	state := make(map[*Set[E]]visitState)
	if err := walk(s, state, &buf); err != nil {
		return nil, err
	}

	flat := dedupeLevel(buf, s.order.lastOccurrenceWins())
	s.flat.Store(&flat)
	return flat, nil
}

// All returns a restartable sequence over the flattened closure.
func (s *Set[E]) All() (iter.Seq[E], error) {
	flat, err := s.Flatten()
	if err != nil {
		return nil, err
	}
	return func(yield func(E) bool) {
		for _, e := range flat {
			if !yield(e) {
				return
			}
		}
	}, nil
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

// walk appends every element reachable from n to buf, direct elements
// before children, visiting each node once. Duplicate elements stay in
// buf; the caller resolves them per the order's occurrence rule.
func walk[E comparable](n *Set[E], state map[*Set[E]]visitState, buf *[]E) error {
	switch state[n] {
	case visiting:
		return zerr.With(zerr.Wrap(domain.ErrCyclicClosure, "closure set is reachable from itself"), "order", n.order.String())
	case visited:
		return nil
	}
	state[n] = visiting

	*buf = append(*buf, n.direct...)
	for _, c := range n.children {
		if err := walk(c, state, buf); err != nil {
			return err
		}
	}

	state[n] = visited
	return nil
}

// dedupeLevel removes duplicates from elems, keeping either the first or
// the last occurrence of each element. It returns a fresh slice.
func dedupeLevel[E comparable](elems []E, lastWins bool) []E {
	if lastWins {
		return dedupeKeepLast(elems)
	}
	return dedupeKeepFirst(elems)
}

func dedupeKeepFirst[E comparable](elems []E) []E {
	seen := make(map[E]struct{}, len(elems))
	out := make([]E, 0, len(elems))
	for _, e := range elems {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func dedupeKeepLast[E comparable](elems []E) []E {
	seen := make(map[E]struct{}, len(elems))
	out := make([]E, 0, len(elems))
	for i := len(elems) - 1; i >= 0; i-- {
		e := elems[i]
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	slices.Reverse(out)
	return out
}
