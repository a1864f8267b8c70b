package depset

// Builder accumulates direct elements and transitive sets and builds the
// resulting Set in one shot. It exists so call sites composing a closure
// from many sources do not have to assemble intermediate slices.
//
// A Builder is single-writer; the built Set is what gets shared.
type Builder[E comparable] struct {
	order    Order
	direct   []E
	children []*Set[E]
}

// NewBuilder creates a Builder for the given order.
func NewBuilder[E comparable](order Order) *Builder[E] {
	return &Builder[E]{order: order}
}

// Add appends a direct element.
func (b *Builder[E]) Add(e E) *Builder[E] {
	b.direct = append(b.direct, e)
	return b
}

// AddAll appends direct elements in order.
func (b *Builder[E]) AddAll(elems ...E) *Builder[E] {
	b.direct = append(b.direct, elems...)
	return b
}

// AddTransitive appends child sets. Order compatibility is checked at
// Build time.
func (b *Builder[E]) AddTransitive(sets ...*Set[E]) *Builder[E] {
	b.children = append(b.children, sets...)
	return b
}

// Build constructs the set. It fails with ErrIncompatibleOrder if any
// transitive set was built with a different order.
func (b *Builder[E]) Build() (*Set[E], error) {
	return New(b.order, b.direct, b.children...)
}
