package sumtree

import "fmt"

// Entry is a leaf returned by Find: its index in [0, Cap()), its current
// weight, and the payload stored alongside it.
type Entry[T any] struct {
	Leaf    int
	Weight  float64
	Payload T
}

// Find returns the entry of the leaf whose cumulative weight interval
// contains target. A leaf with weight w owns the half-open interval
// [c, c+w) where c is the sum of the weights of the leaves preceding it in
// tree order; leaves with weight 0 own an empty interval and are never
// returned for an in-range target.
//
// If scale is true, target is interpreted as a fraction of the total weight
// and is multiplied by Total() before the search. If scale is false, target
// is an absolute cumulative value and should be in [0, Total()).
//
// Out-of-range targets are clamped rather than rejected: a negative target
// resolves to the first leaf in cumulative order, and a target greater than
// or equal to the total resolves to the last leaf in cumulative order.
// Cumulative order matches leaf index order when the capacity is a power of
// two; otherwise the deepest tree level wraps before the shallower one.
//
// Find returns ErrEmptyTree if the total weight is 0, as no target has a
// leaf to resolve to.
func (t *Tree[T]) Find(target float64, scale bool) (Entry[T], error) {
	total := t.nodes[0]
	if total == 0 {
		return Entry[T]{}, fmt.Errorf("%w: total weight is 0", ErrEmptyTree)
	}
	if scale {
		target *= total
	}

	i := 0
	for i < t.capacity-1 {
		left := 2*i + 1
		if target < t.nodes[left] {
			i = left
		} else {
			i = left + 1
			target -= t.nodes[left]
		}
	}

	leaf := i - (t.capacity - 1)
	if leaf >= t.capacity {
		// Cumulative rounding drove the walk past the last leaf.
		leaf = t.capacity - 1
	}
	return Entry[T]{
		Leaf:    leaf,
		Weight:  t.nodes[leaf+t.capacity-1],
		Payload: t.payloads[leaf],
	}, nil
}
