// Package sumtree implements a fixed-capacity binary sum tree for weighted
// random sampling.
//
// The tree holds up to capacity weighted entries, each made of a non-negative
// weight (its priority) and an opaque payload. Internal nodes cache the sum
// of their subtree's weights so that the total weight is readable in O(1)
// and so that the leaf owning a given cumulative weight value can be located
// in O(log capacity). Entries are appended in a circular fashion: once the
// tree is full, each Add overwrites the oldest entry.
//
// The tree performs no internal locking. Concurrent Find calls are safe, but
// mutations (Add, Update) must be serialized by the caller and must never run
// concurrently with a Find.
package sumtree

import (
	"errors"
	"fmt"

	"github.com/rhartert/yagh"
)

// Errors returned by the tree's operations. Returned errors are wrapped with
// additional context and should be tested with errors.Is.
var (
	ErrInvalidCapacity = errors.New("capacity must be greater than 0")
	ErrIndexOutOfRange = errors.New("leaf index out of range")
	ErrNegativeWeight  = errors.New("weight must be non-negative")
	ErrEmptyTree       = errors.New("tree has no weight")
)

// Tree is a fixed-capacity binary sum tree. The zero value is not usable;
// use New to create a Tree.
type Tree[T any] struct {
	capacity int

	// nodes represents a complete binary tree with capacity leaves stored
	// in an array of size 2*capacity-1. The root is at index 0. The left
	// child of a node at index i is at 2*i+1, and the right child at 2*i+2.
	// The weight of a parent is the sum of the weights of its children.
	// Leaf k is stored at index k + capacity - 1.
	nodes []float64

	// payloads holds one payload per leaf slot. Payloads are opaque to the
	// tree: they are never interpreted, copied, or compared.
	payloads []T

	// cursor is the next leaf slot to be overwritten by Add. It wraps
	// modulo capacity once the tree is full.
	cursor int

	// size is the number of leaf slots ever written, capped at capacity.
	size int

	// byWeight orders leaves by decreasing weight (costs are negated) so
	// that the largest leaf weight can be read in O(1).
	byWeight *yagh.IntMap[float64]
}

// New instantiates and returns a new Tree with the given number of leaf
// slots. All weights are initialized to 0. It returns ErrInvalidCapacity if
// capacity is not greater than 0.
func New[T any](capacity int) (*Tree[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Tree[T]{
		capacity: capacity,
		nodes:    make([]float64, 2*capacity-1),
		payloads: make([]T, capacity),
		byWeight: yagh.New[float64](capacity),
	}, nil
}

// Update sets the weight of the given leaf and restores the tree's sum
// invariant. The leaf must be in [0, Cap()) and the weight must be
// non-negative; Update validates both before mutating anything and returns
// ErrIndexOutOfRange or ErrNegativeWeight otherwise.
func (t *Tree[T]) Update(leaf int, weight float64) error {
	if leaf < 0 || t.capacity <= leaf {
		return fmt.Errorf("%w: leaf %d is not in [0, %d)", ErrIndexOutOfRange, leaf, t.capacity)
	}
	if weight < 0 {
		return fmt.Errorf("%w: got %f", ErrNegativeWeight, weight)
	}
	t.setWeight(leaf, weight)
	return nil
}

// Add stores the payload in the next leaf slot with the given weight and
// returns the leaf used, so that the entry's weight can later be revised
// with Update. Once the tree is full, Add silently overwrites the oldest
// entry (insertion order, independent of weights). It returns
// ErrNegativeWeight if the weight is negative, in which case the tree is
// left untouched.
func (t *Tree[T]) Add(weight float64, payload T) (int, error) {
	if weight < 0 {
		return -1, fmt.Errorf("%w: got %f", ErrNegativeWeight, weight)
	}

	leaf := t.cursor
	t.payloads[leaf] = payload
	t.setWeight(leaf, weight)

	t.cursor = (t.cursor + 1) % t.capacity
	if t.size < t.capacity {
		t.size++
	}
	return leaf, nil
}

// setWeight installs the leaf's new weight and adds the weight difference to
// each node on the ancestor chain up to the root. Ancestors are never
// re-summed from their children: the difference alone keeps them consistent.
func (t *Tree[T]) setWeight(leaf int, weight float64) {
	i := leaf + t.capacity - 1
	diff := weight - t.nodes[i]
	t.nodes[i] = weight
	for i > 0 {
		i = (i - 1) / 2
		t.nodes[i] += diff
	}
	t.byWeight.Put(leaf, -weight)
}

// Total returns the sum of all leaf weights.
func (t *Tree[T]) Total() float64 {
	return t.nodes[0]
}

// Max returns the largest current leaf weight, or 0 if no entry was ever
// written.
func (t *Tree[T]) Max() float64 {
	entry := t.byWeight.Min()
	if entry == nil {
		return 0
	}
	return -entry.Cost
}

// Len returns the number of leaf slots that have been written so far. It
// saturates at Cap() once the tree has wrapped.
func (t *Tree[T]) Len() int {
	return t.size
}

// Cap returns the number of leaf slots of the tree.
func (t *Tree[T]) Cap() int {
	return t.capacity
}
