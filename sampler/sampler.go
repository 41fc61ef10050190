// Package sampler implements weighted random sampling on top of a sum tree.
package sampler

import (
	"fmt"
	"math/rand"

	"github.com/rhartert/priosample/sumtree"
)

// Sampler draws entries from a sum tree with probability proportional to
// their weight.
//
// A Sampler is a pure consumer of the tree: it only reads it, and entries
// can still be added to or updated in the tree between draws. It is not safe
// to draw while the tree is being mutated.
type Sampler[T any] struct {
	tree *sumtree.Tree[T]
	rng  *rand.Rand
}

// New returns a Sampler that draws entries from the given tree using the
// given random number generator. The rng must not be nil.
func New[T any](tree *sumtree.Tree[T], rng *rand.Rand) *Sampler[T] {
	return &Sampler[T]{tree: tree, rng: rng}
}

// Sample draws one entry using roulette wheel selection: the probability of
// an entry being returned is its weight divided by the tree's total weight.
// It returns sumtree.ErrEmptyTree if the tree has no weight.
func (s *Sampler[T]) Sample() (sumtree.Entry[T], error) {
	return s.tree.Find(s.rng.Float64(), true)
}

// SampleN draws n independent entries. The same entry can appear several
// times in the result.
func (s *Sampler[T]) SampleN(n int) ([]sumtree.Entry[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("number of samples must be non-negative, got %d", n)
	}
	entries := make([]sumtree.Entry[T], n)
	for i := range entries {
		e, err := s.Sample()
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return entries, nil
}

// Stratified draws n entries, one from each of the n equal-width strata
// that partition the cumulative weight range [0, Total()). Compared to n
// independent draws, a stratified batch spreads the samples over the whole
// distribution: an entry holding a large share of the total weight cannot
// crowd out the others from the batch.
func (s *Sampler[T]) Stratified(n int) ([]sumtree.Entry[T], error) {
	if n <= 0 {
		return nil, fmt.Errorf("number of strata must be greater than 0, got %d", n)
	}
	width := s.tree.Total() / float64(n)
	entries := make([]sumtree.Entry[T], n)
	for i := range entries {
		target := (float64(i) + s.rng.Float64()) * width
		e, err := s.tree.Find(target, false)
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	return entries, nil
}
