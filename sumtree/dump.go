package sumtree

import (
	"fmt"
	"strings"
)

// Node is a pair of node index and weight as returned by Nodes.
type Node struct {
	Index  int
	Weight float64
}

// Nodes returns the index and current weight of every node of the tree in
// index order, internal nodes first. It is meant for debugging.
func (t *Tree[T]) Nodes() []Node {
	nodes := make([]Node, len(t.nodes))
	for i, w := range t.nodes {
		nodes[i] = Node{Index: i, Weight: w}
	}
	return nodes
}

// String returns a representation of the tree's weights with one depth level
// per line. For example:
//
//	depth 0: [6]
//	depth 1: [3 3]
//	depth 2: [1 2 3 0]
func (t *Tree[T]) String() string {
	sb := strings.Builder{}
	for depth, start := 0, 0; start < len(t.nodes); depth++ {
		end := 2*start + 1
		if end > len(t.nodes) {
			end = len(t.nodes)
		}
		if depth > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("depth %d: %v", depth, t.nodes[start:end]))
		start = end
	}
	return sb.String()
}
