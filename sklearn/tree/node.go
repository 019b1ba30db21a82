package tree

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/randforest/pkg/errors"
)

// Node is a binary decision tree node. A leaf carries Result; a split node
// carries SplitIndex and SplitValue and owns its two children. Rows whose
// value at SplitIndex is <= SplitValue descend Left.
//
// SplitIndex counts the label column, so it addresses training rows directly
// and query vectors (which have no label) at SplitIndex-1.
type Node struct {
	IsLeaf     bool
	Result     int
	SplitIndex int
	SplitValue int
	Left       *Node
	Right      *Node
}

// NewNode returns an untrained node.
func NewNode() *Node {
	return &Node{}
}

// Train grows the tree rooted at n from samples. Each row is a label followed
// by feature values within the bounds of p. src drives the choice of
// candidate columns at every split. Train must be called once per node.
func (n *Node) Train(samples [][]int, p Params, src rand.Source) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := p.CheckSamples("Node.Train", samples); err != nil {
		return err
	}
	if src == nil {
		return errors.NewValueError("Node.Train", "random source is nil")
	}
	n.train(samples, p, src)
	return nil
}

func (n *Node) train(samples [][]int, p Params, src rand.Source) {
	if sameClass(samples) {
		n.makeLeaf(samples, true, p.Classes)
		return
	}

	dims := RandomDimensions(len(samples[0]), src)
	index, value := FindBestSplit(samples, dims, p)
	if index == NoSplit && value == NoSplit {
		n.makeLeaf(samples, false, p.Classes)
		return
	}

	left, right := Split(samples, index, value)
	n.SplitIndex = index
	n.SplitValue = value
	n.Left = NewNode()
	n.Right = NewNode()
	n.Left.train(left, p, src)
	n.Right.train(right, p, src)
}

// makeLeaf turns n into a leaf. Without a single class the most frequent
// label wins, the lowest label breaking ties.
func (n *Node) makeLeaf(samples [][]int, singleClass bool, classes int) {
	n.IsLeaf = true
	if singleClass {
		n.Result = samples[0][0]
		return
	}
	counts, _ := labelCounts(samples, nil, classes)
	best := 0
	for label := 1; label < classes; label++ {
		if counts[label] > counts[best] {
			best = label
		}
	}
	n.Result = best
}

func sameClass(samples [][]int) bool {
	first := samples[0][0]
	for _, s := range samples[1:] {
		if s[0] != first {
			return false
		}
	}
	return true
}

// Predict walks x, a feature vector without the label column, down to a
// leaf and returns its label. It does not modify the tree and may be called
// concurrently.
func (n *Node) Predict(x []int) int {
	cur := n
	for !cur.IsLeaf {
		if x[cur.SplitIndex-1] <= cur.SplitValue {
			cur = cur.Left
		} else {
			cur = cur.Right
		}
	}
	return cur.Result
}

// Stats describes the shape of a trained tree.
type Stats struct {
	Nodes  int
	Leaves int
	Depth  int
}

// Stats walks the tree rooted at n.
func (n *Node) Stats() Stats {
	if n.IsLeaf {
		return Stats{Nodes: 1, Leaves: 1}
	}
	l, r := n.Left.Stats(), n.Right.Stats()
	depth := l.Depth
	if r.Depth > depth {
		depth = r.Depth
	}
	return Stats{
		Nodes:  l.Nodes + r.Nodes + 1,
		Leaves: l.Leaves + r.Leaves,
		Depth:  depth + 1,
	}
}
