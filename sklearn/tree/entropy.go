package tree

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// labelCounts tallies the labels of the rows of samples selected by idx, or
// of every row when idx is nil.
func labelCounts(samples [][]int, idx []int, classes int) ([]int, int) {
	counts := make([]int, classes)
	if idx == nil {
		for _, s := range samples {
			counts[s[0]]++
		}
		return counts, len(samples)
	}
	for _, i := range idx {
		counts[samples[i][0]]++
	}
	return counts, len(idx)
}

// entropyOfCounts is the Shannon entropy in bits of a label histogram.
func entropyOfCounts(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	p := make([]float64, len(counts))
	for label, c := range counts {
		p[label] = float64(c) / float64(total)
	}
	// stat.Entropy uses the natural logarithm.
	return stat.Entropy(p) / math.Ln2
}

// Entropy returns the Shannon entropy, in bits, of the label distribution of
// samples. Labels must lie in [0, classes). A set with a single label has
// entropy 0; an even two-label split has entropy 1.
func Entropy(samples [][]int, classes int) float64 {
	counts, total := labelCounts(samples, nil, classes)
	return entropyOfCounts(counts, total)
}

// EntropyByIndexes is Entropy restricted to the rows of samples listed in idx.
func EntropyByIndexes(samples [][]int, idx []int, classes int) float64 {
	counts, total := labelCounts(samples, idx, classes)
	return entropyOfCounts(counts, total)
}

// InformationGain returns parent - (|L|·H(L) + |R|·H(R)) / (|L|+|R|) for the
// partition of samples into the rows listed in left and right.
func InformationGain(parent float64, samples [][]int, left, right []int, classes int) float64 {
	n := len(left) + len(right)
	if n == 0 {
		return 0
	}
	weighted := float64(len(left))*EntropyByIndexes(samples, left, classes) +
		float64(len(right))*EntropyByIndexes(samples, right, classes)
	return parent - weighted/float64(n)
}
