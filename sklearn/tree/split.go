package tree

// NoSplit is returned by FindBestSplit for both the index and the value when
// no candidate has strictly positive information gain.
const NoSplit = -1

// gainTolerance absorbs float64 rounding in information gain. A partition
// whose children keep the parent's label proportions has gain 0 but may
// evaluate to about 1e-16.
const gainTolerance = 1e-12

// UniqueValues returns the distinct values of column col in ascending order.
// Values must lie in [0, maxValue].
func UniqueValues(samples [][]int, col, maxValue int) []int {
	seen := make([]bool, maxValue+1)
	for _, s := range samples {
		seen[s[col]] = true
	}
	values := make([]int, 0, len(seen))
	for v, ok := range seen {
		if ok {
			values = append(values, v)
		}
	}
	return values
}

// SplitIndexes partitions the row indexes of samples by the value of column
// col: rows with a value <= value go left, the rest go right.
func SplitIndexes(samples [][]int, col, value int) (left, right []int) {
	for i, s := range samples {
		if s[col] <= value {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

// Split is SplitIndexes returning the rows themselves. The rows are shared
// with samples, not copied.
func Split(samples [][]int, col, value int) (left, right [][]int) {
	li, ri := SplitIndexes(samples, col, value)
	left = make([][]int, len(li))
	for k, i := range li {
		left[k] = samples[i]
	}
	right = make([][]int, len(ri))
	for k, i := range ri {
		right[k] = samples[i]
	}
	return left, right
}

// FindBestSplit searches the columns in dims for the threshold maximising
// information gain. Every distinct observed value of a column is tried as a
// threshold; partitions with an empty side are skipped. A candidate replaces
// the current best only when its gain exceeds it by more than gainTolerance,
// starting from 0, so the first of several equal candidates wins and a
// zero-gain split is never chosen. It returns (NoSplit, NoSplit) when
// nothing qualifies.
func FindBestSplit(samples [][]int, dims []int, p Params) (index, value int) {
	index, value = NoSplit, NoSplit
	if len(samples) == 0 {
		return index, value
	}
	maxGain := 0.0
	parent := Entropy(samples, p.Classes)

	for _, d := range dims {
		for _, v := range UniqueValues(samples, d, p.MaxFeatureValue) {
			left, right := SplitIndexes(samples, d, v)
			if len(left) == 0 || len(right) == 0 {
				continue
			}
			gain := InformationGain(parent, samples, left, right, p.Classes)
			if gain > maxGain+gainTolerance {
				maxGain = gain
				index, value = d, v
			}
		}
	}
	return index, value
}
