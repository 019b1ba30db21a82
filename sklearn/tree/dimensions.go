package tree

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/randforest/core/random"
)

// RandomDimensions draws ⌊√width⌋ distinct candidate feature columns from
// [1, width-1], width being the label-inclusive row width. The count is
// clamped to the width-1 available columns, so narrow rows never stall the
// draw; width <= 1 yields no candidates.
func RandomDimensions(width int, src rand.Source) []int {
	available := width - 1
	if available <= 0 {
		return nil
	}
	k := int(math.Floor(math.Sqrt(float64(width))))
	dims := random.WithoutReplacement(k, available, src)
	for i := range dims {
		dims[i]++ // skip the label column
	}
	return dims
}
