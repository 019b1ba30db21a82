package tree

import (
	"github.com/YuminosukeSato/randforest/pkg/errors"
)

// Params bounds the value ranges of a sample set. Labels lie in
// [0, Classes) and feature values in [0, MaxFeatureValue].
type Params struct {
	Classes         int
	MaxFeatureValue int
}

// DefaultParams matches handwritten-digit data: ten labels and byte-valued
// pixels.
var DefaultParams = Params{Classes: 10, MaxFeatureValue: 255}

// Validate checks that both bounds are usable.
func (p Params) Validate() error {
	if p.Classes < 1 {
		return errors.NewValidationError("classes", "must be at least 1", p.Classes)
	}
	if p.MaxFeatureValue < 0 {
		return errors.NewValidationError("max_feature_value", "must not be negative", p.MaxFeatureValue)
	}
	return nil
}

// CheckSamples verifies that samples is non-empty, rectangular and within
// the bounds of p. It returns the common row width. A ragged row yields a
// DimensionError marked with ErrRaggedData.
func (p Params) CheckSamples(op string, samples [][]int) (int, error) {
	if len(samples) == 0 {
		return 0, errors.NewValueErrorWithCause(op, "sample set is empty", errors.ErrEmptyData)
	}
	width := len(samples[0])
	if width == 0 {
		return 0, errors.NewValueError(op, "samples must contain at least the label column")
	}
	for i, s := range samples {
		if len(s) != width {
			err := errors.Mark(errors.NewDimensionError(op, width, len(s), 1), errors.ErrRaggedData)
			return 0, errors.Wrapf(err, "sample %d", i)
		}
		if s[0] < 0 || s[0] >= p.Classes {
			return 0, errors.NewValidationError("label", "must lie in [0, classes)", s[0])
		}
		for _, v := range s[1:] {
			if v < 0 || v > p.MaxFeatureValue {
				return 0, errors.NewValidationError("feature", "must lie in [0, max_feature_value]", v)
			}
		}
	}
	return width, nil
}
