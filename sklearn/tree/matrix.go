package tree

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/randforest/pkg/errors"
)

// toInt converts a matrix entry that must hold an integer.
func toInt(param string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, errors.NewValidationError(param, "must be an integer", v)
	}
	return int(v), nil
}

// SamplesFromMatrix builds label-prefixed sample rows from a feature matrix X
// (n×d) and a label column y (n×1).
func SamplesFromMatrix(op string, X, y mat.Matrix) ([][]int, error) {
	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueErrorWithCause(op, "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return nil, errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return nil, errors.NewValueError(op, "y must be a column vector")
	}

	samples := make([][]int, r)
	for i := 0; i < r; i++ {
		row := make([]int, c+1)
		label, err := toInt("label", y.At(i, 0))
		if err != nil {
			return nil, err
		}
		row[0] = label
		for j := 0; j < c; j++ {
			if row[j+1], err = toInt("feature", X.At(i, j)); err != nil {
				return nil, err
			}
		}
		samples[i] = row
	}
	return samples, nil
}

// FeatureRowsFromMatrix converts X (n×nFeatures) into integer query vectors.
func FeatureRowsFromMatrix(op string, X mat.Matrix, nFeatures int) ([][]int, error) {
	r, c := X.Dims()
	if c != nFeatures {
		return nil, errors.NewDimensionError(op, nFeatures, c, 1)
	}
	rows := make([][]int, r)
	for i := 0; i < r; i++ {
		row := make([]int, c)
		for j := 0; j < c; j++ {
			v, err := toInt("feature", X.At(i, j))
			if err != nil {
				return nil, err
			}
			row[j] = v
		}
		rows[i] = row
	}
	return rows, nil
}

// LabelsFromMatrix reads an n×1 label column.
func LabelsFromMatrix(op string, y mat.Matrix) ([]int, error) {
	r, c := y.Dims()
	if c != 1 {
		return nil, errors.NewValueError(op, "y must be a column vector")
	}
	labels := make([]int, r)
	for i := 0; i < r; i++ {
		v, err := toInt("label", y.At(i, 0))
		if err != nil {
			return nil, err
		}
		labels[i] = v
	}
	return labels, nil
}
