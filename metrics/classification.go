// Package metrics provides evaluation metrics for classifiers.
package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/randforest/pkg/errors"
)

// Accuracy returns the fraction of positions where yPred equals yTrue.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueErrorWithCause("Accuracy", "empty vector", errors.ErrEmptyData)
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	var correct int
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// AccuracyMatrix is Accuracy for n×1 matrices.
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()
	if rTrue == 0 {
		return 0, errors.NewValueErrorWithCause("AccuracyMatrix", "empty matrix", errors.ErrEmptyData)
	}
	if cTrue != 1 || cPred != 1 {
		return 0, errors.NewValueError("AccuracyMatrix", "must be a column vector (n×1 matrix)")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("AccuracyMatrix", rTrue, rPred, 0)
	}

	yTrueVec := mat.NewVecDense(rTrue, nil)
	yPredVec := mat.NewVecDense(rPred, nil)
	for i := 0; i < rTrue; i++ {
		yTrueVec.SetVec(i, yTrue.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}
	return Accuracy(yTrueVec, yPredVec)
}

// LabelAccuracy is Accuracy over integer labels.
func LabelAccuracy(yTrue, yPred []int) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewValueErrorWithCause("LabelAccuracy", "empty labels", errors.ErrEmptyData)
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewDimensionError("LabelAccuracy", len(yTrue), len(yPred), 0)
	}
	var correct int
	for i, want := range yTrue {
		if yPred[i] == want {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ConfusionMatrix counts predictions per (true, predicted) label pair.
// Entry (i, j) is the number of samples of label i predicted as j. Labels
// must lie in [0, classes).
func ConfusionMatrix(yTrue, yPred []int, classes int) (*mat.Dense, error) {
	if len(yTrue) == 0 {
		return nil, errors.NewValueErrorWithCause("ConfusionMatrix", "empty labels", errors.ErrEmptyData)
	}
	if len(yPred) != len(yTrue) {
		return nil, errors.NewDimensionError("ConfusionMatrix", len(yTrue), len(yPred), 0)
	}
	if classes < 1 {
		return nil, errors.NewValidationError("classes", "must be at least 1", classes)
	}

	cm := mat.NewDense(classes, classes, nil)
	for i, t := range yTrue {
		p := yPred[i]
		if t < 0 || t >= classes || p < 0 || p >= classes {
			return nil, errors.NewValidationError("label", "must lie in [0, classes)", [2]int{t, p})
		}
		cm.Set(t, p, cm.At(t, p)+1)
	}
	return cm, nil
}

// PerClassAccuracy returns, for every label, the share of its samples that
// were predicted correctly (the diagonal of cm over its row sums). Labels
// without samples get 0.
func PerClassAccuracy(cm mat.Matrix) []float64 {
	r, _ := cm.Dims()
	acc := make([]float64, r)
	for i := 0; i < r; i++ {
		total := floats.Sum(mat.Row(nil, i, cm))
		if total > 0 {
			acc[i] = cm.At(i, i) / total
		}
	}
	return acc
}
