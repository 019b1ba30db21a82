// Package model defines the estimator interfaces implemented by the tree and
// ensemble classifiers, and the fitted-state bookkeeping they share.
package model

import "gonum.org/v1/gonum/mat"

// Fitter trains on a feature matrix X (n×d) and a label column y (n×1).
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor returns one prediction per row of X as an n×1 matrix.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer evaluates predictions on X against y.
type Scorer interface {
	// Score returns the mean accuracy for classifiers.
	Score(X, y mat.Matrix) (float64, error)
}

// ParameterGetter exposes hyperparameters.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// Classifier is a fitted-state aware multi-class classifier.
type Classifier interface {
	Fitter
	Predictor
	Scorer
	ParameterGetter

	// Classes returns the labels the classifier can emit.
	Classes() []int

	IsFitted() bool
}
