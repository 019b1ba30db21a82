package ensemble

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/randforest/core/model"
	"github.com/YuminosukeSato/randforest/metrics"
	"github.com/YuminosukeSato/randforest/pkg/log"
	"github.com/YuminosukeSato/randforest/sklearn/tree"
)

// RandomForestClassifier adapts Forest to matrix input. X holds integer
// features and y integer labels stored as float64.
type RandomForestClassifier struct {
	state *model.StateManager

	nEstimators int
	opts        []Option
	config      *Forest

	forest *Forest
}

// NewRandomForestClassifier creates an unfitted classifier with nEstimators
// trees. opts configure every forest built by Fit.
func NewRandomForestClassifier(nEstimators int, opts ...Option) *RandomForestClassifier {
	return &RandomForestClassifier{
		state:       model.NewStateManager("RandomForestClassifier"),
		nEstimators: nEstimators,
		opts:        opts,
		config:      New(nEstimators, nil, opts...),
	}
}

// Fit builds a new forest from X and y, replacing any previous one.
func (rf *RandomForestClassifier) Fit(X, y mat.Matrix) error {
	samples, err := tree.SamplesFromMatrix("RandomForestClassifier.Fit", X, y)
	if err != nil {
		return err
	}

	f := New(rf.nEstimators, samples, rf.opts...)
	if err := f.Build(); err != nil {
		return err
	}

	rf.forest = f
	_, c := X.Dims()
	rf.state.SetFitted(c, len(samples))
	return nil
}

// Predict returns an n×1 matrix of voted labels.
func (rf *RandomForestClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	labels, err := rf.predictLabels("Predict", X)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(labels), 1, nil)
	for i, l := range labels {
		out.Set(i, 0, float64(l))
	}
	return out, nil
}

// Score returns the mean accuracy on X against y. y must hold integer
// labels.
func (rf *RandomForestClassifier) Score(X, y mat.Matrix) (float64, error) {
	if err := rf.state.RequireFitted("Score"); err != nil {
		return 0, err
	}
	want, err := tree.LabelsFromMatrix("RandomForestClassifier.Score", y)
	if err != nil {
		return 0, err
	}
	got, err := rf.predictLabels("Score", X)
	if err != nil {
		return 0, err
	}
	accuracy, err := metrics.LabelAccuracy(want, got)
	if err != nil {
		return 0, err
	}
	rf.forest.logger.Debug("scored",
		log.OperationKey, log.OperationScore,
		log.AccuracyKey, accuracy,
	)
	return accuracy, nil
}

func (rf *RandomForestClassifier) predictLabels(method string, X mat.Matrix) ([]int, error) {
	if err := rf.state.RequireFitted(method); err != nil {
		return nil, err
	}
	nFeatures, _ := rf.state.GetDimensions()
	rows, err := tree.FeatureRowsFromMatrix("RandomForestClassifier."+method, X, nFeatures)
	if err != nil {
		return nil, err
	}
	labels, err := rf.forest.PredictBatch(rows)
	if err != nil {
		return nil, err
	}
	rf.forest.logger.Debug("predicted",
		log.OperationKey, log.OperationPredict,
		log.PredsKey, len(labels),
	)
	return labels, nil
}

// Classes returns 0..Classes-1.
func (rf *RandomForestClassifier) Classes() []int {
	classes := make([]int, rf.config.params.Classes)
	for i := range classes {
		classes[i] = i
	}
	return classes
}

// IsFitted reports whether Fit has completed.
func (rf *RandomForestClassifier) IsFitted() bool {
	return rf.state.IsFitted()
}

// GetParams returns the hyperparameters.
func (rf *RandomForestClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":      rf.nEstimators,
		"classes":           rf.config.params.Classes,
		"max_feature_value": rf.config.params.MaxFeatureValue,
		"random_state":      rf.config.randomState,
		"workers":           rf.config.workers,
	}
}

// Forest returns the forest built by the last Fit, or nil.
func (rf *RandomForestClassifier) Forest() *Forest {
	return rf.forest
}

var _ model.Classifier = (*RandomForestClassifier)(nil)
