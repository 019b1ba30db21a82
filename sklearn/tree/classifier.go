package tree

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/randforest/core/model"
	"github.com/YuminosukeSato/randforest/core/random"
	"github.com/YuminosukeSato/randforest/metrics"
	"github.com/YuminosukeSato/randforest/pkg/log"
)

// DecisionTreeClassifier fits a single, unpruned decision tree on integer
// features. Each split considers ⌊√(d+1)⌋ random feature columns.
type DecisionTreeClassifier struct {
	state *model.StateManager

	params      Params
	randomState int64
	src         rand.Source
	logger      log.Logger

	root *Node
}

// Option configures a DecisionTreeClassifier.
type Option func(*DecisionTreeClassifier)

// WithClasses sets the label cardinality; labels lie in [0, classes).
func WithClasses(classes int) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.params.Classes = classes
	}
}

// WithMaxFeatureValue sets the inclusive upper bound of feature values.
func WithMaxFeatureValue(maxValue int) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.params.MaxFeatureValue = maxValue
	}
}

// WithRandomState seeds the column sampling. A negative seed draws from the
// runtime generator.
func WithRandomState(seed int64) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.randomState = seed
		dt.src = nil
	}
}

// WithRandomSource injects the source used for column sampling.
func WithRandomSource(src rand.Source) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.src = src
	}
}

// WithLogger sets the logger; the package default is used otherwise.
func WithLogger(l log.Logger) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.logger = l
	}
}

// NewDecisionTreeClassifier creates an unfitted classifier.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	dt := &DecisionTreeClassifier{
		state:       model.NewStateManager("DecisionTreeClassifier"),
		params:      DefaultParams,
		randomState: -1,
	}
	for _, opt := range opts {
		opt(dt)
	}
	if dt.src == nil {
		if dt.randomState >= 0 {
			dt.src = random.NewSource(uint64(dt.randomState))
		} else {
			dt.src = random.NewEntropySource()
		}
	}
	if dt.logger == nil {
		dt.logger = log.GetLogger()
	}
	dt.logger = dt.logger.With(log.ModelNameKey, "DecisionTreeClassifier")
	return dt
}

// Fit grows the tree. X holds integer features in [0, MaxFeatureValue] and
// y integer labels in [0, Classes).
func (dt *DecisionTreeClassifier) Fit(X, y mat.Matrix) error {
	samples, err := SamplesFromMatrix("DecisionTreeClassifier.Fit", X, y)
	if err != nil {
		return err
	}

	start := time.Now()
	root := NewNode()
	if err := root.Train(samples, dt.params, dt.src); err != nil {
		return err
	}

	dt.root = root
	_, c := X.Dims()
	dt.state.SetFitted(c, len(samples))

	stats := root.Stats()
	dt.logger.Info("tree trained",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(samples),
		log.FeaturesKey, c,
		log.NodesKey, stats.Nodes,
		log.DepthKey, stats.Depth,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict returns an n×1 matrix of labels for the rows of X.
func (dt *DecisionTreeClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	labels, err := dt.predictLabels("Predict", X)
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
func (dt *DecisionTreeClassifier) Score(X, y mat.Matrix) (float64, error) {
	if err := dt.state.RequireFitted("Score"); err != nil {
		return 0, err
	}
	want, err := LabelsFromMatrix("DecisionTreeClassifier.Score", y)
	if err != nil {
		return 0, err
	}
	got, err := dt.predictLabels("Score", X)
	if err != nil {
		return 0, err
	}
	return metrics.LabelAccuracy(want, got)
}

func (dt *DecisionTreeClassifier) predictLabels(method string, X mat.Matrix) ([]int, error) {
	if err := dt.state.RequireFitted(method); err != nil {
		return nil, err
	}
	nFeatures, _ := dt.state.GetDimensions()
	rows, err := FeatureRowsFromMatrix("DecisionTreeClassifier."+method, X, nFeatures)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(rows))
	for i, row := range rows {
		labels[i] = dt.root.Predict(row)
	}
	return labels, nil
}

// Classes returns 0..Classes-1.
func (dt *DecisionTreeClassifier) Classes() []int {
	classes := make([]int, dt.params.Classes)
	for i := range classes {
		classes[i] = i
	}
	return classes
}

// IsFitted reports whether Fit has completed.
func (dt *DecisionTreeClassifier) IsFitted() bool {
	return dt.state.IsFitted()
}

// GetParams returns the hyperparameters.
func (dt *DecisionTreeClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"classes":           dt.params.Classes,
		"max_feature_value": dt.params.MaxFeatureValue,
		"random_state":      dt.randomState,
	}
}

// Root returns the trained tree, or nil before Fit.
func (dt *DecisionTreeClassifier) Root() *Node {
	return dt.root
}

var _ model.Classifier = (*DecisionTreeClassifier)(nil)
