// Package ensemble builds random forests of decision trees over integer
// feature vectors and predicts by majority vote.
package ensemble

import (
	"context"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/randforest/core/parallel"
	"github.com/YuminosukeSato/randforest/core/random"
	"github.com/YuminosukeSato/randforest/pkg/errors"
	"github.com/YuminosukeSato/randforest/pkg/log"
	"github.com/YuminosukeSato/randforest/sklearn/tree"
)

// batchThreshold is the batch size below which PredictBatch stays on the
// calling goroutine.
const batchThreshold = 64

// Forest is an ensemble of decision trees, each trained on its own random
// subset of the training samples.
//
// A Forest is built once. After Build returns, Predict, PredictChecked and
// PredictBatch only read the trees and may be called concurrently.
type Forest struct {
	numTrees int
	samples  [][]int

	params      tree.Params
	src         rand.Source
	randomState int64
	workers     int
	logger      log.Logger

	trees      []*tree.Node
	width      int
	subsetSize int
	built      bool
}

// New configures a forest of numTrees trees over samples. Each sample is a
// label followed by its feature values. Nothing is trained until Build.
func New(numTrees int, samples [][]int, opts ...Option) *Forest {
	f := &Forest{
		numTrees:    numTrees,
		samples:     samples,
		params:      tree.DefaultParams,
		randomState: -1,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.src == nil {
		if f.randomState >= 0 {
			f.src = random.NewSource(uint64(f.randomState))
		} else {
			f.src = random.NewEntropySource()
		}
	}
	if f.logger == nil {
		f.logger = log.GetLogger()
	}
	f.logger = f.logger.With(log.ModelNameKey, "Forest")
	return f
}

// Train builds a forest of treeCount trees over samples.
func Train(samples [][]int, treeCount int, opts ...Option) (*Forest, error) {
	f := New(treeCount, samples, opts...)
	if err := f.Build(); err != nil {
		return nil, err
	}
	return f, nil
}

// Build trains every tree. Tree t is grown from ⌊N/T⌋ distinct samples drawn
// uniformly from the whole training set; when there are fewer samples than
// trees each tree gets a single sample and a SamplingWarning is raised.
func (f *Forest) Build() (err error) {
	defer errors.Recover(&err, "Forest.Build")

	if f.built {
		return errors.NewModelError("Forest.Build", "forest is already built", nil)
	}
	if err := f.params.Validate(); err != nil {
		return err
	}
	width, err := f.params.CheckSamples("Forest.Build", f.samples)
	if err != nil {
		return err
	}
	if f.numTrees < 1 {
		return errors.NewValidationError("num_trees", "must be at least 1", f.numTrees)
	}

	n := len(f.samples)
	subsetSize := n / f.numTrees
	if subsetSize == 0 {
		w := errors.NewSamplingWarning("Forest.Build", 0, 1, "fewer samples than trees")
		errors.Warn(w)
		f.logger.Warn("subset size raised to one sample",
			log.SamplesKey, n,
			log.TreesKey, f.numTrees,
		)
		subsetSize = 1
	}

	f.logger.Info("build started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, width-1,
		log.ClassesKey, f.params.Classes,
		log.TreesKey, f.numTrees,
		log.SubsetSizeKey, subsetSize,
	)
	start := time.Now()

	trees := make([]*tree.Node, f.numTrees)
	subset := make([][]int, subsetSize)
	for t := range trees {
		for k, i := range random.WithoutReplacement(subsetSize, n, f.src) {
			subset[k] = f.samples[i]
		}
		root := tree.NewNode()
		if err := root.Train(subset, f.params, f.src); err != nil {
			return errors.Wrapf(err, "tree %d", t)
		}
		trees[t] = root

		if f.logger.Enabled(context.Background(), log.LevelDebug) {
			stats := root.Stats()
			f.logger.Debug("tree trained",
				log.TreeIndexKey, t,
				log.NodesKey, stats.Nodes,
				log.LeavesKey, stats.Leaves,
				log.DepthKey, stats.Depth,
			)
		}
	}

	f.trees = trees
	f.width = width
	f.subsetSize = subsetSize
	f.built = true

	f.logger.Info("build finished",
		log.OperationKey, log.OperationFit,
		log.TreesKey, len(trees),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict returns the label voted for by most trees, the lowest label
// winning ties. features holds the feature values without the label and
// must be as wide as the training features; use PredictChecked when that is
// not known. A forest without trees, e.g. one not yet built, predicts 0.
func (f *Forest) Predict(features []int) int {
	if len(f.trees) == 0 {
		return 0
	}
	votes := make([]float64, f.params.Classes)
	for _, t := range f.trees {
		votes[t.Predict(features)]++
	}
	return floats.MaxIdx(votes)
}

// PredictChecked is Predict for untrusted input.
func (f *Forest) PredictChecked(features []int) (int, error) {
	if err := f.checkQuery("Forest.PredictChecked", features); err != nil {
		return 0, err
	}
	return f.Predict(features), nil
}

// PredictBatch predicts every row, spreading large batches across
// goroutines.
func (f *Forest) PredictBatch(rows [][]int) ([]int, error) {
	for i, row := range rows {
		if err := f.checkQuery("Forest.PredictBatch", row); err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
	}

	out := make([]int, len(rows))
	err := parallel.ParallelizeWithThreshold(len(rows), batchThreshold, f.workers, func(start, end int) error {
		for i := start; i < end; i++ {
			out[i] = f.Predict(rows[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Forest) checkQuery(op string, features []int) error {
	if !f.built {
		return errors.NewNotFittedError("Forest", "Predict")
	}
	if len(features) != f.width-1 {
		return errors.NewDimensionError(op, f.width-1, len(features), 1)
	}
	return nil
}

// Trees returns the trained trees. The slice must not be modified.
func (f *Forest) Trees() []*tree.Node {
	return f.trees
}

// NumTrees returns the configured number of trees.
func (f *Forest) NumTrees() int {
	return f.numTrees
}

// SubsetSize returns the number of samples each tree was trained on, or 0
// before Build.
func (f *Forest) SubsetSize() int {
	return f.subsetSize
}

// Params returns the label and feature bounds.
func (f *Forest) Params() tree.Params {
	return f.params
}

// IsBuilt reports whether Build has completed.
func (f *Forest) IsBuilt() bool {
	return f.built
}
