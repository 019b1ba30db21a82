package ensemble

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/randforest/pkg/log"
)

// Option configures a Forest.
type Option func(*Forest)

// WithClasses sets the label cardinality; labels lie in [0, classes).
// Defaults to 10.
func WithClasses(classes int) Option {
	return func(f *Forest) {
		f.params.Classes = classes
	}
}

// WithMaxFeatureValue sets the inclusive upper bound of feature values.
// Defaults to 255.
func WithMaxFeatureValue(maxValue int) Option {
	return func(f *Forest) {
		f.params.MaxFeatureValue = maxValue
	}
}

// WithRandomSource injects the source driving subset and column sampling.
// It takes precedence over WithRandomState.
func WithRandomSource(src rand.Source) Option {
	return func(f *Forest) {
		f.src = src
	}
}

// WithRandomState seeds sampling. A negative seed draws from the runtime
// generator.
func WithRandomState(seed int64) Option {
	return func(f *Forest) {
		f.randomState = seed
	}
}

// WithLogger sets the logger; the package default is used otherwise.
func WithLogger(l log.Logger) Option {
	return func(f *Forest) {
		f.logger = l
	}
}

// WithWorkers bounds the goroutines used by PredictBatch. 0 means one per CPU.
func WithWorkers(n int) Option {
	return func(f *Forest) {
		f.workers = n
	}
}
