package ensemble

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/randforest/core/random"
	"github.com/YuminosukeSato/randforest/pkg/errors"
	"github.com/YuminosukeSato/randforest/pkg/log"
	"github.com/YuminosukeSato/randforest/sklearn/tree"
)

// clusteredSamples returns perClass identical rows per label whose feature j
// is label*20+j, so every column separates every label.
func clusteredSamples(classes, perClass, width int) [][]int {
	var samples [][]int
	for c := 0; c < classes; c++ {
		for i := 0; i < perClass; i++ {
			row := make([]int, width)
			row[0] = c
			for j := 1; j < width; j++ {
				row[j] = c*20 + j
			}
			samples = append(samples, row)
		}
	}
	return samples
}

func leaf(label int) *tree.Node {
	return &tree.Node{IsLeaf: true, Result: label}
}

func handBuilt(classes int, trees ...*tree.Node) *Forest {
	return &Forest{
		numTrees: len(trees),
		params:   tree.Params{Classes: classes, MaxFeatureValue: 255},
		trees:    trees,
		width:    3,
		built:    true,
	}
}

func TestTrain_ConcreteScenario(t *testing.T) {
	samples := [][]int{{0, 1, 1}, {0, 1, 2}, {1, 5, 5}, {1, 5, 6}}

	for seed := int64(0); seed < 20; seed++ {
		f, err := Train(samples, 1, WithRandomState(seed))
		require.NoError(t, err)
		require.Len(t, f.Trees(), 1)

		assert.Equal(t, 0, f.Predict([]int{1, 1}))
		assert.Equal(t, 1, f.Predict([]int{5, 5}))
	}
}

func TestTrain_EmptyTrainingSet(t *testing.T) {
	for _, samples := range [][][]int{nil, {}} {
		f, err := Train(samples, 3)
		require.Error(t, err)
		assert.Nil(t, f)
		assert.True(t, errors.Is(err, errors.ErrEmptyData))

		var valErr *errors.ValueError
		assert.True(t, errors.As(err, &valErr))
	}
}

func TestTrain_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		samples [][]int
		trees   int
		opts    []Option
		param   string
	}{
		{"zero trees", [][]int{{0, 1}}, 0, nil, "num_trees"},
		{"label beyond classes", [][]int{{2, 1}}, 1, []Option{WithClasses(2)}, "label"},
		{"negative label", [][]int{{-1, 1}}, 1, nil, "label"},
		{"feature beyond bound", [][]int{{0, 16}}, 1, []Option{WithMaxFeatureValue(15)}, "feature"},
		{"no classes", [][]int{{0, 1}}, 1, []Option{WithClasses(0)}, "classes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Train(tt.samples, tt.trees, tt.opts...)
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr), "got %v", err)
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}

	t.Run("ragged rows", func(t *testing.T) {
		_, err := Train([][]int{{0, 1, 2}, {1, 2}}, 1)
		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))
		assert.True(t, errors.Is(err, errors.ErrRaggedData))
		assert.False(t, errors.Is(err, errors.ErrEmptyData))
	})
}

func TestForest_Build_SubsetSize(t *testing.T) {
	samples := clusteredSamples(2, 5, 4)

	f, err := Train(samples, 3, WithRandomState(1))
	require.NoError(t, err)
	assert.Equal(t, 3, f.SubsetSize())
	assert.Len(t, f.Trees(), 3)
	assert.Equal(t, 3, f.NumTrees())
	assert.True(t, f.IsBuilt())
}

func TestForest_Build_FewerSamplesThanTrees(t *testing.T) {
	var warnings []error
	var mu sync.Mutex
	errors.SetWarningHandler(func(w error) {
		mu.Lock()
		defer mu.Unlock()
		warnings = append(warnings, w)
	})
	defer errors.SetWarningHandler(nil)

	samples := [][]int{{0, 1}, {1, 9}, {2, 5}}
	f, err := Train(samples, 5, WithRandomState(2))
	require.NoError(t, err)

	assert.Equal(t, 1, f.SubsetSize())
	require.Len(t, f.Trees(), 5)
	for _, root := range f.Trees() {
		assert.True(t, root.IsLeaf)
	}

	require.Len(t, warnings, 1)
	var sw *errors.SamplingWarning
	require.True(t, errors.As(warnings[0], &sw))
	assert.Equal(t, 1, sw.Used)
}

func TestForest_Build_Twice(t *testing.T) {
	f := New(1, [][]int{{0, 1}, {1, 2}}, WithRandomState(0))
	require.NoError(t, f.Build())

	var modelErr *errors.ModelError
	assert.True(t, errors.As(f.Build(), &modelErr))
}

func TestForest_Reproducible(t *testing.T) {
	samples := clusteredSamples(3, 10, 8)

	a, err := Train(samples, 4, WithClasses(3), WithRandomState(5))
	require.NoError(t, err)
	b, err := Train(samples, 4, WithClasses(3), WithRandomState(5))
	require.NoError(t, err)
	assert.Equal(t, a.Trees(), b.Trees())

	seq := []uint64{1, 1 << 33, 5, 1 << 61, 12345, 7}
	c, err := Train(samples, 4, WithClasses(3), WithRandomSource(random.NewSequence(seq...)))
	require.NoError(t, err)
	d, err := Train(samples, 4, WithClasses(3), WithRandomSource(random.NewSequence(seq...)))
	require.NoError(t, err)
	assert.Equal(t, c.Trees(), d.Trees())
}

func TestForest_Predict_Vote(t *testing.T) {
	tests := []struct {
		name  string
		trees []*tree.Node
		want  int
	}{
		{"unanimous", []*tree.Node{leaf(2), leaf(2)}, 2},
		{"majority", []*tree.Node{leaf(1), leaf(0), leaf(1)}, 1},
		{"two-way tie goes to lower label", []*tree.Node{leaf(2), leaf(1)}, 1},
		{"three-way tie goes to lowest label", []*tree.Node{leaf(2), leaf(2), leaf(0), leaf(0), leaf(1), leaf(1)}, 0},
		{"single tree", []*tree.Node{leaf(3)}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := handBuilt(4, tt.trees...)
			assert.Equal(t, tt.want, f.Predict([]int{0, 0}))
		})
	}
}

func TestForest_Predict_WithoutTrees(t *testing.T) {
	for _, classes := range []int{0, 3} {
		f := New(2, nil, WithClasses(classes))
		assert.NotPanics(t, func() {
			assert.Equal(t, 0, f.Predict([]int{1, 2}))
		})
	}
}

func TestForest_Predict_Accuracy(t *testing.T) {
	samples := clusteredSamples(4, 30, 10)

	f, err := Train(samples, 3, WithClasses(4), WithRandomState(17))
	require.NoError(t, err)

	for _, s := range samples {
		assert.Equal(t, s[0], f.Predict(s[1:]))
	}
}

func TestForest_PredictChecked(t *testing.T) {
	samples := clusteredSamples(2, 4, 4)

	t.Run("not built", func(t *testing.T) {
		f := New(2, samples)
		_, err := f.PredictChecked([]int{1, 2, 3})
		var nf *errors.NotFittedError
		assert.True(t, errors.As(err, &nf))
	})

	f, err := Train(samples, 2, WithRandomState(3))
	require.NoError(t, err)

	t.Run("width mismatch", func(t *testing.T) {
		_, err := f.PredictChecked([]int{1, 2})
		var dimErr *errors.DimensionError
		require.True(t, errors.As(err, &dimErr))
		assert.Equal(t, 3, dimErr.Expected)
		assert.Equal(t, 2, dimErr.Got)
	})

	t.Run("valid", func(t *testing.T) {
		label, err := f.PredictChecked(samples[0][1:])
		require.NoError(t, err)
		assert.Equal(t, samples[0][0], label)
	})
}

func TestForest_PredictBatch(t *testing.T) {
	samples := clusteredSamples(3, 50, 6)
	f, err := Train(samples, 5, WithClasses(3), WithRandomState(8), WithWorkers(4))
	require.NoError(t, err)

	rows := make([][]int, len(samples))
	for i, s := range samples {
		rows[i] = s[1:]
	}

	labels, err := f.PredictBatch(rows)
	require.NoError(t, err)
	require.Len(t, labels, len(rows))
	for i, row := range rows {
		assert.Equal(t, f.Predict(row), labels[i])
	}

	small, err := f.PredictBatch(rows[:3])
	require.NoError(t, err)
	assert.Equal(t, labels[:3], small)

	_, err = f.PredictBatch([][]int{rows[0], {1}})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestForest_Logging(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	samples := clusteredSamples(2, 6, 5)

	_, err := Train(samples, 3, WithClasses(2), WithRandomState(4), WithLogger(logger))
	require.NoError(t, err)

	assert.True(t, logger.ContainsMessage("build started"))
	assert.True(t, logger.ContainsMessage("build finished"))
	assert.True(t, logger.ContainsField(log.ModelNameKey, "Forest"))
	assert.True(t, logger.ContainsField(log.TreesKey, float64(3)))

	entries, err := logger.GetLogEntries()
	require.NoError(t, err)
	perTree := 0
	for _, e := range entries {
		if e["message"] == "tree trained" {
			perTree++
		}
	}
	assert.Equal(t, 3, perTree)
}

func TestForest_Logging_DebugSuppressed(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelInfo)

	_, err := Train(clusteredSamples(2, 6, 5), 3, WithClasses(2), WithRandomState(4), WithLogger(logger))
	require.NoError(t, err)

	assert.True(t, logger.ContainsMessage("build finished"))
	assert.False(t, logger.ContainsMessage("tree trained"))
}

func BenchmarkForest_Build(b *testing.B) {
	samples := clusteredSamples(10, 100, 65)
	for i := 0; i < b.N; i++ {
		if _, err := Train(samples, 10, WithRandomState(int64(i))); err != nil {
			b.Fatal(err)
		}
	}
}
