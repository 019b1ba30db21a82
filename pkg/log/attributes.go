package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "Forest".
	ModelNameKey = "model.name"

	// OperationKey is one of the Operation* values below.
	OperationKey = "ml.operation"

	// ComponentKey names the package or command emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey is one of the Phase* values below.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	ClassesKey  = "data.classes"
)

// Forest structure.
const (
	// TreesKey is the number of trees in a forest.
	TreesKey = "forest.trees"

	// TreeIndexKey is the position of a tree within its forest.
	TreeIndexKey = "forest.tree_index"

	// SubsetSizeKey is the number of samples drawn for one tree.
	SubsetSizeKey = "forest.subset_size"

	// NodesKey and LeavesKey count the nodes of a trained tree.
	NodesKey  = "tree.nodes"
	LeavesKey = "tree.leaves"

	// DepthKey is the depth of the deepest leaf of a trained tree.
	DepthKey = "tree.depth"
)

// Performance and evaluation.
const (
	DurationMsKey = "perf.duration_ms"
	AccuracyKey   = "metrics.accuracy"
	PredsKey      = "preds.count"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	SuggestionKey = "error.suggestion"
)

// Configuration.
const (
	RandomSeedKey = "config.random_seed"
)

// Standard values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	PhaseTraining  = "training"
	PhaseTesting   = "testing"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
)
