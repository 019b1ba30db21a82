package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/randforest/datasets"
	"github.com/YuminosukeSato/randforest/metrics"
	"github.com/YuminosukeSato/randforest/pkg/log"
	"github.com/YuminosukeSato/randforest/report"
	"github.com/YuminosukeSato/randforest/sklearn/ensemble"
	"github.com/YuminosukeSato/randforest/sklearn/tree"
)

const (
	modelForest = "forest"
	modelTree   = "tree"
)

type trainTestCmdConfig struct {
	*rootCmdConfig
	trainInput      string
	testInput       string
	header          bool
	model           string
	trees           int
	classes         int
	maxFeatureValue int
	seed            int64
	workers         int
	plotOutput      string
}

func trainTestCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &trainTestCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "train-test",
		Short: "Train a forest and measure its accuracy",
		Long:  `Grow a random forest from a training CSV and report its accuracy on a test CSV. Each row is a label followed by feature values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			return config.run(cmd)
		},
	}
	cmd.Flags().StringVarP(&config.trainInput, "train", "i", "", "path to the training CSV (required)")
	cmd.Flags().StringVarP(&config.testInput, "test", "t", "", "path to the test CSV (required)")
	cmd.Flags().BoolVar(&config.header, "header", false, "skip the first row of both CSV files")
	cmd.Flags().StringVarP(&config.model, "model", "m", modelForest, "model to train (forest, tree)")
	cmd.Flags().IntVarP(&config.trees, "trees", "n", 40, "number of trees in the forest")
	cmd.Flags().IntVar(&config.classes, "classes", 10, "number of labels; labels lie in [0, classes)")
	cmd.Flags().IntVar(&config.maxFeatureValue, "max-feature-value", 255, "largest feature value")
	cmd.Flags().Int64Var(&config.seed, "seed", -1, "random seed (negative for a random one)")
	cmd.Flags().IntVar(&config.workers, "workers", 0, "goroutines used for prediction (0 for one per CPU)")
	cmd.Flags().StringVarP(&config.plotOutput, "plot", "p", "", "write a per-label accuracy chart to this file (.png, .svg, .pdf)")
	return cmd
}

func (c *trainTestCmdConfig) Validate() error {
	if c.trainInput == "" {
		return fmt.Errorf("required train flag was not set")
	}
	if c.testInput == "" {
		return fmt.Errorf("required test flag was not set")
	}
	if c.model != modelForest && c.model != modelTree {
		return fmt.Errorf("unknown model %q", c.model)
	}
	if c.trees < 1 {
		return fmt.Errorf("trees must be at least 1, got %d", c.trees)
	}
	if c.classes < 1 {
		return fmt.Errorf("classes must be at least 1, got %d", c.classes)
	}
	if c.maxFeatureValue < 0 {
		return fmt.Errorf("max-feature-value must not be negative, got %d", c.maxFeatureValue)
	}
	return nil
}

func (c *trainTestCmdConfig) readOptions() []datasets.ReadOption {
	if c.header {
		return []datasets.ReadOption{datasets.WithHeader()}
	}
	return nil
}

func (c *trainTestCmdConfig) run(cmd *cobra.Command) error {
	logger := c.Logger("train-test")

	trainSet, err := datasets.ReadSamplesFile(c.trainInput, c.readOptions()...)
	if err != nil {
		return err
	}
	testSet, err := datasets.ReadSamplesFile(c.testInput, c.readOptions()...)
	if err != nil {
		return err
	}
	logger.Info("data loaded",
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, len(trainSet),
		"test_samples", len(testSet),
		log.RandomSeedKey, c.seed,
	)

	start := time.Now()
	var predictions []int
	switch c.model {
	case modelForest:
		predictions, err = c.runForest(trainSet, testSet)
	case modelTree:
		predictions, err = c.runTree(trainSet, testSet)
	}
	if err != nil {
		return err
	}

	labels := datasets.Labels(testSet)
	accuracy, err := metrics.LabelAccuracy(labels, predictions)
	if err != nil {
		return err
	}
	logger.Info("evaluation finished",
		log.PhaseKey, log.PhaseTesting,
		log.AccuracyKey, accuracy,
		log.PredsKey, len(predictions),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	cm, err := metrics.ConfusionMatrix(labels, predictions, c.classes)
	if err != nil {
		return err
	}
	if err := report.WriteSummary(cmd.OutOrStdout(), cm); err != nil {
		return err
	}
	if c.plotOutput != "" {
		title := fmt.Sprintf("%s accuracy per label", c.model)
		if err := report.SaveAccuracyChart(cm, title, c.plotOutput); err != nil {
			return err
		}
		logger.Info("chart written", "path", c.plotOutput)
	}
	return nil
}

func (c *trainTestCmdConfig) runForest(trainSet, testSet [][]int) ([]int, error) {
	forest, err := ensemble.Train(trainSet, c.trees,
		ensemble.WithClasses(c.classes),
		ensemble.WithMaxFeatureValue(c.maxFeatureValue),
		ensemble.WithRandomState(c.seed),
		ensemble.WithWorkers(c.workers),
	)
	if err != nil {
		return nil, err
	}

	rows := make([][]int, len(testSet))
	for i, s := range testSet {
		rows[i] = s[1:]
	}
	return forest.PredictBatch(rows)
}

func (c *trainTestCmdConfig) runTree(trainSet, testSet [][]int) ([]int, error) {
	X, y, err := datasets.ToMatrices(trainSet)
	if err != nil {
		return nil, err
	}
	dt := tree.NewDecisionTreeClassifier(
		tree.WithClasses(c.classes),
		tree.WithMaxFeatureValue(c.maxFeatureValue),
		tree.WithRandomState(c.seed),
	)
	if err := dt.Fit(X, y); err != nil {
		return nil, err
	}

	Xtest, _, err := datasets.ToMatrices(testSet)
	if err != nil {
		return nil, err
	}
	pred, err := dt.Predict(Xtest)
	if err != nil {
		return nil, err
	}
	r, _ := pred.Dims()
	out := make([]int, r)
	for i := range out {
		out[i] = int(pred.At(i, 0))
	}
	return out, nil
}
