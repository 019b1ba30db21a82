// Package randforest is a random forest classifier for fixed-length integer
// feature vectors, such as grey-scale digit images.
//
// A forest is an ensemble of unpruned binary decision trees. Every tree is
// grown from its own random subset of the training samples, and every split
// considers only ⌊√D⌋ randomly chosen feature columns, D being the width of a
// sample including its label. Splits maximise information gain over
// thresholds "value <= t". Prediction is a majority vote across trees.
//
// # Installation
//
//	go get github.com/YuminosukeSato/randforest
//
// # Quick Start
//
// Samples are integer rows whose first element is the label:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/randforest/sklearn/ensemble"
//	)
//
//	func main() {
//	    samples := [][]int{
//	        {0, 1, 1},
//	        {0, 1, 2},
//	        {1, 5, 5},
//	        {1, 5, 6},
//	    }
//
//	    forest, err := ensemble.Train(samples, 1, ensemble.WithRandomState(42))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println(forest.Predict([]int{1, 1})) // 0
//	    fmt.Println(forest.Predict([]int{5, 5})) // 1
//	}
//
// # Packages
//
//   - sklearn/tree: entropy, split search, decision nodes, DecisionTreeClassifier
//   - sklearn/ensemble: Forest and RandomForestClassifier
//   - metrics: accuracy and confusion matrices
//   - datasets: CSV loading of label-prefixed samples
//   - report: text summaries and per-label accuracy charts
//   - core/model: estimator interfaces and fitted-state tracking
//   - core/parallel: goroutine fan-out for batch prediction
//   - core/random: injectable random sources
//   - pkg/errors, pkg/log: error types and structured logging
//
// # scikit-learn Compatibility
//
// The facades accept gonum matrices:
//
//	rf := ensemble.NewRandomForestClassifier(40,
//	    ensemble.WithClasses(10),
//	    ensemble.WithRandomState(1),
//	)
//	if err := rf.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	score, _ := rf.Score(XTest, yTest)
//
// # Command line
//
//	randforest train-test --train train.csv --test test.csv --trees 40 --plot accuracy.png
package randforest
