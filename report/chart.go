// Package report renders evaluation results of a trained classifier.
package report

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/randforest/metrics"
	"github.com/YuminosukeSato/randforest/pkg/errors"
)

var barColor = color.RGBA{R: 55, G: 126, B: 184, A: 255}

// AccuracyChart builds a bar chart with one bar per label showing the share
// of that label's test samples classified correctly.
func AccuracyChart(cm mat.Matrix, title string) (*plot.Plot, error) {
	r, c := cm.Dims()
	if r == 0 || r != c {
		return nil, errors.NewValueError("AccuracyChart", "confusion matrix must be square and non-empty")
	}

	acc := metrics.PerClassAccuracy(cm)
	bars, err := plotter.NewBarChart(plotter.Values(acc), vg.Points(20))
	if err != nil {
		return nil, errors.Wrap(err, "building bar chart")
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "label"
	p.Y.Label.Text = "accuracy"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Add(bars, plotter.NewGrid())

	names := make([]string, r)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	p.NominalX(names...)
	return p, nil
}

// SaveAccuracyChart renders AccuracyChart to path. The format follows the
// file extension (.png, .svg, .pdf, ...).
func SaveAccuracyChart(cm mat.Matrix, title, path string) error {
	p, err := AccuracyChart(cm, title)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving chart to %s", path)
	}
	return nil
}

// WriteSummary prints overall accuracy, per-label accuracy and the
// confusion matrix as plain text.
func WriteSummary(w io.Writer, cm mat.Matrix) error {
	r, _ := cm.Dims()
	var correct float64
	for i := 0; i < r; i++ {
		correct += cm.At(i, i)
	}
	total := mat.Sum(cm)
	if total == 0 {
		return errors.NewValueErrorWithCause("WriteSummary", "confusion matrix is empty", errors.ErrEmptyData)
	}

	if _, err := fmt.Fprintf(w, "accuracy: %.4f (%s/%s)\n", correct/total,
		humanize.Comma(int64(correct)), humanize.Comma(int64(total))); err != nil {
		return err
	}
	for label, a := range metrics.PerClassAccuracy(cm) {
		support := floats.Sum(mat.Row(nil, label, cm))
		if _, err := fmt.Fprintf(w, "label %d: %.4f (%s samples)\n", label, a, humanize.Comma(int64(support))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "confusion matrix (rows: true, columns: predicted):\n%v\n", mat.Formatted(cm, mat.Squeeze()))
	return err
}
