// Package datasets loads sample sets from delimited text. Each row holds an
// integer label followed by integer feature values, the layout consumed by
// the tree and ensemble packages.
package datasets

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/randforest/pkg/errors"
)

type readConfig struct {
	comma  rune
	header bool
}

// ReadOption configures ReadSamples.
type ReadOption func(*readConfig)

// WithComma sets the field delimiter. Defaults to ','.
func WithComma(r rune) ReadOption {
	return func(c *readConfig) {
		c.comma = r
	}
}

// WithHeader skips the first row.
func WithHeader() ReadOption {
	return func(c *readConfig) {
		c.header = true
	}
}

// ReadSamples parses label-prefixed integer rows from r. Blank lines and
// lines starting with '#' are ignored. Every row must have the width of the
// first one; a shorter or longer row fails with an error wrapping
// ErrRaggedData.
func ReadSamples(r io.Reader, opts ...ReadOption) ([][]int, error) {
	cfg := readConfig{comma: ','}
	for _, opt := range opts {
		opt(&cfg)
	}

	cr := csv.NewReader(r)
	cr.Comma = cfg.comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	if cfg.header {
		if _, err := cr.Read(); err != nil {
			if err == io.EOF {
				return nil, errors.NewValueErrorWithCause("ReadSamples", "no rows", errors.ErrEmptyData)
			}
			return nil, errors.Wrap(err, "reading header")
		}
	}

	var samples [][]int
	width := -1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading samples")
		}
		line, _ := cr.FieldPos(0)

		if width < 0 {
			width = len(record)
		} else if len(record) != width {
			return nil, errors.Wrapf(errors.ErrRaggedData, "line %d: expected %d fields, got %d", line, width, len(record))
		}

		row := make([]int, len(record))
		for j, field := range record {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d, field %d", line, j+1)
			}
			row[j] = v
		}
		samples = append(samples, row)
	}

	if len(samples) == 0 {
		return nil, errors.NewValueErrorWithCause("ReadSamples", "no rows", errors.ErrEmptyData)
	}
	return samples, nil
}

// ReadSamplesFile is ReadSamples over the file at path.
func ReadSamplesFile(path string, opts ...ReadOption) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	samples, err := ReadSamples(f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return samples, nil
}

// ToMatrices splits label-prefixed samples into a feature matrix X (n×d) and
// a label column y (n×1). samples must be non-empty and rectangular.
func ToMatrices(samples [][]int) (*mat.Dense, *mat.Dense, error) {
	if len(samples) == 0 || len(samples[0]) < 2 {
		return nil, nil, errors.NewValueErrorWithCause("ToMatrices", "no features", errors.ErrEmptyData)
	}
	d := len(samples[0]) - 1
	X := mat.NewDense(len(samples), d, nil)
	y := mat.NewDense(len(samples), 1, nil)
	for i, s := range samples {
		if len(s) != d+1 {
			return nil, nil, errors.Wrapf(errors.ErrRaggedData, "sample %d", i)
		}
		y.Set(i, 0, float64(s[0]))
		for j, v := range s[1:] {
			X.Set(i, j, float64(v))
		}
	}
	return X, y, nil
}

// Labels returns the label column of samples.
func Labels(samples [][]int) []int {
	labels := make([]int, len(samples))
	for i, s := range samples {
		labels[i] = s[0]
	}
	return labels
}
