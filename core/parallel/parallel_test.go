package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/randforest/pkg/errors"
)

func TestParallelize_CoversEveryIndexOnce(t *testing.T) {
	for _, items := range []int{1, 7, 100, 1001} {
		hits := make([]int32, items)
		err := Parallelize(items, 4, func(start, end int) error {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
			return nil
		})
		require.NoError(t, err)
		for i, h := range hits {
			assert.Equal(t, int32(1), h, "index %d of %d", i, items)
		}
	}
}

func TestParallelize_Empty(t *testing.T) {
	called := false
	err := Parallelize(0, 4, func(start, end int) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestParallelize_ReturnsError(t *testing.T) {
	want := errors.New("row rejected")
	err := Parallelize(10, 5, func(start, end int) error {
		if start <= 6 && 6 < end {
			return want
		}
		return nil
	})
	assert.True(t, errors.Is(err, want))
}

func TestParallelize_RecoversPanic(t *testing.T) {
	err := Parallelize(10, 2, func(start, end int) error {
		if start == 0 {
			panic("nil child")
		}
		return nil
	})
	require.Error(t, err)
	var panicErr *errors.PanicError
	assert.True(t, errors.As(err, &panicErr))
}

func TestParallelizeWithThreshold_Sequential(t *testing.T) {
	var calls int32
	err := ParallelizeWithThreshold(50, 100, 8, func(start, end int) error {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 0, start)
		assert.Equal(t, 50, end)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls)
}

func BenchmarkParallelize(b *testing.B) {
	data := make([]float64, 100000)
	for i := 0; i < b.N; i++ {
		_ = Parallelize(len(data), 0, func(start, end int) error {
			for j := start; j < end; j++ {
				data[j] = float64(j) * 2
			}
			return nil
		})
	}
}
