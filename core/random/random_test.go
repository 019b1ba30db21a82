package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithoutReplacement(t *testing.T) {
	tests := []struct {
		name  string
		k, n  int
		wantK int
	}{
		{name: "sparse draw", k: 3, n: 100, wantK: 3},
		{name: "dense draw", k: 8, n: 10, wantK: 8},
		{name: "whole range", k: 10, n: 10, wantK: 10},
		{name: "clamped to n", k: 12, n: 5, wantK: 5},
		{name: "zero requested", k: 0, n: 5, wantK: 0},
		{name: "empty range", k: 3, n: 0, wantK: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithoutReplacement(tt.k, tt.n, NewSource(7))
			require.Len(t, got, tt.wantK)

			seen := make(map[int]bool)
			for _, v := range got {
				assert.GreaterOrEqual(t, v, 0)
				assert.Less(t, v, tt.n)
				assert.False(t, seen[v], "duplicate index %d", v)
				seen[v] = true
			}
		})
	}
}

func TestWithoutReplacement_Reproducible(t *testing.T) {
	a := WithoutReplacement(20, 1000, NewSource(42))
	b := WithoutReplacement(20, 1000, NewSource(42))
	assert.Equal(t, a, b)

	c := WithoutReplacement(20, 1000, NewSequence(1, 2, 3, 5, 8, 13))
	d := WithoutReplacement(20, 1000, NewSequence(1, 2, 3, 5, 8, 13))
	assert.Equal(t, c, d)
}

func TestSequence(t *testing.T) {
	s := NewSequence(4, 5)
	assert.Equal(t, uint64(4), s.Uint64())
	assert.Equal(t, uint64(5), s.Uint64())
	assert.Equal(t, uint64(4), s.Uint64())

	assert.Panics(t, func() { NewSequence() })
}
