package runlength

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect[T comparable](n int, at func(int) T) []Run[T] {
	var runs []Run[T]
	for r := range Collapse(n, at) {
		runs = append(runs, r)
	}

	return runs
}

func TestCollapse_SingleRun(t *testing.T) {
	runs := collect(4, func(int) string { return "a" })

	require.Len(t, runs, 1)
	assert.Equal(t, Run[string]{Value: "a", Start: 1, End: 4}, runs[0])
}

func TestCollapse_AlternatingValues(t *testing.T) {
	values := []int{7, 7, 3, 3, 3, 7}
	runs := collect(len(values), func(i int) int { return values[i-1] })

	assert.Equal(t, []Run[int]{
		{Value: 7, Start: 1, End: 2},
		{Value: 3, Start: 3, End: 5},
		{Value: 7, Start: 6, End: 6},
	}, runs)
}

func TestCollapse_Empty(t *testing.T) {
	assert.Empty(t, collect(0, func(int) int { return 0 }))
}

func TestCollapse_Restartable(t *testing.T) {
	seq := Collapse(3, func(i int) int { return i })

	first := 0
	for range seq {
		first++
	}

	second := 0
	for range seq {
		second++
	}

	assert.Equal(t, first, second)
	assert.Equal(t, 3, first)
}

func TestCollapse_EarlyStop(t *testing.T) {
	values := []int{1, 1, 2, 2, 3}

	count := 0
	for range Collapse(len(values), func(i int) int { return values[i-1] }) {
		count++
		if count == 1 {
			break
		}
	}

	assert.Equal(t, 1, count)
}
