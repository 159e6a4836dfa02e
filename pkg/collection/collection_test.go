package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapFilterReduce(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}

	doubled := Map(in, func(n int) int { return n * 2 })
	assert.Equal(t, []int{2, 4, 6, 8, 10}, doubled)

	even := Filter(in, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)

	sum := Reduce(in, 0, func(acc, n int) int { return acc + n })
	assert.Equal(t, 15, sum)
}

func TestGroupByAndCountBy(t *testing.T) {
	words := []string{"ant", "bee", "bear", "cat", "bat"}

	byFirst := GroupBy(words, func(w string) byte { return w[0] })
	assert.Len(t, byFirst[byte('b')], 3)
	assert.Len(t, byFirst[byte('a')], 1)

	counts := CountBy(words, func(w string) int { return len(w) })
	assert.Equal(t, 4, counts[3])
	assert.Equal(t, 1, counts[4])
}
