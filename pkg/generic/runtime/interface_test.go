package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInGroupOf(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	groups := InGroupOf(items, 3)
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7}}, groups)
}

func TestInGroupOfExactMultiple(t *testing.T) {
	groups := InGroupOf([]string{"a", "b", "c", "d"}, 2)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, groups)
}

func TestInGroupOfShorterThanLength(t *testing.T) {
	items := []int{1, 2}
	groups := InGroupOf(items, 128)
	assert.Equal(t, [][]int{{1, 2}}, groups)
}
