package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedKeyCmp(t *testing.T) {
	intCmp := OrderedKeyCmp[int]()
	assert.Equal(t, int64(0), intCmp(3, 3))
	assert.Less(t, intCmp(1, 3), int64(0))
	assert.Greater(t, intCmp(5, 3), int64(0))

	desc := intCmp.Reverse()
	assert.Greater(t, desc(1, 3), int64(0))
	assert.Less(t, desc(5, 3), int64(0))

	strCmp := OrderedKeyCmp[string]()
	assert.Less(t, strCmp("abc", "abd"), int64(0))
	assert.Equal(t, int64(0), strCmp("", ""))
}

func TestOrderedKeyCmp_NaN(t *testing.T) {
	cmp := OrderedKeyCmp[float64]()
	nan := math.NaN()
	assert.Equal(t, int64(0), cmp(nan, nan))
	assert.Less(t, cmp(nan, math.Inf(-1)), int64(0))
	assert.Greater(t, cmp(0.5, nan), int64(0))
	assert.Less(t, cmp(-0.5, 0.5), int64(0))
}
