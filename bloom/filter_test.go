package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/dictscrape/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("hjdict\x00hello"))

	f.Add("hjdict\x00hello")

	assert.True(t, f.Test("hjdict\x00hello"))
	assert.False(t, f.Test("jukuu\x00hello"))
}

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.TestAndAdd("hjdict\x00hello"), "first sighting")
	assert.True(t, f.TestAndAdd("hjdict\x00hello"), "second sighting")
	assert.True(t, f.Test("hjdict\x00hello"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("apple")
	f.Add("banana")
	f.Add("cherry")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	key := "jukuu\x00love"

	f.Add(key)
	countAfterFirst := f.EstimatedCount()

	f.Add(key)
	f.Add(key)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test(key))
}

func TestFilter_ZeroCapacity(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(0, 0.01)
	f.Add("x")

	assert.True(t, f.Test("x"))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("hjdict\x00added-%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("hjdict\x00absent-%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
