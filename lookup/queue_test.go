package lookup_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/dictscrape/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_Push(t *testing.T) {
	t.Parallel()

	t.Run("rejects duplicate jobs", func(t *testing.T) {
		t.Parallel()

		q := lookup.NewQueue(1000, 0.0001)

		assert.True(t, q.Push(lookup.Job{Source: "hjdict", Query: "hello"}))
		assert.False(t, q.Push(lookup.Job{Source: "hjdict", Query: "hello"}))
		assert.Equal(t, 1, q.Len())
	})

	t.Run("treats whitespace variants as duplicates", func(t *testing.T) {
		t.Parallel()

		q := lookup.NewQueue(1000, 0.0001)

		assert.True(t, q.Push(lookup.Job{Source: "hjdict", Query: "look up"}))
		assert.False(t, q.Push(lookup.Job{Source: "hjdict", Query: "  look   up "}))
	})

	t.Run("keeps the same query for different sources", func(t *testing.T) {
		t.Parallel()

		q := lookup.NewQueue(1000, 0.0001)

		assert.True(t, q.Push(lookup.Job{Source: "hjdict", Query: "hello"}))
		assert.True(t, q.Push(lookup.Job{Source: "jukuu", Query: "hello"}))
		assert.Equal(t, 2, q.Len())
	})

	t.Run("stores the normalized query", func(t *testing.T) {
		t.Parallel()

		q := lookup.NewQueue(10, 0.0001)
		q.Push(lookup.Job{Source: "jukuu", Query: " look \n up "})

		job, ok := q.Pop()

		require.True(t, ok)
		assert.Equal(t, "look up", job.Query)
	})
}

func TestQueue_Pop(t *testing.T) {
	t.Parallel()

	t.Run("returns jobs in insertion order", func(t *testing.T) {
		t.Parallel()

		q := lookup.NewQueue(1000, 0.0001)
		q.Push(lookup.Job{Source: "hjdict", Query: "c"})
		q.Push(lookup.Job{Source: "hjdict", Query: "a"})
		q.Push(lookup.Job{Source: "hjdict", Query: "b"})

		var got []string
		for {
			job, ok := q.Pop()
			if !ok {
				break
			}
			got = append(got, job.Query)
		}

		assert.Equal(t, []string{"c", "a", "b"}, got)
	})

	t.Run("returns false when empty", func(t *testing.T) {
		t.Parallel()

		q := lookup.NewQueue(10, 0.0001)

		_, ok := q.Pop()

		assert.False(t, ok)
	})

	t.Run("remembers popped jobs", func(t *testing.T) {
		t.Parallel()

		q := lookup.NewQueue(10, 0.0001)
		job := lookup.Job{Source: "hjdict", Query: "hello"}
		q.Push(job)
		q.Pop()

		assert.True(t, q.Seen(job))
		assert.False(t, q.Push(job))
	})
}

func TestQueue_ConcurrentPush(t *testing.T) {
	t.Parallel()

	q := lookup.NewQueue(10000, 0.0001)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range 100 {
				q.Push(lookup.Job{Source: "hjdict", Query: fmt.Sprintf("word-%d", i)})
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 100, q.Len())
}
