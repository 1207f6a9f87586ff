package dictscrape_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/fwojciec/dictscrape"
	"github.com/fwojciec/dictscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("substitutes placeholders from the random source", func(t *testing.T) {
		t.Parallel()

		rnd := &mock.RandomSource{IntNFn: func(n int) int { return n - 1 }}
		g := dictscrape.NewTokenGenerator(rnd)

		token := g.Generate("xy-yx", 16)

		// x -> 15 ("f"); y -> 15&3|8 = 11 ("b")
		assert.Equal(t, "fb-bf", token)
	})

	t.Run("constrains y placeholders to the variant range", func(t *testing.T) {
		t.Parallel()

		seq := []int{0, 1, 2, 3, 4, 5, 6, 7}
		i := 0
		rnd := &mock.RandomSource{IntNFn: func(n int) int {
			v := seq[i%len(seq)]
			i++
			return v
		}}
		g := dictscrape.NewTokenGenerator(rnd)

		token := g.Generate("yyyyyyyy", 16)

		assert.Equal(t, "89ab89ab", token)
	})

	t.Run("keeps literal characters", func(t *testing.T) {
		t.Parallel()

		rnd := &mock.RandomSource{IntNFn: func(n int) int { return 0 }}
		g := dictscrape.NewTokenGenerator(rnd)

		token := g.Generate("HJ-x.x_z", 16)

		assert.Equal(t, "HJ-0.0_z", token)
	})

	t.Run("clamps out-of-range base to 16", func(t *testing.T) {
		t.Parallel()

		for _, base := range []int{-1, 0, 1, 37, 100} {
			var gotN []int
			rnd := &mock.RandomSource{IntNFn: func(n int) int {
				gotN = append(gotN, n)
				return 0
			}}
			g := dictscrape.NewTokenGenerator(rnd)

			token := g.Generate("xx", base)

			assert.Equal(t, "00", token)
			assert.Equal(t, []int{16, 16}, gotN, "base %d", base)
		}
	})

	t.Run("uses the requested base within range", func(t *testing.T) {
		t.Parallel()

		rnd := &mock.RandomSource{IntNFn: func(n int) int { return n - 1 }}
		g := dictscrape.NewTokenGenerator(rnd)

		assert.Equal(t, "1", g.Generate("x", 2))
		assert.Equal(t, "z", g.Generate("x", 36))
		assert.Equal(t, "9", g.Generate("x", 10))
	})
}

func TestTokenGenerator_UUID(t *testing.T) {
	t.Parallel()

	t.Run("returns 36 hex characters and hyphens", func(t *testing.T) {
		t.Parallel()

		g := dictscrape.NewTokenGenerator(nil)
		shape := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

		for i := 0; i < 200; i++ {
			token := g.UUID()

			require.Len(t, token, 36)
			assert.Regexp(t, shape, token)
		}
	})

	t.Run("places variant digits where the template has y", func(t *testing.T) {
		t.Parallel()

		g := dictscrape.NewTokenGenerator(nil)

		for i := 0; i < 200; i++ {
			token := g.UUID()
			for pos, r := range dictscrape.UUIDTemplate {
				if r == 'y' {
					assert.Contains(t, "89ab", string(token[pos]))
				}
			}
		}
	})
}

func TestTokenGenerator_Random(t *testing.T) {
	t.Parallel()

	t.Run("returns n hex characters", func(t *testing.T) {
		t.Parallel()

		g := dictscrape.NewTokenGenerator(nil)

		token := g.Random(16)

		require.Len(t, token, 16)
		assert.Empty(t, strings.Trim(token, "0123456789abcdef"))
	})

	t.Run("returns empty token for zero length", func(t *testing.T) {
		t.Parallel()

		g := dictscrape.NewTokenGenerator(nil)

		assert.Empty(t, g.Random(0))
	})
}
