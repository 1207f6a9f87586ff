package dictscrape

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// DefaultTokenBase is used when a token base is outside 2–36.
const DefaultTokenBase = 16

// UUIDTemplate shapes session tokens like RFC 4122 UUIDs. Each 'x' becomes
// a random digit and each 'y' a variant digit in the range 8–b.
const UUIDTemplate = "xxxxxxxx-xyxx-yxxx-xxxy-xxyxxxxxxxxx"

// RandomSource returns a non-negative pseudo-random int in [0,n).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// globalRandom draws from the process-wide generator, which is safe for
// concurrent use.
type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// TokenGenerator produces pseudo-random identifiers some sources expect as
// session or device cookies.
type TokenGenerator struct {
	rand RandomSource
}

// NewTokenGenerator creates a TokenGenerator. A nil source uses the
// process-wide generator.
func NewTokenGenerator(r RandomSource) *TokenGenerator {
	if r == nil {
		r = globalRandom{}
	}
	return &TokenGenerator{rand: r}
}

// Generate substitutes every 'x' and 'y' placeholder in template with a
// random digit in the given base. Other characters are kept verbatim.
// A base outside 2–36 silently falls back to DefaultTokenBase.
func (g *TokenGenerator) Generate(template string, base int) string {
	if base < 2 || base > 36 {
		base = DefaultTokenBase
	}

	var b strings.Builder
	b.Grow(len(template))
	for _, r := range template {
		switch r {
		case 'x':
			b.WriteString(strconv.FormatInt(int64(g.rand.IntN(base)), base))
		case 'y':
			n := g.rand.IntN(base)
			b.WriteString(strconv.FormatInt(int64(n&3|8), base))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UUID returns a UUID-shaped hex token.
func (g *TokenGenerator) UUID() string {
	return g.Generate(UUIDTemplate, DefaultTokenBase)
}

// Random returns an n-character hex token built from a random mix of
// 'x' and 'y' placeholders.
func (g *TokenGenerator) Random(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		if g.rand.IntN(10)%2 == 0 {
			b.WriteByte('x')
		} else {
			b.WriteByte('y')
		}
	}
	return g.Generate(b.String(), DefaultTokenBase)
}
