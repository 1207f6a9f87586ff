package dictscrape

import (
	"context"
	"strings"
)

// Language selects the target language of a lookup. Each source maps it to
// its own internal code through a fixed table.
type Language string

// Supported language selectors.
const (
	LangEnglish  Language = "en"
	LangJapanese Language = "jp"
	LangKorean   Language = "kr"
	LangFrench   Language = "fr"
	LangGerman   Language = "de"
	LangSpanish  Language = "es"

	// LangEnglishJapanese selects English-Japanese pairs on bilingual
	// sentence sources.
	LangEnglishJapanese Language = "enjp"
)

// SourceConfig carries per-search settings.
type SourceConfig struct {
	Lang Language `json:"lang"`
}

// Source wraps one external dictionary website.
// Implementations must be safe for concurrent use.
type Source interface {
	// Name returns the source's identifier (e.g., "hjdict").
	Name() string

	// SourceURL returns the page a user can open to see where a result came
	// from. It is pure: no I/O, same query always yields the same URL.
	SourceURL(query string) string

	// Search fetches and classifies the source's result page.
	// Transport failures are reported as a *NetworkError outcome, not an
	// error. Returns EINVALID for an empty query or an unsupported language.
	Search(ctx context.Context, query string, cfg SourceConfig) (Outcome, error)
}

// NormalizeQuery trims the query and collapses whitespace runs into a
// single space.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
