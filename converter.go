package dictscrape

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment (e.g., from OutcomeHTML) into
	// Markdown.
	Convert(html string) (string, error)
}
