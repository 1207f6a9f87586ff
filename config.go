package dictscrape

import "time"

// Config holds user-level defaults. Command-line flags override it.
type Config struct {
	// DBPath is the lookup history database. Empty disables history.
	DBPath string

	// Lang is the default target language.
	Lang Language

	// Sources lists the sources queried when none is given explicitly.
	Sources []string

	// Timeout bounds each page fetch.
	Timeout time.Duration

	// UserAgent overrides the HTTP fetcher's User-Agent header.
	UserAgent string

	// Rate is the per-source request rate for batch lookups (requests/second).
	Rate float64
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Lang:    LangEnglish,
		Sources: []string{"hjdict"},
		Timeout: 10 * time.Second,
		Rate:    1.0,
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return Errorf(EINVALID, "timeout must not be negative")
	}
	if c.Rate < 0 {
		return Errorf(EINVALID, "rate must not be negative")
	}
	return nil
}
