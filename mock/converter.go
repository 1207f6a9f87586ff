package mock

import "github.com/fwojciec/dictscrape"

var _ dictscrape.Converter = (*Converter)(nil)

// Converter is a mock implementation of dictscrape.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
