package mock

import "github.com/fwojciec/lexcrawl"

var _ lexcrawl.Converter = (*Converter)(nil)

// Converter is a mock implementation of lexcrawl.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
