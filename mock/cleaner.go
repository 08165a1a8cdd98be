package mock

import "github.com/progdex/progdex"

var _ progdex.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of progdex.Cleaner.
type Cleaner struct {
	CleanFn func(html string) (string, error)
}

func (c *Cleaner) Clean(html string) (string, error) {
	return c.CleanFn(html)
}
