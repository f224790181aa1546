// Package token produces the short pickup codes handed to customers.
package token

import (
	"fmt"
	"math/rand/v2"
)

// Generator builds pickup tokens of the form PREFIX-NNN, where the prefix
// is fixed per site and NNN is a uniform three-digit number. Tokens are not
// unique; collisions are an accepted cosmetic risk.
type Generator struct {
	prefixes map[string]string
	intN     func(n int) int
}

// Option customises a Generator.
type Option func(*Generator)

// WithIntN overrides the random source, used by tests to pin sequences.
func WithIntN(fn func(n int) int) Option {
	return func(g *Generator) {
		g.intN = fn
	}
}

// NewGenerator builds a Generator for the given site-to-prefix mapping.
func NewGenerator(prefixes map[string]string, opts ...Option) *Generator {
	g := &Generator{
		prefixes: prefixes,
		intN:     rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Pickup returns a fresh token for the given site.
func (g *Generator) Pickup(site string) (string, error) {
	prefix, ok := g.prefixes[site]
	if !ok {
		return "", fmt.Errorf("unknown site: %s", site)
	}
	return fmt.Sprintf("%s-%d", prefix, 100+g.intN(900)), nil
}

// Known reports whether the generator has a prefix for the given site.
func (g *Generator) Known(site string) bool {
	_, ok := g.prefixes[site]
	return ok
}
