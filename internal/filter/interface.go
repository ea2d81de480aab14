// Package filter narrows the current result list locally, without going back
// to the search API.
package filter

import "github.com/pders01/hnews/internal/hn"

// Matcher ranks the hits it was last loaded with against a filter query.
type Matcher interface {
	// Load replaces the indexed hits.
	Load(hits []hn.Hit) error
	// Match returns matching hits, best first. A blank query returns every
	// loaded hit in its original order.
	Match(query string, limit int) ([]hn.Hit, error)
	Close() error
}

// DocCounter is implemented by matchers that can report their index size.
type DocCounter interface {
	DocCount() (int, error)
}

// New returns the bleve-backed matcher, or the plain scorer when an index
// cannot be created.
func New() Matcher {
	m, err := NewBleveMatcher()
	if err != nil {
		return NewSimpleMatcher()
	}
	return m
}
