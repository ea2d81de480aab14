package filter

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/hnews/internal/hn"
)

type bleveMatcher struct {
	idx  bleve.Index
	hits []hn.Hit
	byID map[string]int
}

// NewBleveMatcher creates an empty in-memory index.
func NewBleveMatcher() (Matcher, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating filter index: %w", err)
	}
	return &bleveMatcher{idx: idx, byID: map[string]int{}}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.IncludeTermVectors = true

	author := bleve.NewTextFieldMapping()
	author.Analyzer = standard.Name

	url := bleve.NewTextFieldMapping()
	url.Analyzer = standard.Name

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("author", author)
	dm.AddFieldMappingsAt("url", url)

	im.DefaultMapping = dm
	return im
}

// Load drops the previous documents and indexes hits under their keys.
func (b *bleveMatcher) Load(hits []hn.Hit) error {
	batch := b.idx.NewBatch()
	for key := range b.byID {
		batch.Delete(key)
	}

	next := append([]hn.Hit(nil), hits...)
	byID := make(map[string]int, len(next))
	for i, h := range next {
		byID[h.Key] = i
		if err := batch.Index(h.Key, map[string]any{
			"title":  h.DisplayTitle(),
			"author": h.Author,
			"url":    h.URL,
		}); err != nil {
			return fmt.Errorf("indexing %s: %w", h.Key, err)
		}
	}

	if err := b.idx.Batch(batch); err != nil {
		return fmt.Errorf("updating filter index: %w", err)
	}
	b.hits = next
	b.byID = byID
	return nil
}

func (b *bleveMatcher) Match(query string, limit int) ([]hn.Hit, error) {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return limitHits(append([]hn.Hit(nil), b.hits...), limit), nil
	}
	if len(b.hits) == 0 {
		return []hn.Hit{}, nil
	}

	var qs []bleveQuery.Query
	for _, tok := range tokens {
		qs = append(qs, fieldQueries(tok, "title", 4.0)...)
		qs = append(qs, fieldQueries(tok, "author", 1.5)...)
		qs = append(qs, fieldQueries(tok, "url", 0.5)...)
	}

	size := len(b.hits)
	if limit > 0 && limit < size {
		size = limit
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), size, 0, false)
	res, err := b.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("filtering results: %w", err)
	}

	out := make([]hn.Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		if i, ok := b.byID[h.ID]; ok {
			out = append(out, b.hits[i])
		}
	}
	return out, nil
}

// fieldQueries matches tok as a whole term and as a prefix on field.
func fieldQueries(tok, field string, boost float64) []bleveQuery.Query {
	match := bleve.NewMatchQuery(tok)
	match.SetField(field)
	match.SetBoost(boost)

	prefix := bleve.NewPrefixQuery(strings.ToLower(tok))
	prefix.SetField(field)
	prefix.SetBoost(boost * 0.8)

	return []bleveQuery.Query{match, prefix}
}

// DocCount reports total documents in the index.
func (b *bleveMatcher) DocCount() (int, error) {
	n, err := b.idx.DocCount()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (b *bleveMatcher) Close() error {
	return b.idx.Close()
}
