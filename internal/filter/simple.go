package filter

import (
	"math"
	"sort"
	"strings"

	"github.com/pders01/hnews/internal/hn"
)

// simpleMatcher scores hits with substring heuristics. It needs no index and
// backs the filter when bleve is unavailable.
type simpleMatcher struct {
	hits []hn.Hit
}

// NewSimpleMatcher returns a matcher that needs no index.
func NewSimpleMatcher() Matcher {
	return &simpleMatcher{}
}

func (s *simpleMatcher) Load(hits []hn.Hit) error {
	s.hits = append([]hn.Hit(nil), hits...)
	return nil
}

func (s *simpleMatcher) Match(query string, limit int) ([]hn.Hit, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return limitHits(append([]hn.Hit(nil), s.hits...), limit), nil
	}

	type scored struct {
		hit   hn.Hit
		score float64
		pos   int
	}

	var results []scored
	for i, h := range s.hits {
		score := scoreField(h.DisplayTitle(), terms, 4.0) +
			scoreField(h.Author, terms, 1.5) +
			scoreField(h.URL, terms, 0.5)
		if score > 0 {
			results = append(results, scored{hit: h, score: score, pos: i})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].pos < results[j].pos
	})

	out := make([]hn.Hit, 0, len(results))
	for _, r := range results {
		out = append(out, r.hit)
	}
	return limitHits(out, limit), nil
}

func (s *simpleMatcher) Close() error { return nil }

// scoreField rewards whole-word matches over prefix matches over plain
// substring matches, then dampens by field length.
func scoreField(text string, terms []string, weight float64) float64 {
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	var score float64
	matched := 0
	for _, term := range terms {
		for _, word := range words {
			switch {
			case word == term:
				score += 1.5
				matched++
			case strings.HasPrefix(word, term):
				score += 1.0
				matched++
			case strings.Contains(word, term):
				score += 0.5
				matched++
			}
		}
	}
	if matched == 0 {
		return 0
	}

	if len(terms) > 1 && matched > 1 {
		score *= 1.0 + float64(matched)/float64(len(terms))
	}

	tf := float64(matched) / float64(len(words))
	return score * (1.0 + math.Log(1.0+tf)) * weight
}
