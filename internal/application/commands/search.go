package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"arknotes/internal/domain"
	"arknotes/internal/ports"
)

// DefaultSearchLimit caps how many hits a search returns
const DefaultSearchLimit = 50

// SearchResult wraps domain.SearchHit with a relevance score
type SearchResult struct {
	domain.SearchHit
	Score int
}

// SearchCommand searches note titles and contents across every notebook
type SearchCommand struct {
	repo  ports.DocumentStore
	index ports.NoteIndex
	Query string
	Limit int
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(repo ports.DocumentStore, index ports.NoteIndex, query string) *SearchCommand {
	return &SearchCommand{
		repo:  repo,
		index: index,
		Query: query,
		Limit: DefaultSearchLimit,
	}
}

// Execute refreshes the index when the document changed, then returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(strings.TrimSpace(c.Query)) < 2 {
		return nil, nil
	}

	doc, err := c.repo.LoadDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	stale, err := c.index.NeedsRebuild(doc)
	if err != nil {
		return nil, err
	}
	if stale {
		if _, err := c.index.Rebuild(doc); err != nil {
			return nil, fmt.Errorf("failed to rebuild index: %w", err)
		}
	}

	hits, err := c.index.Search(c.Query, c.Limit)
	if err != nil {
		return nil, err
	}
	return FuzzySort(hits, c.Query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && isWordBoundary(target[i-1]) {
				score += 10
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort orders hits by relevance to the query. Every hit already matched in
// the index, so hits the fuzzy scorer misses are kept at the bottom.
func FuzzySort(hits []domain.SearchHit, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(hits))

	for _, h := range hits {
		s1 := FuzzyScore(h.Title, query)
		s2 := FuzzyScore(h.Snippet, query)
		s3 := FuzzyScore(h.NotebookName, query)

		scored = append(scored, SearchResult{
			SearchHit: h,
			Score:     max(s1, s2, s3),
		})
	}

	// Sort by score descending
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// isWordBoundary reports bytes that start a new word in markdown text
func isWordBoundary(b byte) bool {
	switch b {
	case ' ', '\n', '\t', '#', '-', '_', '*', '(', '[':
		return true
	}
	return false
}
