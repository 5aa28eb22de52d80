package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/highlight/highlighter/ansi"
	"github.com/blevesearch/bleve/v2/search/highlight/highlighter/html"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/versepace/versepace/internal/domain"
)

// Highlight styles for hit fragments.
const (
	HighlightHTML = html.Name // <mark>term</mark>
	HighlightANSI = ansi.Name // Terminal escape codes
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string // User's search query
	Book  *int   // Restrict to one book index (nil = all books)

	// Pagination
	Limit  int
	Offset int

	HighlightStyle string // HighlightHTML (default) or HighlightANSI
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:          20,
		HighlightStyle: HighlightHTML,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit is one matching verse.
type Hit struct {
	Cursor    domain.Cursor `json:"cursor"`
	Reference string        `json:"reference"`
	Score     float64       `json:"score"`
	Text      string        `json:"text"`
	// Fragment is the best highlighted excerpt of the verse text.
	Fragment string `json:"fragment,omitempty"`
}

// Search runs query with default parameters and at most limit hits.
func (s *VerseIndex) Search(ctx context.Context, q string, limit int) (*SearchResult, error) {
	params := DefaultSearchParams()
	params.Query = q
	if limit > 0 {
		params.Limit = limit
	}
	return s.SearchWithParams(ctx, params)
}

// SearchWithParams executes a search query. A blank query matches nothing.
func (s *VerseIndex) SearchWithParams(ctx context.Context, params SearchParams) (*SearchResult, error) {
	params.Query = strings.TrimSpace(params.Query)
	if params.Query == "" {
		return &SearchResult{Hits: []Hit{}}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)

	style := params.HighlightStyle
	if style == "" {
		style = HighlightHTML
	}
	searchRequest.Highlight = bleve.NewHighlightWithStyle(style)
	searchRequest.Highlight.AddField("text")

	searchRequest.Fields = []string{"book", "chapter", "verse", "reference", "text"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{Score: hit.Score}

		if b, ok := hit.Fields["book"].(float64); ok {
			h.Cursor.Book = int(b)
		}
		if c, ok := hit.Fields["chapter"].(float64); ok {
			h.Cursor.Chapter = int(c)
		}
		if v, ok := hit.Fields["verse"].(float64); ok {
			h.Cursor.Verse = int(v)
		}
		if r, ok := hit.Fields["reference"].(string); ok {
			h.Reference = r
		}
		if t, ok := hit.Fields["text"].(string); ok {
			h.Text = t
		}
		if fragments := hit.Fragments["text"]; len(fragments) > 0 {
			h.Fragment = fragments[0]
		}

		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	textQueries := []query.Query{}

	// Analyzed match on verse text, highest boost
	textMatch := bleve.NewMatchQuery(params.Query)
	textMatch.SetField("text")
	textMatch.SetBoost(3.0)
	textQueries = append(textQueries, textMatch)

	// Exact phrase for multi-word queries
	if strings.Contains(params.Query, " ") {
		phrase := bleve.NewMatchPhraseQuery(params.Query)
		phrase.SetField("text")
		phrase.SetBoost(5.0)
		textQueries = append(textQueries, phrase)
	}

	// Typo tolerance for single longer words
	if !strings.Contains(params.Query, " ") && utf8.RuneCountInString(params.Query) >= 4 {
		fuzzyQuery := bleve.NewFuzzyQuery(strings.ToLower(params.Query))
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("text")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)
	}

	bookMatch := bleve.NewMatchQuery(params.Query)
	bookMatch.SetField("book_name")
	bookMatch.SetBoost(0.5)
	textQueries = append(textQueries, bookMatch)

	var q query.Query = bleve.NewDisjunctionQuery(textQueries...)

	if params.Book != nil {
		lo := float64(*params.Book)
		hi := lo
		inclusive := true
		bookFilter := bleve.NewNumericRangeInclusiveQuery(&lo, &hi, &inclusive, &inclusive)
		bookFilter.SetField("book")
		q = bleve.NewConjunctionQuery(q, bookFilter)
	}

	return q
}
