package domain

import (
	"math"
	"strings"
)

// SearchField selects which columns a search term is matched against.
type SearchField string

const (
	SearchFieldWord    SearchField = "word"
	SearchFieldMeaning SearchField = "meaning"
)

func (f SearchField) String() string { return string(f) }

func (f SearchField) IsValid() bool {
	switch f {
	case SearchFieldWord, SearchFieldMeaning:
		return true
	}
	return false
}

// SearchMode is the matching strategy for word-field searches.
type SearchMode string

const (
	SearchModeContains        SearchMode = "contains"
	SearchModeStartsWith      SearchMode = "startsWith"
	SearchModeEndsWith        SearchMode = "endsWith"
	SearchModeStartsWithExact SearchMode = "startsWithExact"
	SearchModeEndsWithExact   SearchMode = "endsWithExact"
	SearchModeExact           SearchMode = "exact"
)

func (m SearchMode) String() string { return string(m) }

func (m SearchMode) IsValid() bool {
	switch m {
	case SearchModeContains, SearchModeStartsWith, SearchModeEndsWith,
		SearchModeStartsWithExact, SearchModeEndsWithExact, SearchModeExact:
		return true
	}
	return false
}

// Normalized reports whether the mode compares in normalized space.
// The *Exact prefix/suffix modes match raw display text instead.
func (m SearchMode) Normalized() bool {
	return m != SearchModeStartsWithExact && m != SearchModeEndsWithExact
}

// Paging bounds for search requests.
const (
	DefaultPageSize = 15
	MaxPageSize     = 200
	DefaultFuzzy    = 0.3
)

// SearchRequest is a single search box submission.
type SearchRequest struct {
	Term       string
	Field      SearchField
	Mode       SearchMode
	Etymology  string
	LetterMode bool
	Page       int
	PageSize   int
	// Fuzzy is accepted for client compatibility; matching is strict.
	Fuzzy float64
}

// Clamp returns a copy of r with every field forced into its valid range.
// Out-of-range numbers are clamped, unknown enums fall back to defaults.
func (r SearchRequest) Clamp() SearchRequest {
	r.Term = strings.TrimSpace(r.Term)
	r.Etymology = strings.TrimSpace(r.Etymology)
	if !r.Field.IsValid() {
		r.Field = SearchFieldWord
	}
	if !r.Mode.IsValid() {
		r.Mode = SearchModeContains
	}
	if r.Page < 1 {
		r.Page = 1
	}
	switch {
	case r.PageSize <= 0:
		r.PageSize = DefaultPageSize
	case r.PageSize > MaxPageSize:
		r.PageSize = MaxPageSize
	}
	// Offset must stay within int and PostgreSQL bigint.
	if maxPage := math.MaxInt / r.PageSize; r.Page > maxPage {
		r.Page = maxPage
	}
	switch {
	case r.Fuzzy < 0:
		r.Fuzzy = 0
	case r.Fuzzy > 1:
		r.Fuzzy = 1
	}
	return r
}

// Offset returns the row offset of the requested page.
func (r SearchRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// SearchResult is one page of search hits plus pagination metadata.
type SearchResult struct {
	Items      []Entry
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// TotalPages returns ceil(total/pageSize), zero when there is nothing to page.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
