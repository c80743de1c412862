// Package search turns a search box submission into SQL.
//
// Plan picks one matching strategy per request and returns the row
// predicate, an optional relevance score and the ordering. The same
// predicate drives both the page query and the total count, so the two can
// never disagree about which rows match.
//
// Normalized modes compare against words.word_normalized using the term
// passed through domain.Normalize; the *Exact modes and letter browsing
// compare against the raw display headword.
package search

import (
	"github.com/Masterminds/squirrel"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

// Table is the relation every planned query reads from.
const Table = "words"

// RelevanceColumn is the alias of the computed score in ranked queries.
const RelevanceColumn = "relevance"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Query is a planned search.
type Query struct {
	// Where selects matching rows. It is shared by Select and Count.
	Where squirrel.Sqlizer
	// Relevance scores a row; nil for alphabetical listings.
	Relevance squirrel.Sqlizer
	OrderBy   []squirrel.Sqlizer
	Limit     uint64
	Offset    uint64

	// Request is the clamped request the plan was built from.
	Request domain.SearchRequest
}

// Ranked reports whether rows are ordered by a computed relevance score.
func (q Query) Ranked() bool { return q.Relevance != nil }

// Select builds the page query returning columns plus, when ranked, the
// relevance score as the last column.
func (q Query) Select(columns ...string) squirrel.SelectBuilder {
	b := psql.Select(columns...).From(Table).Where(q.Where)
	if q.Relevance != nil {
		b = b.Column(squirrel.Alias(q.Relevance, RelevanceColumn))
	}
	for _, o := range q.OrderBy {
		b = b.OrderByClause(o)
	}
	return b.Limit(q.Limit).Offset(q.Offset)
}

// Count builds the total-count query for the same predicate.
func (q Query) Count() squirrel.SelectBuilder {
	return psql.Select("COUNT(*)").From(Table).Where(q.Where)
}

// Ordering shared by plans; id keeps pagination stable between equal words.
var (
	byWord      = squirrel.Expr("word ASC")
	byID        = squirrel.Expr("id ASC")
	byRelevance = squirrel.Expr(RelevanceColumn + " DESC")
)

func alphabetical() []squirrel.Sqlizer {
	return []squirrel.Sqlizer{byWord, byID}
}

func ranked(extra ...squirrel.Sqlizer) []squirrel.Sqlizer {
	order := append([]squirrel.Sqlizer{byRelevance}, extra...)
	return append(order, byWord, byID)
}

// Plan builds the Query for req. It never fails: req is clamped first and
// any term that folds to nothing falls back to browsing.
func Plan(req domain.SearchRequest) Query {
	req = req.Clamp()

	q := Query{
		Limit:   uint64(req.PageSize),
		Offset:  uint64(req.Offset()),
		OrderBy: alphabetical(),
		Request: req,
	}

	var where squirrel.And
	switch {
	case req.Term == "":
		// browse all
	case req.Field == domain.SearchFieldMeaning:
		where = append(where, planMeaning(&q, req.Term))
	default:
		if pred := planWord(&q, req); pred != nil {
			where = append(where, pred)
		}
	}

	if req.Etymology != "" {
		where = append(where, squirrel.Eq{"etymology_type": req.Etymology})
	}

	q.Where = where
	return q
}

// planWord returns the predicate for a word-field search, or nil when the
// term has no comparable content and the request degrades to browsing.
func planWord(q *Query, req domain.SearchRequest) squirrel.Sqlizer {
	if req.Mode == domain.SearchModeStartsWith && req.LetterMode {
		return letterPredicate(req.Term)
	}

	if !req.Mode.Normalized() {
		raw := domain.EscapeLike(req.Term)
		if req.Mode == domain.SearchModeStartsWithExact {
			return squirrel.Expr("word LIKE ?", raw+"%")
		}
		return squirrel.Expr("word LIKE ?", "%"+raw)
	}

	term := domain.Normalize(req.Term)
	if term == "" {
		return nil
	}
	like := domain.EscapeLike(term)

	switch req.Mode {
	case domain.SearchModeExact:
		// Slash-separated alternate spellings match on their own.
		return squirrel.Expr("(word_normalized = ? OR search_keywords @> ARRAY[?]::text[])", term, term)
	case domain.SearchModeStartsWith:
		return squirrel.Expr("word_normalized LIKE ?", like+"%")
	case domain.SearchModeEndsWith:
		return squirrel.Expr("word_normalized LIKE ?", "%"+like)
	default:
		q.Relevance = squirrel.Expr(
			"(CASE WHEN word_normalized = ? THEN 100 WHEN word_normalized LIKE ? THEN 90 ELSE 80 END)::float8",
			term, like+"%",
		)
		q.OrderBy = ranked()
		return squirrel.Expr("word_normalized LIKE ?", "%"+like+"%")
	}
}

// letterPredicate matches headwords whose first real letter, after the
// ordinal and notation prefix is trimmed, falls in the alphabet bucket of
// letter. Dotted and dotless I are separate buckets here.
func letterPredicate(letter string) squirrel.Sqlizer {
	prefixes := domain.LetterPrefixes(letter)
	if len(prefixes) == 0 {
		return nil
	}
	return squirrel.Expr(
		"regexp_replace(word, ?, '') LIKE ANY(?::text[]) AND regexp_replace(word, ?, '') <> ''",
		domain.HeadwordPrefixPattern, prefixes, domain.HeadwordPrefixPattern,
	)
}

// planMeaning matches the English gloss and the full entry text. Rows are
// tiered: exact gloss, gloss prefix, gloss substring, full-text token match,
// then anything else that satisfied the containment predicate. Within a
// tier the full-text rank breaks ties before the headword.
func planMeaning(q *Query, term string) squirrel.Sqlizer {
	like := domain.EscapeLike(term)
	contains := "%" + like + "%"

	q.Relevance = squirrel.Expr(
		"(CASE"+
			" WHEN meaning ILIKE ? THEN 0.9"+
			" WHEN meaning ILIKE ? THEN 0.8"+
			" WHEN meaning ILIKE ? THEN 0.7"+
			" WHEN "+meaningVector+" @@ plainto_tsquery('english', ?) THEN 0.6"+
			" ELSE 0.5 END)::float8",
		like, like+"%", contains, term,
	)
	q.OrderBy = ranked(squirrel.Expr(
		"ts_rank_cd("+meaningVector+", plainto_tsquery('english', ?)) DESC", term,
	))

	return squirrel.Or{
		squirrel.Expr(meaningVector+" @@ plainto_tsquery('english', ?)", term),
		squirrel.Expr("meaning ILIKE ?", contains),
		squirrel.Expr("COALESCE(full_entry_text, '') ILIKE ?", contains),
	}
}

const meaningVector = "to_tsvector('english', COALESCE(meaning, ''))"
