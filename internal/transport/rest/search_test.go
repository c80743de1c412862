package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

func TestSearch_ParsesQueryAndWrapsResult(t *testing.T) {
	t.Parallel()

	var got domain.SearchRequest
	lookup := &mockLookup{
		SearchFunc: func(_ context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
			got = req
			return &domain.SearchResult{
				Items: []domain.Entry{
					{ID: 3, Word: "öl", WordNormalized: "ol", Meaning: strPtr("wet"), Variants: []string{"ȫl"}},
					{ID: 4, Word: "2 öl", WordNormalized: "ol", OccurrenceNumber: 2},
				},
				Page:       2,
				PageSize:   2,
				Total:      5,
				TotalPages: 3,
			}, nil
		},
	}
	h := newTestRouter(t, testDeps{lookup: lookup})

	rec := do(t, h, http.MethodGet,
		"/api/search?q=%C3%B6l&searchIn=word&searchMode=startsWith&etymology=Derived&letterMode=true&page=2&limit=2&fuzzy=0.5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, domain.SearchRequest{
		Term:       "öl",
		Field:      domain.SearchFieldWord,
		Mode:       domain.SearchModeStartsWith,
		Etymology:  "Derived",
		LetterMode: true,
		Page:       2,
		PageSize:   2,
		Fuzzy:      0.5,
	}, got)

	var resp struct {
		Success bool `json:"success"`
		Query   struct {
			Term       string `json:"term"`
			SearchMode string `json:"search_mode"`
		} `json:"query"`
		Results []struct {
			ID       int64    `json:"id"`
			Word     string   `json:"word"`
			Variants []string `json:"variants"`
		} `json:"results"`
		Count      int `json:"count"`
		Total      int `json:"total"`
		Page       int `json:"page"`
		TotalPages int `json:"total_pages"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "öl", resp.Query.Term)
	assert.Equal(t, "startsWith", resp.Query.SearchMode)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, []string{"ȫl"}, resp.Results[0].Variants)
	assert.Equal(t, []string{}, resp.Results[1].Variants)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.TotalPages)
}

func TestSearch_MalformedParamsFallBack(t *testing.T) {
	t.Parallel()

	var got domain.SearchRequest
	lookup := &mockLookup{
		SearchFunc: func(_ context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
			got = req
			return &domain.SearchResult{Items: []domain.Entry{}}, nil
		},
	}
	h := newTestRouter(t, testDeps{lookup: lookup})

	rec := do(t, h, http.MethodGet, "/api/search?q=ol&page=abc&limit=-&fuzzy=x&letterMode=maybe", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 0, got.PageSize)
	assert.InDelta(t, 0.3, got.Fuzzy, 1e-9)
	assert.False(t, got.LetterMode)
}

func TestSearch_LegacyTypeParam(t *testing.T) {
	t.Parallel()

	var got domain.SearchRequest
	lookup := &mockLookup{
		SearchFunc: func(_ context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
			got = req
			return &domain.SearchResult{}, nil
		},
	}
	h := newTestRouter(t, testDeps{lookup: lookup})

	do(t, h, http.MethodGet, "/api/search?q=water&type=english", "")
	assert.Equal(t, domain.SearchFieldMeaning, got.Field)

	do(t, h, http.MethodGet, "/api/search?q=water&type=english&searchIn=word", "")
	assert.Equal(t, domain.SearchFieldWord, got.Field)
}

func TestSearch_InternalErrorHidesDetail(t *testing.T) {
	t.Parallel()

	lookup := &mockLookup{
		SearchFunc: func(context.Context, domain.SearchRequest) (*domain.SearchResult, error) {
			return nil, errors.New("pq: relation words does not exist")
		},
	}
	h := newTestRouter(t, testDeps{lookup: lookup})

	rec := do(t, h, http.MethodGet, "/api/search?q=ol", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"internal server error"}`, rec.Body.String())
}

func TestWord(t *testing.T) {
	t.Parallel()

	lookup := &mockLookup{
		GetEntryFunc: func(_ context.Context, id int64) (*domain.EntryDetail, error) {
			if id != 7 {
				return nil, domain.ErrNotFound
			}
			return &domain.EntryDetail{
				Entry:                domain.Entry{ID: 7, Word: "1 ol", CrossReference: strPtr("öl")},
				CrossReferenceDetail: &domain.EntrySummary{ID: 3, Word: "öl"},
				OtherOccurrences:     []domain.Occurrence{{ID: 8, Word: "2 ol", OccurrenceNumber: 2}},
			}, nil
		},
	}
	h := newTestRouter(t, testDeps{lookup: lookup})

	t.Run("found", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/search/word/7", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				ID                   int64 `json:"id"`
				CrossReferenceDetail *struct {
					ID   int64  `json:"id"`
					Word string `json:"word"`
				} `json:"cross_reference_detail"`
				OtherOccurrences []struct {
					ID               int64 `json:"id"`
					OccurrenceNumber int   `json:"occurrence_number"`
				} `json:"other_occurrences"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, int64(7), resp.Data.ID)
		require.NotNil(t, resp.Data.CrossReferenceDetail)
		assert.Equal(t, int64(3), resp.Data.CrossReferenceDetail.ID)
		require.Len(t, resp.Data.OtherOccurrences, 1)
		assert.Equal(t, 2, resp.Data.OtherOccurrences[0].OccurrenceNumber)
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/search/word/99", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"not found"}`, rec.Body.String())
	})

	t.Run("bad id", func(t *testing.T) {
		for _, id := range []string{"abc", "0", "-4"} {
			rec := do(t, h, http.MethodGet, "/api/search/word/"+id, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, "id %q", id)
		}
	})
}

func TestAutocomplete(t *testing.T) {
	t.Parallel()

	var gotTerm string
	var gotLimit int
	lookup := &mockLookup{
		AutocompleteFunc: func(_ context.Context, term string, limit int) ([]string, error) {
			gotTerm, gotLimit = term, limit
			return []string{"olmak", "olur"}, nil
		},
	}
	h := newTestRouter(t, testDeps{lookup: lookup})

	rec := do(t, h, http.MethodGet, "/api/search/autocomplete?q=ol&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"suggestions":["olmak","olur"]}`, rec.Body.String())
	assert.Equal(t, "ol", gotTerm)
	assert.Equal(t, 5, gotLimit)

	do(t, h, http.MethodGet, "/api/search/autocomplete?q=ol", "")
	assert.Equal(t, 0, gotLimit, "missing limit is left to the service default")
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	lookup := &mockLookup{
		StatisticsFunc: func(context.Context) (*domain.Statistics, error) {
			return &domain.Statistics{
				UniqueWords:           2,
				TotalEntries:          3,
				EtymologyTypes:        1,
				RepeatedWords:         1,
				TotalVariants:         4,
				EtymologyDistribution: []domain.EtymologyCount{{EtymologyType: "Derived", Count: 3}},
				MostRepeated:          []domain.RepeatedWord{{Word: "ol", Occurrences: 2}},
			}, nil
		},
	}
	h := newTestRouter(t, testDeps{lookup: lookup})

	rec := do(t, h, http.MethodGet, "/api/search/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"statistics": {
			"unique_words": 2,
			"total_entries": 3,
			"etymology_types": 1,
			"repeated_words": 1,
			"total_variants": 4,
			"etymology_distribution": [{"etymology_type": "Derived", "count": 3}],
			"most_repeated": [{"word": "ol", "max_occurrence": 2}]
		}
	}`, rec.Body.String())
}

func TestEtymologies(t *testing.T) {
	t.Parallel()

	lookup := &mockLookup{
		EtymologiesFunc: func(context.Context) ([]string, error) {
			return []string{"Derived", "Foreign Loan Word"}, nil
		},
	}
	h := newTestRouter(t, testDeps{lookup: lookup})

	rec := do(t, h, http.MethodGet, "/api/search/etymologies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":["Derived","Foreign Loan Word"]}`, rec.Body.String())
}

func TestRandom(t *testing.T) {
	t.Parallel()

	t.Run("entry", func(t *testing.T) {
		lookup := &mockLookup{
			RandomFunc: func(context.Context) (*domain.Entry, error) {
				return &domain.Entry{ID: 5, Word: "kar"}, nil
			},
		}
		rec := do(t, newTestRouter(t, testDeps{lookup: lookup}), http.MethodGet, "/api/search/random", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data struct {
				ID   int64  `json:"id"`
				Word string `json:"word"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "kar", resp.Data.Word)
	})

	t.Run("empty corpus", func(t *testing.T) {
		rec := do(t, newTestRouter(t, testDeps{}), http.MethodGet, "/api/search/random", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
