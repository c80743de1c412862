package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchRequest_Clamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   SearchRequest
		want SearchRequest
	}{
		{
			name: "defaults",
			in:   SearchRequest{},
			want: SearchRequest{Field: SearchFieldWord, Mode: SearchModeContains, Page: 1, PageSize: DefaultPageSize},
		},
		{
			name: "page size above max",
			in:   SearchRequest{PageSize: 1000, Page: 3, Field: SearchFieldMeaning, Mode: SearchModeExact},
			want: SearchRequest{PageSize: MaxPageSize, Page: 3, Field: SearchFieldMeaning, Mode: SearchModeExact},
		},
		{
			name: "negative page and fuzzy",
			in:   SearchRequest{Page: -4, PageSize: 10, Fuzzy: -2},
			want: SearchRequest{Field: SearchFieldWord, Mode: SearchModeContains, Page: 1, PageSize: 10, Fuzzy: 0},
		},
		{
			name: "page beyond addressable offset",
			in:   SearchRequest{Page: math.MaxInt, PageSize: 50},
			want: SearchRequest{Field: SearchFieldWord, Mode: SearchModeContains, Page: math.MaxInt / 50, PageSize: 50},
		},
		{
			name: "fuzzy above one",
			in:   SearchRequest{Fuzzy: 7, Page: 1, PageSize: 1},
			want: SearchRequest{Field: SearchFieldWord, Mode: SearchModeContains, Page: 1, PageSize: 1, Fuzzy: 1},
		},
		{
			name: "unknown enums",
			in:   SearchRequest{Field: "gloss", Mode: "fuzzy", Term: "  ol ", Etymology: " Basic "},
			want: SearchRequest{Field: SearchFieldWord, Mode: SearchModeContains, Term: "ol", Etymology: "Basic", Page: 1, PageSize: DefaultPageSize},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.Clamp())
		})
	}
}

func TestSearchRequest_Offset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, SearchRequest{Page: 1, PageSize: 15}.Offset())
	assert.Equal(t, 15, SearchRequest{Page: 2, PageSize: 15}.Offset())
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, TotalPages(20, 15))
	assert.Equal(t, 1, TotalPages(15, 15))
	assert.Equal(t, 0, TotalPages(0, 15))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestSearchMode_Normalized(t *testing.T) {
	t.Parallel()

	assert.True(t, SearchModeContains.Normalized())
	assert.True(t, SearchModeExact.Normalized())
	assert.False(t, SearchModeStartsWithExact.Normalized())
	assert.False(t, SearchModeEndsWithExact.Normalized())
}

func TestReportStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status ReportStatus
		want   bool
	}{
		{ReportStatusPending, true},
		{ReportStatusReviewed, true},
		{ReportStatusCorrected, true},
		{ReportStatus("closed"), false},
		{ReportStatus(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("ReportStatus(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestExpandEtymology(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{"D", "Derived"},
		{"F", "Foreign Loan Word"},
		{"Basic", "Basic"},
		{"VUD", "Verbum Unicum, Derived"},
		{"?D", "Derived?"},
		{"PU?", "Problematical/Uncertain?"},
		{"Turkic", "Turkic"},
		{"", ""},
		{"  S ", "See"},
	}
	for _, tt := range tests {
		t.Run("code_"+tt.code, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExpandEtymology(tt.code))
		})
	}
}

func TestEntry_ApplyWord(t *testing.T) {
	t.Parallel()

	var e Entry
	e.ApplyWord("ab/av")
	assert.Equal(t, "ab/av", e.Word)
	assert.Equal(t, "abav", e.WordNormalized)
	assert.Equal(t, []string{"ab", "av"}, e.SearchKeywords)

	e.ApplyWord("2 Öt")
	assert.Equal(t, "ot", e.WordNormalized)
	assert.Nil(t, e.SearchKeywords)
}

func TestNewVariant(t *testing.T) {
	t.Parallel()

	v := NewVariant(7, "Ḏaŋ")
	assert.Equal(t, int64(7), v.EntryID)
	assert.Equal(t, "Ḏaŋ", v.Variant)
	assert.Equal(t, "dan", v.VariantNormalized)
}
