package rest

import (
	"time"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

// Field names follow the snake_case shape existing clients consume.

type entryResponse struct {
	ID               int64      `json:"id"`
	Word             string     `json:"word"`
	WordNormalized   string     `json:"word_normalized"`
	SearchKeywords   []string   `json:"search_keywords"`
	Meaning          *string    `json:"meaning"`
	EtymologyType    *string    `json:"etymology_type"`
	CrossReference   *string    `json:"cross_reference"`
	FullEntryText    *string    `json:"full_entry_text"`
	OccurrenceNumber int        `json:"occurrence_number"`
	IsCorrected      bool       `json:"is_corrected"`
	CorrectedAt      *time.Time `json:"corrected_at"`
	CorrectedBy      *string    `json:"corrected_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Variants         []string   `json:"variants"`
}

type entrySummaryResponse struct {
	ID      int64   `json:"id"`
	Word    string  `json:"word"`
	Meaning *string `json:"meaning"`
}

type occurrenceResponse struct {
	ID               int64   `json:"id"`
	Word             string  `json:"word"`
	Meaning          *string `json:"meaning"`
	EtymologyType    *string `json:"etymology_type"`
	OccurrenceNumber int     `json:"occurrence_number"`
}

type entryDetailResponse struct {
	entryResponse
	CrossReferenceDetail *entrySummaryResponse `json:"cross_reference_detail"`
	OtherOccurrences     []occurrenceResponse  `json:"other_occurrences"`
}

type searchQueryResponse struct {
	Term           string  `json:"term"`
	SearchIn       string  `json:"search_in"`
	SearchMode     string  `json:"search_mode"`
	Etymology      string  `json:"etymology,omitempty"`
	LetterMode     bool    `json:"letter_mode"`
	FuzzyThreshold float64 `json:"fuzzy_threshold"`
}

type searchResponse struct {
	Success    bool                `json:"success"`
	Query      searchQueryResponse `json:"query"`
	Results    []entryResponse     `json:"results"`
	Count      int                 `json:"count"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
}

type autocompleteResponse struct {
	Success     bool     `json:"success"`
	Suggestions []string `json:"suggestions"`
}

type etymologyCountResponse struct {
	EtymologyType string `json:"etymology_type"`
	Count         int    `json:"count"`
}

type repeatedWordResponse struct {
	Word          string `json:"word"`
	MaxOccurrence int    `json:"max_occurrence"`
}

type statisticsBody struct {
	UniqueWords           int                      `json:"unique_words"`
	TotalEntries          int                      `json:"total_entries"`
	EtymologyTypes        int                      `json:"etymology_types"`
	RepeatedWords         int                      `json:"repeated_words"`
	TotalVariants         int                      `json:"total_variants"`
	EtymologyDistribution []etymologyCountResponse `json:"etymology_distribution"`
	MostRepeated          []repeatedWordResponse   `json:"most_repeated"`
}

type statisticsResponse struct {
	Success    bool           `json:"success"`
	Statistics statisticsBody `json:"statistics"`
}

type reportResponse struct {
	ID                  int64     `json:"id"`
	WordID              int64     `json:"word_id"`
	WordText            string    `json:"word_text"`
	ErrorTypes          []string  `json:"error_types"`
	SuggestedCorrection *string   `json:"suggested_correction"`
	Description         *string   `json:"description"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	CurrentWordText     *string   `json:"current_word_text,omitempty"`
	IsWordCorrected     bool      `json:"is_word_corrected"`
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func toEntryResponse(e domain.Entry) entryResponse {
	keywords := e.SearchKeywords
	if keywords == nil {
		keywords = []string{}
	}
	variants := e.Variants
	if variants == nil {
		variants = []string{}
	}
	return entryResponse{
		ID:               e.ID,
		Word:             e.Word,
		WordNormalized:   e.WordNormalized,
		SearchKeywords:   keywords,
		Meaning:          e.Meaning,
		EtymologyType:    e.EtymologyType,
		CrossReference:   e.CrossReference,
		FullEntryText:    e.FullEntryText,
		OccurrenceNumber: e.OccurrenceNumber,
		IsCorrected:      e.IsCorrected,
		CorrectedAt:      e.CorrectedAt,
		CorrectedBy:      e.CorrectedBy,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		Variants:         variants,
	}
}

func toEntryResponses(entries []domain.Entry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	return out
}

func toEntryDetailResponse(d *domain.EntryDetail) entryDetailResponse {
	resp := entryDetailResponse{
		entryResponse:    toEntryResponse(d.Entry),
		OtherOccurrences: make([]occurrenceResponse, len(d.OtherOccurrences)),
	}
	if ref := d.CrossReferenceDetail; ref != nil {
		resp.CrossReferenceDetail = &entrySummaryResponse{ID: ref.ID, Word: ref.Word, Meaning: ref.Meaning}
	}
	for i, o := range d.OtherOccurrences {
		resp.OtherOccurrences[i] = occurrenceResponse{
			ID:               o.ID,
			Word:             o.Word,
			Meaning:          o.Meaning,
			EtymologyType:    o.EtymologyType,
			OccurrenceNumber: o.OccurrenceNumber,
		}
	}
	return resp
}

func toStatisticsBody(s *domain.Statistics) statisticsBody {
	body := statisticsBody{
		UniqueWords:           s.UniqueWords,
		TotalEntries:          s.TotalEntries,
		EtymologyTypes:        s.EtymologyTypes,
		RepeatedWords:         s.RepeatedWords,
		TotalVariants:         s.TotalVariants,
		EtymologyDistribution: make([]etymologyCountResponse, len(s.EtymologyDistribution)),
		MostRepeated:          make([]repeatedWordResponse, len(s.MostRepeated)),
	}
	for i, c := range s.EtymologyDistribution {
		body.EtymologyDistribution[i] = etymologyCountResponse{EtymologyType: c.EtymologyType, Count: c.Count}
	}
	for i, w := range s.MostRepeated {
		body.MostRepeated[i] = repeatedWordResponse{Word: w.Word, MaxOccurrence: w.Occurrences}
	}
	return body
}

func toReportResponse(r domain.Report) reportResponse {
	types := r.ErrorTypes
	if types == nil {
		types = []string{}
	}
	return reportResponse{
		ID:                  r.ID,
		WordID:              r.WordID,
		WordText:            r.WordText,
		ErrorTypes:          types,
		SuggestedCorrection: r.SuggestedCorrection,
		Description:         r.Description,
		Status:              r.Status.String(),
		CreatedAt:           r.CreatedAt,
		CurrentWordText:     r.CurrentWordText,
		IsWordCorrected:     r.IsWordCorrected,
	}
}
