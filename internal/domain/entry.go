package domain

import "time"

// Entry is a single dictionary headword occurrence.
//
// WordNormalized and SearchKeywords are derived from Word and must be
// recomputed with ApplyWord whenever Word changes.
type Entry struct {
	ID               int64
	Word             string
	WordNormalized   string
	SearchKeywords   []string
	Meaning          *string
	EtymologyType    *string
	CrossReference   *string
	FullEntryText    *string
	OccurrenceNumber int
	IsCorrected      bool
	CorrectedAt      *time.Time
	CorrectedBy      *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Variants holds display spellings attached by the lookup layer.
	Variants []string
}

// ApplyWord sets Word and recomputes its derived normalized columns.
func (e *Entry) ApplyWord(word string) {
	e.Word = word
	e.WordNormalized = Normalize(word)
	e.SearchKeywords = SearchKeywords(word)
}

// Variant is an alternate attested spelling owned by exactly one Entry.
type Variant struct {
	ID                int64
	EntryID           int64
	Variant           string
	VariantNormalized string
	CreatedAt         time.Time
}

// NewVariant builds a Variant with its normalized form computed.
func NewVariant(entryID int64, display string) Variant {
	return Variant{
		EntryID:           entryID,
		Variant:           display,
		VariantNormalized: Normalize(display),
	}
}

// EntrySummary is the short form used for resolved cross-references.
type EntrySummary struct {
	ID      int64
	Word    string
	Meaning *string
}

// Occurrence is a sibling homograph listed on the detail view.
type Occurrence struct {
	ID               int64
	Word             string
	Meaning          *string
	EtymologyType    *string
	OccurrenceNumber int
}

// EntryDetail is an Entry with its cross-reference and sibling occurrences
// resolved.
type EntryDetail struct {
	Entry
	CrossReferenceDetail *EntrySummary
	OtherOccurrences     []Occurrence
}
