package admin

import (
	"strings"
	"unicode/utf8"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

const (
	maxWordLen    = 500
	maxTextLen    = 50000
	maxVariants   = 100
	maxVariantLen = 500
)

// EntryInput holds the mutable fields of an entry as supplied by an admin.
// Normalized forms are never accepted from the caller; they are derived
// from Word.
type EntryInput struct {
	Word           string
	Meaning        *string
	EtymologyType  *string
	CrossReference *string
	FullEntryText  *string
	Variants       []string
}

// Validate checks required fields and sizes.
func (i *EntryInput) Validate() error {
	var errs []domain.FieldError

	word := strings.TrimSpace(i.Word)
	switch {
	case word == "":
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	case utf8.RuneCountInString(word) > maxWordLen:
		errs = append(errs, domain.FieldError{Field: "word", Message: "too long (max 500)"})
	case domain.Normalize(word) == "":
		errs = append(errs, domain.FieldError{Field: "word", Message: "must contain letters"})
	}

	for _, f := range []struct {
		name string
		v    *string
	}{
		{"meaning", i.Meaning},
		{"full_entry_text", i.FullEntryText},
		{"etymology_type", i.EtymologyType},
		{"cross_reference", i.CrossReference},
	} {
		if f.v != nil && utf8.RuneCountInString(*f.v) > maxTextLen {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "too long"})
		}
	}

	if len(i.Variants) > maxVariants {
		errs = append(errs, domain.FieldError{Field: "variants", Message: "too many (max 100)"})
	}
	for _, v := range i.Variants {
		if utf8.RuneCountInString(v) > maxVariantLen {
			errs = append(errs, domain.FieldError{Field: "variants", Message: "variant too long (max 500)"})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// entry builds the domain entry carrying the input's fields. Blank optional
// strings are stored as NULL.
func (i *EntryInput) entry(id int64) *domain.Entry {
	return &domain.Entry{
		ID:             id,
		Word:           strings.TrimSpace(i.Word),
		Meaning:        blankToNil(i.Meaning),
		EtymologyType:  blankToNil(i.EtymologyType),
		CrossReference: blankToNil(i.CrossReference),
		FullEntryText:  blankToNil(i.FullEntryText),
	}
}

// variants trims the supplied spellings and drops blanks and duplicates,
// keeping the first-seen order.
func (i *EntryInput) variants(entryID int64) []domain.Variant {
	out := make([]domain.Variant, 0, len(i.Variants))
	seen := make(map[string]struct{}, len(i.Variants))
	for _, v := range i.Variants {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, domain.NewVariant(entryID, v))
	}
	return out
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
