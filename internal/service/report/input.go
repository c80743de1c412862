package report

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
)

const (
	maxErrorTypes   = 10
	maxErrorTypeLen = 50
	maxTextLen      = 5000
)

// CreateInput holds the parameters for filing a report.
type CreateInput struct {
	WordID              int64
	WordText            string
	ErrorTypes          []string
	SuggestedCorrection string
	Description         string
}

// Validate checks required fields. It runs before any store access.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.WordID <= 0 {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	}

	types := cleanErrorTypes(i.ErrorTypes)
	switch {
	case len(types) == 0:
		errs = append(errs, domain.FieldError{Field: "error_types", Message: "at least one error type is required"})
	case len(types) > maxErrorTypes:
		errs = append(errs, domain.FieldError{Field: "error_types", Message: "too many (max 10)"})
	}
	for _, t := range types {
		if utf8.RuneCountInString(t) > maxErrorTypeLen {
			errs = append(errs, domain.FieldError{Field: "error_types", Message: "error type too long (max 50)"})
			break
		}
	}

	if utf8.RuneCountInString(i.SuggestedCorrection) > maxTextLen {
		errs = append(errs, domain.FieldError{Field: "suggested_correction", Message: "too long (max 5000)"})
	}
	if utf8.RuneCountInString(i.Description) > maxTextLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 5000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *CreateInput) report() *domain.Report {
	return &domain.Report{
		WordID:              i.WordID,
		WordText:            strings.TrimSpace(i.WordText),
		ErrorTypes:          cleanErrorTypes(i.ErrorTypes),
		SuggestedCorrection: optional(StripHTML(i.SuggestedCorrection)),
		Description:         optional(StripHTML(i.Description)),
		Status:              domain.ReportStatusPending,
	}
}

// cleanErrorTypes trims tags and drops blanks and duplicates.
func cleanErrorTypes(types []string) []string {
	out := make([]string, 0, len(types))
	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// StripHTML returns the text content of s with all markup removed.
// Script and style bodies are dropped; entities are decoded.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	var (
		b    strings.Builder
		skip int
	)
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way keep what was read.
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			if isRawTextTag(z) {
				skip++
			}
		case html.EndTagToken:
			if isRawTextTag(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawTextTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
