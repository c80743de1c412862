package domain

import "time"

// ReportStatus is the review state of a user report.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusCorrected ReportStatus = "corrected"
)

func (s ReportStatus) String() string { return string(s) }

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusCorrected:
		return true
	}
	return false
}

// Report is a user-submitted data-quality issue about an Entry.
// WordText is a snapshot taken at creation and survives later edits.
type Report struct {
	ID                  int64
	WordID              int64
	WordText            string
	ErrorTypes          []string
	SuggestedCorrection *string
	Description         *string
	Status              ReportStatus
	CreatedAt           time.Time

	// Populated by admin listings from the referenced Entry.
	CurrentWordText *string
	IsWordCorrected bool
}
