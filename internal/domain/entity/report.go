package entity

import "time"

const (
	ReportTypeBug      = "BUG"
	ReportTypeFeature  = "FEATURE"
	ReportTypeSecurity = "SECURITY"
	ReportTypeOther    = "OTHER"

	ReportStatusPending    = "PENDING"
	ReportStatusInProgress = "IN_PROGRESS"
	ReportStatusResolved   = "RESOLVED"
	ReportStatusRejected   = "REJECTED"
)

// Report is a user-submitted issue. Status transitions are admin-only and
// unordered: any status is reachable from any other.
type Report struct {
	ID          string  `json:"id" db:"id"`
	Type        string  `json:"type" db:"type"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Email       string  `json:"email,omitempty" db:"email"`
	URL         string  `json:"url,omitempty" db:"url"`
	Status      string  `json:"status" db:"status"`
	UserID      *string `json:"user_id,omitempty" db:"user_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func ValidReportType(t string) bool {
	switch t {
	case ReportTypeBug, ReportTypeFeature, ReportTypeSecurity, ReportTypeOther:
		return true
	}
	return false
}

func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved, ReportStatusRejected:
		return true
	}
	return false
}
