package models

import "time"

// DocumentStatus tracks the verification state of an uploaded document.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusVerified DocumentStatus = "verified"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// ProcessingStatus tracks the extraction lifecycle of an uploaded document.
type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "pending"
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusCompleted  ProcessingStatus = "completed"
	ProcessingStatusFailed     ProcessingStatus = "failed"
)

// AnalysisStatus tracks the underwriting run state of an application.
type AnalysisStatus string

const (
	AnalysisStatusNotStarted AnalysisStatus = "NOT_STARTED"
	AnalysisStatusRunning    AnalysisStatus = "RUNNING"
	AnalysisStatusCompleted  AnalysisStatus = "COMPLETED"
	AnalysisStatusFailed     AnalysisStatus = "FAILED"
)

// EmploymentRecord is one entry of an applicant's employment history,
// ordered most-recent first.
type EmploymentRecord struct {
	Employer  string    `json:"employer"`
	Position  string    `json:"position"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate,omitempty"`
	Current   bool      `json:"current"`
}

// Asset is one applicant-declared asset with its liquid value.
type Asset struct {
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
	Value       float64 `json:"value"`
}

// DocumentRef is the snapshot view of an uploaded supporting document.
type DocumentRef struct {
	ID     string         `json:"id"`
	Type   string         `json:"type,omitempty"`
	Status DocumentStatus `json:"status"`
}

// ApplicationSnapshot is the immutable input view of a mortgage application
// consumed by the underwriting engine. The engine never mutates it.
type ApplicationSnapshot struct {
	ID                  string             `json:"id"`
	ApplicantID         string             `json:"applicantId"`
	CreditScore         int                `json:"creditScore"`
	MonthlyIncome       float64            `json:"monthlyIncome"`
	MonthlyDebtPayments float64            `json:"monthlyDebtPayments"`
	LoanAmount          float64            `json:"loanAmount"`
	PropertyValue       float64            `json:"propertyValue"`
	EmploymentHistory   []EmploymentRecord `json:"employmentHistory"`
	Assets              []Asset            `json:"assets"`
	Documents           []DocumentRef      `json:"documents"`
}

// TotalAssetValue sums the declared value of all assets.
func (s *ApplicationSnapshot) TotalAssetValue() float64 {
	var total float64
	for _, a := range s.Assets {
		total += a.Value
	}
	return total
}
